// Package jsonx holds small helpers for digging structured data out of
// free-form model output.
package jsonx

// ExtractObject returns the first top-level `{...}` block in s. Unlike a
// greedy regex it walks the input with a bracket/string state machine, so
// nested braces and braces inside string values do not confuse it. The
// returned slice is not validated JSON; callers unmarshal and handle the
// error themselves.
func ExtractObject(s string) (string, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i, r := range s {
		if start == -1 {
			if r == '{' {
				start = i
				depth = 1
			}
			continue
		}
		if inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}
		switch r {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
