package render

import (
	"unicode/utf8"

	"golang.org/x/image/font"
)

// estimatedCharWidth is the per-rune pixel estimate used when no glyph
// metrics are available.
const estimatedCharWidth = 20

// Measure returns the pixel width of s in the given face, or the
// character-count estimate when the face is nil.
func Measure(s string, face font.Face) float64 {
	if face == nil {
		return float64(utf8.RuneCountInString(s) * estimatedCharWidth)
	}
	return float64(font.MeasureString(face, s).Ceil())
}

// Wrap breaks text into lines that fit maxWidth pixels. The line is
// extended one character at a time rather than word-at-a-time: the source
// text mixes CJK (no inter-word spaces) with Latin tokens, so word
// breaking has nothing to key on. A single character wider than maxWidth
// still becomes its own line; no character is ever dropped, so joining
// the returned lines reproduces the input exactly.
func Wrap(text string, face font.Face, maxWidth float64) []string {
	if text == "" {
		return nil
	}
	var lines []string
	current := ""
	for _, r := range text {
		test := current + string(r)
		switch {
		case Measure(test, face) <= maxWidth:
			current = test
		case current != "":
			lines = append(lines, current)
			current = string(r)
		default:
			lines = append(lines, string(r))
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// lineHeight is the vertical advance for one line of the face, with a
// fixed estimate when no metrics are available.
func lineHeight(face font.Face) float64 {
	if face == nil {
		return 20
	}
	return float64(face.Metrics().Height.Ceil())
}
