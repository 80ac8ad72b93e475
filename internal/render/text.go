package render

import (
	"image/color"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/yungbote/studycards-backend/internal/logger"
)

// Placeholder box drawn when a string has no printable form at all.
const (
	placeholderWidth  = 100
	placeholderHeight = 20
)

// SafeText draws strings without ever aborting a render. A malformed or
// unsupported character degrades the output, never the card: the ladder
// is (1) the string as-is when the font maps every rune, (2) the string
// with unmappable runes removed, (3) ASCII-only, (4) a filled placeholder
// rectangle. Every degradation is logged and swallowed.
type SafeText struct {
	log   *logger.Logger
	fonts *FontSet
}

func NewSafeText(log *logger.Logger, fonts *FontSet) *SafeText {
	return &SafeText{
		log:   log.With("component", "SafeText"),
		fonts: fonts,
	}
}

// Draw renders text with its top-left corner near (x, y).
func (s *SafeText) Draw(dc *gg.Context, x, y float64, text string, face font.Face, col color.Color) {
	if text == "" {
		return
	}

	if s.mapsAll(text) && s.tryDraw(dc, x, y, text, face, col) {
		return
	}

	mapped := s.mappedOnly(text)
	if strings.TrimSpace(mapped) != "" {
		s.log.Warn("dropping unmappable characters", "text", text)
		if s.tryDraw(dc, x, y, mapped, face, col) {
			return
		}
	}

	ascii := asciiOnly(text)
	if strings.TrimSpace(ascii) != "" {
		s.log.Warn("falling back to ASCII-only text", "text", text)
		if s.tryDraw(dc, x, y, ascii, face, col) {
			return
		}
	}

	s.log.Warn("no printable form, drawing placeholder box", "text", text)
	dc.SetColor(col)
	dc.DrawRectangle(x, y, placeholderWidth, placeholderHeight)
	dc.Fill()
}

// DrawWithUnderline draws text and then a rule beneath it sized to the
// measured text width. This is the card's uniform emphasis idiom in place
// of background boxes.
func (s *SafeText) DrawWithUnderline(dc *gg.Context, x, y float64, text string, face font.Face, col color.Color, width float64) {
	s.Draw(dc, x, y, text, face, col)

	w := Measure(text, face)
	lineY := y + lineHeight(face) + 2
	dc.SetColor(col)
	dc.SetLineWidth(width)
	dc.DrawLine(x, lineY, x+w, lineY)
	dc.Stroke()
}

// tryDraw performs the actual draw call behind a recover so a broken face
// or glyph can never take down the whole render.
func (s *SafeText) tryDraw(dc *gg.Context, x, y float64, text string, face font.Face, col color.Color) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Warn("text draw panicked", "text", text, "panic", r)
			ok = false
		}
	}()
	dc.SetFontFace(face)
	dc.SetColor(col)
	dc.DrawStringAnchored(text, x, y, 0, 1)
	return true
}

func (s *SafeText) mapsAll(text string) bool {
	for _, r := range text {
		if !s.fonts.HasGlyph(r) {
			return false
		}
	}
	return true
}

func (s *SafeText) mappedOnly(text string) string {
	var b strings.Builder
	for _, r := range text {
		if s.fonts.HasGlyph(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func asciiOnly(text string) string {
	var b strings.Builder
	for _, r := range text {
		if r < 128 {
			b.WriteRune(r)
		}
	}
	return b.String()
}
