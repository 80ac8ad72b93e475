package render

import (
	"fmt"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/yungbote/studycards-backend/internal/logger"
)

// Font sizes for the five roles. In degraded mode every role collapses to
// degradedFontSize because the built-in fallback is not meant for layout
// hierarchy, only for never rendering a blank card.
const (
	titleFontSize    = 64
	subtitleFontSize = 48
	bodyFontSize     = 36
	smallFontSize    = 30
	formulaFontSize  = 40
	degradedFontSize = 24
)

// FontSet binds the five logical font roles to one physical font. It is
// built once at startup and shared read-only by all renders.
type FontSet struct {
	Title    font.Face
	Subtitle font.Face
	Body     font.Face
	Small    font.Face
	Formula  font.Face

	// Path is the font file that won the candidate probe, empty in
	// degraded mode.
	Path     string
	Degraded bool

	ttf *truetype.Font
}

// LoadFonts probes the candidate paths in order and builds faces from the
// first one that exists and parses. When no candidate works it falls back
// to the embedded Go Regular font and flags the set as degraded; that
// fallback has no CJK coverage, so SafeText will be doing placeholder
// work, but a card is still produced.
func LoadFonts(log *logger.Logger, candidates []string) *FontSet {
	log = log.With("component", "FontSet")

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Debug("font candidate unavailable", "path", path, "error", err)
			continue
		}
		ttf, err := truetype.Parse(data)
		if err != nil {
			log.Debug("font candidate unparsable", "path", path, "error", err)
			continue
		}
		log.Info("loaded font", "path", path)
		return &FontSet{
			Title:    newFace(ttf, titleFontSize),
			Subtitle: newFace(ttf, subtitleFontSize),
			Body:     newFace(ttf, bodyFontSize),
			Small:    newFace(ttf, smallFontSize),
			Formula:  newFace(ttf, formulaFontSize),
			Path:     path,
			ttf:      ttf,
		}
	}

	log.Warn("no candidate font found, using built-in fallback (degraded mode)")
	ttf, err := truetype.Parse(goregular.TTF)
	if err != nil {
		// The embedded font is a compile-time constant; this cannot
		// happen outside a corrupted build.
		panic(fmt.Sprintf("parse embedded fallback font: %v", err))
	}
	face := newFace(ttf, degradedFontSize)
	return &FontSet{
		Title:    face,
		Subtitle: face,
		Body:     face,
		Small:    face,
		Formula:  face,
		Degraded: true,
		ttf:      ttf,
	}
}

// HasGlyph reports whether the underlying font maps r to a real glyph.
func (fs *FontSet) HasGlyph(r rune) bool {
	return fs.ttf.Index(r) != 0
}

func newFace(ttf *truetype.Font, size float64) font.Face {
	return truetype.NewFace(ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}
