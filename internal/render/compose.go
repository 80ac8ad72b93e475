package render

import (
	"bytes"
	"image"
	"image/color"
	"time"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"

	"github.com/yungbote/studycards-backend/internal/domain"
	"github.com/yungbote/studycards-backend/internal/logger"
)

// CardComposer assembles a full knowledge card: background, paper, title
// band, visual area (AI illustration or procedural diagram), packed text
// sections, and footer. The output is always exactly cfg.Width by
// cfg.Height pixels; overflowing content is truncated by the section
// caps, never by resizing the canvas.
type CardComposer struct {
	log      *logger.Logger
	cfg      Config
	fonts    *FontSet
	text     *SafeText
	sections *SectionLayoutEngine
	diagrams *DiagramDispatcher
}

func NewCardComposer(log *logger.Logger, cfg Config, fonts *FontSet) *CardComposer {
	text := NewSafeText(log, fonts)
	return &CardComposer{
		log:      log.With("component", "CardComposer"),
		cfg:      cfg,
		fonts:    fonts,
		text:     text,
		sections: NewSectionLayoutEngine(log, cfg, fonts, text),
		diagrams: NewDiagramDispatcher(log, fonts, text, cfg.Keywords),
	}
}

// Compose renders the card and returns the raster. A nil illustration
// selects the procedural diagram path.
func (c *CardComposer) Compose(title string, note domain.NoteData, cls domain.Classification, illustration image.Image) image.Image {
	dc := gg.NewContext(c.cfg.Width, c.cfg.Height)
	c.compose(dc, title, note, cls, illustration)
	return dc.Image()
}

// ComposePNG renders the card and PNG-encodes it.
func (c *CardComposer) ComposePNG(title string, note domain.NoteData, cls domain.Classification, illustration image.Image) ([]byte, error) {
	dc := gg.NewContext(c.cfg.Width, c.cfg.Height)
	c.compose(dc, title, note, cls, illustration)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *CardComposer) compose(dc *gg.Context, title string, note domain.NoteData, cls domain.Classification, illustration image.Image) {
	w := float64(c.cfg.Width)
	h := float64(c.cfg.Height)
	margin := float64(c.cfg.Margin)

	// Subject-tinted background with a white paper area on top.
	bg, ok := subjectBackgrounds[cls.Subject]
	if !ok {
		bg = defaultBackground
	}
	dc.SetColor(bg)
	dc.Clear()

	dc.SetRGB255(255, 255, 255)
	dc.DrawRectangle(30, 30, w-60, h-60)
	dc.Fill()
	dc.SetRGB255(226, 232, 240)
	dc.SetLineWidth(2)
	dc.DrawRectangle(30, 30, w-60, h-60)
	dc.Stroke()

	currentY := 90.0

	// Centered title with an accent underline.
	accent, ok := subjectAccents[cls.Subject]
	if !ok {
		accent = subjectAccents[domain.SubjectGeneral]
	}
	titleW := Measure(title, c.fonts.Title)
	titleX := (w - titleW) / 2
	c.text.Draw(dc, titleX, currentY, title, c.fonts.Title, colorHeadline)

	titleH := float64(lineHeight(c.fonts.Title))
	dc.SetColor(accent)
	dc.SetLineWidth(4)
	dc.DrawLine(titleX, currentY+titleH+10, titleX+titleW, currentY+titleH+10)
	dc.Stroke()
	currentY += titleH + 65

	contentWidth := c.cfg.ContentWidth()
	var textCol Column

	if illustration != nil {
		// AI illustration pinned to the top right, scaled down with a
		// high-quality kernel onto a white plate.
		aiW := contentWidth / 2
		if aiW > 380 {
			aiW = 380
		}
		aiH := aiW * 3 / 4
		aiX := w - margin - float64(aiW) - 30
		aiY := currentY + 30

		dc.SetRGB255(255, 255, 255)
		dc.DrawRectangle(aiX-15, aiY-15, float64(aiW)+30, float64(aiH)+30)
		dc.Fill()
		dc.SetRGB255(203, 213, 225)
		dc.SetLineWidth(2)
		dc.DrawRectangle(aiX-15, aiY-15, float64(aiW)+30, float64(aiH)+30)
		dc.Stroke()

		scaled := image.NewRGBA(image.Rect(0, 0, aiW, aiH))
		xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), illustration, illustration.Bounds(), xdraw.Over, nil)
		dc.DrawImage(scaled, int(aiX), int(aiY))

		c.text.Draw(dc, aiX, aiY+float64(aiH)+25, "AI 生成插图", c.fonts.Small, colorMuted)

		textCol = Column{X: margin, W: float64(contentWidth - aiW - 60)}
	} else {
		// Procedural diagram on the right side of the visual band.
		region := Region{
			X: margin + float64(contentWidth) - 280,
			Y: currentY + 50,
			W: 280,
			H: 300,
		}
		c.diagrams.Render(dc, note.DetailedContent, cls, region)

		textCol = Column{X: margin, W: float64(contentWidth) - 300}
	}

	c.sections.Layout(dc, note, textCol, currentY)

	// Footer: subject badge on the right, generation date on the left.
	footerY := h - 80
	dc.SetColor(accent)
	dc.DrawRectangle(w-150, footerY-5, 80, 30)
	dc.Fill()
	name, ok := subjectNames[cls.Subject]
	if !ok {
		name = subjectNames[domain.SubjectGeneral]
	}
	c.text.Draw(dc, w-145, footerY-2, name, c.fonts.Small, color.White)

	c.text.Draw(dc, margin+50, footerY, time.Now().Format("2006.01.02"), c.fonts.Small, colorMuted)
}
