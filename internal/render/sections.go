package render

import (
	"fmt"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/yungbote/studycards-backend/internal/domain"
	"github.com/yungbote/studycards-backend/internal/logger"
)

// Column is the horizontal slice of the canvas the text sections stack
// into. The composer narrows it when an illustration or diagram occupies
// the right side.
type Column struct {
	X, W float64
}

// SectionLayoutEngine stacks the structured note sections top-to-bottom
// inside a column. Each section draws below the cursor the previous
// section returned, so rendered sections can never overlap. Sections are
// laid out in a fixed priority order: concepts, formulas, core content,
// steps, notes. Empty sections are skipped; content past the configured
// caps is silently not rendered.
type SectionLayoutEngine struct {
	log   *logger.Logger
	cfg   Config
	fonts *FontSet
	text  *SafeText
}

func NewSectionLayoutEngine(log *logger.Logger, cfg Config, fonts *FontSet, text *SafeText) *SectionLayoutEngine {
	return &SectionLayoutEngine{
		log:   log.With("component", "SectionLayoutEngine"),
		cfg:   cfg,
		fonts: fonts,
		text:  text,
	}
}

// Layout draws every populated section and returns the next free y
// coordinate. With an entirely empty payload it draws nothing and
// returns startY unchanged.
func (e *SectionLayoutEngine) Layout(dc *gg.Context, note domain.NoteData, col Column, startY float64) float64 {
	y := startY

	if len(note.Concepts) > 0 {
		y = e.drawConcepts(dc, note.Concepts, col, y) + 25
	}
	if len(note.Formulas) > 0 {
		y = e.drawFormulas(dc, note.Formulas, col, y) + 25
	}
	if note.DetailedContent != "" {
		y = e.drawContent(dc, note.DetailedContent, col, y) + 20
	}
	if len(note.Steps) > 0 {
		y = e.drawSteps(dc, note.Steps, col, y) + 20
	}
	if len(note.Notes) > 0 {
		y = e.drawNotes(dc, note.Notes, col, y)
	}

	return y
}

// drawSectionTitle draws the accented section heading with its underline
// and returns the y where the section body starts.
func (e *SectionLayoutEngine) drawSectionTitle(dc *gg.Context, title string, accent color.Color, col Column, y float64) float64 {
	e.text.Draw(dc, col.X, y+8, title, e.fonts.Subtitle, accent)

	w := Measure(title, e.fonts.Subtitle)
	dc.SetColor(accent)
	dc.SetLineWidth(3)
	dc.DrawLine(col.X, y+50, col.X+w, y+50)
	dc.Stroke()

	return y + 70
}

func (e *SectionLayoutEngine) drawConcepts(dc *gg.Context, concepts []domain.Concept, col Column, startY float64) float64 {
	y := e.drawSectionTitle(dc, "核心概念", colorConceptAccent, col, startY)

	shown := concepts
	if len(shown) > e.cfg.Caps.Concepts {
		shown = shown[:e.cfg.Caps.Concepts]
	}
	for _, concept := range shown {
		// Bullet dot
		dc.SetColor(colorConceptAccent)
		dc.DrawCircle(col.X+15, y+15, 8)
		dc.Fill()

		e.text.DrawWithUnderline(dc, col.X+35, y+8, concept.Term, e.fonts.Body, colorHeadline, 2)

		defLines := Wrap(concept.Definition, e.fonts.Small, col.W-70)
		if len(defLines) > e.cfg.Caps.ConceptDefLines {
			defLines = defLines[:e.cfg.Caps.ConceptDefLines]
		}
		defY := y + 52
		for _, line := range defLines {
			e.text.Draw(dc, col.X+35, defY, line, e.fonts.Small, colorBodyText)
			defY += 22
		}

		y += 100
	}
	return y
}

func (e *SectionLayoutEngine) drawFormulas(dc *gg.Context, formulas []domain.Formula, col Column, startY float64) float64 {
	if e.cfg.Caps.Formulas < 1 {
		return startY
	}
	y := e.drawSectionTitle(dc, "重要公式", colorFormulaAccent, col, startY)

	shown := formulas
	if len(shown) > e.cfg.Caps.Formulas {
		shown = shown[:e.cfg.Caps.Formulas]
	}
	for _, formula := range shown {
		if formula.Name != "" {
			e.text.DrawWithUnderline(dc, col.X+20, y+8, formula.Name, e.fonts.Body, colorFormulaText, 2)
			y += 50
		}

		if formula.Formula != "" {
			// The formula itself is centered across the full canvas
			// width, not just the text column.
			w := Measure(formula.Formula, e.fonts.Formula)
			x := (float64(e.cfg.Width) - w) / 2
			e.text.Draw(dc, x, y+8, formula.Formula, e.fonts.Formula, colorFormulaText)

			dc.SetColor(colorFormulaAccent)
			dc.SetLineWidth(1)
			dc.DrawLine(x-20, y+55, x+w+20, y+55)
			dc.Stroke()
			y += 65
		}

		if formula.Description != "" {
			descLines := Wrap(formula.Description, e.fonts.Small, col.W-40)
			e.text.Draw(dc, col.X+20, y, descLines[0], e.fonts.Small, colorBodyText)
			y += 30
		}
	}

	return y
}

func (e *SectionLayoutEngine) drawContent(dc *gg.Context, content string, col Column, startY float64) float64 {
	y := e.drawSectionTitle(dc, "核心要点", colorContentAccent, col, startY)

	lines := Wrap(firstRunes(content, 300), e.fonts.Small, col.W-45)
	if len(lines) > e.cfg.Caps.ContentLines {
		lines = lines[:e.cfg.Caps.ContentLines]
	}
	for _, line := range lines {
		dc.SetColor(colorContentAccent)
		dc.DrawCircle(col.X+10, y+10, 3)
		dc.Fill()

		e.text.Draw(dc, col.X+25, y, line, e.fonts.Small, colorContentText)
		y += 26
	}
	return y + 10
}

func (e *SectionLayoutEngine) drawSteps(dc *gg.Context, steps []string, col Column, startY float64) float64 {
	y := e.drawSectionTitle(dc, "关键步骤", colorStepAccent, col, startY)

	shown := steps
	if len(shown) > e.cfg.Caps.Steps {
		shown = shown[:e.cfg.Caps.Steps]
	}
	for i, step := range shown {
		// Circular numbered badge
		dc.SetColor(colorStepAccent)
		dc.DrawCircle(col.X+15, y+15, 12)
		dc.Fill()
		e.text.Draw(dc, col.X+10, y+2, fmt.Sprintf("%d", i+1), e.fonts.Small, color.White)

		// The step may be an empty string in unvalidated payloads.
		if stepLines := Wrap(step, e.fonts.Small, col.W-60); len(stepLines) > 0 {
			e.text.Draw(dc, col.X+40, y+4, stepLines[0], e.fonts.Small, colorStepText)
		}

		dc.SetColor(colorStepAccent)
		dc.SetLineWidth(1)
		dc.DrawLine(col.X+40, y+34, col.X+col.W-20, y+34)
		dc.Stroke()

		y += 45
	}
	return y
}

func (e *SectionLayoutEngine) drawNotes(dc *gg.Context, notes []string, col Column, startY float64) float64 {
	y := e.drawSectionTitle(dc, "重要提醒", colorNoteAccent, col, startY)

	shown := notes
	if len(shown) > e.cfg.Caps.Notes {
		shown = shown[:e.cfg.Caps.Notes]
	}
	for _, note := range shown {
		// Warning badge: a filled circle with an exclamation mark.
		dc.SetColor(colorNoteAccent)
		dc.DrawCircle(col.X+12, y+15, 12)
		dc.Fill()
		e.text.Draw(dc, col.X+8, y+2, "!", e.fonts.Body, color.White)

		if noteLines := Wrap(note, e.fonts.Small, col.W-60); len(noteLines) > 0 {
			e.text.Draw(dc, col.X+35, y+6, noteLines[0], e.fonts.Small, colorNoteText)
		}

		dc.SetColor(colorNoteAccent)
		dc.SetLineWidth(1)
		dc.DrawLine(col.X+35, y+35, col.X+col.W-20, y+35)
		dc.Stroke()

		y += 45
	}
	return y
}
