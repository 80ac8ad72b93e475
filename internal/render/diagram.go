package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/fogleman/gg"

	"github.com/yungbote/studycards-backend/internal/domain"
	"github.com/yungbote/studycards-backend/internal/logger"
)

// DiagramKind is the closed set of procedural diagrams. The kind is
// resolved once from the classification plus keyword vocabularies, then
// dispatched on directly; no string matching happens inside the drawing
// code.
type DiagramKind int

const (
	DiagramConceptMap DiagramKind = iota
	DiagramMathFunction
	DiagramMathTangent
	DiagramMathLimit
	DiagramPhysicsForces
	DiagramPhysicsWave
	DiagramPhysicsEnergy
	DiagramChemistryMolecule
	DiagramBiologyCell
	DiagramHistoryTimeline
)

// Structural counts per diagram kind. Tests assert these instead of
// scraping pixels.
const (
	ConceptMapChildCount = 3
	MoleculeAtomCount    = 4
	MoleculeBondCount    = 3
	ForceVectorCount     = 3
	TimelineEventCount   = 3
	MitochondriaCount    = 2
	LimitPointCount      = 4
)

// Region is a rectangular sub-area of the canvas reserved for one
// component's exclusive drawing.
type Region struct {
	X, Y, W, H float64
}

// DiagramDispatcher routes a classified piece of content to one of the
// subject diagram generators. Every generator is stateless and draws a
// fixed vocabulary of shapes into the region, so rendering the same
// inputs twice produces identical pixels.
type DiagramDispatcher struct {
	log   *logger.Logger
	fonts *FontSet
	text  *SafeText
	vocab KeywordVocab
}

func NewDiagramDispatcher(log *logger.Logger, fonts *FontSet, text *SafeText, vocab KeywordVocab) *DiagramDispatcher {
	return &DiagramDispatcher{
		log:   log.With("component", "DiagramDispatcher"),
		fonts: fonts,
		text:  text,
		vocab: vocab,
	}
}

// KindFor resolves the diagram kind for a subject and content. The five
// specific domains route to their own generators; language and general
// (and anything else) fall through to the concept map.
func (d *DiagramDispatcher) KindFor(subject domain.Subject, content string) DiagramKind {
	switch subject {
	case domain.SubjectMath:
		if containsAny(content, d.vocab.Tangent) {
			return DiagramMathTangent
		}
		if containsAny(content, d.vocab.Limit) {
			return DiagramMathLimit
		}
		return DiagramMathFunction
	case domain.SubjectPhysics:
		if containsAny(content, d.vocab.Force) {
			return DiagramPhysicsForces
		}
		if containsAny(content, d.vocab.Wave) {
			return DiagramPhysicsWave
		}
		return DiagramPhysicsEnergy
	case domain.SubjectChemistry:
		return DiagramChemistryMolecule
	case domain.SubjectBiology:
		return DiagramBiologyCell
	case domain.SubjectHistory:
		return DiagramHistoryTimeline
	default:
		return DiagramConceptMap
	}
}

// Render draws the diagram for the classification into region.
func (d *DiagramDispatcher) Render(dc *gg.Context, content string, cls domain.Classification, region Region) {
	kind := d.KindFor(cls.Subject, content)
	d.log.Debug("rendering diagram", "kind", kind, "subject", cls.Subject)

	switch kind {
	case DiagramMathFunction, DiagramMathTangent, DiagramMathLimit:
		d.drawMath(dc, kind, region)
	case DiagramPhysicsForces:
		d.drawForces(dc, region)
	case DiagramPhysicsWave:
		d.drawWave(dc, region)
	case DiagramPhysicsEnergy:
		d.drawEnergy(dc, region)
	case DiagramChemistryMolecule:
		d.drawMolecule(dc, region)
	case DiagramBiologyCell:
		d.drawCell(dc, region)
	case DiagramHistoryTimeline:
		d.drawTimeline(dc, region)
	default:
		d.drawConceptMap(dc, cls.KeyElements, region)
	}
}

// ---------- math ----------

func (d *DiagramDispatcher) drawMath(dc *gg.Context, kind DiagramKind, region Region) {
	coordSize := math.Min(region.W-40, 200)
	cx := region.X + region.W/2
	cy := region.Y + coordSize/2 + 50

	// Axes
	dc.SetColor(colorAxis)
	dc.SetLineWidth(2)
	dc.DrawLine(cx-coordSize/2, cy, cx+coordSize/2, cy)
	dc.DrawLine(cx, cy-coordSize/2, cx, cy+coordSize/2)
	dc.Stroke()

	drawArrowhead(dc, cx+coordSize/2, cy, 0, colorAxis)
	drawArrowhead(dc, cx, cy-coordSize/2, -math.Pi/2, colorAxis)

	red := color.NRGBA{R: 255, A: 255}
	green := color.NRGBA{G: 150, A: 255}

	switch kind {
	case DiagramMathTangent:
		// Parabola samples plus a tangent line.
		for i := -coordSize / 2; i < coordSize/2; i += 2 {
			dc.SetColor(red)
			dc.SetPixel(int(cx+i), int(cy-i*i*0.005))
		}
		dc.SetColor(green)
		dc.SetLineWidth(2)
		dc.DrawLine(cx-50, cy+25, cx+50, cy-75)
		dc.Stroke()
		d.text.DrawWithUnderline(dc, region.X+5, region.Y+10, "f(x)", d.fonts.Small, red, 1)
		d.text.DrawWithUnderline(dc, region.X+5, region.Y+50, "切线", d.fonts.Small, green, 1)

	case DiagramMathLimit:
		// A sequence of points converging on the origin.
		points := [LimitPointCount][2]float64{
			{cx - 60, cy + 30},
			{cx - 30, cy + 15},
			{cx - 15, cy + 8},
			{cx, cy},
		}
		for i, p := range points {
			if i < len(points)-1 {
				dc.SetColor(colorMuted)
				dc.SetLineWidth(1)
				dc.DrawLine(p[0], p[1], points[i+1][0], points[i+1][1])
				dc.Stroke()
			}
			dc.SetColor(color.NRGBA{R: uint8(255 - i*50), G: uint8(i * 50), A: 255})
			dc.DrawCircle(p[0], p[1], 3)
			dc.Fill()
		}
		d.text.DrawWithUnderline(dc, region.X+5, region.Y+10, "lim x→a", d.fonts.Small, colorAxis, 1)

	default:
		// Sine samples.
		for i := -coordSize / 2; i < coordSize/2; i += 2 {
			dc.SetColor(red)
			dc.SetPixel(int(cx+i), int(cy-30*math.Sin(i*0.05)))
		}
	}
}

// ---------- physics ----------

func (d *DiagramDispatcher) drawForces(dc *gg.Context, region Region) {
	cx := region.X + region.W/2
	cy := region.Y + 100

	vectors := [ForceVectorCount]struct {
		dx, dy float64
		col    color.NRGBA
		label  string
	}{
		{60, -40, color.NRGBA{R: 255, A: 255}, "F1"},
		{-30, -60, color.NRGBA{G: 255, A: 255}, "F2"},
		{30, 50, color.NRGBA{B: 255, A: 255}, "F3"},
	}

	for _, v := range vectors {
		x2, y2 := cx+v.dx, cy+v.dy
		dc.SetColor(v.col)
		dc.SetLineWidth(3)
		dc.DrawLine(cx, cy, x2, y2)
		dc.Stroke()
		drawArrowhead(dc, x2, y2, math.Atan2(v.dy, v.dx), v.col)
		d.text.Draw(dc, x2+5, y2-10, v.label, d.fonts.Small, v.col)
	}
}

func (d *DiagramDispatcher) drawWave(dc *gg.Context, region Region) {
	blue := color.NRGBA{G: 100, B: 255, A: 255}
	cy := region.Y + 100
	for i := 0.0; i < region.W-40; i++ {
		dc.SetColor(blue)
		dc.SetPixel(int(region.X+20+i), int(cy+30*math.Sin(i*0.1)))
	}
	d.text.Draw(dc, region.X+5, region.Y+10, "波形", d.fonts.Small, blue)
}

func (d *DiagramDispatcher) drawEnergy(dc *gg.Context, region Region) {
	orange := color.NRGBA{R: 255, G: 100, A: 255}
	cx := region.X + region.W/2
	cy := region.Y + 100
	dc.SetColor(orange)
	dc.SetLineWidth(2)
	dc.DrawRectangle(cx-40, cy-20, 80, 40)
	dc.Stroke()
	d.text.Draw(dc, cx-30, cy-15, "能量", d.fonts.Small, orange)
}

// ---------- chemistry ----------

func (d *DiagramDispatcher) drawMolecule(dc *gg.Context, region Region) {
	cx := region.X + region.W/2
	cy := region.Y + 100

	atoms := [MoleculeAtomCount]struct {
		x, y   float64
		symbol string
		col    color.NRGBA
	}{
		{cx, cy, "C", color.NRGBA{R: 50, G: 50, B: 50, A: 255}},
		{cx - 40, cy - 30, "H", color.NRGBA{R: 140, G: 140, B: 140, A: 255}},
		{cx + 40, cy - 30, "H", color.NRGBA{R: 140, G: 140, B: 140, A: 255}},
		{cx, cy + 40, "O", color.NRGBA{R: 255, A: 255}},
	}

	// Bonds first so atoms draw over them.
	dc.SetColor(colorAxis)
	dc.SetLineWidth(2)
	for _, a := range atoms[1:] {
		dc.DrawLine(cx, cy, a.x, a.y)
	}
	dc.Stroke()

	fill := color.NRGBA{R: 240, G: 240, B: 240, A: 255}
	for _, a := range atoms {
		dc.SetColor(fill)
		dc.DrawCircle(a.x, a.y, 15)
		dc.FillPreserve()
		dc.SetColor(a.col)
		dc.SetLineWidth(2)
		dc.Stroke()
		d.text.Draw(dc, a.x-8, a.y-12, a.symbol, d.fonts.Small, a.col)
	}
}

// ---------- biology ----------

func (d *DiagramDispatcher) drawCell(dc *gg.Context, region Region) {
	cx := region.X + region.W/2
	cy := region.Y + 100

	// Membrane
	dc.SetColor(color.NRGBA{G: 150, A: 255})
	dc.SetLineWidth(3)
	dc.DrawEllipse(cx, cy, 60, 50)
	dc.Stroke()

	// Nucleus
	dc.SetColor(color.NRGBA{R: 200, G: 200, B: 255, A: 255})
	dc.DrawEllipse(cx, cy, 25, 20)
	dc.FillPreserve()
	dc.SetColor(color.NRGBA{B: 150, A: 255})
	dc.SetLineWidth(2)
	dc.Stroke()
	d.text.Draw(dc, cx-10, cy-12, "核", d.fonts.Small, color.NRGBA{B: 150, A: 255})

	// Mitochondria placeholders
	mito := [MitochondriaCount][2]float64{
		{cx - 40, cy + 28},
		{cx + 40, cy - 32},
	}
	for _, m := range mito {
		dc.SetColor(color.NRGBA{R: 255, G: 200, B: 200, A: 255})
		dc.DrawEllipse(m[0], m[1], 10, 7)
		dc.FillPreserve()
		dc.SetColor(color.NRGBA{R: 150, A: 255})
		dc.SetLineWidth(2)
		dc.Stroke()
	}
}

// ---------- history ----------

func (d *DiagramDispatcher) drawTimeline(dc *gg.Context, region Region) {
	y := region.Y + 100
	startX := region.X + 20
	endX := region.X + region.W - 20

	dc.SetColor(colorAxis)
	dc.SetLineWidth(3)
	dc.DrawLine(startX, y, endX, y)
	dc.Stroke()

	marker := color.NRGBA{R: 150, A: 255}
	for i := 0; i < TimelineEventCount; i++ {
		x := startX + (endX-startX)*float64(i)/float64(TimelineEventCount-1)
		dc.SetColor(marker)
		dc.SetLineWidth(2)
		dc.DrawLine(x, y-20, x, y+20)
		dc.Stroke()
		label := fmt.Sprintf("事件%d", i+1)
		d.text.Draw(dc, x-15, y+25, label, d.fonts.Small, color.NRGBA{R: 100, A: 255})
	}
}

// ---------- concept map ----------

func (d *DiagramDispatcher) drawConceptMap(dc *gg.Context, keyElements []string, region Region) {
	cx := region.X + region.W/2
	cy := region.Y + 100

	blue := color.NRGBA{G: 100, B: 200, A: 255}
	orange := color.NRGBA{R: 200, G: 100, A: 255}

	// Main concept node
	dc.SetColor(color.NRGBA{R: 220, G: 240, B: 255, A: 255})
	dc.DrawEllipse(cx, cy, 40, 20)
	dc.FillPreserve()
	dc.SetColor(blue)
	dc.SetLineWidth(2)
	dc.Stroke()
	d.text.Draw(dc, cx-30, cy-12, "主概念", d.fonts.Small, blue)

	// Child nodes at 120° separation
	for i := 0; i < ConceptMapChildCount; i++ {
		angle := float64(i) * 2 * math.Pi / ConceptMapChildCount
		sx := cx + 80*math.Cos(angle)
		sy := cy + 60*math.Sin(angle)

		dc.SetColor(colorMuted)
		dc.SetLineWidth(2)
		dc.DrawLine(cx, cy, sx, sy)
		dc.Stroke()

		dc.SetColor(color.NRGBA{R: 255, G: 240, B: 220, A: 255})
		dc.DrawRectangle(sx-25, sy-15, 50, 30)
		dc.FillPreserve()
		dc.SetColor(orange)
		dc.SetLineWidth(1)
		dc.Stroke()

		label := fmt.Sprintf("概念%d", i+1)
		if i < len(keyElements) && keyElements[i] != "" {
			label = firstRunes(keyElements[i], 4)
		}
		d.text.Draw(dc, sx-20, sy-10, label, d.fonts.Small, orange)
	}
}

// drawArrowhead draws a small filled triangle at (x, y) pointing along
// the given angle.
func drawArrowhead(dc *gg.Context, x, y, angle float64, col color.Color) {
	const size = 8
	dc.SetColor(col)
	dc.MoveTo(x, y)
	dc.LineTo(x-size*math.Cos(angle-0.4), y-size*math.Sin(angle-0.4))
	dc.LineTo(x-size*math.Cos(angle+0.4), y-size*math.Sin(angle+0.4))
	dc.ClosePath()
	dc.Fill()
}

func firstRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
