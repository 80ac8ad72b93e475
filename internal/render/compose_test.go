package render

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/yungbote/studycards-backend/internal/domain"
	"github.com/yungbote/studycards-backend/internal/logger"
)

func newTestComposer(t *testing.T) *CardComposer {
	t.Helper()
	cfg := DefaultConfig()
	fonts := LoadFonts(logger.Nop(), nil)
	return NewCardComposer(logger.Nop(), cfg, fonts)
}

func mathNote() (string, domain.NoteData, domain.Classification) {
	note := domain.NoteData{
		Title: "二次函数",
		Concepts: []domain.Concept{
			{Term: "抛物线", Definition: "二次函数的图像"},
			{Term: "顶点", Definition: "抛物线的最高点或最低点"},
		},
		Formulas:        []domain.Formula{{Name: "一般式", Formula: "y = ax^2 + bx + c", Description: "a 决定开口方向"}},
		DetailedContent: "二次函数的图像是抛物线，由系数决定开口方向和宽窄",
		Steps:           []string{"确定系数", "求顶点", "画出图像"},
		Notes:           []string{"注意 a 不为零"},
	}
	cls := domain.Classification{
		Subject:                  domain.SubjectMath,
		Confidence:               0.8,
		VisualizationType:        "数学图形",
		VisualizationDescription: "绘制函数图像",
	}
	return note.Title, note, cls
}

func TestComposeCanvasSize(t *testing.T) {
	c := newTestComposer(t)
	title, note, cls := mathNote()

	img := c.Compose(title, note, cls, nil)
	bounds := img.Bounds()
	if bounds.Dx() != 1200 || bounds.Dy() != 1600 {
		t.Fatalf("expected 1200x1600 canvas, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestComposeToleratesEmptySectionEntries(t *testing.T) {
	c := newTestComposer(t)
	note := domain.NoteData{
		Title: "标题",
		Steps: []string{"", "步骤"},
		Notes: []string{""},
	}
	data, err := c.ComposePNG(note.Title, note, domain.Classification{Subject: domain.SubjectGeneral}, nil)
	if err != nil {
		t.Fatalf("ComposePNG failed on empty section entries: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected non-empty PNG bytes")
	}
}

func TestComposeEmptyNoteStillRenders(t *testing.T) {
	c := newTestComposer(t)
	img := c.Compose("标题", domain.NoteData{}, domain.Classification{Subject: domain.SubjectGeneral}, nil)
	if img.Bounds().Dx() != 1200 || img.Bounds().Dy() != 1600 {
		t.Fatalf("empty note must still produce a full-size card")
	}
}

func TestComposePNGEncodes(t *testing.T) {
	c := newTestComposer(t)
	title, note, cls := mathNote()

	data, err := c.ComposePNG(title, note, cls, nil)
	if err != nil {
		t.Fatalf("ComposePNG failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected non-empty PNG bytes")
	}
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not valid PNG: %v", err)
	}
	if decoded.Bounds().Dx() != 1200 || decoded.Bounds().Dy() != 1600 {
		t.Fatalf("decoded PNG has wrong size: %v", decoded.Bounds())
	}
}

func TestComposeWithIllustrationUsesFullCard(t *testing.T) {
	c := newTestComposer(t)
	title, note, cls := mathNote()

	illustration := image.NewRGBA(image.Rect(0, 0, 640, 480))
	img := c.Compose(title, note, cls, illustration)
	if img.Bounds().Dx() != 1200 || img.Bounds().Dy() != 1600 {
		t.Fatalf("illustrated card must keep the fixed canvas size")
	}
}

func TestComposeDiagramPathDiffersFromIllustrationPath(t *testing.T) {
	c := newTestComposer(t)
	title, note, cls := mathNote()

	plain := c.Compose(title, note, cls, nil)
	illustrated := c.Compose(title, note, cls, image.NewRGBA(image.Rect(0, 0, 100, 100)))

	if bytes.Equal(rgbaPixels(plain), rgbaPixels(illustrated)) {
		t.Fatalf("illustration path should change the card")
	}
}

func rgbaPixels(img image.Image) []byte {
	bounds := img.Bounds()
	out := make([]byte, 0, bounds.Dx()*bounds.Dy()*4)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			out = append(out, byte(r>>8), byte(g>>8), byte(b>>8), byte(a>>8))
		}
	}
	return out
}
