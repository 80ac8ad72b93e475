package render

import (
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/studycards-backend/internal/domain"
)

// Caps are the per-section display limits. Content beyond a cap is
// silently not rendered; there is no truncation indicator on the card.
type Caps struct {
	Concepts        int `yaml:"concepts"`
	ConceptDefLines int `yaml:"concept_def_lines"`
	Formulas        int `yaml:"formulas"`
	ContentLines    int `yaml:"content_lines"`
	Steps           int `yaml:"steps"`
	Notes           int `yaml:"notes"`
}

// KeywordVocab drives the deterministic classification fallback and the
// diagram variant selection. The words are data, not control flow, so a
// deployment can retarget them without code changes.
type KeywordVocab struct {
	Math    []string `yaml:"math"`
	Physics []string `yaml:"physics"`
	Tangent []string `yaml:"tangent"`
	Limit   []string `yaml:"limit"`
	Force   []string `yaml:"force"`
	Wave    []string `yaml:"wave"`
}

// Config is the render tuning for one deployment. It is loaded once at
// startup and shared read-only by every render call.
type Config struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Margin int `yaml:"margin"`

	FontPaths []string `yaml:"font_paths"`

	Caps     Caps         `yaml:"caps"`
	Keywords KeywordVocab `yaml:"keywords"`
}

func (c Config) ContentWidth() int {
	return c.Width - 2*c.Margin
}

// DefaultConfig returns the compiled-in tuning: a 1200x1600 portrait card
// and the stock CJK keyword vocabularies.
func DefaultConfig() Config {
	return Config{
		Width:  1200,
		Height: 1600,
		Margin: 80,
		FontPaths: []string{
			"/System/Library/Fonts/STHeiti Medium.ttc",
			"/System/Library/Fonts/Hiragino Sans GB.ttc",
			"C:/Windows/Fonts/msyh.ttc",
			"C:/Windows/Fonts/simhei.ttf",
			"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc",
			"/usr/share/fonts/truetype/wqy/wqy-microhei.ttc",
			"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		},
		Caps: Caps{
			Concepts:        2,
			ConceptDefLines: 2,
			Formulas:        1,
			ContentLines:    4,
			Steps:           3,
			Notes:           2,
		},
		Keywords: KeywordVocab{
			Math:    []string{"函数", "导数", "积分", "极限", "方程", "几何"},
			Physics: []string{"力", "能量", "电", "磁", "光", "热"},
			Tangent: []string{"导数", "切线"},
			Limit:   []string{"极限"},
			Force:   []string{"力", "矢量"},
			Wave:    []string{"波", "振动"},
		},
	}
}

// LoadConfig overlays a YAML file onto DefaultConfig. An empty path means
// defaults only.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read render config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse render config: %w", err)
	}
	return cfg, nil
}

// Subject-to-background pastels. Unmapped subjects get the gray default.
var subjectBackgrounds = map[domain.Subject]color.NRGBA{
	domain.SubjectMath:      {R: 240, G: 248, B: 255, A: 255},
	domain.SubjectPhysics:   {R: 255, G: 248, B: 240, A: 255},
	domain.SubjectChemistry: {R: 248, G: 255, B: 240, A: 255},
	domain.SubjectBiology:   {R: 255, G: 240, B: 248, A: 255},
	domain.SubjectHistory:   {R: 255, G: 255, B: 240, A: 255},
	domain.SubjectLanguage:  {R: 248, G: 240, B: 255, A: 255},
	domain.SubjectGeneral:   {R: 248, G: 248, B: 248, A: 255},
}

var defaultBackground = color.NRGBA{R: 248, G: 248, B: 248, A: 255}

// Saturated per-subject accents for the footer label plate.
var subjectAccents = map[domain.Subject]color.NRGBA{
	domain.SubjectMath:      {R: 59, G: 130, B: 246, A: 255},
	domain.SubjectPhysics:   {R: 249, G: 115, B: 22, A: 255},
	domain.SubjectChemistry: {R: 34, G: 197, B: 94, A: 255},
	domain.SubjectBiology:   {R: 236, G: 72, B: 153, A: 255},
	domain.SubjectHistory:   {R: 202, G: 138, B: 4, A: 255},
	domain.SubjectLanguage:  {R: 168, G: 85, B: 247, A: 255},
	domain.SubjectGeneral:   {R: 120, G: 80, B: 140, A: 255},
}

var subjectNames = map[domain.Subject]string{
	domain.SubjectMath:      "数学",
	domain.SubjectPhysics:   "物理",
	domain.SubjectChemistry: "化学",
	domain.SubjectBiology:   "生物",
	domain.SubjectHistory:   "历史",
	domain.SubjectLanguage:  "语言",
	domain.SubjectGeneral:   "通用",
}

// Section accent palette, shared by the layout engine.
var (
	colorConceptAccent = color.NRGBA{R: 59, G: 130, B: 246, A: 255}
	colorFormulaAccent = color.NRGBA{R: 168, G: 85, B: 247, A: 255}
	colorFormulaText   = color.NRGBA{R: 88, G: 28, B: 135, A: 255}
	colorContentAccent = color.NRGBA{R: 34, G: 197, B: 94, A: 255}
	colorContentText   = color.NRGBA{R: 22, G: 101, B: 52, A: 255}
	colorStepAccent    = color.NRGBA{R: 249, G: 115, B: 22, A: 255}
	colorStepText      = color.NRGBA{R: 154, G: 52, B: 18, A: 255}
	colorNoteAccent    = color.NRGBA{R: 239, G: 68, B: 68, A: 255}
	colorNoteText      = color.NRGBA{R: 127, G: 29, B: 29, A: 255}
	colorHeadline      = color.NRGBA{R: 30, G: 41, B: 59, A: 255}
	colorBodyText      = color.NRGBA{R: 71, G: 85, B: 105, A: 255}
	colorMuted         = color.NRGBA{R: 150, G: 150, B: 150, A: 255}
	colorAxis          = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
)
