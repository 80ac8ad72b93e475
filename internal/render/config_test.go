package render

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigShape(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Width != 1200 || cfg.Height != 1600 || cfg.Margin != 80 {
		t.Fatalf("unexpected canvas defaults: %dx%d margin %d", cfg.Width, cfg.Height, cfg.Margin)
	}
	if cfg.ContentWidth() != 1040 {
		t.Fatalf("unexpected content width: %d", cfg.ContentWidth())
	}
	if cfg.Caps.Concepts != 2 || cfg.Caps.Formulas != 1 {
		t.Fatalf("unexpected caps: %+v", cfg.Caps)
	}
	if len(cfg.Keywords.Math) == 0 || len(cfg.Keywords.Physics) == 0 {
		t.Fatalf("keyword vocabularies must not be empty")
	}
}

func TestLoadConfigEmptyPathIsDefault(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Width != DefaultConfig().Width {
		t.Fatalf("empty path should return defaults")
	}
}

func TestLoadConfigOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "render.yaml")
	doc := "margin: 60\ncaps:\n  concepts: 4\nkeywords:\n  math: [\"矩阵\"]\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Margin != 60 {
		t.Fatalf("margin overlay not applied: %d", cfg.Margin)
	}
	if cfg.Caps.Concepts != 4 {
		t.Fatalf("caps overlay not applied: %+v", cfg.Caps)
	}
	if len(cfg.Keywords.Math) != 1 || cfg.Keywords.Math[0] != "矩阵" {
		t.Fatalf("keyword overlay not applied: %v", cfg.Keywords.Math)
	}
	// Untouched fields keep their defaults.
	if cfg.Width != 1200 {
		t.Fatalf("width should keep its default, got %d", cfg.Width)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig("/nonexistent/render.yaml"); err == nil {
		t.Fatalf("expected an error for a missing config file")
	}
}
