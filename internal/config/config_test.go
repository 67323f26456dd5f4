package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewDefault(t *testing.T) {
	cfg := NewDefault()

	if cfg.Data.Table != "messages" {
		t.Fatalf("expected default table 'messages', got %q", cfg.Data.Table)
	}
	if cfg.Data.LabelOffset != 4 {
		t.Fatalf("expected default label offset 4, got %d", cfg.Data.LabelOffset)
	}
	if cfg.Training.TestFraction != 0.2 {
		t.Fatalf("expected default test fraction 0.2, got %g", cfg.Training.TestFraction)
	}
	if cfg.Training.Folds != 5 {
		t.Fatalf("expected default folds 5, got %d", cfg.Training.Folds)
	}
	if cfg.Training.Rounds != 50 {
		t.Fatalf("expected default rounds 50, got %d", cfg.Training.Rounds)
	}
	// The default grid is the original 2x3x2 recipe.
	if len(cfg.Grid.NGramMax)*len(cfg.Grid.MaxDF)*len(cfg.Grid.UseIDF) != 12 {
		t.Fatalf("expected 12 default grid combinations, got %d",
			len(cfg.Grid.NGramMax)*len(cfg.Grid.MaxDF)*len(cfg.Grid.UseIDF))
	}
}

func TestValidate_Defaults(t *testing.T) {
	if errs := NewDefault().Validate(); len(errs) > 0 {
		t.Fatalf("expected default config to validate, got: %v", errs)
	}
}

func TestValidate_BadTestFraction(t *testing.T) {
	cfg := NewDefault()
	cfg.Training.TestFraction = 1.5
	errs := cfg.Validate()
	if len(errs) == 0 {
		t.Fatal("expected error for test fraction 1.5")
	}
	if !strings.Contains(errs[0].Error(), "testFraction") {
		t.Fatalf("expected error to mention 'testFraction', got: %v", errs[0])
	}
}

func TestValidate_BadMaxDF(t *testing.T) {
	cfg := NewDefault()
	cfg.Grid.MaxDF = []float64{0.5, 1.2}
	errs := cfg.Validate()
	if len(errs) == 0 {
		t.Fatal("expected error for maxDF 1.2")
	}
	if !strings.Contains(errs[0].Error(), "maxDF") {
		t.Fatalf("expected error to mention 'maxDF', got: %v", errs[0])
	}
}

func TestValidate_EmptyGridAxis(t *testing.T) {
	cfg := NewDefault()
	cfg.Grid.UseIDF = nil
	errs := cfg.Validate()
	if len(errs) == 0 {
		t.Fatal("expected error for empty useIDF axis")
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := NewDefault()
	cfg.Data.Table = ""
	cfg.Training.Folds = 1
	cfg.Log.Format = "pretty"
	errs := cfg.Validate()
	if len(errs) != 3 {
		t.Fatalf("expected 3 errors, got %d: %v", len(errs), errs)
	}
}

func TestTryLoadFromDisk_MissingFile(t *testing.T) {
	if _, err := TryLoadFromDisk("/nonexistent/config.yaml"); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestTryLoadFromDisk_OverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := `
data:
  table: corpus
training:
  folds: 3
  seed: 7
grid:
  maxDF: [0.9]
`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := TryLoadFromDisk(path)
	if err != nil {
		t.Fatalf("expected nil error, got: %v", err)
	}
	if cfg.Data.Table != "corpus" {
		t.Fatalf("expected table 'corpus', got %q", cfg.Data.Table)
	}
	if cfg.Training.Folds != 3 {
		t.Fatalf("expected folds 3, got %d", cfg.Training.Folds)
	}
	if cfg.Training.Seed != 7 {
		t.Fatalf("expected seed 7, got %d", cfg.Training.Seed)
	}
	if len(cfg.Grid.MaxDF) != 1 || cfg.Grid.MaxDF[0] != 0.9 {
		t.Fatalf("expected maxDF [0.9], got %v", cfg.Grid.MaxDF)
	}
	// Untouched fields keep their defaults.
	if cfg.Training.TestFraction != 0.2 {
		t.Fatalf("expected default test fraction 0.2, got %g", cfg.Training.TestFraction)
	}
	if len(cfg.Grid.NGramMax) != 2 {
		t.Fatalf("expected default ngramMax axis, got %v", cfg.Grid.NGramMax)
	}
}
