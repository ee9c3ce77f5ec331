package config

import (
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Analyzer.SpatialConfig.ProximityThreshold != 10 {
		t.Errorf("expected proximity threshold 10, got %g",
			cfg.Analyzer.SpatialConfig.ProximityThreshold)
	}
	if cfg.Fitting.MinFontSize != 8 || cfg.Fitting.MaxFontSize != 72 {
		t.Errorf("expected font bounds [8,72], got [%g,%g]",
			cfg.Fitting.MinFontSize, cfg.Fitting.MaxFontSize)
	}
	if cfg.Conflict.MinSpacing != 5 {
		t.Errorf("expected min spacing 5, got %g", cfg.Conflict.MinSpacing)
	}
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	yaml := `
fitting:
  min_font_size: 6
conflict:
  min_spacing: 10
`

	cfg, err := Load(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Overridden values
	if cfg.Fitting.MinFontSize != 6 {
		t.Errorf("expected min font size 6, got %g", cfg.Fitting.MinFontSize)
	}
	if cfg.Conflict.MinSpacing != 10 {
		t.Errorf("expected min spacing 10, got %g", cfg.Conflict.MinSpacing)
	}

	// Untouched settings keep their defaults
	if cfg.Fitting.MaxFontSize != 72 {
		t.Errorf("expected default max font size 72, got %g", cfg.Fitting.MaxFontSize)
	}
	if cfg.Analyzer.MergeConfig.MaxHorizontalGap != 20 {
		t.Errorf("expected default horizontal gap 20, got %g",
			cfg.Analyzer.MergeConfig.MaxHorizontalGap)
	}
}

func TestLoad_NestedAnalyzerSettings(t *testing.T) {
	yaml := `
analyzer:
  spatial:
    proximity_threshold: 25
  merge:
    column_bucket_width: 200
`

	cfg, err := Load(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Analyzer.SpatialConfig.ProximityThreshold != 25 {
		t.Errorf("expected proximity threshold 25, got %g",
			cfg.Analyzer.SpatialConfig.ProximityThreshold)
	}
	if cfg.Analyzer.MergeConfig.ColumnBucketWidth != 200 {
		t.Errorf("expected column bucket width 200, got %g",
			cfg.Analyzer.MergeConfig.ColumnBucketWidth)
	}
	// Sibling settings stay at their defaults
	if cfg.Analyzer.SpatialConfig.MinConfidence != 0.1 {
		t.Errorf("expected default min confidence 0.1, got %g",
			cfg.Analyzer.SpatialConfig.MinConfidence)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	if _, err := Load(strings.NewReader("fitting: [not a mapping")); err == nil {
		t.Error("expected an error for malformed YAML")
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile("/nonexistent/reflow.yaml"); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestEngineConfig(t *testing.T) {
	cfg := Default()
	cfg.Fitting.MaxFontReduction = 0.5

	engineCfg := cfg.EngineConfig()
	if engineCfg.Fitting.MaxFontReduction != 0.5 {
		t.Errorf("expected the fitting config to carry over, got %g",
			engineCfg.Fitting.MaxFontReduction)
	}
	if engineCfg.Conflict.MinSpacing != 5 {
		t.Errorf("expected the conflict config to carry over, got %g",
			engineCfg.Conflict.MinSpacing)
	}
}
