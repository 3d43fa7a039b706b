package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromFirstRunWritesDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadFrom(dir)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("expected default config.yaml to be created: %v", err)
	}

	if cfg.OutputDir != DefaultOutputDir {
		t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, DefaultOutputDir)
	}
	if cfg.AppName != DefaultAppName {
		t.Errorf("AppName = %q, want %q", cfg.AppName, DefaultAppName)
	}
	if cfg.Size != DefaultSize {
		t.Errorf("Size = %q, want %q", cfg.Size, DefaultSize)
	}
	if cfg.AvgFields != DefaultAvgFields {
		t.Errorf("AvgFields = %d, want %d", cfg.AvgFields, DefaultAvgFields)
	}
	if cfg.RelationDensity != DefaultRelationDensity {
		t.Errorf("RelationDensity = %g, want %g", cfg.RelationDensity, DefaultRelationDensity)
	}
	if cfg.Python != DefaultPython {
		t.Errorf("Python = %q, want %q", cfg.Python, DefaultPython)
	}
	if cfg.Domain != "" {
		t.Errorf("Domain = %q, want empty", cfg.Domain)
	}
	if cfg.VocabDir != filepath.Join(dir, "vocab") {
		t.Errorf("VocabDir = %q, want %q", cfg.VocabDir, filepath.Join(dir, "vocab"))
	}
}

func TestLoadFromReadsOverrides(t *testing.T) {
	dir := t.TempDir()

	content := "output_dir: /srv/fixtures\ndomain: saas\nsize: large\navg_fields: 8\nrelation_density: 0.6\npython: python3.12\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFrom(dir)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if cfg.OutputDir != "/srv/fixtures" {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
	if cfg.Domain != "saas" || cfg.Size != "large" {
		t.Errorf("Domain/Size = %q/%q", cfg.Domain, cfg.Size)
	}
	if cfg.AvgFields != 8 || cfg.RelationDensity != 0.6 {
		t.Errorf("AvgFields/RelationDensity = %d/%g", cfg.AvgFields, cfg.RelationDensity)
	}
	if cfg.Python != "python3.12" {
		t.Errorf("Python = %q", cfg.Python)
	}
	// Unset keys keep their defaults.
	if cfg.AppName != DefaultAppName {
		t.Errorf("AppName = %q, want default", cfg.AppName)
	}
}

func TestLoadFromDoesNotClobberExistingFile(t *testing.T) {
	dir := t.TempDir()

	content := "app_name: customapp\n"
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := LoadFrom(dir); err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read config back: %v", err)
	}
	if string(data) != content {
		t.Error("LoadFrom overwrote an existing config.yaml")
	}
}

func TestLoadFromRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown size", "size: enormous\n"},
		{"negative avg_fields", "avg_fields: -2\n"},
		{"density above one", "relation_density: 1.5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(tt.content), 0o644); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}

			if _, err := LoadFrom(dir); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{Size: "small", AvgFields: 3, RelationDensity: 0.0}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}

	cfg.RelationDensity = -0.1
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative density")
	}
}
