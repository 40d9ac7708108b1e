package config

import (
	"os"
	"path/filepath"
	"testing"
)

// ========================================
// Icon Size Contract Tests
// ========================================

func TestParseIconSize_Valid(t *testing.T) {
	size, err := ParseIconSize("48")
	if err != nil {
		t.Fatalf("Failed to parse valid size: %v", err)
	}
	if size != 48 {
		t.Errorf("Expected 48, got %d", size)
	}
}

func TestParseIconSize_Invalid(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"non-numeric", "abc"},
		{"zero", "0"},
		{"negative", "-48"},
		{"float", "48.5"},
		{"trailing garbage", "48px"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseIconSize(tc.raw); err == nil {
				t.Errorf("Expected error for %q, got nil", tc.raw)
			}
		})
	}
}

func TestValidateAppID(t *testing.T) {
	if err := ValidateAppID("org.example.App"); err != nil {
		t.Errorf("Expected valid app ID to pass, got %v", err)
	}
	if err := ValidateAppID(""); err == nil {
		t.Error("Expected error for empty app ID, got nil")
	}
}

// ========================================
// Config Loading Tests
// ========================================

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Blender.Binary != "blender" {
		t.Errorf("Expected default binary 'blender', got %q", cfg.Blender.Binary)
	}
	if cfg.Icons.OutputRoot != "assets/icons" {
		t.Errorf("Expected default output root 'assets/icons', got %q", cfg.Icons.OutputRoot)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Errorf("Unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadFromFile(t *testing.T) {
	configYAML := `
blender:
  binary: blender
  blend_dir: res/icons
icons:
  output_root: res/icons
  derived_sizes: [16, 32, 48]
  gresource_prefix: /org/example/App/icons
logging:
  level: debug
debug:
  use_mock: true
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(configYAML), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Blender.BlendDir != "res/icons" {
		t.Errorf("Expected blend_dir 'res/icons', got %q", cfg.Blender.BlendDir)
	}
	if cfg.Icons.OutputRoot != "res/icons" {
		t.Errorf("Expected output_root 'res/icons', got %q", cfg.Icons.OutputRoot)
	}
	if len(cfg.Icons.DerivedSizes) != 3 {
		t.Errorf("Expected 3 derived sizes, got %v", cfg.Icons.DerivedSizes)
	}
	if cfg.Icons.GResourcePrefix != "/org/example/App/icons" {
		t.Errorf("Unexpected gresource prefix %q", cfg.Icons.GResourcePrefix)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Expected default format to apply, got %q", cfg.Logging.Format)
	}
}

func TestLoadFromFile_InvalidDerivedSize(t *testing.T) {
	configYAML := `
icons:
  derived_sizes: [48, -16]
debug:
  use_mock: true
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(configYAML), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	if _, err := LoadFromFile(path); err == nil {
		t.Error("Expected error for negative derived size, got nil")
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected error for missing config file, got nil")
	}
}

// ========================================
// Blend File Resolution Tests
// ========================================

func TestResolveBlendFiles_ScanDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.blend", "a.blend", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}

	cfg := Default()
	cfg.Blender.BlendDir = dir

	files, err := cfg.ResolveBlendFiles()
	if err != nil {
		t.Fatalf("Failed to resolve blend files: %v", err)
	}

	if len(files) != 2 {
		t.Fatalf("Expected 2 blend files, got %v", files)
	}
	if filepath.Base(files[0]) != "a.blend" || filepath.Base(files[1]) != "b.blend" {
		t.Errorf("Expected sorted blend files, got %v", files)
	}
}

func TestResolveBlendFiles_ExplicitMissing(t *testing.T) {
	cfg := Default()
	cfg.Blender.BlendFiles = []string{filepath.Join(t.TempDir(), "missing.blend")}

	if _, err := cfg.ResolveBlendFiles(); err == nil {
		t.Error("Expected error for missing explicit blend file, got nil")
	}
}

func TestResolveBlendFiles_MockFallback(t *testing.T) {
	cfg := Default()
	cfg.Blender.BlendDir = filepath.Join(t.TempDir(), "does-not-exist")
	cfg.Debug.UseMock = true

	files, err := cfg.ResolveBlendFiles()
	if err != nil {
		t.Fatalf("Expected mock fallback, got error: %v", err)
	}
	if len(files) != 1 {
		t.Errorf("Expected single placeholder blend file, got %v", files)
	}
}
