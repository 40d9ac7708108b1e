package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	Blender BlenderConfig `yaml:"blender"`
	Icons   IconsConfig   `yaml:"icons"`
	Logging LoggingConfig `yaml:"logging"`
	Debug   DebugConfig   `yaml:"debug"`
}

// BlenderConfig holds settings for the external render host
type BlenderConfig struct {
	Binary     string   `yaml:"binary"`      // Path to the blender executable (default: "blender" from PATH)
	BlendFiles []string `yaml:"blend_files"` // Explicit list of .blend files to render
	BlendDir   string   `yaml:"blend_dir"`   // Directory to scan for .blend files when blend_files is empty
	ExtraArgs  []string `yaml:"extra_args"`  // Additional arguments passed to every host invocation
}

// IconsConfig holds output layout configuration
type IconsConfig struct {
	OutputRoot      string `yaml:"output_root"`      // Root of the hicolor tree (default: assets/icons)
	DerivedSizes    []int  `yaml:"derived_sizes"`    // Additional sizes downscaled from the rendered master
	GResourcePrefix string `yaml:"gresource_prefix"` // When set, write icons.gresource.xml with this resource prefix
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level     string `yaml:"level"`     // Log level: debug, info, warn, error (default: info)
	Format    string `yaml:"format"`    // Log format: text, json (default: text)
	Directory string `yaml:"directory"` // Directory for a log file copy (default: stdout only)
}

// DebugConfig holds debugging configuration
type DebugConfig struct {
	UseMock bool `yaml:"use_mock"` // Use mock render host for development/testing
}

// Default returns a Config with all defaults applied, for running without a
// config file
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	config.applyDefaults()

	// Derived sizes must themselves be valid icon sizes
	for _, size := range config.Icons.DerivedSizes {
		if size <= 0 {
			return nil, fmt.Errorf("icons.derived_sizes contains invalid size %d", size)
		}
	}

	// Validate the host binary unless in mock mode; the binary may live on
	// PATH, so only explicit paths are checked for existence
	if !config.Debug.UseMock {
		if strings.ContainsRune(config.Blender.Binary, os.PathSeparator) {
			if _, err := os.Stat(config.Blender.Binary); err != nil {
				return nil, fmt.Errorf("blender binary not found at %s: %w", config.Blender.Binary, err)
			}
		}
	}

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Blender.Binary == "" {
		c.Blender.Binary = "blender"
	}
	if c.Blender.BlendDir == "" {
		c.Blender.BlendDir = "assets/icons"
	}
	if c.Icons.OutputRoot == "" {
		c.Icons.OutputRoot = "assets/icons"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
}

// ResolveBlendFiles returns the blend files to render: the explicit list if
// provided, otherwise every .blend file found in blend_dir (sorted by name).
// In mock mode a missing tree resolves to a placeholder file so the tool can
// run on machines without the assets checked out
func (c *Config) ResolveBlendFiles() ([]string, error) {
	if len(c.Blender.BlendFiles) > 0 {
		if !c.Debug.UseMock {
			for _, f := range c.Blender.BlendFiles {
				if _, err := os.Stat(f); err != nil {
					return nil, fmt.Errorf("blend file not found at %s: %w", f, err)
				}
			}
		}
		return c.Blender.BlendFiles, nil
	}

	entries, err := os.ReadDir(c.Blender.BlendDir)
	if err != nil {
		if c.Debug.UseMock {
			return []string{filepath.Join(c.Blender.BlendDir, "icon.blend")}, nil
		}
		return nil, fmt.Errorf("failed to scan blend directory %s: %w", c.Blender.BlendDir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(e.Name()), ".blend") {
			files = append(files, filepath.Join(c.Blender.BlendDir, e.Name()))
		}
	}
	sort.Strings(files)

	if len(files) == 0 {
		if c.Debug.UseMock {
			return []string{filepath.Join(c.Blender.BlendDir, "icon.blend")}, nil
		}
		return nil, fmt.Errorf("no .blend files found in %s", c.Blender.BlendDir)
	}
	return files, nil
}

// ParseIconSize parses the XY environment value: a positive integer encoded
// as text, the icon's edge length in pixels. There is no default; an absent
// or malformed value is an error before any render is attempted
func ParseIconSize(raw string) (int, error) {
	if raw == "" {
		return 0, fmt.Errorf("XY is required and must be set in the environment")
	}
	size, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("XY must be a positive integer, got %q: %w", raw, err)
	}
	if size <= 0 {
		return 0, fmt.Errorf("XY must be a positive integer, got %d", size)
	}
	return size, nil
}

// ValidateAppID checks the APP_ID environment value: an opaque identifier
// used verbatim in the output path, required with no default
func ValidateAppID(appID string) error {
	if appID == "" {
		return fmt.Errorf("APP_ID is required and must be set in the environment")
	}
	return nil
}
