package driver

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/shirou/gopsutil/v3/mem"

	"icon-render-driver/pkg/config"
	"icon-render-driver/pkg/gresource"
	"icon-render-driver/pkg/renderhost"
	"icon-render-driver/pkg/scaler"
)

// lowMemoryBytes is the preflight warning threshold. A headless render host
// that runs out of memory dies without a usable error message
const lowMemoryBytes = 1 << 30

// Driver runs the batch icon render against an injected host
type Driver struct {
	config config.Config
	host   renderhost.RenderHost
	scaler *scaler.Scaler
	logger *slog.Logger
}

// New creates a new driver instance
func New(cfg config.Config, host renderhost.RenderHost, logger *slog.Logger) *Driver {
	return &Driver{
		config: cfg,
		host:   host,
		scaler: scaler.New(logger),
		logger: logger.With("component", "driver"),
	}
}

// Run renders every scene of every configured blend file at the square size,
// strictly sequentially, then produces derived sizes and the manifest when
// configured. Any host failure is fatal and propagates unchanged; there are
// no retries
func (d *Driver) Run(ctx context.Context, size int, appID string) error {
	if err := config.ValidateAppID(appID); err != nil {
		return err
	}
	if size <= 0 {
		return fmt.Errorf("icon size must be a positive integer, got %d", size)
	}

	d.preflight()

	blendFiles, err := d.config.ResolveBlendFiles()
	if err != nil {
		return err
	}

	outputPath := IconPath(d.config.Icons.OutputRoot, size, appID)
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	d.logger.Info("Starting icon render",
		"size", fmt.Sprintf("%dx%d", size, size),
		"app_id", appID,
		"output", outputPath,
		"blend_files", len(blendFiles))

	// Sequential over files and scenes. All scenes share the same output
	// path: later renders overwrite earlier ones, matching the host-side
	// behavior this tool replaces
	renders := 0
	for _, blendFile := range blendFiles {
		scenes, err := d.host.ListScenes(ctx, blendFile)
		if err != nil {
			return err
		}

		for _, scene := range scenes {
			if renders > 0 {
				d.logger.Warn("Overwriting previous render", "scene", scene, "output", outputPath)
			}

			job := renderhost.RenderJob{
				BlendFile:   blendFile,
				Scene:       scene,
				ResolutionX: size,
				ResolutionY: size,
				FrameEnd:    1,
				OutputPath:  outputPath,
			}
			if err := d.host.RenderScene(ctx, job); err != nil {
				return err
			}
			renders++
		}
	}

	d.logger.Info("Render complete", "renders", renders, "output", outputPath)

	produced := []string{RelativeIconPath(size, appID)}

	if len(d.config.Icons.DerivedSizes) > 0 {
		derived, err := d.deriveSizes(ctx, outputPath, size, appID)
		if err != nil {
			return err
		}
		produced = append(produced, derived...)
	}

	if d.config.Icons.GResourcePrefix != "" {
		path, err := gresource.WriteManifest(d.config.Icons.OutputRoot, d.config.Icons.GResourcePrefix, produced)
		if err != nil {
			return err
		}
		d.logger.Info("GResource manifest written", "path", path, "files", len(produced))
	}

	return nil
}

// deriveSizes downscales the rendered master to each configured size and
// returns the produced paths relative to the output root
func (d *Driver) deriveSizes(ctx context.Context, masterPath string, masterSize int, appID string) ([]string, error) {
	sizes := d.config.Icons.DerivedSizes

	outputs := make([]string, len(sizes))
	for i, s := range sizes {
		outputs[i] = IconPath(d.config.Icons.OutputRoot, s, appID)
	}

	if _, err := d.scaler.Derive(ctx, masterPath, masterSize, sizes, outputs); err != nil {
		return nil, fmt.Errorf("failed to derive icon sizes: %w", err)
	}

	var produced []string
	for _, s := range sizes {
		if s == masterSize {
			continue
		}
		produced = append(produced, RelativeIconPath(s, appID))
	}

	d.logger.Info("Derived sizes written", "count", len(produced))
	return produced, nil
}

// preflight logs available system memory and warns when it is low. Purely
// advisory: the render is attempted either way
func (d *Driver) preflight() {
	vm, err := mem.VirtualMemory()
	if err != nil {
		d.logger.Debug("Could not read system memory", "error", err)
		return
	}

	d.logger.Debug("System memory",
		"total_mb", vm.Total/1024/1024,
		"available_mb", vm.Available/1024/1024)

	if vm.Available < lowMemoryBytes {
		d.logger.Warn("Low available memory for render host",
			"available_mb", vm.Available/1024/1024)
	}
}
