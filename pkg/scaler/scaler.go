package scaler

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
)

// Scaler derives additional icon sizes from a rendered master image. Only
// downscaling is supported: deriving a size larger than the master would
// fabricate detail the render never produced
type Scaler struct {
	logger *slog.Logger
}

// New creates a new scaler
func New(logger *slog.Logger) *Scaler {
	return &Scaler{logger: logger.With("component", "scaler")}
}

// Derive downscales the master PNG to each requested square size and writes
// the results to the given output paths (sizes[i] -> outputs[i]). Sizes
// equal to the master are skipped (that file already exists); sizes larger
// than the master are an error. Scaling runs concurrently across sizes
func (s *Scaler) Derive(ctx context.Context, masterPath string, masterSize int, sizes []int, outputs []string) ([]string, error) {
	if len(sizes) != len(outputs) {
		return nil, fmt.Errorf("sizes and outputs length mismatch: %d vs %d", len(sizes), len(outputs))
	}

	for _, size := range sizes {
		if size > masterSize {
			return nil, fmt.Errorf("derived size %d exceeds master size %d (upscaling refused)", size, masterSize)
		}
	}

	f, err := os.Open(masterPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open master image: %w", err)
	}
	master, err := png.Decode(f)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to decode master image: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	var produced []string
	for i, size := range sizes {
		if size == masterSize {
			s.logger.Debug("Skipping derived size equal to master", "size", size)
			continue
		}
		produced = append(produced, outputs[i])

		size, output := size, outputs[i]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return s.scaleTo(master, size, output)
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Strings(produced)
	return produced, nil
}

func (s *Scaler) scaleTo(master image.Image, size int, output string) error {
	if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
		return fmt.Errorf("failed to create output directory for %dx%d: %w", size, size, err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), master, master.Bounds(), draw.Over, nil)

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", output, err)
	}
	defer f.Close()

	if err := png.Encode(f, dst); err != nil {
		return fmt.Errorf("failed to encode %s: %w", output, err)
	}

	s.logger.Debug("Derived icon written", "size", size, "output", output)
	return nil
}
