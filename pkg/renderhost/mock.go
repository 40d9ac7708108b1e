package renderhost

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// MockRenderHost implements RenderHost for development and tests on machines
// without the host application installed. It records every invocation in
// order and writes a real PNG of the requested resolution, so downstream
// steps (derived sizes, manifest) exercise the same code paths as production
type MockRenderHost struct {
	scenes      map[string][]string
	invocations []RenderJob
	mu          sync.Mutex
	logger      *slog.Logger
}

// NewMockRenderHost creates a new mock render host. Blend files it has not
// been told about report a single scene named "Scene", matching a fresh
// host document
func NewMockRenderHost(logger *slog.Logger) *MockRenderHost {
	return &MockRenderHost{
		scenes: make(map[string][]string),
		logger: logger.With("component", "mock"),
	}
}

// SetScenes registers the scene names the mock reports for a blend file
func (m *MockRenderHost) SetScenes(blendFile string, scenes []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scenes[blendFile] = scenes
}

// ListScenes simulates scene enumeration
func (m *MockRenderHost) ListScenes(ctx context.Context, blendFile string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	scenes, ok := m.scenes[blendFile]
	if !ok {
		scenes = []string{"Scene"}
	}
	m.logger.Debug("Scenes listed (simulated)", "blend_file", blendFile, "scene_count", len(scenes))
	return scenes, nil
}

// RenderScene simulates a render-to-file call: the invocation is recorded
// and a flat gray PNG of the requested resolution is written to OutputPath
func (m *MockRenderHost) RenderScene(ctx context.Context, job RenderJob) error {
	m.mu.Lock()
	m.invocations = append(m.invocations, job)
	m.mu.Unlock()

	if job.ResolutionX <= 0 || job.ResolutionY <= 0 {
		return fmt.Errorf("invalid resolution %dx%d for scene %s", job.ResolutionX, job.ResolutionY, job.Scene)
	}

	if err := os.MkdirAll(filepath.Dir(job.OutputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, job.ResolutionX, job.ResolutionY))
	fill := color.RGBA{128, 128, 128, 255}
	for y := 0; y < job.ResolutionY; y++ {
		for x := 0; x < job.ResolutionX; x++ {
			img.Set(x, y, fill)
		}
	}

	f, err := os.Create(job.OutputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}

	m.logger.Debug("Scene rendered (simulated)",
		"scene", job.Scene,
		"resolution", fmt.Sprintf("%dx%d", job.ResolutionX, job.ResolutionY),
		"output", job.OutputPath)
	return nil
}

// Invocations returns a copy of every recorded render call, in order
func (m *MockRenderHost) Invocations() []RenderJob {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]RenderJob, len(m.invocations))
	copy(out, m.invocations)
	return out
}
