package renderhost

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"icon-render-driver/pkg/config"
)

//go:embed scripts/render_scene.py
var renderSceneScript string

//go:embed scripts/list_scenes.py
var listScenesScript string

// sceneMarker prefixes scene names in list_scenes.py output so they can be
// told apart from the host's own startup chatter
const sceneMarker = "ICON_SCENE:"

// BlenderHost implements RenderHost against a headless Blender process
type BlenderHost struct {
	config config.Config
	logger *slog.Logger
}

// NewBlenderHost creates a new Blender-backed render host
func NewBlenderHost(cfg config.Config, logger *slog.Logger) *BlenderHost {
	return &BlenderHost{
		config: cfg,
		logger: logger.With("component", "blender"),
	}
}

// ListScenes returns the names of every scene in the blend file, in the
// host's own collection order
func (b *BlenderHost) ListScenes(ctx context.Context, blendFile string) ([]string, error) {
	output, err := b.RunPython(ctx, blendFile, listScenesScript, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenes in %s: %w", blendFile, err)
	}

	var scenes []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if name, ok := strings.CutPrefix(line, sceneMarker); ok {
			scenes = append(scenes, name)
		}
	}

	if len(scenes) == 0 {
		return nil, fmt.Errorf("host reported no scenes in %s", blendFile)
	}

	b.logger.Debug("Scenes listed", "blend_file", blendFile, "scene_count", len(scenes))
	return scenes, nil
}

// RenderScene configures one scene and invokes the host's render-to-file
// operator. The four scene settings travel to the host-side script through
// the subprocess environment; the render call is synchronous and blocking
func (b *BlenderHost) RenderScene(ctx context.Context, job RenderJob) error {
	env := []string{
		"ICON_SCENE=" + job.Scene,
		"ICON_RES_X=" + strconv.Itoa(job.ResolutionX),
		"ICON_RES_Y=" + strconv.Itoa(job.ResolutionY),
		"ICON_FRAME_END=" + strconv.Itoa(job.FrameEnd),
		"ICON_OUTPUT_PATH=" + job.OutputPath,
	}

	b.logger.Info("Rendering scene",
		"blend_file", job.BlendFile,
		"scene", job.Scene,
		"resolution", fmt.Sprintf("%dx%d", job.ResolutionX, job.ResolutionY),
		"output", job.OutputPath)

	if _, err := b.RunPython(ctx, job.BlendFile, renderSceneScript, env); err != nil {
		return fmt.Errorf("render failed for scene %s: %w", job.Scene, err)
	}

	b.logger.Debug("Scene rendered", "scene", job.Scene, "output", job.OutputPath)
	return nil
}
