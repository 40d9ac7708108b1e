package renderhost

import "context"

// RenderHost is the interface for operations on the external 3D-content
// host. This abstraction keeps the host an injected collaborator: scene
// representation, rasterization and render I/O all belong to the host
type RenderHost interface {
	ListScenes(ctx context.Context, blendFile string) ([]string, error)
	RenderScene(ctx context.Context, job RenderJob) error
}

// RenderJob describes one render-to-file invocation. The driver only ever
// mutates these four scene settings; everything else stays host-owned
type RenderJob struct {
	BlendFile   string
	Scene       string
	ResolutionX int
	ResolutionY int
	FrameEnd    int
	OutputPath  string
}
