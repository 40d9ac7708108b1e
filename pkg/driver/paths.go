package driver

import (
	"fmt"
	"path"
)

// IconPath computes the output path for one icon following the freedesktop
// hicolor layout: <root>/hicolor/<size>x<size>/apps/<appID>.png. The appID
// is used verbatim; launchers resolve the icon by this exact name
func IconPath(root string, size int, appID string) string {
	return path.Join(root, RelativeIconPath(size, appID))
}

// RelativeIconPath computes the icon path relative to the hicolor root, as
// referenced from the GResource manifest
func RelativeIconPath(size int, appID string) string {
	return fmt.Sprintf("hicolor/%dx%d/apps/%s.png", size, size, appID)
}
