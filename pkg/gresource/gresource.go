package gresource

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// ManifestName is the file glib-compile-resources expects next to the icon
// tree
const ManifestName = "icons.gresource.xml"

type manifest struct {
	XMLName   xml.Name  `xml:"gresources"`
	GResource gresource `xml:"gresource"`
}

type gresource struct {
	Prefix string   `xml:"prefix,attr"`
	Files  []string `xml:"file"`
}

// WriteManifest writes icons.gresource.xml into rootDir, listing the given
// files (paths relative to rootDir) under the resource prefix. The manifest
// is consumed unchanged by glib-compile-resources in the downstream build
func WriteManifest(rootDir, prefix string, files []string) (string, error) {
	if prefix == "" {
		return "", fmt.Errorf("gresource prefix must not be empty")
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no files to list in manifest")
	}

	sorted := make([]string, len(files))
	copy(sorted, files)
	sort.Strings(sorted)

	doc := manifest{
		GResource: gresource{
			Prefix: prefix,
			Files:  sorted,
		},
	}

	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal manifest: %w", err)
	}
	data = append([]byte(xml.Header), data...)
	data = append(data, '\n')

	path := filepath.Join(rootDir, ManifestName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}
	return path, nil
}
