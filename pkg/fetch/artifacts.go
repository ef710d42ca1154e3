package fetch

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	pageArtifact       = "page.html"
	screenshotArtifact = "screenshot.png"
)

// artifact is a named file to keep for debugging a failed fetch.
type artifact struct {
	name string
	data []byte
}

// saveArtifacts writes each non-empty artifact into dir, creating dir if
// needed. Nothing is written when dir is empty.
func saveArtifacts(dir string, artifacts ...artifact) ([]string, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create debug dir: %w", err)
	}
	var written []string
	for _, a := range artifacts {
		if len(a.data) == 0 {
			continue
		}
		path := filepath.Join(dir, a.name)
		if err := os.WriteFile(path, a.data, 0o644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}
