package wrapper

import (
	"fmt"
	"os"
	"path/filepath"
)

// Writer stores generated files below Root, creating directories as needed
// and replacing files that already exist.
type Writer struct {
	Root   string
	DryRun bool
}

func (w *Writer) Write(rel string, data []byte) (string, error) {
	path := filepath.Join(w.Root, rel)
	if w.DryRun {
		return path, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
