package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Archive keeps copies of generated export documents on local disk so
// operators can retrieve past audit snapshots without replaying the API.
type Archive struct {
	baseDir string
}

// NewArchive ensures the base directory exists and returns a handle.
func NewArchive(baseDir string) (*Archive, error) {
	if baseDir == "" {
		baseDir = "./exports"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create archive directory: %w", err)
	}
	return &Archive{baseDir: baseDir}, nil
}

// Save writes the document bytes under the archive directory and returns the
// stored filename. Path separators in filenames are rejected to keep writes
// inside the archive.
func (a *Archive) Save(filename string, data []byte) (string, error) {
	if filename == "" || strings.ContainsAny(filename, `/\`) || filename != filepath.Base(filename) {
		return "", fmt.Errorf("invalid archive filename %q", filename)
	}
	path := filepath.Join(a.baseDir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write archive file: %w", err)
	}
	return filename, nil
}

// List returns archived filenames sorted lexically, which for timestamped
// export names is also chronological.
func (a *Archive) List() ([]string, error) {
	entries, err := os.ReadDir(a.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read archive directory: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
