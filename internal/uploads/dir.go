// Package uploads implements the on-disk photo upload store.
package uploads

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Dir stores uploaded photo files under a single directory and hands
// them back by filename. Stored names are server-generated:
// "<epoch-ms>-<original client filename>".
type Dir struct {
	root string // absolute path to the uploads directory
}

// NewDir creates the uploads directory if needed and returns a store
// rooted there.
func NewDir(root string) (*Dir, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("uploads: resolve root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("uploads: create root: %w", err)
	}
	return &Dir{root: abs}, nil
}

// Root returns the absolute uploads directory path.
func (d *Dir) Root() string {
	return d.root
}

// safeName validates that name is a plain filename (no path
// separators, no traversal) and returns its absolute path under root.
func (d *Dir) safeName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("uploads: filename is required")
	}
	// Dots inside a name ("photo..jpg") are fine; only a bare dot
	// component or anything with a separator is traversal.
	cleaned := filepath.Clean(name)
	if cleaned != filepath.Base(cleaned) || cleaned == "." || cleaned == ".." {
		return "", fmt.Errorf("uploads: invalid filename: %s", name)
	}
	abs := filepath.Join(d.root, cleaned)
	if !strings.HasPrefix(abs, d.root+string(os.PathSeparator)) {
		return "", fmt.Errorf("uploads: path escapes uploads directory")
	}
	return abs, nil
}

// Save writes src to disk under a timestamp-prefixed name derived from
// the client's original filename and returns the stored name. The
// write goes through a temp file and a rename so a failed upload never
// leaves a half-written photo behind.
func (d *Dir) Save(originalName string, src io.Reader, nowMillis int64) (string, error) {
	stored := fmt.Sprintf("%d-%s", nowMillis, filepath.Base(originalName))
	abs, err := d.safeName(stored)
	if err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(d.root, ".skillet-tmp-*")
	if err != nil {
		return "", fmt.Errorf("uploads: create temp: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := io.Copy(tmp, src); err != nil {
		return "", fmt.Errorf("uploads: write: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return "", fmt.Errorf("uploads: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("uploads: close temp: %w", err)
	}
	if err := os.Rename(tmpName, abs); err != nil {
		return "", fmt.Errorf("uploads: rename: %w", err)
	}
	success = true
	return stored, nil
}

// Path resolves a stored filename to its absolute path, rejecting
// traversal attempts.
func (d *Dir) Path(filename string) (string, error) {
	return d.safeName(filename)
}
