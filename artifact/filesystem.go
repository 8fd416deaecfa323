package artifact

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// FilesystemStore writes artifacts to disk, one directory per run under a
// fixed root. Benchmark runs use it to leave transcripts and reports behind
// for later inspection.
type FilesystemStore struct {
	root string
}

// NewFilesystemStore builds a store rooted at the given directory, creating
// it if necessary.
func NewFilesystemStore(root string) (*FilesystemStore, error) {
	if root == "" {
		return nil, fmt.Errorf("filesystem store: root directory is required")
	}

	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("filesystem store: create root: %w", err)
	}

	return &FilesystemStore{root: root}, nil
}

// Save writes the artifact bytes to <root>/<runID>/<name>.
func (s *FilesystemStore) Save(runID, name string, data []byte) error {
	if err := validateKey(runID, name); err != nil {
		return err
	}

	dir := filepath.Join(s.root, runID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("filesystem store: create run dir: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return fmt.Errorf("filesystem store: write artifact: %w", err)
	}

	return nil
}

// Get reads the artifact bytes or returns ErrNotFound.
func (s *FilesystemStore) Get(runID, name string) ([]byte, error) {
	if err := validateKey(runID, name); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(s.root, runID, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("filesystem store: read artifact: %w", err)
	}

	return data, nil
}

// List returns the sorted artifact names stored for the run. A run with no
// directory yields an empty slice.
func (s *FilesystemStore) List(runID string) ([]string, error) {
	if err := validateKey(runID, runID); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(filepath.Join(s.root, runID))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}

		return nil, fmt.Errorf("filesystem store: list run: %w", err)
	}

	names := make([]string, 0, len(entries))

	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}

	sort.Strings(names)

	return names, nil
}

// Delete removes the artifact file or returns ErrNotFound.
func (s *FilesystemStore) Delete(runID, name string) error {
	if err := validateKey(runID, name); err != nil {
		return err
	}

	if err := os.Remove(filepath.Join(s.root, runID, name)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}

		return fmt.Errorf("filesystem store: delete artifact: %w", err)
	}

	return nil
}
