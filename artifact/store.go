package artifact

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when no artifact exists for the given run and
	// name pair.
	ErrNotFound = errors.New("artifact: not found")

	// ErrInvalidName is returned when a run id or artifact name is empty or
	// contains a path separator.
	ErrInvalidName = errors.New("artifact: invalid name")
)

// Store persists opaque benchmark artifacts under run scoped names.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save stores (or overwrites) the artifact bytes.
	Save(runID, name string, data []byte) error

	// Get returns a copy of the stored bytes or ErrNotFound.
	Get(runID, name string) ([]byte, error)

	// List returns the artifact names stored for the run, sorted.
	List(runID string) ([]string, error)

	// Delete removes the artifact or returns ErrNotFound.
	Delete(runID, name string) error
}

// validateKey rejects empty components and anything that could escape a
// backing directory when keys are mapped onto paths.
func validateKey(runID, name string) error {
	for _, part := range []string{runID, name} {
		if part == "" || part == "." || part == ".." {
			return ErrInvalidName
		}

		if strings.ContainsAny(part, `/\`) {
			return ErrInvalidName
		}
	}

	return nil
}
