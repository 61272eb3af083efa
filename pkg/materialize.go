package casetree

import (
	"fmt"
	"os"
)

// DirOutcome is the result of an EnsureDir call
type DirOutcome int

const (
	// DirCreated means the directory (and, when requested, missing
	// ancestors) now exists and was created by this call.
	DirCreated DirOutcome = iota

	// DirAlreadyExists means the directory was already present.
	// Not an error; callers log a warning at most.
	DirAlreadyExists

	// DirParentMissing means createParents was false and an
	// ancestor is absent. The caller decides whether that is fatal
	// to the row.
	DirParentMissing
)

// String returns a short label for logging
func (o DirOutcome) String() string {
	switch o {
	case DirCreated:
		return "created"
	case DirAlreadyExists:
		return "already-exists"
	case DirParentMissing:
		return "parent-missing"
	default:
		return "unknown"
	}
}

// EnsureDir creates the directory at path, and its ancestors when
// createParents is set. Idempotent: a second call with the same
// arguments reports DirAlreadyExists and touches nothing. The error
// is non-nil only for OS failures outside the three outcomes
// (permissions, I/O); when it is non-nil the outcome is undefined.
func EnsureDir(path string, createParents bool) (DirOutcome, error) {
	if info, err := os.Stat(path); err == nil {
		if !info.IsDir() {
			return DirAlreadyExists, fmt.Errorf("path %s exists but is not a directory", path)
		}
		return DirAlreadyExists, nil
	}

	var err error
	if createParents {
		err = os.MkdirAll(path, 0o755)
	} else {
		err = os.Mkdir(path, 0o755)
	}
	if err == nil {
		return DirCreated, nil
	}
	if os.IsExist(err) {
		// Lost the Stat-to-Mkdir window; still a no-op
		return DirAlreadyExists, nil
	}
	if os.IsNotExist(err) {
		return DirParentMissing, nil
	}
	return DirParentMissing, fmt.Errorf("failed to create directory %s: %w", path, err)
}
