package casetree

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidateIdentifier rejects identifiers that could escape the work
// root when used as a path segment. The original inputs are opaque
// case-folder tokens; anything that looks like path syntax is bad
// data, not a folder name.
func ValidateIdentifier(id string) error {
	if id == "" {
		return fmt.Errorf("identifier is empty")
	}
	if strings.ContainsAny(id, "/\\\x00") {
		return fmt.Errorf("identifier %q contains path separator or NUL", id)
	}
	if id == "." || id == ".." {
		return fmt.Errorf("identifier %q is a path traversal sequence", id)
	}
	return nil
}

// DerivePath joins the work root, an identifier, and any further
// segments into a target path. Pure string work: no normalization
// beyond joining, no symlink resolution, no existence checks.
// Segments must already have passed ValidateIdentifier where they
// come from input data.
func DerivePath(workRoot, id string, segments ...string) string {
	parts := append([]string{workRoot, id}, segments...)
	return filepath.Join(parts...)
}
