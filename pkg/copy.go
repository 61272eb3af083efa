package casetree

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// CopyOutcome is the result of a CopyTree call
type CopyOutcome int

const (
	// CopyDone means the whole subtree was copied
	CopyDone CopyOutcome = iota

	// CopySourceMissing means the source folder does not exist.
	// The dominant expected failure: many identifiers simply have
	// no staged folder. The destination is never touched.
	CopySourceMissing

	// CopyFailed means an OS-level failure occurred during the copy
	CopyFailed
)

// String returns a short label for logging
func (o CopyOutcome) String() string {
	switch o {
	case CopyDone:
		return "copied"
	case CopySourceMissing:
		return "source-missing"
	case CopyFailed:
		return "copy-failed"
	default:
		return "unknown"
	}
}

// CopyTree recursively copies the directory subtree at src into dst,
// merging into an existing destination: directories are reused and
// files are overwritten, a partially-present dst is never a reason
// to fail. The returned error is non-nil exactly when the outcome is
// CopyFailed and carries the underlying cause; it never panics and
// never propagates past a single row. Nothing is retried.
func CopyTree(src, dst string) (CopyOutcome, error) {
	srcInfo, err := os.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return CopySourceMissing, nil
		}
		return CopyFailed, fmt.Errorf("failed to stat copy source %s: %w", src, err)
	}
	if !srcInfo.IsDir() {
		return CopyFailed, fmt.Errorf("copy source %s is not a directory", src)
	}

	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		switch {
		case d.IsDir():
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
		case d.Type()&fs.ModeSymlink != 0:
			return copySymlink(path, target)
		default:
			return copyFile(path, target, d)
		}
		return nil
	})
	if err != nil {
		return CopyFailed, fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}
	return CopyDone, nil
}

// copyFile copies one regular file, overwriting any existing target
func copyFile(src, dst string, d fs.DirEntry) error {
	info, err := d.Info()
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// copySymlink recreates a symlink, replacing any existing target
func copySymlink(src, dst string) error {
	linkTarget, err := os.Readlink(src)
	if err != nil {
		return err
	}
	if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
		return err
	}
	return os.Symlink(linkTarget, dst)
}
