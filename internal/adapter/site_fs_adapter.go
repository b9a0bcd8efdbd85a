// Package adapter contains the infrastructure adapters of the site generator.
package adapter

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"

	m "smashers.dev/pkg/sitegen/internal/model"
)

const dirPerm os.FileMode = 0o750

// SiteFSAdapter abstracts the filesystem operations the generator relies on
// so the domain logic can be tested without touching the disk.
type SiteFSAdapter interface {
	// FileInfo returns metadata for a path so the domain can check existence or
	// distinguish between files and directories.
	FileInfo(path m.Path) (os.FileInfo, error)

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// WriteFile replaces the file at path atomically, creating parent
	// directories as needed. Readers see either the old or the new content.
	WriteFile(path m.Path, content []byte, perm os.FileMode) error

	// HashFile returns the hex SHA-256 of the file at path.
	HashFile(path m.Path) (string, error)

	// JoinPath joins path elements into a single path.
	JoinPath(elem ...string) m.Path
}

// LocalSiteFSAdapter implements SiteFSAdapter on the local filesystem.
type LocalSiteFSAdapter struct{}

// NewLocalSiteFSAdapter constructs a LocalSiteFSAdapter.
func NewLocalSiteFSAdapter() *LocalSiteFSAdapter {
	return &LocalSiteFSAdapter{}
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSiteFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// ReadFile loads file contents from disk.
func (a *LocalSiteFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// WriteFile writes content to a temporary file next to path and renames it into place.
func (a *LocalSiteFSAdapter) WriteFile(path m.Path, content []byte, perm os.FileMode) error {
	target := string(path)
	dir := filepath.Dir(target)

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	tmpName := tmp.Name()
	committed := false

	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("write %s: %w", tmpName, err)
	}

	if err := tmp.Chmod(perm); err != nil {
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpName, err)
	}

	if err := os.Rename(tmpName, target); err != nil {
		return fmt.Errorf("rename into %s: %w", target, err)
	}

	committed = true

	return nil
}

// HashFile returns the SHA-256 hash of the file at the provided path.
func (a *LocalSiteFSAdapter) HashFile(path m.Path) (string, error) {
	f, err := os.Open(string(path))
	if err != nil {
		return "", err
	}

	defer func() {
		_ = f.Close()
	}()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// JoinPath joins path elements into a single path.
func (a *LocalSiteFSAdapter) JoinPath(elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}
