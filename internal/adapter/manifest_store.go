package adapter

import (
	"context"
	"encoding/json"
	"fmt"

	m "smashers.dev/pkg/sitegen/internal/model"
)

// ManifestStore persists the record of the last generation run.
type ManifestStore interface {
	SaveManifest(ctx context.Context, path m.Path, manifest m.Manifest) error
	LoadManifest(ctx context.Context, path m.Path) (m.Manifest, error)
}

// LocalManifestStore keeps manifests as indented JSON files.
type LocalManifestStore struct {
	fs *LocalSiteFSAdapter
}

// NewLocalManifestStore constructs a LocalManifestStore.
func NewLocalManifestStore() *LocalManifestStore {
	return &LocalManifestStore{fs: NewLocalSiteFSAdapter()}
}

// SaveManifest writes manifest to path, replacing any previous one.
func (s *LocalManifestStore) SaveManifest(ctx context.Context, path m.Path, manifest m.Manifest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}

	return s.fs.WriteFile(path, append(data, '\n'), 0o644)
}

// LoadManifest reads the manifest at path.
func (s *LocalManifestStore) LoadManifest(ctx context.Context, path m.Path) (m.Manifest, error) {
	if err := ctx.Err(); err != nil {
		return m.Manifest{}, err
	}

	data, err := s.fs.ReadFile(path)
	if err != nil {
		return m.Manifest{}, err
	}

	var manifest m.Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return m.Manifest{}, fmt.Errorf("decode manifest %s: %w", path, err)
	}

	return manifest, nil
}
