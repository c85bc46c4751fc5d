package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// FSStore writes objects below root as <root>/<bucket>/<key>
type FSStore struct {
	fs            afero.Fs
	root          string
	publicBaseURL string
}

// NewFSStore stores objects on the given filesystem
func NewFSStore(fs afero.Fs, root, publicBaseURL string) *FSStore {
	return &FSStore{fs: fs, root: root, publicBaseURL: publicBaseURL}
}

// NewLocalStore stores objects on disk
func NewLocalStore(root, publicBaseURL string) *FSStore {
	return NewFSStore(afero.NewOsFs(), root, publicBaseURL)
}

// NewMemoryStore keeps objects in memory
func NewMemoryStore(publicBaseURL string) *FSStore {
	return NewFSStore(afero.NewMemMapFs(), "/", publicBaseURL)
}

func (s *FSStore) Upload(ctx context.Context, bucket, key, contentType string, body io.Reader) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := s.path(bucket, key)
	if err != nil {
		return err
	}
	if err := s.fs.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := s.fs.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, body); err != nil {
		_ = f.Close()
		_ = s.fs.Remove(p)
		return fmt.Errorf("write %s/%s: %w", bucket, key, err)
	}
	return f.Close()
}

func (s *FSStore) PublicURL(bucket, key string) string {
	return joinURL(s.publicBaseURL, bucket, key)
}

func (s *FSStore) Remove(ctx context.Context, bucket, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := s.path(bucket, key)
	if err != nil {
		return err
	}
	return s.fs.Remove(p)
}

// Exists reports whether an object is stored
func (s *FSStore) Exists(bucket, key string) bool {
	p, err := s.path(bucket, key)
	if err != nil {
		return false
	}
	ok, _ := afero.Exists(s.fs, p)
	return ok
}

func (s *FSStore) path(bucket, key string) (string, error) {
	if bucket == "" || key == "" || key != filepath.Base(key) || bucket != filepath.Base(bucket) {
		return "", fmt.Errorf("invalid object path %q/%q", bucket, key)
	}
	return filepath.Join(s.root, bucket, key), nil
}
