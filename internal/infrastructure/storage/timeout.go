package storage

import (
	"context"
	"io"
	"time"
)

type timeoutStore struct {
	ObjectStore
	timeout time.Duration
}

// WithTimeout bounds every Upload and Remove of store by d. d <= 0 returns store unchanged.
func WithTimeout(store ObjectStore, d time.Duration) ObjectStore {
	if d <= 0 {
		return store
	}
	return &timeoutStore{ObjectStore: store, timeout: d}
}

func (s *timeoutStore) Upload(ctx context.Context, bucket, key, contentType string, body io.Reader) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.ObjectStore.Upload(ctx, bucket, key, contentType, body)
}

func (s *timeoutStore) Remove(ctx context.Context, bucket, key string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.ObjectStore.Remove(ctx, bucket, key)
}
