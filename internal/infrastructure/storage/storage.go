// Package storage uploads public images to S3 or to a local filesystem.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// ObjectStore stores objects addressed by bucket and key
type ObjectStore interface {
	Upload(ctx context.Context, bucket, key, contentType string, body io.Reader) error
	PublicURL(bucket, key string) string
	Remove(ctx context.Context, bucket, key string) error
}

// KeyFromURL returns the storage key of a public URL: its last path segment
func KeyFromURL(rawURL string) string {
	u := rawURL
	if i := strings.IndexAny(u, "?#"); i >= 0 {
		u = u[:i]
	}
	u = strings.TrimRight(u, "/")
	if i := strings.LastIndex(u, "/"); i >= 0 {
		return u[i+1:]
	}
	return u
}

func joinURL(base, bucket, key string) string {
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(base, "/"), bucket, key)
}
