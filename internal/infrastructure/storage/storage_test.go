package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyFromURL(t *testing.T) {
	cases := []struct{ in, want string }{
		{"https://cdn.qhoar.pe/business-gallery/abc123.jpg", "abc123.jpg"},
		{"https://cdn.qhoar.pe/business-gallery/abc123.jpg?v=2", "abc123.jpg"},
		{"https://x.s3.us-east-1.amazonaws.com/f00.png#fragment", "f00.png"},
		{"plain.webp", "plain.webp"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, KeyFromURL(tc.in), tc.in)
	}
}

func TestFSStore_UploadRemove(t *testing.T) {
	mem := afero.NewMemMapFs()
	store := NewFSStore(mem, "/data", "http://localhost:8080/storage/")
	ctx := context.Background()

	require.NoError(t, store.Upload(ctx, "business-gallery", "a1.jpg", "image/jpeg", strings.NewReader("jpeg-bytes")))
	assert.True(t, store.Exists("business-gallery", "a1.jpg"))

	body, err := afero.ReadFile(mem, "/data/business-gallery/a1.jpg")
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(body))
	assert.Equal(t, "http://localhost:8080/storage/business-gallery/a1.jpg", store.PublicURL("business-gallery", "a1.jpg"))

	require.NoError(t, store.Remove(ctx, "business-gallery", "a1.jpg"))
	assert.False(t, store.Exists("business-gallery", "a1.jpg"))
	require.Error(t, store.Remove(ctx, "business-gallery", "a1.jpg"))
}

func TestFSStore_RejectsTraversal(t *testing.T) {
	store := NewMemoryStore("http://x")
	ctx := context.Background()

	require.Error(t, store.Upload(ctx, "business-gallery", "../etc/passwd", "image/png", strings.NewReader("x")))
	require.Error(t, store.Upload(ctx, "", "a.png", "image/png", strings.NewReader("x")))
	assert.False(t, store.Exists("..", "a.png"))
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("client went away") }

func TestFSStore_UploadCopyFailureLeavesNothing(t *testing.T) {
	store := NewMemoryStore("http://x")
	err := store.Upload(context.Background(), "business-covers", "c.png", "image/png", failingReader{})
	require.Error(t, err)
	assert.False(t, store.Exists("business-covers", "c.png"))
}

func TestFSStore_CancelledContext(t *testing.T) {
	store := NewMemoryStore("http://x")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, store.Upload(ctx, "b", "k.png", "image/png", strings.NewReader("x")), context.Canceled)
	require.ErrorIs(t, store.Remove(ctx, "b", "k.png"), context.Canceled)
}

type s3Stub struct {
	put    *s3.PutObjectInput
	del    *s3.DeleteObjectInput
	putErr error
	delErr error
}

func (s *s3Stub) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	s.put = in
	if in.Body != nil {
		_, _ = io.ReadAll(in.Body)
	}
	return &s3.PutObjectOutput{}, s.putErr
}

func (s *s3Stub) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	s.del = in
	return &s3.DeleteObjectOutput{}, s.delErr
}

func TestS3Store(t *testing.T) {
	stub := &s3Stub{}
	store := NewS3StoreWithClient(stub, "us-east-1", "")
	ctx := context.Background()

	require.NoError(t, store.Upload(ctx, "business-logos", "l.png", "image/png", strings.NewReader("png")))
	assert.Equal(t, "business-logos", aws.ToString(stub.put.Bucket))
	assert.Equal(t, "l.png", aws.ToString(stub.put.Key))
	assert.Equal(t, "image/png", aws.ToString(stub.put.ContentType))
	assert.Equal(t, "https://business-logos.s3.us-east-1.amazonaws.com/l.png", store.PublicURL("business-logos", "l.png"))

	require.NoError(t, store.Remove(ctx, "business-logos", "l.png"))
	assert.Equal(t, "l.png", aws.ToString(stub.del.Key))

	stub.putErr = errors.New("access denied")
	stub.delErr = errors.New("no such key")
	require.ErrorContains(t, store.Upload(ctx, "b", "k", "image/png", strings.NewReader("x")), "access denied")
	require.ErrorContains(t, store.Remove(ctx, "b", "k"), "no such key")

	cdn := NewS3StoreWithClient(stub, "sa-east-1", "https://cdn.qhoar.pe")
	assert.Equal(t, "https://cdn.qhoar.pe/events-posters/p.jpg", cdn.PublicURL("events-posters", "p.jpg"))
}

func TestNewS3Store_ConfigError(t *testing.T) {
	orig := loadAWSConfig
	t.Cleanup(func() { loadAWSConfig = orig })
	loadAWSConfig = func(context.Context, ...func(*config.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no credentials")
	}
	_, err := NewS3Store(context.Background(), "us-east-1", "", "")
	require.ErrorContains(t, err, "load AWS config")
}

func TestNewS3Store_WithEndpoint(t *testing.T) {
	orig := loadAWSConfig
	t.Cleanup(func() { loadAWSConfig = orig })
	loadAWSConfig = func(context.Context, ...func(*config.LoadOptions) error) (aws.Config, error) {
		return aws.Config{Region: "us-east-1"}, nil
	}
	store, err := NewS3Store(context.Background(), "us-east-1", "http://localhost:9000", "http://localhost:9000")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/business-covers/c.jpg", store.PublicURL("business-covers", "c.jpg"))
}

type deadlineStore struct {
	ObjectStore
	sawDeadline bool
}

func (s *deadlineStore) Upload(ctx context.Context, bucket, key, contentType string, body io.Reader) error {
	_, s.sawDeadline = ctx.Deadline()
	return s.ObjectStore.Upload(ctx, bucket, key, contentType, body)
}

func (s *deadlineStore) Remove(ctx context.Context, bucket, key string) error {
	_, s.sawDeadline = ctx.Deadline()
	return s.ObjectStore.Remove(ctx, bucket, key)
}

func TestWithTimeout(t *testing.T) {
	inner := &deadlineStore{ObjectStore: NewMemoryStore("https://cdn.test")}
	assert.Same(t, inner, WithTimeout(inner, 0))

	store := WithTimeout(inner, time.Second)
	ctx := context.Background()
	require.NoError(t, store.Upload(ctx, "business-logos", "l.png", "image/png", strings.NewReader("x")))
	assert.True(t, inner.sawDeadline)

	inner.sawDeadline = false
	require.NoError(t, store.Remove(ctx, "business-logos", "l.png"))
	assert.True(t, inner.sawDeadline)
	assert.Equal(t, "https://cdn.test/business-logos/l.png", store.PublicURL("business-logos", "l.png"))
}
