package s3_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/internal/config"
	s3storage "portfolio/internal/storage/s3"
)

func newClient(t *testing.T, cfg config.S3Config) interface {
	PublicURL(bucket, key string) string
	KeyFromURL(bucket, url string) (string, bool)
} {
	t.Helper()
	cfg.Region = "us-east-1"
	cfg.AccessKey = "test"
	cfg.SecretKey = "test"
	c, err := s3storage.NewS3Client(&cfg)
	require.NoError(t, err)
	return c
}

func TestS3Client_PublicURL_AWS(t *testing.T) {
	c := newClient(t, config.S3Config{})

	u := c.PublicURL("bucket", "images/projects/mi-app/1-0-foto final.png")

	assert.Equal(t, "https://bucket.s3.us-east-1.amazonaws.com/images/projects/mi-app/1-0-foto%20final.png", u)

	key, ok := c.KeyFromURL("bucket", u)
	require.True(t, ok)
	assert.Equal(t, "images/projects/mi-app/1-0-foto final.png", key)
}

func TestS3Client_PublicURL_CustomEndpoint(t *testing.T) {
	c := newClient(t, config.S3Config{Endpoint: "http://localhost:9000/"})

	u := c.PublicURL("bucket", "images/a.png")

	assert.Equal(t, "http://localhost:9000/bucket/images/a.png", u)
}

func TestS3Client_PublicURL_CDN(t *testing.T) {
	c := newClient(t, config.S3Config{PublicBaseURL: "https://cdn.example.com"})

	u := c.PublicURL("bucket", "images/a.png")
	assert.Equal(t, "https://cdn.example.com/images/a.png", u)

	key, ok := c.KeyFromURL("bucket", u+"?v=2")
	require.True(t, ok)
	assert.Equal(t, "images/a.png", key)
}

func TestS3Client_KeyFromURL_Foreign(t *testing.T) {
	c := newClient(t, config.S3Config{PublicBaseURL: "https://cdn.example.com"})

	_, ok := c.KeyFromURL("bucket", "https://firebasestorage.googleapis.com/v0/b/x/o/images%2Fa.png?alt=media")
	assert.False(t, ok)

	_, ok = c.KeyFromURL("bucket", "https://cdn.example.com/")
	assert.False(t, ok)
}
