package storage

import (
	"alcyxob/training-coach/internal/config"
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Presigning is computed locally, so no S3 endpoint needs to be reachable.
func TestGeneratePresignedDownloadURL(t *testing.T) {
	ctx := context.Background()
	fs, err := NewS3Storage(ctx, config.S3Config{
		Endpoint:        "http://localhost:9000",
		Region:          "us-east-1",
		AccessKeyID:     "minio",
		SecretAccessKey: "minio-secret",
		BucketName:      "coach-media",
	})
	require.NoError(t, err)

	raw, err := fs.GeneratePresignedDownloadURL(ctx, "media/bench-press.mp4", 5*time.Minute)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", u.Host)
	assert.Equal(t, "/coach-media/media/bench-press.mp4", u.Path)
	assert.Equal(t, "300", u.Query().Get("X-Amz-Expires"))
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
}
