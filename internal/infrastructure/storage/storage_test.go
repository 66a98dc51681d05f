package storage

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/fieldops/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validStorageConfig() *config.StorageConfig {
	return &config.StorageConfig{
		Enabled:      true,
		Endpoint:     "localhost:9000",
		Bucket:       "fieldops-attachments",
		AccessKey:    "minio",
		SecretKey:    "minio-secret",
		UsePathStyle: true,
	}
}

func TestNewS3ObjectStorage_Validation(t *testing.T) {
	ctx := context.Background()

	_, err := NewS3ObjectStorage(ctx, nil)
	assert.Error(t, err)

	for name, mutate := range map[string]func(*config.StorageConfig){
		"bucket":     func(c *config.StorageConfig) { c.Bucket = "" },
		"access key": func(c *config.StorageConfig) { c.AccessKey = "" },
		"secret key": func(c *config.StorageConfig) { c.SecretKey = "" },
	} {
		t.Run("missing "+name, func(t *testing.T) {
			cfg := validStorageConfig()
			mutate(cfg)
			_, err := NewS3ObjectStorage(ctx, cfg)
			assert.ErrorContains(t, err, name)
		})
	}

	t.Run("defaults presign expiration", func(t *testing.T) {
		s, err := NewS3ObjectStorage(ctx, validStorageConfig())
		require.NoError(t, err)
		assert.Equal(t, 15*time.Minute, s.presignExpiration)
		assert.Equal(t, "fieldops-attachments", s.Bucket())
	})

	t.Run("option overrides expiration", func(t *testing.T) {
		s, err := NewS3ObjectStorage(ctx, validStorageConfig(), WithPresignExpiration(time.Minute))
		require.NoError(t, err)
		assert.Equal(t, time.Minute, s.presignExpiration)
	})
}

func TestNormalizeEndpoint(t *testing.T) {
	got, err := normalizeEndpoint("minio:9000", false)
	require.NoError(t, err)
	assert.Equal(t, "http://minio:9000", got)

	got, err = normalizeEndpoint("s3.example.com", true)
	require.NoError(t, err)
	assert.Equal(t, "https://s3.example.com", got)

	got, err = normalizeEndpoint("", false)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000", got)
}

func TestS3ObjectStorage_Presign(t *testing.T) {
	s, err := NewS3ObjectStorage(context.Background(), validStorageConfig())
	require.NoError(t, err)
	ctx := context.Background()
	key := "tenants/t1/work-orders/w1/a1-report.pdf"

	_, _, err = s.PresignUpload(ctx, "", "application/pdf", 0)
	assert.ErrorIs(t, err, errEmptyKey)

	upload, expiresAt, err := s.PresignUpload(ctx, key, "application/pdf", 5*time.Minute)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), expiresAt, 5*time.Second)
	u, err := url.Parse(upload)
	require.NoError(t, err)
	assert.Equal(t, "/fieldops-attachments/"+key, u.Path)
	assert.Equal(t, "300", u.Query().Get("X-Amz-Expires"))

	download, _, err := s.PresignDownload(ctx, key, "report.pdf", 0)
	require.NoError(t, err)
	d, err := url.Parse(download)
	require.NoError(t, err)
	assert.Equal(t, "900", d.Query().Get("X-Amz-Expires"))
	assert.True(t, strings.Contains(d.Query().Get("response-content-disposition"), "report.pdf"))
}

func TestS3ObjectStorage_EmptyKeys(t *testing.T) {
	s, err := NewS3ObjectStorage(context.Background(), validStorageConfig())
	require.NoError(t, err)

	assert.ErrorIs(t, s.DeleteObject(context.Background(), ""), errEmptyKey)
	_, err = s.ObjectExists(context.Background(), "")
	assert.ErrorIs(t, err, errEmptyKey)
}

func TestStubObjectStorage(t *testing.T) {
	ctx := context.Background()
	s := NewStubObjectStorage()

	upload, _, err := s.PresignUpload(ctx, "k/1", "image/png", 0)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(upload, s.BaseURL+"/upload/"))

	exists, err := s.ObjectExists(ctx, "k/1")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, s.DeleteObject(ctx, "k/1"))
	exists, err = s.ObjectExists(ctx, "k/1")
	require.NoError(t, err)
	assert.False(t, exists)

	_, _, err = s.PresignDownload(ctx, "", "", 0)
	assert.ErrorIs(t, err, errEmptyKey)
}
