package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryObjectStorage_UploadAndGet(t *testing.T) {
	s := NewInMemoryObjectStorage()
	ctx := context.Background()

	err := s.Upload(ctx, "prescriptions/u1/file.pdf", []byte("pdf-bytes"), "application/pdf")
	require.NoError(t, err)

	data, ok := s.Get("prescriptions/u1/file.pdf")
	require.True(t, ok)
	assert.Equal(t, []byte("pdf-bytes"), data)
	assert.Equal(t, 1, s.Len())
}

func TestInMemoryObjectStorage_Upload_EmptyKey(t *testing.T) {
	s := NewInMemoryObjectStorage()

	err := s.Upload(context.Background(), "", []byte("data"), "application/pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage key is required")
}

func TestInMemoryObjectStorage_GenerateDownloadURL(t *testing.T) {
	s := NewInMemoryObjectStorage()

	url, expiresAt, err := s.GenerateDownloadURL(context.Background(), "prescriptions/u1/file.pdf", time.Hour)
	require.NoError(t, err)
	assert.Contains(t, url, "https://storage.example.com/download/prescriptions/u1/file.pdf")
	assert.True(t, expiresAt.After(time.Now()))
}

func TestInMemoryObjectStorage_DeleteObject(t *testing.T) {
	s := NewInMemoryObjectStorage()
	ctx := context.Background()

	require.NoError(t, s.Upload(ctx, "key", []byte("data"), "image/png"))
	require.NoError(t, s.DeleteObject(ctx, "key"))

	_, ok := s.Get("key")
	assert.False(t, ok)

	// Deleting a missing key still succeeds
	require.NoError(t, s.DeleteObject(ctx, "key"))
}

func TestInMemoryObjectStorage_PublicURL(t *testing.T) {
	s := NewInMemoryObjectStorage()
	assert.Equal(t, "https://storage.example.com/prescriptions/u1/file.pdf", s.PublicURL("prescriptions/u1/file.pdf"))
}
