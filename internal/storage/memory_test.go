package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorage(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage("http://localhost:8000/exports")

	_, err := s.GeneratePresignedDownloadURL(ctx, "missing.json", 0)
	assert.ErrorIs(t, err, ErrObjectNotFound)

	body := []byte(`{"ok":true}`)
	require.NoError(t, s.PutObject(ctx, "exports/u1/a.json", "application/json", body))
	body[0] = 'x'

	obj, ok := s.Get("exports/u1/a.json")
	require.True(t, ok)
	assert.Equal(t, "application/json", obj.ContentType)
	assert.Equal(t, `{"ok":true}`, string(obj.Body))

	url, err := s.GeneratePresignedDownloadURL(ctx, "exports/u1/a.json", 0)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/exports/exports/u1/a.json", url)

	require.NoError(t, s.DeleteObject(ctx, "exports/u1/a.json"))
	_, ok = s.Get("exports/u1/a.json")
	assert.False(t, ok)
	// deleting again behaves like S3
	assert.NoError(t, s.DeleteObject(ctx, "exports/u1/a.json"))
	assert.Zero(t, s.Len())
}
