package imagestore

import (
	"context"
	"io"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/require"

	"github.com/yanqian/ai-wardrobe/internal/domain/wardrobe"
)

func TestMemoryStoragePutGetDelete(t *testing.T) {
	store := NewMemoryStorage()
	ctx := context.Background()

	obj, err := store.Put(ctx, "clothing/shirt.png", []byte("png-bytes"), "image/png")
	require.NoError(t, err)
	require.Equal(t, int64(9), obj.Size)
	require.NotEmpty(t, obj.ETag)

	reader, meta, err := store.Get(ctx, "clothing/shirt.png")
	require.NoError(t, err)
	defer reader.Close()
	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	require.Equal(t, "png-bytes", string(data))
	require.Equal(t, "image/png", meta.MimeType)
	require.Equal(t, obj.ETag, meta.ETag)

	require.NoError(t, store.Delete(ctx, "clothing/shirt.png"))
	_, _, err = store.Get(ctx, "clothing/shirt.png")
	require.ErrorIs(t, err, wardrobe.ErrObjectNotFound)
}

func TestSanitizeEndpoint(t *testing.T) {
	require.Equal(t, "account.r2.cloudflarestorage.com", sanitizeEndpoint("https://account.r2.cloudflarestorage.com/bucket"))
	require.Equal(t, "localhost:9000", sanitizeEndpoint(" http://localhost:9000 "))
	require.Equal(t, "", sanitizeEndpoint(""))
}

func TestMapErrorNoSuchKey(t *testing.T) {
	err := mapError(minio.ErrorResponse{Code: "NoSuchKey", Message: "gone"})
	require.ErrorIs(t, err, wardrobe.ErrObjectNotFound)

	other := minio.ErrorResponse{Code: "AccessDenied"}
	require.NotErrorIs(t, mapError(other), wardrobe.ErrObjectNotFound)
}

func TestNewS3StorageRequiresBucket(t *testing.T) {
	_, err := NewS3Storage("http://localhost:9000", "key", "secret", "", "auto", nil)
	require.Error(t, err)
}
