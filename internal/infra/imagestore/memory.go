package imagestore

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"io"
	"sync"

	"github.com/yanqian/ai-wardrobe/internal/domain/wardrobe"
)

// MemoryStorage keeps images in memory. Useful for tests and local dev.
type MemoryStorage struct {
	mu    sync.RWMutex
	blobs map[string]storedBlob
}

type storedBlob struct {
	data     []byte
	mimeType string
	etag     string
}

// NewMemoryStorage constructs storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{blobs: make(map[string]storedBlob)}
}

// Put stores a copy of the image and returns metadata.
func (s *MemoryStorage) Put(_ context.Context, key string, data []byte, mimeType string) (wardrobe.StoredObject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	hash := md5.Sum(data)
	etag := hex.EncodeToString(hash[:])
	s.blobs[key] = storedBlob{data: append([]byte(nil), data...), mimeType: mimeType, etag: etag}
	return wardrobe.StoredObject{
		Key:      key,
		Size:     int64(len(data)),
		MimeType: mimeType,
		ETag:     etag,
	}, nil
}

// Get returns a reader for the stored image.
func (s *MemoryStorage) Get(_ context.Context, key string) (io.ReadCloser, wardrobe.StoredObject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	blob, ok := s.blobs[key]
	if !ok {
		return nil, wardrobe.StoredObject{}, wardrobe.ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(blob.data)), wardrobe.StoredObject{
		Key:      key,
		Size:     int64(len(blob.data)),
		MimeType: blob.mimeType,
		ETag:     blob.etag,
	}, nil
}

// Delete removes the image. Missing keys are not an error.
func (s *MemoryStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, key)
	return nil
}

var _ wardrobe.ObjectStorage = (*MemoryStorage)(nil)
