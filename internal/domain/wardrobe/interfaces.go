package wardrobe

import (
	"context"
	"errors"
	"image"
	"io"
)

// ErrObjectNotFound is returned by ObjectStorage when a key does not exist.
var ErrObjectNotFound = errors.New("object not found")

// ErrDuplicateFilename is returned by Repository.Create when the filename is already taken.
var ErrDuplicateFilename = errors.New("item filename already exists")

// ObjectStorage abstracts image blob storage (S3-compatible or memory).
type ObjectStorage interface {
	Put(ctx context.Context, key string, data []byte, mimeType string) (StoredObject, error)
	Get(ctx context.Context, key string) (io.ReadCloser, StoredObject, error)
	Delete(ctx context.Context, key string) error
}

// StoredObject captures persisted blob metadata.
type StoredObject struct {
	Key      string
	Size     int64
	MimeType string
	ETag     string
}

// Repository persists tagged items. Filenames are unique.
type Repository interface {
	Create(ctx context.Context, item Item) error
	List(ctx context.Context) ([]Item, error)
	FindByFilename(ctx context.Context, filename string) (Item, bool, error)
}

// Photo is an uploaded image handed to the classification service.
type Photo struct {
	Filename string
	MimeType string
	Data     []byte
	Image    image.Image
}

// Classifier assigns a garment category to a photo.
type Classifier interface {
	Classify(ctx context.Context, photo Photo) (Category, error)
}

// ColorExtractor returns up to k dominant colors as #rrggbb strings.
type ColorExtractor interface {
	ExtractColors(img image.Image, k int) ([]string, error)
}

// Embedder produces a style vector for an image.
type Embedder interface {
	EmbedImage(img image.Image) ([]float32, error)
}
