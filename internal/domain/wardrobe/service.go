package wardrobe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/yanqian/ai-wardrobe/pkg/errors"
	"github.com/yanqian/ai-wardrobe/pkg/metrics"
	"github.com/yanqian/ai-wardrobe/pkg/util"
)

const (
	storagePrefix   = "clothing/"
	maxNameAttempts = 5
)

// Config drives upload limits and tagging.
type Config struct {
	MaxFileBytes int64
	ColorCount   int
}

// Service runs the upload pipeline and serves the inventory.
type Service struct {
	cfg        Config
	items      Repository
	storage    ObjectStorage
	classifier Classifier
	colors     ColorExtractor
	embedder   Embedder
	metrics    *metrics.Recorder
	logger     *slog.Logger
	now        util.Clock
}

// NewService constructs a Service.
func NewService(cfg Config, items Repository, storage ObjectStorage, classifier Classifier, colors ColorExtractor, embedder Embedder, recorder *metrics.Recorder, logger *slog.Logger) *Service {
	if cfg.ColorCount <= 0 {
		cfg.ColorCount = 5
	}
	return &Service{
		cfg:        cfg,
		items:      items,
		storage:    storage,
		classifier: classifier,
		colors:     colors,
		embedder:   embedder,
		metrics:    recorder,
		logger:     logger.With("component", "wardrobe.service"),
		now:        util.NowUTC,
	}
}

// UploadFile is one part of a multipart submission.
type UploadFile struct {
	Filename string
	MimeType string
	Content  []byte
}

// UploadRequest captures every file sent in one request.
type UploadRequest struct {
	Files []UploadFile
}

// UploadResponse lists the items that were tagged and stored.
type UploadResponse struct {
	Message string `json:"message"`
	Items   []Item `json:"items"`
}

// Upload tags and stores each file in order. Items stored before a failing file stay persisted.
func (s *Service) Upload(ctx context.Context, req UploadRequest) (UploadResponse, error) {
	if len(req.Files) == 0 {
		return UploadResponse{}, apperrors.Wrap(apperrors.CodeInvalidInput, "no file part", nil)
	}
	items := make([]Item, 0, len(req.Files))
	for _, file := range req.Files {
		if strings.TrimSpace(file.Filename) == "" {
			continue
		}
		item, err := s.process(ctx, file)
		if err != nil {
			return UploadResponse{}, err
		}
		items = append(items, item)
	}
	return UploadResponse{
		Message: "Files uploaded and processed successfully!",
		Items:   items,
	}, nil
}

func (s *Service) process(ctx context.Context, file UploadFile) (Item, error) {
	if s.cfg.MaxFileBytes > 0 && int64(len(file.Content)) > s.cfg.MaxFileBytes {
		return Item{}, apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("file %s exceeds maximum allowed size", file.Filename), nil)
	}
	img, _, err := image.Decode(bytes.NewReader(file.Content))
	if err != nil {
		return Item{}, apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("file %s is not a supported image", file.Filename), err)
	}

	requested := SanitizeFilename(file.Filename)
	filename, err := s.uniqueFilename(ctx, requested)
	if err != nil {
		return Item{}, apperrors.Wrap(apperrors.CodeStorage, "failed to check existing items", err)
	}
	mime := file.MimeType
	if mime == "" || mime == "application/octet-stream" {
		mime = http.DetectContentType(file.Content)
	}

	// blobs are keyed by item id so a filename clash can never touch another item's image
	id := uuid.New()
	obj, err := s.storage.Put(ctx, storageKey(id, requested), file.Content, mime)
	if err != nil {
		return Item{}, apperrors.Wrap(apperrors.CodeStorage, fmt.Sprintf("failed to store file %s", filename), err)
	}

	failed := func(code string, cause error) (Item, error) {
		s.logger.Error("processing upload failed", "filename", filename, "error", cause)
		if delErr := s.storage.Delete(ctx, obj.Key); delErr != nil {
			s.logger.Warn("cleanup of stored image failed", "key", obj.Key, "error", delErr)
		}
		return Item{}, apperrors.Wrap(code, fmt.Sprintf("failed to process file %s", filename), cause)
	}

	category, err := s.classifier.Classify(ctx, Photo{Filename: filename, MimeType: mime, Data: file.Content, Image: img})
	if err != nil {
		return failed(apperrors.CodeClassification, err)
	}
	if !category.Valid() {
		return failed(apperrors.CodeClassification, fmt.Errorf("classifier returned unknown category %q", category))
	}

	colors, err := s.colors.ExtractColors(img, s.cfg.ColorCount)
	if err != nil || len(colors) == 0 {
		s.logger.Warn("color extraction failed, using defaults", "filename", filename, "error", err)
		colors = append([]string(nil), DefaultColors...)
	}

	vector, err := s.embedder.EmbedImage(img)
	if err != nil {
		return failed(apperrors.CodeClassification, err)
	}

	item := Item{
		ID:          id,
		Filename:    filename,
		Category:    category,
		Colors:      colors,
		StorageKey:  obj.Key,
		MimeType:    obj.MimeType,
		StyleVector: vector,
		CreatedAt:   s.now(),
	}
	for attempt := 1; ; attempt++ {
		err = s.items.Create(ctx, item)
		if !errors.Is(err, ErrDuplicateFilename) || attempt == maxNameAttempts {
			break
		}
		// another upload claimed the name after the check above
		item.Filename = suffixed(requested)
		filename = item.Filename
	}
	if err != nil {
		return failed(apperrors.CodeStorage, err)
	}
	s.metrics.ItemUploaded(string(category))
	s.logger.Info("item stored", "item_id", item.ID, "filename", item.Filename, "category", category)
	return item, nil
}

// List returns every stored item, oldest first.
func (s *Service) List(ctx context.Context) ([]Item, error) {
	items, err := s.items.List(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorage, "failed to load items", err)
	}
	if items == nil {
		items = []Item{}
	}
	return items, nil
}

// OpenImage streams a stored image by its public filename. Callers close the reader.
func (s *Service) OpenImage(ctx context.Context, filename string) (io.ReadCloser, StoredObject, error) {
	name := path.Base(strings.TrimSpace(filename))
	item, found, err := s.items.FindByFilename(ctx, name)
	if err != nil {
		return nil, StoredObject{}, apperrors.Wrap(apperrors.CodeStorage, "failed to look up image", err)
	}
	if !found {
		return nil, StoredObject{}, apperrors.Wrap(apperrors.CodeNotFound, "image not found", nil)
	}
	reader, obj, err := s.storage.Get(ctx, item.StorageKey)
	if err != nil {
		if errors.Is(err, ErrObjectNotFound) {
			return nil, StoredObject{}, apperrors.Wrap(apperrors.CodeNotFound, "image not found", err)
		}
		return nil, StoredObject{}, apperrors.Wrap(apperrors.CodeStorage, "failed to read image", err)
	}
	if obj.MimeType == "" {
		obj.MimeType = item.MimeType
	}
	return reader, obj, nil
}

func (s *Service) uniqueFilename(ctx context.Context, name string) (string, error) {
	_, taken, err := s.items.FindByFilename(ctx, name)
	if err != nil {
		return "", err
	}
	if !taken {
		return name, nil
	}
	return suffixed(name), nil
}

// suffixed appends a short random tag before the extension.
func suffixed(name string) string {
	ext := path.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	return fmt.Sprintf("%s-%s%s", stem, uuid.NewString()[:8], ext)
}

func storageKey(id uuid.UUID, filename string) string {
	return storagePrefix + id.String() + strings.ToLower(path.Ext(filename))
}

// SanitizeFilename reduces an uploaded name to a safe base name of [A-Za-z0-9._-].
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(strings.TrimSpace(name))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	clean := strings.TrimLeft(b.String(), "._")
	if clean == "" {
		return "upload"
	}
	return clean
}
