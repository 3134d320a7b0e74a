package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/yanqian/ai-wardrobe/internal/domain/outfit"
	"github.com/yanqian/ai-wardrobe/internal/domain/wardrobe"
	"github.com/yanqian/ai-wardrobe/internal/infra/config"
	apperrors "github.com/yanqian/ai-wardrobe/pkg/errors"
)

const uploadField = "files"

// ItemService is the wardrobe surface the transport depends on.
type ItemService interface {
	Upload(ctx context.Context, req wardrobe.UploadRequest) (wardrobe.UploadResponse, error)
	List(ctx context.Context) ([]wardrobe.Item, error)
	OpenImage(ctx context.Context, filename string) (io.ReadCloser, wardrobe.StoredObject, error)
}

// Handler wires the HTTP transport to domain services.
type Handler struct {
	items        ItemService
	outfits      outfit.Service
	maxFileBytes int64
	logger       *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(items ItemService, outfits outfit.Service, cfg *config.Config, logger *slog.Logger) *Handler {
	return &Handler{
		items:        items,
		outfits:      outfits,
		maxFileBytes: cfg.HTTP.MaxUploadBytes,
		logger:       logger.With("component", "http.handler"),
	}
}

// UploadItems accepts one or more photos in the "files" multipart field.
func (h *Handler) UploadItems(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		abortWithError(c, badRequest("no file part", err))
		return
	}
	headers := form.File[uploadField]
	if len(headers) == 0 {
		abortWithError(c, badRequest("no file part", nil))
		return
	}

	req := wardrobe.UploadRequest{Files: make([]wardrobe.UploadFile, 0, len(headers))}
	for _, header := range headers {
		file, err := readPart(header, h.maxFileBytes)
		if errors.Is(err, errPartTooLarge) {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, apperrors.CodeInvalidInput, fmt.Sprintf("file %s exceeds maximum allowed size", header.Filename), err))
			return
		}
		if err != nil {
			abortWithError(c, badRequest(fmt.Sprintf("failed to read file %s", header.Filename), err))
			return
		}
		req.Files = append(req.Files, file)
	}

	resp, err := h.items.Upload(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromAppError(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

var errPartTooLarge = errors.New("file part exceeds size limit")

// readPart buffers one upload. A non-positive limit reads the whole part.
func readPart(header *multipart.FileHeader, limit int64) (wardrobe.UploadFile, error) {
	file, err := header.Open()
	if err != nil {
		return wardrobe.UploadFile{}, err
	}
	defer file.Close()
	var src io.Reader = file
	if limit > 0 {
		src = io.LimitReader(file, limit+1)
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return wardrobe.UploadFile{}, err
	}
	if limit > 0 && int64(len(data)) > limit {
		return wardrobe.UploadFile{}, errPartTooLarge
	}
	return wardrobe.UploadFile{
		Filename: header.Filename,
		MimeType: header.Header.Get("Content-Type"),
		Content:  data,
	}, nil
}

// ListItems returns the full inventory.
func (h *Handler) ListItems(c *gin.Context) {
	items, err := h.items.List(c.Request.Context())
	if err != nil {
		abortWithError(c, fromAppError(err))
		return
	}
	c.JSON(http.StatusOK, items)
}

// ServeImage streams a stored photo.
func (h *Handler) ServeImage(c *gin.Context) {
	reader, obj, err := h.items.OpenImage(c.Request.Context(), c.Param("filename"))
	if err != nil {
		abortWithError(c, fromAppError(err))
		return
	}
	defer reader.Close()
	size := obj.Size
	if size <= 0 {
		size = -1
	}
	mimeType := obj.MimeType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, size, mimeType, reader, map[string]string{
		"Cache-Control": "public, max-age=3600",
	})
}

// Recommend returns outfits for the current weather in a city.
func (h *Handler) Recommend(c *gin.Context) {
	var req outfit.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, apperrors.CodeInvalidInput, "City is required", err))
			return
		}
		abortWithError(c, badRequest(errMessage(err), err))
		return
	}

	resp, err := h.outfits.Recommend(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromAppError(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Healthz reports liveness.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
