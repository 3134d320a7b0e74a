package imagestore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/yanqian/ai-wardrobe/internal/domain/wardrobe"
)

// S3Storage stores images in any S3-compatible bucket (R2, MinIO, AWS).
type S3Storage struct {
	client      *minio.Client
	bucket      string
	logger      *slog.Logger
	bucketReady atomic.Bool
}

// NewS3Storage constructs the storage adapter.
func NewS3Storage(endpoint, accessKey, secretKey, bucket, region string, logger *slog.Logger) (*S3Storage, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if strings.TrimSpace(bucket) == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}
	cleanEndpoint := sanitizeEndpoint(endpoint)
	useSSL := !strings.HasPrefix(strings.ToLower(strings.TrimSpace(endpoint)), "http://")
	client, err := minio.New(cleanEndpoint, &minio.Options{
		Creds:        credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure:       useSSL,
		Region:       region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}
	return &S3Storage{client: client, bucket: bucket, logger: logger.With("component", "imagestore.s3")}, nil
}

// ensureBucket checks for the bucket until a check succeeds; failures are retried on the next call.
func (s *S3Storage) ensureBucket(ctx context.Context) error {
	if s.bucketReady.Load() {
		return nil
	}
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err == nil && exists {
		s.bucketReady.Store(true)
		return nil
	}
	err = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
	if err != nil && minio.ToErrorResponse(err).Code != "BucketAlreadyOwnedByYou" {
		return fmt.Errorf("ensure bucket %s: %w", s.bucket, err)
	}
	s.bucketReady.Store(true)
	s.logger.Info("bucket ready", "bucket", s.bucket)
	return nil
}

// Put uploads an image.
func (s *S3Storage) Put(ctx context.Context, key string, data []byte, mimeType string) (wardrobe.StoredObject, error) {
	if err := s.ensureBucket(ctx); err != nil {
		return wardrobe.StoredObject{}, err
	}
	info, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:      mimeType,
		DisableMultipart: len(data) < 5*1024*1024,
	})
	if err != nil {
		return wardrobe.StoredObject{}, err
	}
	return wardrobe.StoredObject{
		Key:      key,
		Size:     info.Size,
		MimeType: mimeType,
		ETag:     info.ETag,
	}, nil
}

// Get fetches an image for reading.
func (s *S3Storage) Get(ctx context.Context, key string) (io.ReadCloser, wardrobe.StoredObject, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, wardrobe.StoredObject{}, mapError(err)
	}
	stat, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		return nil, wardrobe.StoredObject{}, mapError(err)
	}
	return obj, wardrobe.StoredObject{
		Key:      key,
		Size:     stat.Size,
		MimeType: stat.ContentType,
		ETag:     stat.ETag,
	}, nil
}

// Delete removes an image.
func (s *S3Storage) Delete(ctx context.Context, key string) error {
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}

func mapError(err error) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket":
		return fmt.Errorf("%w: %v", wardrobe.ErrObjectNotFound, err)
	}
	return err
}

// sanitizeEndpoint strips schemes and paths to satisfy minio.New expectations.
func sanitizeEndpoint(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}
	raw = strings.TrimPrefix(strings.TrimPrefix(raw, "https://"), "http://")
	if idx := strings.Index(raw, "/"); idx >= 0 {
		raw = raw[:idx]
	}
	return raw
}

var _ wardrobe.ObjectStorage = (*S3Storage)(nil)
