package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/internhub-dev/internhub/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Kinds of uploads the platform accepts. The kind prefixes the object name
// so bucket listings stay navigable.
const (
	KindResume      = "resume"
	KindCoverLetter = "cover_letter"
	KindSubmission  = "submission"
	KindResource    = "resource"
)

func ValidKind(kind string) bool {
	switch kind {
	case KindResume, KindCoverLetter, KindSubmission, KindResource:
		return true
	}
	return false
}

type Storage struct {
	client *minio.Client
	bucket string
}

// Default is set in main when MinIO is configured; handlers treat a nil
// storage as "uploads disabled".
var Default *Storage

func New(cfg config.MinIOConfig) (*Storage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &Storage{client: client, bucket: cfg.BucketName}, nil
}

// Upload stores the blob under a unique object name and returns that name.
// The name, not a URL, is what lifecycle rows persist; reads go through
// PresignedURL so storage credentials never leak into the database.
func (s *Storage) Upload(ctx context.Context, kind, originalFilename string, r io.Reader, size int64, contentType string) (string, error) {
	ext := filepath.Ext(originalFilename)
	objectName := fmt.Sprintf("%s/%s%s", kind, uuid.New().String(), ext)

	_, err := s.client.PutObject(ctx, s.bucket, objectName, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	return objectName, nil
}

func (s *Storage) PresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	url, err := s.client.PresignedGetObject(ctx, s.bucket, objectName, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return url.String(), nil
}

func (s *Storage) Remove(ctx context.Context, objectName string) error {
	return s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{})
}
