// Package storage provides S3-compatible object storage for listing images
// via MinIO. Uploads go straight from the browser to the bucket through
// pre-signed URLs; the API never proxies image bytes.
package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"imobcrm_backend/platform/config"
	"imobcrm_backend/platform/logger"
)

// uploadURLExpiry bounds how long a pre-signed PUT URL stays valid.
const uploadURLExpiry = 15 * time.Minute

// Service wraps the MinIO client for listing image uploads.
type Service struct {
	client *minio.Client
	bucket string
	log    *logger.Logger
}

// New creates the storage service and verifies the bucket exists, creating
// it when missing.
func New(ctx context.Context, cfg config.StorageConfig, log *logger.Logger) (*Service, error) {
	client, err := minio.New(cfg.GetMinIOEndpoint(), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.GetMinIOAccessKey(), cfg.GetMinIOSecretKey(), ""),
		Secure: cfg.GetMinIOUseSSL(),
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	s := &Service{
		client: client,
		bucket: cfg.GetMinioBucketListingImages(),
		log:    log,
	}
	if err := s.ensureBucket(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Service) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", s.bucket, err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket %s: %w", s.bucket, err)
	}
	s.log.Info("storage bucket created", "bucket", s.bucket)
	return nil
}

// GenerateUploadURL issues a pre-signed PUT URL for the object.
func (s *Service) GenerateUploadURL(ctx context.Context, objectName, contentType string) (string, error) {
	presigned, err := s.client.PresignHeader(ctx, "PUT", s.bucket, objectName, uploadURLExpiry,
		url.Values{}, map[string][]string{"Content-Type": {contentType}})
	if err != nil {
		return "", fmt.Errorf("presign upload for %s: %w", objectName, err)
	}
	return presigned.String(), nil
}

// ObjectURL returns the public URL the object will have once uploaded.
func (s *Service) ObjectURL(objectName string) string {
	return fmt.Sprintf("%s/%s/%s", s.client.EndpointURL(), s.bucket, objectName)
}

// Disabled is the provider used when no object storage is configured.
// Upload requests fail cleanly instead of panicking.
type Disabled struct{}

// GenerateUploadURL always fails.
func (Disabled) GenerateUploadURL(context.Context, string, string) (string, error) {
	return "", errors.New("object storage is not configured")
}

// ObjectURL returns the bare object name.
func (Disabled) ObjectURL(objectName string) string { return objectName }
