package blobstore

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/arpitsinghofficial/videos-service/internal/assets"
	"github.com/arpitsinghofficial/videos-service/internal/config"
)

// ObjectStore persists thumbnails in a MinIO/S3 bucket. Like the filesystem
// strategy, references are resolved by infrastructure outside the service
// (the object server itself), so no Retriever is implemented.
type ObjectStore struct {
	client     *minio.Client
	bucketName string
	useSSL     bool
}

var _ Store = (*ObjectStore)(nil)

// NewObjectStore connects to MinIO and ensures the bucket exists.
func NewObjectStore(cfg *config.Config) (*ObjectStore, error) {
	client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKeyID, cfg.MinIO.SecretAccessKey, ""),
		Secure: cfg.MinIO.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	store := &ObjectStore{
		client:     client,
		bucketName: cfg.MinIO.BucketName,
		useSSL:     cfg.MinIO.UseSSL,
	}

	if err := store.ensureBucket(); err != nil {
		return nil, fmt.Errorf("failed to ensure bucket exists: %w", err)
	}

	return store, nil
}

// ensureBucket creates the bucket if it doesn't exist
func (s *ObjectStore) ensureBucket() error {
	ctx := context.Background()

	exists, err := s.client.BucketExists(ctx, s.bucketName)
	if err != nil {
		return fmt.Errorf("failed to check if bucket exists: %w", err)
	}

	if !exists {
		err = s.client.MakeBucket(ctx, s.bucketName, minio.MakeBucketOptions{})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

// Persist uploads the blob as {videoID}{ext} with its declared content
// type, overwriting any prior object for the same video.
func (s *ObjectStore) Persist(ctx context.Context, videoID string, blob Blob) (string, error) {
	ext, err := assets.ExtensionForMediaType(blob.MediaType)
	if err != nil {
		return "", err
	}

	objectKey := videoID + ext
	_, err = s.client.PutObject(
		ctx,
		s.bucketName,
		objectKey,
		bytes.NewReader(blob.Data),
		int64(len(blob.Data)),
		minio.PutObjectOptions{ContentType: blob.MediaType},
	)
	if err != nil {
		return "", fmt.Errorf("failed to upload thumbnail: %w", err)
	}

	return s.objectURL(objectKey), nil
}

// objectURL returns the public URL for an object, assuming a
// publicly-readable bucket.
func (s *ObjectStore) objectURL(objectKey string) string {
	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}

	endpoint := strings.TrimPrefix(s.client.EndpointURL().String(), scheme+"://")
	return fmt.Sprintf("%s://%s/%s/%s", scheme, endpoint, s.bucketName, objectKey)
}
