package blobstore

import (
	"context"
	"fmt"
	"os"

	"github.com/arpitsinghofficial/videos-service/internal/assets"
)

// FilesystemStore writes thumbnails to a directory on local disk. The
// minted reference is a static-asset URL resolved by the file server
// mounted at /assets/; retrieval is not a service operation here.
type FilesystemStore struct {
	root    string
	baseURL string
}

var _ Store = (*FilesystemStore)(nil)

// NewFilesystemStore creates the asset root if absent and returns a store
// rooted there. Safe to call on every startup.
func NewFilesystemStore(root, baseURL string) (*FilesystemStore, error) {
	if root == "" {
		return nil, fmt.Errorf("asset root is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create asset root: %w", err)
	}
	return &FilesystemStore{root: root, baseURL: baseURL}, nil
}

// Persist writes the blob to {root}/{videoID}{ext}, overwriting any prior
// file for the same video. A failed write surfaces as a hard error and is
// never retried.
func (s *FilesystemStore) Persist(ctx context.Context, videoID string, blob Blob) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ext, err := assets.ExtensionForMediaType(blob.MediaType)
	if err != nil {
		return "", err
	}

	filename := videoID + ext
	path, err := assets.DiskPath(s.root, filename)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, blob.Data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write thumbnail file: %w", err)
	}

	return assets.FileURL(s.baseURL, filename), nil
}

// Root returns the directory thumbnails are written to.
func (s *FilesystemStore) Root() string {
	return s.root
}
