// Package blobstore holds the pluggable thumbnail byte-storage strategies.
// Exactly one strategy is active per deployment, selected from config at
// startup. A strategy persists a blob and mints the reference recorded on
// the video; strategies whose bytes are not independently fetchable also
// implement Retriever and are served through the thumbnail retrieval route.
package blobstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Retrieve when no blob is stored for a video.
var ErrNotFound = errors.New("thumbnail not found")

// Blob is a raw thumbnail payload plus its declared media type.
type Blob struct {
	Data      []byte
	MediaType string
}

// Store persists a thumbnail blob for a video and returns the thumbnail
// reference to record on it. Persisting again for the same video ID
// overwrites the prior blob (last writer wins).
type Store interface {
	Persist(ctx context.Context, videoID string, blob Blob) (string, error)
}

// Retriever is implemented by stores whose references resolve back through
// the service itself rather than through generic infrastructure.
type Retriever interface {
	Retrieve(ctx context.Context, videoID string) (Blob, error)
}
