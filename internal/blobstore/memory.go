package blobstore

import (
	"context"
	"sync"

	"github.com/arpitsinghofficial/videos-service/internal/assets"
)

// MemoryStore keeps thumbnails in a process-lifetime table keyed by video
// ID. The table starts empty on every process start and entries live until
// overwritten or process exit; references minted here do not survive a
// restart and must not be treated as durable. The minted reference points
// at the service's own retrieval route, since nothing outside the process
// can resolve the bytes.
type MemoryStore struct {
	baseURL string

	mu    sync.RWMutex
	blobs map[string]Blob
}

var (
	_ Store     = (*MemoryStore)(nil)
	_ Retriever = (*MemoryStore)(nil)
)

func NewMemoryStore(baseURL string) *MemoryStore {
	return &MemoryStore{
		baseURL: baseURL,
		blobs:   make(map[string]Blob),
	}
}

// Persist inserts or overwrites the entry for videoID. The whole blob value
// is swapped under the lock, so a concurrent Retrieve never observes a
// half-written entry.
func (s *MemoryStore) Persist(ctx context.Context, videoID string, blob Blob) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if _, err := assets.ExtensionForMediaType(blob.MediaType); err != nil {
		return "", err
	}

	// Copy so later mutation of the caller's slice cannot reach the table.
	data := make([]byte, len(blob.Data))
	copy(data, blob.Data)

	s.mu.Lock()
	s.blobs[videoID] = Blob{Data: data, MediaType: blob.MediaType}
	s.mu.Unlock()

	return assets.ThumbnailURL(s.baseURL, videoID), nil
}

// Retrieve returns the stored blob for videoID, or ErrNotFound.
func (s *MemoryStore) Retrieve(ctx context.Context, videoID string) (Blob, error) {
	if err := ctx.Err(); err != nil {
		return Blob{}, err
	}

	s.mu.RLock()
	blob, ok := s.blobs[videoID]
	s.mu.RUnlock()

	if !ok {
		return Blob{}, ErrNotFound
	}

	data := make([]byte, len(blob.Data))
	copy(data, blob.Data)
	return Blob{Data: data, MediaType: blob.MediaType}, nil
}

// Len returns the number of stored thumbnails.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}
