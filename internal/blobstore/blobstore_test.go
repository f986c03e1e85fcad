package blobstore

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestFilesystemStorePersist(t *testing.T) {
	root := t.TempDir()
	store, err := NewFilesystemStore(root, "http://localhost:8080")
	if err != nil {
		t.Fatalf("new filesystem store: %v", err)
	}

	ref, err := store.Persist(context.Background(), "v1", Blob{
		Data:      []byte("png-bytes"),
		MediaType: "image/png",
	})
	if err != nil {
		t.Fatalf("persist: %v", err)
	}
	if ref != "http://localhost:8080/assets/v1.png" {
		t.Errorf("unexpected reference: %q", ref)
	}

	data, err := os.ReadFile(filepath.Join(root, "v1.png"))
	if err != nil {
		t.Fatalf("read thumbnail file: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Errorf("round-trip mismatch: got %q", string(data))
	}
}

func TestFilesystemStoreOverwrite(t *testing.T) {
	root := t.TempDir()
	store, err := NewFilesystemStore(root, "http://localhost:8080")
	if err != nil {
		t.Fatalf("new filesystem store: %v", err)
	}

	blob := Blob{Data: []byte("first"), MediaType: "image/png"}
	if _, err := store.Persist(context.Background(), "v1", blob); err != nil {
		t.Fatalf("persist first: %v", err)
	}

	blob.Data = []byte("second")
	ref, err := store.Persist(context.Background(), "v1", blob)
	if err != nil {
		t.Fatalf("persist second: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(root, "v1.png"))
	if err != nil {
		t.Fatalf("read thumbnail file: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("expected last writer to win, got %q", string(data))
	}
	if ref != "http://localhost:8080/assets/v1.png" {
		t.Errorf("unexpected reference: %q", ref)
	}
}

func TestFilesystemStoreRejectsBadMediaType(t *testing.T) {
	store, err := NewFilesystemStore(t.TempDir(), "http://localhost:8080")
	if err != nil {
		t.Fatalf("new filesystem store: %v", err)
	}

	_, err = store.Persist(context.Background(), "v1", Blob{
		Data:      []byte("x"),
		MediaType: "application/octet-stream",
	})
	if err == nil {
		t.Fatal("expected media type rejection")
	}
}

func TestFilesystemStoreRejectsTraversalID(t *testing.T) {
	root := t.TempDir()
	store, err := NewFilesystemStore(root, "http://localhost:8080")
	if err != nil {
		t.Fatalf("new filesystem store: %v", err)
	}

	_, err = store.Persist(context.Background(), "../escape", Blob{
		Data:      []byte("x"),
		MediaType: "image/png",
	})
	if err == nil {
		t.Fatal("expected traversal rejection")
	}
	if _, statErr := os.Stat(filepath.Join(filepath.Dir(root), "escape.png")); statErr == nil {
		t.Fatal("file escaped the asset root")
	}
}

func TestInlineStoreRoundTrip(t *testing.T) {
	store := NewInlineStore()

	payload := []byte{0x89, 'P', 'N', 'G', 0, 1, 2, 3}
	ref, err := store.Persist(context.Background(), "v1", Blob{
		Data:      payload,
		MediaType: "image/png",
	})
	if err != nil {
		t.Fatalf("persist: %v", err)
	}

	const prefix = "data:image/png;base64,"
	if !strings.HasPrefix(ref, prefix) {
		t.Fatalf("unexpected reference shape: %q", ref)
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(ref, prefix))
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if string(decoded) != string(payload) {
		t.Errorf("round-trip mismatch: got %v, want %v", decoded, payload)
	}
}

func TestInlineStoreOldReferenceStillDecodes(t *testing.T) {
	store := NewInlineStore()

	oldRef, err := store.Persist(context.Background(), "v1", Blob{Data: []byte("old"), MediaType: "image/png"})
	if err != nil {
		t.Fatalf("persist old: %v", err)
	}
	newRef, err := store.Persist(context.Background(), "v1", Blob{Data: []byte("new"), MediaType: "image/png"})
	if err != nil {
		t.Fatalf("persist new: %v", err)
	}
	if oldRef == newRef {
		t.Fatal("expected distinct references for distinct payloads")
	}

	// A retained old reference is still the old data; only the record's
	// field changes on re-upload.
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(oldRef, "data:image/png;base64,"))
	if err != nil {
		t.Fatalf("decode old payload: %v", err)
	}
	if string(decoded) != "old" {
		t.Errorf("old reference no longer decodes to old bytes: %q", decoded)
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore("http://localhost:8080")

	if _, err := store.Retrieve(context.Background(), "v1"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on empty store, got %v", err)
	}

	ref, err := store.Persist(context.Background(), "v1", Blob{
		Data:      []byte("in-memory"),
		MediaType: "image/jpeg",
	})
	if err != nil {
		t.Fatalf("persist: %v", err)
	}
	if ref != "http://localhost:8080/api/thumbnails/v1" {
		t.Errorf("unexpected reference: %q", ref)
	}

	blob, err := store.Retrieve(context.Background(), "v1")
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if string(blob.Data) != "in-memory" || blob.MediaType != "image/jpeg" {
		t.Errorf("round-trip mismatch: %q %q", blob.Data, blob.MediaType)
	}
}

func TestMemoryStoreOverwrite(t *testing.T) {
	store := NewMemoryStore("http://localhost:8080")

	if _, err := store.Persist(context.Background(), "v1", Blob{Data: []byte("old"), MediaType: "image/png"}); err != nil {
		t.Fatalf("persist old: %v", err)
	}
	if _, err := store.Persist(context.Background(), "v1", Blob{Data: []byte("new"), MediaType: "image/gif"}); err != nil {
		t.Fatalf("persist new: %v", err)
	}

	blob, err := store.Retrieve(context.Background(), "v1")
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if string(blob.Data) != "new" || blob.MediaType != "image/gif" {
		t.Errorf("expected last writer to win, got %q %q", blob.Data, blob.MediaType)
	}
	if store.Len() != 1 {
		t.Errorf("expected a single entry, got %d", store.Len())
	}
}

func TestMemoryStoreCopiesCallerBytes(t *testing.T) {
	store := NewMemoryStore("http://localhost:8080")

	data := []byte("original")
	if _, err := store.Persist(context.Background(), "v1", Blob{Data: data, MediaType: "image/png"}); err != nil {
		t.Fatalf("persist: %v", err)
	}
	data[0] = 'X'

	blob, err := store.Retrieve(context.Background(), "v1")
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if string(blob.Data) != "original" {
		t.Errorf("stored bytes aliased the caller's slice: %q", blob.Data)
	}
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	store := NewMemoryStore("http://localhost:8080")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if _, err := store.Persist(context.Background(), "v1", Blob{Data: []byte("payload"), MediaType: "image/png"}); err != nil {
					t.Errorf("persist: %v", err)
					return
				}
				blob, err := store.Retrieve(context.Background(), "v1")
				if err != nil {
					t.Errorf("retrieve: %v", err)
					return
				}
				if string(blob.Data) != "payload" {
					t.Errorf("observed a partial entry: %q", blob.Data)
					return
				}
			}
		}()
	}
	wg.Wait()
}
