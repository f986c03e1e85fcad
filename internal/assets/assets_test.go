package assets

import (
	"path/filepath"
	"testing"
)

func TestExtensionForMediaType(t *testing.T) {
	tests := []struct {
		name      string
		mediaType string
		want      string
		wantErr   bool
	}{
		{"png", "image/png", ".png", false},
		{"jpeg", "image/jpeg", ".jpg", false},
		{"gif", "image/gif", ".gif", false},
		{"webp", "image/webp", ".webp", false},
		{"parameters stripped", "image/png; charset=utf-8", ".png", false},
		{"video rejected", "video/mp4", "", true},
		{"text rejected", "text/html", "", true},
		{"empty rejected", "", "", true},
		{"garbage rejected", "not-a-media-type", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtensionForMediaType(tt.mediaType)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %q", tt.mediaType, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFileURL(t *testing.T) {
	got := FileURL("http://localhost:8080", "v1.png")
	want := "http://localhost:8080/assets/v1.png"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	// trailing slash on the base must not double up
	if got := FileURL("http://localhost:8080/", "v1.png"); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDataURL(t *testing.T) {
	got := DataURL("image/png", "aGVsbG8=")
	want := "data:image/png;base64,aGVsbG8="
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestThumbnailURL(t *testing.T) {
	got := ThumbnailURL("http://localhost:8080", "v1")
	want := "http://localhost:8080/api/thumbnails/v1"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDiskPath(t *testing.T) {
	root := filepath.Join("var", "assets")

	got, err := DiskPath(root, "v1.png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := filepath.Join(root, "v1.png"); got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	bad := []string{
		"",
		"..",
		"../etc/passwd",
		"a/b.png",
		`a\b.png`,
		"/etc/passwd",
		"..png/../../x",
	}
	for _, name := range bad {
		if _, err := DiskPath(root, name); err == nil {
			t.Errorf("expected %q to be rejected", name)
		}
	}
}
