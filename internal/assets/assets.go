// Package assets builds and resolves thumbnail references. Everything here
// is pure string/path manipulation; no I/O happens in this package.
package assets

import (
	"fmt"
	"mime"
	"path/filepath"
	"strings"
)

// imageExtensions is the allowlist of thumbnail media types. Anything else
// is rejected up front rather than deriving a junk extension from the raw
// content-type string.
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ExtensionForMediaType returns the file extension for an allowed image
// media type. Parameters ("; charset=...") are stripped before the lookup.
func ExtensionForMediaType(mediaType string) (string, error) {
	parsed, _, err := mime.ParseMediaType(mediaType)
	if err != nil {
		return "", fmt.Errorf("invalid media type %q: %w", mediaType, err)
	}

	ext, ok := imageExtensions[parsed]
	if !ok {
		return "", fmt.Errorf("media type %q is not an allowed thumbnail type", parsed)
	}
	return ext, nil
}

// FileURL returns the static-asset URL for a thumbnail stored on disk,
// served by the file server mounted at /assets/.
func FileURL(baseURL, filename string) string {
	return fmt.Sprintf("%s/assets/%s", strings.TrimRight(baseURL, "/"), filename)
}

// DataURL returns a self-contained data URL carrying the blob itself. No
// storage backs this reference; the payload travels with the record.
func DataURL(mediaType, base64Data string) string {
	return fmt.Sprintf("data:%s;base64,%s", mediaType, base64Data)
}

// ThumbnailURL returns the retrieval-route URL for thumbnails held in
// process memory. The route is keyed by video ID only; the bytes are
// resolvable solely by the process holding the table.
func ThumbnailURL(baseURL, videoID string) string {
	return fmt.Sprintf("%s/api/thumbnails/%s", strings.TrimRight(baseURL, "/"), videoID)
}

// DiskPath joins the asset root with a relative filename. The filename must
// be a bare name: separators, parent references and absolute paths are
// rejected so a crafted name can never resolve outside the root.
func DiskPath(root, filename string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("asset filename is required")
	}
	if strings.ContainsAny(filename, `/\`) || filepath.IsAbs(filename) {
		return "", fmt.Errorf("invalid asset filename %q", filename)
	}
	clean := filepath.Clean(filename)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("invalid asset filename %q", filename)
	}
	return filepath.Join(root, clean), nil
}
