package parser

import (
	"context"
	"os"
	"strings"

	"media-parser/internal/logging"
)

// Parser is the contract the host's consumption pipeline drives. Both
// methods are best-effort: they degrade to a placeholder thumbnail or empty
// text instead of failing the document.
type Parser interface {
	// GetThumbnail produces a thumbnail for the file and returns the path
	// of the written image inside the parser's scratch directory.
	GetThumbnail(ctx context.Context, documentPath, mimeType, fileName string) (string, error)

	// Parse extracts a text excerpt suitable for search indexing. Media and
	// opaque binary types yield an empty excerpt.
	Parse(ctx context.Context, documentPath, mimeType, fileName string) (string, error)

	// Settings returns parser-specific configuration exposed to the host.
	Settings() map[string]string
}

// MediaParser parses media and generic binary documents.
type MediaParser struct {
	scratchDir string
}

// New returns a MediaParser writing thumbnails to scratchDir. The directory
// is owned by the caller's processing pipeline; the parser only creates it.
func New(scratchDir string) *MediaParser {
	if err := os.MkdirAll(scratchDir, 0o755); err != nil {
		logging.Warn("MediaParser: failed to create scratch dir %s: %v", scratchDir, err)
	}
	return &MediaParser{scratchDir: scratchDir}
}

// Settings returns parser-specific configuration.
// This parser does not expose additional settings.
func (p *MediaParser) Settings() map[string]string {
	return nil
}

// mimeClass buckets a mime type for metrics labels.
func mimeClass(mimeType string) string {
	switch {
	case strings.HasPrefix(mimeType, "text/"):
		return "text"
	case strings.HasPrefix(mimeType, "audio/"):
		return "audio"
	case strings.HasPrefix(mimeType, "video/"):
		return "video"
	case mimeType == "application/octet-stream":
		return "octet-stream"
	default:
		return "other"
	}
}
