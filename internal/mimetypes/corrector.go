package mimetypes

import (
	"path/filepath"
	"strings"

	"media-parser/internal/logging"
	"media-parser/internal/metrics"
)

// excludedExtensions are well-known office-document extensions whose files
// are handled by the host's native parsers; we never invent mime types for
// them.
var excludedExtensions = map[string]bool{
	".doc":  true,
	".docx": true,
	".odt":  true,
	".ppt":  true,
	".pptx": true,
	".odp":  true,
	".xls":  true,
	".xlsx": true,
	".ods":  true,
}

// Corrector rewrites a document's detected mime type before it is persisted
// so the stored record round-trips with the right file extension.
type Corrector struct {
	registry *Registry
}

// NewCorrector returns a corrector backed by the given side-file registry.
func NewCorrector(registry *Registry) *Corrector {
	return &Corrector{registry: registry}
}

// Correct inspects the original filename's extension and returns the mime
// type the record should be saved with. It reports whether the type changed.
//
// Resolution order:
//  1. Extension found in the combined table: use that table entry.
//  2. No match, detected type is not text/* or image/*, extension is
//     non-empty and not an excluded office format: synthesize
//     "<detected>-<ext>" and record it in the side file for reuse.
//  3. Otherwise the detected type is kept unchanged.
//
// The side-file append is best-effort: a failure is logged and the
// synthesized type is still returned.
func (c *Corrector) Correct(originalFilename, detectedMime string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	combined := Combined(c.registry)

	if matched, ok := combined.MimeForExtension(ext); ok {
		if matched == detectedMime {
			return detectedMime, false
		}
		logging.Debug("Corrected mime type for %s: %s -> %s", originalFilename, detectedMime, matched)
		metrics.MimeCorrectionsTotal.WithLabelValues("matched").Inc()
		return matched, true
	}

	if ext == "" ||
		excludedExtensions[ext] ||
		strings.HasPrefix(detectedMime, "text/") ||
		strings.HasPrefix(detectedMime, "image/") {
		return detectedMime, false
	}

	custom := detectedMime + "-" + strings.TrimPrefix(ext, ".")

	// Only append when the combined table doesn't know the mapping yet, so
	// each novel extension is recorded once. Races between concurrent saves
	// can still duplicate a line; Load tolerates that.
	if !combined.Contains(custom) {
		if err := c.registry.Append(custom, ext); err != nil {
			logging.Error("Error writing to mime registry: %v", err)
		}
	}

	logging.Debug("Synthesized mime type for %s: %s", originalFilename, custom)
	metrics.MimeCorrectionsTotal.WithLabelValues("synthesized").Inc()
	return custom, true
}
