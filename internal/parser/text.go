package parser

import (
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"media-parser/internal/logging"
	"media-parser/internal/metrics"
)

const (
	// maxExcerptBytes is how much of the file is read for text extraction.
	maxExcerptBytes = 5000

	// minMeaningfulWords is the threshold for the "is this real text"
	// heuristic applied to non-text mime types.
	minMeaningfulWords = 5
)

var wordPattern = regexp.MustCompile(`[0-9A-Za-z_]+`)

// Parse extracts a sanitized text excerpt from the first 5000 bytes of the
// file. Audio, video, and generic octet-stream types always yield empty
// text. For text/* types the full sanitized excerpt is returned; for
// anything else it is kept only when it contains at least five word-like
// tokens. I/O failures degrade to empty text.
func (p *MediaParser) Parse(ctx context.Context, documentPath, mimeType, fileName string) (string, error) {
	class := mimeClass(mimeType)
	start := time.Now()
	defer func() {
		metrics.ParseDuration.WithLabelValues(class).Observe(time.Since(start).Seconds())
	}()

	if class == "audio" || class == "video" || class == "octet-stream" {
		metrics.ParseTotal.WithLabelValues(class, "skipped").Inc()
		return "", nil
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	raw, err := readPrefix(documentPath, maxExcerptBytes)
	if err != nil {
		name := fileName
		if name == "" {
			name = documentPath
		}
		logging.Warn("Error parsing file %s: %v", name, err)
		metrics.ParseTotal.WithLabelValues(class, "error").Inc()
		return "", nil
	}

	sanitized := sanitizeText(raw)

	if class != "text" && !isMeaningfulText(sanitized) {
		metrics.ParseTotal.WithLabelValues(class, "skipped").Inc()
		return "", nil
	}

	metrics.ParseTotal.WithLabelValues(class, "success").Inc()
	metrics.ExtractedTextBytes.Observe(float64(len(sanitized)))
	return sanitized, nil
}

// readPrefix reads at most n bytes from the start of the file.
func readPrefix(path string, n int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			logging.Warn("failed to close %s: %v", path, cerr)
		}
	}()

	buf := make([]byte, n)
	read, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return buf[:read], nil
}

// sanitizeText decodes raw bytes as UTF-8 (dropping invalid sequences and
// NULs) and keeps only letters, digits, standard punctuation, and
// whitespace.
func sanitizeText(raw []byte) string {
	var b strings.Builder
	b.Grow(len(raw))
	for len(raw) > 0 {
		r, size := utf8.DecodeRune(raw)
		raw = raw[size:]
		if r == utf8.RuneError && size == 1 {
			continue
		}
		if allowedRune(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// allowedRune reports whether r survives sanitization. The whitelist is
// ASCII letters, digits, standard special characters, and whitespace.
func allowedRune(r rune) bool {
	switch {
	case r == 0:
		return false
	case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		return true
	case r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f':
		return true
	}
	return strings.ContainsRune("!@#$%^&*()_+-=[]{}\\|;:'\",<.>/?`~", r)
}

// isMeaningfulText reports whether the excerpt contains at least five
// word-like tokens.
func isMeaningfulText(text string) bool {
	return len(wordPattern.FindAllStringIndex(text, minMeaningfulWords)) >= minMeaningfulWords
}
