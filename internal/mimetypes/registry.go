package mimetypes

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"media-parser/internal/logging"
	"media-parser/internal/metrics"
)

// Registry is the append-only side file of generated mime-type mappings.
// Format: one "mime-type: extension" pair per line, "#" starts a comment.
// Appends are best-effort and unlocked; concurrent writers may produce
// duplicate lines, which Load tolerates (first occurrence wins).
type Registry struct {
	path string
}

// NewRegistry returns a registry backed by the side file at path.
func NewRegistry(path string) *Registry {
	return &Registry{path: path}
}

// Path returns the side file location.
func (r *Registry) Path() string {
	return r.path
}

// Load reads the side file and returns its mappings in file order.
// A missing file is not an error: the registry starts empty. Malformed
// lines are skipped with a debug log rather than failing the load.
func (r *Registry) Load() ([]Mapping, error) {
	f, err := os.Open(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open mime registry: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			logging.Warn("failed to close mime registry %s: %v", r.path, cerr)
		}
	}()

	var mappings []Mapping
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		mimeType, ext, ok := strings.Cut(line, ":")
		if !ok {
			logging.Debug("mime registry %s:%d: no separator, skipping", r.path, lineNo)
			continue
		}
		mimeType = strings.TrimSpace(mimeType)
		ext = NormalizeExtension(ext)
		if mimeType == "" || ext == "" {
			logging.Debug("mime registry %s:%d: empty field, skipping", r.path, lineNo)
			continue
		}
		mappings = append(mappings, Mapping{MimeType: mimeType, Extension: ext})
	}
	if err := scanner.Err(); err != nil {
		return mappings, fmt.Errorf("failed to read mime registry: %w", err)
	}
	return mappings, nil
}

// Append records a new generated mapping at the end of the side file.
func (r *Registry) Append(mimeType, extension string) error {
	extension = NormalizeExtension(extension)
	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		metrics.RegistryAppendsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to open mime registry for append: %w", err)
	}
	_, werr := fmt.Fprintf(f, "%s: %s\n", mimeType, extension)
	cerr := f.Close()
	if werr != nil {
		metrics.RegistryAppendsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to append to mime registry: %w", werr)
	}
	if cerr != nil {
		metrics.RegistryAppendsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to close mime registry: %w", cerr)
	}
	metrics.RegistryAppendsTotal.WithLabelValues("success").Inc()
	logging.Info("Added new mime type to %s: %s: %s", r.path, mimeType, extension)
	return nil
}

// Combined merges the built-in table with the registry contents. Built-in
// entries are inserted first so they take precedence on both key conflicts
// and extension scans. Registry read errors degrade to the built-in table.
func Combined(reg *Registry) *Table {
	t := Builtin()
	if reg == nil {
		return t
	}
	generated, err := reg.Load()
	if err != nil {
		logging.Error("Error reading mime registry %s: %v", reg.Path(), err)
		return t
	}
	for _, m := range generated {
		t.Add(m.MimeType, m.Extension)
	}
	return t
}
