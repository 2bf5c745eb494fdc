package mimetypes

import "strings"

// Mapping pairs a mime type with its preferred file extension.
// Extensions always carry the leading dot.
type Mapping struct {
	MimeType  string
	Extension string
}

// Table is an ordered mime-type to extension table. Each mime type maps to
// exactly one extension; insertion order is significant because extension
// lookups return the first match. Distinct mime types may share an
// extension.
type Table struct {
	entries []Mapping
	byMime  map[string]int
}

// NewTable returns a table seeded with the given mappings. Mappings whose
// mime type is already present are dropped, so earlier entries win.
func NewTable(mappings []Mapping) *Table {
	t := &Table{byMime: make(map[string]int, len(mappings))}
	for _, m := range mappings {
		t.Add(m.MimeType, m.Extension)
	}
	return t
}

// Add appends a mapping unless the mime type is already present.
// It reports whether the mapping was added.
func (t *Table) Add(mimeType, extension string) bool {
	mimeType = strings.TrimSpace(mimeType)
	extension = NormalizeExtension(extension)
	if mimeType == "" || extension == "" {
		return false
	}
	if _, exists := t.byMime[mimeType]; exists {
		return false
	}
	t.byMime[mimeType] = len(t.entries)
	t.entries = append(t.entries, Mapping{MimeType: mimeType, Extension: extension})
	return true
}

// ExtensionFor returns the extension registered for a mime type.
func (t *Table) ExtensionFor(mimeType string) (string, bool) {
	i, ok := t.byMime[mimeType]
	if !ok {
		return "", false
	}
	return t.entries[i].Extension, true
}

// MimeForExtension scans the table in insertion order and returns the first
// mime type whose extension matches. The extension is matched lowercased.
func (t *Table) MimeForExtension(extension string) (string, bool) {
	extension = strings.ToLower(NormalizeExtension(extension))
	if extension == "" {
		return "", false
	}
	for _, m := range t.entries {
		if m.Extension == extension {
			return m.MimeType, true
		}
	}
	return "", false
}

// Contains reports whether the mime type is present in the table.
func (t *Table) Contains(mimeType string) bool {
	_, ok := t.byMime[mimeType]
	return ok
}

// Mappings returns a copy of the table contents in order.
func (t *Table) Mappings() []Mapping {
	out := make([]Mapping, len(t.entries))
	copy(out, t.entries)
	return out
}

// MimeTypes returns the mime-type keys in table order. This is the set of
// types advertised to the host in the consumer declaration.
func (t *Table) MimeTypes() map[string]string {
	out := make(map[string]string, len(t.entries))
	for _, m := range t.entries {
		out[m.MimeType] = m.Extension
	}
	return out
}

// Len returns the number of mappings in the table.
func (t *Table) Len() int {
	return len(t.entries)
}

// NormalizeExtension trims an extension and ensures it carries a leading dot.
// An empty or dot-only extension normalizes to "".
func NormalizeExtension(ext string) string {
	ext = strings.TrimSpace(ext)
	if ext == "" || ext == "." {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
