package handlers

import (
	"net/http"

	"media-parser/internal/mimetypes"
)

// Declaration returns every registered parser declaration, highest weight
// first. This is what a host application would consume at registration
// time.
func (h *Handlers) Declaration(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.registry.Declarations())
}

// MimeTypes returns the combined mime-type table in precedence order:
// built-in mappings first, then generated ones.
func (h *Handlers) MimeTypes(w http.ResponseWriter, _ *http.Request) {
	table := mimetypes.Combined(h.mimeRegistry)
	writeJSON(w, http.StatusOK, table.Mappings())
}
