package handlers

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"

	"media-parser/internal/database"
	"media-parser/internal/logging"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

// ListDocuments returns stored documents, newest first. Supports limit and
// offset query parameters.
func (h *Handlers) ListDocuments(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", defaultPageSize, maxPageSize)
	offset := queryInt(r, "offset", 0, 1<<30)

	docs, err := h.db.ListDocuments(r.Context(), limit, offset)
	if err != nil {
		logging.Error("Failed to list documents: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "failed to list documents")
		return
	}
	if docs == nil {
		docs = []*database.Document{}
	}
	writeJSON(w, http.StatusOK, docs)
}

// GetDocument returns a single document by id.
func (h *Handlers) GetDocument(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	doc, err := h.db.GetDocument(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "document not found")
			return
		}
		logging.Error("Failed to get document %s: %v", id, err)
		writeJSONError(w, http.StatusInternalServerError, "failed to get document")
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// DeleteDocument removes a document record.
func (h *Handlers) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.db.DeleteDocument(r.Context(), id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "document not found")
			return
		}
		logging.Error("Failed to delete document %s: %v", id, err)
		writeJSONError(w, http.StatusInternalServerError, "failed to delete document")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": id})
}

// SearchDocuments runs a full-text query over titles, filenames, and
// extracted excerpts.
func (h *Handlers) SearchDocuments(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeJSONError(w, http.StatusBadRequest, "missing query parameter: q")
		return
	}
	limit := queryInt(r, "limit", defaultPageSize, maxPageSize)

	docs, err := h.db.SearchDocuments(r.Context(), query, limit)
	if err != nil {
		logging.Error("Search failed for %q: %v", query, err)
		writeJSONError(w, http.StatusInternalServerError, "search failed")
		return
	}
	if docs == nil {
		docs = []*database.Document{}
	}
	writeJSON(w, http.StatusOK, docs)
}

// GetThumbnail serves a document's thumbnail image from the scratch
// directory.
func (h *Handlers) GetThumbnail(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	doc, err := h.db.GetDocument(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "document not found")
			return
		}
		logging.Error("Failed to get document %s: %v", id, err)
		writeJSONError(w, http.StatusInternalServerError, "failed to get document")
		return
	}

	if doc.ThumbnailPath == "" {
		writeJSONError(w, http.StatusNotFound, "document has no thumbnail")
		return
	}

	// Thumbnails are only ever written under the scratch directory. Reject
	// anything that resolved outside it.
	cleaned := filepath.Clean(doc.ThumbnailPath)
	if !strings.HasPrefix(cleaned, filepath.Clean(h.config.ScratchDir)+string(filepath.Separator)) {
		logging.Warn("Thumbnail path outside scratch directory for document %s: %s", id, doc.ThumbnailPath)
		writeJSONError(w, http.StatusNotFound, "thumbnail not available")
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=86400")
	http.ServeFile(w, r, cleaned)
}
