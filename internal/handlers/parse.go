package handlers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"media-parser/internal/logging"
)

// maxUploadBytes bounds on-demand parse uploads.
const maxUploadBytes = 512 << 20

// ParseResult is the response body for on-demand parsing.
type ParseResult struct {
	FileName      string `json:"fileName"`
	MimeType      string `json:"mimeType"`
	Content       string `json:"content"`
	ThumbnailPath string `json:"thumbnailPath,omitempty"`
}

// ParseUpload runs a single uploaded file through the parser without
// storing a document record. The upload lands in a scratch subdirectory
// that is removed when the request finishes.
func (h *Handlers) ParseUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "missing multipart field: file")
		return
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			logging.Warn("failed to close upload: %v", cerr)
		}
	}()

	uploadDir := filepath.Join(h.config.ScratchDir, "uploads", uuid.NewString())
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		logging.Error("Failed to create upload directory: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "failed to stage upload")
		return
	}
	defer func() {
		if rerr := os.RemoveAll(uploadDir); rerr != nil {
			logging.Warn("failed to remove upload directory %s: %v", uploadDir, rerr)
		}
	}()

	fileName := filepath.Base(header.Filename)
	if fileName == "" || fileName == "." || fileName == string(filepath.Separator) {
		fileName = "upload"
	}
	stagedPath := filepath.Join(uploadDir, fileName)

	if err := writeUpload(stagedPath, file); err != nil {
		logging.Error("Failed to stage upload %s: %v", fileName, err)
		writeJSONError(w, http.StatusInternalServerError, "failed to stage upload")
		return
	}

	mimeType := detectUploadMimeType(stagedPath, header.Header.Get("Content-Type"))

	content, err := h.parser.Parse(r.Context(), stagedPath, mimeType, fileName)
	if err != nil {
		logging.Warn("On-demand text extraction failed for %s: %v", fileName, err)
		content = ""
	}

	thumbPath, err := h.parser.GetThumbnail(r.Context(), stagedPath, mimeType, fileName)
	if err != nil {
		logging.Warn("On-demand thumbnail failed for %s: %v", fileName, err)
		thumbPath = ""
	}

	writeJSON(w, http.StatusOK, ParseResult{
		FileName:      fileName,
		MimeType:      mimeType,
		Content:       content,
		ThumbnailPath: thumbPath,
	})
}

// TriggerScan kicks off a consume scan immediately instead of waiting for
// the next tick.
func (h *Handlers) TriggerScan(w http.ResponseWriter, r *http.Request) {
	if err := h.consumer.Scan(r.Context()); err != nil {
		logging.Error("Triggered scan failed: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "scan failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "complete"})
}

func writeUpload(path string, src io.Reader) error {
	dst, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create staged file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return fmt.Errorf("failed to write staged file: %w", err)
	}
	return dst.Close()
}

// detectUploadMimeType prefers content sniffing over the client-declared
// type, falling back to the declared type only when sniffing is
// inconclusive.
func detectUploadMimeType(path, declared string) string {
	f, err := os.Open(path)
	if err != nil {
		return fallbackMimeType(declared)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			logging.Warn("failed to close %s: %v", path, cerr)
		}
	}()

	buf := make([]byte, 512)
	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		return fallbackMimeType(declared)
	}

	sniffed := http.DetectContentType(buf[:n])
	if i := strings.Index(sniffed, ";"); i >= 0 {
		sniffed = strings.TrimSpace(sniffed[:i])
	}
	if sniffed == "application/octet-stream" && declared != "" {
		return fallbackMimeType(declared)
	}
	return sniffed
}

func fallbackMimeType(declared string) string {
	if i := strings.Index(declared, ";"); i >= 0 {
		declared = strings.TrimSpace(declared[:i])
	}
	if declared == "" {
		return "application/octet-stream"
	}
	return declared
}
