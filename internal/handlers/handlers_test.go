package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"media-parser/internal/consumer"
	"media-parser/internal/database"
	"media-parser/internal/mimetypes"
)

type testEnv struct {
	db     *database.Database
	router *mux.Router
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.New(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close test database: %v", err)
		}
	})

	scratchDir := t.TempDir()
	mimeReg := mimetypes.NewRegistry(filepath.Join(t.TempDir(), "generated.mime-types"))
	decl := consumer.MediaDeclaration(scratchDir, mimeReg)
	declReg := consumer.NewRegistry()
	declReg.Register(decl)
	cons := consumer.New(db, declReg, decl, t.TempDir(), time.Minute)

	h := New(db, cons, declReg, mimeReg, Config{
		ConsumeDir: t.TempDir(),
		ScratchDir: scratchDir,
	})

	router := mux.NewRouter()
	h.RegisterRoutes(router)
	return &testEnv{db: db, router: router}
}

func (e *testEnv) do(t *testing.T, method, path string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, body)
		req.Header.Set("Content-Type", contentType)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) saveDocument(t *testing.T, name, content string) *database.Document {
	t.Helper()
	doc := &database.Document{
		OriginalFilename: name,
		Title:            name,
		MimeType:         "text/plain",
		ModTime:          time.Now(),
		Checksum:         "checksum-" + name,
		Content:          content,
	}
	if err := e.db.SaveDocument(context.Background(), doc); err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/health", nil, "")
	if rec.Code != http.StatusOK {
		t.Errorf("/health status = %d, want 200", rec.Code)
	}

	var health HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &health); err != nil {
		t.Fatalf("invalid health body: %v", err)
	}
	if health.Status != "healthy" {
		t.Errorf("health status = %q", health.Status)
	}

	if rec := env.do(t, http.MethodGet, "/livez", nil, ""); rec.Code != http.StatusOK {
		t.Errorf("/livez status = %d, want 200", rec.Code)
	}

	// Initial scan has not run, so the service is not ready yet.
	if rec := env.do(t, http.MethodGet, "/readyz", nil, ""); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("/readyz status = %d, want 503 before initial scan", rec.Code)
	}
}

func TestVersionEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/version", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("/version status = %d, want 200", rec.Code)
	}

	var info map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
		t.Fatalf("invalid version body: %v", err)
	}
	if info["version"] == "" {
		t.Error("version field missing")
	}
}

func TestDeclarationEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/declaration", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var decls []consumer.Declaration
	if err := json.Unmarshal(rec.Body.Bytes(), &decls); err != nil {
		t.Fatalf("invalid declaration body: %v", err)
	}
	if len(decls) != 1 {
		t.Fatalf("got %d declarations, want 1", len(decls))
	}
	if decls[0].Name != "media" || decls[0].Weight != consumer.MediaParserWeight {
		t.Errorf("unexpected declaration: %+v", decls[0])
	}
	if _, ok := decls[0].MimeTypes["video/mp4"]; !ok {
		t.Error("declaration does not claim video/mp4")
	}
}

func TestMimeTypesEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/mimetypes", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var mappings []mimetypes.Mapping
	if err := json.Unmarshal(rec.Body.Bytes(), &mappings); err != nil {
		t.Fatalf("invalid mimetypes body: %v", err)
	}
	if len(mappings) == 0 {
		t.Fatal("empty mime-type table")
	}
	if mappings[0].MimeType != "video/mp4" {
		t.Errorf("first mapping = %+v, want the built-in video/mp4 entry", mappings[0])
	}
}

func TestDocumentLifecycle(t *testing.T) {
	env := newTestEnv(t)
	doc := env.saveDocument(t, "file.txt", "searchable content here")

	rec := env.do(t, http.MethodGet, "/api/documents", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var docs []*database.Document
	if err := json.Unmarshal(rec.Body.Bytes(), &docs); err != nil {
		t.Fatal(err)
	}
	if len(docs) != 1 {
		t.Fatalf("got %d documents, want 1", len(docs))
	}

	rec = env.do(t, http.MethodGet, "/api/documents/"+doc.ID, nil, "")
	if rec.Code != http.StatusOK {
		t.Errorf("get status = %d", rec.Code)
	}

	rec = env.do(t, http.MethodDelete, "/api/documents/"+doc.ID, nil, "")
	if rec.Code != http.StatusOK {
		t.Errorf("delete status = %d", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/api/documents/"+doc.ID, nil, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestGetDocumentNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/documents/missing-id", nil, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestSearchEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.saveDocument(t, "vacation.txt", "photos from the beach in portugal")
	env.saveDocument(t, "taxes.txt", "annual tax return")

	rec := env.do(t, http.MethodGet, "/api/search?q=portugal", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var docs []*database.Document
	if err := json.Unmarshal(rec.Body.Bytes(), &docs); err != nil {
		t.Fatal(err)
	}
	if len(docs) != 1 || docs[0].OriginalFilename != "vacation.txt" {
		t.Errorf("unexpected search results: %+v", docs)
	}

	if rec := env.do(t, http.MethodGet, "/api/search", nil, ""); rec.Code != http.StatusBadRequest {
		t.Errorf("missing q status = %d, want 400", rec.Code)
	}
}

func TestParseUploadEndpoint(t *testing.T) {
	env := newTestEnv(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "notes.txt")
	if err != nil {
		t.Fatal(err)
	}
	content := "The quick brown fox jumps over the lazy dog."
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	rec := env.do(t, http.MethodPost, "/api/parse", &buf, mw.FormDataContentType())
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}

	var result ParseResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatal(err)
	}
	if result.MimeType != "text/plain" {
		t.Errorf("MimeType = %q, want text/plain", result.MimeType)
	}
	if result.Content != content {
		t.Errorf("Content = %q, want %q", result.Content, content)
	}
}

func TestParseUploadMissingFile(t *testing.T) {
	env := newTestEnv(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	rec := env.do(t, http.MethodPost, "/api/parse", &buf, mw.FormDataContentType())
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestTriggerScanEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/scan", nil, "")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
