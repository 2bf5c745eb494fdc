package consumer

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"media-parser/internal/database"
	"media-parser/internal/mimetypes"
)

func newTestDB(t *testing.T) *database.Database {
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
	return db
}

func newTestConsumer(t *testing.T, db *database.Database, consumeDir string) *Consumer {
	t.Helper()
	mimeReg := mimetypes.NewRegistry(filepath.Join(t.TempDir(), "generated.mime-types"))
	decl := MediaDeclaration(t.TempDir(), mimeReg)
	reg := NewRegistry()
	reg.Register(decl)
	return New(db, reg, decl, consumeDir, time.Minute)
}

func TestScanConsumesFiles(t *testing.T) {
	db := newTestDB(t)
	consumeDir := t.TempDir()

	content := []byte("The quick brown fox jumps over the lazy dog.")
	if err := os.WriteFile(filepath.Join(consumeDir, "notes.txt"), content, 0o644); err != nil {
		t.Fatal(err)
	}

	c := newTestConsumer(t, db, consumeDir)
	if err := c.Scan(context.Background()); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	docs, err := db.ListDocuments(context.Background(), 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 1 {
		t.Fatalf("got %d documents, want 1", len(docs))
	}

	doc := docs[0]
	if doc.OriginalFilename != "notes.txt" {
		t.Errorf("OriginalFilename = %q", doc.OriginalFilename)
	}
	if doc.Title != "notes" {
		t.Errorf("Title = %q, want notes", doc.Title)
	}
	if doc.Content != string(content) {
		t.Errorf("Content = %q, want %q", doc.Content, content)
	}
	if doc.Checksum == "" {
		t.Error("Checksum is empty")
	}
	if doc.ThumbnailPath == "" {
		t.Error("ThumbnailPath is empty")
	}
}

func TestScanIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	consumeDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(consumeDir, "file.txt"), []byte("same content each scan"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := newTestConsumer(t, db, consumeDir)
	for i := 0; i < 3; i++ {
		if err := c.Scan(context.Background()); err != nil {
			t.Fatalf("scan %d failed: %v", i, err)
		}
	}

	count, err := db.CountDocuments(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("got %d documents after repeated scans, want 1", count)
	}
}

func TestScanSkipsDirectoriesAndDotFiles(t *testing.T) {
	db := newTestDB(t)
	consumeDir := t.TempDir()

	if err := os.Mkdir(filepath.Join(consumeDir, "subdir"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(consumeDir, ".hidden"), []byte("dotfile"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := newTestConsumer(t, db, consumeDir)
	if err := c.Scan(context.Background()); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	count, err := db.CountDocuments(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("got %d documents, want 0", count)
	}
}

func TestScanEmptyDirectory(t *testing.T) {
	db := newTestDB(t)
	c := newTestConsumer(t, db, t.TempDir())

	if err := c.Scan(context.Background()); err != nil {
		t.Fatalf("Scan of empty directory failed: %v", err)
	}
}

func TestScanMissingDirectory(t *testing.T) {
	db := newTestDB(t)
	c := newTestConsumer(t, db, filepath.Join(t.TempDir(), "does-not-exist"))

	if err := c.Scan(context.Background()); err == nil {
		t.Error("Scan of missing directory should fail")
	}
}

func TestRegisterMimeCorrection(t *testing.T) {
	db := newTestDB(t)
	sideFile := filepath.Join(t.TempDir(), "generated.mime-types")
	corrector := mimetypes.NewCorrector(mimetypes.NewRegistry(sideFile))
	RegisterMimeCorrection(db, corrector)

	doc := &database.Document{
		OriginalFilename: "movie.mkv",
		Title:            "movie",
		MimeType:         "application/octet-stream",
		ModTime:          time.Now(),
	}
	if err := db.SaveDocument(context.Background(), doc); err != nil {
		t.Fatal(err)
	}

	saved, err := db.GetDocument(context.Background(), doc.ID)
	if err != nil {
		t.Fatal(err)
	}
	if saved.MimeType != "video/x-matroska" {
		t.Errorf("stored mime type = %q, want video/x-matroska", saved.MimeType)
	}
}

func TestRegisterMimeCorrectionSynthesizes(t *testing.T) {
	db := newTestDB(t)
	sideFile := filepath.Join(t.TempDir(), "generated.mime-types")
	corrector := mimetypes.NewCorrector(mimetypes.NewRegistry(sideFile))
	RegisterMimeCorrection(db, corrector)

	doc := &database.Document{
		OriginalFilename: "save.dat",
		Title:            "save",
		MimeType:         "application/octet-stream",
		ModTime:          time.Now(),
	}
	if err := db.SaveDocument(context.Background(), doc); err != nil {
		t.Fatal(err)
	}

	saved, err := db.GetDocument(context.Background(), doc.ID)
	if err != nil {
		t.Fatal(err)
	}
	if saved.MimeType != "application/octet-stream-dat" {
		t.Errorf("stored mime type = %q, want application/octet-stream-dat", saved.MimeType)
	}

	if _, err := os.Stat(sideFile); err != nil {
		t.Errorf("side file not written: %v", err)
	}
}

func TestDetectMimeType(t *testing.T) {
	dir := t.TempDir()

	textPath := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(textPath, []byte("plain text content here"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := detectMimeType(textPath); got != "text/plain" {
		t.Errorf("detectMimeType(text) = %q, want text/plain", got)
	}

	binPath := filepath.Join(dir, "data.bin")
	if err := os.WriteFile(binPath, []byte{0x00, 0x01, 0x02, 0x03, 0xff}, 0o644); err != nil {
		t.Fatal(err)
	}
	if got := detectMimeType(binPath); got != "application/octet-stream" {
		t.Errorf("detectMimeType(binary) = %q, want application/octet-stream", got)
	}

	if got := detectMimeType(filepath.Join(dir, "missing")); got != "application/octet-stream" {
		t.Errorf("detectMimeType(missing) = %q, want application/octet-stream", got)
	}
}

func TestFileChecksumStable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(path, []byte("content"), 0o644); err != nil {
		t.Fatal(err)
	}

	a, err := fileChecksum(path)
	if err != nil {
		t.Fatal(err)
	}
	b, err := fileChecksum(path)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("checksum not stable: %s vs %s", a, b)
	}
	if len(a) != 32 {
		t.Errorf("checksum length = %d, want 32 hex chars", len(a))
	}
}

func TestHealthStatus(t *testing.T) {
	db := newTestDB(t)
	c := newTestConsumer(t, db, t.TempDir())

	status := c.GetHealthStatus()
	if status.Ready {
		t.Error("consumer should not be ready before the initial scan")
	}
	if status.FilesProcessed != 0 {
		t.Errorf("FilesProcessed = %d, want 0", status.FilesProcessed)
	}
}
