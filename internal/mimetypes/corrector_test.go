package mimetypes

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestCorrector(t *testing.T) (*Corrector, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "generated.mime-types")
	return NewCorrector(NewRegistry(path)), path
}

func TestCorrectKnownExtension(t *testing.T) {
	c, _ := newTestCorrector(t)

	got, changed := c.Correct("movie.mkv", "application/octet-stream")
	if !changed || got != "video/x-matroska" {
		t.Errorf("Correct(movie.mkv) = %q, %v; want video/x-matroska, true", got, changed)
	}
}

func TestCorrectKnownExtensionCaseInsensitive(t *testing.T) {
	c, _ := newTestCorrector(t)

	got, changed := c.Correct("SONG.FLAC", "application/octet-stream")
	if !changed || got != "audio/flac" {
		t.Errorf("Correct(SONG.FLAC) = %q, %v; want audio/flac, true", got, changed)
	}
}

func TestCorrectAlreadyCorrect(t *testing.T) {
	c, _ := newTestCorrector(t)

	got, changed := c.Correct("movie.mp4", "video/mp4")
	if changed {
		t.Errorf("Correct on an already-correct type reported a change: %q", got)
	}
	if got != "video/mp4" {
		t.Errorf("Correct(movie.mp4, video/mp4) = %q, want video/mp4", got)
	}
}

func TestCorrectSynthesizesUnknownExtension(t *testing.T) {
	c, path := newTestCorrector(t)

	got, changed := c.Correct("save.dat", "application/octet-stream")
	if !changed || got != "application/octet-stream-dat" {
		t.Errorf("Correct(save.dat) = %q, %v; want application/octet-stream-dat, true", got, changed)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("side file not written: %v", err)
	}
	if !strings.Contains(string(data), "application/octet-stream-dat: .dat") {
		t.Errorf("side file missing synthesized mapping:\n%s", data)
	}
}

func TestCorrectSynthesizedOnce(t *testing.T) {
	c, path := newTestCorrector(t)

	for i := 0; i < 3; i++ {
		got, changed := c.Correct("save.dat", "application/octet-stream")
		if !changed || got != "application/octet-stream-dat" {
			t.Fatalf("pass %d: Correct = %q, %v", i, got, changed)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(data), "application/octet-stream-dat"); n != 1 {
		t.Errorf("side file records the mapping %d times, want 1:\n%s", n, data)
	}
}

func TestCorrectSynthesizedTypeRoundTrips(t *testing.T) {
	c, _ := newTestCorrector(t)

	synthesized, _ := c.Correct("save.dat", "application/octet-stream")

	// After synthesis the extension resolves through the combined table, so
	// a rescan of the same file keeps the same type.
	got, changed := c.Correct("other.dat", "application/octet-stream")
	if !changed || got != synthesized {
		t.Errorf("rescan Correct = %q, %v; want %q, true", got, changed, synthesized)
	}
}

func TestCorrectNoSynthesisCases(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		detected string
	}{
		{"no extension", "README", "application/octet-stream"},
		{"text type", "notes.xyz", "text/plain"},
		{"image type", "photo.xyz", "image/png"},
		{"excluded office doc", "report.docx", "application/octet-stream"},
		{"excluded spreadsheet", "budget.xlsx", "application/zip"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, path := newTestCorrector(t)

			got, changed := c.Correct(tt.fileName, tt.detected)
			if changed || got != tt.detected {
				t.Errorf("Correct(%s, %s) = %q, %v; want unchanged", tt.fileName, tt.detected, got, changed)
			}
			if _, err := os.Stat(path); !os.IsNotExist(err) {
				t.Error("side file was written when no synthesis should happen")
			}
		})
	}
}
