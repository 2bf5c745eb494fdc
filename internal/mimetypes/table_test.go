package mimetypes

import "testing"

func TestNormalizeExtension(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already dotted", ".mp4", ".mp4"},
		{"bare extension", "mp4", ".mp4"},
		{"whitespace", "  webm ", ".webm"},
		{"empty", "", ""},
		{"dot only", ".", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeExtension(tt.input); got != tt.want {
				t.Errorf("NormalizeExtension(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTableAdd(t *testing.T) {
	table := NewTable(nil)

	if !table.Add("video/mp4", ".mp4") {
		t.Error("first Add should succeed")
	}
	if table.Add("video/mp4", ".other") {
		t.Error("duplicate mime type should be rejected")
	}
	if table.Add("", ".mp4") {
		t.Error("empty mime type should be rejected")
	}
	if table.Add("video/empty", "") {
		t.Error("empty extension should be rejected")
	}

	ext, ok := table.ExtensionFor("video/mp4")
	if !ok || ext != ".mp4" {
		t.Errorf("ExtensionFor(video/mp4) = %q, %v; want .mp4, true", ext, ok)
	}
	if table.Len() != 1 {
		t.Errorf("Len() = %d, want 1", table.Len())
	}
}

func TestMimeForExtensionFirstMatchWins(t *testing.T) {
	table := NewTable([]Mapping{
		{MimeType: "video/mpeg", Extension: ".mpg"},
		{MimeType: "video/mpeg-mpg", Extension: ".mpg"},
		{MimeType: "audio/flac", Extension: ".flac"},
	})

	got, ok := table.MimeForExtension(".mpg")
	if !ok || got != "video/mpeg" {
		t.Errorf("MimeForExtension(.mpg) = %q, %v; want video/mpeg, true", got, ok)
	}
}

func TestMimeForExtensionCaseInsensitive(t *testing.T) {
	table := NewTable([]Mapping{
		{MimeType: "audio/flac", Extension: ".flac"},
	})

	tests := []struct {
		ext  string
		want string
		ok   bool
	}{
		{".FLAC", "audio/flac", true},
		{".Flac", "audio/flac", true},
		{"flac", "audio/flac", true},
		{".unknown", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := table.MimeForExtension(tt.ext)
		if got != tt.want || ok != tt.ok {
			t.Errorf("MimeForExtension(%q) = %q, %v; want %q, %v", tt.ext, got, ok, tt.want, tt.ok)
		}
	}
}

func TestBuiltinTable(t *testing.T) {
	table := Builtin()

	if table.Len() == 0 {
		t.Fatal("builtin table is empty")
	}

	// Spot checks across categories
	checks := map[string]string{
		"video/mp4":            ".mp4",
		"video/mpeg-mpg":       ".mpg",
		"audio/flac":           ".flac",
		"application/yaml":     ".yaml",
		"application/gzip":     ".gz",
		"application/epub+zip": ".epub",
	}
	for mime, wantExt := range checks {
		ext, ok := table.ExtensionFor(mime)
		if !ok {
			t.Errorf("builtin table missing %s", mime)
			continue
		}
		if ext != wantExt {
			t.Errorf("ExtensionFor(%s) = %q, want %q", mime, ext, wantExt)
		}
	}
}

func TestBuiltinIsACopy(t *testing.T) {
	a := Builtin()
	a.Add("application/x-test", ".test")

	b := Builtin()
	if b.Contains("application/x-test") {
		t.Error("mutating one Builtin() result leaked into another")
	}
}

func TestMimeTypesMap(t *testing.T) {
	table := NewTable([]Mapping{
		{MimeType: "video/mp4", Extension: ".mp4"},
		{MimeType: "audio/ogg", Extension: ".oga"},
	})

	m := table.MimeTypes()
	if len(m) != 2 {
		t.Fatalf("MimeTypes() has %d entries, want 2", len(m))
	}
	if m["video/mp4"] != ".mp4" || m["audio/ogg"] != ".oga" {
		t.Errorf("unexpected map contents: %v", m)
	}
}
