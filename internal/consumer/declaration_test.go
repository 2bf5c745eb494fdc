package consumer

import (
	"path/filepath"
	"testing"

	"media-parser/internal/mimetypes"
	"media-parser/internal/parser"
)

func TestMediaDeclaration(t *testing.T) {
	reg := mimetypes.NewRegistry(filepath.Join(t.TempDir(), "generated.mime-types"))
	decl := MediaDeclaration(t.TempDir(), reg)

	if decl.Name != "media" {
		t.Errorf("Name = %q, want media", decl.Name)
	}
	if decl.Weight != MediaParserWeight {
		t.Errorf("Weight = %d, want %d", decl.Weight, MediaParserWeight)
	}
	if _, ok := decl.MimeTypes["video/mp4"]; !ok {
		t.Error("declaration does not claim video/mp4")
	}
	if decl.Factory == nil {
		t.Fatal("Factory is nil")
	}
	if p := decl.Factory(); p == nil {
		t.Error("Factory returned nil parser")
	}
}

func TestMediaDeclarationIncludesGeneratedTypes(t *testing.T) {
	reg := mimetypes.NewRegistry(filepath.Join(t.TempDir(), "generated.mime-types"))
	if err := reg.Append("application/octet-stream-dat", ".dat"); err != nil {
		t.Fatal(err)
	}

	decl := MediaDeclaration(t.TempDir(), reg)
	if ext, ok := decl.MimeTypes["application/octet-stream-dat"]; !ok || ext != ".dat" {
		t.Errorf("generated type not advertised: %q, %v", ext, ok)
	}
}

type stubParser struct{ parser.Parser }

func stubDeclaration(name string, weight int, mimeTypes ...string) Declaration {
	claimed := make(map[string]string, len(mimeTypes))
	for _, m := range mimeTypes {
		claimed[m] = ".x"
	}
	return Declaration{
		Name:      name,
		Weight:    weight,
		MimeTypes: claimed,
		Factory:   func() parser.Parser { return stubParser{} },
	}
}

func TestRegistryArbitration(t *testing.T) {
	reg := NewRegistry()
	reg.Register(stubDeclaration("media", -1, "video/mp4", "application/pdf"))
	reg.Register(stubDeclaration("pdf", 10, "application/pdf"))

	decl, ok := reg.DeclarationFor("application/pdf")
	if !ok {
		t.Fatal("no declaration for application/pdf")
	}
	if decl.Name != "pdf" {
		t.Errorf("arbitration picked %q, want pdf (higher weight)", decl.Name)
	}

	decl, ok = reg.DeclarationFor("video/mp4")
	if !ok || decl.Name != "media" {
		t.Errorf("video/mp4 should fall to media, got %q, %v", decl.Name, ok)
	}

	if _, ok := reg.DeclarationFor("application/unknown"); ok {
		t.Error("unclaimed mime type should not resolve")
	}
}

func TestRegistryDeclarationsSorted(t *testing.T) {
	reg := NewRegistry()
	reg.Register(stubDeclaration("low", -1))
	reg.Register(stubDeclaration("high", 5))
	reg.Register(stubDeclaration("mid", 0))

	decls := reg.Declarations()
	if len(decls) != 3 {
		t.Fatalf("got %d declarations, want 3", len(decls))
	}
	wantOrder := []string{"high", "mid", "low"}
	for i, want := range wantOrder {
		if decls[i].Name != want {
			t.Errorf("declaration %d = %q, want %q", i, decls[i].Name, want)
		}
	}
}
