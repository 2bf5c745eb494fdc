package consumer

import (
	"sort"
	"sync"

	"media-parser/internal/mimetypes"
	"media-parser/internal/parser"
)

// MediaParserWeight ranks this plugin below the host's native parsers so
// they keep handling the formats they already understand.
const MediaParserWeight = -1

// ParserFactory builds a parser instance for one consumption run.
type ParserFactory func() parser.Parser

// Declaration describes a parser plugin to the host: how to build it, its
// arbitration weight, and the mime types it claims (mapped to the
// extension each one stores under).
type Declaration struct {
	Name      string            `json:"name"`
	Weight    int               `json:"weight"`
	MimeTypes map[string]string `json:"mimeTypes"`
	Factory   ParserFactory     `json:"-"`
}

// MediaDeclaration builds this plugin's declaration. The advertised mime
// types are the combined built-in + generated table, so previously invented
// types are claimed on later runs too.
func MediaDeclaration(scratchDir string, registry *mimetypes.Registry) Declaration {
	return Declaration{
		Name:      "media",
		Weight:    MediaParserWeight,
		MimeTypes: mimetypes.Combined(registry).MimeTypes(),
		Factory: func() parser.Parser {
			return parser.New(scratchDir)
		},
	}
}

// Registry holds registered parser declarations and arbitrates between
// them.
type Registry struct {
	mu    sync.RWMutex
	decls []Declaration
}

// NewRegistry returns an empty declaration registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a declaration.
func (r *Registry) Register(d Declaration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.decls = append(r.decls, d)
}

// Declarations returns the registered declarations sorted by descending
// weight.
func (r *Registry) Declarations() []Declaration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Declaration, len(r.decls))
	copy(out, r.decls)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Weight > out[j].Weight
	})
	return out
}

// DeclarationFor returns the highest-weight declaration claiming the mime
// type.
func (r *Registry) DeclarationFor(mimeType string) (Declaration, bool) {
	for _, d := range r.Declarations() {
		if _, ok := d.MimeTypes[mimeType]; ok {
			return d, true
		}
	}
	return Declaration{}, false
}
