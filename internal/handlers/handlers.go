package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"media-parser/internal/consumer"
	"media-parser/internal/database"
	"media-parser/internal/mimetypes"
	"media-parser/internal/parser"
)

// Config holds the handler-facing slice of application configuration.
type Config struct {
	ConsumeDir string
	ScratchDir string
}

// Handlers holds dependencies for all HTTP handlers.
type Handlers struct {
	db           *database.Database
	consumer     *consumer.Consumer
	registry     *consumer.Registry
	mimeRegistry *mimetypes.Registry
	parser       parser.Parser
	config       Config
}

// New creates a Handlers instance.
func New(db *database.Database, c *consumer.Consumer, registry *consumer.Registry, mimeRegistry *mimetypes.Registry, config Config) *Handlers {
	return &Handlers{
		db:           db,
		consumer:     c,
		registry:     registry,
		mimeRegistry: mimeRegistry,
		parser:       parser.New(config.ScratchDir),
		config:       config,
	}
}

// RegisterRoutes attaches all application routes to the router.
func (h *Handlers) RegisterRoutes(r *mux.Router) {
	// Health and liveness probes
	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
	r.HandleFunc("/healthz", h.HealthCheck).Methods(http.MethodGet)
	r.HandleFunc("/livez", h.LivenessCheck).Methods(http.MethodGet)
	r.HandleFunc("/readyz", h.ReadinessCheck).Methods(http.MethodGet)
	r.HandleFunc("/version", h.Version).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/declaration", h.Declaration).Methods(http.MethodGet)
	api.HandleFunc("/mimetypes", h.MimeTypes).Methods(http.MethodGet)
	api.HandleFunc("/parse", h.ParseUpload).Methods(http.MethodPost)
	api.HandleFunc("/scan", h.TriggerScan).Methods(http.MethodPost)
	api.HandleFunc("/search", h.SearchDocuments).Methods(http.MethodGet)
	api.HandleFunc("/documents", h.ListDocuments).Methods(http.MethodGet)
	api.HandleFunc("/documents/{id}", h.GetDocument).Methods(http.MethodGet)
	api.HandleFunc("/documents/{id}", h.DeleteDocument).Methods(http.MethodDelete)
	api.HandleFunc("/documents/{id}/thumbnail", h.GetThumbnail).Methods(http.MethodGet)
}
