// Package handlers implements the HTTP API: document access, search,
// parser declarations, on-demand parsing, and health endpoints.
package handlers
