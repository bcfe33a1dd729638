// Package httpapi exposes search, ingest and source/document
// inspection over a small JSON REST surface. It is a thin,
// out-of-core-scope front-end: the CLI and MCP adapters are the
// primary interfaces, and this package exists so eywa can be driven
// remotely without either.
package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/eywa-run/eywa/internal/core/domain"
	"github.com/eywa-run/eywa/internal/core/ports/driving"
	"github.com/eywa-run/eywa/internal/logger"
)

// Ports aggregates the driving-port implementations the HTTP adapter
// dispatches to.
type Ports struct {
	Search driving.SearchService
	Source driving.SourceService
	Ingest driving.IngestService
	Engine driving.EngineService
}

// Server is the HTTP front-end for eywa, routed with Go 1.22's
// net/http method-pattern matching.
type Server struct {
	ports *Ports
	mux   *http.ServeMux
}

// NewServer builds a Server and registers all routes. No port is
// required: a handler whose port is nil responds 500 with a "not
// implemented" error.
func NewServer(ports *Ports) *Server {
	s := &Server{ports: ports, mux: http.NewServeMux()}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("POST /api/search", s.handleSearch)
	s.mux.HandleFunc("GET /api/documents/{id}/similar", s.handleSimilar)
	s.mux.HandleFunc("GET /api/sources", s.handleListSources)
	s.mux.HandleFunc("GET /api/sources/{id}", s.handleGetSource)
	s.mux.HandleFunc("DELETE /api/sources/{id}", s.handleDeleteSource)
	s.mux.HandleFunc("POST /api/sources/reset", s.handleReset)
	s.mux.HandleFunc("GET /api/sources/{id}/documents", s.handleListDocuments)
	s.mux.HandleFunc("GET /api/documents/{id}", s.handleGetDocument)
	s.mux.HandleFunc("DELETE /api/documents/{id}", s.handleDeleteDocument)
	s.mux.HandleFunc("POST /api/sources/{id}/ingest", s.handleIngest)
	s.mux.HandleFunc("GET /api/jobs/{id}", s.handleJobStatus)
	s.mux.HandleFunc("POST /api/jobs/{id}/cancel", s.handleJobCancel)
	s.mux.HandleFunc("GET /api/health", s.handleHealth)
}

// ServeHTTP lets Server stand in directly for http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("httpapi: encoding response: %v", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, domain.HTTPStatus(err), errorResponse{Error: err.Error()})
}

var errNotConfigured = domain.ErrNotImplemented
