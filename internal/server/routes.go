package server

import (
	"net/http"

	"github.com/Fridayxiao/arxiv-mcp-server-HTML/internal/download"
	"github.com/Fridayxiao/arxiv-mcp-server-HTML/internal/history"
)

// NewHandler creates the full HTTP handler with routes and middleware.
// Exported for use in tests (e.g., httptest.NewServer).
func NewHandler(downloadSvc *download.Service, historySvc *history.Service) http.Handler {
	return newMux(downloadSvc, historySvc)
}

func newMux(downloadSvc *download.Service, historySvc *history.Service) http.Handler {
	h := &handler{
		downloadSvc: downloadSvc,
		historySvc:  historySvc,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.health)
	mux.HandleFunc("POST /api/v1/papers/{id}/download", h.downloadPaper)
	mux.HandleFunc("GET /api/v1/papers/{id}/status", h.paperStatus)
	mux.HandleFunc("GET /api/v1/papers/{id}", h.readPaper)
	mux.HandleFunc("GET /api/v1/papers", h.listPapers)
	mux.HandleFunc("GET /api/v1/conversions", h.listConversions)
	mux.HandleFunc("GET /api/v1/conversions/{id}", h.getConversion)

	// Apply middleware stack: recovery -> requestID -> logging
	var handler http.Handler = mux
	handler = logging(handler)
	handler = requestID(handler)
	handler = recovery(handler)

	return handler
}
