package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/Fridayxiao/arxiv-mcp-server-HTML/internal/download"
	"github.com/Fridayxiao/arxiv-mcp-server-HTML/internal/history"
)

type Server struct {
	srv *http.Server
}

// New creates a server. The baseCtx is used as the base context for all
// incoming requests (via BaseContext); cancelling it winds down in-flight
// downloads during graceful shutdown. Write timeouts stay generous because a
// download request blocks while the PDF streams to disk.
func New(baseCtx context.Context, port string, downloadSvc *download.Service, historySvc *history.Service) *Server {
	return &Server{
		srv: &http.Server{
			Addr:    fmt.Sprintf(":%s", port),
			Handler: newMux(downloadSvc, historySvc),
			BaseContext: func(_ net.Listener) context.Context {
				return baseCtx
			},
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 120 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
	}
}

func (s *Server) Start() error {
	slog.Info("starting server", "addr", s.srv.Addr)
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	slog.Info("shutting down server")
	return s.srv.Shutdown(ctx)
}
