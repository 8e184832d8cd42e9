package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/Fridayxiao/arxiv-mcp-server-HTML/internal/arxiv"
	"github.com/Fridayxiao/arxiv-mcp-server-HTML/internal/config"
	"github.com/Fridayxiao/arxiv-mcp-server-HTML/internal/convert"
	"github.com/Fridayxiao/arxiv-mcp-server-HTML/internal/download"
	"github.com/Fridayxiao/arxiv-mcp-server-HTML/internal/history"
	"github.com/Fridayxiao/arxiv-mcp-server-HTML/internal/mcp"
	"github.com/Fridayxiao/arxiv-mcp-server-HTML/internal/mupdf"
	"github.com/Fridayxiao/arxiv-mcp-server-HTML/internal/paper"
	"github.com/Fridayxiao/arxiv-mcp-server-HTML/internal/platform/sqlite"
	historyrepo "github.com/Fridayxiao/arxiv-mcp-server-HTML/internal/repository/history"
	"github.com/Fridayxiao/arxiv-mcp-server-HTML/internal/server"
	"github.com/Fridayxiao/arxiv-mcp-server-HTML/internal/storage"
	"github.com/Fridayxiao/arxiv-mcp-server-HTML/internal/task"
)

func main() {
	// .env is optional; real environment variables always win.
	_ = godotenv.Load()

	cfg := config.Load()

	// Root context: cancelled on SIGINT/SIGTERM so in-flight downloads and
	// conversions stop promptly during graceful shutdown.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	db, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	resolver, err := storage.NewResolver(cfg.StoragePath)
	if err != nil {
		slog.Error("failed to prepare storage directory", "error", err)
		os.Exit(1)
	}

	historySvc := history.NewService(historyrepo.NewRepository(db.DB))

	registry := paper.NewRegistry()
	source := arxiv.New(
		arxiv.WithAPIEndpoint(cfg.ArxivAPIURL),
		arxiv.WithPDFEndpoint(cfg.ArxivPDFURL),
		arxiv.WithHTMLEndpoint(cfg.ArxivHTMLURL),
	)
	engine := convert.NewEngine(
		source,
		convert.NewMarkdownTransformer(),
		mupdf.NewCLI(mupdf.WithBinary(cfg.MutoolPath)),
		resolver,
		registry,
		historySvc,
	)

	// Worker pool: runs queued conversions in the background.
	pool := task.NewPool(cfg.Workers)
	poolDone := make(chan struct{})
	go func() {
		pool.Run(rootCtx)
		close(poolDone)
	}()

	downloadSvc := download.NewService(registry, resolver, source, engine, pool, historySvc)

	// HTTP server — rootCtx is used as BaseContext so every request context
	// inherits from it and is cancelled on shutdown.
	srv := server.New(rootCtx, cfg.Port, downloadSvc, historySvc)
	mcpSrv := mcp.NewServer(downloadSvc)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	var g errgroup.Group
	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		if err := mcpSrv.StartSSE(cfg.MCPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	slog.Info("server started", "port", cfg.Port, "mcp", cfg.MCPAddr)
	<-done

	// Cancel root context first so in-flight requests and queued conversions
	// begin winding down immediately.
	rootCancel()

	// Wait for the worker pool to drain before shutting down the servers.
	<-poolDone

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	if err := mcpSrv.Shutdown(shutdownCtx); err != nil {
		slog.Error("mcp shutdown error", "error", err)
	}
	if err := g.Wait(); err != nil {
		slog.Error("server error", "error", err)
	}
	slog.Info("server stopped")
}
