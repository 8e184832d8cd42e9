package convert

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Fridayxiao/arxiv-mcp-server-HTML/internal/paper"
	"github.com/Fridayxiao/arxiv-mcp-server-HTML/internal/storage"
)

// MarkupFetcher fetches the pre-rendered HTML representation of a paper.
type MarkupFetcher interface {
	FetchHTML(ctx context.Context, paperID string) (string, error)
}

// Recorder receives terminal conversion outcomes. Method is "html" or "pdf"
// for successes and empty for failures.
type Recorder interface {
	Record(ctx context.Context, j paper.Job, method string) error
}

// Engine converts a downloaded paper to Markdown. The primary path converts
// arXiv's rendered HTML; any failure there falls back to extracting text from
// the already-downloaded PDF. The engine owns the job's transitions from
// converting to a terminal state.
type Engine struct {
	fetcher     MarkupFetcher
	transformer Transformer
	extractor   Extractor
	resolver    *storage.Resolver
	registry    *paper.Registry
	recorder    Recorder
}

func NewEngine(
	fetcher MarkupFetcher,
	transformer Transformer,
	extractor Extractor,
	resolver *storage.Resolver,
	registry *paper.Registry,
	recorder Recorder,
) *Engine {
	return &Engine{
		fetcher:     fetcher,
		transformer: transformer,
		extractor:   extractor,
		resolver:    resolver,
		registry:    registry,
		recorder:    recorder,
	}
}

// Convert runs the two-stage conversion for paperID and persists the
// Markdown artifact. It is invoked once per job, off the request path, after
// the PDF download has completed. The returned error is for central logging
// by the worker pool; the job record already carries the outcome.
func (e *Engine) Convert(ctx context.Context, paperID string) error {
	slog.Info("starting html to markdown conversion", "paper", paperID)

	method := "html"
	primaryErr := e.convertHTML(ctx, paperID)
	if primaryErr != nil {
		// Recovered locally: the fallback's failure is the one that
		// matters to the caller.
		slog.Warn("html conversion failed, falling back to pdf", "paper", paperID, "error", primaryErr)

		method = "pdf"
		if err := e.convertPDF(ctx, paperID); err != nil {
			slog.Error("pdf conversion failed", "paper", paperID, "error", err)
			e.registry.Transition(paperID, paper.StatusError, paper.WithError(err.Error()))
			e.record(ctx, paperID, "")
			return err
		}
	}

	e.registry.Transition(paperID, paper.StatusSuccess)
	e.record(ctx, paperID, method)
	slog.Info("conversion completed", "paper", paperID, "method", method)
	return nil
}

func (e *Engine) convertHTML(ctx context.Context, paperID string) error {
	html, err := e.fetcher.FetchHTML(ctx, paperID)
	if err != nil {
		return err
	}

	markdown, err := e.transformer.Transform(html)
	if err != nil {
		return err
	}

	return e.writeArtifact(paperID, markdown)
}

func (e *Engine) convertPDF(ctx context.Context, paperID string) error {
	pdfPath := e.resolver.PathFor(paperID, storage.ExtPDF)
	if !e.resolver.Exists(pdfPath) {
		// Not retried: the PDF is fetched earlier in the pipeline.
		return fmt.Errorf("PDF file not found at %s", pdfPath)
	}

	markdown, err := e.extractor.Extract(ctx, pdfPath, DefaultExtractOptions())
	if err != nil {
		return err
	}

	return e.writeArtifact(paperID, markdown)
}

// writeArtifact persists the Markdown via write-then-rename so a crashed
// conversion never leaves a partial artifact behind.
func (e *Engine) writeArtifact(paperID, markdown string) error {
	dst := e.resolver.PathFor(paperID, storage.ExtMarkdown)

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".convert-*")
	if err != nil {
		return fmt.Errorf("create temp artifact: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(markdown); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close artifact: %w", err)
	}
	if err := os.Rename(tmpName, dst); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename artifact: %w", err)
	}
	return nil
}

func (e *Engine) record(ctx context.Context, paperID, method string) {
	if e.recorder == nil {
		return
	}
	j, ok := e.registry.Get(paperID)
	if !ok {
		return
	}
	if err := e.recorder.Record(ctx, *j, method); err != nil {
		slog.Error("failed to record conversion", "paper", paperID, "error", err)
	}
}
