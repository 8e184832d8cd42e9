package download

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/Fridayxiao/arxiv-mcp-server-HTML/internal/apperror"
	"github.com/Fridayxiao/arxiv-mcp-server-HTML/internal/arxiv"
	"github.com/Fridayxiao/arxiv-mcp-server-HTML/internal/paper"
	"github.com/Fridayxiao/arxiv-mcp-server-HTML/internal/storage"
	"github.com/Fridayxiao/arxiv-mcp-server-HTML/internal/task"
)

// SourceClient fetches the raw PDF for a paper. It returns a wrapped
// arxiv.ErrNotFound for identifiers unknown to the remote source.
type SourceClient interface {
	FetchPDF(ctx context.Context, paperID, dst string) error
}

// Converter runs the two-stage conversion for an already-downloaded paper.
type Converter interface {
	Convert(ctx context.Context, paperID string) error
}

// Submitter hands a task to the background worker pool.
type Submitter interface {
	Submit(t task.Task)
}

// Recorder receives terminal conversion outcomes.
type Recorder interface {
	Record(ctx context.Context, j paper.Job, method string) error
}

// Service is the public entry point for paper downloads and status checks.
type Service struct {
	registry  *paper.Registry
	resolver  *storage.Resolver
	source    SourceClient
	converter Converter
	pool      Submitter
	recorder  Recorder
}

func NewService(
	registry *paper.Registry,
	resolver *storage.Resolver,
	source SourceClient,
	converter Converter,
	pool Submitter,
	recorder Recorder,
) *Service {
	return &Service{
		registry:  registry,
		resolver:  resolver,
		source:    source,
		converter: converter,
		pool:      pool,
		recorder:  recorder,
	}
}

// RequestOrCheck either starts a download-and-convert job for the paper or
// reports the state of an existing one. It never returns an error: every
// outcome, including failures, is encoded in the Result.
//
// The PDF fetch runs on the caller's context and may block; the conversion
// itself is handed to the worker pool so this call returns as soon as the
// download completes.
func (s *Service) RequestOrCheck(ctx context.Context, req Request) Result {
	if appErr := req.Validate(); appErr != nil {
		return errorResult(appErr.Message())
	}

	paperID := req.PaperID
	mdPath := s.resolver.PathFor(paperID, storage.ExtMarkdown)

	if req.CheckOnly {
		if j, ok := s.registry.Get(paperID); ok {
			return statusResult(j)
		}
		// The filesystem wins when no job is known, e.g. after a
		// process restart.
		if s.resolver.Exists(mdPath) {
			return readyResult(mdPath)
		}
		return unknownResult()
	}

	if s.resolver.Exists(mdPath) {
		return availableResult(mdPath)
	}

	j, created := s.registry.Reserve(paperID)
	if !created {
		return statusResult(j)
	}

	slog.Info("downloading paper", "paper", paperID)

	pdfPath := s.resolver.PathFor(paperID, storage.ExtPDF)
	if err := s.source.FetchPDF(ctx, paperID, pdfPath); err != nil {
		// A failed fetch is terminal; the job must not stall in the
		// downloading state.
		s.registry.Transition(paperID, paper.StatusError, paper.WithError(err.Error()))
		s.record(ctx, paperID)

		if errors.Is(err, arxiv.ErrNotFound) {
			return notFoundResult(paperID)
		}
		slog.Error("paper download failed", "paper", paperID, "error", err)
		return errorResult(fmt.Sprintf("Error: %v", err))
	}

	s.registry.Transition(paperID, paper.StatusConverting)

	s.pool.Submit(task.Task{
		Name: "convert " + paperID,
		Run: func(ctx context.Context) error {
			return s.converter.Convert(ctx, paperID)
		},
	})

	return startedResult(j.StartedAt)
}

// ListPapers returns the converted papers present on disk.
func (s *Service) ListPapers() ([]storage.Artifact, error) {
	return s.resolver.ListMarkdown()
}

// ReadPaper returns the Markdown content of a converted paper.
func (s *Service) ReadPaper(paperID string) (string, error) {
	if paperID == "" {
		return "", apperror.New(apperror.BadRequest, "paper id is required")
	}

	mdPath := s.resolver.PathFor(paperID, storage.ExtMarkdown)
	if !s.resolver.Exists(mdPath) {
		return "", apperror.New(apperror.NotFound, fmt.Sprintf("paper %s has not been converted", paperID))
	}

	data, err := os.ReadFile(mdPath)
	if err != nil {
		return "", fmt.Errorf("read paper %s: %w", paperID, err)
	}
	return string(data), nil
}

func (s *Service) record(ctx context.Context, paperID string) {
	if s.recorder == nil {
		return
	}
	j, ok := s.registry.Get(paperID)
	if !ok {
		return
	}
	if err := s.recorder.Record(ctx, *j, ""); err != nil {
		slog.Error("failed to record conversion", "paper", paperID, "error", err)
	}
}
