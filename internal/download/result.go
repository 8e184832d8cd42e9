package download

import (
	"fmt"
	"time"

	"github.com/Fridayxiao/arxiv-mcp-server-HTML/internal/paper"
)

// Result is the structured outcome of RequestOrCheck. Status is one of
// success, error, unknown, downloading or converting; the unexported
// constructors below are the only ways to build one, keeping the variants
// enumerable.
type Result struct {
	Status      paper.Status `json:"status"`
	Message     string       `json:"message"`
	ResourceURI string       `json:"resourceUri,omitempty"`
	StartedAt   *time.Time   `json:"startedAt,omitempty"`
	CompletedAt *time.Time   `json:"completedAt,omitempty"`
	Error       string       `json:"error,omitempty"`
}

func fileURI(path string) string {
	return "file://" + path
}

// readyResult reports a converted artifact found during a status check.
func readyResult(path string) Result {
	return Result{
		Status:      paper.StatusSuccess,
		Message:     "Paper is ready",
		ResourceURI: fileURI(path),
	}
}

// unknownResult reports that neither a job nor an artifact exists.
func unknownResult() Result {
	return Result{
		Status:  paper.StatusUnknown,
		Message: "No download or conversion in progress",
	}
}

// availableResult short-circuits a download request for an already-converted
// paper.
func availableResult(path string) Result {
	return Result{
		Status:      paper.StatusSuccess,
		Message:     "Paper already available",
		ResourceURI: fileURI(path),
	}
}

// statusResult reports the current state of an existing job.
func statusResult(j *paper.Job) Result {
	started := j.StartedAt
	return Result{
		Status:      j.Status,
		Message:     fmt.Sprintf("Paper conversion %s", j.Status),
		StartedAt:   &started,
		CompletedAt: j.CompletedAt,
		Error:       j.Error,
	}
}

// startedResult reports a freshly initiated conversion.
func startedResult(startedAt time.Time) Result {
	return Result{
		Status:    paper.StatusConverting,
		Message:   "Paper downloaded, conversion started",
		StartedAt: &startedAt,
	}
}

// notFoundResult reports an identifier unknown to arXiv.
func notFoundResult(paperID string) Result {
	return Result{
		Status:  paper.StatusError,
		Message: fmt.Sprintf("Paper %s not found on arXiv", paperID),
	}
}

// errorResult is the catch-all failure variant.
func errorResult(message string) Result {
	return Result{
		Status:  paper.StatusError,
		Message: message,
	}
}
