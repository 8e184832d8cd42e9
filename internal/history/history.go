// Package history keeps an append-only audit log of terminal conversion
// outcomes. The in-memory job registry remains the source of truth for live
// state; this log only answers "what happened" after the fact and survives
// restarts.
package history

import (
	"time"

	"github.com/Fridayxiao/arxiv-mcp-server-HTML/internal/paper"
)

// Conversion is one recorded terminal outcome. Method is "html" or "pdf"
// for successes and empty for failures.
type Conversion struct {
	ID          int64        `json:"id"`
	PaperID     string       `json:"paperId"`
	Status      paper.Status `json:"status"`
	Method      string       `json:"method,omitempty"`
	Error       string       `json:"error,omitempty"`
	StartedAt   time.Time    `json:"startedAt"`
	CompletedAt time.Time    `json:"completedAt"`
	CreatedAt   time.Time    `json:"createdAt"`
}
