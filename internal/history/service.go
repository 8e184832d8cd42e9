package history

import (
	"context"
	"fmt"

	"github.com/Fridayxiao/arxiv-mcp-server-HTML/internal/paper"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Record appends the terminal outcome of a job. Non-terminal jobs are
// rejected: the log only holds finished conversions.
func (s *Service) Record(ctx context.Context, j paper.Job, method string) error {
	if !j.Status.Terminal() {
		return fmt.Errorf("cannot record non-terminal job %s in state %s", j.PaperID, j.Status)
	}

	c := &Conversion{
		PaperID:   j.PaperID,
		Status:    j.Status,
		Method:    method,
		Error:     j.Error,
		StartedAt: j.StartedAt,
	}
	if j.CompletedAt != nil {
		c.CompletedAt = *j.CompletedAt
	}
	return s.repo.Insert(ctx, c)
}

func (s *Service) Get(ctx context.Context, req GetConversionRequest) (*Conversion, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, req.ID)
}

func (s *Service) List(ctx context.Context, req ListConversionsRequest) ([]Conversion, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, req.PaperID, req.Status)
}
