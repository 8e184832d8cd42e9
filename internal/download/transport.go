package download

import "github.com/Fridayxiao/arxiv-mcp-server-HTML/internal/apperror"

type Request struct {
	PaperID   string `json:"paperId"`
	CheckOnly bool   `json:"checkOnly"`
}

func (r Request) Validate() *apperror.AppError {
	if r.PaperID == "" {
		return apperror.New(apperror.BadRequest, "paper id is required")
	}
	return nil
}
