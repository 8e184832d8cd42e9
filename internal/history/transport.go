package history

import "github.com/Fridayxiao/arxiv-mcp-server-HTML/internal/apperror"

type GetConversionRequest struct {
	ID int64
}

func (r GetConversionRequest) Validate() *apperror.AppError {
	if r.ID <= 0 {
		return apperror.New(apperror.BadRequest, "invalid conversion id")
	}
	return nil
}

type ListConversionsRequest struct {
	PaperID string
	Status  string
}

func (r ListConversionsRequest) Validate() *apperror.AppError {
	switch r.Status {
	case "", "success", "error":
		return nil
	}
	return apperror.New(apperror.BadRequest, "status must be success or error")
}
