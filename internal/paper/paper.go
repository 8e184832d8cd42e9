package paper

import "time"

// Status is the lifecycle state of a conversion job. The values double as
// the wire-level status strings reported to callers.
type Status string

const (
	StatusDownloading Status = "downloading"
	StatusConverting  Status = "converting"
	StatusSuccess     Status = "success"
	StatusError       Status = "error"

	// StatusUnknown is never held by a Job; it is reported when neither a
	// job nor a converted artifact exists for a paper.
	StatusUnknown Status = "unknown"
)

// Terminal reports whether no further transitions may leave s.
func (s Status) Terminal() bool {
	return s == StatusSuccess || s == StatusError
}

// Job tracks one download-and-convert attempt for a paper. Jobs are owned by
// the Registry for the lifetime of the process and are never deleted.
type Job struct {
	PaperID     string     `json:"paperId"`
	Status      Status     `json:"status"`
	StartedAt   time.Time  `json:"startedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Error       string     `json:"error,omitempty"`
}
