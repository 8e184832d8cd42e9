package storage

import "time"

// Artifact describes a converted paper present on disk.
type Artifact struct {
	PaperID  string    `json:"paperId"`
	Path     string    `json:"path"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}
