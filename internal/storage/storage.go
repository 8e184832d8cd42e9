package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	ExtPDF      = ".pdf"
	ExtMarkdown = ".md"
)

// Resolver maps paper IDs to deterministic locations under a single storage
// root. Both the raw PDF and the converted Markdown for a paper live next to
// each other, named by paper ID plus extension.
type Resolver struct {
	root string
}

// NewResolver creates the storage root if absent. A failure here is a
// startup-time configuration problem and is returned to the caller.
func NewResolver(root string) (*Resolver, error) {
	if root == "" {
		return nil, fmt.Errorf("storage root cannot be empty")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root %s: %w", root, err)
	}
	return &Resolver{root: root}, nil
}

// PathFor returns the deterministic path for a paper artifact with the given
// extension. Old-style IDs containing slashes are flattened so every
// artifact stays directly under the root.
func (r *Resolver) PathFor(paperID, ext string) string {
	name := filepath.Base(filepath.Clean(paperID))
	return filepath.Join(r.root, name+ext)
}

// Exists reports whether a regular file is present at path. Presence of the
// Markdown artifact is authoritative evidence of a completed conversion even
// when no job record exists.
func (r *Resolver) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// ListMarkdown returns the paper IDs of all converted artifacts on disk,
// with their sizes and modification times.
func (r *Resolver) ListMarkdown() ([]Artifact, error) {
	entries, err := os.ReadDir(r.root)
	if err != nil {
		return nil, fmt.Errorf("read storage root: %w", err)
	}

	var artifacts []Artifact
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ExtMarkdown {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		artifacts = append(artifacts, Artifact{
			PaperID:  e.Name()[:len(e.Name())-len(ExtMarkdown)],
			Path:     filepath.Join(r.root, e.Name()),
			Size:     info.Size(),
			Modified: info.ModTime().UTC(),
		})
	}
	return artifacts, nil
}
