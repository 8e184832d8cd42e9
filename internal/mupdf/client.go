// Package mupdf wraps the mutool command-line tool for layout-aware PDF text
// extraction. Prefer this package over ad-hoc exec.Command usage when
// extracting text from PDFs.
package mupdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/Fridayxiao/arxiv-mcp-server-HTML/internal/convert"
)

var commandContext = exec.CommandContext

// Option configures the CLI client.
type Option func(*CLI)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// CLI extracts text from PDFs via `mutool convert`.
type CLI struct {
	binary string
}

func NewCLI(opts ...Option) *CLI {
	cli := &CLI{binary: "mutool"}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Extract runs mutool's text device over the PDF and returns its output.
// The text device never rasterizes vector graphics, so SkipGraphics holds
// inherently; SkipImages controls the preserve-images document option.
func (c *CLI) Extract(ctx context.Context, pdfPath string, opts convert.ExtractOptions) (string, error) {
	if pdfPath == "" {
		return "", errors.New("pdf path required")
	}

	textOpts := []string{"preserve-whitespace", "dehyphenate"}
	if !opts.SkipImages {
		textOpts = append(textOpts, "preserve-images")
	}

	args := []string{
		"convert",
		"-F", "text",
		"-O", strings.Join(textOpts, ","),
		"-o", "-",
		pdfPath,
	}

	var stdout, stderr bytes.Buffer
	cmd := commandContext(ctx, c.binary, args...) //nolint:gosec
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return "", fmt.Errorf("mutool convert: %w: %s", err, detail)
		}
		return "", fmt.Errorf("mutool convert: %w", err)
	}

	text := stdout.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("mutool extracted no text from %s", pdfPath)
	}
	return text, nil
}

var _ convert.Extractor = (*CLI)(nil)
