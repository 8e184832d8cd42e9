package convert

import "context"

// TableStrategy selects how the extractor detects table boundaries.
type TableStrategy string

// TableStrategyLinesStrict only treats ruled lines as table boundaries.
const TableStrategyLinesStrict TableStrategy = "lines_strict"

// ExtractOptions configures layout-aware PDF text extraction. Images and
// vector graphics are skipped by default: rasterized content extracts badly
// and dominates the runtime.
type ExtractOptions struct {
	TableStrategy TableStrategy
	SkipImages    bool
	SkipGraphics  bool
}

// DefaultExtractOptions are the options used for the fallback conversion
// path.
func DefaultExtractOptions() ExtractOptions {
	return ExtractOptions{
		TableStrategy: TableStrategyLinesStrict,
		SkipImages:    true,
		SkipGraphics:  true,
	}
}

// Extractor converts a PDF file on disk to Markdown-ish text. It may fail on
// corrupt files or unsupported layouts.
type Extractor interface {
	Extract(ctx context.Context, pdfPath string, opts ExtractOptions) (string, error)
}
