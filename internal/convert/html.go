package convert

import (
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
)

// Transformer converts rendered HTML into Markdown. Implementations must be
// safe for concurrent use.
type Transformer interface {
	Transform(html string) (string, error)
}

// MarkdownTransformer converts arXiv's pre-rendered HTML to Markdown.
// The commonmark plugin emits ATX headings, hyphen bullets and fenced code
// blocks with the language taken from class hints; script and style elements
// are dropped.
type MarkdownTransformer struct {
	conv *converter.Converter
}

func NewMarkdownTransformer() *MarkdownTransformer {
	return &MarkdownTransformer{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
}

func (t *MarkdownTransformer) Transform(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", fmt.Errorf("empty html input")
	}
	markdown, err := t.conv.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("convert html to markdown: %w", err)
	}
	return markdown, nil
}
