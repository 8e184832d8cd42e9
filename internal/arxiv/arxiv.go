package arxiv

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const (
	defaultAPIEndpoint  = "https://export.arxiv.org/api/query"
	defaultPDFEndpoint  = "https://arxiv.org/pdf"
	defaultHTMLEndpoint = "https://export.arxiv.org/html"

	defaultHTMLTimeout = 10 * time.Second
)

// ErrNotFound indicates the paper ID is unknown to arXiv.
var ErrNotFound = errors.New("paper not found on arXiv")

// Client talks to the arXiv export endpoints: the metadata API, the PDF
// mirror and the pre-rendered HTML mirror.
type Client struct {
	client       *http.Client
	apiEndpoint  string
	pdfEndpoint  string
	htmlEndpoint string
	htmlTimeout  time.Duration
}

func New(opts ...Option) *Client {
	c := &Client{
		client:       http.DefaultClient,
		apiEndpoint:  defaultAPIEndpoint,
		pdfEndpoint:  defaultPDFEndpoint,
		htmlEndpoint: defaultHTMLEndpoint,
		htmlTimeout:  defaultHTMLTimeout,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type Option func(*Client)

func WithClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

func WithAPIEndpoint(ep string) Option {
	return func(c *Client) { c.apiEndpoint = ep }
}

func WithPDFEndpoint(ep string) Option {
	return func(c *Client) { c.pdfEndpoint = ep }
}

func WithHTMLEndpoint(ep string) Option {
	return func(c *Client) { c.htmlEndpoint = ep }
}

func WithHTMLTimeout(d time.Duration) Option {
	return func(c *Client) { c.htmlTimeout = d }
}

type feed struct {
	Entries []entry `xml:"entry"`
}

type entry struct {
	ID    string `xml:"id"`
	Title string `xml:"title"`
}

// resolve confirms the paper exists via the metadata API. The API answers
// HTTP 200 for unknown IDs, with an empty feed or an "Error" entry.
func (c *Client) resolve(ctx context.Context, paperID string) error {
	reqURL := fmt.Sprintf("%s?id_list=%s&max_results=1", c.apiEndpoint, url.QueryEscape(paperID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}

	res, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("query arxiv api: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("arxiv api returned HTTP %d for %s", res.StatusCode, paperID)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("read arxiv api response: %w", err)
	}

	var f feed
	if err := xml.Unmarshal(body, &f); err != nil {
		return fmt.Errorf("parse arxiv api response: %w", err)
	}

	if len(f.Entries) == 0 || strings.TrimSpace(f.Entries[0].Title) == "Error" {
		return fmt.Errorf("%s: %w", paperID, ErrNotFound)
	}
	return nil
}

// FetchPDF downloads the raw PDF for paperID to dst. It returns a wrapped
// ErrNotFound when arXiv does not know the paper. The download runs on the
// caller's context and may block while the body is streamed to disk.
func (c *Client) FetchPDF(ctx context.Context, paperID, dst string) error {
	if paperID == "" {
		return fmt.Errorf("paper id cannot be empty")
	}

	if err := c.resolve(ctx, paperID); err != nil {
		return err
	}

	reqURL := fmt.Sprintf("%s/%s", c.pdfEndpoint, paperID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}

	res, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("download pdf: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s: %w", paperID, ErrNotFound)
	}
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("arxiv pdf mirror returned HTTP %d for %s", res.StatusCode, paperID)
	}

	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	defer func() { _ = f.Close() }()

	if _, err := io.Copy(f, res.Body); err != nil {
		_ = os.Remove(dst)
		return fmt.Errorf("write pdf to %s: %w", dst, err)
	}
	return nil
}

// FetchHTML fetches the pre-rendered HTML representation of the paper. The
// call is bounded by the configured HTML timeout on top of ctx.
func (c *Client) FetchHTML(ctx context.Context, paperID string) (string, error) {
	if paperID == "" {
		return "", fmt.Errorf("paper id cannot be empty")
	}

	ctx, cancel := context.WithTimeout(ctx, c.htmlTimeout)
	defer cancel()

	reqURL := fmt.Sprintf("%s/%s", c.htmlEndpoint, paperID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", err
	}

	res, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch rendered html: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("arxiv html mirror returned HTTP %d for %s", res.StatusCode, paperID)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("read rendered html: %w", err)
	}
	return string(body), nil
}
