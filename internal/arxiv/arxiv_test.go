package arxiv

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const feedWithEntry = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <id>http://arxiv.org/abs/2101.00001v1</id>
    <title>A Paper</title>
  </entry>
</feed>`

const feedEmpty = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom"></feed>`

func newFakeArxiv(t *testing.T, known string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/query", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("id_list") == known {
			fmt.Fprint(w, feedWithEntry)
			return
		}
		fmt.Fprint(w, feedEmpty)
	})
	mux.HandleFunc("/pdf/", func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, known) {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, "%PDF-1.4 fake body")
	})
	mux.HandleFunc("/html/", func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, known) {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, "<html><body><h1>A Paper</h1></body></html>")
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(srv *httptest.Server, opts ...Option) *Client {
	base := []Option{
		WithAPIEndpoint(srv.URL + "/api/query"),
		WithPDFEndpoint(srv.URL + "/pdf"),
		WithHTMLEndpoint(srv.URL + "/html"),
	}
	return New(append(base, opts...)...)
}

func TestClient_FetchPDF(t *testing.T) {
	srv := newFakeArxiv(t, "2101.00001")
	c := newTestClient(srv)

	dst := filepath.Join(t.TempDir(), "2101.00001.pdf")
	if err := c.FetchPDF(context.Background(), "2101.00001", dst); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("pdf not written: %v", err)
	}
	if !strings.HasPrefix(string(data), "%PDF") {
		t.Errorf("unexpected pdf content %q", data)
	}
}

func TestClient_FetchPDF_NotFound(t *testing.T) {
	srv := newFakeArxiv(t, "2101.00001")
	c := newTestClient(srv)

	dst := filepath.Join(t.TempDir(), "9999.99999.pdf")
	err := c.FetchPDF(context.Background(), "9999.99999", dst)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, statErr := os.Stat(dst); statErr == nil {
		t.Error("expected no file for unknown paper")
	}
}

func TestClient_FetchPDF_EmptyID(t *testing.T) {
	c := New()
	if err := c.FetchPDF(context.Background(), "", "out.pdf"); err == nil {
		t.Fatal("expected error for empty paper id")
	}
}

func TestClient_FetchHTML(t *testing.T) {
	srv := newFakeArxiv(t, "2101.00001")
	c := newTestClient(srv)

	html, err := c.FetchHTML(context.Background(), "2101.00001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html, "<h1>A Paper</h1>") {
		t.Errorf("unexpected html %q", html)
	}
}

func TestClient_FetchHTML_NonOK(t *testing.T) {
	srv := newFakeArxiv(t, "2101.00001")
	c := newTestClient(srv)

	if _, err := c.FetchHTML(context.Background(), "9999.99999"); err == nil {
		t.Fatal("expected error for missing html rendition")
	}
}

func TestClient_FetchHTML_Timeout(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(slow.Close)

	c := New(
		WithHTMLEndpoint(slow.URL),
		WithHTMLTimeout(50*time.Millisecond),
	)

	start := time.Now()
	_, err := c.FetchHTML(context.Background(), "2101.00001")
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if time.Since(start) > time.Second {
		t.Error("timeout not applied")
	}
}
