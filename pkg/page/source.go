// Package page fetches the festival schedule page from a file, over HTTP, or
// through a headless browser, and waits for its schedule content to render.
package page

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"tableflip.dev/lineup/pkg/extract"
)

// Source yields the current markup of the schedule page.
type Source interface {
	Fetch(ctx context.Context) (io.ReadCloser, error)
	// Base resolves relative links found in the markup. It may be nil.
	Base() *url.URL
	String() string
}

// BrowserPrefix marks a page reference that must be rendered in Chromium first.
const BrowserPrefix = "browser+"

// Open picks a Source for ref: an http(s) URL, a browser+http(s) URL, or a
// local file path (optionally file://).
func Open(ref string) (Source, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, errors.New("page: no page given")
	}
	if strings.HasPrefix(ref, BrowserPrefix) {
		u, err := parseHTTP(strings.TrimPrefix(ref, BrowserPrefix))
		if err != nil {
			return nil, err
		}
		return &Browser{URL: u}, nil
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		u, err := parseHTTP(ref)
		if err != nil {
			return nil, err
		}
		return &HTTP{URL: u}, nil
	}
	return &File{Path: strings.TrimPrefix(ref, "file://")}, nil
}

func parseHTTP(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("page: parse url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("page: unsupported scheme %q", u.Scheme)
	}
	return u, nil
}

// Scan fetches src once and extracts a snapshot.
func Scan(ctx context.Context, src Source) (*extract.Snapshot, error) {
	rc, err := src.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return extract.Parse(rc, extract.Options{BaseURL: src.Base()})
}

// File reads a saved copy of the page.
type File struct {
	Path string
}

func (f *File) Fetch(_ context.Context) (io.ReadCloser, error) {
	fh, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("page: open %s: %w", f.Path, err)
	}
	return fh, nil
}

func (f *File) Base() *url.URL { return nil }

func (f *File) String() string { return f.Path }

// HTTP downloads the page markup as served, without running scripts.
type HTTP struct {
	URL    *url.URL
	Client *http.Client
}

const defaultHTTPTimeout = 20 * time.Second

func (h *HTTP) Fetch(ctx context.Context) (io.ReadCloser, error) {
	client := h.Client
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("page: build request: %w", err)
	}
	req.Header.Set("Accept", "text/html")
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("page: get %s: %w", h.URL, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("page: get %s: unexpected status %s", h.URL, resp.Status)
	}
	return resp.Body, nil
}

func (h *HTTP) Base() *url.URL { return h.URL }

func (h *HTTP) String() string { return h.URL.String() }

// Browser renders the page in headless Chromium and returns the resulting
// document, for schedule pages that are built by scripts.
type Browser struct {
	URL *url.URL
	// Timeout bounds one render. Zero means 30 seconds.
	Timeout time.Duration
	// Settle is an extra delay after load for late scripts.
	Settle time.Duration
}

const defaultBrowserTimeout = 30 * time.Second

func (b *Browser) Fetch(parent context.Context) (io.ReadCloser, error) {
	timeout := b.Timeout
	if timeout <= 0 {
		timeout = defaultBrowserTimeout
	}

	ctx, cancel := chromedp.NewContext(parent)
	defer cancel()

	ctx, timeoutCancel := context.WithTimeout(ctx, timeout)
	defer timeoutCancel()

	var html string
	tasks := chromedp.Tasks{
		chromedp.Navigate(b.URL.String()),
		chromedp.WaitReady("body", chromedp.ByQuery),
	}
	if b.Settle > 0 {
		tasks = append(tasks, chromedp.Sleep(b.Settle))
	}
	tasks = append(tasks, chromedp.OuterHTML("html", &html, chromedp.ByQuery))

	if err := chromedp.Run(ctx, tasks); err != nil {
		return nil, fmt.Errorf("page: render %s: %w", b.URL, err)
	}
	return io.NopCloser(strings.NewReader(html)), nil
}

func (b *Browser) Base() *url.URL { return b.URL }

func (b *Browser) String() string { return BrowserPrefix + b.URL.String() }
