// Package fetch downloads remote media into uniquely named local
// temporary files.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/maauso/media-toolkit-api/internal/id"
)

// Error represents a failed download, including which stage failed.
type Error struct {
	// URL is the requested source URL.
	URL string
	// Op is the stage that failed: "parse", "request", "status" or "write".
	Op string
	// Err is the underlying cause.
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("fetch %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Fetcher streams remote URLs to files in a temporary directory.
// Downloaded files are owned by the caller and are never removed here.
type Fetcher struct {
	client  *http.Client
	tempDir string
}

// NewFetcher creates a Fetcher writing into tempDir, creating the
// directory if needed. A zero timeout disables the request deadline.
func NewFetcher(tempDir string, timeout time.Duration) (*Fetcher, error) {
	if err := os.MkdirAll(tempDir, 0750); err != nil {
		return nil, fmt.Errorf("create temp directory: %w", err)
	}
	return &Fetcher{
		client:  &http.Client{Timeout: timeout},
		tempDir: tempDir,
	}, nil
}

// TempDir returns the directory downloads are written to.
func (f *Fetcher) TempDir() string {
	return f.tempDir
}

// Fetch downloads rawURL into <tempDir>/<prefix><random 16 hex><ext>,
// where ext comes from the URL's path component (".bin" when absent).
// The body is streamed straight to disk, never buffered in memory.
func (f *Fetcher) Fetch(ctx context.Context, rawURL, prefix string) (string, error) {
	u, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return "", &Error{URL: rawURL, Op: "parse", Err: err}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", &Error{URL: rawURL, Op: "parse", Err: fmt.Errorf("unsupported scheme %q", u.Scheme)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", &Error{URL: rawURL, Op: "request", Err: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &Error{URL: rawURL, Op: "request", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		return "", &Error{URL: rawURL, Op: "status", Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	dest := filepath.Join(f.tempDir, prefix+id.New()+extFromPath(u.Path))
	out, err := os.Create(dest) // #nosec G304 - dest is built from our own temp dir and a random id
	if err != nil {
		return "", &Error{URL: rawURL, Op: "write", Err: err}
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		_ = out.Close()
		_ = os.Remove(dest)
		return "", &Error{URL: rawURL, Op: "write", Err: err}
	}

	if err := out.Close(); err != nil {
		_ = os.Remove(dest)
		return "", &Error{URL: rawURL, Op: "write", Err: err}
	}

	return dest, nil
}

// extFromPath infers a file extension from a URL path component.
func extFromPath(p string) string {
	if ext := path.Ext(p); ext != "" {
		return ext
	}
	return ".bin"
}
