// Package storage allocates names for published artifacts in the served
// directory, optionally mirrors them to S3, and prunes stale files.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/maauso/media-toolkit-api/internal/id"
)

// RoutePrefix is the URL path under which published artifacts are served.
const RoutePrefix = "/files/"

// DefaultExt applies when an artifact extension is not specified.
const DefaultExt = ".mp4"

// Artifact is an allocated output slot in the served directory. The file
// itself is written later by the engine; the artifact must only be
// handed to a client once that write succeeded.
type Artifact struct {
	// Name is the bare file name inside the served directory.
	Name string
	// LocalPath is the absolute destination path for the engine.
	LocalPath string
	// RelativePath is the client-facing path, e.g. "/files/<name>".
	RelativePath string
}

// Publisher allocates uniquely named artifact slots in the served
// directory. Names embed a random 16-hex component, so concurrent jobs
// need no coordination.
type Publisher struct {
	filesDir string
}

// NewPublisher creates a Publisher rooted at filesDir, creating the
// directory if needed.
func NewPublisher(filesDir string) (*Publisher, error) {
	if err := os.MkdirAll(filesDir, 0750); err != nil {
		return nil, fmt.Errorf("create files directory: %w", err)
	}
	return &Publisher{filesDir: filesDir}, nil
}

// FilesDir returns the served directory path.
func (p *Publisher) FilesDir() string {
	return p.filesDir
}

// Publish allocates an artifact named <prefix><random 16 hex><ext>.
// An empty ext defaults to ".mp4".
func (p *Publisher) Publish(prefix, ext string) Artifact {
	if ext == "" {
		ext = DefaultExt
	}
	return p.named(prefix + id.New() + ext)
}

// PublishNamed allocates an artifact with a caller-chosen base name,
// used when a request id names the output. An empty ext defaults to
// ".mp4".
func (p *Publisher) PublishNamed(base, ext string) Artifact {
	if ext == "" {
		ext = DefaultExt
	}
	return p.named(filepath.Base(base) + ext)
}

func (p *Publisher) named(name string) Artifact {
	return Artifact{
		Name:         name,
		LocalPath:    filepath.Join(p.filesDir, name),
		RelativePath: RoutePrefix + name,
	}
}
