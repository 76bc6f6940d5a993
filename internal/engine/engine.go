// Package engine invokes the external ffmpeg and ffprobe binaries with
// explicit argument vectors. Commands are never composed as shell
// strings.
package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/semaphore"
)

// ErrProbeParse is returned when ffprobe output is not valid JSON or its
// duration field cannot be parsed.
var ErrProbeParse = errors.New("engine: malformed probe output")

// Error represents a failed engine invocation, including the argument
// vector and captured stderr for diagnostics.
type Error struct {
	Tool   string
	Args   []string
	Stderr string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s error: %v\nargs: %v\nstderr: %s", e.Tool, e.Err, e.Args, e.Stderr)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Runner runs ffmpeg transforms and ffprobe inspections. Transforms are
// gated by a weighted semaphore so a burst of jobs cannot launch an
// unbounded number of encoders at once.
type Runner struct {
	ffmpegPath  string
	ffprobePath string
	sem         *semaphore.Weighted
	timeout     time.Duration
	logger      *slog.Logger
}

// Option is a function that configures a Runner.
type Option func(*Runner)

// WithMaxConcurrentTransforms caps simultaneous transform invocations.
func WithMaxConcurrentTransforms(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.sem = semaphore.NewWeighted(int64(n))
		}
	}
}

// WithTimeout sets a per-invocation deadline. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		r.timeout = d
	}
}

// WithLogger sets the logger used for invocation diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRunner creates a Runner. Empty binary paths default to "ffmpeg" and
// "ffprobe" resolved via PATH.
func NewRunner(ffmpegPath, ffprobePath string, opts ...Option) *Runner {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	r := &Runner{
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
		sem:         semaphore.NewWeighted(4),
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Transform runs ffmpeg with the given argument vector. It blocks while
// the concurrent-transform cap is reached and fails with *Error on
// non-zero exit or spawn failure.
func (r *Runner) Transform(ctx context.Context, args []string) error {
	if err := r.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("acquire transform slot: %w", err)
	}
	defer r.sem.Release(1)

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	start := time.Now()
	// #nosec G204 - ffmpegPath is set by the application, not user input
	cmd := exec.CommandContext(ctx, r.ffmpegPath, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("ffmpeg cancelled: %w", ctx.Err())
		}
		return &Error{
			Tool:   "ffmpeg",
			Args:   args,
			Stderr: stderr.String(),
			Err:    err,
		}
	}

	r.logger.Debug("transform finished",
		slog.Duration("duration", time.Since(start)),
		slog.Int("args", len(args)),
	)

	return nil
}

// probeOutput mirrors the format-only JSON document ffprobe emits.
type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Probe runs ffprobe against path requesting quiet, JSON, format-only
// output and returns the media duration in seconds. A missing duration
// field yields 0.
func (r *Runner) Probe(ctx context.Context, path string) (float64, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	args := []string{
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		path,
	}

	// #nosec G204 - ffprobePath is set by the application, not user input
	cmd := exec.CommandContext(ctx, r.ffprobePath, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return 0, fmt.Errorf("ffprobe cancelled: %w", ctx.Err())
		}
		return 0, &Error{
			Tool:   "ffprobe",
			Args:   args,
			Stderr: stderr.String(),
			Err:    err,
		}
	}

	var out probeOutput
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrProbeParse, err)
	}

	raw := strings.TrimSpace(out.Format.Duration)
	if raw == "" {
		return 0, nil
	}

	duration, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: duration %q: %v", ErrProbeParse, raw, err)
	}

	return duration, nil
}
