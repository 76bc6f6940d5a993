// Package job implements the synchronous media pipeline: fetch remote
// inputs, build the engine invocation for the requested kind, run it and
// publish the resulting artifact. Every operation completes within the
// request that triggered it.
package job

import (
	"context"
	"errors"
	"log/slog"

	"github.com/maauso/media-toolkit-api/internal/media"
	"github.com/maauso/media-toolkit-api/internal/storage"
)

// ErrNoUsableInputs is returned when a concatenation request carries no
// entry that resolves to a usable URL.
var ErrNoUsableInputs = errors.New("job: no usable concatenation inputs")

// Fetcher downloads a remote URL to a local temporary file.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL, prefix string) (string, error)
	TempDir() string
}

// Engine runs external transform and probe invocations.
type Engine interface {
	Transform(ctx context.Context, args []string) error
	Probe(ctx context.Context, path string) (float64, error)
}

// Mirror uploads a published artifact to remote object storage.
type Mirror interface {
	UploadFile(ctx context.Context, key, path string) (string, error)
}

// Result describes a published artifact. S3URL is set only when a
// mirror is configured and the upload succeeded.
type Result struct {
	Artifact storage.Artifact
	S3URL    string
}

// MetadataResult carries probed media metadata.
type MetadataResult struct {
	// Duration is the raw duration in seconds.
	Duration float64
	// Formatted is the duration as HH:MM:SS, rounded to the nearest
	// second.
	Formatted string
}

// Service dispatches one operation per job kind. Each follows the same
// skeleton: fetch remote inputs, invoke the engine, publish, respond.
type Service struct {
	fetcher   Fetcher
	engine    Engine
	publisher *storage.Publisher
	mirror    Mirror
	logger    *slog.Logger
}

// Option is a function that configures a Service.
type Option func(*Service)

// WithMirror enables mirroring of published artifacts to object storage.
func WithMirror(m Mirror) Option {
	return func(s *Service) {
		s.mirror = m
	}
}

// NewService creates a Service with the given collaborators.
func NewService(fetcher Fetcher, engine Engine, publisher *storage.Publisher, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		fetcher:   fetcher,
		engine:    engine,
		publisher: publisher,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ImageToVideoInput is the input for converting a still image into a
// pan/zoom video.
type ImageToVideoInput struct {
	ImageURL  string
	Length    float64 // seconds; 0 means default
	FrameRate int     // 0 means default
	// ZoomSpeed is accepted for wire compatibility but the zoom rate
	// per output frame is fixed; the field never reaches the filter.
	ZoomSpeed float64
	ID        string
}

// ImageToVideo fetches an image and renders it as a fixed 1080x1920
// pan/zoom video of the requested length and frame rate.
func (s *Service) ImageToVideo(ctx context.Context, in ImageToVideoInput) (Result, error) {
	length := in.Length
	if length <= 0 {
		length = media.DefaultLength
	}
	frameRate := in.FrameRate
	if frameRate <= 0 {
		frameRate = media.DefaultFrameRate
	}

	imagePath, err := s.fetcher.Fetch(ctx, in.ImageURL, "img2vid-in-")
	if err != nil {
		return Result{}, err
	}

	art := s.publisher.Publish("img2vid-out-", ".mp4")
	if err := s.engine.Transform(ctx, media.ImageToVideoArgs(imagePath, art.LocalPath, length, frameRate)); err != nil {
		return Result{}, err
	}

	s.logger.Info("image converted to video",
		slog.String("artifact", art.Name),
		slog.Float64("length", length),
		slog.Int("frame_rate", frameRate),
	)

	return s.finish(ctx, art), nil
}

// Metadata fetches a media URL and probes its duration.
func (s *Service) Metadata(ctx context.Context, mediaURL string) (MetadataResult, error) {
	path, err := s.fetcher.Fetch(ctx, mediaURL, "probe-in-")
	if err != nil {
		return MetadataResult{}, err
	}

	duration, err := s.engine.Probe(ctx, path)
	if err != nil {
		return MetadataResult{}, err
	}

	return MetadataResult{
		Duration:  duration,
		Formatted: media.FormatDuration(duration),
	}, nil
}

// TrimInput is the input for a stream-copy extraction.
type TrimInput struct {
	VideoURL string
	Start    string // empty means "00:00:00"
	End      string // empty means end of stream
}

// Trim fetches a video and extracts the requested range without
// re-encoding.
func (s *Service) Trim(ctx context.Context, in TrimInput) (Result, error) {
	start := in.Start
	if start == "" {
		start = "00:00:00"
	}

	videoPath, err := s.fetcher.Fetch(ctx, in.VideoURL, "trim-in-")
	if err != nil {
		return Result{}, err
	}

	art := s.publisher.Publish("trim-out-", ".mp4")
	if err := s.engine.Transform(ctx, media.TrimArgs(videoPath, art.LocalPath, start, in.End)); err != nil {
		return Result{}, err
	}

	s.logger.Info("video trimmed",
		slog.String("artifact", art.Name),
		slog.String("start", start),
		slog.String("end", in.End),
	)

	return s.finish(ctx, art), nil
}

// ComposeInput is the input for combining a video stream with an audio
// stream. The contract is positional: VideoURL supplies the video,
// AudioURL the audio.
type ComposeInput struct {
	VideoURL string
	AudioURL string
}

// Compose fetches both inputs and muxes the first's video stream with
// the second's audio stream; output stops at the shorter of the two.
func (s *Service) Compose(ctx context.Context, in ComposeInput) (Result, error) {
	videoPath, err := s.fetcher.Fetch(ctx, in.VideoURL, "compose-video-")
	if err != nil {
		return Result{}, err
	}

	audioPath, err := s.fetcher.Fetch(ctx, in.AudioURL, "compose-audio-")
	if err != nil {
		return Result{}, err
	}

	art := s.publisher.Publish("compose-out-", ".mp4")
	if err := s.engine.Transform(ctx, media.ComposeArgs(videoPath, audioPath, art.LocalPath)); err != nil {
		return Result{}, err
	}

	s.logger.Info("streams composed",
		slog.String("artifact", art.Name),
	)

	return s.finish(ctx, art), nil
}

// ConcatenateInput is the input for joining multiple videos. URLs must
// already be resolved to plain strings, in request order; entries that
// did not resolve were dropped upstream.
type ConcatenateInput struct {
	URLs []string
	ID   string // optional; names the output when set
}

// Concatenate fetches every URL in order, writes the concat manifest and
// stream-copies all inputs into a single output.
func (s *Service) Concatenate(ctx context.Context, in ConcatenateInput) (Result, error) {
	if len(in.URLs) == 0 {
		return Result{}, ErrNoUsableInputs
	}

	paths := make([]string, 0, len(in.URLs))
	for _, u := range in.URLs {
		p, err := s.fetcher.Fetch(ctx, u, "concat-in-")
		if err != nil {
			return Result{}, err
		}
		paths = append(paths, p)
	}

	list, err := media.WriteConcatList(s.fetcher.TempDir(), paths)
	if err != nil {
		return Result{}, err
	}

	var art storage.Artifact
	if in.ID != "" {
		art = s.publisher.PublishNamed(in.ID, ".mp4")
	} else {
		art = s.publisher.Publish("concat-out-", ".mp4")
	}

	if err := s.engine.Transform(ctx, media.ConcatArgs(list, art.LocalPath)); err != nil {
		return Result{}, err
	}

	s.logger.Info("videos concatenated",
		slog.String("artifact", art.Name),
		slog.Int("inputs", len(paths)),
	)

	return s.finish(ctx, art), nil
}

// Caption is a deliberate no-op placeholder for future captioning logic.
// It returns the source URL untouched.
func (s *Service) Caption(ctx context.Context, videoURL string) string {
	s.logger.Info("caption requested, passing through",
		slog.String("video_url", videoURL),
	)
	return videoURL
}

// finish mirrors the artifact to S3 when configured. A mirror failure
// does not invalidate the locally published artifact; it is logged and
// the local URL is still returned.
func (s *Service) finish(ctx context.Context, art storage.Artifact) Result {
	res := Result{Artifact: art}
	if s.mirror == nil {
		return res
	}

	url, err := s.mirror.UploadFile(ctx, art.Name, art.LocalPath)
	if err != nil {
		s.logger.Warn("artifact mirror upload failed",
			slog.String("artifact", art.Name),
			slog.String("error", err.Error()),
		)
		return res
	}

	res.S3URL = url
	return res
}
