package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/maauso/media-toolkit-api/internal/job"
)

// captionNote documents the deliberate pass-through behavior of the
// caption endpoint.
const captionNote = "captioning is not implemented yet; the source video is returned unchanged"

// Handlers contains the HTTP handlers for the API.
type Handlers struct {
	service   *job.Service
	validator *validator.Validate
	logger    *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(service *job.Service, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{
		service:   service,
		validator: validator.New(),
		logger:    logger,
	}
}

// Health handles GET / requests.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Message: "media toolkit API is running",
	})
}

// ImageToVideo handles POST /v1/image/convert/video requests.
func (h *Handlers) ImageToVideo(w http.ResponseWriter, r *http.Request) {
	var req ImageToVideoRequest
	if !h.decode(w, r, &req) {
		return
	}

	res, err := h.service.ImageToVideo(r.Context(), job.ImageToVideoInput{
		ImageURL:  req.ImageURL,
		Length:    req.Length,
		FrameRate: req.FrameRate,
		ZoomSpeed: req.ZoomSpeed,
		ID:        req.ID,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ArtifactResponse{
		Response: absoluteURL(r, res.Artifact.RelativePath),
		ID:       req.ID,
		S3URL:    res.S3URL,
	})
}

// Metadata handles POST /v1/media/metadata requests.
func (h *Handlers) Metadata(w http.ResponseWriter, r *http.Request) {
	var req MetadataRequest
	if !h.decode(w, r, &req) {
		return
	}

	res, err := h.service.Metadata(r.Context(), req.MediaURL)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, MetadataResponse{
		Duration:          res.Duration,
		DurationFormatted: res.Formatted,
	})
}

// Trim handles POST /v1/video/trim requests.
func (h *Handlers) Trim(w http.ResponseWriter, r *http.Request) {
	var req TrimRequest
	if !h.decode(w, r, &req) {
		return
	}

	res, err := h.service.Trim(r.Context(), job.TrimInput{
		VideoURL: req.VideoURL,
		Start:    req.Start,
		End:      req.End,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ArtifactResponse{
		Response: absoluteURL(r, res.Artifact.RelativePath),
		S3URL:    res.S3URL,
	})
}

// Compose handles POST /v1/ffmpeg/compose requests.
func (h *Handlers) Compose(w http.ResponseWriter, r *http.Request) {
	var req ComposeRequest
	if !h.decode(w, r, &req) {
		return
	}

	res, err := h.service.Compose(r.Context(), job.ComposeInput{
		VideoURL: req.Inputs[0].FileURL,
		AudioURL: req.Inputs[1].FileURL,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ArtifactResponse{
		Response: absoluteURL(r, res.Artifact.RelativePath),
		S3URL:    res.S3URL,
	})
}

// Concatenate handles POST /v1/video/concatenate requests.
func (h *Handlers) Concatenate(w http.ResponseWriter, r *http.Request) {
	var req ConcatenateRequest
	if !h.decode(w, r, &req) {
		return
	}

	urls := req.ResolveURLs()
	if len(urls) == 0 {
		h.logger.Warn("concatenate request had no usable entries",
			slog.Int("entries", len(req.VideoURLs)),
		)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.service.Concatenate(r.Context(), job.ConcatenateInput{
		URLs: urls,
		ID:   req.ID,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ArtifactResponse{
		Response: absoluteURL(r, res.Artifact.RelativePath),
		ID:       req.ID,
		S3URL:    res.S3URL,
	})
}

// Caption handles POST /v1/video/caption requests.
func (h *Handlers) Caption(w http.ResponseWriter, r *http.Request) {
	var req CaptionRequest
	if !h.decode(w, r, &req) {
		return
	}

	writeJSON(w, http.StatusOK, CaptionResponse{
		Response: h.service.Caption(r.Context(), req.VideoURL),
		ID:       req.ID,
		Note:     captionNote,
	})
}

// decode parses and validates a JSON body before any I/O happens.
// It writes a 400 response and returns false on failure.
func (h *Handlers) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.logger.Warn("failed to decode request body",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}

	if err := h.validator.Struct(dst); err != nil {
		h.logger.Warn("request validation failed",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}

	return true
}

// fail logs the full error server-side and answers with a generic
// message; the caller only learns the status code class.
func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("job failed",
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()),
	)

	if errors.Is(err, job.ErrNoUsableInputs) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	writeError(w, http.StatusInternalServerError, "media processing failed")
}

// absoluteURL builds the client-reachable URL for a served path. The
// service runs behind a reverse proxy, so forwarded headers win over the
// connection's own scheme and Host.
func absoluteURL(r *http.Request, relativePath string) string {
	scheme := r.Header.Get("X-Forwarded-Proto")
	if scheme == "" {
		if r.TLS != nil {
			scheme = "https"
		} else {
			scheme = "http"
		}
	}

	host := r.Header.Get("X-Forwarded-Host")
	if host == "" {
		host = r.Host
	}

	return scheme + "://" + host + relativePath
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
	}
}

// writeError writes an error response in the standard format.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
