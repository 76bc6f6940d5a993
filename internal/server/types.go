// Package server provides the HTTP layer for the media toolkit API:
// request/response DTOs, handlers, middleware and routes.
package server

import "encoding/json"

// ImageToVideoRequest is the body for POST /v1/image/convert/video.
type ImageToVideoRequest struct {
	// ImageURL is the remote still image to animate.
	ImageURL string `json:"image_url" validate:"required,url"`
	// Length is the output duration in seconds (default 20).
	Length float64 `json:"length" validate:"omitempty,gt=0"`
	// FrameRate is the output frame rate (default 25).
	FrameRate int `json:"frame_rate" validate:"omitempty,gt=0"`
	// ZoomSpeed is accepted for compatibility; the zoom rate is fixed.
	ZoomSpeed float64 `json:"zoom_speed"`
	// ID is echoed back in the response.
	ID string `json:"id"`
}

// MetadataRequest is the body for POST /v1/media/metadata.
type MetadataRequest struct {
	MediaURL string `json:"media_url" validate:"required,url"`
}

// TrimRequest is the body for POST /v1/video/trim.
type TrimRequest struct {
	VideoURL string `json:"video_url" validate:"required,url"`
	// Start defaults to "00:00:00".
	Start string `json:"start"`
	// End defaults to the end of the stream.
	End string `json:"end"`
}

// ComposeInputEntry is one positional input of a compose request.
type ComposeInputEntry struct {
	FileURL string `json:"file_url" validate:"required,url"`
}

// ComposeRequest is the body for POST /v1/ffmpeg/compose. The contract
// is positional: inputs[0] supplies the video stream, inputs[1] the
// audio stream.
type ComposeRequest struct {
	Inputs []ComposeInputEntry `json:"inputs" validate:"required,min=2,dive"`
}

// ConcatenateRequest is the body for POST /v1/video/concatenate. Each
// video_urls entry is either a URL string or an object carrying a
// video_url field.
type ConcatenateRequest struct {
	VideoURLs []json.RawMessage `json:"video_urls" validate:"required,min=1"`
	// ID, when set, names the output artifact and is echoed back.
	ID string `json:"id"`
}

// ResolveURLs extracts the usable URL from each entry, preserving array
// order. Entries of any other shape are silently skipped.
func (r *ConcatenateRequest) ResolveURLs() []string {
	var urls []string
	for _, raw := range r.VideoURLs {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && s != "" {
			urls = append(urls, s)
			continue
		}
		var obj struct {
			VideoURL string `json:"video_url"`
		}
		if err := json.Unmarshal(raw, &obj); err == nil && obj.VideoURL != "" {
			urls = append(urls, obj.VideoURL)
		}
	}
	return urls
}

// CaptionRequest is the body for POST /v1/video/caption.
type CaptionRequest struct {
	VideoURL string `json:"video_url" validate:"required,url"`
	ID       string `json:"id"`
}

// ArtifactResponse is the response for operations producing a published
// artifact.
type ArtifactResponse struct {
	// Response is the absolute, client-reachable artifact URL.
	Response string `json:"response"`
	// ID echoes the request id when one was given.
	ID string `json:"id,omitempty"`
	// S3URL is set when the artifact was mirrored to S3.
	S3URL string `json:"s3_url,omitempty"`
}

// MetadataResponse is the response for POST /v1/media/metadata.
type MetadataResponse struct {
	Duration          float64 `json:"duration"`
	DurationFormatted string  `json:"duration_formatted"`
}

// CaptionResponse is the response for POST /v1/video/caption.
type CaptionResponse struct {
	Response string `json:"response"`
	ID       string `json:"id,omitempty"`
	Note     string `json:"note"`
}

// ErrorResponse is the standard error response format. Failures carry a
// generic message only; detail stays in the server log.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the response for the liveness endpoint.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
