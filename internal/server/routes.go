package server

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/maauso/media-toolkit-api/internal/storage"
)

// Config contains server configuration options.
type Config struct {
	// APIKey is the shared secret required on API routes.
	APIKey string
	// FilesDir is the directory served under /files/.
	FilesDir string
	// AllowedOrigins is the list of allowed CORS origins.
	AllowedOrigins []string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		AllowedOrigins: []string{"*"},
	}
}

// NewRouter creates a new HTTP router with all routes configured.
// It uses Go 1.22+ ServeMux with method-based routing.
//
// The /files/ route is mounted ahead of the shared-secret check:
// published artifacts stay retrievable without the secret, matching the
// original deployment's mount order.
func NewRouter(h *Handlers, logger *slog.Logger, cfg Config) http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("GET /{$}", h.Health)
	api.HandleFunc("POST /v1/image/convert/video", h.ImageToVideo)
	api.HandleFunc("POST /v1/media/metadata", h.Metadata)
	api.HandleFunc("POST /v1/video/trim", h.Trim)
	api.HandleFunc("POST /v1/ffmpeg/compose", h.Compose)
	api.HandleFunc("POST /v1/video/concatenate", h.Concatenate)
	api.HandleFunc("POST /v1/video/caption", h.Caption)

	root := http.NewServeMux()
	root.Handle("GET "+storage.RoutePrefix,
		http.StripPrefix(strings.TrimSuffix(storage.RoutePrefix, "/"),
			http.FileServer(http.Dir(cfg.FilesDir))))
	root.Handle("/", AuthMiddleware(cfg.APIKey)(api))

	// Apply middleware chain
	chain := ChainMiddleware(
		RecoveryMiddleware(logger),
		LoggingMiddleware(logger),
		CORSMiddleware(cfg.AllowedOrigins),
	)

	return chain(root)
}
