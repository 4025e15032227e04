package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"climacheck-server/internal/config"
)

const readHeaderTimeout = 5 * time.Second

func NewServer(cfg config.Config, logger *slog.Logger, mux *http.ServeMux) *http.Server {
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           wrap(logger, mux),
		ReadHeaderTimeout: readHeaderTimeout,
	}
}
