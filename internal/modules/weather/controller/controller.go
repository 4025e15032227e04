package controller

import (
	"context"
	"log/slog"
	"net/http"

	"climacheck-server/internal/modules/weather/types"
	"climacheck-server/internal/modules/weather/views"
)

type WeatherService interface {
	Lookup(ctx context.Context, city string) (string, error)
}

type LookupReader interface {
	GetRecentLookups(ctx context.Context, limit int) ([]types.LookupEvent, error)
}

type WeatherController interface {
	RegisterRoutes(mux *http.ServeMux)
}

type weatherControllerImpl struct {
	service WeatherService
	lookups LookupReader
	logger  *slog.Logger
}

func NewWeatherController(service WeatherService, lookups LookupReader, logger *slog.Logger) WeatherController {
	if logger == nil {
		logger = slog.Default()
	}
	return &weatherControllerImpl{
		service: service,
		lookups: lookups,
		logger:  logger,
	}
}

func (c *weatherControllerImpl) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /weather", c.handleWeather)
	mux.HandleFunc("GET /api/v1/lookups", c.handleLookups)
	mux.HandleFunc("GET /{$}", c.handleIndex)
	mux.Handle("GET /static/", http.StripPrefix("/static/", views.StaticHandler()))
}
