package weather

import (
	"database/sql"
	"log/slog"
	"net/http"

	"climacheck-server/internal/config"
	"climacheck-server/internal/modules/weather/client"
	"climacheck-server/internal/modules/weather/controller"
	"climacheck-server/internal/modules/weather/repository"
	"climacheck-server/internal/modules/weather/service"
)

// RegisterFeature wires the weather client, lookup log and any extra
// recorders (the MQTT publisher) behind the weather routes on mux.
func RegisterFeature(mux *http.ServeMux, cfg config.Config, db *sql.DB, logger *slog.Logger, recorders ...service.Recorder) {
	weatherClient := client.NewClient(client.Options{
		APIKey:  cfg.WeatherAPIKey,
		BaseURL: cfg.WeatherBaseURL,
		Lang:    cfg.WeatherLang,
		Timeout: cfg.WeatherTimeout,
		Logger:  logger,
	})
	weatherRepository := repository.NewRepository(db)

	all := append([]service.Recorder{weatherRepository}, recorders...)
	weatherService := service.NewService(weatherClient, logger, all...)

	weatherController := controller.NewWeatherController(weatherService, weatherRepository, logger)
	weatherController.RegisterRoutes(mux)
}
