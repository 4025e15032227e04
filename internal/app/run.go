package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"climacheck-server/internal/config"
	db "climacheck-server/internal/db"
	httpapi "climacheck-server/internal/httpapi"
	weather "climacheck-server/internal/modules/weather"
	weatherservice "climacheck-server/internal/modules/weather/service"
	weatherviews "climacheck-server/internal/modules/weather/views"
	"climacheck-server/internal/mqtt"
	"climacheck-server/internal/tracing"
)

const (
	mqttConnectTimeout = 5 * time.Second
	shutdownTimeout    = 10 * time.Second
)

func Run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	logger.Info("config loaded",
		"appEnv", cfg.AppEnv,
		"logLevel", cfg.LogLevel.String(),
		"httpAddr", cfg.HTTPAddr,
		"serviceName", cfg.ServiceName,
		"weatherBaseURL", cfg.WeatherBaseURL,
		"weatherLang", cfg.WeatherLang,
		"weatherTimeout", cfg.WeatherTimeout,
		"dbDriver", cfg.DBDriver,
		"sqlitePath", cfg.SQLitePath,
		"dbMaxOpenConns", cfg.DBMaxOpenConns,
		"dbMaxIdleConns", cfg.DBMaxIdleConns,
		"dbConnMaxLifetime", cfg.DBConnMaxLifetime,
		"mqttBroker", cfg.MQTTBroker,
		"mqttPort", cfg.MQTTPort,
		"mqttTopic", cfg.MQTTTopic,
		"zipkinEndpoint", cfg.ZipkinEndpoint,
	)

	shutdownTracing, err := tracing.Setup(cfg)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Error("tracing shutdown", "error", err)
		}
	}()

	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		closeErr := db.Close(dbConn)
		if closeErr != nil {
			logger.Error("db close", "error", closeErr)
		}
	}()
	logger.Info("database ready")

	if err := weatherviews.LoadTemplates(); err != nil {
		return err
	}

	var recorders []weatherservice.Recorder
	var publisher *mqtt.Publisher
	if cfg.MQTTBroker != "" {
		publisher = mqtt.NewPublisher(cfg, logger)

		// A short initial connect keeps startup responsive when the broker is down;
		// the client keeps retrying in the background.
		connectCtx, connectCancel := context.WithTimeout(ctx, mqttConnectTimeout)
		err = publisher.Connect(connectCtx)
		connectCancel()
		if err != nil {
			logger.Warn("mqtt connection failed (continuing, lookups will not be published until it connects)", "error", err)
		}
		recorders = append(recorders, publisher)
	} else {
		logger.Info("mqtt disabled")
	}

	mux := httpapi.NewMux(cfg.ServiceName)
	weather.RegisterFeature(mux, cfg, dbConn, logger, recorders...)

	srv := httpapi.NewServer(cfg, logger, mux)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http listening", "addr", cfg.HTTPAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if publisher != nil {
			publisher.Disconnect()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logger.Info("http shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	err = <-errCh
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	if publisher != nil {
		logger.Info("mqtt disconnecting")
		publisher.Disconnect()
	}

	return ctx.Err()
}
