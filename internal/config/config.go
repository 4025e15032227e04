package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	AppEnv      string
	LogLevel    slog.Level
	HTTPAddr    string
	ServiceName string

	WeatherAPIKey  string
	WeatherBaseURL string
	WeatherLang    string
	WeatherTimeout time.Duration

	DBDriver          string
	DBDSN             string
	SQLitePath        string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration

	// MQTTBroker empty disables lookup event publishing.
	MQTTBroker   string
	MQTTPort     int
	MQTTClientID string
	MQTTTopic    string

	// ZipkinEndpoint empty disables span export.
	ZipkinEndpoint string
}

var ErrMissingAPIKey = errors.New("WEATHER_API_KEY is not set")

func LoadFromEnv() (Config, error) {
	appEnv := envOr("APP_ENV", "dev")
	switch appEnv {
	case "dev", "prod":
	default:
		return Config{}, fmt.Errorf("invalid APP_ENV %q (allowed: dev, prod)", appEnv)
	}

	level, err := parseLogLevel(envOr("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, err
	}

	apiKey := strings.TrimSpace(os.Getenv("WEATHER_API_KEY"))
	if apiKey == "" {
		return Config{}, ErrMissingAPIKey
	}

	timeoutStr := envOr("WEATHER_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return Config{}, fmt.Errorf("invalid WEATHER_TIMEOUT %q: %w", timeoutStr, err)
	}
	if timeout <= 0 {
		return Config{}, fmt.Errorf("WEATHER_TIMEOUT must be positive, got %v", timeout)
	}

	cfg, err := LoadDBFromEnv()
	if err != nil {
		return Config{}, err
	}

	mqttPort, err := envInt("MQTT_PORT", "1883")
	if err != nil {
		return Config{}, err
	}

	cfg.AppEnv = appEnv
	cfg.LogLevel = level
	cfg.HTTPAddr = envOr("HTTP_ADDR", ":8080")
	cfg.ServiceName = envOr("SERVICE_NAME", "climacheck")

	cfg.WeatherAPIKey = apiKey
	cfg.WeatherBaseURL = strings.TrimRight(envOr("WEATHER_BASE_URL", "http://api.openweathermap.org/data/2.5"), "/")
	cfg.WeatherLang = envOr("WEATHER_LANG", "es")
	cfg.WeatherTimeout = timeout

	cfg.MQTTBroker = strings.TrimSpace(os.Getenv("MQTT_BROKER"))
	cfg.MQTTPort = mqttPort
	cfg.MQTTClientID = envOr("MQTT_CLIENT_ID", "climacheck-server")
	cfg.MQTTTopic = envOr("MQTT_TOPIC", "climacheck/lookups")

	cfg.ZipkinEndpoint = strings.TrimSpace(os.Getenv("ZIPKIN_ENDPOINT"))

	return cfg, nil
}

// LoadDBFromEnv reads only the database settings, so tooling can run
// without the weather API key.
func LoadDBFromEnv() (Config, error) {
	maxOpenConns, err := envInt("DB_MAX_OPEN_CONNS", "1")
	if err != nil {
		return Config{}, err
	}
	maxIdleConns, err := envInt("DB_MAX_IDLE_CONNS", "1")
	if err != nil {
		return Config{}, err
	}

	lifetimeStr := envOr("DB_CONN_MAX_LIFETIME", "0s")
	lifetime, err := time.ParseDuration(lifetimeStr)
	if err != nil {
		return Config{}, fmt.Errorf("invalid DB_CONN_MAX_LIFETIME %q: %w", lifetimeStr, err)
	}

	return Config{
		DBDriver:          envOr("DB_DRIVER", "sqlite3"),
		DBDSN:             strings.TrimSpace(os.Getenv("DB_DSN")),
		SQLitePath:        envOr("SQLITE_PATH", "data/climacheck.db"),
		DBMaxOpenConns:    maxOpenConns,
		DBMaxIdleConns:    maxIdleConns,
		DBConnMaxLifetime: lifetime,
	}, nil
}

func envOr(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func envInt(key, def string) (int, error) {
	s := envOr(key, def)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, s, err)
	}
	return n, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}
