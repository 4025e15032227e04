package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"climacheck-server/internal/modules/weather/types"
)

const (
	DefaultBaseURL = "http://api.openweathermap.org/data/2.5"
	DefaultLang    = "es"
	DefaultTimeout = 10 * time.Second

	minCityLen   = 2
	maxCityLen   = 50
	maxBodyBytes = 1 << 20
)

const (
	msgInvalidCity    = "invalid city name"
	msgTimeout        = "the weather service took too long to respond"
	msgConnection     = "could not connect to the weather service"
	msgAuth           = "authentication with the weather service failed"
	msgIncomplete     = "incomplete data from the weather service"
	msgUnknownProblem = "unknown error"
)

// Client queries the OpenWeatherMap current weather endpoint.
type Client struct {
	apiKey     string
	baseURL    string
	lang       string
	location   *time.Location
	httpClient *http.Client
	tracer     trace.Tracer
	logger     *slog.Logger
}

type Options struct {
	APIKey  string
	BaseURL string
	Lang    string
	// Timeout bounds the whole outbound call. Ignored when HTTPClient is set.
	Timeout time.Duration
	// Location is used to render the observation time. Defaults to time.Local.
	Location   *time.Location
	HTTPClient *http.Client
	Logger     *slog.Logger
}

func NewClient(opts Options) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	lang := strings.TrimSpace(opts.Lang)
	if lang == "" {
		lang = DefaultLang
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		apiKey:     opts.APIKey,
		baseURL:    baseURL,
		lang:       lang,
		location:   loc,
		httpClient: httpClient,
		tracer:     otel.Tracer("climacheck-server/weather"),
		logger:     logger,
	}
}

// Lookup fetches the current weather for cityName and renders it as a report.
// Failures are returned as *types.Error values.
func (c *Client) Lookup(ctx context.Context, cityName string) (string, error) {
	city := strings.TrimSpace(cityName)
	if n := utf8.RuneCountInString(city); n < minCityLen || n > maxCityLen {
		return "", types.NewError(types.KindInvalidInput, msgInvalidCity, nil)
	}

	c.logger.Info("weather lookup", "city", city)

	reading, err := c.fetch(ctx, city)
	if err != nil {
		c.logFailure(city, err)
		return "", err
	}

	c.logger.Info("weather lookup succeeded", "city", city)
	return FormatReport(reading, c.location), nil
}

func (c *Client) fetch(ctx context.Context, city string) (types.Reading, error) {
	ctx, span := c.tracer.Start(ctx, "GET-WEATHER")
	defer span.End()
	span.SetAttributes(attribute.String("weather.city", city))

	reading, err := c.doFetch(ctx, city)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, types.KindOf(err).String())
	}
	return reading, err
}

func (c *Client) doFetch(ctx context.Context, city string) (types.Reading, error) {
	reqURL, err := c.requestURL(city)
	if err != nil {
		return types.Reading{}, types.NewError(types.KindUnexpected, "build request url", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return types.Reading{}, types.NewError(types.KindUnexpected, "create request", err)
	}
	req.Header.Set("Accept", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return types.Reading{}, classifyTransportError(err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Debug("close provider response body", "error", err)
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return types.Reading{}, classifyTransportError(err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return parseReading(body)
	case http.StatusNotFound:
		return types.Reading{}, types.NewError(types.KindCityNotFound, fmt.Sprintf("city '%s' not found", city), nil)
	case http.StatusUnauthorized:
		return types.Reading{}, types.NewError(types.KindAuthError, msgAuth, nil)
	default:
		msg := providerMessage(body)
		return types.Reading{}, types.NewError(
			types.KindProviderError,
			"weather service error: "+msg,
			fmt.Errorf("provider returned HTTP %d", resp.StatusCode),
		)
	}
}

func (c *Client) requestURL(city string) (string, error) {
	u, err := url.Parse(c.baseURL + "/weather")
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("q", city)
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")
	q.Set("lang", c.lang)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *Client) logFailure(city string, err error) {
	kind := types.KindOf(err)
	if kind == types.KindUnexpected {
		c.logger.Error("weather lookup failed", "city", city, "error", err)
		return
	}
	c.logger.Warn("weather lookup failed", "city", city, "kind", kind.String(), "error", err)
}

func classifyTransportError(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return types.NewError(types.KindTimeout, msgTimeout, err)
	}
	return types.NewError(types.KindConnectionFailed, msgConnection, err)
}

func providerMessage(body []byte) string {
	var pe struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &pe); err != nil || strings.TrimSpace(pe.Message) == "" {
		return msgUnknownProblem
	}
	return pe.Message
}
