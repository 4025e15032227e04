package controller

import (
	"bytes"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"

	"climacheck-server/internal/modules/weather/types"
	"climacheck-server/internal/modules/weather/views"
	"climacheck-server/internal/utils"
)

const (
	msgMissingCity    = "missing city parameter"
	msgInternalServer = "internal server error"
)

type weatherResponse struct {
	Result string `json:"result"`
}

func (c *weatherControllerImpl) handleWeather(w http.ResponseWriter, r *http.Request) {
	ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
	ctx, span := otel.Tracer("climacheck-server/weather").Start(ctx, "weather-lookup")
	defer span.End()

	city := strings.TrimSpace(r.URL.Query().Get("city"))
	if city == "" {
		utils.WriteError(w, http.StatusBadRequest, msgMissingCity)
		return
	}
	span.SetAttributes(attribute.String("weather.city", city))

	report, err := c.service.Lookup(ctx, city)
	if err != nil {
		if msg, ok := types.UserMessage(err); ok {
			utils.WriteError(w, http.StatusBadRequest, msg)
			return
		}
		c.logger.Error("weather lookup failed", "city", city, "error", err)
		utils.WriteError(w, http.StatusInternalServerError, msgInternalServer)
		return
	}

	utils.WriteJSON(w, http.StatusOK, weatherResponse{Result: report})
}

func (c *weatherControllerImpl) handleLookups(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimitQuery(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	events, err := c.lookups.GetRecentLookups(r.Context(), limit)
	if err != nil {
		c.logger.Error("lookups: get recent failed", "limit", limit, "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to load lookups")
		return
	}
	utils.WriteJSON(w, http.StatusOK, events)
}

func (c *weatherControllerImpl) handleIndex(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := views.RenderIndex(&buf); err != nil {
		c.logger.Error("index template render failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to render page")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(buf.Bytes()); err != nil {
		c.logger.Error("index: write response failed", "error", err)
	}
}
