package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"climacheck-server/internal/modules/weather/types"
)

// currentWeatherResponse mirrors the subset of the OpenWeatherMap payload we
// render. Pointers distinguish a missing field from a zero value.
type currentWeatherResponse struct {
	Name *string `json:"name"`
	Sys  *struct {
		Country *string `json:"country"`
	} `json:"sys"`
	Main *struct {
		Temp      *float64 `json:"temp"`
		FeelsLike *float64 `json:"feels_like"`
		Humidity  *int     `json:"humidity"`
		Pressure  *int     `json:"pressure"`
	} `json:"main"`
	Weather []struct {
		Description *string `json:"description"`
	} `json:"weather"`
	Wind *struct {
		Speed *float64 `json:"speed"`
	} `json:"wind"`
	Dt *int64 `json:"dt"`
}

func parseReading(body []byte) (types.Reading, error) {
	var resp currentWeatherResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return types.Reading{}, types.NewError(types.KindIncompleteData, msgIncomplete, fmt.Errorf("decode body: %w", err))
	}
	reading, err := resp.reading()
	if err != nil {
		return types.Reading{}, types.NewError(types.KindIncompleteData, msgIncomplete, err)
	}
	return reading, nil
}

func (r currentWeatherResponse) reading() (types.Reading, error) {
	switch {
	case r.Name == nil:
		return types.Reading{}, missing("name")
	case r.Sys == nil || r.Sys.Country == nil:
		return types.Reading{}, missing("sys.country")
	case r.Main == nil:
		return types.Reading{}, missing("main")
	case r.Main.Temp == nil:
		return types.Reading{}, missing("main.temp")
	case r.Main.FeelsLike == nil:
		return types.Reading{}, missing("main.feels_like")
	case r.Main.Humidity == nil:
		return types.Reading{}, missing("main.humidity")
	case r.Main.Pressure == nil:
		return types.Reading{}, missing("main.pressure")
	case len(r.Weather) == 0 || r.Weather[0].Description == nil:
		return types.Reading{}, missing("weather[0].description")
	case r.Wind == nil || r.Wind.Speed == nil:
		return types.Reading{}, missing("wind.speed")
	case r.Dt == nil:
		return types.Reading{}, missing("dt")
	}

	return types.Reading{
		City:        *r.Name,
		Country:     *r.Sys.Country,
		Temperature: *r.Main.Temp,
		FeelsLike:   *r.Main.FeelsLike,
		HumidityPct: *r.Main.Humidity,
		PressureHpa: *r.Main.Pressure,
		Description: *r.Weather[0].Description,
		WindSpeed:   *r.Wind.Speed,
		ObservedAt:  time.Unix(*r.Dt, 0),
	}, nil
}

func missing(field string) error {
	return errors.New("missing field " + field)
}
