package client

import (
	"strings"
	"testing"
	"time"

	"climacheck-server/internal/modules/weather/types"
)

func TestFormatReport(t *testing.T) {
	r := types.Reading{
		City:        "Madrid",
		Country:     "ES",
		Temperature: 18.5,
		FeelsLike:   17.9,
		HumidityPct: 60,
		PressureHpa: 1012,
		Description: "cielo claro",
		WindSpeed:   3.1,
		ObservedAt:  time.Unix(1700000000, 0),
	}

	got := FormatReport(r, time.UTC)
	want := strings.Join([]string{
		"🌤️  CURRENT WEATHER IN MADRID, ES",
		strings.Repeat("=", 50),
		"📅 Date and time: 2023-11-14 22:13:20",
		"🌡️  Temperature: 18.5°C (feels like: 17.9°C)",
		"☁️  Condition: Cielo Claro",
		"💧 Humidity: 60%",
		"🌪️  Pressure: 1012 hPa",
		"💨 Wind: 3.1 m/s",
	}, "\n")

	if got != want {
		t.Errorf("FormatReport() =\n%s\nwant\n%s", got, want)
	}
}

func TestFormatReport_MetricOrder(t *testing.T) {
	got := FormatReport(types.Reading{City: "x", Description: "d", ObservedAt: time.Unix(0, 0)}, time.UTC)
	labels := []string{"Temperature:", "feels like:", "Condition:", "Humidity:", "Pressure:", "Wind:"}
	last := -1
	for _, l := range labels {
		i := strings.Index(got, l)
		if i < 0 {
			t.Fatalf("report missing %q", l)
		}
		if i <= last {
			t.Errorf("%q out of order in report:\n%s", l, got)
		}
		last = i
	}
}

func TestFormatReport_UsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	got := FormatReport(types.Reading{City: "x", ObservedAt: time.Unix(1700000000, 0)}, loc)
	if !strings.Contains(got, "2023-11-15 00:13:20") {
		t.Errorf("report does not use location; got:\n%s", got)
	}
}

func Test_formatDecimal(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{in: 18.5, want: "18.5"},
		{in: 3.1, want: "3.1"},
		{in: 18, want: "18"},
		{in: -2.25, want: "-2.25"},
		{in: 0, want: "0"},
	}
	for _, tt := range tests {
		if got := formatDecimal(tt.in); got != tt.want {
			t.Errorf("formatDecimal(%v) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func Test_titleCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "cielo claro", want: "Cielo Claro"},
		{in: "LLUVIA ligera", want: "Lluvia Ligera"},
		{in: "nubes dispersas ", want: "Nubes Dispersas"},
		{in: "", want: ""},
	}
	for _, tt := range tests {
		if got := titleCase(tt.in); got != tt.want {
			t.Errorf("titleCase(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}
