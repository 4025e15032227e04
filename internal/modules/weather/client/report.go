package client

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"climacheck-server/internal/modules/weather/types"
)

const reportTimeLayout = "2006-01-02 15:04:05"

// FormatReport renders r as the fixed multi-line report returned to callers.
// The observation time is shown in loc.
func FormatReport(r types.Reading, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🌤️  CURRENT WEATHER IN %s, %s\n", strings.ToUpper(r.City), r.Country)
	b.WriteString(strings.Repeat("=", 50) + "\n")
	fmt.Fprintf(&b, "📅 Date and time: %s\n", r.ObservedAt.In(loc).Format(reportTimeLayout))
	fmt.Fprintf(&b, "🌡️  Temperature: %s°C (feels like: %s°C)\n", formatDecimal(r.Temperature), formatDecimal(r.FeelsLike))
	fmt.Fprintf(&b, "☁️  Condition: %s\n", titleCase(r.Description))
	fmt.Fprintf(&b, "💧 Humidity: %d%%\n", r.HumidityPct)
	fmt.Fprintf(&b, "🌪️  Pressure: %d hPa\n", r.PressureHpa)
	fmt.Fprintf(&b, "💨 Wind: %s m/s", formatDecimal(r.WindSpeed))
	return b.String()
}

func formatDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// titleCase upper-cases the first letter of each word and lower-cases the
// rest. A Caser is not safe for concurrent use, so one is built per call.
func titleCase(s string) string {
	return cases.Title(language.Und).String(strings.TrimSpace(s))
}
