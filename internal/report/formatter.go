package report

import (
	"fmt"
	"strings"

	"github.com/akolanti/EarningsAPI/internal/extract"
)

var emptyDrivers = map[string]bool{
	"none":          true,
	"n/a":           true,
	"not available": true,
}

// Format renders the fixed report layout. The drivers section is appended
// directly after guidance, without a separating newline.
func Format(m extract.Metrics) string {
	value := func(key string) string {
		metric, _ := m.Get(key)
		return metric.String()
	}

	out := fmt.Sprintf("Revenue: %s\nOperating Income: %s\nEPS: %s\n\nGuidance: %s",
		value(extract.Revenue),
		value(extract.OperatingIncome),
		value(extract.EPS),
		value(extract.Guidance),
	)

	drivers := value(extract.Drivers)
	if HasDrivers(drivers) {
		out += "Key Drivers:\n" + drivers
	}
	return out
}

func HasDrivers(drivers string) bool {
	if drivers == "" {
		return false
	}
	return !emptyDrivers[strings.ToLower(strings.TrimSpace(drivers))]
}
