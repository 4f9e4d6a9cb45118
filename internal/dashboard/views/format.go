package views

import (
	"strconv"
	"strings"
	"time"

	"ultracare-admin/internal/dashboard/domain"
)

// Location is the zone timestamps are rendered in.
var Location = time.UTC

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp accepts the timestamp shapes the backend is known to send: RFC3339,
// zone-less ISO, date-only, and epoch milliseconds.
func ParseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, true
		}
	}
	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), true
	}
	return time.Time{}, false
}

func formatOr(raw, layout, fallback string) string {
	parsed, ok := ParseTimestamp(raw)
	if !ok {
		return fallback
	}
	return parsed.In(Location).Format(layout)
}

// FormatTimestamp renders a full date and time, or "-".
func FormatTimestamp(raw string) string {
	return formatOr(raw, "Jan 2, 2006, 03:04 PM", "-")
}

// FormatShortTimestamp renders month, day and time, or "-".
func FormatShortTimestamp(raw string) string {
	return formatOr(raw, "Jan 2, 03:04 PM", "-")
}

// FormatDate renders a calendar date, or "-".
func FormatDate(raw string) string {
	return formatOr(raw, "Jan 2, 2006", "-")
}

// FormatLastActive renders a device's last contact, or "Never".
func FormatLastActive(raw string) string {
	return formatOr(raw, "Jan 2, 03:04 PM", "Never")
}

// FormatDateTime renders a numeric date and time, or "-".
func FormatDateTime(raw string) string {
	return formatOr(raw, "1/2/2006, 3:04:05 PM", "-")
}

// FormatConfidence renders a 0-100 score as a percentage, or "-".
func FormatConfidence(confidence *float64) string {
	if confidence == nil {
		return "-"
	}
	return strconv.FormatFloat(*confidence, 'f', -1, 64) + "%"
}

// FormatCount renders a counter without a trailing fraction.
func FormatCount(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// AlertTypeLabel is the human label for a normalized alert type.
func AlertTypeLabel(t domain.AlertType) string {
	switch t {
	case domain.AlertFallDetected:
		return "Fall Detected"
	case domain.AlertNoMovement:
		return "No Movement"
	case domain.AlertUnusualActivity:
		return "Unusual Activity"
	default:
		return string(t)
	}
}

// OrDash substitutes "-" for an empty string.
func OrDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
