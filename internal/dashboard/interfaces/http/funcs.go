package http

import (
	"html/template"
	"math"
	"strconv"

	"ultracare-admin/internal/dashboard/views"
)

var templateFuncs = template.FuncMap{
	"barHeight": barHeight,
	"falls":     formatFalls,
	"limit":     formatLimit,
}

// barHeight scales a monthly value to a percentage of the tallest bar. Missing
// months and an all-zero chart render flat.
func barHeight(value *float64, tallest float64) int {
	if value == nil || tallest <= 0 {
		return 0
	}
	return int(math.Round(*value / tallest * 100))
}

func formatFalls(value *float64) string {
	if value == nil {
		return "-"
	}
	return views.FormatCount(*value)
}

func formatLimit(limit *int) string {
	if limit == nil {
		return "Unlimited"
	}
	return strconv.Itoa(*limit)
}
