package normalize

import (
	"ultracare-admin/internal/dashboard/domain"
)

// StatsSources lists the counters read from /admin/stats.
var StatsSources = struct {
	TotalHouseholdAdmins   []Accessor
	ActiveProSubscriptions []Accessor
	TotalDevices           []Accessor
	AlertsToday            []Accessor
}{
	TotalHouseholdAdmins:   []Accessor{Field("totalHouseholdAdmins")},
	ActiveProSubscriptions: []Accessor{Field("activeProSubscriptions")},
	TotalDevices:           []Accessor{Field("totalDevices")},
	AlertsToday:            []Accessor{Field("alertsToday")},
}

// Stats normalizes the /admin/stats payload. Missing counters read as zero.
func Stats(raw []byte) domain.Stats {
	root := asObject(Decode(raw))
	stats := domain.Stats{RecentAlerts: alerts(List(root, "recentAlerts"))}
	stats.TotalHouseholdAdmins, _ = ProbeNumber(root, StatsSources.TotalHouseholdAdmins)
	stats.ActiveProSubscriptions, _ = ProbeNumber(root, StatsSources.ActiveProSubscriptions)
	stats.TotalDevices, _ = ProbeNumber(root, StatsSources.TotalDevices)
	stats.AlertsToday, _ = ProbeNumber(root, StatsSources.AlertsToday)
	return stats
}

// MonthlyFalls maps the /admin/falls/monthly counts onto Jan..Dec by index. Extra
// values are dropped; missing or non-numeric values leave Falls nil.
func MonthlyFalls(raw []byte) []domain.MonthlyFallsPoint {
	counts := List(Decode(raw), "data")
	points := make([]domain.MonthlyFallsPoint, 0, len(domain.MonthLabels))
	for i, month := range domain.MonthLabels {
		point := domain.MonthlyFallsPoint{Month: month}
		if i < len(counts) {
			if n, ok := asFloat(counts[i]); ok {
				point.Falls = &n
			}
		}
		points = append(points, point)
	}
	return points
}

// TokenSources lists where a login or signup response may carry the bearer token.
var TokenSources = []Accessor{
	NonEmpty(Field("token")),
	NonEmpty(Field("accessToken")),
	NonEmpty(Path("data", "token")),
	NonEmpty(Path("data", "accessToken")),
	NonEmpty(Path("user", "token")),
}

// Token extracts the bearer token from an auth response.
func Token(raw []byte) (string, bool) {
	token := ProbeString(asObject(Decode(raw)), TokenSources, "")
	return token, token != ""
}
