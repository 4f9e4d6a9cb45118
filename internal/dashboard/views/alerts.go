package views

import (
	"sort"

	"ultracare-admin/internal/dashboard/domain"
)

// FilterAll disables the alert type filter.
const FilterAll = "ALL"

// Option is a select option.
type Option struct {
	Value string
	Label string
}

// AlertTypeOptions are the choices of the alerts page type filter.
var AlertTypeOptions = []Option{
	{Value: FilterAll, Label: "All Types"},
	{Value: string(domain.AlertFallDetected), Label: "Fall Detected"},
	{Value: string(domain.AlertNoMovement), Label: "No Movement"},
	{Value: string(domain.AlertUnusualActivity), Label: "Unusual Activity"},
}

// ParseAlertFilter maps a query value onto a known filter, defaulting to FilterAll.
func ParseAlertFilter(value string) string {
	for _, option := range AlertTypeOptions {
		if option.Value == value {
			return value
		}
	}
	return FilterAll
}

// SupportedAlerts drops alerts whose type is not one of the displayed types.
func SupportedAlerts(alerts []domain.Alert) []domain.Alert {
	out := make([]domain.Alert, 0, len(alerts))
	for _, alert := range alerts {
		if alert.Type.IsSupported() {
			out = append(out, alert)
		}
	}
	return out
}

// FilterByType keeps alerts of the selected type; FilterAll keeps everything.
func FilterByType(alerts []domain.Alert, filter string) []domain.Alert {
	if filter == FilterAll || filter == "" {
		return append([]domain.Alert(nil), alerts...)
	}
	out := make([]domain.Alert, 0, len(alerts))
	for _, alert := range alerts {
		if string(alert.Type) == filter {
			out = append(out, alert)
		}
	}
	return out
}

// SortByTimestampDesc orders alerts newest first. An alert with an unparsable
// timestamp compares as neither before nor after any other alert, so its position
// relative to dated alerts is whatever the merge leaves it at.
func SortByTimestampDesc(alerts []domain.Alert) []domain.Alert {
	type keyed struct {
		alert domain.Alert
		at    int64
		valid bool
	}
	items := make([]keyed, len(alerts))
	for i, alert := range alerts {
		parsed, ok := ParseTimestamp(alert.Timestamp)
		items[i] = keyed{alert: alert, at: parsed.UnixNano(), valid: ok}
	}
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].valid || !items[j].valid {
			return false
		}
		return items[i].at > items[j].at
	})
	out := make([]domain.Alert, len(items))
	for i, item := range items {
		out[i] = item.alert
	}
	return out
}

// AlertStatusCounts tallies alerts by badge state.
type AlertStatusCounts struct {
	New          int
	Acknowledged int
	Resolved     int
}

// CountAlertStatuses counts in a single pass.
func CountAlertStatuses(alerts []domain.Alert) AlertStatusCounts {
	var counts AlertStatusCounts
	for _, alert := range alerts {
		switch alert.Status {
		case domain.AlertStatusNew:
			counts.New++
		case domain.AlertStatusAcknowledged:
			counts.Acknowledged++
		case domain.AlertStatusResolved:
			counts.Resolved++
		}
	}
	return counts
}

// AlertRow is one rendered line of an alert table.
type AlertRow struct {
	Key            string
	Timestamp      string
	Type           domain.AlertType
	TypeLabel      string
	DeviceID       string
	HouseholdEmail string
	HouseholdName  string
	Resident       string
	Confidence     string
	Status         domain.AlertStatus
}

// AlertsView is the derived state of the alerts page.
type AlertsView struct {
	Filter  string
	Options []Option
	Rows    []AlertRow
	Counts  AlertStatusCounts
}

// BuildAlertsView filters to supported types, applies the type filter, sorts newest
// first, joins household emails and counts statuses over the filtered list.
func BuildAlertsView(alerts []domain.Alert, devices []domain.Device, admins []domain.User, filter string) AlertsView {
	owners := NewOwnerIndex(devices)
	emails := NewEmailIndex(admins)
	filter = ParseAlertFilter(filter)

	filtered := SortByTimestampDesc(FilterByType(SupportedAlerts(alerts), filter))
	rows := make([]AlertRow, 0, len(filtered))
	for _, alert := range filtered {
		device := alert.DeviceLabel
		if device == "" {
			device = "Unknown"
		}
		rows = append(rows, AlertRow{
			Key:            alert.Key,
			Timestamp:      FormatTimestamp(alert.Timestamp),
			Type:           alert.Type,
			TypeLabel:      AlertTypeLabel(alert.Type),
			DeviceID:       device,
			HouseholdEmail: HouseholdEmail(alert, owners, emails),
			HouseholdName:  alert.HouseholdName,
			Resident:       alert.Resident,
			Confidence:     FormatConfidence(alert.Confidence),
			Status:         alert.Status,
		})
	}
	return AlertsView{
		Filter:  filter,
		Options: AlertTypeOptions,
		Rows:    rows,
		Counts:  CountAlertStatuses(filtered),
	}
}

// RecentAlertRows prepares the overview's recent alerts table.
func RecentAlertRows(alerts []domain.Alert) []AlertRow {
	sorted := SortByTimestampDesc(SupportedAlerts(alerts))
	rows := make([]AlertRow, 0, len(sorted))
	for _, alert := range sorted {
		rows = append(rows, AlertRow{
			Key:           alert.Key,
			Timestamp:     FormatShortTimestamp(alert.Timestamp),
			Type:          alert.Type,
			TypeLabel:     string(alert.Type),
			DeviceID:      OrDash(alert.DeviceID),
			HouseholdName: alert.HouseholdName,
			Resident:      alert.Resident,
			Confidence:    FormatConfidence(alert.Confidence),
			Status:        alert.Status,
		})
	}
	return rows
}
