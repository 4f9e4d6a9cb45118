package views

import (
	"ultracare-admin/internal/dashboard/domain"
)

// DeviceRow is one rendered line of the devices table.
type DeviceRow struct {
	Key        string
	DeviceID   string
	Name       string
	Household  string
	Location   string
	Status     domain.DeviceStatus
	Registered string
	LastActive string
}

// DeviceCounts tallies devices by connectivity.
type DeviceCounts struct {
	Online  int
	Offline int
}

// DevicesView is the derived state of the devices page.
type DevicesView struct {
	Rows   []DeviceRow
	Counts DeviceCounts
}

// BuildDevicesView maps devices to rows and counts them in one pass.
func BuildDevicesView(devices []domain.Device) DevicesView {
	view := DevicesView{Rows: make([]DeviceRow, 0, len(devices))}
	for _, device := range devices {
		household := device.OwnerUserID
		if household == "" {
			household = Unassigned
		}
		status := device.Status()
		if status == domain.DeviceOnline {
			view.Counts.Online++
		} else {
			view.Counts.Offline++
		}
		view.Rows = append(view.Rows, DeviceRow{
			Key:        device.Key,
			DeviceID:   device.DeviceID,
			Name:       device.Name,
			Household:  household,
			Location:   device.Room,
			Status:     status,
			Registered: FormatDate(device.CreatedAt),
			LastActive: FormatLastActive(device.LastSeenAt),
		})
	}
	return view
}

// Metric is one overview card.
type Metric struct {
	Label       string
	Value       string
	Description string
}

// OverviewMetrics builds the four platform counter cards.
func OverviewMetrics(stats domain.Stats) []Metric {
	return []Metric{
		{Label: "Total Household Admins", Value: FormatCount(stats.TotalHouseholdAdmins), Description: "Registered households"},
		{Label: "Active PRO Subscriptions", Value: FormatCount(stats.ActiveProSubscriptions), Description: "Paid active plans"},
		{Label: "Total Registered Devices", Value: FormatCount(stats.TotalDevices), Description: "Across all households"},
		{Label: "Alerts (Today)", Value: FormatCount(stats.AlertsToday), Description: "FALL/NO_MOVEMENT/UNUSUAL"},
	}
}

// UserRow is one rendered line of the household admins and users tables.
type UserRow struct {
	Key        string
	ID         string
	Email      string
	Name       string
	Created    string
	IsDisabled bool
	IsSelf     bool
	Plan       string
	Status     string
}

// BuildUserRows maps users to rows, flagging the signed-in admin.
func BuildUserRows(users []domain.User, currentUserID string) []UserRow {
	rows := make([]UserRow, 0, len(users))
	for _, user := range users {
		row := UserRow{
			Key:        user.Key,
			ID:         user.ID,
			Email:      user.Email,
			Name:       OrDash(user.Name),
			Created:    FormatDateTime(user.CreatedAt),
			IsDisabled: user.IsDisabled,
			IsSelf:     currentUserID != "" && user.ID == currentUserID,
			Plan:       "-",
			Status:     "-",
		}
		if user.Subscription != nil {
			row.Plan = OrDash(string(user.Subscription.Plan))
			row.Status = OrDash(string(user.Subscription.Status))
		}
		rows = append(rows, row)
	}
	return rows
}
