package normalize

import (
	"strings"

	"ultracare-admin/internal/dashboard/domain"
)

// AlertEnvelope is the list envelope priority for alert listings.
var AlertEnvelope = []string{"alerts", "data"}

// AlertSources lists the source accessors for each canonical alert field.
var AlertSources = struct {
	ID              []Accessor
	Type            []Accessor
	Timestamp       []Accessor
	DeviceID        []Accessor
	DeviceLabel     []Accessor
	HouseholdUserID []Accessor
	HouseholdEmail  []Accessor
	HouseholdName   []Accessor
	Resident        []Accessor
	Confidence      []Accessor
	Status          []Accessor
}{
	ID:        []Accessor{Field("id"), Field("_id")},
	Type:      []Accessor{Field("type"), Field("alertType"), Field("eventType")},
	Timestamp: []Accessor{Field("timestampIso"), Field("createdAt"), Field("timestamp"), Field("time"), Field("occurredAt")},
	DeviceID: []Accessor{
		Field("deviceId"),
		Path("device", "deviceId"),
		Path("device", "id"),
		Field("device_id"),
	},
	DeviceLabel: []Accessor{
		NonEmpty(Field("deviceId")),
		NonEmpty(Field("source")),
		StringOnly(Field("device")),
		NonEmpty(Path("device", "deviceId")),
		NonEmpty(Path("device", "id")),
		Field("device_id"),
	},
	HouseholdUserID: []Accessor{
		Field("userId"),
		Field("householdAdminId"),
		Field("householdId"),
		Path("user", "id"),
	},
	HouseholdEmail: []Accessor{NonEmpty(Field("householdEmail")), NonEmpty(Field("householdAdminEmail"))},
	HouseholdName:  []Accessor{Field("householdName")},
	Resident:       []Accessor{NonEmpty(Field("residentName")), NonEmpty(Field("elderly")), NonEmpty(Field("room"))},
	Confidence:     []Accessor{Field("confidence"), Field("score")},
	Status:         []Accessor{Field("status")},
}

// AlertType classifies a raw alert type string. The result is stable under repeated
// application.
func AlertType(raw string) domain.AlertType {
	value := strings.ToUpper(strings.TrimSpace(raw))
	switch {
	case value == "":
		return domain.AlertUnknown
	case strings.Contains(value, "FALL"):
		return domain.AlertFallDetected
	case strings.Contains(value, "NO_MOVEMENT"), strings.Contains(value, "NO MOVEMENT"):
		return domain.AlertNoMovement
	case strings.Contains(value, "UNUSUAL"):
		return domain.AlertUnusualActivity
	default:
		return domain.AlertType(value)
	}
}

// AlertStatus maps a raw status onto the known badge states.
func AlertStatus(raw string) domain.AlertStatus {
	switch status := domain.AlertStatus(strings.ToUpper(strings.TrimSpace(raw))); status {
	case domain.AlertStatusNew, domain.AlertStatusAcknowledged, domain.AlertStatusResolved:
		return status
	default:
		return domain.AlertStatusUnknown
	}
}

// Alerts normalizes an alert listing. Rows of every type are returned; views decide
// which types to show.
func Alerts(raw []byte) []domain.Alert {
	return alerts(List(Decode(raw), AlertEnvelope...))
}

func alerts(list []any) []domain.Alert {
	out := make([]domain.Alert, 0, len(list))
	for _, item := range list {
		out = append(out, alertFromRow(asObject(item)))
	}
	return out
}

func alertFromRow(row map[string]any) domain.Alert {
	alert := domain.Alert{
		ID:              ProbeString(row, AlertSources.ID, ""),
		Type:            AlertType(ProbeString(row, AlertSources.Type, "")),
		Timestamp:       ProbeString(row, AlertSources.Timestamp, ""),
		DeviceID:        ProbeString(row, AlertSources.DeviceID, ""),
		DeviceLabel:     ProbeString(row, AlertSources.DeviceLabel, ""),
		HouseholdUserID: ProbeString(row, AlertSources.HouseholdUserID, ""),
		HouseholdEmail:  ProbeString(row, AlertSources.HouseholdEmail, ""),
		HouseholdName:   ProbeString(row, AlertSources.HouseholdName, "-"),
		Resident:        ProbeString(row, AlertSources.Resident, "Unknown"),
		Status:          AlertStatus(ProbeString(row, AlertSources.Status, "")),
	}
	if confidence, ok := ProbeNumber(row, AlertSources.Confidence); ok {
		alert.Confidence = &confidence
	}
	alert.Key = alertKey(alert)
	return alert
}

// alertKey falls back to deviceId-timestamp when the backend sends no id. Two alerts
// from one device at the same instant share a key.
func alertKey(alert domain.Alert) string {
	if alert.ID != "" {
		return alert.ID
	}
	device := alert.DeviceID
	if device == "" {
		device = "device"
	}
	ts := alert.Timestamp
	if ts == "" {
		ts = "time"
	}
	return device + "-" + ts
}
