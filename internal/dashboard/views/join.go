// Package views derives UI-ready aggregates from canonical rows.
package views

import (
	"ultracare-admin/internal/dashboard/domain"
)

// Unassigned is shown when an alert cannot be tied to a household.
const Unassigned = "Unassigned"

// OwnerIndex maps deviceId to the owning user id.
type OwnerIndex map[string]string

// EmailIndex maps user id to email.
type EmailIndex map[string]string

// NewOwnerIndex scans devices once. Devices without an external id are skipped.
func NewOwnerIndex(devices []domain.Device) OwnerIndex {
	index := make(OwnerIndex, len(devices))
	for _, device := range devices {
		if device.DeviceID == "" || device.DeviceID == "-" {
			continue
		}
		index[device.DeviceID] = device.OwnerUserID
	}
	return index
}

// NewEmailIndex scans users once. Users without an id or email are skipped.
func NewEmailIndex(users []domain.User) EmailIndex {
	index := make(EmailIndex, len(users))
	for _, user := range users {
		if user.ID == "" || user.Email == "" || user.Email == "-" {
			continue
		}
		index[user.ID] = user.Email
	}
	return index
}

// HouseholdUserID resolves the household for an alert: the alert's own field first,
// then the owner of its device.
func HouseholdUserID(alert domain.Alert, owners OwnerIndex) string {
	if alert.HouseholdUserID != "" {
		return alert.HouseholdUserID
	}
	if alert.DeviceID == "" {
		return ""
	}
	return owners[alert.DeviceID]
}

// HouseholdEmail resolves the display email for an alert: explicit alert field, then
// device owner joined to the email index, else Unassigned.
func HouseholdEmail(alert domain.Alert, owners OwnerIndex, emails EmailIndex) string {
	if alert.HouseholdEmail != "" {
		return alert.HouseholdEmail
	}
	if email := emails[HouseholdUserID(alert, owners)]; email != "" {
		return email
	}
	return Unassigned
}
