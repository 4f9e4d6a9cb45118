package normalize

import (
	"strconv"

	"ultracare-admin/internal/dashboard/domain"
)

// DeviceEnvelope is the list envelope priority for device listings.
var DeviceEnvelope = []string{"devices", "data"}

// DeviceSources lists the source accessors for each canonical device field.
var DeviceSources = struct {
	ID         []Accessor
	DeviceID   []Accessor
	Name       []Accessor
	Owner      []Accessor
	Room       []Accessor
	Active     []Accessor
	LastSeenAt []Accessor
	CreatedAt  []Accessor
}{
	ID:         []Accessor{Field("id"), Field("_id")},
	DeviceID:   []Accessor{Field("deviceId"), Field("device_id"), Field("id")},
	Name:       []Accessor{Field("name")},
	Owner:      []Accessor{Field("userId"), Field("ownerUserId"), Field("ownerId"), Path("user", "id")},
	Room:       []Accessor{Field("room"), Field("location")},
	Active:     []Accessor{Field("isActive"), Field("active")},
	LastSeenAt: []Accessor{Field("lastSeenAt"), Field("lastSeen")},
	CreatedAt:  []Accessor{Field("createdAt"), Field("created_at")},
}

// Devices normalizes /admin/devices and /app/devices payloads.
func Devices(raw []byte) []domain.Device {
	list := List(Decode(raw), DeviceEnvelope...)
	out := make([]domain.Device, 0, len(list))
	for i, item := range list {
		out = append(out, deviceFromRow(asObject(item), i))
	}
	return out
}

func deviceFromRow(row map[string]any, index int) domain.Device {
	device := domain.Device{
		ID:          ProbeString(row, DeviceSources.ID, ""),
		DeviceID:    ProbeString(row, DeviceSources.DeviceID, "-"),
		Name:        ProbeString(row, DeviceSources.Name, "-"),
		OwnerUserID: ProbeString(row, DeviceSources.Owner, ""),
		Room:        ProbeString(row, DeviceSources.Room, "-"),
		IsActive:    ProbeTruthy(row, DeviceSources.Active),
		LastSeenAt:  ProbeString(row, DeviceSources.LastSeenAt, ""),
		CreatedAt:   ProbeString(row, DeviceSources.CreatedAt, ""),
	}
	switch {
	case device.ID != "":
		device.Key = device.ID
	case device.DeviceID != "-":
		device.Key = device.DeviceID
	default:
		device.Key = "row-" + strconv.Itoa(index)
	}
	return device
}
