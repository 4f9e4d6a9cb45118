package normalize

import (
	"strings"

	"ultracare-admin/internal/dashboard/domain"
)

// ReservedHealthKeys are top-level /health keys that never describe a service.
var ReservedHealthKeys = map[string]struct{}{
	"ok":        {},
	"status":    {},
	"message":   {},
	"services":  {},
	"timestamp": {},
	"checkedAt": {},
}

// HealthSources lists the source accessors used for health payloads.
var HealthSources = struct {
	Service   []Accessor
	Status    []Accessor
	OK        []Accessor
	CheckedAt []Accessor
}{
	Service:   []Accessor{Field("service"), Field("name")},
	Status:    []Accessor{Field("status")},
	OK:        []Accessor{Field("ok"), Field("healthy")},
	CheckedAt: []Accessor{Field("checkedAt"), Field("timestamp")},
}

const (
	healthLabelUp   = "Operational"
	healthLabelDown = "Down"
)

// Health normalizes a /health payload. An array under "services" is mapped entry by
// entry; otherwise every non-reserved boolean, string or object entry of the flat
// object becomes one service row, in source order.
func Health(raw []byte) domain.Health {
	root := asObject(Decode(raw))
	out := domain.Health{
		Services:  []domain.ServiceHealthEntry{},
		CheckedAt: ProbeString(root, HealthSources.CheckedAt, ""),
	}
	if root == nil {
		return out
	}

	if list, ok := root["services"].([]any); ok {
		for _, item := range list {
			obj := asObject(item)
			if obj == nil {
				continue
			}
			entry := serviceFromObject(obj)
			entry.Service = ProbeString(obj, HealthSources.Service, "-")
			out.Services = append(out.Services, entry)
		}
		return out
	}

	for _, key := range objectKeys(raw) {
		if _, reserved := ReservedHealthKeys[key]; reserved {
			continue
		}
		var entry domain.ServiceHealthEntry
		switch value := root[key].(type) {
		case bool:
			entry = domain.ServiceHealthEntry{OK: value, Status: label(value)}
		case string:
			entry = domain.ServiceHealthEntry{OK: !isDown(value), Status: value}
		case map[string]any:
			entry = serviceFromObject(value)
		default:
			continue
		}
		entry.Service = key
		out.Services = append(out.Services, entry)
	}
	return out
}

func serviceFromObject(obj map[string]any) domain.ServiceHealthEntry {
	status := ProbeString(obj, HealthSources.Status, "")
	entry := domain.ServiceHealthEntry{Status: status}
	if value, ok := Probe(obj, HealthSources.OK); ok {
		if flag, isBool := value.(bool); isBool {
			entry.OK = flag
		} else {
			entry.OK = !isDown(status)
		}
	} else {
		entry.OK = !isDown(status)
	}
	if entry.Status == "" {
		entry.Status = label(entry.OK)
	}
	return entry
}

func isDown(status string) bool {
	return strings.ToLower(status) == "down"
}

func label(ok bool) string {
	if ok {
		return healthLabelUp
	}
	return healthLabelDown
}
