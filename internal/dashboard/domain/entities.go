package domain

// Plan is a subscription plan.
type Plan string

const (
	PlanFree Plan = "FREE"
	PlanPro  Plan = "PRO"
)

// SubscriptionStatus is the billing state of a subscription.
type SubscriptionStatus string

const (
	SubscriptionActive         SubscriptionStatus = "ACTIVE"
	SubscriptionPendingPayment SubscriptionStatus = "PENDING_PAYMENT"
)

// PlanOptions lists plans an operator may assign.
var PlanOptions = []Plan{PlanFree, PlanPro}

// SubscriptionStatusOptions lists statuses an operator may assign.
var SubscriptionStatusOptions = []SubscriptionStatus{SubscriptionActive, SubscriptionPendingPayment}

// Subscription is the plan attached to a user account.
type Subscription struct {
	Plan        Plan
	Status      SubscriptionStatus
	DeviceLimit *int
}

// User is an admin-visible account. Household admins share this shape.
type User struct {
	ID           string
	Key          string
	Email        string
	Name         string
	CreatedAt    string
	IsDisabled   bool
	Subscription *Subscription
}

// DeviceStatus is the derived connectivity state of a device.
type DeviceStatus string

const (
	DeviceOnline  DeviceStatus = "Online"
	DeviceOffline DeviceStatus = "Offline"
)

// Device is a monitoring device registered to a household.
type Device struct {
	ID          string
	Key         string
	DeviceID    string
	Name        string
	OwnerUserID string
	Room        string
	IsActive    bool
	LastSeenAt  string
	CreatedAt   string
}

// Status derives Online/Offline from the active flag.
func (d Device) Status() DeviceStatus {
	if d.IsActive {
		return DeviceOnline
	}
	return DeviceOffline
}

// AlertType is a normalized alert classification.
type AlertType string

const (
	AlertFallDetected    AlertType = "FALL_DETECTED"
	AlertNoMovement      AlertType = "NO_MOVEMENT"
	AlertUnusualActivity AlertType = "UNUSUAL_ACTIVITY"
	AlertUnknown         AlertType = "UNKNOWN"
)

// SupportedAlertTypes are the types shown in alert views.
var SupportedAlertTypes = []AlertType{AlertFallDetected, AlertNoMovement, AlertUnusualActivity}

// IsSupported reports whether the type is one of the three displayed types.
func (t AlertType) IsSupported() bool {
	for _, supported := range SupportedAlertTypes {
		if t == supported {
			return true
		}
	}
	return false
}

// AlertStatus drives badge styling only.
type AlertStatus string

const (
	AlertStatusNew          AlertStatus = "NEW"
	AlertStatusAcknowledged AlertStatus = "ACKNOWLEDGED"
	AlertStatusResolved     AlertStatus = "RESOLVED"
	AlertStatusUnknown      AlertStatus = "UNKNOWN"
)

// Alert is a safety event raised by a device.
type Alert struct {
	ID              string
	Key             string
	Type            AlertType
	Timestamp       string
	DeviceID        string
	DeviceLabel     string
	HouseholdUserID string
	HouseholdEmail  string
	HouseholdName   string
	Resident        string
	Confidence      *float64
	Status          AlertStatus
}

// ServiceHealthEntry is the status of one platform service.
type ServiceHealthEntry struct {
	Service string
	OK      bool
	Status  string
}

// Health is the normalized /health payload.
type Health struct {
	Services  []ServiceHealthEntry
	CheckedAt string
}

// AllHealthy is true when at least one service reported and none is down.
func (h Health) AllHealthy() bool {
	if len(h.Services) == 0 {
		return false
	}
	for _, svc := range h.Services {
		if !svc.OK {
			return false
		}
	}
	return true
}

// Stats holds platform counters from /admin/stats.
type Stats struct {
	TotalHouseholdAdmins   float64
	ActiveProSubscriptions float64
	TotalDevices           float64
	AlertsToday            float64
	RecentAlerts           []Alert
}

// MonthLabels are the chart labels for monthly falls, January first.
var MonthLabels = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// MonthlyFallsPoint is one bar of the monthly falls chart. Falls is nil when the
// backend sent fewer than twelve values.
type MonthlyFallsPoint struct {
	Month string
	Falls *float64
}

// AccountSubscription is the signed-in account's own subscription.
type AccountSubscription struct {
	Plan        string
	Status      string
	DeviceLimit *int
}
