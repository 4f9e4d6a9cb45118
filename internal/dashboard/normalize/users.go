package normalize

import (
	"strconv"
	"strings"

	"ultracare-admin/internal/dashboard/domain"
)

// Envelope keys in priority order. Changing the order changes which list wins when a
// backend sends more than one.
var (
	AdminUserEnvelope      = []string{"users", "data"}
	HouseholdAdminEnvelope = []string{"users", "householdAdmins", "admins", "data"}
)

// UserSources lists the source accessors for each canonical user field.
var UserSources = struct {
	ID           []Accessor
	Email        []Accessor
	Name         []Accessor
	CreatedAt    []Accessor
	Disabled     []Accessor
	Subscription []Accessor
}{
	ID:           []Accessor{Field("id"), Field("_id"), Field("userId")},
	Email:        []Accessor{Field("email")},
	Name:         []Accessor{Field("name"), Field("fullName")},
	CreatedAt:    []Accessor{Field("createdAt"), Field("created_at")},
	Disabled:     []Accessor{Field("isDisabled"), Field("disabled")},
	Subscription: []Accessor{Field("subscription")},
}

// SubscriptionSources lists the source accessors inside a subscription object.
var SubscriptionSources = struct {
	Plan        []Accessor
	Status      []Accessor
	DeviceLimit []Accessor
}{
	Plan:        []Accessor{Field("plan")},
	Status:      []Accessor{Field("status")},
	DeviceLimit: []Accessor{Field("deviceLimit"), Field("device_limit")},
}

// AdminUsers normalizes the /admin/users payload.
func AdminUsers(raw []byte) []domain.User {
	return users(List(Decode(raw), AdminUserEnvelope...))
}

// HouseholdAdmins normalizes the /household-admins payload.
func HouseholdAdmins(raw []byte) []domain.User {
	return users(List(Decode(raw), HouseholdAdminEnvelope...))
}

func users(list []any) []domain.User {
	out := make([]domain.User, 0, len(list))
	for i, item := range list {
		out = append(out, userFromRow(asObject(item), i))
	}
	return out
}

func userFromRow(row map[string]any, index int) domain.User {
	user := domain.User{
		ID:         ProbeString(row, UserSources.ID, ""),
		Email:      ProbeString(row, UserSources.Email, "-"),
		Name:       ProbeString(row, UserSources.Name, ""),
		CreatedAt:  ProbeString(row, UserSources.CreatedAt, ""),
		IsDisabled: ProbeTruthy(row, UserSources.Disabled),
	}
	if value, ok := Probe(row, UserSources.Subscription); ok {
		if obj := asObject(value); obj != nil {
			sub := subscriptionFromObject(obj)
			user.Subscription = &sub
		}
	}
	switch {
	case user.ID != "":
		user.Key = user.ID
	case user.Email != "-":
		user.Key = user.Email
	default:
		user.Key = "row-" + strconv.Itoa(index)
	}
	return user
}

func subscriptionFromObject(obj map[string]any) domain.Subscription {
	sub := domain.Subscription{
		Plan:   domain.Plan(strings.ToUpper(ProbeString(obj, SubscriptionSources.Plan, ""))),
		Status: domain.SubscriptionStatus(strings.ToUpper(ProbeString(obj, SubscriptionSources.Status, ""))),
	}
	if limit, ok := ProbeNumber(obj, SubscriptionSources.DeviceLimit); ok {
		n := int(limit)
		sub.DeviceLimit = &n
	}
	return sub
}

// AccountSubscriptionContainers lists where the current account's subscription may live.
var AccountSubscriptionContainers = []Accessor{
	Field("subscription"),
	Path("data", "subscription"),
	Field("data"),
}

// AccountSubscription normalizes the /subscription payload. A payload that is itself
// the subscription object is accepted too.
func AccountSubscription(raw []byte) domain.AccountSubscription {
	root := asObject(Decode(raw))
	container := root
	if value, ok := Probe(root, AccountSubscriptionContainers); ok {
		if obj := asObject(value); obj != nil {
			container = obj
		}
	}
	out := domain.AccountSubscription{
		Plan:   ProbeString(container, SubscriptionSources.Plan, "-"),
		Status: ProbeString(container, SubscriptionSources.Status, "-"),
	}
	if limit, ok := ProbeNumber(container, SubscriptionSources.DeviceLimit); ok {
		n := int(limit)
		out.DeviceLimit = &n
	}
	return out
}
