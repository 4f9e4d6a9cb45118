package application

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"ultracare-admin/internal/dashboard/domain"
)

// API is the slice of the UltraCare client the pages use.
type API interface {
	AdminStats(ctx context.Context) (json.RawMessage, error)
	MonthlyFalls(ctx context.Context) (json.RawMessage, error)
	AdminUsers(ctx context.Context) (json.RawMessage, error)
	SetUserDisabled(ctx context.Context, id string, disabled bool) (json.RawMessage, error)
	UpdateUserSubscription(ctx context.Context, id string, plan domain.Plan, status domain.SubscriptionStatus) (json.RawMessage, error)
	HouseholdAdmins(ctx context.Context) (json.RawMessage, error)
	SetHouseholdAdminDisabled(ctx context.Context, id string, disabled bool) (json.RawMessage, error)
	AdminDevices(ctx context.Context) (json.RawMessage, error)
	AppDevices(ctx context.Context) (json.RawMessage, error)
	Alerts(ctx context.Context) (json.RawMessage, error)
	Health(ctx context.Context) (json.RawMessage, error)
	CurrentSubscription(ctx context.Context) (json.RawMessage, error)
}

// Page names, used for titles, routes and metrics.
const (
	PageOverview      = "overview"
	PageHouseholds    = "households"
	PageUsers         = "users"
	PageSubscriptions = "subscriptions"
	PageDevices       = "devices"
	PageAlerts        = "alerts"
	PageHealth        = "health"
	PageSettings      = "settings"
)

// Pages builds page controllers bound to one API session.
type Pages struct {
	api    API
	logger zerolog.Logger
}

// NewPages constructs the page set.
func NewPages(api API, logger zerolog.Logger) *Pages {
	return &Pages{api: api, logger: logger}
}
