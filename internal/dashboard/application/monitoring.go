package application

import (
	"context"
	"encoding/json"

	"golang.org/x/sync/errgroup"

	"ultracare-admin/internal/apiclient"
	"ultracare-admin/internal/dashboard/domain"
	"ultracare-admin/internal/dashboard/normalize"
	"ultracare-admin/internal/dashboard/views"
)

// Devices loads the device registry.
func (p *Pages) Devices() *Controller[views.DevicesView] {
	return NewController(PageDevices, "Failed to load devices", func(ctx context.Context) (views.DevicesView, error) {
		raw, err := p.api.AdminDevices(ctx)
		if err != nil {
			return views.DevicesView{}, err
		}
		return views.BuildDevicesView(normalize.Devices(raw)), nil
	}, p.logger)
}

// Alerts loads alerts together with the device and household lists used to
// resolve household emails. The two join lists fall back to empty on any error
// except 401.
func (p *Pages) Alerts(filter string) *Controller[views.AlertsView] {
	return NewController(PageAlerts, "Failed to load alerts", func(ctx context.Context) (views.AlertsView, error) {
		var (
			alerts  []domain.Alert
			devices []domain.Device
			admins  []domain.User
		)
		group, gctx := errgroup.WithContext(ctx)
		group.Go(func() error {
			raw, err := p.api.Alerts(gctx)
			if err != nil {
				return err
			}
			alerts = normalize.Alerts(raw)
			return nil
		})
		group.Go(func() error {
			raw, err := p.optional(gctx, "app devices", p.api.AppDevices)
			devices = normalize.Devices(raw)
			return err
		})
		group.Go(func() error {
			raw, err := p.optional(gctx, "household admins", p.api.HouseholdAdmins)
			admins = normalize.HouseholdAdmins(raw)
			return err
		})
		if err := group.Wait(); err != nil {
			return views.AlertsView{}, err
		}
		return views.BuildAlertsView(alerts, devices, admins, filter), nil
	}, p.logger)
}

// optional runs a supplementary fetch, swallowing every failure but 401.
func (p *Pages) optional(ctx context.Context, what string, fetch func(context.Context) (json.RawMessage, error)) (json.RawMessage, error) {
	raw, err := fetch(ctx)
	if err == nil {
		return raw, nil
	}
	if apiclient.IsUnauthorized(err) {
		return nil, err
	}
	if ctx.Err() == nil {
		p.logger.Warn().Err(err).Msgf("%s unavailable, continuing without", what)
	}
	return nil, nil
}

// HealthData is the derived state of the system health page.
type HealthData struct {
	Services   []domain.ServiceHealthEntry
	AllHealthy bool
	CheckedAt  string
}

// Health loads backend service status.
func (p *Pages) Health() *Controller[HealthData] {
	return NewController(PageHealth, "Failed to load system health", func(ctx context.Context) (HealthData, error) {
		raw, err := p.api.Health(ctx)
		if err != nil {
			return HealthData{}, err
		}
		health := normalize.Health(raw)
		return HealthData{
			Services:   health.Services,
			AllHealthy: health.AllHealthy(),
			CheckedAt:  views.FormatDateTime(health.CheckedAt),
		}, nil
	}, p.logger)
}

// Connection describes how the dashboard reaches the backend.
type Connection struct {
	BaseURL    string
	HasAPIKey  bool
	AlertsPath string
	Timezone   string
}

// SettingsData is the derived state of the settings page.
type SettingsData struct {
	AdminID            string
	Subscription       domain.AccountSubscription
	SubscriptionLoaded bool
	Connection         Connection
}

// Settings loads the signed-in account's subscription next to the connection
// details. A subscription failure other than 401 leaves it unloaded.
func (p *Pages) Settings(adminID string, conn Connection) *Controller[SettingsData] {
	return NewController(PageSettings, "Failed to load settings", func(ctx context.Context) (SettingsData, error) {
		data := SettingsData{AdminID: adminID, Connection: conn}
		raw, err := p.optional(ctx, "account subscription", p.api.CurrentSubscription)
		if err != nil {
			return SettingsData{}, err
		}
		if raw != nil {
			data.Subscription = normalize.AccountSubscription(raw)
			data.SubscriptionLoaded = true
		}
		return data, nil
	}, p.logger)
}
