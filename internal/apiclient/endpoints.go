package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"ultracare-admin/internal/dashboard/domain"
	"ultracare-admin/internal/dashboard/normalize"
)

// SignupRequest is the body of an admin signup.
type SignupRequest struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates and stores the returned token.
func (c *Client) Login(ctx context.Context, email, password string) (json.RawMessage, error) {
	body := map[string]string{"email": email, "password": password}
	raw, err := c.do(ctx, "auth_login", http.MethodPost, "/auth/login", body)
	if err != nil {
		return nil, err
	}
	token, ok := normalize.Token(raw)
	if !ok {
		return raw, ErrNoToken
	}
	c.tokens.Set(token)
	return raw, nil
}

// Signup registers an admin. A token in the response is stored; its absence is
// not an error.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (json.RawMessage, bool, error) {
	raw, err := c.do(ctx, "auth_signup", http.MethodPost, "/auth/signup", req)
	if err != nil {
		return nil, false, err
	}
	token, ok := normalize.Token(raw)
	if ok {
		c.tokens.Set(token)
	}
	return raw, ok, nil
}

// AdminStats fetches platform counters and recent alerts.
func (c *Client) AdminStats(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, "admin_stats", http.MethodGet, "/admin/stats", nil)
}

// AdminUsers lists all users.
func (c *Client) AdminUsers(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, "admin_users", http.MethodGet, "/admin/users", nil)
}

// SetUserDisabled toggles a user's account.
func (c *Client) SetUserDisabled(ctx context.Context, id string, disabled bool) (json.RawMessage, error) {
	body := map[string]bool{"isDisabled": disabled}
	return c.do(ctx, "admin_user_status", http.MethodPatch, "/admin/users/"+url.PathEscape(id)+"/status", body)
}

// UpdateUserSubscription writes a user's plan and status.
func (c *Client) UpdateUserSubscription(ctx context.Context, id string, plan domain.Plan, status domain.SubscriptionStatus) (json.RawMessage, error) {
	body := map[string]string{"plan": string(plan), "status": string(status)}
	return c.do(ctx, "admin_user_subscription", http.MethodPatch, "/admin/users/"+url.PathEscape(id)+"/subscription", body)
}

// HouseholdAdmins lists household admin accounts.
func (c *Client) HouseholdAdmins(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, "household_admins", http.MethodGet, "/household-admins", nil)
}

// SetHouseholdAdminDisabled toggles a household admin's account.
func (c *Client) SetHouseholdAdminDisabled(ctx context.Context, id string, disabled bool) (json.RawMessage, error) {
	body := map[string]bool{"isDisabled": disabled}
	return c.do(ctx, "household_admin_status", http.MethodPatch, "/household-admins/"+url.PathEscape(id)+"/status", body)
}

// AdminDevices lists every registered device.
func (c *Client) AdminDevices(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, "admin_devices", http.MethodGet, "/admin/devices", nil)
}

// AppDevices lists devices through the app endpoint used for the owner join.
func (c *Client) AppDevices(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, "app_devices", http.MethodGet, "/app/devices", nil)
}

// MonthlyFalls fetches the per-month fall counts.
func (c *Client) MonthlyFalls(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, "falls_monthly", http.MethodGet, "/admin/falls/monthly", nil)
}

// Alerts lists alerts from the configured alerts path.
func (c *Client) Alerts(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, "alerts", http.MethodGet, c.alertsPath, nil)
}

// Health fetches backend service health.
func (c *Client) Health(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, "health", http.MethodGet, "/health", nil)
}

// CurrentSubscription fetches the signed-in account's subscription.
func (c *Client) CurrentSubscription(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, "subscription", http.MethodGet, "/subscription", nil)
}
