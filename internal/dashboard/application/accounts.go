package application

import (
	"context"

	"ultracare-admin/internal/dashboard/normalize"
	"ultracare-admin/internal/dashboard/views"
)

// AccountsData is the derived state of the household admins and users pages.
type AccountsData struct {
	Rows []views.UserRow
}

// Toggle asks to enable or disable one account.
type Toggle struct {
	ID        string
	Disable   bool
	Confirmed bool
	AdminID   string
}

// ToggleConfirmation is the question asked before a household toggle.
func ToggleConfirmation(disable bool) string {
	if disable {
		return "Disable this household admin? They won't be able to use the app."
	}
	return "Enable this household admin?"
}

// UserToggleConfirmation is the question asked before a user toggle.
func UserToggleConfirmation(disable bool) string {
	if disable {
		return "Disable this user? They won't be able to sign in."
	}
	return "Enable this user?"
}

// Households loads household admin accounts.
func (p *Pages) Households(adminID string) *Controller[AccountsData] {
	return NewController(PageHouseholds, "Failed to load household admins", func(ctx context.Context) (AccountsData, error) {
		raw, err := p.api.HouseholdAdmins(ctx)
		if err != nil {
			return AccountsData{}, err
		}
		return AccountsData{Rows: views.BuildUserRows(normalize.HouseholdAdmins(raw), adminID)}, nil
	}, p.logger)
}

// ToggleHousehold enables or disables a household admin.
func (p *Pages) ToggleHousehold(ctx context.Context, c *Controller[AccountsData], toggle Toggle) (Outcome, error) {
	if err := checkToggle(toggle); err != nil {
		return Rejected(err), err
	}
	return Mutate(ctx, c, Mutation{
		Action:    "household_status",
		Confirmed: toggle.Confirmed,
		Write: func(ctx context.Context) error {
			_, err := p.api.SetHouseholdAdminDisabled(ctx, toggle.ID, toggle.Disable)
			return err
		},
		Success: toggleNotice("Household admin", toggle.Disable),
		Failure: "Failed to update status",
	})
}

// Users loads all user accounts.
func (p *Pages) Users(adminID string) *Controller[AccountsData] {
	return NewController(PageUsers, "Failed to load users", func(ctx context.Context) (AccountsData, error) {
		raw, err := p.api.AdminUsers(ctx)
		if err != nil {
			return AccountsData{}, err
		}
		return AccountsData{Rows: views.BuildUserRows(normalize.AdminUsers(raw), adminID)}, nil
	}, p.logger)
}

// ToggleUser enables or disables a user.
func (p *Pages) ToggleUser(ctx context.Context, c *Controller[AccountsData], toggle Toggle) (Outcome, error) {
	if err := checkToggle(toggle); err != nil {
		return Rejected(err), err
	}
	return Mutate(ctx, c, Mutation{
		Action:    "user_status",
		Confirmed: toggle.Confirmed,
		Write: func(ctx context.Context) error {
			_, err := p.api.SetUserDisabled(ctx, toggle.ID, toggle.Disable)
			return err
		},
		Success: toggleNotice("User", toggle.Disable),
		Failure: "Failed to update status",
	})
}

func checkToggle(toggle Toggle) error {
	if toggle.ID == "" {
		return ErrMissingID
	}
	if toggle.Disable && toggle.AdminID != "" && toggle.ID == toggle.AdminID {
		return ErrSelfDisable
	}
	return nil
}

func toggleNotice(subject string, disable bool) string {
	if disable {
		return subject + " disabled."
	}
	return subject + " enabled."
}
