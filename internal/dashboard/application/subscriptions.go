package application

import (
	"context"

	"ultracare-admin/internal/dashboard/domain"
	"ultracare-admin/internal/dashboard/normalize"
	"ultracare-admin/internal/dashboard/views"
)

// SubscriptionConfirmation is the question asked before saving a draft.
const SubscriptionConfirmation = "Save subscription changes for this user?"

// DraftEdit is a pending plan/status choice for one user.
type DraftEdit struct {
	Key   string
	Draft views.SubscriptionDraft
}

// SubscriptionsData is the derived state of the subscriptions page.
type SubscriptionsData struct {
	Rows          []views.SubscriptionRow
	PlanOptions   []domain.Plan
	StatusOptions []domain.SubscriptionStatus
	Editing       string

	book *views.DraftBook
}

// Subscriptions loads users with their plans. The book carries drafts across
// refetches of this controller; edit, when set, is applied after each fetch.
func (p *Pages) Subscriptions(edit *DraftEdit) *Controller[SubscriptionsData] {
	book := views.NewDraftBook()
	return NewController(PageSubscriptions, "Failed to load subscriptions", func(ctx context.Context) (SubscriptionsData, error) {
		raw, err := p.api.AdminUsers(ctx)
		if err != nil {
			return SubscriptionsData{}, err
		}
		users := normalize.AdminUsers(raw)
		book.Commit(users)
		data := SubscriptionsData{
			PlanOptions:   domain.PlanOptions,
			StatusOptions: domain.SubscriptionStatusOptions,
			book:          book,
		}
		if edit != nil && hasUser(users, edit.Key) {
			book.Edit(edit.Key, edit.Draft)
			data.Editing = edit.Key
		}
		data.Rows = views.BuildSubscriptionRows(users, book)
		return data, nil
	}, p.logger)
}

// ApplySubscription saves a changed draft. The controller must have loaded.
func (p *Pages) ApplySubscription(ctx context.Context, c *Controller[SubscriptionsData], id string, draft views.SubscriptionDraft, confirmed bool) (Outcome, error) {
	snapshot := c.Snapshot()
	switch {
	case snapshot.State == StateLoginRedirect:
		return Outcome{LoginRedirect: true}, nil
	case snapshot.State != StateReady || snapshot.Data.book == nil:
		return Outcome{Message: snapshot.Err}, nil
	}
	if id == "" {
		return Rejected(ErrMissingID), ErrMissingID
	}
	book := snapshot.Data.book
	book.Edit(id, draft)
	if !book.IsChanged(id) {
		book.Reset(id)
		return Rejected(ErrDraftUnchanged), ErrDraftUnchanged
	}
	outcome, err := Mutate(ctx, c, Mutation{
		Action:    "subscription",
		Confirmed: confirmed,
		Write: func(ctx context.Context) error {
			_, err := p.api.UpdateUserSubscription(ctx, id, draft.Plan, draft.Status)
			return err
		},
		Success: "Subscription updated. Plan and status saved successfully.",
		Failure: "Could not update subscription.",
	})
	if outcome.OK {
		book.Reset(id)
	}
	return outcome, err
}

func hasUser(users []domain.User, key string) bool {
	for _, user := range users {
		if user.Key == key {
			return true
		}
	}
	return false
}
