package views

import (
	"errors"
	"strings"

	"ultracare-admin/internal/dashboard/domain"
)

// ErrInvalidDraft is returned for a plan or status outside the allowed options.
var ErrInvalidDraft = errors.New("views: invalid subscription draft")

// SubscriptionDraft is an editable plan/status pair.
type SubscriptionDraft struct {
	Plan   domain.Plan
	Status domain.SubscriptionStatus
}

// CommittedDraft is the draft a user starts from: their current subscription with
// FREE / PENDING_PAYMENT filling gaps.
func CommittedDraft(user domain.User) SubscriptionDraft {
	draft := SubscriptionDraft{Plan: domain.PlanFree, Status: domain.SubscriptionPendingPayment}
	if user.Subscription == nil {
		return draft
	}
	if user.Subscription.Plan != "" {
		draft.Plan = user.Subscription.Plan
	}
	if user.Subscription.Status != "" {
		draft.Status = user.Subscription.Status
	}
	return draft
}

// ParseDraft validates form values against the plan and status options.
func ParseDraft(plan, status string) (SubscriptionDraft, error) {
	draft := SubscriptionDraft{
		Plan:   domain.Plan(strings.ToUpper(strings.TrimSpace(plan))),
		Status: domain.SubscriptionStatus(strings.ToUpper(strings.TrimSpace(status))),
	}
	validPlan := false
	for _, option := range domain.PlanOptions {
		if draft.Plan == option {
			validPlan = true
		}
	}
	validStatus := false
	for _, option := range domain.SubscriptionStatusOptions {
		if draft.Status == option {
			validStatus = true
		}
	}
	if !validPlan || !validStatus {
		return SubscriptionDraft{}, ErrInvalidDraft
	}
	return draft, nil
}

// DraftBook tracks edit drafts against the last fetched committed values. It is
// owned by one page controller and is not safe for concurrent use.
type DraftBook struct {
	committed map[string]SubscriptionDraft
	drafts    map[string]SubscriptionDraft
}

// NewDraftBook returns an empty book.
func NewDraftBook() *DraftBook {
	return &DraftBook{
		committed: make(map[string]SubscriptionDraft),
		drafts:    make(map[string]SubscriptionDraft),
	}
}

// Commit replaces the committed values with a fresh fetch. Drafts for users that
// disappeared are dropped; other drafts survive the refetch.
func (b *DraftBook) Commit(users []domain.User) {
	committed := make(map[string]SubscriptionDraft, len(users))
	for _, user := range users {
		committed[user.Key] = CommittedDraft(user)
	}
	for key := range b.drafts {
		if _, ok := committed[key]; !ok {
			delete(b.drafts, key)
		}
	}
	b.committed = committed
}

// Edit records a draft for a user.
func (b *DraftBook) Edit(key string, draft SubscriptionDraft) {
	b.drafts[key] = draft
}

// Draft returns the pending draft, or the committed value when there is none.
func (b *DraftBook) Draft(key string) SubscriptionDraft {
	if draft, ok := b.drafts[key]; ok {
		return draft
	}
	return b.committed[key]
}

// Committed returns the last fetched value.
func (b *DraftBook) Committed(key string) SubscriptionDraft {
	return b.committed[key]
}

// IsChanged reports whether the draft differs from the committed value. Apply is
// only offered when it does.
func (b *DraftBook) IsChanged(key string) bool {
	draft, ok := b.drafts[key]
	if !ok {
		return false
	}
	return draft != b.committed[key]
}

// Reset discards a draft.
func (b *DraftBook) Reset(key string) {
	delete(b.drafts, key)
}

// SubscriptionRow is one rendered line of the subscriptions table.
type SubscriptionRow struct {
	Key           string
	ID            string
	Email         string
	CurrentPlan   string
	CurrentStatus string
	Draft         SubscriptionDraft
	Changed       bool
}

// BuildSubscriptionRows joins users with their drafts.
func BuildSubscriptionRows(users []domain.User, book *DraftBook) []SubscriptionRow {
	rows := make([]SubscriptionRow, 0, len(users))
	for _, user := range users {
		row := SubscriptionRow{
			Key:           user.Key,
			ID:            user.ID,
			Email:         user.Email,
			CurrentPlan:   "-",
			CurrentStatus: "-",
			Draft:         book.Draft(user.Key),
			Changed:       book.IsChanged(user.Key),
		}
		if user.Subscription != nil {
			row.CurrentPlan = OrDash(string(user.Subscription.Plan))
			row.CurrentStatus = OrDash(string(user.Subscription.Status))
		}
		rows = append(rows, row)
	}
	return rows
}
