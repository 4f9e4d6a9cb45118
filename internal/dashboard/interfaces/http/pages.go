package http

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"ultracare-admin/internal/audit"
	"ultracare-admin/internal/auth"
	"ultracare-admin/internal/dashboard/application"
	"ultracare-admin/internal/dashboard/views"
)

// accountsView feeds the shared household admins and users template.
type accountsView struct {
	application.AccountsData
	BasePath string
}

func accountsWrapper(base string) func(application.AccountsData) any {
	return func(data application.AccountsData) any {
		return accountsView{AccountsData: data, BasePath: base}
	}
}

func (h *Handler) handleOverview(w http.ResponseWriter, r *http.Request) {
	c := h.pageFor(r).Overview()
	defer c.Close()
	renderSnapshot(h, w, r, application.PageOverview, application.PageOverview, c.Load(r.Context()), nil, identity[application.OverviewData])
}

func (h *Handler) handleHouseholds(w http.ResponseWriter, r *http.Request) {
	c := h.pageFor(r).Households(auth.AdminIDFromContext(r.Context()))
	defer c.Close()
	renderSnapshot(h, w, r, "accounts", application.PageHouseholds, c.Load(r.Context()), nil, accountsWrapper("/households"))
}

func (h *Handler) handleUsers(w http.ResponseWriter, r *http.Request) {
	c := h.pageFor(r).Users(auth.AdminIDFromContext(r.Context()))
	defer c.Close()
	renderSnapshot(h, w, r, "accounts", application.PageUsers, c.Load(r.Context()), nil, accountsWrapper("/users"))
}

func (h *Handler) handleDevices(w http.ResponseWriter, r *http.Request) {
	c := h.pageFor(r).Devices()
	defer c.Close()
	renderSnapshot(h, w, r, application.PageDevices, application.PageDevices, c.Load(r.Context()), nil, identity[views.DevicesView])
}

func (h *Handler) handleAlerts(w http.ResponseWriter, r *http.Request) {
	c := h.pageFor(r).Alerts(r.URL.Query().Get("type"))
	defer c.Close()
	renderSnapshot(h, w, r, application.PageAlerts, application.PageAlerts, c.Load(r.Context()), nil, identity[views.AlertsView])
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	c := h.pageFor(r).Health()
	defer c.Close()
	renderSnapshot(h, w, r, application.PageHealth, application.PageHealth, c.Load(r.Context()), nil, identity[application.HealthData])
}

func (h *Handler) handleSettings(w http.ResponseWriter, r *http.Request) {
	c := h.pageFor(r).Settings(auth.AdminIDFromContext(r.Context()), h.conn)
	defer c.Close()
	renderSnapshot(h, w, r, application.PageSettings, application.PageSettings, c.Load(r.Context()), nil, identity[application.SettingsData])
}

// handleSubscriptions renders the table. A valid edit/plan/status query previews
// that draft for one row.
func (h *Handler) handleSubscriptions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	var (
		edit    *application.DraftEdit
		notices []auth.Notice
	)
	if key := query.Get("edit"); key != "" {
		draft, err := views.ParseDraft(query.Get("plan"), query.Get("status"))
		if err != nil {
			notices = append(notices, auth.Notice{Kind: auth.NoticeError, Message: "Unknown plan or status."})
		} else {
			edit = &application.DraftEdit{Key: key, Draft: draft}
		}
	}
	c := h.pageFor(r).Subscriptions(edit)
	defer c.Close()
	renderSnapshot(h, w, r, application.PageSubscriptions, application.PageSubscriptions, c.Load(r.Context()), notices, identity[application.SubscriptionsData])
}

// confirmView is the question asked before a write.
type confirmView struct {
	Question string
	Action   string
	Cancel   string
	Fields   []confirmField
}

type confirmField struct {
	Name  string
	Value string
}

func (h *Handler) renderConfirm(w http.ResponseWriter, r *http.Request, page string, data confirmView) {
	h.render(w, r, templateConfirm, view{Page: page, ShowNav: true, Data: data})
}

func parseDisable(r *http.Request) bool {
	value := r.FormValue("disable")
	disable, err := strconv.ParseBool(value)
	if err != nil {
		return false
	}
	return disable
}

func (h *Handler) handleHouseholdConfirm(w http.ResponseWriter, r *http.Request) {
	h.confirmToggle(w, r, application.PageHouseholds, "/households", application.ToggleConfirmation)
}

func (h *Handler) handleUserConfirm(w http.ResponseWriter, r *http.Request) {
	h.confirmToggle(w, r, application.PageUsers, "/users", application.UserToggleConfirmation)
}

func (h *Handler) confirmToggle(w http.ResponseWriter, r *http.Request, page, base string, question func(bool) string) {
	id := mux.Vars(r)["id"]
	disable := parseDisable(r)
	if disable && id == auth.AdminIDFromContext(r.Context()) {
		h.sessions.AddNotice(r, auth.Notice{Kind: auth.NoticeError, Message: application.Rejected(application.ErrSelfDisable).Message})
		h.saveAndRedirect(w, r, base)
		return
	}
	h.renderConfirm(w, r, page, confirmView{
		Question: question(disable),
		Action:   base + "/" + url.PathEscape(id) + "/status",
		Cancel:   base,
		Fields:   []confirmField{{Name: "disable", Value: strconv.FormatBool(disable)}},
	})
}

func (h *Handler) handleHouseholdToggle(w http.ResponseWriter, r *http.Request) {
	pages := h.pageFor(r)
	c := pages.Households(auth.AdminIDFromContext(r.Context()))
	defer c.Close()
	h.toggle(w, r, c, application.PageHouseholds, "/households", "household_admin", pages.ToggleHousehold)
}

func (h *Handler) handleUserToggle(w http.ResponseWriter, r *http.Request) {
	pages := h.pageFor(r)
	c := pages.Users(auth.AdminIDFromContext(r.Context()))
	defer c.Close()
	h.toggle(w, r, c, application.PageUsers, "/users", "user", pages.ToggleUser)
}

type toggleFunc func(ctx context.Context, c *application.Controller[application.AccountsData], toggle application.Toggle) (application.Outcome, error)

// toggle loads the committed rows, runs the write and renders the refetched page
// with the outcome notice.
func (h *Handler) toggle(w http.ResponseWriter, r *http.Request, c *application.Controller[application.AccountsData], page, base, resource string, run toggleFunc) {
	snapshot := c.Load(r.Context())
	if snapshot.State != application.StateReady {
		renderSnapshot(h, w, r, "accounts", page, snapshot, nil, accountsWrapper(base))
		return
	}
	toggle := application.Toggle{
		ID:        mux.Vars(r)["id"],
		Disable:   parseDisable(r),
		Confirmed: r.FormValue("confirm") == "yes",
		AdminID:   auth.AdminIDFromContext(r.Context()),
	}
	outcome, err := run(r.Context(), c, toggle)
	if err != nil {
		outcome = application.Rejected(err)
	}
	h.record(r, resource+"_status", resource, toggle.ID, map[string]bool{"isDisabled": toggle.Disable}, outcome, err)
	if outcome.LoginRedirect {
		h.redirectToLogin(w, r)
		return
	}
	renderSnapshot(h, w, r, "accounts", page, c.Snapshot(), outcomeNotices(outcome), accountsWrapper(base))
}

func (h *Handler) handleSubscriptionConfirm(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	draft, err := views.ParseDraft(r.FormValue("plan"), r.FormValue("status"))
	if err != nil {
		h.sessions.AddNotice(r, auth.Notice{Kind: auth.NoticeError, Message: "Unknown plan or status."})
		h.saveAndRedirect(w, r, "/subscriptions")
		return
	}
	h.renderConfirm(w, r, application.PageSubscriptions, confirmView{
		Question: application.SubscriptionConfirmation,
		Action:   "/subscriptions/" + url.PathEscape(id),
		Cancel:   "/subscriptions",
		Fields: []confirmField{
			{Name: "plan", Value: string(draft.Plan)},
			{Name: "status", Value: string(draft.Status)},
		},
	})
}

func (h *Handler) handleSubscriptionApply(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	draft, err := views.ParseDraft(r.FormValue("plan"), r.FormValue("status"))
	if err != nil {
		h.sessions.AddNotice(r, auth.Notice{Kind: auth.NoticeError, Message: "Unknown plan or status."})
		h.saveAndRedirect(w, r, "/subscriptions")
		return
	}
	pages := h.pageFor(r)
	c := pages.Subscriptions(nil)
	defer c.Close()
	snapshot := c.Load(r.Context())
	if snapshot.State != application.StateReady {
		renderSnapshot(h, w, r, application.PageSubscriptions, application.PageSubscriptions, snapshot, nil, identity[application.SubscriptionsData])
		return
	}
	outcome, err := pages.ApplySubscription(r.Context(), c, id, draft, r.FormValue("confirm") == "yes")
	if err != nil {
		outcome = application.Rejected(err)
	}
	h.record(r, "subscription", "user", id, map[string]string{"plan": string(draft.Plan), "status": string(draft.Status)}, outcome, err)
	if outcome.LoginRedirect {
		h.redirectToLogin(w, r)
		return
	}
	renderSnapshot(h, w, r, application.PageSubscriptions, application.PageSubscriptions, c.Snapshot(), outcomeNotices(outcome), identity[application.SubscriptionsData])
}

func (h *Handler) saveAndRedirect(w http.ResponseWriter, r *http.Request, target string) {
	if err := h.sessions.Save(r, w); err != nil {
		h.logger.Warn().Err(err).Msg("session save failed")
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// record adds a mutation attempt to the audit trail. Unconfirmed attempts are
// not operator actions and are skipped.
func (h *Handler) record(r *http.Request, action, resource, id string, payload any, outcome application.Outcome, err error) {
	if errors.Is(err, application.ErrNotConfirmed) {
		return
	}
	result := audit.ResultFailed
	switch {
	case err != nil:
		result = audit.ResultRejected
	case outcome.LoginRedirect && !outcome.OK:
		result = audit.ResultUnauthorized
	case outcome.OK:
		result = audit.ResultApplied
	}
	entry := audit.Entry{
		Actor:        auth.AdminIDFromContext(r.Context()),
		Action:       action,
		ResourceType: resource,
		ResourceID:   id,
		Result:       result,
		Metadata:     audit.Metadata(payload),
		IP:           r.RemoteAddr,
		UserAgent:    r.UserAgent(),
	}
	if err := h.audit.Log(r.Context(), entry); err != nil {
		h.logger.Warn().Err(err).Str("action", action).Msg("audit log failed")
	}
}
