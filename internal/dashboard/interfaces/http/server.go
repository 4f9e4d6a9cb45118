// Package http serves the dashboard pages, the login flow and the exports.
package http

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"ultracare-admin/internal/apiclient"
	"ultracare-admin/internal/audit"
	"ultracare-admin/internal/auth"
	"ultracare-admin/internal/dashboard/application"
	"ultracare-admin/internal/observability/metrics"
)

//go:embed templates/*.html
var templateFiles embed.FS

const (
	templateLogin   = "login"
	templateSignup  = "signup"
	templateConfirm = "confirm"

	requestIDHeader = "X-Request-ID"
)

var templateNames = []string{
	application.PageOverview,
	"accounts",
	application.PageSubscriptions,
	application.PageDevices,
	application.PageAlerts,
	application.PageHealth,
	application.PageSettings,
	templateConfirm,
	templateLogin,
	templateSignup,
}

// Handler serves the dashboard.
type Handler struct {
	client    *apiclient.Client
	sessions  *auth.SessionStore
	templates map[string]*template.Template
	conn      application.Connection
	audit     audit.Logger
	logger    zerolog.Logger
	now       func() time.Time
}

// HandlerOption customizes a Handler.
type HandlerOption func(*Handler)

// WithAuditLogger replaces the operator action trail.
func WithAuditLogger(logger audit.Logger) HandlerOption {
	return func(h *Handler) {
		if logger != nil {
			h.audit = logger
		}
	}
}

// NewHandler constructs a handler. conn is shown on the settings page.
func NewHandler(client *apiclient.Client, sessions *auth.SessionStore, conn application.Connection, logger zerolog.Logger, opts ...HandlerOption) (*Handler, error) {
	if client == nil {
		return nil, errors.New("dashboard handler: nil client")
	}
	if sessions == nil {
		return nil, errors.New("dashboard handler: nil session store")
	}
	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	h := &Handler{
		client:    client,
		sessions:  sessions,
		templates: templates,
		conn:      conn,
		audit:     audit.NewEventLogger(logger),
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

func parseTemplates() (map[string]*template.Template, error) {
	templates := make(map[string]*template.Template, len(templateNames))
	for _, name := range templateNames {
		tpl, err := template.New(name).Funcs(templateFuncs).ParseFS(templateFiles, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, err
		}
		templates[name] = tpl
	}
	return templates, nil
}

// Router wires every route behind request logging and the auth gate.
func (h *Handler) Router() http.Handler {
	gate := auth.NewMiddleware(h.sessions, auth.DashboardPolicy())

	r := mux.NewRouter()
	r.Use(h.logRequests, gate.Wrap)

	r.HandleFunc("/healthz", handleHealthz).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	r.HandleFunc("/login", h.handleLoginForm).Methods(http.MethodGet)
	r.HandleFunc("/login", h.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/signup", h.handleSignupForm).Methods(http.MethodGet)
	r.HandleFunc("/signup", h.handleSignup).Methods(http.MethodPost)
	r.HandleFunc("/logout", h.handleLogout).Methods(http.MethodPost)

	r.HandleFunc("/", h.handleOverview).Methods(http.MethodGet)
	r.HandleFunc("/households", h.handleHouseholds).Methods(http.MethodGet)
	r.HandleFunc("/households/{id}/status", h.handleHouseholdConfirm).Methods(http.MethodGet)
	r.HandleFunc("/households/{id}/status", h.handleHouseholdToggle).Methods(http.MethodPost)
	r.HandleFunc("/users", h.handleUsers).Methods(http.MethodGet)
	r.HandleFunc("/users/{id}/status", h.handleUserConfirm).Methods(http.MethodGet)
	r.HandleFunc("/users/{id}/status", h.handleUserToggle).Methods(http.MethodPost)
	r.HandleFunc("/subscriptions", h.handleSubscriptions).Methods(http.MethodGet)
	r.HandleFunc("/subscriptions/{id}/confirm", h.handleSubscriptionConfirm).Methods(http.MethodGet)
	r.HandleFunc("/subscriptions/{id}", h.handleSubscriptionApply).Methods(http.MethodPost)
	r.HandleFunc("/devices", h.handleDevices).Methods(http.MethodGet)
	r.HandleFunc("/alerts", h.handleAlerts).Methods(http.MethodGet)
	r.HandleFunc("/health", h.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/settings", h.handleSettings).Methods(http.MethodGet)

	r.HandleFunc("/exports/devices.xlsx", h.handleExportDevices).Methods(http.MethodGet)
	r.HandleFunc("/exports/alerts.xlsx", h.handleExportAlertsXLSX).Methods(http.MethodGet)
	r.HandleFunc("/exports/alerts.pdf", h.handleExportAlertsPDF).Methods(http.MethodGet)
	r.HandleFunc("/exports/subscriptions.xlsx", h.handleExportSubscriptions).Methods(http.MethodGet)
	return r
}

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (s *statusWriter) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)
		logger := h.logger.With().Str("request_id", requestID).Logger()

		start := time.Now()
		resp := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(resp, r.WithContext(logger.WithContext(r.Context())))
		logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", resp.status).
			Dur("duration", time.Since(start)).
			Msg("request served")
	})
}

// view is what every page template receives.
type view struct {
	Page    string
	Title   string
	Nav     []NavItem
	ShowNav bool
	Notices []auth.Notice
	Error   string
	Data    any
}

// pageFor binds the page set to the requesting browser's token.
func (h *Handler) pageFor(r *http.Request) *application.Pages {
	tokens := auth.TokensFromContext(r.Context())
	logger := zerolog.Ctx(r.Context())
	if logger.GetLevel() == zerolog.Disabled {
		logger = &h.logger
	}
	return application.NewPages(h.client.WithTokens(tokens), *logger)
}

// render writes a full page. Notices queued in the session are drained into it.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, name string, v view) {
	tpl, ok := h.templates[name]
	if !ok {
		http.Error(w, "unknown template", http.StatusInternalServerError)
		return
	}
	v.Notices = append(h.sessions.Notices(r), v.Notices...)
	if v.Title == "" {
		v.Title = PageTitle(v.Page)
	}
	if v.ShowNav {
		v.Nav = NavItems
	}
	if err := h.sessions.Save(r, w); err != nil {
		h.logger.Warn().Err(err).Msg("session save failed")
	}

	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, "layout", v); err != nil {
		h.logger.Error().Err(err).Str("template", name).Msg("render failed")
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// redirectToLogin drops the stored token and sends the browser to the login page.
func (h *Handler) redirectToLogin(w http.ResponseWriter, r *http.Request) {
	if tokens := auth.TokensFromContext(r.Context()); tokens != nil {
		tokens.Clear()
	}
	if err := h.sessions.Save(r, w); err != nil {
		h.logger.Warn().Err(err).Msg("session save failed")
	}
	http.Redirect(w, r, auth.LoginPath, http.StatusFound)
}

// renderSnapshot maps a controller snapshot onto a response. A Loading snapshot
// means the request went away before the load finished; nothing is written.
func renderSnapshot[T any](h *Handler, w http.ResponseWriter, r *http.Request, name, page string, snapshot application.Snapshot[T], notices []auth.Notice, wrap func(T) any) {
	switch snapshot.State {
	case application.StateLoginRedirect:
		h.redirectToLogin(w, r)
		return
	case application.StateLoading:
		return
	}
	v := view{Page: page, ShowNav: true, Notices: notices}
	if snapshot.State == application.StateError {
		v.Error = snapshot.Err
	} else {
		v.Data = wrap(snapshot.Data)
	}
	h.render(w, r, name, v)
}

func identity[T any](data T) any {
	return data
}

func outcomeNotices(outcome application.Outcome) []auth.Notice {
	if outcome.Message == "" {
		return nil
	}
	kind := auth.NoticeError
	if outcome.OK {
		kind = auth.NoticeSuccess
	}
	return []auth.Notice{{Kind: kind, Message: outcome.Message}}
}
