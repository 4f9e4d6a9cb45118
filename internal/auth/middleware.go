package auth

import (
	"net/http"
)

// LoginPath is where the gate sends requests without a token.
const LoginPath = "/login"

// Middleware redirects to the login page when no token is stored.
type Middleware struct {
	Sessions *SessionStore
	Policy   Policy
}

// NewMiddleware constructs the gate.
func NewMiddleware(sessions *SessionStore, policy Policy) *Middleware {
	return &Middleware{Sessions: sessions, Policy: policy}
}

// Wrap applies the gate to the handler. Exempt requests still get their token
// store in context so the login page can write to it.
func (m *Middleware) Wrap(next http.Handler) http.Handler {
	if m == nil || m.Sessions == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokens := m.Sessions.Tokens(r)
		adminID := ""
		if tokens.Has() {
			adminID, _ = AdminIDFromToken(tokens.Get())
		}
		ctx := WithIdentity(r.Context(), tokens, adminID)

		if !m.Policy.IsExempt(r) && !tokens.Has() {
			http.Redirect(w, r, LoginPath, http.StatusFound)
			return
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
