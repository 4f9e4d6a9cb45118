package http

import (
	"net/http"
	"strings"

	"ultracare-admin/internal/apiclient"
	"ultracare-admin/internal/auth"
)

type loginForm struct {
	Email string
}

type signupForm struct {
	Name  string
	Email string
}

func (h *Handler) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	if tokens := auth.TokensFromContext(r.Context()); tokens != nil && tokens.Has() {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	h.render(w, r, templateLogin, view{Title: "Sign in", Data: loginForm{}})
}

// handleLogin exchanges credentials for a token and stores it in the session.
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	form := loginForm{Email: email}
	if email == "" || password == "" {
		h.render(w, r, templateLogin, view{Title: "Sign in", Error: "Email and password are required.", Data: form})
		return
	}

	tokens := auth.TokensFromContext(r.Context())
	if _, err := h.client.WithTokens(tokens).Login(r.Context(), email, password); err != nil {
		h.logger.Info().Err(err).Msg("login failed")
		h.render(w, r, templateLogin, view{Title: "Sign in", Error: apiclient.ErrorMessage(err, "Login failed"), Data: form})
		return
	}
	h.logger.Info().Msg("admin signed in")
	h.saveAndRedirect(w, r, "/")
}

func (h *Handler) handleSignupForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, templateSignup, view{Title: "Create account", Data: signupForm{}})
}

// handleSignup registers an account. A returned token signs the admin in;
// otherwise they are sent to the login page.
func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	req := apiclient.SignupRequest{
		Name:     strings.TrimSpace(r.FormValue("name")),
		Email:    strings.TrimSpace(r.FormValue("email")),
		Password: r.FormValue("password"),
	}
	form := signupForm{Name: req.Name, Email: req.Email}
	if req.Email == "" || req.Password == "" {
		h.render(w, r, templateSignup, view{Title: "Create account", Error: "Email and password are required.", Data: form})
		return
	}

	tokens := auth.TokensFromContext(r.Context())
	_, stored, err := h.client.WithTokens(tokens).Signup(r.Context(), req)
	if err != nil {
		h.logger.Info().Err(err).Msg("signup failed")
		h.render(w, r, templateSignup, view{Title: "Create account", Error: apiclient.ErrorMessage(err, "Signup failed"), Data: form})
		return
	}
	if stored {
		h.saveAndRedirect(w, r, "/")
		return
	}
	h.sessions.AddNotice(r, auth.Notice{Kind: auth.NoticeSuccess, Message: "Account created. Please sign in."})
	h.saveAndRedirect(w, r, auth.LoginPath)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if tokens := auth.TokensFromContext(r.Context()); tokens != nil {
		tokens.Clear()
	}
	h.saveAndRedirect(w, r, auth.LoginPath)
}
