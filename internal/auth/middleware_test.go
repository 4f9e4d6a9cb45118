package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestAuthMiddleware_NoTokenRedirects(t *testing.T) {
	mw := NewMiddleware(NewSessionStore([]byte("test-secret"), false), DashboardPolicy())
	handler := mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/alerts", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", resp.Code)
	}
	if got := resp.Header().Get("Location"); got != LoginPath {
		t.Fatalf("expected redirect to %s, got %q", LoginPath, got)
	}
}

func TestAuthMiddleware_ExemptPathPasses(t *testing.T) {
	mw := NewMiddleware(NewSessionStore([]byte("test-secret"), false), DashboardPolicy())
	var sawTokens bool
	handler := mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawTokens = TokensFromContext(r.Context()) != nil
		w.WriteHeader(http.StatusOK)
	}))

	for _, path := range []string{"/login", "/healthz", "/static/app.css"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, resp.Code)
		}
		if !sawTokens {
			t.Fatalf("%s: token store missing from context", path)
		}
	}
}

func TestAuthMiddleware_StoredTokenPassesWithAdminID(t *testing.T) {
	store := NewSessionStore([]byte("test-secret"), false)
	cookie := loginCookie(t, store, mustToken(t, "admin-7"))

	mw := NewMiddleware(store, DashboardPolicy())
	var adminID string
	handler := mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		adminID = AdminIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/households", nil)
	req.AddCookie(cookie)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if adminID != "admin-7" {
		t.Fatalf("expected admin-7, got %q", adminID)
	}
}

func TestAuthMiddleware_OpaqueTokenStillPasses(t *testing.T) {
	store := NewSessionStore([]byte("test-secret"), false)
	cookie := loginCookie(t, store, "not-a-jwt")

	mw := NewMiddleware(store, DashboardPolicy())
	handler := mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if AdminIDFromContext(r.Context()) != "" {
			t.Errorf("expected empty admin id")
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestSessionNoticesDrainOnce(t *testing.T) {
	store := NewSessionStore([]byte("test-secret"), false)

	req := httptest.NewRequest(http.MethodPost, "/users/u1/status", nil)
	resp := httptest.NewRecorder()
	store.AddNotice(req, Notice{Kind: NoticeSuccess, Message: "User disabled."})
	store.AddNotice(req, Notice{Kind: NoticeError, Message: "Failed to update status"})
	if err := store.Save(req, resp); err != nil {
		t.Fatalf("save: %v", err)
	}
	cookie := resp.Result().Cookies()[0]

	next := httptest.NewRequest(http.MethodGet, "/users", nil)
	next.AddCookie(cookie)
	notices := store.Notices(next)
	if len(notices) != 2 {
		t.Fatalf("expected 2 notices, got %d", len(notices))
	}
	if notices[0].Kind != NoticeSuccess || notices[1].Kind != NoticeError {
		t.Fatalf("unexpected notice order: %+v", notices)
	}
	if again := store.Notices(next); len(again) != 0 {
		t.Fatalf("expected notices to drain, got %+v", again)
	}
}

func TestMemoryTokenStore(t *testing.T) {
	store := NewMemoryTokenStore("")
	if store.Has() {
		t.Fatalf("expected empty store")
	}
	store.Set("abc")
	if !store.Has() || store.Get() != "abc" {
		t.Fatalf("expected stored token, got %q", store.Get())
	}
	store.Clear()
	if store.Has() {
		t.Fatalf("expected cleared store")
	}
}

func TestAdminIDFromToken(t *testing.T) {
	signed := func(claims jwt.MapClaims) string {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
		if err != nil {
			t.Fatalf("sign token: %v", err)
		}
		return token
	}

	cases := []struct {
		name   string
		claims jwt.MapClaims
		want   string
	}{
		{name: "id wins", claims: jwt.MapClaims{"id": "a", "userId": "b", "sub": "c"}, want: "a"},
		{name: "userId", claims: jwt.MapClaims{"userId": "b", "sub": "c"}, want: "b"},
		{name: "sub", claims: jwt.MapClaims{"sub": "c"}, want: "c"},
		{name: "numeric", claims: jwt.MapClaims{"id": float64(42)}, want: "42"},
	}
	for _, tc := range cases {
		got, err := AdminIDFromToken(signed(tc.claims))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}

	if _, err := AdminIDFromToken(signed(jwt.MapClaims{"role": "admin"})); err == nil {
		t.Fatalf("expected error for token without id")
	}
	if _, err := AdminIDFromToken(""); err == nil {
		t.Fatalf("expected error for empty token")
	}
}

func loginCookie(t *testing.T, store *SessionStore, token string) *http.Cookie {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	resp := httptest.NewRecorder()
	store.Tokens(req).Set(token)
	if err := store.Save(req, resp); err != nil {
		t.Fatalf("save session: %v", err)
	}
	cookies := resp.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatalf("expected session cookie")
	}
	return cookies[0]
}

func mustToken(t *testing.T, adminID string) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   adminID,
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("backend-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}
