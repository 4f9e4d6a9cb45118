package auth

import (
	"encoding/gob"
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	// TokenKey is the session value holding the bearer token.
	TokenKey = "ultracare_admin_token"

	sessionName = "ultracare_admin"

	flashSuccess = "notice_success"
	flashError   = "notice_error"
)

func init() {
	// Flashes are stored as []interface{} inside the gob-encoded cookie.
	gob.Register([]interface{}(nil))
}

// NoticeKind styles a transient notice.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice is a one-shot message shown after a redirect.
type Notice struct {
	Kind    NoticeKind
	Message string
}

// SessionStore keeps the token and flash notices in a signed cookie.
type SessionStore struct {
	store sessions.Store
}

// NewSessionStore builds a cookie-backed store.
func NewSessionStore(secret []byte, secure bool) *SessionStore {
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &SessionStore{store: store}
}

// NewSessionStoreFrom wraps an existing gorilla store.
func NewSessionStoreFrom(store sessions.Store) *SessionStore {
	return &SessionStore{store: store}
}

func (s *SessionStore) session(r *http.Request) *sessions.Session {
	// Decode failures, such as a cookie signed with a rotated secret, yield a
	// fresh session.
	session, _ := s.store.Get(r, sessionName)
	if session == nil {
		session = sessions.NewSession(s.store, sessionName)
	}
	return session
}

// Tokens returns the token store for the browser that sent r.
func (s *SessionStore) Tokens(r *http.Request) *SessionTokens {
	return &SessionTokens{session: s.session(r)}
}

// AddNotice queues a notice for the next rendered page.
func (s *SessionStore) AddNotice(r *http.Request, notice Notice) {
	key := flashSuccess
	if notice.Kind == NoticeError {
		key = flashError
	}
	s.session(r).AddFlash(notice.Message, key)
}

// Notices drains queued notices. Callers must Save afterwards.
func (s *SessionStore) Notices(r *http.Request) []Notice {
	session := s.session(r)
	var notices []Notice
	for _, kind := range []NoticeKind{NoticeSuccess, NoticeError} {
		key := flashSuccess
		if kind == NoticeError {
			key = flashError
		}
		for _, flash := range session.Flashes(key) {
			if message, ok := flash.(string); ok && message != "" {
				notices = append(notices, Notice{Kind: kind, Message: message})
			}
		}
	}
	return notices
}

// Save writes the session cookie.
func (s *SessionStore) Save(r *http.Request, w http.ResponseWriter) error {
	return s.session(r).Save(r, w)
}

// SessionTokens is a TokenStore backed by one request's session. Changes take
// effect once the session is saved.
type SessionTokens struct {
	session *sessions.Session
}

func (t *SessionTokens) Get() string {
	token, _ := t.session.Values[TokenKey].(string)
	return token
}

func (t *SessionTokens) Set(token string) {
	if token == "" {
		t.Clear()
		return
	}
	t.session.Values[TokenKey] = token
}

func (t *SessionTokens) Clear() {
	delete(t.session.Values, TokenKey)
}

func (t *SessionTokens) Has() bool {
	return t.Get() != ""
}
