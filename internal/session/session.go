// Package session wraps a gorilla session cookie holding the signed-in
// username and a one-shot flash message.
package session

import (
	"net/http"

	"github.com/gorilla/sessions"
)

// CookieName is the name of the session cookie.
const CookieName = "filecms_session"

const (
	userKey    = "user"
	messageKey = "message"
)

// Store loads and saves sessions.
type Store struct {
	store sessions.Store
}

// NewCookieStore returns a Store keeping sessions in a signed cookie.
// secret authenticates the cookie; secure restricts it to HTTPS.
func NewCookieStore(secret []byte, secure bool) *Store {
	cs := sessions.NewCookieStore(secret)
	cs.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Store{store: cs}
}

// Get returns the session of r. When the cookie cannot be decoded a fresh
// session is returned together with the decode error.
func (s *Store) Get(r *http.Request) (*Session, error) {
	raw, err := s.store.Get(r, CookieName)
	if raw == nil {
		raw = sessions.NewSession(s.store, CookieName)
	}
	return &Session{raw: raw}, err
}

// Session is the per-request view of the session cookie.
type Session struct {
	raw *sessions.Session
}

// User returns the signed-in username, or "" when signed out.
func (s *Session) User() string {
	user, _ := s.raw.Values[userKey].(string)
	return user
}

// SignedIn reports whether the session holds a non-empty username.
func (s *Session) SignedIn() bool {
	return s.User() != ""
}

// SignIn stores username as the signed-in user.
func (s *Session) SignIn(username string) {
	s.raw.Values[userKey] = username
}

// SignOut removes the signed-in user.
func (s *Session) SignOut() {
	delete(s.raw.Values, userKey)
}

// SetMessage replaces the flash message.
func (s *Session) SetMessage(msg string) {
	s.raw.Values[messageKey] = msg
}

// Message returns the flash message without consuming it.
func (s *Session) Message() string {
	msg, _ := s.raw.Values[messageKey].(string)
	return msg
}

// TakeMessage returns the flash message and clears it. The change is only
// persisted by the next Save.
func (s *Session) TakeMessage() string {
	msg := s.Message()
	delete(s.raw.Values, messageKey)
	return msg
}

// Save writes the session cookie. It must run before the response header
// is written.
func (s *Session) Save(r *http.Request, w http.ResponseWriter) error {
	return s.raw.Save(r, w)
}
