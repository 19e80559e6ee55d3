package web

import (
	"net/http"

	"github.com/gorilla/sessions"
	log "github.com/sirupsen/logrus"
)

const (
	sessionName   = "yatube_session"
	sessionUserID = "user_id"
)

// SessionManager wraps a cookie store for the server-rendered pages. The API
// stays stateless; only the HTML views carry a session.
type SessionManager struct {
	store *sessions.CookieStore
}

func NewSessionManager(secret string) *SessionManager {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   14 * 24 * 3600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &SessionManager{store: store}
}

// SignIn records the user id in the session cookie.
func (m *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, userID int64) error {
	session, _ := m.store.Get(r, sessionName)
	session.Values[sessionUserID] = userID
	return session.Save(r, w)
}

// SignOut drops the session.
func (m *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) error {
	session, _ := m.store.Get(r, sessionName)
	delete(session.Values, sessionUserID)
	session.Options.MaxAge = -1
	return session.Save(r, w)
}

// CurrentUserID returns the signed-in user id, if any.
func (m *SessionManager) CurrentUserID(r *http.Request) (int64, bool) {
	session, err := m.store.Get(r, sessionName)
	if err != nil {
		return 0, false
	}
	id, ok := session.Values[sessionUserID].(int64)
	if !ok || id == 0 {
		return 0, false
	}
	return id, true
}

// AddFlash queues a one-shot message for the next rendered page.
func (m *SessionManager) AddFlash(w http.ResponseWriter, r *http.Request, message string) {
	session, _ := m.store.Get(r, sessionName)
	session.AddFlash(message)
	if err := session.Save(r, w); err != nil {
		log.WithError(err).Warn("failed to save flash message")
	}
}

// Flashes drains queued messages.
func (m *SessionManager) Flashes(w http.ResponseWriter, r *http.Request) []string {
	session, err := m.store.Get(r, sessionName)
	if err != nil {
		return nil
	}
	raw := session.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := session.Save(r, w); err != nil {
		log.WithError(err).Warn("failed to clear flash messages")
	}
	messages := make([]string, 0, len(raw))
	for _, f := range raw {
		if s, ok := f.(string); ok {
			messages = append(messages, s)
		}
	}
	return messages
}
