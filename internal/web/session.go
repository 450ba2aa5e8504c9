package web

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"sync"
	"time"

	"github.com/beanhall/beanhall/internal/account"
)

const sessionCookieName = "bh_session"

// defaultSessionTTL bounds how long an idle session stays valid.
const defaultSessionTTL = 12 * time.Hour

// session holds the per-browser state: an optional identity plus one-shot
// messages that are consumed on the request that displays them.
type session struct {
	identity      *account.Identity
	flash         string
	loginError    string
	registerError string
	expiresAt     time.Time
}

// sessionStore is a thread-safe in-memory session store keyed by the opaque
// cookie value.
type sessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*session
	ttl      time.Duration
}

// newSessionStore creates an empty session store.
func newSessionStore(ttl time.Duration) *sessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &sessionStore{sessions: make(map[string]*session), ttl: ttl}
}

// create stores a new empty session and returns its ID.
func (s *sessionStore) create() string {
	id := randomHex(16)
	s.mu.Lock()
	s.sessions[id] = &session{expiresAt: time.Now().Add(s.ttl)}
	s.mu.Unlock()
	return id
}

// lookup returns a live session by ID, or nil. Callers must hold no lock.
func (s *sessionStore) lookup(id string) *session {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil
	}
	if time.Now().After(sess.expiresAt) {
		s.delete(id)
		return nil
	}
	return sess
}

// delete removes a session by ID.
func (s *sessionStore) delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// identity returns the logged-in identity for a session, or nil.
func (s *sessionStore) identity(id string) *account.Identity {
	sess := s.lookup(id)
	if sess == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sess.identity == nil {
		return nil
	}
	copied := *sess.identity
	return &copied
}

// setIdentity marks a session as logged in.
func (s *sessionStore) setIdentity(id string, identity account.Identity) {
	sess := s.lookup(id)
	if sess == nil {
		return
	}
	s.mu.Lock()
	sess.identity = &identity
	s.mu.Unlock()
}

// clearIdentity logs a session out while keeping its one-shot messages.
func (s *sessionStore) clearIdentity(id string) {
	sess := s.lookup(id)
	if sess == nil {
		return
	}
	s.mu.Lock()
	sess.identity = nil
	s.mu.Unlock()
}

// setFlash stores the one-shot success message.
func (s *sessionStore) setFlash(id, message string) {
	s.setMessage(id, func(sess *session) { sess.flash = message })
}

// takeFlash consumes and returns the one-shot success message.
func (s *sessionStore) takeFlash(id string) string {
	return s.takeMessage(id, func(sess *session) *string { return &sess.flash })
}

// setLoginError stores the one-shot login failure message.
func (s *sessionStore) setLoginError(id, message string) {
	s.setMessage(id, func(sess *session) { sess.loginError = message })
}

// takeLoginError consumes and returns the one-shot login failure message.
func (s *sessionStore) takeLoginError(id string) string {
	return s.takeMessage(id, func(sess *session) *string { return &sess.loginError })
}

// setRegisterError stores the one-shot registration failure message.
func (s *sessionStore) setRegisterError(id, message string) {
	s.setMessage(id, func(sess *session) { sess.registerError = message })
}

// takeRegisterError consumes and returns the one-shot registration failure message.
func (s *sessionStore) takeRegisterError(id string) string {
	return s.takeMessage(id, func(sess *session) *string { return &sess.registerError })
}

func (s *sessionStore) setMessage(id string, assign func(*session)) {
	sess := s.lookup(id)
	if sess == nil {
		return
	}
	s.mu.Lock()
	assign(sess)
	s.mu.Unlock()
}

func (s *sessionStore) takeMessage(id string, field func(*session) *string) string {
	sess := s.lookup(id)
	if sess == nil {
		return ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	slot := field(sess)
	message := *slot
	*slot = ""
	return message
}

// setSessionCookie writes the session cookie to the response.
func setSessionCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie expires the session cookie.
func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// sessionIDFromRequest reads the session cookie and verifies the session is
// live. The second return reports whether a usable session exists.
func sessionIDFromRequest(r *http.Request, store *sessionStore) (string, bool) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return "", false
	}
	if store.lookup(cookie.Value) == nil {
		return "", false
	}
	return cookie.Value, true
}

// randomHex returns n random bytes hex-encoded.
func randomHex(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}
