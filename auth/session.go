package auth

import (
	"sync"

	"github.com/golang-jwt/jwt/v5"

	"agriconnect/backend"
)

// SessionStore holds the current session and notifies subscribers when it
// changes. It is an explicit observer object handed to whoever needs it, not
// package-global state. A nil session means logged out.
type SessionStore struct {
	mu      sync.RWMutex
	session *backend.Session
	subs    map[int]func(*backend.Session)
	nextSub int
}

// NewSessionStore returns an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{subs: make(map[int]func(*backend.Session))}
}

// Get returns the current session, or nil when logged out.
func (s *SessionStore) Get() *backend.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// Set replaces the session and notifies every subscriber.
func (s *SessionStore) Set(session *backend.Session) {
	s.mu.Lock()
	s.session = session
	listeners := make([]func(*backend.Session), 0, len(s.subs))
	for _, fn := range s.subs {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(session)
	}
}

// Clear drops the session, notifying subscribers with nil.
func (s *SessionStore) Clear() {
	s.Set(nil)
}

// Subscribe registers a change listener and returns its teardown. The
// listener is not called with the current value; it only observes changes.
func (s *SessionStore) Subscribe(fn func(*backend.Session)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// RoleFromSession resolves the dashboard role for a session: the userType
// claim inside the access token wins, then the user metadata, and farmer is
// the fallback for accounts predating role metadata. The token is decoded
// without signature verification; the client never holds the signing key and
// only routes UI on the claim.
func RoleFromSession(session *backend.Session) Role {
	if session == nil {
		return RoleFarmer
	}
	if role, ok := roleFromToken(session.AccessToken); ok {
		return role
	}
	if role, err := ParseRole(session.User.Metadata.UserType); err == nil {
		return role
	}
	return RoleFarmer
}

func roleFromToken(token string) (Role, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", false
	}
	meta, ok := claims["user_metadata"].(map[string]any)
	if !ok {
		return "", false
	}
	userType, ok := meta["userType"].(string)
	if !ok {
		return "", false
	}
	role, err := ParseRole(userType)
	if err != nil {
		return "", false
	}
	return role, true
}
