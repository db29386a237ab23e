// Package stores holds the apps' state containers. Each store owns one slice
// of state and its storage key; containers are constructed at app start and
// passed to whatever needs them — no package-level mutable state.
package stores

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/MangoYoun/aidlc-workshop-tableorder/client/api"
	"github.com/MangoYoun/aidlc-workshop-tableorder/client/storage"
)

// Session is a customer's authenticated table context, valid while
// now < ExpiresAt. The JSON shape is the login response, persisted verbatim.
type Session struct {
	SessionToken string    `json:"session_token"`
	TableNumber  string    `json:"table_number"`
	StoreID      uint      `json:"store_id"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type SessionStore struct {
	mu       sync.Mutex
	client   *api.Client
	storage  storage.Storage
	logger   *log.Logger
	session  *Session
	onLogout []func()
}

func NewSessionStore(client *api.Client, store storage.Storage, logger *log.Logger) *SessionStore {
	return &SessionStore{client: client, storage: store, logger: logger}
}

// OnLogout subscribes fn to run whenever the session is torn down. The cart
// registers its reset here: a cart is meaningless without its owning session.
func (s *SessionStore) OnLogout(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onLogout = append(s.onLogout, fn)
}

// LoadSession restores a persisted session at startup. Expired or unparsable
// values are discarded; either way the store ends up consistent.
func (s *SessionStore) LoadSession() {
	data, ok := s.storage.Get(storage.KeyTableSession)
	if !ok {
		return
	}
	var parsed Session
	if err := json.Unmarshal(data, &parsed); err != nil {
		s.logf("failed to parse session: %v", err)
		s.storage.Remove(storage.KeyTableSession)
		return
	}
	if parsed.ExpiresAt.After(time.Now()) {
		s.mu.Lock()
		s.session = &parsed
		s.mu.Unlock()
	} else {
		// Session expired while the app was closed
		s.storage.Remove(storage.KeyTableSession)
	}
}

// Login opens a table session and persists it.
// The lock is not held across the network call.
func (s *SessionStore) Login(storeID uint, tableNumber, password string) (*Session, error) {
	body := map[string]interface{}{
		"store_id":     storeID,
		"table_number": tableNumber,
		"password":     password,
	}
	var sess Session
	if err := s.client.Post("/api/auth/table-login", body, &sess); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.session = &sess
	s.mu.Unlock()

	if data, err := json.Marshal(&sess); err == nil {
		if err := s.storage.Set(storage.KeyTableSession, data); err != nil {
			s.logf("failed to persist session: %v", err)
		}
	}
	return &sess, nil
}

// Logout clears the session and notifies subscribers
func (s *SessionStore) Logout() {
	s.mu.Lock()
	s.session = nil
	subs := s.onLogout
	s.mu.Unlock()

	s.storage.Remove(storage.KeyTableSession)
	for _, fn := range subs {
		fn()
	}
}

// CheckSession re-validates expiry on demand; an expired session is logged out
func (s *SessionStore) CheckSession() bool {
	s.mu.Lock()
	sess := s.session
	s.mu.Unlock()

	if sess == nil {
		return false
	}
	if !sess.ExpiresAt.After(time.Now()) {
		s.Logout()
		return false
	}
	return true
}

// Session returns the current session, nil when unauthenticated
func (s *SessionStore) Session() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// Authenticated reports whether a session is held. Used by the route guard.
func (s *SessionStore) Authenticated() bool {
	return s.Session() != nil
}

// AuthHeader implements api.TokenSource
func (s *SessionStore) AuthHeader() (string, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return "", "", false
	}
	return api.HeaderSessionToken, s.session.SessionToken, true
}

func (s *SessionStore) logf(format string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
