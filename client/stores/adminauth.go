package stores

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/MangoYoun/aidlc-workshop-tableorder/client/api"
	"github.com/MangoYoun/aidlc-workshop-tableorder/client/storage"
)

type AdminUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	StoreID  uint   `json:"store_id"`
}

// AdminCredential is the admin login response, persisted verbatim under its
// own key. Admin auth never shares state with the customer session.
type AdminCredential struct {
	Token     string    `json:"token"`
	User      AdminUser `json:"user"`
	ExpiresAt time.Time `json:"expires_at"`
}

type AdminAuthStore struct {
	mu         sync.Mutex
	client     *api.Client
	storage    storage.Storage
	logger     *log.Logger
	credential *AdminCredential
}

func NewAdminAuthStore(client *api.Client, store storage.Storage, logger *log.Logger) *AdminAuthStore {
	return &AdminAuthStore{client: client, storage: store, logger: logger}
}

// LoadAuth restores a persisted credential at startup, discarding expired or
// unparsable values
func (s *AdminAuthStore) LoadAuth() {
	data, ok := s.storage.Get(storage.KeyAdminToken)
	if !ok {
		return
	}
	var parsed AdminCredential
	if err := json.Unmarshal(data, &parsed); err != nil {
		if s.logger != nil {
			s.logger.Printf("failed to parse admin token: %v", err)
		}
		s.storage.Remove(storage.KeyAdminToken)
		return
	}
	if parsed.ExpiresAt.After(time.Now()) {
		s.mu.Lock()
		s.credential = &parsed
		s.mu.Unlock()
	} else {
		s.storage.Remove(storage.KeyAdminToken)
	}
}

// Login authenticates an admin and persists the credential
func (s *AdminAuthStore) Login(storeID uint, username, password string) (*AdminCredential, error) {
	body := map[string]interface{}{
		"store_id": storeID,
		"username": username,
		"password": password,
	}
	var cred AdminCredential
	if err := s.client.Post("/api/auth/admin-login", body, &cred); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.credential = &cred
	s.mu.Unlock()

	if data, err := json.Marshal(&cred); err == nil {
		if err := s.storage.Set(storage.KeyAdminToken, data); err != nil && s.logger != nil {
			s.logger.Printf("failed to persist admin token: %v", err)
		}
	}
	return &cred, nil
}

// Logout clears the credential and its persisted copy
func (s *AdminAuthStore) Logout() {
	s.mu.Lock()
	s.credential = nil
	s.mu.Unlock()
	s.storage.Remove(storage.KeyAdminToken)
}

// Token returns the current JWT, empty when unauthenticated
func (s *AdminAuthStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.credential == nil {
		return ""
	}
	return s.credential.Token
}

// User returns the logged-in admin profile, nil when unauthenticated
func (s *AdminAuthStore) User() *AdminUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.credential == nil {
		return nil
	}
	u := s.credential.User
	return &u
}

// Authenticated reports whether a credential is held. Used by the route guard.
func (s *AdminAuthStore) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.credential != nil
}

// AuthHeader implements api.TokenSource
func (s *AdminAuthStore) AuthHeader() (string, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.credential == nil {
		return "", "", false
	}
	return "Authorization", "Bearer " + s.credential.Token, true
}
