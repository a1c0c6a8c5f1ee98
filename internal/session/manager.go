package session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/Tomasivanovich/ProjectManagementApp/internal/api"
)

// OAuth providers the backend can exchange tokens with.
const (
	ProviderGoogle  = "google"
	ProviderDiscord = "discord"
)

// Session is the client-held identity: both fields set (logged in) or both
// empty (logged out), never one without the other.
type Session struct {
	Token string
	User  *api.UserProfile
}

// IsAuthenticated reports whether the session holds a complete identity.
func (s Session) IsAuthenticated() bool {
	return s.Token != "" && s.User != nil
}

// Manager is the single source of truth for who is logged in. It is
// constructed once at process start and handed to whatever front end needs
// it; there is deliberately no package-level instance.
type Manager struct {
	store Store
	api   *api.Client

	mu      sync.RWMutex
	session Session
}

// NewManager creates a manager over the given store and API client.
func NewManager(store Store, client *api.Client) *Manager {
	return &Manager{store: store, api: client}
}

// Current returns the in-memory session.
func (m *Manager) Current() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session
}

// Restore loads the persisted session. A complete, well-formed pair yields a
// populated session; anything partial or corrupt degrades to logged-out and
// the offending entries are cleared. It never fails: there is no user action
// that could recover a broken local store at boot time.
func (m *Manager) Restore() Session {
	token, tokenOK := m.store.GetItem(KeyToken)
	userJSON, userOK := m.store.GetItem(KeyUser)

	if !tokenOK || !userOK || token == "" {
		m.clearStore()
		return m.setSession(Session{})
	}

	var user api.UserProfile
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		m.clearStore()
		return m.setSession(Session{})
	}

	return m.setSession(Session{Token: token, User: &user})
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registration struct {
	Name     string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates with email and password.
func (m *Manager) Login(ctx context.Context, email, password string) (Session, error) {
	return m.authenticate(ctx, "/auth/login", credentials{Email: email, Password: password})
}

// Register creates an account and logs it in, same response contract as Login.
func (m *Manager) Register(ctx context.Context, name, email, password string) (Session, error) {
	return m.authenticate(ctx, "/auth/register", registration{Name: name, Email: email, Password: password})
}

// LoginWithOAuthToken exchanges a provider access token for a server
// session. provider must be one of ProviderGoogle or ProviderDiscord.
func (m *Manager) LoginWithOAuthToken(ctx context.Context, provider, accessToken string) (Session, error) {
	if provider != ProviderGoogle && provider != ProviderDiscord {
		return Session{}, fmt.Errorf("unknown oauth provider: %q", provider)
	}
	body := struct {
		AccessToken string `json:"access_token"`
	}{AccessToken: accessToken}
	return m.authenticate(ctx, "/auth/"+provider, body)
}

// Refresh exchanges the current token for a fresh one. When the response
// carries no user object the current profile is kept; a missing token is a
// contract violation.
func (m *Manager) Refresh(ctx context.Context) (Session, error) {
	raw, err := m.api.Do(ctx, http.MethodPost, "/auth/refresh", nil)
	if err != nil {
		return Session{}, err
	}

	token, user := parseAuthResponse(raw)
	if token == "" {
		return Session{}, fmt.Errorf("refresh: %w", api.ErrInvalidServerResponse)
	}
	if user == nil {
		current := m.Current()
		if current.User == nil {
			return Session{}, fmt.Errorf("refresh: %w", api.ErrInvalidServerResponse)
		}
		user = current.User
	}

	return m.adopt(token, user)
}

func (m *Manager) authenticate(ctx context.Context, path string, body any) (Session, error) {
	raw, err := m.api.Do(ctx, http.MethodPost, path, body)
	if err != nil {
		return Session{}, err
	}

	token, user := parseAuthResponse(raw)
	if token == "" || user == nil {
		return Session{}, fmt.Errorf("%s: missing token or user: %w", path, api.ErrInvalidServerResponse)
	}

	return m.adopt(token, user)
}

// adopt persists the pair and swaps the in-memory session in one step. If
// persistence fails both entries are removed so the store never holds half a
// session.
func (m *Manager) adopt(token string, user *api.UserProfile) (Session, error) {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return Session{}, fmt.Errorf("failed to serialize user: %w", err)
	}

	if err := m.store.SetItem(KeyToken, token); err != nil {
		m.clearStore()
		return Session{}, fmt.Errorf("failed to persist session: %w", err)
	}
	if err := m.store.SetItem(KeyUser, string(userJSON)); err != nil {
		m.clearStore()
		return Session{}, fmt.Errorf("failed to persist session: %w", err)
	}

	return m.setSession(Session{Token: token, User: user}), nil
}

// UpdateProfile replaces the stored user record wholesale. It does not call
// the API: callers are expected to have already saved the profile
// server-side.
func (m *Manager) UpdateProfile(user api.UserProfile) error {
	userJSON, err := json.Marshal(&user)
	if err != nil {
		return fmt.Errorf("failed to serialize user: %w", err)
	}
	if err := m.store.SetItem(KeyUser, string(userJSON)); err != nil {
		return fmt.Errorf("failed to persist user: %w", err)
	}

	m.mu.Lock()
	m.session.User = &user
	m.mu.Unlock()
	return nil
}

// Logout clears the persisted and in-memory session. Best-effort local
// cleanup only; it never fails and makes no server round trip.
func (m *Manager) Logout() {
	m.clearStore()
	m.setSession(Session{})
}

func (m *Manager) clearStore() {
	// Errors ignored: a failed removal leaves at most a stale entry that the
	// next Restore treats as corrupt and clears again.
	_ = m.store.RemoveItem(KeyToken)
	_ = m.store.RemoveItem(KeyUser)
}

func (m *Manager) setSession(s Session) Session {
	m.mu.Lock()
	m.session = s
	m.mu.Unlock()
	return s
}
