package auth

import (
	"context"
	"sync"
)

// State is the authentication state of a session.
type State int

// Session states.
const (
	StateUnauthenticated State = iota
	StateAuthenticated
)

// String implements fmt.Stringer.
func (s State) String() string {
	if s == StateAuthenticated {
		return "authenticated"
	}

	return "unauthenticated"
}

// Credentials is the session state obtained from one login.
type Credentials struct {
	// SessionCookie is the "name=value" entry identifying the session.
	SessionCookie string
	// XSRFToken is the raw anti-forgery token value.
	XSRFToken string
}

// Store holds the credentials of a session. Both values are always set
// and cleared together.
type Store struct {
	mutex       sync.RWMutex
	credentials *Credentials
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Get returns the stored credentials, or nil when unauthenticated.
func (s *Store) Get() *Credentials {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if s.credentials == nil {
		return nil
	}

	creds := *s.credentials

	return &creds
}

// Set replaces the stored credentials.
func (s *Store) Set(creds Credentials) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.credentials = &creds
}

// State returns the current authentication state.
func (s *Store) State() State {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if s.credentials == nil {
		return StateUnauthenticated
	}

	return StateAuthenticated
}

// Loginer performs a login handshake.
type Loginer interface {
	Login(ctx context.Context) (*Credentials, error)
}

// Manager hands out credentials, logging in on first use. Concurrent
// callers that find the store empty wait for a single login.
type Manager struct {
	store   *Store
	loginer Loginer
	loginMu sync.Mutex
}

// NewManager creates a manager that logs in with loginer.
func NewManager(loginer Loginer) *Manager {
	return &Manager{
		store:   NewStore(),
		loginer: loginer,
	}
}

// Credentials returns the session cookie and XSRF token, logging in when
// the session is unauthenticated.
func (m *Manager) Credentials(ctx context.Context) (string, string, error) {
	creds := m.store.Get()
	if creds != nil {
		return creds.SessionCookie, creds.XSRFToken, nil
	}

	m.loginMu.Lock()
	defer m.loginMu.Unlock()

	// Another caller may have logged in while we waited.
	creds = m.store.Get()
	if creds != nil {
		return creds.SessionCookie, creds.XSRFToken, nil
	}

	creds, err := m.loginer.Login(ctx)
	if err != nil {
		return "", "", err
	}

	m.store.Set(*creds)

	return creds.SessionCookie, creds.XSRFToken, nil
}

// State returns the current authentication state.
func (m *Manager) State() State {
	return m.store.State()
}
