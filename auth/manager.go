// Package auth owns the current-user session: login, registration, logout
// and role gating.
package auth

import (
	"encoding/json"
	"errors"
	"sync"

	"eventdesk/logger"
	"eventdesk/models"
	"eventdesk/store"
)

var (
	// ErrInvalidCredentials indicates the username or password did not match.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrDuplicateUsername indicates the username is already taken.
	ErrDuplicateUsername = errors.New("username already exists")
)

// Confirmer collects an accept/cancel decision before a destructive action,
// such as logging out.
type Confirmer interface {
	Confirm(title, text string) bool
}

// builtinUsers are always available, even with an empty users collection.
var builtinUsers = []models.User{
	{Username: "admin", Password: "admin123", Role: models.RoleAdmin, Name: "Administrator"},
	{Username: "user", Password: "user123", Role: models.RoleUser, Name: "Regular User"},
}

// Manager holds the in-memory session and mirrors it to the persistent
// store, so the identity survives a restart until an explicit logout.
type Manager struct {
	users models.UserRepository
	store store.Store

	mu      sync.RWMutex
	current *models.User
}

// NewManager builds a session manager and restores a persisted session if
// one exists (cold start).
func NewManager(users models.UserRepository, st store.Store) *Manager {
	m := &Manager{users: users, store: st}

	raw, ok, err := st.Get(store.SessionKey)
	if err != nil {
		logger.Warningf("could not read persisted session: %v", err)
		return m
	}
	if ok {
		var u models.User
		if err := json.Unmarshal([]byte(raw), &u); err != nil {
			logger.Warningf("discarding unreadable persisted session: %v", err)
			_ = st.Remove(store.SessionKey)
			return m
		}
		m.current = &u
	}
	return m
}

// Current returns the signed-in user, or nil when nobody is signed in.
func (m *Manager) Current() *models.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Login matches the credentials against the built-in users first and the
// registered users second. Matching is exact string equality on both fields.
// On success the session is persisted.
func (m *Manager) Login(username, password string) (models.User, error) {
	var match *models.User
	for i := range builtinUsers {
		if builtinUsers[i].Username == username && builtinUsers[i].Password == password {
			match = &builtinUsers[i]
			break
		}
	}

	if match == nil {
		registered, err := m.users.GetAll()
		if err != nil {
			return models.User{}, err
		}
		for i := range registered {
			if registered[i].Username == username && registered[i].Password == password {
				match = &registered[i]
				break
			}
		}
	}

	if match == nil {
		return models.User{}, ErrInvalidCredentials
	}

	u := *match
	raw, err := json.Marshal(u)
	if err != nil {
		return models.User{}, err
	}
	if err := m.store.Set(store.SessionKey, string(raw)); err != nil {
		return models.User{}, err
	}

	m.mu.Lock()
	m.current = &u
	m.mu.Unlock()

	logger.Infof("user %q signed in with role %s", u.Username, u.Role)
	return u, nil
}

// Register creates a new account with role "user" and an empty enrollment
// list. The username must not collide with a built-in or registered user;
// the comparison is case-sensitive. Registration does not sign the user in.
func (m *Manager) Register(name, username, password string) (models.User, error) {
	for _, b := range builtinUsers {
		if b.Username == username {
			return models.User{}, ErrDuplicateUsername
		}
	}

	registered, err := m.users.GetAll()
	if err != nil {
		return models.User{}, err
	}
	for _, r := range registered {
		if r.Username == username {
			return models.User{}, ErrDuplicateUsername
		}
	}

	u := models.User{
		Name:           name,
		Username:       username,
		Password:       password,
		Role:           models.RoleUser,
		EnrolledEvents: []string{},
	}
	if err := m.users.Create(&u); err != nil {
		return models.User{}, err
	}

	logger.Infof("registered user %q", u.Username)
	return u, nil
}

// Logout asks the confirmer first; on cancel the session is untouched. On
// accept both the in-memory and the persisted session are cleared. The
// return value reports whether the logout actually happened.
func (m *Manager) Logout(confirmer Confirmer) bool {
	if !confirmer.Confirm("Are you sure?", "Do you want to sign out?") {
		return false
	}

	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()

	if err := m.store.Remove(store.SessionKey); err != nil {
		logger.Warningf("could not clear persisted session: %v", err)
	}
	return true
}

// CanNavigate reports whether the user's role permits the logical path.
// Only /new-event is restricted; it belongs to admins.
func CanNavigate(u *models.User, path string) bool {
	if u == nil {
		return false
	}
	if path == "/new-event" {
		return u.Role == models.RoleAdmin
	}
	return true
}
