package snooze

import "github.com/rs/zerolog"

// Credentials are the two values persisted across restarts so that a person
// stays logged in: the login token and the username it belongs to.
type Credentials struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// A SessionStore persists credentials in local key-value storage. Load
// returns zero Credentials when nothing is remembered; that is not an error.
type SessionStore interface {
	Save(creds Credentials) error
	Load() (Credentials, error)
	Clear() error
}

// A Session owns the process-wide "current user" state: which User is logged
// in, and the persisted credentials backing it. It replaces ambient globals
// with an explicit object the presentation layer holds on to.
type Session struct {
	service Service
	store   SessionStore
	logger  zerolog.Logger
	current *User
}

func NewSession(service Service, store SessionStore, logger zerolog.Logger) *Session {
	return &Session{
		service: service,
		store:   store,
		logger:  logger,
	}
}

// Current returns the logged-in user, or nil when nobody is.
func (s *Session) Current() *User {
	return s.current
}

// Signup registers a new account, makes it the current user and persists its
// credentials.
func (s *Session) Signup(username, password, name string) (*User, error) {
	user, err := Signup(s.service, username, password, name)
	if err != nil {
		return nil, err
	}

	s.become(user)
	return user, nil
}

// Login authenticates an existing account, makes it the current user and
// persists its credentials.
func (s *Session) Login(username, password string) (*User, error) {
	user, err := Login(s.service, username, password)
	if err != nil {
		return nil, err
	}

	s.become(user)
	return user, nil
}

// Restore attempts to silently log in with previously persisted credentials.
// It is meant to run once at startup and never fails: absent credentials, an
// expired token or an unreachable service all leave the session logged out.
// It returns the current user, possibly nil.
func (s *Session) Restore() *User {
	creds, err := s.store.Load()
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to load stored credentials")
		return nil
	}

	user, err := LoginViaStoredCredentials(s.service, creds.Token, creds.Username)
	if err != nil || user == nil {
		return nil
	}

	s.current = user
	return user
}

// Logout ends the session and clears all persisted credentials. There is no
// server-side token revocation to perform.
func (s *Session) Logout() error {
	s.current = nil
	return s.store.Clear()
}

// become installs user as the current user and persists its credentials. A
// persistence failure only costs the remembered session, not the login, so
// it is logged and swallowed.
func (s *Session) become(user *User) {
	s.current = user

	creds := Credentials{Token: user.LoginToken, Username: user.Username}
	if err := s.store.Save(creds); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to persist session credentials")
	}
}
