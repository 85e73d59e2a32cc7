// ABOUTME: Authentication lifecycle for the job board client
// ABOUTME: Tracks uninitialized/checking/authenticated/anonymous and keeps the credential in step

package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/markalston/jobboard/internal/client"
	"github.com/markalston/jobboard/internal/credential"
	"github.com/markalston/jobboard/internal/notify"
)

// User-facing outcome messages
const (
	MsgLoginSuccess    = "Login successful!"
	MsgRegisterSuccess = "Registration successful! You are now logged in."
	MsgLogout          = "Logged out successfully."
	MsgExpired         = "Session expired or invalid. Please log in again."
)

// Status is the authentication state
type Status int

const (
	Uninitialized Status = iota
	Checking
	Authenticated
	Anonymous
)

func (s Status) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Checking:
		return "checking"
	case Authenticated:
		return "authenticated"
	case Anonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// Session is the authenticated identity and its credential
type Session struct {
	UserID     string
	Email      string
	Role       client.Role
	Credential string
}

// Snapshot is a consistent view of the store
type Snapshot struct {
	Status  Status
	Session *Session
}

// Authenticated reports whether the snapshot carries a live session
func (s Snapshot) Authenticated() bool {
	return s.Status == Authenticated && s.Session != nil
}

// Role returns the session role, or an empty role when anonymous
func (s Snapshot) Role() client.Role {
	if s.Session == nil {
		return ""
	}
	return s.Session.Role
}

// AuthAPI is the subset of the backend the session store drives
type AuthAPI interface {
	Login(ctx context.Context, creds client.Credentials) (*client.AuthResponse, error)
	Register(ctx context.Context, reg client.Registration) (*client.AuthResponse, error)
	Profile(ctx context.Context) (*client.Identity, error)
}

// Store owns the session state. Network calls run outside the lock and the
// state only changes once they return.
type Store struct {
	api    AuthAPI
	creds  credential.Store
	notes  *notify.Store
	logger *slog.Logger

	mu        sync.Mutex
	status    Status
	session   *Session
	observers map[int]func(Snapshot)
	nextObs   int
}

// Option configures a Store
type Option func(*Store)

// WithLogger sets the logger for state transitions
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Store in the Uninitialized state
func New(api AuthAPI, creds credential.Store, notes *notify.Store, opts ...Option) *Store {
	s := &Store{
		api:       api,
		creds:     creds,
		notes:     notes,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		observers: make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns the current state
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers fn to receive every state change. The returned func
// removes the subscription.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

// Initialize restores a persisted session. With no credential the store
// becomes Anonymous silently. A credential the backend rejects is cleared.
func (s *Store) Initialize(ctx context.Context) error {
	s.transition(func() {
		s.status = Checking
		s.session = nil
	})

	token, err := s.creds.Token()
	if err != nil {
		s.logger.Warn("reading credential failed", "error", err)
		s.expireAfterCheck()
		return fmt.Errorf("reading credential: %w", err)
	}
	if token == "" {
		s.transition(func() { s.status = Anonymous })
		s.logger.Debug("no persisted credential")
		return nil
	}

	identity, err := s.api.Profile(ctx)
	if err != nil {
		s.logger.Debug("profile check failed", "error", err)
		s.expireAfterCheck()
		return err
	}

	s.transition(func() {
		s.status = Authenticated
		s.session = &Session{
			UserID:     identity.ID,
			Email:      identity.Email,
			Role:       identity.Role,
			Credential: token,
		}
	})
	s.logger.Debug("session restored", "user", identity.ID, "role", identity.Role)
	return nil
}

// Login authenticates with email and password. On failure the prior state is
// kept and the error is returned unchanged.
func (s *Store) Login(ctx context.Context, email, password string) (Session, error) {
	return s.authenticate(ctx, "Login", MsgLoginSuccess, func() (*client.AuthResponse, error) {
		return s.api.Login(ctx, client.Credentials{Email: email, Password: password})
	})
}

// Register creates an account and signs in with it
func (s *Store) Register(ctx context.Context, email, password string, role client.Role) (Session, error) {
	return s.authenticate(ctx, "Registration", MsgRegisterSuccess, func() (*client.AuthResponse, error) {
		return s.api.Register(ctx, client.Registration{Email: email, Password: password, Role: role})
	})
}

func (s *Store) authenticate(ctx context.Context, op, successMsg string, call func() (*client.AuthResponse, error)) (Session, error) {
	prior := s.Snapshot()
	s.transition(func() { s.status = Checking })

	resp, err := call()
	if err == nil && resp.Token == "" {
		err = errors.New("backend returned no credential")
	}
	if err == nil {
		if saveErr := s.creds.Save(resp.Token); saveErr != nil {
			err = fmt.Errorf("saving credential: %w", saveErr)
		}
	}
	if err != nil {
		s.restore(prior)
		s.logger.Debug("authentication failed", "op", op, "error", err)
		s.notes.Error(fmt.Sprintf("%s failed: %s", op, err.Error()))
		return Session{}, err
	}

	sess := &Session{
		UserID:     resp.ID,
		Email:      resp.Email,
		Role:       resp.Role,
		Credential: resp.Token,
	}
	s.transition(func() {
		s.status = Authenticated
		s.session = sess
	})
	s.logger.Debug("authenticated", "op", op, "user", sess.UserID, "role", sess.Role)
	s.notes.Success(successMsg)
	return *sess, nil
}

// Logout drops the credential and the session
func (s *Store) Logout() {
	if err := s.creds.Clear(); err != nil {
		s.logger.Warn("clearing credential failed", "error", err)
	}
	s.transition(func() {
		s.status = Anonymous
		s.session = nil
	})
	s.logger.Debug("logged out")
	s.notes.Info(MsgLogout)
}

// Expire handles a 401 from any authenticated request. It only acts while
// Authenticated; Initialize and Login report their own failures.
func (s *Store) Expire() {
	s.mu.Lock()
	if s.status != Authenticated {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	if err := s.creds.Clear(); err != nil {
		s.logger.Warn("clearing credential failed", "error", err)
	}
	s.transition(func() {
		s.status = Anonymous
		s.session = nil
	})
	s.logger.Debug("session expired")
	s.notes.Info(MsgExpired)
}

// expireAfterCheck is the failed-Initialize path
func (s *Store) expireAfterCheck() {
	if err := s.creds.Clear(); err != nil {
		s.logger.Warn("clearing credential failed", "error", err)
	}
	s.transition(func() {
		s.status = Anonymous
		s.session = nil
	})
	s.notes.Info(MsgExpired)
}

// restore returns to the state held before a failed login. A credential
// cleared by a 401 in the meantime leaves nothing to restore.
func (s *Store) restore(prior Snapshot) {
	token, _ := s.creds.Token()
	s.transition(func() {
		switch {
		case prior.Authenticated() && token != "":
			s.status = Authenticated
			s.session = prior.Session
		default:
			s.status = Anonymous
			s.session = nil
		}
	})
}

func (s *Store) transition(mutate func()) {
	s.mu.Lock()
	mutate()
	snap := s.snapshotLocked()
	obs := make([]func(Snapshot), 0, len(s.observers))
	for _, fn := range s.observers {
		obs = append(obs, fn)
	}
	s.mu.Unlock()

	for _, fn := range obs {
		fn(snap)
	}
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{Status: s.status}
	if s.session != nil {
		copied := *s.session
		snap.Session = &copied
	}
	return snap
}
