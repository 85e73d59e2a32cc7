// ABOUTME: Ordered, auto-expiring notification store
// ABOUTME: Transient feedback messages with severity, observable by the CLI printer and TUI toasts

package notify

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultDuration is how long a notification lives when none is given
const DefaultDuration = 5 * time.Second

// Severity classifies a notification
type Severity int

const (
	Success Severity = iota
	Error
	Info
	Warning
)

func (s Severity) String() string {
	switch s {
	case Success:
		return "success"
	case Error:
		return "error"
	case Info:
		return "info"
	case Warning:
		return "warning"
	default:
		return "unknown"
	}
}

// ParseSeverity converts a severity name, case-insensitively
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToLower(s) {
	case "success":
		return Success, true
	case "error":
		return Error, true
	case "info":
		return Info, true
	case "warning", "warn":
		return Warning, true
	default:
		return Info, false
	}
}

// Notification is one transient message
type Notification struct {
	ID        string
	Message   string
	Severity  Severity
	CreatedAt time.Time
}

type entry struct {
	note  Notification
	timer *time.Timer
}

// Store holds live notifications in insertion order
type Store struct {
	mu        sync.Mutex
	entries   []*entry
	observers map[int]func([]Notification)
	nextObs   int
	duration  time.Duration
	now       func() time.Time
	closed    bool
}

// Option configures a Store
type Option func(*Store)

// WithClock overrides the clock used for CreatedAt
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithDuration overrides the lifetime used by Add
func WithDuration(d time.Duration) Option {
	return func(s *Store) {
		s.duration = d
	}
}

// New creates an empty Store
func New(opts ...Option) *Store {
	s := &Store{
		observers: make(map[int]func([]Notification)),
		duration:  DefaultDuration,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add appends a notification that expires after the store's default duration
func (s *Store) Add(message string, severity Severity) string {
	return s.AddFor(message, severity, s.duration)
}

// AddFor appends a notification that expires after d. A non-positive d keeps
// it until Remove is called.
func (s *Store) AddFor(message string, severity Severity, d time.Duration) string {
	id := uuid.NewString()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return id
	}
	e := &entry{note: Notification{
		ID:        id,
		Message:   message,
		Severity:  severity,
		CreatedAt: s.now(),
	}}
	if d > 0 {
		e.timer = time.AfterFunc(d, func() { s.Remove(id) })
	}
	s.entries = append(s.entries, e)
	snap, obs := s.snapshotLocked()
	s.mu.Unlock()

	notifyAll(obs, snap)
	return id
}

// Success adds a success notification
func (s *Store) Success(message string) string { return s.Add(message, Success) }

// Error adds an error notification
func (s *Store) Error(message string) string { return s.Add(message, Error) }

// Info adds an info notification
func (s *Store) Info(message string) string { return s.Add(message, Info) }

// Warning adds a warning notification
func (s *Store) Warning(message string) string { return s.Add(message, Warning) }

// Remove drops the notification with id. Unknown ids are ignored.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	idx := -1
	for i, e := range s.entries {
		if e.note.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	if t := s.entries[idx].timer; t != nil {
		t.Stop()
	}
	s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
	snap, obs := s.snapshotLocked()
	s.mu.Unlock()

	notifyAll(obs, snap)
}

// List returns the live notifications in insertion order
func (s *Store) List() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, _ := s.snapshotLocked()
	return snap
}

// Subscribe registers fn to receive the full list after every change.
// The returned func removes the subscription.
func (s *Store) Subscribe(fn func([]Notification)) func() {
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

// Close stops every pending expiry timer. Later adds are dropped.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.timer != nil {
			e.timer.Stop()
		}
	}
	s.closed = true
}

func (s *Store) snapshotLocked() ([]Notification, []func([]Notification)) {
	snap := make([]Notification, len(s.entries))
	for i, e := range s.entries {
		snap[i] = e.note
	}
	obs := make([]func([]Notification), 0, len(s.observers))
	for _, fn := range s.observers {
		obs = append(obs, fn)
	}
	return snap, obs
}

func notifyAll(obs []func([]Notification), snap []Notification) {
	for _, fn := range obs {
		fn(snap)
	}
}
