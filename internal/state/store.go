// Package state persists the notification frequency and the time of the
// last notification between invocations.
package state

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/natefinch/atomic"

	"github.com/obentoo/upgrade-notifier/internal/common/logger"
	"github.com/obentoo/upgrade-notifier/internal/frequency"
)

var (
	// ErrStateRead is returned when the state file exists but cannot be read
	ErrStateRead = errors.New("cannot read notification state")
	// ErrStateCorrupted marks a state file that could not be parsed.
	// Load recovers from it with defaults; it is never returned to callers.
	ErrStateCorrupted = errors.New("notification state is corrupted")
	// ErrInvalidFrequency is returned by SetFrequency for unknown policy names
	ErrInvalidFrequency = errors.New("invalid notification frequency")
)

const (
	keyLastNotif = "last_notif"
	keyFrequency = "notification_frequency"
)

// Sentinel is the last-notified time used before any notification was recorded
var Sentinel = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// State is the persisted notification record
type State struct {
	LastNotified time.Time
	Frequency    frequency.Policy

	// extra holds keys this version does not know, written back unchanged
	extra map[string]interface{}
	// seeded is true when LastNotified came from the file
	seeded bool
}

// Default returns the state used when nothing has been stored
func Default() *State {
	return &State{
		LastNotified: Sentinel,
		Frequency:    frequency.Default,
	}
}

// HasTimestamp reports whether the last-notified time was read from disk
func (s *State) HasTimestamp() bool {
	return s.seeded
}

// RecordNotification returns a copy of s with the notification time set to now
func (s *State) RecordNotification(now time.Time) *State {
	next := *s
	next.LastNotified = now
	next.seeded = true
	return &next
}

// Store reads and writes State at a fixed path
type Store struct {
	path string
	log  *logger.Logger
}

// StoreOption is a functional option for configuring Store
type StoreOption func(*Store)

// WithLogger sets the logger used to report recovered corruption
func WithLogger(l *logger.Logger) StoreOption {
	return func(s *Store) {
		s.log = l
	}
}

// NewStore creates a Store for the state file at path
func NewStore(path string, opts ...StoreOption) *Store {
	s := &Store{path: path, log: logger.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the state file path
func (s *Store) Path() string {
	return s.path
}

// Load reads the state file. A missing or malformed file, or missing and
// invalid fields, are replaced with defaults. Only a failure to read an
// existing file is returned.
func (s *Store) Load() (*State, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrStateRead, s.path, err)
	}

	st, err := s.decode(data)
	if err != nil {
		s.log.Debug("%s: %v, using defaults", s.path, err)
		return Default(), nil
	}

	return st, nil
}

// decode parses a state file, filling defaults for missing or invalid fields.
// It returns ErrStateCorrupted only when the file is not valid TOML.
func (s *Store) decode(data []byte) (*State, error) {
	raw := make(map[string]interface{})
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStateCorrupted, err)
	}

	st := Default()

	if ts, ok := parseTimestamp(raw[keyLastNotif]); ok {
		st.LastNotified = ts
		st.seeded = true
	}

	if name, ok := raw[keyFrequency].(string); ok {
		if policy, err := frequency.Parse(name); err == nil {
			st.Frequency = policy
		} else {
			s.log.Debug("%s: ignoring stored frequency: %v", s.path, err)
		}
	}

	delete(raw, keyLastNotif)
	delete(raw, keyFrequency)
	if len(raw) > 0 {
		st.extra = raw
	}

	return st, nil
}

// parseTimestamp accepts a TOML datetime or an RFC 3339 string
func parseTimestamp(v interface{}) (time.Time, bool) {
	switch ts := v.(type) {
	case time.Time:
		return ts, true
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return time.Time{}, false
		}
		return parsed, true
	default:
		return time.Time{}, false
	}
}

// Save overwrites the state file atomically, keeping unknown keys
func (s *Store) Save(st *State) error {
	raw := make(map[string]interface{}, len(st.extra)+2)
	for k, v := range st.extra {
		raw[k] = v
	}
	raw[keyLastNotif] = st.LastNotified
	raw[keyFrequency] = string(st.Frequency)

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(raw); err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	if err := atomic.WriteFile(s.path, &buf); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	// atomic.WriteFile doesn't set permissions for new files
	if err := os.Chmod(s.path, 0644); err != nil {
		return fmt.Errorf("failed to set state file permissions: %w", err)
	}

	return nil
}

// SetFrequency validates name and stores it as the notification frequency.
// An existing last-notified time is kept; otherwise the sentinel is stored.
// Nothing is written when name is not a known policy.
func (s *Store) SetFrequency(name string) (*State, error) {
	policy, err := frequency.Parse(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFrequency, err)
	}

	st, err := s.Load()
	if err != nil {
		return nil, err
	}

	st.Frequency = policy
	if !st.seeded {
		st.LastNotified = Sentinel
		st.seeded = true
	}

	if err := s.Save(st); err != nil {
		return nil, err
	}
	return st, nil
}
