// Package registration holds in-progress two-step registration drafts.
//
// A draft is the server-side counterpart of the browser's wizard state: one
// instance per active registration session, addressed by an opaque token the
// client carries between steps. Drafts are never persisted; a completed
// submission or the TTL sweep discards them.
package registration

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"fleet_registry/internal/validation"
)

var (
	// ErrDraftNotFound is returned when a token is unknown or the draft
	// already expired.
	ErrDraftNotFound = errors.New("registration draft not found or expired")

	// ErrStepOneIncomplete is returned when step 2 is attempted before the
	// identity fields from step 1 were saved.
	ErrStepOneIncomplete = errors.New("step 1 data is incomplete")
)

// Draft accumulates form data across the two registration steps.
type Draft struct {
	Token     string
	Data      validation.ApplicantInput
	UpdatedAt time.Time
}

// StepOneComplete reports whether the draft carries enough step-1 data to
// proceed: a full name plus at least one contact channel.
func (d *Draft) StepOneComplete() bool {
	if d.Data.FullName == "" {
		return false
	}
	return d.Data.PrimaryPhoneNumber != "" || d.Data.EmailAddress != ""
}

// Store owns all in-flight drafts. Handlers receive the store explicitly;
// there is no package-level instance.
type Store struct {
	mu     sync.Mutex
	drafts map[string]*Draft
	ttl    time.Duration
	stop   chan struct{}
}

// NewStore creates a store whose drafts expire after ttl of inactivity.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		drafts: make(map[string]*Draft),
		ttl:    ttl,
		stop:   make(chan struct{}),
	}
}

// Begin creates an empty draft with a fresh token.
func (s *Store) Begin() *Draft {
	d := &Draft{
		Token:     uuid.NewString(),
		UpdatedAt: time.Now(),
	}
	s.mu.Lock()
	s.drafts[d.Token] = d
	s.mu.Unlock()
	return d
}

// Get returns a copy of the draft for token.
func (s *Store) Get(token string) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[token]
	if !ok || s.expired(d, time.Now()) {
		return Draft{}, ErrDraftNotFound
	}
	return *d, nil
}

// Merge applies a partial field update to the draft under the store lock and
// returns the merged copy. apply receives the draft's current data and
// overwrites whatever fields its step owns.
func (s *Store) Merge(token string, apply func(*validation.ApplicantInput)) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[token]
	if !ok || s.expired(d, time.Now()) {
		return Draft{}, ErrDraftNotFound
	}
	apply(&d.Data)
	d.UpdatedAt = time.Now()
	return *d, nil
}

// Discard removes the draft, typically after a successful submission.
func (s *Store) Discard(token string) {
	s.mu.Lock()
	delete(s.drafts, token)
	s.mu.Unlock()
}

// Len reports the number of live drafts.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.drafts)
}

// Sweep drops every draft whose last update is older than the TTL and
// returns how many were removed.
func (s *Store) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for token, d := range s.drafts {
		if s.expired(d, now) {
			delete(s.drafts, token)
			removed++
		}
	}
	return removed
}

// StartJanitor sweeps expired drafts on the given interval until Close is
// called.
func (s *Store) StartJanitor(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.Sweep(time.Now())
			case <-s.stop:
				return
			}
		}
	}()
}

// Close stops the janitor goroutine.
func (s *Store) Close() {
	close(s.stop)
}

func (s *Store) expired(d *Draft, now time.Time) bool {
	return s.ttl > 0 && now.Sub(d.UpdatedAt) > s.ttl
}
