package registration

import (
	"errors"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/aanand-mishra/hackathon-api/internal/form"
)

// ErrSessionNotFound is returned for unknown or expired session ids.
var ErrSessionNotFound = errors.New("registration session not found")

// Sessions keeps one wizard per visitor between requests. Idle sessions
// expire after ttl; every lookup pushes the expiry back.
type Sessions struct {
	store    Creator
	notifier form.Notifier
	now      func() time.Time
	ttl      time.Duration
	cache    *gocache.Cache
}

// NewSessions creates an empty session table. cleanupInterval controls how
// often expired wizards are dropped from memory.
func NewSessions(store Creator, notifier form.Notifier, ttl, cleanupInterval time.Duration) *Sessions {
	return &Sessions{
		store:    store,
		notifier: notifier,
		now:      time.Now,
		ttl:      ttl,
		cache:    gocache.New(ttl, cleanupInterval),
	}
}

// Start creates a wizard at step 0 and returns its session id.
func (s *Sessions) Start() (string, *form.Wizard, error) {
	w, err := NewWizard(s.store, s.notifier, s.now)
	if err != nil {
		return "", nil, err
	}

	id := uuid.NewString()
	s.cache.Set(id, w, s.ttl)
	return id, w, nil
}

// Get returns the wizard for id and refreshes its expiry.
func (s *Sessions) Get(id string) (*form.Wizard, error) {
	v, found := s.cache.Get(id)
	if !found {
		return nil, ErrSessionNotFound
	}

	w, ok := v.(*form.Wizard)
	if !ok {
		return nil, ErrSessionNotFound
	}

	s.cache.Set(id, w, s.ttl)
	return w, nil
}

// Len reports how many sessions are live, expired-but-uncollected ones
// included.
func (s *Sessions) Len() int {
	return s.cache.ItemCount()
}
