// Package session keeps one host page and cart controller per browser
// session for as long as the page is in use.
package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/fairyhunter13/course-cart-simulator/internal/controller"
	"github.com/fairyhunter13/course-cart-simulator/internal/dom"
	"github.com/fairyhunter13/course-cart-simulator/internal/obs"
)

var (
	ErrNotFound = errors.New("session not found")
	ErrFull     = errors.New("session limit reached")
)

type entry struct {
	mu       sync.Mutex
	ctrl     *controller.Controller
	lastSeen time.Time
}

// Store holds sessions keyed by id.
type Store struct {
	page []byte
	ttl  time.Duration
	max  int
	now  func() time.Time

	mu sync.RWMutex
	m  map[string]*entry

	seq     Sequencer
	created atomic.Uint64
	expired atomic.Uint64
}

// New builds a Store serving copies of page. A zero ttl disables expiry and
// a zero max allows any number of live sessions.
func New(page []byte, ttl time.Duration, max int) *Store {
	return &Store{page: page, ttl: ttl, max: max, now: time.Now, m: make(map[string]*entry)}
}

func (s *Store) full() bool {
	return s.max > 0 && len(s.m) >= s.max
}

// Create parses a fresh copy of the host page, mounts a controller on it and
// returns the new session id.
func (s *Store) Create() (string, error) {
	s.mu.RLock()
	full := s.full()
	s.mu.RUnlock()
	if full {
		return "", ErrFull
	}
	doc, err := dom.ParseBytes(s.page)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	e := &entry{ctrl: controller.Mount(doc), lastSeen: s.now()}
	s.mu.Lock()
	if s.full() {
		s.mu.Unlock()
		return "", ErrFull
	}
	s.m[id] = e
	s.mu.Unlock()
	s.created.Add(1)
	obs.Logger.Info("session_created", "session_id", id, "inert", e.ctrl.Inert())
	return id, nil
}

// Do runs fn with exclusive access to the session's controller.
func (s *Store) Do(id string, fn func(*controller.Controller)) error {
	s.mu.RLock()
	e, ok := s.m[id]
	s.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastSeen = s.now()
	fn(e.ctrl)
	return nil
}

func (s *Store) Exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.m[id]
	return ok
}

// Delete discards a session. It reports whether one existed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[id]; !ok {
		return false
	}
	delete(s.m, id)
	return true
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}

// NextEvent returns the next event sequence number.
func (s *Store) NextEvent() uint64 { return s.seq.Next() }

// Metrics returns counters for observability.
func (s *Store) Metrics() (active int, created, expired, events uint64) {
	return s.Len(), s.created.Load(), s.expired.Load(), s.seq.Last()
}

// Sweep drops sessions idle for longer than the ttl and returns how many
// were removed.
func (s *Store) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.ttl)
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, e := range s.m {
		if !e.mu.TryLock() {
			continue
		}
		idle := e.lastSeen.Before(cutoff)
		e.mu.Unlock()
		if idle {
			delete(s.m, id)
			n++
		}
	}
	s.expired.Add(uint64(n))
	return n
}

// StartSweeper runs Sweep every interval until ctx is done.
func (s *Store) StartSweeper(ctx context.Context, interval time.Duration) {
	if s.ttl <= 0 || interval <= 0 {
		return
	}
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				if n := s.Sweep(); n > 0 {
					obs.Logger.Info("sessions_swept", "expired", n, "active", s.Len())
				}
			}
		}
	}()
}
