package sessionstore

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"pawbook/internal/domain/booking"
	"pawbook/internal/pkg/clock"
	"pawbook/internal/pkg/errs"

	"github.com/google/uuid"
)

// MemoryStore keeps live wizard sessions in process memory. Sessions are
// working drafts, not records: anything idle past the TTL is swept.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*entry

	ttl    time.Duration
	clock  clock.Clock
	logger *slog.Logger

	stop     chan struct{}
	done     chan struct{}
	sweeping bool
}

type entry struct {
	session  *booking.Session
	lastSeen time.Time
}

func NewMemoryStore(ttl time.Duration, clk clock.Clock, logger *slog.Logger) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[uuid.UUID]*entry),
		ttl:      ttl,
		clock:    clk,
		logger:   logger,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (s *MemoryStore) Save(_ context.Context, sess *booking.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID()] = &entry{session: sess, lastSeen: s.clock.Now()}
	return nil
}

func (s *MemoryStore) Find(_ context.Context, id uuid.UUID) (*booking.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[id]
	if !ok {
		return nil, errs.ErrSessionNotFound
	}
	if s.expiredLocked(e) {
		delete(s.sessions, id)
		return nil, errs.ErrSessionNotFound
	}
	e.lastSeen = s.clock.Now()
	return e.session, nil
}

func (s *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// StartSweeper expires idle sessions in the background until Close is
// called.
func (s *MemoryStore) StartSweeper(interval time.Duration) {
	s.mu.Lock()
	if s.sweeping {
		s.mu.Unlock()
		return
	}
	s.sweeping = true
	s.mu.Unlock()

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.sweep()
			case <-s.stop:
				return
			}
		}
	}()
}

func (s *MemoryStore) Close() {
	s.mu.Lock()
	sweeping := s.sweeping
	s.mu.Unlock()
	close(s.stop)
	if sweeping {
		<-s.done
	}
}

func (s *MemoryStore) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, e := range s.sessions {
		if s.expiredLocked(e) {
			delete(s.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		s.logger.Debug("swept expired sessions", "count", removed)
	}
}

func (s *MemoryStore) expiredLocked(e *entry) bool {
	if s.ttl <= 0 {
		return false
	}
	return s.clock.Now().Sub(e.lastSeen) > s.ttl
}
