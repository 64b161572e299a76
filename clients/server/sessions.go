package server

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vck-social/postergen/pkg/session"
)

var errSessionNotFound = errors.New("session not found")

type entry struct {
	sess     *session.Session
	lastUsed time.Time
}

// sessionManager holds the editing sessions of connected clients.
type sessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	now      func() time.Time
}

func newSessionManager() *sessionManager {
	return &sessionManager{sessions: make(map[string]*entry), now: time.Now}
}

func (sm *sessionManager) add(s *session.Session) string {
	id := uuid.NewString()
	sm.mu.Lock()
	sm.sessions[id] = &entry{sess: s, lastUsed: sm.now()}
	sm.mu.Unlock()
	return id
}

func (sm *sessionManager) get(id string) (*session.Session, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	e, ok := sm.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errSessionNotFound, id)
	}
	e.lastUsed = sm.now()
	return e.sess, nil
}

func (sm *sessionManager) remove(id string) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	_, ok := sm.sessions[id]
	delete(sm.sessions, id)
	return ok
}

func (sm *sessionManager) len() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

// expire drops sessions idle for longer than ttl and returns how many went.
func (sm *sessionManager) expire(ttl time.Duration) int {
	cutoff := sm.now().Add(-ttl)
	sm.mu.Lock()
	defer sm.mu.Unlock()
	n := 0
	for id, e := range sm.sessions {
		if e.lastUsed.Before(cutoff) {
			delete(sm.sessions, id)
			n++
		}
	}
	return n
}
