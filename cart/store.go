package cart

import (
	"sync"
	"time"
)

// SessionStore keeps one Cart per guest token, in process memory only. Carts
// are rebuilt from scratch per visit; idle sessions are dropped by a sweeper.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*session
	ttl      time.Duration
}

type session struct {
	cart     *Cart
	lastSeen time.Time
}

func NewSessionStore() *SessionStore {
	s := &SessionStore{
		sessions: make(map[string]*session),
		ttl:      2 * time.Hour,
	}
	go s.sweep()
	return s
}

// Get returns the cart for token, creating one if absent.
func (s *SessionStore) Get(token string) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[token]; ok {
		sess.lastSeen = time.Now()
		return sess.cart
	}
	sess := &session{cart: New(), lastSeen: time.Now()}
	s.sessions[token] = sess
	return sess.cart
}

func (s *SessionStore) Drop(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

func (s *SessionStore) sweep() {
	ticker := time.NewTicker(15 * time.Minute)
	for range ticker.C {
		cutoff := time.Now().Add(-s.ttl)
		s.mu.Lock()
		for token, sess := range s.sessions {
			if sess.lastSeen.Before(cutoff) {
				delete(s.sessions, token)
			}
		}
		s.mu.Unlock()
	}
}
