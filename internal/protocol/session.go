package protocol

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/applyforge/applyforge/internal/domain"
)

// Session owns the short-lived state of one tab: the last portal detection.
// The cache only spares redundant DOM walks for informational reads; every
// operation that needs a correct answer re-detects against the live DOM.
type Session struct {
	ID        uuid.UUID
	CreatedAt time.Time

	mu            sync.Mutex
	lastDetection *domain.PortalDetection
}

// NewSession creates an empty session
func NewSession() *Session {
	return &Session{
		ID:        uuid.New(),
		CreatedAt: time.Now().UTC(),
	}
}

// Remember stores the most recent detection
func (s *Session) Remember(detection domain.PortalDetection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastDetection = &detection
}

// LastDetection returns the most recent detection, if any
func (s *Session) LastDetection() (domain.PortalDetection, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastDetection == nil {
		return domain.PortalDetection{}, false
	}
	return *s.lastDetection, true
}
