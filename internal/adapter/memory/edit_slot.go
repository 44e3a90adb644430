package memory

import (
	"context"
	"sync"

	"skillink/internal/core/domain"
	"skillink/internal/core/ports"
)

// EditSlot is the process-wide editing pointer. The last Set wins.
type EditSlot struct {
	mu      sync.Mutex
	session domain.EditSession
}

var _ ports.EditSlot = (*EditSlot)(nil)

func NewEditSlot() *EditSlot {
	return &EditSlot{}
}

func (s *EditSlot) Get(_ context.Context) (domain.EditSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.session
	session.Snapshot = session.Snapshot.Clone()
	return session, nil
}

func (s *EditSlot) Set(_ context.Context, session domain.EditSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session.Snapshot = session.Snapshot.Clone()
	s.session = session
	return nil
}

func (s *EditSlot) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = domain.EditSession{}
	return nil
}
