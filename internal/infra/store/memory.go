package store

import (
	"context"
	"sync"

	"github.com/allycar/outreach/internal/entity"
)

// MemoryStore guarda as sessões no processo, como a operação roda hoje:
// o estado das conversas não sobrevive a restart. Para durabilidade,
// use o SessionRepository do pacote database atrás da mesma interface.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]entity.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]entity.Session),
	}
}

// Get devolve uma cópia da sessão; mutações só entram via Save.
func (s *MemoryStore) Get(_ context.Context, phone string) (*entity.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[phone]
	if !ok {
		return nil, entity.ErrSessionNotFound
	}
	return &session, nil
}

// Save insere ou sobrescreve a sessão do telefone, sem merge.
func (s *MemoryStore) Save(_ context.Context, session *entity.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.Phone] = *session
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, phone)
	return nil
}

func (s *MemoryStore) All(_ context.Context) (map[string]*entity.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]*entity.Session, len(s.sessions))
	for phone, session := range s.sessions {
		copied := session
		out[phone] = &copied
	}
	return out, nil
}

func (s *MemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions), nil
}
