package memory

import (
	"context"
	"sync"

	"docrank/internal/docstore"
	"docrank/internal/domain"
)

// Storage is an in-memory document store. The corpus is fixed at construction;
// uploads live in per-session pools. Every list call returns a copy, so a
// search works on a snapshot while uploads keep arriving.
type Storage struct {
	mu       sync.RWMutex
	corpus   []domain.Document
	sessions map[string][]domain.Document
}

// NewStorage creates a store serving corpus as the server documents.
func NewStorage(corpus []domain.Document) *Storage {
	docs := make([]domain.Document, len(corpus))
	copy(docs, corpus)
	for i := range docs {
		docs[i].Source = domain.SourceServer
	}
	return &Storage{corpus: docs, sessions: make(map[string][]domain.Document)}
}

func (s *Storage) ListCorpus(_ context.Context) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Document, len(s.corpus))
	copy(out, s.corpus)
	return out, nil
}

func (s *Storage) ListSession(_ context.Context, sessionID string) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pool := s.sessions[sessionID]
	out := make([]domain.Document, len(pool))
	copy(out, pool)
	return out, nil
}

func (s *Storage) AddUpload(_ context.Context, sessionID, name string, text *string) (domain.Document, error) {
	doc, err := docstore.NewUpload(name, text)
	if err != nil {
		return domain.Document{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = append(s.sessions[sessionID], doc)
	return doc, nil
}

func (s *Storage) RemoveUpload(_ context.Context, sessionID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	pool := s.sessions[sessionID]
	for i, d := range pool {
		if d.ID != id {
			continue
		}
		// build a new slice so earlier snapshots are never touched
		next := make([]domain.Document, 0, len(pool)-1)
		next = append(next, pool[:i]...)
		next = append(next, pool[i+1:]...)
		if len(next) == 0 {
			delete(s.sessions, sessionID)
		} else {
			s.sessions[sessionID] = next
		}
		return nil
	}
	return domain.ErrDocumentNotFound
}

func (s *Storage) MarkProcessed(_ context.Context, sessionID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	pool := s.sessions[sessionID]
	if len(pool) == 0 {
		return nil
	}
	next := make([]domain.Document, len(pool))
	copy(next, pool)
	for i := range next {
		if _, ok := want[next[i].ID]; ok && next[i].Status == domain.StatusReady {
			next[i].Status = domain.StatusProcessed
		}
	}
	s.sessions[sessionID] = next
	return nil
}

func (s *Storage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = make(map[string][]domain.Document)
	return nil
}
