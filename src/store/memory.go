// Package store provides an in-memory store implementation.
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"dunemcp/src/contracts"
)

// MemoryStore is an in-memory implementation of Store.
// The default backend for single-process deployments and tests.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	// order tracks creation order so LatestSession does not depend on
	// map iteration.
	order []string
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Session),
	}
}

// CreateSession opens a new session record.
func (s *MemoryStore) CreateSession(ctx context.Context, sessionID string, targets []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[sessionID]; exists {
		return nil
	}

	s.sessions[sessionID] = &Session{
		ID:        sessionID,
		Targets:   targets,
		Status:    contracts.StatusBuilding,
		CreatedAt: time.Now(),
	}
	s.order = append(s.order, sessionID)

	return nil
}

// UpdateStatus records a status transition for a session.
func (s *MemoryStore) UpdateStatus(ctx context.Context, sessionID string, status contracts.BuildStatus, summary *contracts.BuildSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, exists := s.sessions[sessionID]
	if !exists {
		return fmt.Errorf("session not found: %s", sessionID)
	}

	session.Status = status
	if summary != nil {
		session.Summary = summary
	}
	return nil
}

// AppendDiagnostics adds diagnostics to a session in arrival order.
func (s *MemoryStore) AppendDiagnostics(ctx context.Context, sessionID string, diags ...contracts.Diagnostic) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, exists := s.sessions[sessionID]
	if !exists {
		return fmt.Errorf("session not found: %s", sessionID)
	}

	session.Diagnostics = append(session.Diagnostics, diags...)
	return nil
}

// GetSession retrieves a session by id.
func (s *MemoryStore) GetSession(ctx context.Context, sessionID string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, exists := s.sessions[sessionID]
	if !exists {
		return nil, fmt.Errorf("session not found: %s", sessionID)
	}

	return copySession(session), nil
}

// LatestSession retrieves the most recently created session.
func (s *MemoryStore) LatestSession(ctx context.Context) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.order) == 0 {
		return nil, fmt.Errorf("no sessions recorded")
	}

	return copySession(s.sessions[s.order[len(s.order)-1]]), nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}

// copySession returns a copy so callers never alias the store's slices.
func copySession(session *Session) *Session {
	out := *session
	out.Diagnostics = make([]contracts.Diagnostic, len(session.Diagnostics))
	copy(out.Diagnostics, session.Diagnostics)
	return &out
}
