// Package store defines the interface for build-session storage. The
// response pipeline itself is stateless; sessions are its input, collected
// by the ingest layer from the build watcher.
package store

import (
	"context"
	"time"

	"dunemcp/src/contracts"
)

// Session is one build run: its target selection, current status, and every
// diagnostic observed so far.
type Session struct {
	ID          string
	Targets     []string
	Status      contracts.BuildStatus
	Summary     *contracts.BuildSummary
	Diagnostics []contracts.Diagnostic
	CreatedAt   time.Time
}

// Store defines the interface for persisting build sessions.
type Store interface {
	// CreateSession opens a new session record. Creating an existing
	// session id is a no-op.
	CreateSession(ctx context.Context, sessionID string, targets []string) error

	// UpdateStatus records a status transition for a session.
	UpdateStatus(ctx context.Context, sessionID string, status contracts.BuildStatus, summary *contracts.BuildSummary) error

	// AppendDiagnostics adds diagnostics to a session in arrival order.
	AppendDiagnostics(ctx context.Context, sessionID string, diags ...contracts.Diagnostic) error

	// GetSession retrieves a session by id.
	GetSession(ctx context.Context, sessionID string) (*Session, error)

	// LatestSession retrieves the most recently created session.
	LatestSession(ctx context.Context) (*Session, error)

	// Close closes the store connection
	Close() error
}
