// Package ingest provides the collector that folds build-watcher events into
// the session store. It is the in-repo implementation of the build-status
// provider boundary: the watcher publishes diagnostics and status
// transitions on the broker, the collector accumulates them, and the
// response pipeline reads the resulting sessions.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"

	"dunemcp/src/broker"
	"dunemcp/src/contracts"
	"dunemcp/src/logger"
	"dunemcp/src/provider"
	"dunemcp/src/store"
)

// Collector consumes diagnostic and status events and persists them.
type Collector struct {
	store  store.Store
	logger logger.Logger
}

// NewCollector creates a new collector over the given session store.
func NewCollector(st store.Store, log logger.Logger) *Collector {
	return &Collector{
		store:  st,
		logger: log,
	}
}

// Run subscribes to the watcher topics and processes events until the
// context is cancelled or the broker closes.
func (c *Collector) Run(ctx context.Context, brk broker.Broker) error {
	statusCh, err := brk.Subscribe(ctx, contracts.TopicStatus, "dunemcp-collector")
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", contracts.TopicStatus, err)
	}

	diagCh, err := brk.Subscribe(ctx, contracts.TopicDiagnostics, "dunemcp-collector")
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", contracts.TopicDiagnostics, err)
	}

	for {
		select {
		case msg, ok := <-statusCh:
			if !ok {
				return nil
			}
			if err := c.handleStatus(ctx, msg.Value); err != nil {
				c.logger.Error("status event dropped: %v", err)
			}
		case msg, ok := <-diagCh:
			if !ok {
				return nil
			}
			if err := c.handleDiagnostic(ctx, msg.Value); err != nil {
				c.logger.Error("diagnostic event dropped: %v", err)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// handleStatus opens sessions on "building" and records transitions.
func (c *Collector) handleStatus(ctx context.Context, value []byte) error {
	var event contracts.BuildStatusEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return fmt.Errorf("malformed status event: %w", err)
	}
	if event.SessionID == "" {
		return fmt.Errorf("status event missing session_id")
	}

	if err := c.store.CreateSession(ctx, event.SessionID, event.Targets); err != nil {
		return err
	}

	c.logger.Debug("session %s -> %s", event.SessionID, event.Status)
	return c.store.UpdateStatus(ctx, event.SessionID, event.Status, event.Summary)
}

// handleDiagnostic appends one diagnostic to its session, opening the
// session implicitly if the status event has not arrived yet.
func (c *Collector) handleDiagnostic(ctx context.Context, value []byte) error {
	var event contracts.DiagnosticEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return fmt.Errorf("malformed diagnostic event: %w", err)
	}
	if event.SessionID == "" {
		return fmt.Errorf("diagnostic event missing session_id")
	}

	if err := c.store.CreateSession(ctx, event.SessionID, nil); err != nil {
		return err
	}

	return c.store.AppendDiagnostics(ctx, event.SessionID, event.Diagnostic)
}

// Report implements provider.BuildStatusProvider over the collected
// sessions: the latest session is the current build. Targets are accepted
// for pass-through symmetry; the watcher already scoped the session.
func (c *Collector) Report(ctx context.Context, targets []string) (*provider.BuildReport, error) {
	session, err := c.store.LatestSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", provider.ErrNoSessions, err)
	}

	return &provider.BuildReport{
		SessionID:   session.ID,
		Targets:     session.Targets,
		Status:      session.Status,
		Diagnostics: session.Diagnostics,
		Summary:     session.Summary,
		Timestamp:   session.CreatedAt,
	}, nil
}
