package mcp

import (
	"context"
	"fmt"

	"dunemcp/src/broker"
	"dunemcp/src/config"
	"dunemcp/src/ingest"
	"dunemcp/src/logger"
	"dunemcp/src/store"
)

// NewServerFromConfig wires the full deployment implied by the
// configuration: session store (postgres or in-memory), broker (Redpanda or
// in-memory), collector, and the MCP server on top. The collector runs until
// ctx is cancelled; the returned cleanup closes the broker and store.
func NewServerFromConfig(ctx context.Context, cfg *config.Config, log logger.Logger) (*Server, func(), error) {
	var sessions store.Store
	var err error
	if cfg.PostgresDSN != "" {
		sessions, err = store.NewPostgresStore(cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open session store: %w", err)
		}
		log.Info("using postgres session store")
	} else {
		sessions = store.NewMemoryStore()
	}

	var brk broker.Broker
	if len(cfg.Brokers) > 0 {
		brk, err = broker.NewRedpandaBroker(cfg.Brokers)
		if err != nil {
			sessions.Close()
			return nil, nil, fmt.Errorf("failed to connect broker: %w", err)
		}
		log.Info("consuming build events from %v", cfg.Brokers)
	} else {
		brk = broker.NewInMemoryBroker()
	}

	collector := ingest.NewCollector(sessions, log)
	go func() {
		if err := collector.Run(ctx, brk); err != nil && ctx.Err() == nil {
			log.Error("collector stopped: %v", err)
		}
	}()

	srv := NewServer(collector, sessions, cfg.Budget(), log)

	cleanup := func() {
		brk.Close()
		sessions.Close()
	}
	return srv, cleanup, nil
}
