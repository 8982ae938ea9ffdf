// Package config provides configuration management for the dunemcp server.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"dunemcp/src/respond"
)

// Config holds the application configuration. All fields are optional;
// absent settings select the in-process defaults (in-memory broker and
// store, calibrated token budget).
type Config struct {
	// Brokers is the Redpanda/Kafka seed broker list. Empty means the
	// in-memory broker.
	Brokers []string
	// PostgresDSN enables the postgres session store when set.
	PostgresDSN string
	// TokenBudget is the hard response token ceiling.
	TokenBudget int
}

// LoadFromEnv loads configuration from environment variables:
// DUNEMCP_BROKERS (comma-separated), DUNEMCP_POSTGRES_DSN,
// DUNEMCP_TOKEN_BUDGET.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		TokenBudget: respond.TokenBudget,
	}

	if brokers := os.Getenv("DUNEMCP_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.Brokers = append(cfg.Brokers, b)
			}
		}
	}

	cfg.PostgresDSN = os.Getenv("DUNEMCP_POSTGRES_DSN")

	if budget := os.Getenv("DUNEMCP_TOKEN_BUDGET"); budget != "" {
		n, err := strconv.Atoi(budget)
		if err != nil || n <= respond.MetadataReserve {
			return nil, fmt.Errorf("DUNEMCP_TOKEN_BUDGET must be an integer greater than %d, got %q", respond.MetadataReserve, budget)
		}
		cfg.TokenBudget = n
	}

	return cfg, nil
}

// MustLoadFromEnv loads configuration from environment variables and panics on error.
// This is useful for initialization in main() where configuration errors should be fatal.
func MustLoadFromEnv() *Config {
	cfg, err := LoadFromEnv()
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}

// Budget returns the response budget implied by the configuration.
func (c *Config) Budget() respond.Budget {
	b := respond.DefaultBudget()
	b.Limit = c.TokenBudget
	return b
}
