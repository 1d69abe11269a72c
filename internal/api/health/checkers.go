package health

import (
	"context"
	"fmt"

	"github.com/driftwoodlabs/showfloor/internal/metrics"
)

// Pinger is satisfied by any store that can verify its database
// connection.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PostgresChecker reports PostgreSQL connectivity for readiness probes.
type PostgresChecker struct {
	pinger Pinger
}

// NewPostgresChecker creates a new PostgreSQL health checker.
func NewPostgresChecker(p Pinger) *PostgresChecker {
	return &PostgresChecker{pinger: p}
}

// Name returns the checker name.
func (c *PostgresChecker) Name() string {
	return "postgres"
}

// Check verifies PostgreSQL is accessible and mirrors the result into
// the database gauge.
func (c *PostgresChecker) Check(ctx context.Context) error {
	if c.pinger == nil {
		metrics.DatabaseUp.Set(0)
		return fmt.Errorf("database not configured")
	}

	if err := c.pinger.Ping(ctx); err != nil {
		metrics.DatabaseUp.Set(0)
		return err
	}

	metrics.DatabaseUp.Set(1)
	return nil
}
