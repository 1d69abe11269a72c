package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"regexp"

	"github.com/jmoiron/sqlx"
)

// bootstrapConn is the slice of a database pool the bootstrap needs.
// *sqlx.DB satisfies it.
type bootstrapConn interface {
	PingContext(ctx context.Context) error
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	Close() error
}

// identRe matches names safe to interpolate into CREATE DATABASE, which
// cannot take a bind parameter.
var identRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Bootstrapper prepares the application database on startup: it creates
// the database and schema when missing and loads demo content into an
// empty instance. Every step is idempotent. Failures are logged and
// swallowed; the server starts either way and reports database trouble
// per request.
type Bootstrapper struct {
	cfg     Config
	connect func(dsn string) (bootstrapConn, error)
}

// NewBootstrapper creates a Bootstrapper for the given connection config.
func NewBootstrapper(cfg Config) *Bootstrapper {
	cfg.SetDefaults()
	return &Bootstrapper{cfg: cfg, connect: openBootstrapConn}
}

func openBootstrapConn(dsn string) (bootstrapConn, error) {
	db, err := sqlx.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(1)
	return db, nil
}

// Run executes the bootstrap procedure. It never returns an error.
func (b *Bootstrapper) Run(ctx context.Context) {
	if err := b.run(ctx); err != nil {
		log.Printf("bootstrap: %v (continuing startup)", err)
	}
}

func (b *Bootstrapper) run(ctx context.Context) error {
	if !identRe.MatchString(b.cfg.Database) {
		return fmt.Errorf("invalid database name %q", b.cfg.Database)
	}

	// Server-level pool first: the target database may not exist yet.
	admin, err := b.open(ctx, b.cfg.AdminDSN())
	if err != nil {
		return fmt.Errorf("connect to database server: %w", err)
	}
	err = b.ensureDatabase(ctx, admin)
	b.close("server-level", admin)
	if err != nil {
		return err
	}

	app, err := b.open(ctx, b.cfg.DSN())
	if err != nil {
		return fmt.Errorf("connect to %s: %w", b.cfg.Database, err)
	}
	defer b.close("application", app)

	if err := b.createSchema(ctx, app); err != nil {
		return err
	}
	return b.seedIfEmpty(ctx, app)
}

// open dials and verifies a connection; sqlx.Open alone is lazy.
func (b *Bootstrapper) open(ctx context.Context, dsn string) (bootstrapConn, error) {
	conn, err := b.connect(dsn)
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, b.cfg.ConnectTimeout)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		b.close("unverified", conn)
		return nil, err
	}
	return conn, nil
}

// close releases a pool. A close failure is logged, never escalated.
func (b *Bootstrapper) close(which string, conn bootstrapConn) {
	if err := conn.Close(); err != nil {
		log.Printf("bootstrap: close %s pool: %v", which, err)
	}
}

func (b *Bootstrapper) ensureDatabase(ctx context.Context, conn bootstrapConn) error {
	var exists bool
	err := conn.GetContext(ctx, &exists,
		"SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", b.cfg.Database)
	if err != nil {
		return fmt.Errorf("check database %q: %w", b.cfg.Database, err)
	}
	if exists {
		return nil
	}
	// CREATE DATABASE cannot be parameterized; the name was validated in run.
	if _, err := conn.ExecContext(ctx, "CREATE DATABASE "+b.cfg.Database); err != nil {
		return fmt.Errorf("create database %q: %w", b.cfg.Database, err)
	}
	log.Printf("bootstrap: created database %q", b.cfg.Database)
	return nil
}

func (b *Bootstrapper) createSchema(ctx context.Context, conn bootstrapConn) error {
	for _, stmt := range schemaStatements {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// seedIfEmpty loads the demo content when the users table has no rows.
// A populated database is left exactly as it is.
func (b *Bootstrapper) seedIfEmpty(ctx context.Context, conn bootstrapConn) error {
	var count int64
	if err := conn.GetContext(ctx, &count, "SELECT COUNT(*) FROM users"); err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	userIDs := make([]int64, len(seedUsers))
	for i, u := range seedUsers {
		err := conn.GetContext(ctx, &userIDs[i],
			"INSERT INTO users (name, email, role) VALUES ($1, $2, $3) RETURNING id",
			u.Name, u.Email, u.Role)
		if err != nil {
			return fmt.Errorf("seed user %s: %w", u.Email, err)
		}
	}

	for _, p := range seedProjects {
		_, err := conn.ExecContext(ctx,
			"INSERT INTO projects (title, description, status, user_id) VALUES ($1, $2, $3, $4)",
			p.Title, p.Description, p.Status, userIDs[p.Owner])
		if err != nil {
			return fmt.Errorf("seed project %s: %w", p.Title, err)
		}
	}

	// Counters are upserted so a half-seeded metrics table converges to
	// the known values.
	for _, m := range seedMetrics {
		_, err := conn.ExecContext(ctx, `
			INSERT INTO site_metrics (name, value, updated_at)
			VALUES ($1, $2, CURRENT_TIMESTAMP)
			ON CONFLICT (name) DO UPDATE
			SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
			m.Name, m.Value)
		if err != nil {
			return fmt.Errorf("seed metric %s: %w", m.Name, err)
		}
	}

	log.Printf("bootstrap: seeded %d users, %d projects, %d metrics",
		len(seedUsers), len(seedProjects), len(seedMetrics))
	return nil
}
