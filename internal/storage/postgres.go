package storage

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver
	"github.com/jmoiron/sqlx"
)

// Config contains PostgreSQL connection settings.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	// AdminDB is the maintenance database used while Database does not
	// exist yet.
	AdminDB string
	SSLMode string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnectTimeout  time.Duration
}

// SetDefaults applies default values for missing configuration.
func (c *Config) SetDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 5432
	}
	if c.User == "" {
		c.User = "postgres"
	}
	if c.Database == "" {
		c.Database = "showfloor"
	}
	if c.AdminDB == "" {
		c.AdminDB = "postgres"
	}
	if c.SSLMode == "" {
		c.SSLMode = "disable"
	}
	if c.MaxOpenConns == 0 {
		c.MaxOpenConns = 20
	}
	if c.MaxIdleConns == 0 {
		c.MaxIdleConns = 5
	}
	if c.ConnMaxLifetime == 0 {
		c.ConnMaxLifetime = 30 * time.Minute
	}
	if c.ConnectTimeout == 0 {
		c.ConnectTimeout = 5 * time.Second
	}
}

// DSN returns the connection string for the application database.
func (c *Config) DSN() string {
	return c.dsn(c.Database)
}

// AdminDSN returns the connection string for the maintenance database.
func (c *Config) AdminDSN() string {
	return c.dsn(c.AdminDB)
}

func (c *Config) dsn(database string) string {
	user := url.User(c.User)
	if c.Password != "" {
		user = url.UserPassword(c.User, c.Password)
	}
	u := url.URL{
		Scheme: "postgres",
		User:   user,
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:   "/" + database,
	}
	q := url.Values{}
	q.Set("sslmode", c.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// PostgresStore implements Store using PostgreSQL via sqlx over pgx.
type PostgresStore struct {
	cfg Config
	db  *sqlx.DB

	users    *pgUserRepo
	projects *pgProjectRepo
	metrics  *pgMetricRepo
}

// NewPostgresStore creates a new PostgreSQL store.
func NewPostgresStore(cfg Config) *PostgresStore {
	cfg.SetDefaults()
	return &PostgresStore{cfg: cfg}
}

// Open initializes the connection pool. An unreachable server is logged
// but not an error: the HTTP layer still has to come up and serve its
// degraded pages, and the pool reconnects on its own once the database
// is back.
func (s *PostgresStore) Open() error {
	db, err := sqlx.Open("pgx", s.cfg.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(s.cfg.MaxOpenConns)
	db.SetMaxIdleConns(s.cfg.MaxIdleConns)
	db.SetConnMaxLifetime(s.cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ConnectTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		log.Printf("storage: database %q not reachable yet: %v", s.cfg.Database, err)
	}

	s.db = db
	s.users = &pgUserRepo{db: db}
	s.projects = &pgProjectRepo{db: db}
	s.metrics = &pgMetricRepo{db: db}
	return nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Ping verifies the database is reachable.
func (s *PostgresStore) Ping(ctx context.Context) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	return s.db.PingContext(ctx)
}

// DB returns the underlying pool, for tests and health checks.
func (s *PostgresStore) DB() *sqlx.DB {
	return s.db
}

// Users returns the user repository.
func (s *PostgresStore) Users() UserRepository {
	return s.users
}

// Projects returns the project repository.
func (s *PostgresStore) Projects() ProjectRepository {
	return s.projects
}

// Metrics returns the site counter repository.
func (s *PostgresStore) Metrics() MetricRepository {
	return s.metrics
}
