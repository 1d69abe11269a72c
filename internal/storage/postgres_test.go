package storage

import (
	"strings"
	"testing"
)

func TestConfigSetDefaults(t *testing.T) {
	cfg := Config{}
	cfg.SetDefaults()

	if cfg.Host != "localhost" {
		t.Errorf("Host = %q, want localhost", cfg.Host)
	}
	if cfg.Port != 5432 {
		t.Errorf("Port = %d, want 5432", cfg.Port)
	}
	if cfg.Database != "showfloor" {
		t.Errorf("Database = %q, want showfloor", cfg.Database)
	}
	if cfg.AdminDB != "postgres" {
		t.Errorf("AdminDB = %q, want postgres", cfg.AdminDB)
	}
	if cfg.SSLMode != "disable" {
		t.Errorf("SSLMode = %q, want disable", cfg.SSLMode)
	}
	if cfg.MaxOpenConns != 20 {
		t.Errorf("MaxOpenConns = %d, want 20", cfg.MaxOpenConns)
	}
}

func TestConfigDSNTargetsBothDatabases(t *testing.T) {
	cfg := Config{Host: "db.internal", Port: 5433, User: "app", Password: "secret", Database: "showfloor"}
	cfg.SetDefaults()

	dsn := cfg.DSN()
	if !strings.Contains(dsn, "db.internal:5433") {
		t.Errorf("DSN missing host: %s", dsn)
	}
	if !strings.Contains(dsn, "/showfloor?") {
		t.Errorf("DSN targets wrong database: %s", dsn)
	}
	if !strings.Contains(dsn, "sslmode=disable") {
		t.Errorf("DSN missing sslmode: %s", dsn)
	}

	admin := cfg.AdminDSN()
	if !strings.Contains(admin, "/postgres?") {
		t.Errorf("admin DSN targets wrong database: %s", admin)
	}
}

func TestConfigDSNEscapesPassword(t *testing.T) {
	cfg := Config{User: "app", Password: "p@ss w0rd/"}
	cfg.SetDefaults()

	dsn := cfg.DSN()
	if strings.Contains(dsn, "p@ss w0rd") {
		t.Errorf("password not escaped: %s", dsn)
	}
	if !strings.Contains(dsn, "p%40ss") {
		t.Errorf("password missing from DSN: %s", dsn)
	}
}

// The seed fixtures drive what a fresh install contains; keep them
// consistent with the counter values baked in next to them.
func TestSeedFixturesAreConsistent(t *testing.T) {
	if len(seedUsers) != 4 {
		t.Errorf("seed users = %d, want 4", len(seedUsers))
	}
	if len(seedProjects) != 5 {
		t.Errorf("seed projects = %d, want 5", len(seedProjects))
	}
	if len(seedMetrics) != 4 {
		t.Errorf("seed metrics = %d, want 4", len(seedMetrics))
	}

	emails := make(map[string]bool)
	for _, u := range seedUsers {
		if emails[u.Email] {
			t.Errorf("duplicate seed email %s", u.Email)
		}
		emails[u.Email] = true
	}

	var completed, active int64
	for _, p := range seedProjects {
		if p.Owner < 0 || p.Owner >= len(seedUsers) {
			t.Errorf("project %q owner index %d out of range", p.Title, p.Owner)
		}
		switch {
		case p.Status.IsActive():
			active++
		case p.Status == "completed":
			completed++
		}
	}

	values := make(map[string]int64)
	for _, m := range seedMetrics {
		values[m.Name] = m.Value
	}
	if values["total_users"] != int64(len(seedUsers)) {
		t.Errorf("total_users seed = %d, want %d", values["total_users"], len(seedUsers))
	}
	if values["total_projects"] != int64(len(seedProjects)) {
		t.Errorf("total_projects seed = %d, want %d", values["total_projects"], len(seedProjects))
	}
	if values["completed_projects"] != completed {
		t.Errorf("completed_projects seed = %d, want %d", values["completed_projects"], completed)
	}
	if values["active_projects"] != active {
		t.Errorf("active_projects seed = %d, want %d", values["active_projects"], active)
	}
}
