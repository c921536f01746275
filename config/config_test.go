package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "CACHE_TTL", "CACHE_BACKEND", "SEED_DATA", "DB_PATH"} {
		t.Setenv(key, "")
	}
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "3000" || cfg.Cache.Backend != "memory" || cfg.Cache.TTL != time.Hour || !cfg.SeedData {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("CACHE_BACKEND", "memcached")
	if _, err := Load(); err == nil {
		t.Error("unknown cache backend accepted")
	}

	t.Setenv("CACHE_BACKEND", "Redis")
	t.Setenv("CACHE_TTL", "soon")
	if _, err := Load(); err == nil {
		t.Error("bad CACHE_TTL accepted")
	}
}

func TestLoadCORSAndAdmin(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "http://localhost:5173, ,http://localhost:3000")
	t.Setenv("ADMIN_EMAIL", "admin@venus.test")
	t.Setenv("ADMIN_PASSWORD", "secret123")
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://localhost:3000" {
		t.Errorf("CORSOrigins = %q", cfg.CORSOrigins)
	}
	if cfg.Admin.Email != "admin@venus.test" || cfg.Admin.Name != "Administrator" {
		t.Errorf("Admin = %+v", cfg.Admin)
	}

	t.Setenv("ADMIN_PASSWORD", "123")
	if _, err := Load(); err == nil {
		t.Error("short ADMIN_PASSWORD accepted")
	}
}

func TestOpenDBMigrates(t *testing.T) {
	db, err := OpenDB(DBConfig{Path: ":memory:", LogLevel: "silent"})
	if err != nil {
		t.Fatal(err)
	}
	for _, table := range []string{"campuses", "dishes", "recipes", "recipe_ingredients", "statistics_cache", "users"} {
		if !db.Migrator().HasTable(table) {
			t.Errorf("table %s missing", table)
		}
	}
}
