package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"venus-recipe/logger"
	"venus-recipe/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type Config struct {
	Port        string
	GinMode     string
	JWTSecret   []byte
	SeedData    bool
	CORSOrigins []string // "*" allows every origin
	Admin       AdminConfig
	DB          DBConfig
	Cache       CacheConfig
	Logger      logger.Config
}

// AdminConfig is the account created at startup so the admin routes are
// reachable. Public sign-up only creates staff accounts.
type AdminConfig struct {
	Name     string
	Email    string // empty disables the bootstrap
	Password string
}

type DBConfig struct {
	Path     string // file path or ":memory:"
	LogLevel string // gorm logger level: silent, error, warn, info
}

type CacheConfig struct {
	Backend   string // "memory" or "redis"
	RedisAddr string
	TTL       time.Duration
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load reads configuration from the environment; .env is loaded by main beforehand.
func Load() (*Config, error) {
	ttl, err := time.ParseDuration(getEnv("CACHE_TTL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}
	seed, err := strconv.ParseBool(getEnv("SEED_DATA", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid SEED_DATA: %w", err)
	}

	cfg := &Config{
		Port:        getEnv("PORT", "3000"),
		GinMode:     os.Getenv("GIN_MODE"),
		JWTSecret:   []byte(getEnv("JWT_SECRET", "venus_recipe_secret_2025")),
		SeedData:    seed,
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),
		Admin: AdminConfig{
			Name:     getEnv("ADMIN_NAME", "Administrator"),
			Email:    os.Getenv("ADMIN_EMAIL"),
			Password: os.Getenv("ADMIN_PASSWORD"),
		},
		DB: DBConfig{
			Path:     getEnv("DB_PATH", "data/venus_recipe.db"),
			LogLevel: getEnv("DB_LOG_LEVEL", "warn"),
		},
		Cache: CacheConfig{
			Backend:   strings.ToLower(getEnv("CACHE_BACKEND", "memory")),
			RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
			TTL:       ttl,
		},
		Logger: logger.Config{
			Level:      getEnv("LOG_LEVEL", "info"),
			OutputPath: getEnv("LOG_OUTPUT", "stdout"),
			Format:     getEnv("LOG_FORMAT", "text"),
		},
	}

	if cfg.Cache.Backend != "memory" && cfg.Cache.Backend != "redis" {
		return nil, fmt.Errorf("invalid CACHE_BACKEND %q: must be memory or redis", cfg.Cache.Backend)
	}
	if len(cfg.CORSOrigins) == 0 {
		return nil, fmt.Errorf("invalid CORS_ORIGINS: no origin given")
	}
	if cfg.Admin.Email != "" && len(cfg.Admin.Password) < 6 {
		return nil, fmt.Errorf("ADMIN_PASSWORD must have at least 6 characters when ADMIN_EMAIL is set")
	}
	return cfg, nil
}

// splitList parses a comma separated value, dropping blanks
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func gormLogLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}

// OpenDB connects to SQLite and migrates every model.
func OpenDB(cfg DBConfig) (*gorm.DB, error) {
	if cfg.Path != ":memory:" && !strings.HasPrefix(cfg.Path, "file:") {
		if dir := filepath.Dir(cfg.Path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormLogLevel(cfg.LogLevel)),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// A single connection keeps ":memory:" databases alive and serializes SQLite writers.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	// Auto-migrate all models
	err = db.AutoMigrate(
		&models.User{},
		&models.Campus{},
		&models.Ingredient{},
		&models.DishCategory{},
		&models.Dish{},
		&models.RecipeGeneration{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.StatisticsCacheEntry{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}
