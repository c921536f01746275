package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"venus-recipe/cache"
	"venus-recipe/config"
	"venus-recipe/handlers"
	"venus-recipe/logger"
	"venus-recipe/middleware"
	"venus-recipe/routes"
	"venus-recipe/services"
	"venus-recipe/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logr, logCloser, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	db, err := config.OpenDB(cfg.DB)
	if err != nil {
		logr.Error("Database unavailable", "error", err)
		os.Exit(1)
	}
	logr.Info("Database ready", "path", cfg.DB.Path)

	if cfg.SeedData {
		if err := store.Seed(ctx, db, logr); err != nil {
			logr.Error("Seeding failed", "error", err)
			os.Exit(1)
		}
	}

	if cfg.Admin.Email != "" {
		admin, err := handlers.EnsureAdmin(ctx, store.NewUserStore(db), cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.Password)
		if err != nil {
			logr.Error("Admin bootstrap failed", "email", cfg.Admin.Email, "error", err)
			os.Exit(1)
		}
		logr.Info("Admin account ready", "user_id", admin.ID, "email", admin.Email)
	}

	cacheStore, err := newCache(ctx, cfg.Cache, logr)
	if err != nil {
		logr.Error("Cache unavailable", "backend", cfg.Cache.Backend, "error", err)
		os.Exit(1)
	}
	defer cacheStore.Close()

	api := newAPI(cfg, db, cacheStore, logr)

	// Create Gin router with default middleware (logger + recovery)
	r := gin.Default()
	r.Use(middleware.RequestID(), newCORS(cfg.CORSOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Venus Kindergarten Recipe Planner",
			"version": "1.0.0",
		})
	})

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message":    "Venus kindergarten multi-campus meal planner",
			"health":     "/health",
			"meal_slots": "/api/meal-slots",
			"roles":      []string{"staff", "admin"},
		})
	})

	routes.SetupRoutes(r, api)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logr.Info("Server running", "addr", "http://localhost:"+cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Error("Server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("Shutdown failed", "error", err)
	}
	logr.Info("Server stopped")
}

// newCORS lets the browser front end call the API; "*" allows any origin
func newCORS(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 1 && origins[0] == "*" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

func newCache(ctx context.Context, cfg config.CacheConfig, logr *slog.Logger) (cache.Store, error) {
	if cfg.Backend == "redis" {
		return cache.NewRedis(cfg.RedisAddr)
	}
	mem := cache.NewMemory(logr)
	mem.StartJanitor(ctx)
	return mem, nil
}

func newAPI(cfg *config.Config, db *gorm.DB, c cache.Store, logr *slog.Logger) *handlers.API {
	catalog := store.NewCatalogStore(db)
	recipes := store.NewRecipeStore(db)
	templates := services.MustLoadTemplates()
	picker := services.NewRandomPicker()

	resolver := services.NewQuantityResolver(catalog, templates, logr)
	selector := services.NewDishSelector(catalog, recipes, templates, picker, logr)
	stats := services.NewStatisticsAggregator(recipes, catalog, c, cfg.Cache.TTL, logr)

	return handlers.NewAPI(handlers.Deps{
		Generator: services.NewScheduleGenerator(catalog, recipes, selector, resolver, stats, templates, picker, logr),
		Stats:     stats,
		Recipes:   services.NewRecipeService(recipes, catalog, resolver, stats, logr),
		Catalog:   services.NewCatalogService(catalog, c, logr),
		Users:     store.NewUserStore(db),
		Auth:      middleware.NewAuth(cfg.JWTSecret),
		Logger:    logr,
	})
}
