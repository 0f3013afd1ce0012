// Package app assembles the stores, services and handlers from a Config.
// Both entrypoints start here.
package app

import (
	"context"
	"fmt"
	"net/http"

	"stockledger/config"
	"stockledger/internal/api/auth"
	apibackup "stockledger/internal/api/backup"
	"stockledger/internal/api/health"
	"stockledger/internal/api/product"
	apireport "stockledger/internal/api/report"
	"stockledger/internal/api/router"
	apisettings "stockledger/internal/api/settings"
	"stockledger/internal/api/supplier"
	"stockledger/internal/api/transaction"
	"stockledger/internal/backup"
	"stockledger/internal/pkg/cache"
	"stockledger/internal/pkg/database"
	"stockledger/internal/pkg/logger"
	"stockledger/internal/pkg/middleware"
	"stockledger/internal/pkg/settings"
	"stockledger/internal/pkg/token"
	"stockledger/internal/repository"
	"stockledger/internal/service/authservice"
	"stockledger/internal/service/inventoryservice"
)

// App holds the long-lived components.
type App struct {
	Config    *config.Config
	Logger    logger.Logger
	Store     *database.Store
	Cache     cache.Client
	Inventory *inventoryservice.Service
	Settings  *settings.Store
	Backups   *backup.Service

	// Tokens and Login are nil when no admin credential is configured.
	Tokens *token.Service
	Login  *authservice.Service

	redis *cache.RedisClient
}

// New opens and migrates the store, connects the cache and builds the
// services. Close releases what New opened.
func New(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	store, err := database.Open(ctx, database.Options{Driver: cfg.DBDriver, DSN: cfg.DSN(), Logger: log})
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(ctx, store); err != nil {
		store.Close()
		return nil, err
	}
	log.Info("store ready", map[string]interface{}{"driver": cfg.DBDriver})

	a := &App{Config: cfg, Logger: log, Store: store, Cache: cache.NopClient{}}

	if cfg.RedisAddr != "" {
		rc, err := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Warn("redis unavailable, running without cache", map[string]interface{}{"addr": cfg.RedisAddr, "error": err.Error()})
		} else {
			a.redis = rc
			a.Cache = rc
			log.Info("redis connected", map[string]interface{}{"addr": cfg.RedisAddr})
		}
	}

	a.Settings, err = settings.NewStore(cfg.SettingsFile)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("load settings: %w", err)
	}

	registry := repository.NewRegistry(store, a.Cache, cfg.CacheTTL, cfg.DBTimeout, log)
	a.Inventory = inventoryservice.NewService(registry, log)
	a.Backups = backup.NewService(store, cfg.BackupDir, log)

	if cfg.AuthEnabled() {
		a.Tokens = token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)
		a.Login = authservice.NewService(cfg.AdminUsername, cfg.AdminPasswordHash, a.Tokens, int64(a.Tokens.Expiry().Seconds()))
	}
	return a, nil
}

// HTTPHandler builds the API router.
func (a *App) HTTPHandler() http.Handler {
	var (
		authMW   *middleware.Auth
		loginSvc auth.AuthService
	)
	if a.Tokens != nil {
		authMW = middleware.NewAuth(a.Tokens, a.Logger)
		loginSvc = a.Login
	}

	handlers := router.Handlers{
		Health:       health.NewHandler(a.Store, a.Logger),
		Auth:         auth.NewHandler(loginSvc, a.Logger),
		Products:     product.NewHandler(a.Inventory, a.Logger),
		Suppliers:    supplier.NewHandler(a.Inventory, a.Logger),
		Transactions: transaction.NewHandler(a.Inventory, a.Logger),
		Reports:      apireport.NewHandler(a.Inventory, a.Settings, a.Logger),
		Settings:     apisettings.NewHandler(a.Settings, a.Logger),
		Backups:      apibackup.NewHandler(a.Backups, a.Logger),
	}

	opts := router.Options{
		Auth:       authMW,
		RateLimit:  a.Config.RateLimitMaxRequests,
		RateWindow: a.Config.RateLimitPeriod,
		Logger:     a.Logger,
	}
	if a.redis != nil {
		opts.Cache = a.redis
	}
	return router.NewRouter(handlers, opts)
}

func (a *App) Close() error {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.Logger.Warn("closing redis", map[string]interface{}{"error": err.Error()})
		}
	}
	return a.Store.Close()
}
