package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "proshop/docs" // 引入 swag 產出的 docs

	"proshop/internal/cache"
	"proshop/internal/config"
	"proshop/internal/database"
	"proshop/internal/logger"
	"proshop/internal/router"
	"proshop/internal/service"
	"proshop/internal/worker"
)

const shutdownTimeout = 10 * time.Second

// CustomValidator wraps go-playground/validator for Echo
// swagger:ignore
type CustomValidator struct {
	validator *validator.Validate
}

// Validate calls the underlying validator
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

var (
	loadConfig      = config.Load
	connectDB       = database.Connect
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	rollbackFn      = database.RollbackAll
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	shutdownServer  = func(ctx context.Context, e *echo.Echo) error { return e.Shutdown(ctx) }
	newWorkerPool   = worker.NewPool
	exitFunc        = os.Exit
)

// run wires every dependency and blocks until the server stops or ctx is
// cancelled.
func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	db, err := connectDB(ctx, cfg.StorageURL())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := runMigrationsFn(cfg.StorageURL()); err != nil {
		return fmt.Errorf("migration 執行失敗: %w", err)
	}

	// Redis 可選；未設定時停用 token 撤銷
	var cch cache.Cache
	if cfg.Redis.Addr != "" {
		cch, err = newRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return fmt.Errorf("redis 連線失敗: %w", err)
		}
		defer cch.Close()
	} else {
		log.Warn().Msg("REDIS_ADDR not set, token revocation disabled")
	}

	workers := cfg.HashWorkers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	wp := newWorkerPool(workers, func(r any) {
		log.Error().Interface("panic", r).Msg("worker task panicked")
		exitFunc(1)
	})
	defer wp.Stop()

	hasher := service.NewPooledHasher(service.NewPasswordHasher(cfg.BcryptCost), wp)
	deps := router.Deps{
		DB:       db,
		Cache:    cch,
		Accounts: service.NewAccounts(db, hasher),
		Catalog:  service.NewCatalog(db),
		Orders:   service.NewOrders(db),
		Tokens:   service.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL),
		Denylist: cache.NewTokenDenylist(cch),
	}
	e := newServer(cfg, log, deps)

	base := fmt.Sprintf("http://localhost:%d", cfg.Port)
	log.Info().Str("env", cfg.Env).Int("port", cfg.Port).Msg("server starting")
	log.Info().Msgf("Users API: %s/api/users", base)
	log.Info().Msgf("Products API: %s/api/products", base)
	log.Info().Msgf("Orders API: %s/api/orders", base)
	log.Info().Msgf("Health check: %s/health", base)

	errCh := make(chan error, 1)
	go func() {
		errCh <- startServer(e, cfg.Addr())
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownServer(sctx, e); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// newServer builds the Echo instance: middleware, API routes, swagger and
// either the built frontend (production) or a plain banner.
func newServer(cfg *config.Config, log *logger.Logger, deps router.Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = &CustomValidator{validator: validator.New()}
	e.Debug = !cfg.IsProduction()

	e.Use(middleware.RequestID())
	e.Use(logger.RequestLogger(log))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{cfg.AllowedOrigin()},
		AllowCredentials: true,
	}))

	router.Setup(e, deps)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	if cfg.IsProduction() {
		e.Use(middleware.StaticWithConfig(middleware.StaticConfig{
			Root:       ".",
			Filesystem: http.Dir(cfg.StaticDir),
			HTML5:      true,
			Skipper:    skipStatic,
		}))
	} else {
		e.GET("/", func(c echo.Context) error {
			return c.String(http.StatusOK, "API is running...")
		})
	}
	return e
}

func skipStatic(c echo.Context) bool {
	p := c.Request().URL.Path
	for _, prefix := range []string{"/api", "/swagger", "/health"} {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
