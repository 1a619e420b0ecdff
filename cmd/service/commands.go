package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"proshop/internal/config"
	"proshop/internal/logger"
)

// newRootCmd builds the command tree: serve (default), migrate up|down, check.
func newRootCmd() *cobra.Command {
	var overrides config.Config

	root := &cobra.Command{
		Use:           "proshop",
		Short:         "ProShop e-commerce API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().IntVar(&overrides.Port, "port", 0, "HTTP port (overrides PORT)")
	root.PersistentFlags().StringVar(&overrides.Env, "env", "", "environment (overrides NODE_ENV)")
	root.PersistentFlags().StringVar(&overrides.DatabaseURL, "database-url", "", "storage URL (overrides DATABASE_URL)")

	serve := newServeCmd(&overrides)
	root.AddCommand(serve, newMigrateCmd(&overrides), newCheckCmd(&overrides))
	// 沒有子命令時直接啟動服務
	root.RunE = serve.RunE
	return root
}

func load(overrides *config.Config) (*config.Config, *logger.Logger, error) {
	cfg, err := loadConfig(overrides)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger.NewLogger("service", !cfg.IsProduction()), nil
}

func newServeCmd(overrides *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Starts the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := load(overrides)
			if err != nil {
				return err
			}
			ctx, stop := signalContext(cmd.Context())
			defer stop()
			return run(ctx, cfg, log)
		},
	}
}

func newMigrateCmd(overrides *config.Config) *cobra.Command {
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	step := func(use, short string, fn func(string) error) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, log, err := load(overrides)
				if err != nil {
					return err
				}
				if cfg.StorageURL() == "" {
					return fmt.Errorf("%w: DATABASE_URL or MONGO_URI", config.ErrMissingEnv)
				}
				if err := fn(cfg.StorageURL()); err != nil {
					return fmt.Errorf("migrate %s failed: %w", use, err)
				}
				log.Info().Str("direction", use).Msg("migrations applied")
				return nil
			},
		}
	}

	migrate.AddCommand(
		step("up", "Apply all up migrations", func(url string) error { return runMigrationsFn(url) }),
		step("down", "Roll back all migrations", func(url string) error { return rollbackFn(url) }),
	)
	return migrate
}

// newCheckCmd is the deploy-readiness check.
func newCheckCmd(overrides *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the environment is ready for deployment",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := load(overrides)
			if err != nil {
				return err
			}
			log.Info().
				Str("env", cfg.Env).
				Int("port", cfg.Port).
				Bool("storage", cfg.StorageURL() != "").
				Bool("jwt_secret", cfg.JWTSecret != "").
				Bool("redis", cfg.Redis.Addr != "").
				Msg("deployment check")

			if err := cfg.Validate(); err != nil {
				var joined interface{ Unwrap() []error }
				if errors.As(err, &joined) {
					for _, e := range joined.Unwrap() {
						log.Error().Err(e).Msg("not ready")
					}
				}
				return fmt.Errorf("deployment check failed: %w", err)
			}
			log.Info().Msg("ready for deployment")
			return nil
		},
	}
}
