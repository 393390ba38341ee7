package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/uptrace/bun/migrate"

	"github.com/guifav/iris-api/internal/auth"
	"github.com/guifav/iris-api/internal/cache"
	"github.com/guifav/iris-api/internal/classifier"
	"github.com/guifav/iris-api/internal/config"
	"github.com/guifav/iris-api/internal/db/bunx"
	"github.com/guifav/iris-api/internal/migrations"
	"github.com/guifav/iris-api/internal/repository"
	"github.com/guifav/iris-api/internal/server"
	"github.com/guifav/iris-api/internal/services/prediction"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the iris API server",
	Long:  `Starts the HTTP server with the login, predict, and prediction listing endpoints.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := bunx.NewDB(cfg.DatabaseURL, cfg.MaxDBConnections)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer bunx.Close(db)

		slog.Info("connected to database", "type", bunx.DetectDatabaseType(cfg.DatabaseURL))

		// Apply pending migrations so a fresh store is usable immediately.
		migrator := migrate.NewMigrator(db, migrations.Migrations)
		ctx := cmd.Context()
		if err := migrator.Init(ctx); err != nil {
			return fmt.Errorf("failed to initialize migrator: %w", err)
		}
		group, err := migrator.Migrate(ctx)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		if group.ID != 0 {
			slog.Info("applied migrations", "group", group.ID)
		}

		// The classifier artifact is a startup concern: a broken model
		// fails the process instead of silently serving degraded output.
		model, err := buildClassifier(cfg)
		if err != nil {
			return fmt.Errorf("failed to load classifier: %w", err)
		}

		if cfg.UsesDefaultSecret() {
			slog.Warn("JWT_SECRET not configured, using development placeholder")
		}

		var issuerOpts []auth.IssuerOption
		if cfg.AuthPasswordHash != "" {
			issuerOpts = append(issuerOpts, auth.WithPasswordHash(cfg.AuthPasswordHash))
		}
		issuer := auth.NewIssuer(cfg.JWTSecret, cfg.AuthUsername, cfg.AuthPassword, issuerOpts...)
		verifier := auth.NewVerifier(cfg.JWTSecret)

		ledger := repository.NewBunPredictionRepository(db)
		svc := prediction.NewService(model, cache.New(), ledger, slog.Default())

		r := server.NewRouter(server.RouterOptions{
			Service:  svc,
			Issuer:   issuer,
			Verifier: verifier,
			Version:  Version,
		})

		srv := &http.Server{
			Addr:         cfg.ServerAddr,
			Handler:      r,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		serverErrors := make(chan error, 1)
		go func() {
			slog.Info("starting server", "addr", cfg.ServerAddr)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			slog.Info("shutting down gracefully", "signal", sig.String())

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				srv.Close()
				return fmt.Errorf("graceful shutdown failed: %w", err)
			}

			slog.Info("server stopped")
			return nil
		}
	},
}

// buildClassifier selects the classifier implementation at startup:
// an externally trained linear artifact when MODEL_PATH is set, the
// built-in rule cascade otherwise.
func buildClassifier(cfg *config.Config) (classifier.Classifier, error) {
	if cfg.ModelPath == "" {
		slog.Info("using rule-based classifier")
		return classifier.NewRuleModel(), nil
	}

	model, err := classifier.LoadLinearModel(cfg.ModelPath)
	if err != nil {
		return nil, err
	}
	slog.Info("loaded classifier artifact", "path", cfg.ModelPath, "classes", model.Classes())
	return model, nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
