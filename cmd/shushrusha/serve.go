package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	shushrusha "github.com/Akhilesh30Jadhav/Shushrusha"
	"github.com/Akhilesh30Jadhav/Shushrusha/internal/config"
	"github.com/Akhilesh30Jadhav/Shushrusha/internal/logging"
	"github.com/Akhilesh30Jadhav/Shushrusha/pkg/adapters/memory"
	"github.com/Akhilesh30Jadhav/Shushrusha/pkg/adapters/postgres"
	"github.com/Akhilesh30Jadhav/Shushrusha/pkg/adapters/redis"
	"github.com/Akhilesh30Jadhav/Shushrusha/pkg/persistence/middleware"
	"github.com/Akhilesh30Jadhav/Shushrusha/pkg/ports"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Starts the simulator in server mode, exposing the JSON API over HTTP.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		dataDir, _ := cmd.Flags().GetString("data")
		addr, _ := cmd.Flags().GetString("addr")

		cfg, err := config.Load(configPath)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
		if dataDir != "" {
			cfg.Content.Dir = dataDir
		}
		if addr != "" {
			cfg.Server.Addr = addr
		}

		logger := logging.New(logging.ParseLevel(cfg.Log.Level))

		store, cleanup, err := buildStore(cfg)
		if err != nil {
			fmt.Printf("Error initializing session store: %v\n", err)
			os.Exit(1)
		}
		defer cleanup()

		if len(cfg.Store.RedactPatterns) > 0 {
			store = middleware.Chain(store,
				middleware.NewRedactionMiddleware(cfg.Store.RedactPatterns),
			)
		}

		engine := shushrusha.New(cfg.Content.Dir,
			shushrusha.WithSessionStore(store),
			shushrusha.WithLogger(logger),
		)

		srv := &http.Server{
			Addr:    cfg.Server.Addr,
			Handler: engine.Handler(),
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("server starting",
				"addr", srv.Addr,
				"content_dir", cfg.Content.Dir,
				"store", cfg.Store.Backend,
			)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			logger.Info("shutdown started", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("graceful shutdown did not complete", "err", err)
				if err := srv.Close(); err != nil {
					logger.Error("server close failed", "err", err)
				}
			}
			logger.Info("server stopped")
		}
	},
}

// buildStore creates the configured session store and a cleanup function
// for its connections.
func buildStore(cfg *config.Config) (ports.SessionStore, func(), error) {
	switch cfg.Store.Backend {
	case "redis":
		store := redis.New(cfg.Store.Redis.Addr, cfg.Store.Redis.Password, cfg.Store.Redis.DB,
			redis.WithTTL(cfg.Store.Redis.TTL.Std()),
		)
		return store, func() { _ = store.Close() }, nil

	case "postgres":
		store, err := postgres.New(cfg.Store.Postgres.DSN)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil

	default:
		return memory.NewStore(), func() {}, nil
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", "", "Listen address (overrides config)")
}
