package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ojtlog/auth"
	"ojtlog/config"
	"ojtlog/storage"
	"ojtlog/web"

	"github.com/spf13/cobra"
)

var servePort int

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the OJT log JSON API",
	Long: `Start the HTTP API for entries, tasks, notes, settings, reports and exports.

Every /api route except sign-in and theme requires a bearer token. Tokens come from
POST /api/auth/login, Google sign-in (when configured) or "ojtlog user token".
The server shuts down gracefully on SIGINT/SIGTERM.`,
	Example: `
  # Start on the configured port
  ojtlog serve

  # Override the port
  ojtlog serve --port 9090

  # Use PostgreSQL through the environment
  OJTLOG_DATABASE_DRIVER=postgres OJTLOG_DATABASE_DSN=postgres://localhost/ojtlog ojtlog serve
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, store, err := openConfiguredStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if cmd.Flags().Changed("port") {
			cfg.Server.Port = servePort
		}
		server := newHTTPServer(*cfg, store)

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.ListenAndServe()
		}()

		log.Printf("ojtlog API listening on http://localhost%s (database: %s)", server.Addr, store.Driver())
		if cfg.Auth.Google.Enabled() {
			log.Printf("Google sign-in enabled, callback %s", cfg.Auth.Google.RedirectURL)
		}

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case sig := <-sigCh:
			log.Printf("received %s, shutting down", sig)
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				return fmt.Errorf("shutdown server: %w", err)
			}
			err := <-errCh
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			log.Printf("server stopped")
			return nil
		}
	},
}

// newHTTPServer wires the API handler with the configured timeouts.
func newHTTPServer(cfg config.Config, store *storage.Store) *http.Server {
	issuer := auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	google := auth.NewGoogleProvider(cfg.Auth.Google.ClientID, cfg.Auth.Google.ClientSecret, cfg.Auth.Google.RedirectURL)

	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           web.NewServer(store, issuer, google, cfg),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       2 * cfg.Server.ReadTimeout,
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVar(&servePort, "port", 8080, "HTTP port (overrides server.port)")
}
