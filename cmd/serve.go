package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Jose-Sabater/secret-santa/internal/catalog"
	"github.com/Jose-Sabater/secret-santa/internal/giftfinder"
	"github.com/Jose-Sabater/secret-santa/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the gift recommendation HTTP server",
	Long:  `Starts the HTTP server with the chat API, WebSocket chat, and direct catalog endpoints.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if servePort > 0 {
			cfg.Server.Port = servePort
		}

		engine, client, err := newEngine(cfg, logger)
		if err != nil {
			return err
		}

		srv := server.New(server.Config{
			Port:     cfg.Server.Port,
			AllowAll: cfg.Server.AllowAll,
		}, logger)

		giftfinder.RegisterRoutes(srv.Router(), engine, giftfinder.RouteConfig{
			DefaultMarket:  cfg.Market,
			DefaultCount:   cfg.NumSuggestions,
			RequestTimeout: time.Duration(cfg.Server.RequestTimeoutSecs) * time.Second,
		})
		catalog.RegisterRoutes(srv.Router(), client, cfg.Market)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			logger.Info().Msg("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		fmt.Fprintf(os.Stderr, "santa server v%s starting on port %d (market=%s)\n", Version, cfg.Server.Port, cfg.Market)

		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
