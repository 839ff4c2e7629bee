package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homechef-api/config"
	"homechef-api/events"
	"homechef-api/handlers"
	"homechef-api/middleware"
	"homechef-api/payment"
	"homechef-api/routes"
	"homechef-api/services"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}
		logger := config.NewLogger(cfg.Log, os.Stderr)
		slog.SetDefault(logger)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg, logger)
	},
}

func init() {
	serveCmd.Flags().String("port", "", "listen port (overrides config and PORT)")
}

func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.OpenDB(cfg.Database, logger)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()
	logger.Info("database ready", "driver", cfg.Database.Driver)

	var publisher events.Publisher = events.NewLogPublisher(logger)
	if cfg.AMQP.URL != "" {
		amqpPub, err := events.DialAMQP(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			return err
		}
		defer amqpPub.Close()
		publisher = amqpPub
		logger.Info("publishing events to rabbitmq", "exchange", cfg.AMQP.Exchange)
	}

	deps := services.Deps{
		Publisher:   publisher,
		Logger:      logger,
		Currency:    cfg.Stripe.Currency,
		FrontendURL: cfg.FrontendURL,
	}
	if cfg.Stripe.SecretKey != "" {
		deps.Provider = payment.NewStripeProvider(cfg.Stripe.SecretKey)
	} else {
		logger.Warn("stripe secret key not set, checkout is disabled")
	}
	svc := services.New(db, deps)

	sessions := middleware.NewSessionManager(cfg.JWTSecret, cfg.SessionTTL, cfg.CookieName, cfg.IsProduction())
	h := handlers.New(svc, sessions, logger)
	router := routes.NewRouter(logger, cfg.AllowedOrigins, h, sessions, svc.Users)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server listening", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
