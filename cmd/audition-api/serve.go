package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/JonnyWalker81/audition/backend/internal/config"
	"github.com/JonnyWalker81/audition/backend/internal/handlers"
	"github.com/JonnyWalker81/audition/backend/internal/logger"
	"github.com/JonnyWalker81/audition/backend/internal/middleware"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var port string

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  `Start the HTTP API server and listen for requests.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			// Override port from flag if provided
			if port != "" {
				cfg.Server.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg)
		},
	}

	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides config)")
	return serveCmd
}

// newTracerProvider returns a provider that samples every request so trace
// headers are always present. Spans are not exported.
func newTracerProvider() *sdktrace.TracerProvider {
	tp := sdktrace.NewTracerProvider(sdktrace.WithSampler(sdktrace.AlwaysSample()))
	otel.SetTracerProvider(tp)
	return tp
}

// newRouter builds the HTTP engine for a wired app. The returned func
// releases the rate limiter.
func newRouter(a *app, tp *sdktrace.TracerProvider) (*gin.Engine, func()) {
	rateLimit, stop := middleware.RateLimit(a.cfg.RateLimit.RPS, a.cfg.RateLimit.Burst)
	router := handlers.NewRouter(handlers.Handlers{
		Posts:    handlers.NewPostHandler(a.posts),
		Comments: handlers.NewCommentHandler(a.posts),
		Health:   handlers.NewHealthHandler(a.cfg.Server.Env, a.client.ServiceName()),
	},
		middleware.RequestID(a.log),
		middleware.Trace(tp),
		middleware.Logger(),
		middleware.SecurityHeaders(a.cfg.IsProduction()),
		middleware.CORS(a.cfg.CORS.AllowedOrigins),
		rateLimit,
	)
	return router, stop
}

func runServe(ctx context.Context, cfg *config.Config) error {
	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	a := newApp(cfg, os.Stdout)
	log := a.log

	tp := newTracerProvider()
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Warn("tracer provider shutdown failed", logger.Err(err))
		}
	}()

	log.Info("starting audition api server",
		logger.String("env", cfg.Server.Env),
		logger.String("upstream_url", cfg.Upstream.URL),
		logger.String("upstream_name", a.client.ServiceName()),
		logger.Duration("upstream_timeout", cfg.Upstream.Timeout),
	)

	router, stopRouter := newRouter(a, tp)
	defer stopRouter()

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", logger.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
