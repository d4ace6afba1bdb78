package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-sportsmeet/internal/pkg/config"
	"github.com/FACorreiaa/go-sportsmeet/internal/pkg/logger"
	"github.com/FACorreiaa/go-sportsmeet/internal/server"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file, using environment variables")
	}

	// Initialize logger
	if err := logger.Init(logger.ParseLevel(os.Getenv("LOG_LEVEL")), zap.String("service", "sportsmeet-web")); err != nil {
		return err
	}
	defer logger.Log.Sync()
	lg := logger.Log

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Initialize observability
	otelShutdown, err := server.InitObservability(cfg.Observability, lg)
	if err != nil {
		return err
	}
	defer func() {
		if err := otelShutdown(context.Background()); err != nil {
			lg.Error("Failed to shutdown OpenTelemetry", zap.Error(err))
		}
	}()

	// Create server
	srv, err := server.New(cfg, lg)
	if err != nil {
		return err
	}

	// Relay backend live events to browser clients
	srv.StartLiveFeed()

	// Setup router
	router := server.SetupRouter(srv.Dependencies())

	// Setup assets
	if err := server.SetupAssets(router); err != nil {
		lg.Error("Failed to setup assets", zap.Error(err))
		return err
	}

	// Set the router on the server
	srv.SetRouter(router)

	// Start pprof server (on separate port, not exposed publicly)
	if pprofSrv := server.StartPprofServer(cfg.Observability.PprofAddr, lg); pprofSrv != nil {
		defer pprofSrv.Close()
	}

	// Create HTTP server
	httpServer := srv.HTTPServer()

	// Setup graceful shutdown
	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	done := make(chan struct{})
	go server.GracefulShutdown(sigCtx, httpServer, srv, done)

	// Start server
	lg.Info("Server starting", zap.String("port", cfg.ServerPort))
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		lg.Error("Server error", zap.Error(err))
		stop()
		<-done
		return err
	}

	// Wait for graceful shutdown to complete
	<-done
	lg.Info("Graceful shutdown complete")

	return nil
}
