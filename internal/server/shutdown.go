package server

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// shutdownTimeout bounds how long in-flight requests get to finish.
const shutdownTimeout = 10 * time.Second

// GracefulShutdown waits for ctx to end (main passes a signal context), then
// stops the live feed, disconnects websocket clients and drains HTTP
// requests, in that order. done is closed when everything has stopped.
func GracefulShutdown(ctx context.Context, httpServer *http.Server, s *Server, done chan<- struct{}) {
	defer close(done)
	<-ctx.Done()

	logger := s.GetLogger()
	logger.Info("Shutting down gracefully")

	s.StopLiveFeed()
	s.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
}
