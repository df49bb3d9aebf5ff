// Command server runs the schedule-core HTTP host: the Echo router
// exposing parse/analyze/health, backed by the Prometheus metrics
// registry, following the teacher's cmd/server/main.go shape (env-var
// address, graceful shutdown on signal).
package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/xerschedule/core/internal/config"
	"github.com/xerschedule/core/internal/httpapi"
	"github.com/xerschedule/core/internal/metrics"
)

func main() {
	cfg := config.Load()
	reg := metrics.NewRegistry()
	router := httpapi.NewRouter(cfg, reg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("starting schedcore server on %s", cfg.HTTPAddr)
		if err := router.Start(cfg.HTTPAddr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down schedcore server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := router.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server shutdown error: %v", err)
	}
}
