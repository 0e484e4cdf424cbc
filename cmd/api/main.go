package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/comitanigiacomo/kanso-wellness-hub/internal/config"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Critical: %v", err)
	}

	log.Printf("Opening %s store...", cfg.StoreBackend)

	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	b, err := openBackend(startCtx, cfg)
	if err != nil {
		cancelStart()
		log.Fatalf("Critical: Failed to open store: %v", err)
	}
	defer b.close()

	a, err := buildApp(startCtx, cfg, b, nil)
	cancelStart()
	if err != nil {
		log.Fatalf("Critical: Failed to start: %v", err)
	}

	log.Println("Store ready.")

	workerCtx, stopWorker := context.WithCancel(context.Background())
	a.worker.Start(workerCtx)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      a.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Kanso Wellness Hub running on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Stop signal received. Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Forced shutdown error:", err)
	}

	stopWorker()
	<-a.worker.Done()

	log.Println("Server stopped gracefully.")
}
