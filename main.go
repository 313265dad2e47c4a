package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpLayer "debt-sync/http"
	"debt-sync/repository"
	"debt-sync/service"
)

func main() {
	positions := repository.NewPositionRepositoryMemory()

	var store repository.RepaymentLogStore
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		store = repository.NewRepaymentLogStoreRedis(addr)
		log.Printf("Repayment log persisted in Redis (%s)", addr)
	} else {
		store = repository.NewRepaymentLogStoreMemory()
		log.Println("Repayment log persisted in memory")
	}

	engine := service.NewSyncEngine(store)
	explainer := service.NewExplanationService()

	debtHandler := httpLayer.NewDebtHandler(positions, store, explainer, os.Getenv("DEBT_CURRENCY"))
	syncHandler := httpLayer.NewSyncHandler(positions, store, engine)

	rateLimiter := httpLayer.NewRateLimiter(30, time.Minute)
	defer rateLimiter.Stop()

	mux := http.NewServeMux()
	mux.Handle(
		"/debts",
		httpLayer.RateLimitMiddleware(
			rateLimiter,
			http.HandlerFunc(debtHandler.RegisterDebt),
		),
	)

	mux.Handle(
		"/debts/sync",
		httpLayer.RateLimitMiddleware(
			rateLimiter,
			http.HandlerFunc(syncHandler.SyncAll),
		),
	)

	mux.Handle(
		"/debts/{id}/summary",
		httpLayer.RateLimitMiddleware(
			rateLimiter,
			http.HandlerFunc(debtHandler.GetSummary),
		),
	)

	mux.Handle(
		"/debts/{id}/reset-balance",
		httpLayer.RateLimitMiddleware(
			rateLimiter,
			http.HandlerFunc(syncHandler.ResetBalance),
		),
	)

	mux.Handle(
		"/debts/{id}",
		httpLayer.RateLimitMiddleware(
			rateLimiter,
			http.HandlerFunc(debtHandler.DeleteDebt),
		),
	)

	server := &http.Server{
		Addr:         ":8080",
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Println("🚀 API corriendo en http://localhost:8080")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Printf("Error starting server: %v", err)
		return
	case <-quit:
		log.Println("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	log.Println("Server exited")
}
