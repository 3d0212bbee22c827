package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dvloznov/budget-coach/internal/api/handlers"
	"github.com/dvloznov/budget-coach/internal/api/middleware"
	"github.com/dvloznov/budget-coach/internal/coach"
	"github.com/dvloznov/budget-coach/internal/config"
	"github.com/dvloznov/budget-coach/internal/llm"
	"github.com/dvloznov/budget-coach/internal/logger"
	"github.com/dvloznov/budget-coach/internal/plaid"
)

func main() {
	log := logger.New()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	ctx := context.Background()

	completer, err := llm.NewGeminiCompleter(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create generation client")
	}

	// The Plaid source is optional; without credentials, requests must
	// carry their own transactions.
	var source coach.TransactionSource
	if err := cfg.ValidatePlaid(); err == nil {
		source = plaid.NewClient(cfg.PlaidClientID, cfg.PlaidSecret, cfg.PlaidAccessToken, cfg.PlaidEnvironment)
		log.Info().Msg("Plaid transaction source enabled")
	} else {
		log.Warn().Err(err).Msg("Plaid source disabled")
	}

	workflow := coach.NewWorkflow(completer, log)
	handler := handlers.NewCoachHandler(workflow, source, cfg.MonthlyBudget, cfg.WindowDays, log)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))

	r.Route("/api", func(r chi.Router) {
		r.Get("/healthz", handler.Health)
		r.Post("/analyze", handler.Analyze)
		r.Post("/chat", handler.Chat)
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Shutdown error")
	}
}
