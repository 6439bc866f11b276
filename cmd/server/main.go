// Package main is the entry point for the CivicCred local data store
// server. It exposes the device-local civic store — session management,
// issue reports, merit point wallet — over a localhost REST API so the
// presentation layer can drive it.
//
// Architecture:
//   - All collections live in one embedded SQLite document store
//   - The backend is simulated: one demo password, one accepted OTP,
//     artificial request latency so UI loading states stay observable
//   - Report suggestions come from a deterministic keyword classifier
//   - There is no remote service; this process owns the device's data
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/civiccred/civicstore/internal/auth"
	"github.com/civiccred/civicstore/internal/config"
	"github.com/civiccred/civicstore/internal/handlers"
	"github.com/civiccred/civicstore/internal/middleware"
	"github.com/civiccred/civicstore/internal/services"
	"github.com/civiccred/civicstore/internal/storage"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

func main() {
	// Initialize structured logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	sugar := logger.Sugar()

	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		sugar.Fatalf("Failed to load config: %v", err)
	}

	sugar.Infow("Starting CivicCred local store",
		"port", cfg.Port,
		"env", cfg.Environment,
		"storage", cfg.StorageDSN,
	)

	// Open the embedded document store
	repo, err := storage.Open(cfg.StorageDSN)
	if err != nil {
		sugar.Fatalf("Failed to open storage: %v", err)
	}
	defer repo.Close()

	// Demo-mode credential policy and session token issuer
	policy, err := auth.NewDemoPolicy(cfg.DemoPassword)
	if err != nil {
		sugar.Fatalf("Failed to build credential policy: %v", err)
	}
	tokens := auth.NewTokenIssuer(cfg.JWTSecret)

	// Initialize services
	store := services.NewStore(repo, policy, tokens, cfg.AcceptedOTP,
		services.DefaultLatency(cfg.LatencyScale), sugar)
	sessions := services.NewSessionManager(repo, store, sugar)

	// Restore any persisted session; malformed state degrades to logged out
	sessions.Restore(context.Background())

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(sessions, store, sugar)
	reportHandler := handlers.NewReportHandler(store, sugar)
	walletHandler := handlers.NewWalletHandler(store, sugar)
	prefsHandler := handlers.NewPreferencesHandler(store, sugar)
	healthHandler := handlers.NewHealthHandler(repo, sugar)

	// Build router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.StructuredLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Rate limiting
	r.Use(middleware.RateLimit(cfg.RateLimitRPM))

	// API Routes
	r.Route("/api/v1", func(r chi.Router) {
		// Health check
		r.Get("/health", healthHandler.Check)
		r.Get("/health/ready", healthHandler.Ready)

		// Session endpoints
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/signup", authHandler.Signup)
			r.Post("/logout", authHandler.Logout)
			r.Get("/session", authHandler.Session)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireSession(tokens))
				r.Post("/aadhaar/verify", authHandler.VerifyAadhaar)
				r.Put("/profile", authHandler.UpdateProfile)
			})
		})

		// Report endpoints
		r.Route("/reports", func(r chi.Router) {
			r.Get("/", reportHandler.List)
			r.Get("/{id}", reportHandler.Get)
			r.Post("/suggest", reportHandler.Suggest)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireSession(tokens))
				r.Post("/", reportHandler.Create)
			})
		})

		// Wallet endpoints (session required)
		r.Route("/wallet", func(r chi.Router) {
			r.Use(middleware.RequireSession(tokens))
			r.Get("/transactions", walletHandler.Transactions)
			r.Post("/redeem", walletHandler.Redeem)
		})

		// Presentation preferences
		r.Route("/preferences", func(r chi.Router) {
			r.Get("/theme", prefsHandler.GetTheme)
			r.Put("/theme", prefsHandler.SetTheme)
		})
	})

	// Serve static files (frontend build)
	r.Handle("/*", http.FileServer(http.Dir("../dist")))

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sugar.Infof("Server listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalf("Server error: %v", err)
		}
	}()

	<-done
	sugar.Info("Shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		sugar.Fatalf("Forced shutdown: %v", err)
	}

	sugar.Info("Server stopped")
}
