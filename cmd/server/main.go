// Supportbot - customer service chatbot server
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/DineshDhasara/supportbot/internal/analytics"
	"github.com/DineshDhasara/supportbot/internal/api"
	"github.com/DineshDhasara/supportbot/internal/chatws"
	"github.com/DineshDhasara/supportbot/internal/config"
	"github.com/DineshDhasara/supportbot/internal/engine"
	"github.com/DineshDhasara/supportbot/internal/genai"
	"github.com/DineshDhasara/supportbot/internal/middleware"
	"github.com/DineshDhasara/supportbot/internal/nlu"
	"github.com/DineshDhasara/supportbot/internal/orders"
	"github.com/DineshDhasara/supportbot/internal/session"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting server", "port", cfg.Port, "processor", cfg.Processor, "dev", cfg.IsDevelopment())

	// Initialize dependencies.
	catalog, err := orders.NewSQLite(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize order catalog", "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := catalog.Close(); closeErr != nil {
			slog.Error("Failed to close order catalog", "error", closeErr)
		}
	}()

	if err := catalog.Ping(context.Background()); err != nil {
		slog.Error("Order catalog health check failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Order catalog connected", "db_path", cfg.DBPath)

	store := session.NewMemoryStore()
	resolver := nlu.NewResolver(nlu.DefaultCatalog(), cfg.ContextTurns)
	tracker := analytics.NewTracker()

	// The generative processor needs an API key; without one the server
	// falls back to templated replies rather than failing to start.
	strategy := selectStrategy(cfg)

	eng := engine.New(resolver, store, catalog, tracker, strategy, cfg.HistoryCap)

	// Initialize handlers.
	handler := api.NewHandler(eng, catalog)
	wsHandler := chatws.NewHandler(eng)

	// Setup router.
	r := chi.NewRouter()

	// Global middleware.
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))
	r.Use(middleware.CORS(cfg.CORSOrigins))

	handler.RegisterRoutes(r)

	// WebSocket endpoint.
	r.Get("/ws/chat", wsHandler.ServeHTTP)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // long-lived WebSocket connections
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session.StartEvictionWorker(ctx, store, cfg.SessionIdleTTL)

	// Start server.
	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal.
	<-ctx.Done()
	stop()

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped successfully")
}

// selectStrategy picks the reply strategy from config. Gemini mode
// without an API key degrades to templates with a warning.
func selectStrategy(cfg *config.Config) engine.ReplyStrategy {
	if cfg.Processor != config.ProcessorGemini {
		return engine.TemplateStrategy{}
	}
	if cfg.Gemini.APIKey == "" {
		slog.Warn("PROCESSOR=gemini but GEMINI_API_KEY is not set, falling back to templates")
		return engine.TemplateStrategy{}
	}

	opts := []genai.Option{
		genai.WithModel(cfg.Gemini.Model),
		genai.WithTimeout(cfg.Gemini.Timeout),
	}
	if cfg.Gemini.Endpoint != "" {
		opts = append(opts, genai.WithEndpoint(cfg.Gemini.Endpoint))
	}
	slog.Info("Generative replies enabled", "model", cfg.Gemini.Model)
	return engine.GenerativeStrategy{Client: genai.NewClient(cfg.Gemini.APIKey, opts...)}
}
