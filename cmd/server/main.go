package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/guidequiz/backend/internal/api"
	"github.com/guidequiz/backend/internal/infrastructure/config"
	"github.com/guidequiz/backend/internal/ingestion"
	"github.com/guidequiz/backend/internal/scheduler"
	"github.com/guidequiz/backend/internal/service"
	"github.com/guidequiz/backend/internal/store"

	_ "github.com/guidequiz/backend/docs" // generated swagger docs
)

// @title           GuideQuiz API
// @version         1.0
// @description     Tour-guide exam practice — timed quiz sessions, per-category performance tracking and test history.

// @host      localhost:8080
// @BasePath  /

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	settings, err := config.LoadQuizSettings(cfg.SettingsFile)
	if err != nil {
		logger.Error("failed to load quiz settings", "error", err, "file", cfg.SettingsFile)
		os.Exit(1)
	}

	// ── Dependencies ────────────────────────────────────────────────
	db, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := ingestion.Seed(context.Background(), db, cfg.QuestionsFile, logger); err != nil {
		logger.Error("failed to seed question pools", "error", err, "file", cfg.QuestionsFile)
		os.Exit(1)
	}

	sched := scheduler.New()
	defer sched.Stop()

	quizSvc := service.NewQuizService(db, sched, logger, service.Settings{
		TimeLimitSeconds: settings.TimeLimitSeconds,
		Counts:           settings.QuizCounts(),
		Weights:          settings.QuizWeights(),
	})
	defer quizSvc.Stop()

	handler := api.NewHandler(quizSvc, db, logger)

	// ── Routes ──────────────────────────────────────────────────────
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok"}`))
	})

	api.RegisterRoutes(mux, handler)

	// Swagger UI served at /swagger/
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// ── Middleware chain: Logging → CORS → mux ──────────────────────
	logged := api.Logging(logger)(api.CORS(mux))

	// ── Server ──────────────────────────────────────────────────────
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           logged,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
	}()

	logger.Info("starting server", "address", cfg.ServerAddress)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed to start", "error", err)
		os.Exit(1)
	}
}
