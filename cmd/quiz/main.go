package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/guidequiz/backend/internal/infrastructure/config"
	"github.com/guidequiz/backend/internal/ingestion"
	"github.com/guidequiz/backend/internal/scheduler"
	"github.com/guidequiz/backend/internal/service"
	"github.com/guidequiz/backend/internal/store"
	"github.com/guidequiz/backend/internal/ui/exam"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	// The terminal owns stdout, keep the log out of the way.
	logFile, err := os.OpenFile("guidequiz.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	logger := slog.New(slog.NewJSONHandler(logFile, nil))

	settings, err := config.LoadQuizSettings(cfg.SettingsFile)
	if err != nil {
		return fmt.Errorf("load quiz settings: %w", err)
	}

	db, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := ingestion.Seed(context.Background(), db, cfg.QuestionsFile, logger); err != nil {
		return fmt.Errorf("seed question pools: %w", err)
	}

	sched := scheduler.New()
	defer sched.Stop()

	notices := make(chan service.Notice, 8)
	quizSvc := service.NewQuizService(db, sched, logger,
		service.Settings{
			TimeLimitSeconds: settings.TimeLimitSeconds,
			Counts:           settings.QuizCounts(),
			Weights:          settings.QuizWeights(),
		},
		service.WithNotifier(func(n service.Notice) {
			select {
			case notices <- n:
			default:
			}
		}),
	)
	defer quizSvc.Stop()

	model := exam.NewModel(quizSvc, notices, exam.Options{
		NoColor: os.Getenv("NO_COLOR") != "",
	})

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
