// internal/service/quiz.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/guidequiz/backend/internal/domain/performance"
	"github.com/guidequiz/backend/internal/domain/question"
	"github.com/guidequiz/backend/internal/domain/quiz"
	"github.com/guidequiz/backend/internal/id"
	"github.com/guidequiz/backend/internal/scheduler"
	"github.com/guidequiz/backend/internal/store"
)

var (
	// ErrNoSession means no quiz has been started yet.
	ErrNoSession = errors.New("service: no active session")
	// ErrNoQuestions means the pools are empty and a session cannot start.
	ErrNoQuestions = errors.New("service: question pools are empty")
	// ErrSessionRunning means Start was called over a live session; reset
	// is the only way to discard one.
	ErrSessionRunning = errors.New("service: a session is already running")
	// ErrConfirmRequired guards a reset that would destroy a running session.
	ErrConfirmRequired = errors.New("service: reset requires confirmation while a session is running")
	// ErrNoRecord means there is nothing to export yet.
	ErrNoRecord = errors.New("service: no test record to export")
)

// Notice is a user-facing message pushed through the notifier hook.
type Notice struct {
	Level   string // "info", "warning", "error"
	Message string
}

// Settings fixes the shape of every session the service starts.
type Settings struct {
	TimeLimitSeconds int
	Counts           quiz.Counts
	Weights          quiz.Weights
}

// DefaultSettings mirrors the stock test: 120 seconds, 2/2/1 questions,
// 2 points per correct answer.
func DefaultSettings() Settings {
	return Settings{
		TimeLimitSeconds: 120,
		Counts:           quiz.DefaultCounts(),
		Weights:          quiz.DefaultWeights(),
	}
}

// QuizService owns the single live session and drives it through
// selection, ticking, scoring and persistence, strictly in that order.
type QuizService struct {
	store    store.Store
	sched    *scheduler.Scheduler
	logger   *slog.Logger
	settings Settings

	notify       func(Notice)
	tickInterval time.Duration

	mu         sync.Mutex
	selector   *quiz.Selector
	current    *quiz.Session
	tickTask   *scheduler.Task
	submitTask *scheduler.Task
	lastResult *quiz.Result
	degraded   bool
}

// Option customizes a QuizService.
type Option func(*QuizService)

// WithNotifier installs a hook for user-facing notices (timeout warnings,
// scoring failures). Without it notices only reach the log.
func WithNotifier(fn func(Notice)) Option {
	return func(s *QuizService) { s.notify = fn }
}

// WithTickInterval overrides the one-second clock, for tests.
func WithTickInterval(d time.Duration) Option {
	return func(s *QuizService) { s.tickInterval = d }
}

// NewQuizService creates a QuizService.
func NewQuizService(st store.Store, sched *scheduler.Scheduler, logger *slog.Logger, settings Settings, opts ...Option) *QuizService {
	s := &QuizService{
		store:        st,
		sched:        sched,
		logger:       logger,
		settings:     settings,
		selector:     quiz.NewSelector(),
		tickInterval: time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start selects a fresh question set and begins a new running session.
// A running session must be reset first. When a pool cannot cover its
// requested count the draw degrades to a uniform pick across whatever is
// available.
func (s *QuizService) Start(ctx context.Context) (*SessionView, error) {
	pools, err := s.store.Pools(ctx)
	if err != nil {
		return nil, fmt.Errorf("load pools: %w", err)
	}
	if pools.Total() == 0 {
		return nil, ErrNoQuestions
	}

	perf, err := s.store.LoadPerformance(ctx)
	if err != nil {
		return nil, fmt.Errorf("load performance: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil && s.current.State() == quiz.StateRunning {
		return nil, ErrSessionRunning
	}

	s.selector.ClearUsed()
	degraded := false
	questions, err := s.selector.SelectAdaptive(pools, s.settings.Counts, perf)
	if errors.Is(err, quiz.ErrShortPool) {
		questions = s.selector.SelectAny(pools, s.settings.Counts.Total())
		degraded = true
		s.logger.Warn("pool short of requested counts, using degraded draw",
			"selected", len(questions))
	} else if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	s.stopTimersLocked()
	s.current = quiz.NewSession(questions, s.settings.TimeLimitSeconds)
	s.lastResult = nil
	s.degraded = degraded
	s.tickTask = s.sched.Every(s.tickInterval, s.onTick)

	s.logger.Info("session started",
		"session_id", s.current.ID,
		"questions", len(questions),
		"time_limit", s.settings.TimeLimitSeconds,
		"degraded", degraded,
	)
	return s.viewLocked(), nil
}

// onTick runs on the scheduler queue once per tick interval.
func (s *QuizService) onTick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil || s.current.State() != quiz.StateRunning {
		return
	}

	if s.current.Tick() {
		if s.tickTask != nil {
			s.tickTask.Cancel()
		}
		s.notice(Notice{Level: "warning", Message: "Time is up! Your answers will be submitted automatically."})
		// The notice stays up for one interval before the auto-submit fires.
		s.submitTask = s.sched.After(s.tickInterval, s.autoSubmit)
	}
}

func (s *QuizService) autoSubmit() {
	if _, err := s.Submit(context.Background()); err != nil {
		s.logger.Error("auto-submit failed", "error", err)
	}
}

// Answer records the value for the 0-based question index.
func (s *QuizService) Answer(index int, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return ErrNoSession
	}
	if err := s.current.Record(index, value); err != nil {
		if errors.Is(err, quiz.ErrInvalidIndex) {
			s.logger.Error("answer for question outside session bounds",
				"index", index, "questions", len(s.current.Questions))
		}
		return err
	}
	return nil
}

// Submit finishes the session, scores it once, and persists counters and the
// test record in order. A second submit returns the already-computed result
// without touching the counters again. The session is marked submitted only
// after the counters are in, so a submit that fails to persist can be retried.
func (s *QuizService) Submit(ctx context.Context) (*quiz.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, ErrNoSession
	}
	if s.lastResult != nil {
		return s.lastResult, nil
	}

	s.stopTimersLocked()

	result, err := quiz.Score(s.current, s.settings.Weights)
	if err != nil {
		s.notice(Notice{Level: "error", Message: "Scoring failed, your results were not recorded."})
		return nil, fmt.Errorf("score session: %w", err)
	}

	if err := s.store.ApplyDeltas(ctx, result.Deltas); err != nil {
		return nil, fmt.Errorf("update performance: %w", err)
	}

	s.current.Finish()

	rec := s.buildRecordLocked(result)
	if err := s.store.AppendRecord(ctx, rec); err != nil {
		// Counters are already in; losing the history row is logged but
		// does not fail the submission.
		s.logger.Error("failed to append test record", "error", err)
	}

	s.lastResult = result
	s.logger.Info("session submitted",
		"session_id", s.current.ID,
		"score", result.Score,
		"max_score", result.MaxScore,
		"answered", s.current.Answered(),
	)
	return result, nil
}

// Reset discards the current session and starts a new one. Destroying a
// running session needs explicit confirmation.
func (s *QuizService) Reset(ctx context.Context, confirm bool) (*SessionView, error) {
	s.mu.Lock()
	if s.current != nil && s.current.State() == quiz.StateRunning && !confirm {
		s.mu.Unlock()
		return nil, ErrConfirmRequired
	}
	s.stopTimersLocked()
	s.current = nil
	s.lastResult = nil
	s.selector.ClearUsed()
	s.mu.Unlock()

	return s.Start(ctx)
}

// Stop cancels the timers; used on shutdown.
func (s *QuizService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTimersLocked()
}

// LastResult returns the scored result of the current session, if submitted.
func (s *QuizService) LastResult() (*quiz.Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastResult == nil {
		return nil, false
	}
	return s.lastResult, true
}

// ExportLast serializes the most recent test record for download, named
// after the current date.
func (s *QuizService) ExportLast(ctx context.Context) (string, []byte, error) {
	rec, err := s.store.LatestRecord(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return "", nil, ErrNoRecord
	}
	if err != nil {
		return "", nil, err
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", nil, err
	}
	filename := fmt.Sprintf("guide-test_%s.json", time.Now().Format("2006-01-02"))
	return filename, data, nil
}

// Stats reports the pool sizes per category.
func (s *QuizService) Stats(ctx context.Context) (map[question.Category]int, error) {
	return s.store.PoolCounts(ctx)
}

// Performance returns the cumulative counters.
func (s *QuizService) Performance(ctx context.Context) (performance.Set, error) {
	return s.store.LoadPerformance(ctx)
}

// History returns the persisted attempt log, newest first.
func (s *QuizService) History(ctx context.Context) ([]performance.TestRecord, error) {
	return s.store.History(ctx)
}

// ClearHistory wipes both the attempt log and the counters.
func (s *QuizService) ClearHistory(ctx context.Context) error {
	if err := s.store.ClearHistory(ctx); err != nil {
		return err
	}
	return s.store.ResetPerformance(ctx)
}

// stopTimersLocked cancels the tick and pending auto-submit. Safe to call
// repeatedly; Cancel is idempotent.
func (s *QuizService) stopTimersLocked() {
	if s.tickTask != nil {
		s.tickTask.Cancel()
		s.tickTask = nil
	}
	if s.submitTask != nil {
		s.submitTask.Cancel()
		s.submitTask = nil
	}
}

func (s *QuizService) buildRecordLocked(result *quiz.Result) *performance.TestRecord {
	outcomes := make([]performance.QuestionOutcome, len(result.PerQuestion))
	for i, qr := range result.PerQuestion {
		outcomes[i] = performance.QuestionOutcome{
			Prompt:        qr.Prompt,
			UserAnswer:    qr.UserAnswer,
			CorrectAnswer: qr.CorrectAnswer,
			Correct:       qr.Correct,
		}
	}
	return &performance.TestRecord{
		ID:              id.GenerateID(),
		TakenAt:         time.Now().UTC(),
		Score:           result.Score,
		MaxScore:        result.MaxScore,
		TotalQuestions:  len(s.current.Questions),
		TimeUsedSeconds: s.current.TimeUsed(),
		TimeLeftSeconds: s.current.SecondsLeft,
		Questions:       outcomes,
	}
}

func (s *QuizService) notice(n Notice) {
	s.logger.Info("notice", "level", n.Level, "message", n.Message)
	if s.notify != nil {
		s.notify(n)
	}
}
