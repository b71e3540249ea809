package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/guidequiz/backend/internal/domain/performance"
	"github.com/guidequiz/backend/internal/domain/question"
	"github.com/guidequiz/backend/internal/domain/quiz"
	"github.com/guidequiz/backend/internal/scheduler"
	"github.com/guidequiz/backend/internal/service"
	"github.com/guidequiz/backend/internal/store"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// seedStore opens a store with the reference pools: 2 judgement, 1 single,
// 1 multiple.
func seedStore(t *testing.T) *store.SQLiteStore {
	t.Helper()
	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "quiz.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	ctx := context.Background()
	st.ReplacePool(ctx, question.CategoryJudgement, []question.Question{
		{ID: "q1", Category: question.CategoryJudgement, Prompt: "Q1", Answer: "A"},
		{ID: "q2", Category: question.CategoryJudgement, Prompt: "Q2", Answer: "B"},
	})
	st.ReplacePool(ctx, question.CategorySingle, []question.Question{
		{ID: "q3", Category: question.CategorySingle, Prompt: "Q3", Options: []string{"A. x", "B. y"}, Answer: "A"},
	})
	st.ReplacePool(ctx, question.CategoryMultiple, []question.Question{
		{ID: "q4", Category: question.CategoryMultiple, Prompt: "Q4", Options: []string{"A. x", "B. y", "C. z"}, Answer: "AC"},
	})
	return st
}

func scenarioSettings() service.Settings {
	return service.Settings{
		TimeLimitSeconds: 120,
		Counts: quiz.Counts{
			question.CategoryJudgement: 2,
			question.CategorySingle:    1,
			question.CategoryMultiple:  1,
		},
		Weights: quiz.DefaultWeights(),
	}
}

// flakyStore fails ApplyDeltas a set number of times before delegating.
type flakyStore struct {
	store.Store
	failures int
	applied  int
}

func (f *flakyStore) ApplyDeltas(ctx context.Context, deltas map[question.Category]performance.Delta) error {
	if f.failures > 0 {
		f.failures--
		return errors.New("disk full")
	}
	f.applied++
	return f.Store.ApplyDeltas(ctx, deltas)
}

func newService(t *testing.T, st store.Store, opts ...service.Option) *service.QuizService {
	t.Helper()
	sched := scheduler.New()
	t.Cleanup(sched.Stop)
	svc := service.NewQuizService(st, sched, discard(), scenarioSettings(), opts...)
	t.Cleanup(svc.Stop)
	return svc
}

// answerAll records the canonical answer for every session question.
func answerAll(t *testing.T, svc *service.QuizService, view *service.SessionView, answers map[string]string) {
	t.Helper()
	for i, q := range view.Questions {
		value, ok := answers[q.Prompt]
		if !ok {
			continue
		}
		if err := svc.Answer(i, value); err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
	}
}

func TestStart_SelectsAllPoolQuestions(t *testing.T) {
	svc := newService(t, seedStore(t))

	view, err := svc.Start(context.Background())
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	if view.Total != 4 {
		t.Fatalf("expected 4 questions, got %d", view.Total)
	}
	if view.State != "running" {
		t.Errorf("expected running state, got %s", view.State)
	}
	if view.SecondsLeft != 120 {
		t.Errorf("expected 120 seconds, got %d", view.SecondsLeft)
	}

	prompts := map[string]bool{}
	for _, q := range view.Questions {
		prompts[q.Prompt] = true
	}
	for _, want := range []string{"Q1", "Q2", "Q3", "Q4"} {
		if !prompts[want] {
			t.Errorf("expected %s in session", want)
		}
	}
}

func TestSubmit_ScoresAndPersists(t *testing.T) {
	st := seedStore(t)
	svc := newService(t, st)
	ctx := context.Background()

	view, err := svc.Start(ctx)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	answerAll(t, svc, view, map[string]string{"Q1": "A", "Q2": "B", "Q3": "A", "Q4": "AC"})

	result, err := svc.Submit(ctx)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if result.Score != 8 {
		t.Errorf("expected score 8, got %d", result.Score)
	}

	perf, err := st.LoadPerformance(ctx)
	if err != nil {
		t.Fatalf("LoadPerformance: %v", err)
	}
	if got := perf[question.CategoryJudgement]; got.Correct != 2 || got.Total != 2 {
		t.Errorf("judgement counters: expected 2/2, got %d/%d", got.Correct, got.Total)
	}
	if got := perf[question.CategorySingle]; got.Correct != 1 || got.Total != 1 {
		t.Errorf("single counters: expected 1/1, got %d/%d", got.Correct, got.Total)
	}
	if got := perf[question.CategoryMultiple]; got.Correct != 1 || got.Total != 1 {
		t.Errorf("multiple counters: expected 1/1, got %d/%d", got.Correct, got.Total)
	}

	records, err := st.History(ctx)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 history record, got %d", len(records))
	}
	rec := records[0]
	if rec.TotalQuestions != 4 || rec.Score != 8 || rec.MaxScore != 8 {
		t.Errorf("unexpected record: %+v", rec)
	}
}

func TestSubmit_SecondCallDoesNotDoubleCount(t *testing.T) {
	st := seedStore(t)
	svc := newService(t, st)
	ctx := context.Background()

	view, _ := svc.Start(ctx)
	answerAll(t, svc, view, map[string]string{"Q1": "A"})

	first, err := svc.Submit(ctx)
	if err != nil {
		t.Fatalf("first Submit: %v", err)
	}
	second, err := svc.Submit(ctx)
	if err != nil {
		t.Fatalf("second Submit: %v", err)
	}
	if second != first {
		t.Error("expected second submit to return the stored result")
	}

	perf, _ := st.LoadPerformance(ctx)
	if got := perf[question.CategoryJudgement]; got.Total != 2 {
		t.Errorf("expected judgement total 2 after double submit, got %d", got.Total)
	}

	records, _ := st.History(ctx)
	if len(records) != 1 {
		t.Errorf("expected 1 history record after double submit, got %d", len(records))
	}
}

// A submit that fails to persist must leave the session open so it can be
// retried, and the retry must count exactly once.
func TestSubmit_RetryAfterStoreFailure(t *testing.T) {
	st := seedStore(t)
	flaky := &flakyStore{Store: st, failures: 1}
	svc := newService(t, flaky)
	ctx := context.Background()

	view, err := svc.Start(ctx)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	answerAll(t, svc, view, map[string]string{"Q1": "A", "Q2": "B", "Q3": "A", "Q4": "AC"})

	if _, err := svc.Submit(ctx); err == nil {
		t.Fatal("expected first submit to fail")
	}
	if v, ok := svc.View(); !ok || v.State != "running" {
		t.Fatalf("expected session to stay open after failed submit, got %+v", v)
	}

	result, err := svc.Submit(ctx)
	if err != nil {
		t.Fatalf("retry Submit: %v", err)
	}
	if result == nil {
		t.Fatal("expected a result from the retried submit")
	}
	if result.Score != 8 {
		t.Errorf("expected score 8, got %d", result.Score)
	}
	if flaky.applied != 1 {
		t.Errorf("expected counters applied exactly once, got %d", flaky.applied)
	}

	perf, err := st.LoadPerformance(ctx)
	if err != nil {
		t.Fatalf("LoadPerformance: %v", err)
	}
	if got := perf[question.CategoryJudgement]; got.Correct != 2 || got.Total != 2 {
		t.Errorf("unexpected judgement counters: %+v", got)
	}
}

func TestSubmit_UnansweredCountsTotalOnly(t *testing.T) {
	st := seedStore(t)
	svc := newService(t, st)
	ctx := context.Background()

	view, _ := svc.Start(ctx)
	answerAll(t, svc, view, map[string]string{"Q2": "B", "Q3": "A", "Q4": "AC"})

	result, err := svc.Submit(ctx)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if result.Score != 6 {
		t.Errorf("expected score 6 with Q1 unanswered, got %d", result.Score)
	}

	perf, _ := st.LoadPerformance(ctx)
	if got := perf[question.CategoryJudgement]; got.Correct != 1 || got.Total != 2 {
		t.Errorf("expected judgement 1/2, got %d/%d", got.Correct, got.Total)
	}
}

func TestTimeout_NotifiesAndAutoSubmits(t *testing.T) {
	st := seedStore(t)

	notices := make(chan service.Notice, 4)
	svc := newService(t, st,
		service.WithTickInterval(time.Millisecond),
		service.WithNotifier(func(n service.Notice) { notices <- n }),
	)

	// With a 1ms tick the 120 second clock runs out in roughly 120ms.
	if _, err := svc.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	select {
	case n := <-notices:
		if n.Level != "warning" || !strings.Contains(n.Message, "Time is up") {
			t.Errorf("unexpected notice: %+v", n)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("expected a timeout notice")
	}

	// The auto-submit follows one interval later.
	deadline := time.After(5 * time.Second)
	for {
		if view, ok := svc.View(); ok && view.State == "submitted" {
			break
		}
		select {
		case <-deadline:
			t.Fatal("expected session to auto-submit after timeout")
		case <-time.After(5 * time.Millisecond):
		}
	}

	records, _ := st.History(context.Background())
	if len(records) != 1 {
		t.Errorf("expected auto-submitted record, got %d", len(records))
	}
	if records[0].TimeLeftSeconds != 0 {
		t.Errorf("expected no time left, got %d", records[0].TimeLeftSeconds)
	}
}

func TestReset_RequiresConfirmationWhileRunning(t *testing.T) {
	svc := newService(t, seedStore(t))
	ctx := context.Background()

	if _, err := svc.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if _, err := svc.Reset(ctx, false); !errors.Is(err, service.ErrConfirmRequired) {
		t.Fatalf("expected ErrConfirmRequired, got %v", err)
	}

	view, err := svc.Reset(ctx, true)
	if err != nil {
		t.Fatalf("confirmed Reset: %v", err)
	}
	if view.State != "running" || view.Answered != 0 {
		t.Errorf("expected fresh running session, got %+v", view)
	}
}

func TestAnswer_Errors(t *testing.T) {
	svc := newService(t, seedStore(t))
	ctx := context.Background()

	if err := svc.Answer(0, "A"); !errors.Is(err, service.ErrNoSession) {
		t.Errorf("expected ErrNoSession, got %v", err)
	}

	svc.Start(ctx)
	if err := svc.Answer(99, "A"); !errors.Is(err, quiz.ErrInvalidIndex) {
		t.Errorf("expected ErrInvalidIndex, got %v", err)
	}

	svc.Submit(ctx)
	if err := svc.Answer(0, "A"); !errors.Is(err, quiz.ErrNotRunning) {
		t.Errorf("expected ErrNotRunning after submit, got %v", err)
	}
}

func TestStart_EmptyPools(t *testing.T) {
	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "quiz.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	svc := newService(t, st)
	if _, err := svc.Start(context.Background()); !errors.Is(err, service.ErrNoQuestions) {
		t.Errorf("expected ErrNoQuestions, got %v", err)
	}
}

func TestStart_DegradedDrawWhenPoolShort(t *testing.T) {
	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "quiz.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	// Only one judgement question; the 2/1/1 request cannot be met.
	st.ReplacePool(context.Background(), question.CategoryJudgement, []question.Question{
		{ID: "q1", Category: question.CategoryJudgement, Prompt: "Q1", Answer: "A"},
	})

	svc := newService(t, st)
	view, err := svc.Start(context.Background())
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !view.Degraded {
		t.Error("expected degraded draw to be flagged")
	}
	if view.Total != 1 {
		t.Errorf("expected the 1 available question, got %d", view.Total)
	}
}

func TestExportLast(t *testing.T) {
	st := seedStore(t)
	svc := newService(t, st)
	ctx := context.Background()

	if _, _, err := svc.ExportLast(ctx); !errors.Is(err, service.ErrNoRecord) {
		t.Fatalf("expected ErrNoRecord, got %v", err)
	}

	view, _ := svc.Start(ctx)
	answerAll(t, svc, view, map[string]string{"Q1": "A"})
	svc.Submit(ctx)

	filename, data, err := svc.ExportLast(ctx)
	if err != nil {
		t.Fatalf("ExportLast: %v", err)
	}
	wantName := "guide-test_" + time.Now().Format("2006-01-02") + ".json"
	if filename != wantName {
		t.Errorf("expected filename %s, got %s", wantName, filename)
	}
	if !strings.Contains(string(data), "\"score\"") {
		t.Errorf("expected JSON body with score, got %s", data)
	}
}

func TestClearHistory_WipesCountersToo(t *testing.T) {
	st := seedStore(t)
	svc := newService(t, st)
	ctx := context.Background()

	view, _ := svc.Start(ctx)
	answerAll(t, svc, view, map[string]string{"Q1": "A"})
	svc.Submit(ctx)

	if err := svc.ClearHistory(ctx); err != nil {
		t.Fatalf("ClearHistory: %v", err)
	}

	records, _ := svc.History(ctx)
	if len(records) != 0 {
		t.Errorf("expected empty history, got %d", len(records))
	}
	perf, _ := svc.Performance(ctx)
	for _, c := range question.AllCategories {
		if perf[c].Total != 0 {
			t.Errorf("expected zeroed counters for %s, got %+v", c, perf[c])
		}
	}
}
