package quiz_test

import (
	"errors"
	"testing"

	"github.com/guidequiz/backend/internal/domain/question"
	"github.com/guidequiz/backend/internal/domain/quiz"
)

// The reference scenario: 2 judgement, 1 single, 1 multiple, all answered
// correctly, 2 points each.
func scenarioSession() *quiz.Session {
	s := quiz.NewSession([]question.Question{
		{ID: "q1", Category: question.CategoryJudgement, Prompt: "Q1", Answer: "A"},
		{ID: "q2", Category: question.CategoryJudgement, Prompt: "Q2", Answer: "B"},
		{ID: "q3", Category: question.CategorySingle, Prompt: "Q3", Options: []string{"A. x", "B. y"}, Answer: "A"},
		{ID: "q4", Category: question.CategoryMultiple, Prompt: "Q4", Options: []string{"A. x", "B. y", "C. z"}, Answer: "AC"},
	}, 120)
	return s
}

func TestScore_AllCorrect(t *testing.T) {
	s := scenarioSession()
	answers := []string{"A", "B", "A", "AC"}
	for i, a := range answers {
		if err := s.Record(i, a); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}
	s.Finish()

	result, err := quiz.Score(s, quiz.DefaultWeights())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Score != 8 {
		t.Errorf("expected score 8, got %d", result.Score)
	}
	if result.MaxScore != 8 {
		t.Errorf("expected max score 8, got %d", result.MaxScore)
	}

	wantDeltas := map[question.Category]struct{ correct, total int }{
		question.CategoryJudgement: {2, 2},
		question.CategorySingle:    {1, 1},
		question.CategoryMultiple:  {1, 1},
	}
	for c, want := range wantDeltas {
		got := result.Deltas[c]
		if got.Correct != want.correct || got.Total != want.total {
			t.Errorf("delta for %s: expected %d/%d, got %d/%d", c, want.correct, want.total, got.Correct, got.Total)
		}
	}
}

func TestScore_UnansweredNeverMatches(t *testing.T) {
	s := scenarioSession()
	// Q1 left unanswered, the rest correct.
	s.Record(1, "B")
	s.Record(2, "A")
	s.Record(3, "AC")
	s.Finish()

	result, err := quiz.Score(s, quiz.DefaultWeights())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Score != 6 {
		t.Errorf("expected score 6, got %d", result.Score)
	}

	first := result.PerQuestion[0]
	if first.Correct {
		t.Error("expected unanswered question to be incorrect")
	}
	if first.UserAnswer != "" {
		t.Errorf("expected empty user answer, got %q", first.UserAnswer)
	}

	delta := result.Deltas[question.CategoryJudgement]
	if delta.Correct != 1 || delta.Total != 2 {
		t.Errorf("expected judgement delta 1/2, got %d/%d", delta.Correct, delta.Total)
	}
}

func TestScore_MultiAnswerRequiresExactNormalizedMatch(t *testing.T) {
	s := scenarioSession()
	s.Record(3, "A") // partial selection of AC
	s.Finish()

	result, err := quiz.Score(s, quiz.DefaultWeights())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.PerQuestion[3].Correct {
		t.Error("expected partial multi-select to be incorrect")
	}
}

func TestScore_CustomWeights(t *testing.T) {
	s := scenarioSession()
	for i, a := range []string{"A", "B", "A", "AC"} {
		s.Record(i, a)
	}
	s.Finish()

	weights := quiz.Weights{
		question.CategoryJudgement: 1,
		question.CategorySingle:    3,
		question.CategoryMultiple:  5,
	}
	result, err := quiz.Score(s, weights)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Score != 10 {
		t.Errorf("expected score 10, got %d", result.Score)
	}
}

func TestScore_InconsistentSession(t *testing.T) {
	if _, err := quiz.Score(nil, quiz.DefaultWeights()); !errors.Is(err, quiz.ErrInconsistentSession) {
		t.Errorf("expected ErrInconsistentSession for nil session, got %v", err)
	}

	s := quiz.NewSession([]question.Question{
		{ID: "broken", Category: question.CategorySingle, Prompt: "no answer", Options: []string{"A. x", "B. y"}},
	}, 60)
	if _, err := quiz.Score(s, quiz.DefaultWeights()); !errors.Is(err, quiz.ErrInconsistentSession) {
		t.Errorf("expected ErrInconsistentSession for empty canonical answer, got %v", err)
	}
}
