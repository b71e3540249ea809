package quiz

import (
	"errors"
	"fmt"

	"github.com/guidequiz/backend/internal/domain/performance"
	"github.com/guidequiz/backend/internal/domain/question"
)

// ErrInconsistentSession signals a session that cannot be scored; the
// caller must leave the performance counters untouched.
var ErrInconsistentSession = errors.New("quiz: session contains an unscoreable question")

// Weights maps a category to the points one correct answer earns.
type Weights map[question.Category]int

// DefaultWeights gives every category 2 points, as the stock scoring does.
func DefaultWeights() Weights {
	return Weights{
		question.CategoryJudgement: 2,
		question.CategorySingle:    2,
		question.CategoryMultiple:  2,
	}
}

// QuestionResult is the graded outcome for one session question.
type QuestionResult struct {
	Number        int
	Category      question.Category
	Prompt        string
	UserAnswer    string
	CorrectAnswer string
	Correct       bool
	Points        int
	Hint          string
}

// Result is the outcome of scoring a whole session.
type Result struct {
	Score       int
	MaxScore    int
	PerQuestion []QuestionResult
	Deltas      map[question.Category]performance.Delta
}

// Score grades every session question by exact string match against the
// canonical answer; an unanswered question never matches. It is a pure
// function of the session: applying the deltas is the caller's job and must
// happen at most once per session (gated by Session.Finish).
func Score(s *Session, weights Weights) (*Result, error) {
	if s == nil || len(s.Questions) == 0 {
		return nil, fmt.Errorf("%w: empty session", ErrInconsistentSession)
	}

	result := &Result{
		PerQuestion: make([]QuestionResult, len(s.Questions)),
		Deltas:      make(map[question.Category]performance.Delta),
	}

	for i, sq := range s.Questions {
		if !sq.Category.Valid() || sq.Answer == "" {
			return nil, fmt.Errorf("%w: question %s", ErrInconsistentSession, sq.ID)
		}

		points := weights[sq.Category]
		correct := sq.Recorded != "" && sq.Recorded == sq.Answer

		result.MaxScore += points
		if correct {
			result.Score += points
		}

		delta := result.Deltas[sq.Category]
		delta.Total++
		if correct {
			delta.Correct++
		}
		result.Deltas[sq.Category] = delta

		result.PerQuestion[i] = QuestionResult{
			Number:        sq.Number,
			Category:      sq.Category,
			Prompt:        sq.Prompt,
			UserAnswer:    sq.Recorded,
			CorrectAnswer: sq.Answer,
			Correct:       correct,
			Points:        points,
			Hint:          sq.Hint,
		}
	}

	return result, nil
}
