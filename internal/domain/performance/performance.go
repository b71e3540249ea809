package performance

import (
	"errors"
	"time"

	"github.com/guidequiz/backend/internal/domain/question"
)

// HistoryLimit caps the attempt log; the oldest record is evicted first.
const HistoryLimit = 50

// ErrInvalidDelta rejects a counter update that would break the
// correct <= total invariant.
var ErrInvalidDelta = errors.New("performance: delta would corrupt counters")

// Counters is a cumulative correct/total tally for one category.
type Counters struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Accuracy returns the correct percentage (0..100), 0 when nothing answered.
func (c Counters) Accuracy() float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(c.Correct) / float64(c.Total) * 100
}

// Delta is one session's contribution to a category's counters.
type Delta struct {
	Correct int
	Total   int
}

func (d Delta) valid() bool {
	return d.Correct >= 0 && d.Total >= 0 && d.Correct <= d.Total
}

// Set holds the counters for every category.
type Set map[question.Category]Counters

// NewSet returns zeroed counters for all categories.
func NewSet() Set {
	s := make(Set, len(question.AllCategories))
	for _, c := range question.AllCategories {
		s[c] = Counters{}
	}
	return s
}

// Apply adds the deltas to the set. The whole update is validated first so a
// bad delta leaves every counter untouched.
func (s Set) Apply(deltas map[question.Category]Delta) error {
	for c, d := range deltas {
		if !c.Valid() || !d.valid() {
			return ErrInvalidDelta
		}
	}
	for c, d := range deltas {
		cur := s[c]
		cur.Correct += d.Correct
		cur.Total += d.Total
		s[c] = cur
	}
	return nil
}

// QuestionOutcome is the per-question detail stored with a test record.
type QuestionOutcome struct {
	Prompt        string `json:"question"`
	UserAnswer    string `json:"userAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
	Correct       bool   `json:"isCorrect"`
}

// TestRecord is an immutable snapshot of one finished attempt.
type TestRecord struct {
	ID              string            `json:"id"`
	TakenAt         time.Time         `json:"date"`
	Score           int               `json:"score"`
	MaxScore        int               `json:"maxScore"`
	TotalQuestions  int               `json:"totalQuestions"`
	TimeUsedSeconds int               `json:"timeUsed"`
	TimeLeftSeconds int               `json:"timeLeft"`
	Questions       []QuestionOutcome `json:"questions"`
}
