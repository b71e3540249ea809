package service

import (
	"github.com/guidequiz/backend/internal/domain/question"
)

// QuestionView is what a renderer needs to present one session question:
// its number, category, prompt, choice labels and input cardinality.
// Canonical answers and hints are deliberately absent.
type QuestionView struct {
	Number   int               `json:"number"`
	Category question.Category `json:"category"`
	Prompt   string            `json:"prompt"`
	Options  []string          `json:"options,omitempty"`
	Multiple bool              `json:"multiple"`
	Recorded string            `json:"recorded"`
}

// SessionView is a renderer-safe snapshot of the live session.
type SessionView struct {
	ID          string         `json:"id"`
	State       string         `json:"state"`
	SecondsLeft int            `json:"seconds_left"`
	TimeLimit   int            `json:"time_limit"`
	Answered    int            `json:"answered"`
	Total       int            `json:"total"`
	Degraded    bool           `json:"degraded,omitempty"`
	Questions   []QuestionView `json:"questions"`
}

// View returns a snapshot of the current session, or false when none exists.
func (s *QuizService) View() (*SessionView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil, false
	}
	return s.viewLocked(), true
}

func (s *QuizService) viewLocked() *SessionView {
	questions := make([]QuestionView, len(s.current.Questions))
	for i, sq := range s.current.Questions {
		questions[i] = QuestionView{
			Number:   sq.Number,
			Category: sq.Category,
			Prompt:   sq.Prompt,
			Options:  sq.Options,
			Multiple: sq.IsMultiple(),
			Recorded: sq.Recorded,
		}
	}
	return &SessionView{
		ID:          s.current.ID,
		State:       s.current.State().String(),
		SecondsLeft: s.current.SecondsLeft,
		TimeLimit:   s.current.TimeLimit,
		Answered:    s.current.Answered(),
		Total:       len(s.current.Questions),
		Degraded:    s.degraded,
		Questions:   questions,
	}
}
