package quiz

import (
	"errors"
	"time"

	"github.com/guidequiz/backend/internal/domain/question"
	"github.com/guidequiz/backend/internal/id"
)

// State is the session lifecycle position.
type State int

const (
	StateRunning State = iota
	StateTimedOut
	StateSubmitted
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateTimedOut:
		return "timed_out"
	case StateSubmitted:
		return "submitted"
	}
	return "unknown"
}

var (
	// ErrInvalidIndex rejects an answer update outside the session bounds.
	ErrInvalidIndex = errors.New("quiz: question index out of range")
	// ErrNotRunning rejects answer mutation after timeout or submission.
	ErrNotRunning = errors.New("quiz: session is not running")
)

// SessionQuestion wraps a pool question with its presentation number and the
// answer recorded so far ("" = unanswered).
type SessionQuestion struct {
	question.Question
	Number   int
	Recorded string
}

// Session is one timed attempt at a generated question set. Exactly one live
// session exists at a time; a reset replaces it wholesale.
type Session struct {
	ID          string
	Questions   []SessionQuestion
	TimeLimit   int // seconds
	SecondsLeft int
	StartedAt   time.Time

	state State
}

// NewSession starts a fresh Running session over the given questions.
func NewSession(questions []question.Question, timeLimitSeconds int) *Session {
	sq := make([]SessionQuestion, len(questions))
	for i, q := range questions {
		sq[i] = SessionQuestion{Question: q, Number: i + 1}
	}
	return &Session{
		ID:          id.GenerateID(),
		Questions:   sq,
		TimeLimit:   timeLimitSeconds,
		SecondsLeft: timeLimitSeconds,
		StartedAt:   time.Now(),
	}
}

func (s *Session) State() State {
	return s.state
}

// Tick decrements the clock by one second. When it reaches zero the session
// transitions to TimedOut exactly once and Tick reports true. Ticks in a
// terminal state are ignored; the clock never goes below zero.
func (s *Session) Tick() bool {
	if s.state != StateRunning {
		return false
	}
	s.SecondsLeft--
	if s.SecondsLeft <= 0 {
		s.SecondsLeft = 0
		s.state = StateTimedOut
		return true
	}
	return false
}

// Record overwrites the answer at the 0-based index. The value is normalized
// per category before being stored, so a multi-select "CA" is kept as "AC".
func (s *Session) Record(index int, value string) error {
	if s.state != StateRunning {
		return ErrNotRunning
	}
	if index < 0 || index >= len(s.Questions) {
		return ErrInvalidIndex
	}
	s.Questions[index].Recorded = question.NormalizeAnswer(s.Questions[index].Category, value)
	return nil
}

// Finish moves the session into Submitted and clamps a negative clock to
// zero. The first call returns true; every later call returns false.
func (s *Session) Finish() bool {
	if s.state == StateSubmitted {
		return false
	}
	s.state = StateSubmitted
	if s.SecondsLeft < 0 {
		s.SecondsLeft = 0
	}
	return true
}

// Answered returns how many questions have a recorded answer.
func (s *Session) Answered() int {
	n := 0
	for _, q := range s.Questions {
		if q.Recorded != "" {
			n++
		}
	}
	return n
}

// TimeUsed returns the elapsed seconds as counted by the tick clock.
func (s *Session) TimeUsed() int {
	return s.TimeLimit - s.SecondsLeft
}
