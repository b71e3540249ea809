package quiz

import (
	"errors"
	"math/rand"
	"time"

	"github.com/guidequiz/backend/internal/domain/performance"
	"github.com/guidequiz/backend/internal/domain/question"
)

// ErrShortPool signals that at least one pool holds fewer questions than
// requested. The caller falls back to SelectAny.
var ErrShortPool = errors.New("quiz: pool smaller than requested count")

// Counts is the number of questions to draw per category.
type Counts map[question.Category]int

// DefaultCounts mirrors the stock test layout: 2 judgement, 2 single, 1 multiple.
func DefaultCounts() Counts {
	return Counts{
		question.CategoryJudgement: 2,
		question.CategorySingle:    2,
		question.CategoryMultiple:  1,
	}
}

// Total returns the requested session size.
func (c Counts) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

// UsedQuestion records one drawn question for the in-session tracking list.
type UsedQuestion struct {
	Category question.Category
	ID       string
}

// Selector draws bounded question sets from the pools. It keeps a tracking
// list of the IDs drawn for the current session; the list is cleared at the
// start of every draw, so repeats across sessions are expected.
type Selector struct {
	rng  *rand.Rand
	used []UsedQuestion
}

func NewSelector() *Selector {
	return &Selector{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSelectorWithSeed returns a deterministic selector for tests.
func NewSelectorWithSeed(seed int64) *Selector {
	return &Selector{rng: rand.New(rand.NewSource(seed))}
}

// Select draws counts[c] questions from each category pool without
// replacement and shuffles the combined set. If any pool is smaller than its
// requested count it returns (nil, ErrShortPool) and draws nothing.
func (s *Selector) Select(pools question.Pools, counts Counts) ([]question.Question, error) {
	s.used = s.used[:0]

	for _, c := range question.AllCategories {
		if pools.Count(c) < counts[c] {
			return nil, ErrShortPool
		}
	}

	var selected []question.Question
	for _, c := range question.AllCategories {
		n := counts[c]
		if n <= 0 {
			continue
		}
		selected = append(selected, s.draw(pools[c], n)...)
	}

	s.shuffle(selected)
	for _, q := range selected {
		s.used = append(s.used, UsedQuestion{Category: q.Category, ID: q.ID})
	}
	return selected, nil
}

// adaptiveMinAnswers is how many recorded answers a category needs before
// its accuracy counts as a usable signal.
const adaptiveMinAnswers = 10

// SelectAdaptive accepts the per-category counters alongside the pools. A
// category under adaptiveMinAnswers recorded answers carries no signal, and
// for the rest no biasing strategy is defined yet, so the draw is the plain
// uniform Select.
func (s *Selector) SelectAdaptive(pools question.Pools, counts Counts, perf performance.Set) ([]question.Question, error) {
	return s.Select(pools, counts)
}

// SelectAny is the degraded draw: up to limit questions chosen uniformly
// across whatever is available, ignoring per-category counts. It returns an
// empty set only when the pools are entirely empty.
func (s *Selector) SelectAny(pools question.Pools, limit int) []question.Question {
	s.used = s.used[:0]

	var all []question.Question
	for _, c := range question.AllCategories {
		all = append(all, pools[c]...)
	}
	if len(all) == 0 {
		return nil
	}

	s.shuffle(all)
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	for _, q := range all {
		s.used = append(s.used, UsedQuestion{Category: q.Category, ID: q.ID})
	}
	return all
}

// Used returns the tracking list for the most recent draw.
func (s *Selector) Used() []UsedQuestion {
	return s.used
}

// ClearUsed resets the tracking list, as happens before every new session.
func (s *Selector) ClearUsed() {
	s.used = s.used[:0]
}

// draw picks n questions without replacement from a copy of the pool.
func (s *Selector) draw(pool []question.Question, n int) []question.Question {
	shuffled := make([]question.Question, len(pool))
	copy(shuffled, pool)
	s.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:n]
}

// shuffle applies a uniform Fisher-Yates permutation in place.
func (s *Selector) shuffle(qs []question.Question) {
	s.rng.Shuffle(len(qs), func(i, j int) {
		qs[i], qs[j] = qs[j], qs[i]
	})
}
