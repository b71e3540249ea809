package store

import (
	"context"
	"errors"

	"github.com/guidequiz/backend/internal/domain/performance"
	"github.com/guidequiz/backend/internal/domain/question"
)

var (
	ErrNotFound = errors.New("not found")
)

// Store is the persistence boundary: question pools, cumulative performance
// counters, and the capped attempt history.
type Store interface {
	// Question pools.
	ReplacePool(ctx context.Context, c question.Category, qs []question.Question) error
	QuestionsByCategory(ctx context.Context, c question.Category) ([]question.Question, error)
	Pools(ctx context.Context) (question.Pools, error)
	PoolCounts(ctx context.Context) (map[question.Category]int, error)

	// Performance counters.
	LoadPerformance(ctx context.Context) (performance.Set, error)
	ApplyDeltas(ctx context.Context, deltas map[question.Category]performance.Delta) error
	ResetPerformance(ctx context.Context) error

	// Attempt history, newest first, capped at performance.HistoryLimit.
	AppendRecord(ctx context.Context, rec *performance.TestRecord) error
	History(ctx context.Context) ([]performance.TestRecord, error)
	LatestRecord(ctx context.Context) (*performance.TestRecord, error)
	ClearHistory(ctx context.Context) error

	Close() error
}
