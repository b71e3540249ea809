// Package ingestion loads the three question collections from disk into the
// store at startup. The data file mirrors the original pool shape: numeric
// ids, prompts, "Letter. text" option labels, a letter answer, and an
// optional hint.
package ingestion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/guidequiz/backend/internal/domain/question"
	"github.com/guidequiz/backend/internal/store"
)

// ErrNoQuestions means the pools are entirely absent after the bounded wait;
// a session cannot start without them.
var ErrNoQuestions = errors.New("ingestion: no question pools available")

const (
	loadAttempts = 5
	loadDelay    = 2 * time.Second
)

type entry struct {
	ID       int      `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options,omitempty"`
	Answer   string   `json:"answer"`
	Hint     string   `json:"hint,omitempty"`
}

type poolFile struct {
	Judgement []entry `json:"judgement"`
	Single    []entry `json:"single"`
	Multiple  []entry `json:"multiple"`
}

// LoadFile parses the pool file. Answers are normalized (multi letters
// sorted, duplicates dropped) and entries that fail validation are skipped
// rather than aborting the load.
func LoadFile(path string, logger *slog.Logger) (question.Pools, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f poolFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("ingestion: parse %s: %w", path, err)
	}

	pools := question.Pools{}
	for _, group := range []struct {
		category question.Category
		entries  []entry
	}{
		{question.CategoryJudgement, f.Judgement},
		{question.CategorySingle, f.Single},
		{question.CategoryMultiple, f.Multiple},
	} {
		for _, e := range group.entries {
			q := question.Question{
				ID:       fmt.Sprintf("%s-%d", group.category, e.ID),
				Category: group.category,
				Prompt:   e.Question,
				Options:  e.Options,
				Answer:   question.NormalizeAnswer(group.category, e.Answer),
				Hint:     e.Hint,
			}
			if err := q.Validate(); err != nil {
				logger.Warn("skipping invalid question", "id", q.ID, "error", err)
				continue
			}
			pools[group.category] = append(pools[group.category], q)
		}
	}
	return pools, nil
}

// Seed loads the pool file and writes each collection to the store. The read
// is retried a few times to ride out a data file that is still being synced
// into place; if every attempt fails or yields zero questions, Seed returns
// ErrNoQuestions and the caller must refuse to start.
func Seed(ctx context.Context, st store.Store, path string, logger *slog.Logger) error {
	var pools question.Pools
	var lastErr error

	for attempt := 1; attempt <= loadAttempts; attempt++ {
		pools, lastErr = LoadFile(path, logger)
		if lastErr == nil && pools.Total() > 0 {
			break
		}
		if attempt < loadAttempts {
			logger.Warn("question pools not ready, retrying",
				"path", path, "attempt", attempt, "error", lastErr)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(loadDelay):
			}
		}
	}

	if pools.Total() == 0 {
		if lastErr != nil {
			return fmt.Errorf("%w: %v", ErrNoQuestions, lastErr)
		}
		return ErrNoQuestions
	}

	for _, c := range question.AllCategories {
		if len(pools[c]) == 0 {
			logger.Warn("question pool is empty", "category", c)
		}
		if err := st.ReplacePool(ctx, c, pools[c]); err != nil {
			return fmt.Errorf("ingestion: store %s pool: %w", c, err)
		}
	}

	logger.Info("question pools loaded",
		"judgement", len(pools[question.CategoryJudgement]),
		"single", len(pools[question.CategorySingle]),
		"multiple", len(pools[question.CategoryMultiple]),
	)
	return nil
}
