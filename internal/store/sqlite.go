// internal/store/sqlite.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	_ "modernc.org/sqlite"

	"github.com/guidequiz/backend/internal/domain/performance"
	"github.com/guidequiz/backend/internal/domain/question"
)

const schema = `
CREATE TABLE IF NOT EXISTS questions (
    id TEXT PRIMARY KEY,
    category TEXT NOT NULL,
    prompt TEXT NOT NULL,
    options TEXT NOT NULL,
    answer TEXT NOT NULL,
    hint TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS performance (
    category TEXT PRIMARY KEY,
    correct INTEGER NOT NULL DEFAULT 0,
    total INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS history (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    record_id TEXT NOT NULL,
    taken_at TEXT NOT NULL,
    score INTEGER NOT NULL,
    max_score INTEGER NOT NULL,
    total_questions INTEGER NOT NULL,
    time_used INTEGER NOT NULL,
    time_left INTEGER NOT NULL,
    detail TEXT NOT NULL
);
`

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLite(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ============================================================================
// Question pools
// ============================================================================

func (s *SQLiteStore) ReplacePool(ctx context.Context, c question.Category, qs []question.Question) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM questions WHERE category = ?", string(c)); err != nil {
		return err
	}

	for _, q := range qs {
		optionsJSON, err := json.Marshal(q.Options)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO questions (id, category, prompt, options, answer, hint) VALUES (?, ?, ?, ?, ?, ?)",
			q.ID, string(q.Category), q.Prompt, string(optionsJSON), q.Answer, q.Hint,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) QuestionsByCategory(ctx context.Context, c question.Category) ([]question.Question, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, category, prompt, options, answer, hint FROM questions WHERE category = ?", string(c))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanQuestions(rows)
}

func (s *SQLiteStore) Pools(ctx context.Context) (question.Pools, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, category, prompt, options, answer, hint FROM questions")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	qs, err := scanQuestions(rows)
	if err != nil {
		return nil, err
	}

	pools := question.Pools{}
	for _, q := range qs {
		pools[q.Category] = append(pools[q.Category], q)
	}
	return pools, nil
}

func (s *SQLiteStore) PoolCounts(ctx context.Context) (map[question.Category]int, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT category, COUNT(*) FROM questions GROUP BY category")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[question.Category]int, len(question.AllCategories))
	for _, c := range question.AllCategories {
		counts[c] = 0
	}
	for rows.Next() {
		var cat string
		var n int
		if err := rows.Scan(&cat, &n); err != nil {
			return nil, err
		}
		counts[question.Category(cat)] = n
	}
	return counts, rows.Err()
}

func scanQuestions(rows *sql.Rows) ([]question.Question, error) {
	var qs []question.Question
	for rows.Next() {
		var q question.Question
		var cat, optionsJSON string
		if err := rows.Scan(&q.ID, &cat, &q.Prompt, &optionsJSON, &q.Answer, &q.Hint); err != nil {
			return nil, err
		}
		q.Category = question.Category(cat)
		// Options were written by this store; a corrupt blob degrades to
		// an option-less question rather than failing the whole load.
		_ = json.Unmarshal([]byte(optionsJSON), &q.Options)
		qs = append(qs, q)
	}
	return qs, rows.Err()
}

// ============================================================================
// Performance counters
// ============================================================================

func (s *SQLiteStore) LoadPerformance(ctx context.Context) (performance.Set, error) {
	set := performance.NewSet()

	rows, err := s.db.QueryContext(ctx, "SELECT category, correct, total FROM performance")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var cat string
		var c performance.Counters
		if err := rows.Scan(&cat, &c.Correct, &c.Total); err != nil {
			return nil, err
		}
		// Unknown categories or impossible tallies in the stored row are
		// dropped; the zeroed default stands in for them.
		if !question.Category(cat).Valid() || c.Correct > c.Total || c.Correct < 0 {
			continue
		}
		set[question.Category(cat)] = c
	}
	return set, rows.Err()
}

func (s *SQLiteStore) ApplyDeltas(ctx context.Context, deltas map[question.Category]performance.Delta) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for c, d := range deltas {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO performance (category, correct, total) VALUES (?, ?, ?)
			ON CONFLICT(category) DO UPDATE SET
				correct = correct + excluded.correct,
				total = total + excluded.total
		`, string(c), d.Correct, d.Total)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) ResetPerformance(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM performance")
	return err
}

// ============================================================================
// History
// ============================================================================

func (s *SQLiteStore) AppendRecord(ctx context.Context, rec *performance.TestRecord) error {
	detailJSON, err := json.Marshal(rec.Questions)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO history (record_id, taken_at, score, max_score, total_questions, time_used, time_left, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.TakenAt.UTC().Format(time.RFC3339),
		rec.Score, rec.MaxScore, rec.TotalQuestions, rec.TimeUsedSeconds, rec.TimeLeftSeconds, string(detailJSON))
	if err != nil {
		return err
	}

	// Keep only the newest entries; the oldest rows go first.
	_, err = tx.ExecContext(ctx, `
		DELETE FROM history WHERE id NOT IN (
			SELECT id FROM history ORDER BY id DESC LIMIT ?
		)
	`, performance.HistoryLimit)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStore) History(ctx context.Context) ([]performance.TestRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT record_id, taken_at, score, max_score, total_questions, time_used, time_left, detail
		FROM history ORDER BY id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []performance.TestRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

func (s *SQLiteStore) LatestRecord(ctx context.Context) (*performance.TestRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT record_id, taken_at, score, max_score, total_questions, time_used, time_left, detail
		FROM history ORDER BY id DESC LIMIT 1
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ErrNotFound
	}
	return scanRecord(rows)
}

func (s *SQLiteStore) ClearHistory(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM history")
	return err
}

func scanRecord(rows *sql.Rows) (*performance.TestRecord, error) {
	var rec performance.TestRecord
	var takenAt, detailJSON string
	err := rows.Scan(&rec.ID, &takenAt, &rec.Score, &rec.MaxScore,
		&rec.TotalQuestions, &rec.TimeUsedSeconds, &rec.TimeLeftSeconds, &detailJSON)
	if err != nil {
		return nil, err
	}

	// An unparsable timestamp leaves the zero time rather than erroring.
	rec.TakenAt, _ = time.Parse(time.RFC3339, takenAt)

	// A corrupt detail blob degrades to a record without per-question
	// detail instead of failing the history load.
	if err := json.Unmarshal([]byte(detailJSON), &rec.Questions); err != nil {
		rec.Questions = nil
	}
	return &rec, nil
}
