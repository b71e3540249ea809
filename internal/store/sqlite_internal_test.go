package store

import (
	"context"
	"path/filepath"
	"testing"
)

// Corrupt persisted blobs must degrade to defaults, never surface as errors.
func TestHistory_CorruptDetailDegrades(t *testing.T) {
	s, err := NewSQLite(filepath.Join(t.TempDir(), "quiz.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer s.Close()
	ctx := context.Background()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO history (record_id, taken_at, score, max_score, total_questions, time_used, time_left, detail)
		VALUES ('bad', 'not-a-timestamp', 6, 10, 5, 30, 90, '{{{ not json')
	`)
	if err != nil {
		t.Fatalf("failed to seed corrupt row: %v", err)
	}

	records, err := s.History(ctx)
	if err != nil {
		t.Fatalf("expected corrupt row to load without error, got %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	rec := records[0]
	if rec.Score != 6 {
		t.Errorf("expected intact scalar columns, got score %d", rec.Score)
	}
	if rec.Questions != nil {
		t.Errorf("expected corrupt detail to degrade to nil, got %+v", rec.Questions)
	}
	if !rec.TakenAt.IsZero() {
		t.Errorf("expected unparsable timestamp to degrade to zero time, got %v", rec.TakenAt)
	}
}

func TestLoadPerformance_DropsImpossibleRow(t *testing.T) {
	s, err := NewSQLite(filepath.Join(t.TempDir(), "quiz.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer s.Close()
	ctx := context.Background()

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO performance (category, correct, total) VALUES ('judgement', 9, 3)")
	if err != nil {
		t.Fatalf("failed to seed row: %v", err)
	}

	set, err := s.LoadPerformance(ctx)
	if err != nil {
		t.Fatalf("LoadPerformance: %v", err)
	}
	if got := set["judgement"]; got.Correct != 0 || got.Total != 0 {
		t.Errorf("expected impossible row to fall back to zeroed counters, got %+v", got)
	}
}
