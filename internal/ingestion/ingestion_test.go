package ingestion_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/guidequiz/backend/internal/domain/question"
	"github.com/guidequiz/backend/internal/ingestion"
	"github.com/guidequiz/backend/internal/store"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writePoolFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questions.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write pool file: %v", err)
	}
	return path
}

func TestLoadFile_ParsesAllCategories(t *testing.T) {
	path := writePoolFile(t, `{
		"judgement": [
			{"id": 1, "question": "Guides must carry their certificate on duty.", "answer": "A", "hint": "Required by regulation."}
		],
		"single": [
			{"id": 1, "question": "Which city is the capital?", "options": ["A. Shanghai", "B. Beijing", "C. Chengdu"], "answer": "B"}
		],
		"multiple": [
			{"id": 1, "question": "Which are UNESCO sites?", "options": ["A. One", "B. Two", "C. Three"], "answer": "CA"}
		]
	}`)

	pools, err := ingestion.LoadFile(path, discard())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if pools.Total() != 3 {
		t.Fatalf("expected 3 questions, got %d", pools.Total())
	}

	j := pools[question.CategoryJudgement][0]
	if j.ID != "judgement-1" || j.Answer != "A" || j.Hint == "" {
		t.Errorf("unexpected judgement question: %+v", j)
	}

	// Multi answers come out normalized.
	m := pools[question.CategoryMultiple][0]
	if m.Answer != "AC" {
		t.Errorf("expected normalized answer AC, got %q", m.Answer)
	}
}

func TestLoadFile_SkipsInvalidEntries(t *testing.T) {
	path := writePoolFile(t, `{
		"judgement": [
			{"id": 1, "question": "Valid.", "answer": "B"},
			{"id": 2, "question": "", "answer": "A"},
			{"id": 3, "question": "Bad answer.", "answer": "X"}
		]
	}`)

	pools, err := ingestion.LoadFile(path, discard())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := pools.Count(question.CategoryJudgement); got != 1 {
		t.Errorf("expected 1 valid question, got %d", got)
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := ingestion.LoadFile(filepath.Join(t.TempDir(), "nope.json"), discard())
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadFile_MalformedJSON(t *testing.T) {
	path := writePoolFile(t, "{{{")
	if _, err := ingestion.LoadFile(path, discard()); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestSeed_WritesPoolsToStore(t *testing.T) {
	path := writePoolFile(t, `{
		"judgement": [{"id": 1, "question": "True or false.", "answer": "A"}],
		"single": [{"id": 1, "question": "Pick.", "options": ["A. x", "B. y"], "answer": "A"}]
	}`)

	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "quiz.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer st.Close()

	if err := ingestion.Seed(context.Background(), st, path, discard()); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	counts, err := st.PoolCounts(context.Background())
	if err != nil {
		t.Fatalf("PoolCounts: %v", err)
	}
	if counts[question.CategoryJudgement] != 1 || counts[question.CategorySingle] != 1 {
		t.Errorf("unexpected pool counts: %v", counts)
	}
}
