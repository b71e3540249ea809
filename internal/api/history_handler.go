package api

import (
	"net/http"

	"github.com/guidequiz/backend/internal/domain/performance"
	"github.com/guidequiz/backend/internal/domain/question"
)

// ── Request / Response types ────────────────────────────────────────────────

type CategoryPerformanceResponse struct {
	Category string  `json:"category" example:"judgement"`
	Correct  int     `json:"correct" example:"14"`
	Total    int     `json:"total" example:"20"`
	Accuracy float64 `json:"accuracy" example:"70"` // percent
}

type PerformanceResponse struct {
	Categories []CategoryPerformanceResponse `json:"categories"`
}

type HistoryResponse struct {
	Records []performance.TestRecord `json:"records"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// getPerformance reports per-category answer counters.
// @Summary      Per-category performance
// @Description  Returns correct/total counters and accuracy for every question category. Categories never answered show zero counters.
// @Tags         Performance
// @Produce      json
// @Success      200  {object}  PerformanceResponse
// @Failure      500  {object}  map[string]string
// @Router       /performance [get]
func (h *Handler) getPerformance(w http.ResponseWriter, r *http.Request) {
	set, err := h.quiz.Performance(r.Context())
	if h.handleServiceError(w, err) {
		return
	}

	resp := PerformanceResponse{Categories: make([]CategoryPerformanceResponse, 0, len(question.AllCategories))}
	for _, category := range question.AllCategories {
		counters := set[category]
		resp.Categories = append(resp.Categories, CategoryPerformanceResponse{
			Category: string(category),
			Correct:  counters.Correct,
			Total:    counters.Total,
			Accuracy: counters.Accuracy(),
		})
	}
	respondJSON(w, http.StatusOK, resp)
}

// getHistory lists stored test records, newest first.
// @Summary      Test history
// @Description  Returns up to the 50 most recent test records.
// @Tags         Performance
// @Produce      json
// @Success      200  {object}  HistoryResponse
// @Failure      500  {object}  map[string]string
// @Router       /history [get]
func (h *Handler) getHistory(w http.ResponseWriter, r *http.Request) {
	records, err := h.quiz.History(r.Context())
	if h.handleServiceError(w, err) {
		return
	}
	if records == nil {
		records = []performance.TestRecord{}
	}
	respondJSON(w, http.StatusOK, HistoryResponse{Records: records})
}

// clearHistory wipes test records and performance counters.
// @Summary      Clear history
// @Description  Deletes every stored test record and resets the per-category counters to zero.
// @Tags         Performance
// @Success      204  "cleared"
// @Failure      500  {object}  map[string]string
// @Router       /history [delete]
func (h *Handler) clearHistory(w http.ResponseWriter, r *http.Request) {
	if err := h.quiz.ClearHistory(r.Context()); h.handleServiceError(w, err) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
