package api

import "net/http"

// RegisterRoutes attaches every handler to the mux using method-qualified
// patterns.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Quiz lifecycle
	mux.HandleFunc("POST /quiz", h.startQuiz)
	mux.HandleFunc("GET /quiz", h.getQuiz)
	mux.HandleFunc("POST /quiz/answers", h.recordAnswer)
	mux.HandleFunc("POST /quiz/submit", h.submitQuiz)
	mux.HandleFunc("POST /quiz/reset", h.resetQuiz)
	mux.HandleFunc("GET /quiz/stats", h.quizStats)

	// Performance
	mux.HandleFunc("GET /performance", h.getPerformance)
	mux.HandleFunc("GET /history", h.getHistory)
	mux.HandleFunc("DELETE /history", h.clearHistory)
	mux.HandleFunc("GET /export", h.exportLatest)
}
