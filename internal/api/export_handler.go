package api

import (
	"net/http"
)

// exportLatest downloads the most recent test record as a JSON file.
// @Summary      Export the latest result
// @Description  Serves the most recent test record as a JSON attachment named guide-test_YYYY-MM-DD.json.
// @Tags         Performance
// @Produce      json
// @Success      200  {object}  performance.TestRecord
// @Failure      404  {object}  map[string]string  "no test record yet"
// @Failure      500  {object}  map[string]string
// @Router       /export [get]
func (h *Handler) exportLatest(w http.ResponseWriter, r *http.Request) {
	filename, data, err := h.quiz.ExportLast(r.Context())
	if h.handleServiceError(w, err) {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
