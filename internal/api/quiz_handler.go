package api

import (
	"net/http"

	"github.com/guidequiz/backend/internal/domain/question"
	"github.com/guidequiz/backend/internal/domain/quiz"
)

// ── Request / Response types ────────────────────────────────────────────────

type AnswerRequest struct {
	Index  int    `json:"index" example:"0"`
	Answer string `json:"answer" example:"AC"`
}

type AnswerResponse struct {
	Status string `json:"status" example:"recorded"`
}

type ResetRequest struct {
	Confirm bool `json:"confirm" example:"true"`
}

type QuestionResultResponse struct {
	Question      string `json:"question" example:"导游人员资格考试每年举行一次。"`
	UserAnswer    string `json:"userAnswer" example:"A"`
	CorrectAnswer string `json:"correctAnswer" example:"A"`
	IsCorrect     bool   `json:"isCorrect" example:"true"`
	Hint          string `json:"hint,omitempty" example:"《导游人员管理条例》第四条"`
}

type SubmitResponse struct {
	Score       int                      `json:"score" example:"8"`
	MaxScore    int                      `json:"maxScore" example:"10"`
	PerQuestion []QuestionResultResponse `json:"perQuestion"`
}

type StatsResponse struct {
	Judgement int `json:"judgement" example:"120"`
	Single    int `json:"single" example:"200"`
	Multiple  int `json:"multiple" example:"80"`
	Total     int `json:"total" example:"400"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// startQuiz starts a new quiz session.
// @Summary      Start a quiz
// @Description  Draws a fresh question set and starts the countdown. Replaces nothing: fails with 409 while a session is already running (use reset).
// @Tags         Quiz
// @Produce      json
// @Success      201  {object}  service.SessionView
// @Failure      409  {object}  map[string]string  "question pools are empty"
// @Failure      500  {object}  map[string]string
// @Router       /quiz [post]
func (h *Handler) startQuiz(w http.ResponseWriter, r *http.Request) {
	view, err := h.quiz.Start(r.Context())
	if h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusCreated, view)
}

// getQuiz returns the current session snapshot.
// @Summary      Current session
// @Description  Returns the live session with remaining time and recorded answers. Correct answers are never included.
// @Tags         Quiz
// @Produce      json
// @Success      200  {object}  service.SessionView
// @Failure      409  {object}  map[string]string  "no active quiz session"
// @Router       /quiz [get]
func (h *Handler) getQuiz(w http.ResponseWriter, r *http.Request) {
	view, ok := h.quiz.View()
	if !ok {
		respondError(w, http.StatusConflict, "no active quiz session")
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// recordAnswer records an answer for one question.
// @Summary      Record an answer
// @Description  Records the answer for the 0-based question index. Multiple-choice answers may arrive in any order and case.
// @Tags         Quiz
// @Accept       json
// @Produce      json
// @Param        body  body      AnswerRequest  true  "Answer to record"
// @Success      200   {object}  AnswerResponse
// @Failure      400   {object}  map[string]string  "index outside the session"
// @Failure      409   {object}  map[string]string  "no running session"
// @Router       /quiz/answers [post]
func (h *Handler) recordAnswer(w http.ResponseWriter, r *http.Request) {
	var req AnswerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.quiz.Answer(req.Index, req.Answer); err != nil {
		switch err {
		case quiz.ErrInvalidIndex:
			respondError(w, http.StatusBadRequest, "question index outside the session")
		case quiz.ErrNotRunning:
			respondError(w, http.StatusConflict, "session is no longer running")
		default:
			h.handleServiceError(w, err)
		}
		return
	}

	respondJSON(w, http.StatusOK, AnswerResponse{Status: "recorded"})
}

// submitQuiz finishes and scores the session.
// @Summary      Submit the quiz
// @Description  Stops the countdown, scores every question and persists the outcome. Submitting twice returns the same result without counting again.
// @Tags         Quiz
// @Produce      json
// @Success      200  {object}  SubmitResponse
// @Failure      409  {object}  map[string]string  "no active quiz session"
// @Failure      500  {object}  map[string]string
// @Router       /quiz/submit [post]
func (h *Handler) submitQuiz(w http.ResponseWriter, r *http.Request) {
	result, err := h.quiz.Submit(r.Context())
	if h.handleServiceError(w, err) {
		return
	}
	if result == nil {
		respondError(w, http.StatusConflict, "session has no result yet")
		return
	}
	respondJSON(w, http.StatusOK, submitResponse(result))
}

// resetQuiz discards the current session and starts a new one.
// @Summary      Reset the quiz
// @Description  Starts over with a fresh draw. While a session is running the request must carry confirm=true.
// @Tags         Quiz
// @Accept       json
// @Produce      json
// @Param        body  body      ResetRequest  false  "Confirmation"
// @Success      201   {object}  service.SessionView
// @Failure      409   {object}  map[string]string  "confirmation required"
// @Router       /quiz/reset [post]
func (h *Handler) resetQuiz(w http.ResponseWriter, r *http.Request) {
	var req ResetRequest
	if r.ContentLength > 0 && !decodeJSON(w, r, &req) {
		return
	}

	view, err := h.quiz.Reset(r.Context(), req.Confirm)
	if h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusCreated, view)
}

// quizStats reports the size of each question pool.
// @Summary      Question pool sizes
// @Tags         Quiz
// @Produce      json
// @Success      200  {object}  StatsResponse
// @Failure      500  {object}  map[string]string
// @Router       /quiz/stats [get]
func (h *Handler) quizStats(w http.ResponseWriter, r *http.Request) {
	counts, err := h.quiz.Stats(r.Context())
	if h.handleServiceError(w, err) {
		return
	}

	resp := StatsResponse{}
	for category, n := range counts {
		switch category {
		case question.CategoryJudgement:
			resp.Judgement = n
		case question.CategorySingle:
			resp.Single = n
		case question.CategoryMultiple:
			resp.Multiple = n
		}
		resp.Total += n
	}
	respondJSON(w, http.StatusOK, resp)
}

func submitResponse(result *quiz.Result) SubmitResponse {
	perQuestion := make([]QuestionResultResponse, len(result.PerQuestion))
	for i, qr := range result.PerQuestion {
		perQuestion[i] = QuestionResultResponse{
			Question:      qr.Prompt,
			UserAnswer:    qr.UserAnswer,
			CorrectAnswer: qr.CorrectAnswer,
			IsCorrect:     qr.Correct,
			Hint:          qr.Hint,
		}
	}
	return SubmitResponse{
		Score:       result.Score,
		MaxScore:    result.MaxScore,
		PerQuestion: perQuestion,
	}
}
