package quiz

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/saulo-duarte/smart-quiz/internal/apperror"
	"github.com/saulo-duarte/smart-quiz/internal/auth"
	"github.com/saulo-duarte/smart-quiz/internal/config"
)

type Handler struct {
	service QuizService
}

func NewHandler(s QuizService) *Handler {
	return &Handler{service: s}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperror.HTTPStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		config.WithContext(r.Context()).WithError(err).Error("Quiz request failed")
		msg = "internal server error"
	}
	config.JSONError(w, status, msg)
}

func userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil || claims.UserID == "" {
		config.JSONError(w, http.StatusUnauthorized, "unauthorized")
		return "", false
	}
	return claims.UserID, true
}

func (h *Handler) CreateQuiz(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	var payload struct {
		Quiz      Quiz            `json:"quiz"`
		Questions []*QuizQuestion `json:"questions"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		config.JSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(payload.Questions) == 0 {
		config.JSONError(w, http.StatusBadRequest, "quiz must contain at least one question")
		return
	}

	owner, err := uuid.Parse(uid)
	if err != nil {
		config.JSONError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	payload.Quiz.UserID = owner
	if err := h.service.CreateQuizWithQuestions(r.Context(), &payload.Quiz, payload.Questions); err != nil {
		writeError(w, r, err)
		return
	}

	config.JSON(w, http.StatusCreated, map[string]interface{}{
		"quiz":      payload.Quiz,
		"questions": payload.Questions,
	})
}

func (h *Handler) DeleteQuiz(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteQuiz(r.Context(), uid, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, map[string]string{"message": "quiz deleted successfully"})
}

func (h *Handler) AddQuestion(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	var question QuizQuestion
	if err := json.NewDecoder(r.Body).Decode(&question); err != nil {
		config.JSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.AddQuestionToQuiz(r.Context(), uid, chi.URLParam(r, "id"), &question); err != nil {
		writeError(w, r, err)
		return
	}

	config.JSON(w, http.StatusCreated, map[string]interface{}{
		"message":  "question added successfully",
		"question": question,
	})
}

func (h *Handler) RemoveQuestion(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	questionID := chi.URLParam(r, "questionID")
	if questionID == "" {
		config.JSONError(w, http.StatusBadRequest, "question id required")
		return
	}
	if err := h.service.RemoveQuestion(r.Context(), uid, questionID); err != nil {
		writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, map[string]string{"message": "question removed successfully"})
}

func (h *Handler) GetQuizWithQuestions(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	dto, err := h.service.GetQuizWithQuestions(r.Context(), uid, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, dto)
}

func (h *Handler) ListQuizzesByUser(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	quizzes, err := h.service.ListQuizzesByUser(r.Context(), uid)
	if err != nil {
		writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, quizzes)
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	var answers []AnswerInput
	if err := json.NewDecoder(r.Body).Decode(&answers); err != nil {
		config.JSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.service.Submit(r.Context(), uid, chi.URLParam(r, "id"), answers)
	if err != nil {
		writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, res)
}

func (h *Handler) Explain(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	text, err := h.service.Explain(r.Context(), uid, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, map[string]string{"explanation": text})
}

func (h *Handler) Confidence(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	score, err := h.service.Confidence(r.Context(), uid, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, map[string]float64{"confidence_score": score})
}
