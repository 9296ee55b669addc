package aiquiz

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/saulo-duarte/smart-quiz/internal/apperror"
	"github.com/saulo-duarte/smart-quiz/internal/auth"
	"github.com/saulo-duarte/smart-quiz/internal/config"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperror.HTTPStatus(err)
	log := config.WithContext(r.Context()).WithError(err)
	if status >= http.StatusInternalServerError {
		log.Error("AI request failed")
	} else {
		log.Warn("AI request rejected")
	}
	config.JSONError(w, status, err.Error())
}

func topicRequest(r *http.Request) TopicQuizRequest {
	q := r.URL.Query()
	return TopicQuizRequest{
		Topic:      q.Get("topic"),
		Difficulty: q.Get("difficulty"),
		QuizType:   q.Get("quiz_type"),
		Model:      q.Get("model"),
	}
}

func (h *Handler) GenerateFromTopic(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.GenerateFromTopic(r.Context(), topicRequest(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) GenerateAndSave(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		config.JSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req TopicQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.JSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.service.GenerateAndSave(r.Context(), claims.UserID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusCreated, resp)
}

func (h *Handler) GenerateFromURL(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rawURL := strings.TrimSpace(q.Get("url"))
	if rawURL == "" {
		config.JSONError(w, http.StatusBadRequest, "url is required")
		return
	}

	useCache := true
	if v := q.Get("use_cache"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			config.JSONError(w, http.StatusBadRequest, "use_cache must be a boolean")
			return
		}
		useCache = b
	}

	payload, err := h.service.GenerateFromURL(r.Context(), rawURL, q.Get("quiz_type"), q.Get("model"), useCache)
	if err != nil {
		writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, payload)
}

func decodeText(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req TextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		config.JSONError(w, http.StatusBadRequest, "text is required")
		return "", false
	}
	return req.Text, true
}

func (h *Handler) Explain(w http.ResponseWriter, r *http.Request) {
	text, ok := decodeText(w, r)
	if !ok {
		return
	}
	config.JSON(w, http.StatusOK, map[string]string{"explanation": h.service.Explain(r.Context(), text)})
}

func (h *Handler) Confidence(w http.ResponseWriter, r *http.Request) {
	text, ok := decodeText(w, r)
	if !ok {
		return
	}
	config.JSON(w, http.StatusOK, map[string]float64{"confidence_score": h.service.Confidence(r.Context(), text)})
}

func (h *Handler) Tags(w http.ResponseWriter, r *http.Request) {
	var req TagsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Question) == "" {
		config.JSONError(w, http.StatusBadRequest, "question is required")
		return
	}
	config.JSON(w, http.StatusOK, map[string][]string{"tags": h.service.Tags(r.Context(), req.Question)})
}

func (h *Handler) Grade(w http.ResponseWriter, r *http.Request) {
	var req GradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.JSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	config.JSON(w, http.StatusOK, h.service.Grade(r.Context(), req))
}
