package admin

import (
	"net/http"

	"github.com/saulo-duarte/smart-quiz/internal/ai"
	"github.com/saulo-duarte/smart-quiz/internal/apperror"
	"github.com/saulo-duarte/smart-quiz/internal/config"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	counts, err := h.service.Stats(r.Context())
	if err != nil {
		config.WithContext(r.Context()).WithError(err).Warn("Stats unavailable")
		config.JSONError(w, apperror.HTTPStatus(err), err.Error())
		return
	}
	config.JSON(w, http.StatusOK, counts)
}

func (h *Handler) ClearCache(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ClearCache(r.Context()); err != nil {
		config.JSONError(w, apperror.HTTPStatus(err), err.Error())
		return
	}
	config.JSON(w, http.StatusOK, map[string]string{"message": "cache cleared"})
}

func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	config.JSON(w, http.StatusOK, h.service.CacheStats(r.Context()))
}

func (h *Handler) AIHealth(w http.ResponseWriter, r *http.Request) {
	report := h.service.AIHealth(r.Context())
	status := http.StatusOK
	if report.Overall == ai.StatusUnhealthy {
		status = http.StatusServiceUnavailable
	}
	config.JSON(w, status, report)
}
