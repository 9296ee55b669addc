package aiquiz

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/smart-quiz/internal/auth"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/generate", h.GenerateFromTopic)
	r.Get("/from-url", h.GenerateFromURL)
	r.Post("/explain", h.Explain)
	r.Post("/confidence", h.Confidence)
	r.Post("/tags", h.Tags)
	r.Post("/grade", h.Grade)

	r.With(auth.AuthMiddleware).Post("/save", h.GenerateAndSave)
	return r
}
