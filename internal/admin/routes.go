package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/smart-quiz/internal/auth"
)

func Routes(h *Handler, header, apiKey string) http.Handler {
	r := chi.NewRouter()

	r.Use(auth.APIKeyMiddleware(header, apiKey))

	r.Get("/stats", h.Stats)
	r.Delete("/cache/clear", h.ClearCache)
	r.Get("/cache/stats", h.CacheStats)
	r.Get("/ai/health", h.AIHealth)
	return r
}
