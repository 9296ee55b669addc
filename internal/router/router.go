package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/saulo-duarte/smart-quiz/internal/admin"
	"github.com/saulo-duarte/smart-quiz/internal/aiquiz"
	"github.com/saulo-duarte/smart-quiz/internal/config"
	"github.com/saulo-duarte/smart-quiz/internal/middlewares"
	"github.com/saulo-duarte/smart-quiz/internal/quiz"
)

// RouterConfig holds the mounted handlers. A nil handler leaves its routes
// unmounted.
type RouterConfig struct {
	AIQuizHandler *aiquiz.Handler
	QuizHandler   *quiz.Handler
	AdminHandler  *admin.Handler

	CORSOrigins  []string
	APIKeyHeader string
	AdminAPIKey  string
}

func New(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware(cfg.CORSOrigins))

	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		config.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if cfg.AIQuizHandler != nil {
		r.Mount("/ai-quiz", aiquiz.Routes(cfg.AIQuizHandler))
	}
	if cfg.QuizHandler != nil {
		r.Mount("/quizzes", quiz.Routes(cfg.QuizHandler))
	}
	if cfg.AdminHandler != nil {
		r.Mount("/admin", admin.Routes(cfg.AdminHandler, cfg.APIKeyHeader, cfg.AdminAPIKey))
	}

	return otelhttp.NewHandler(r, "smart-quiz")
}
