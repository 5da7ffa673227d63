package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"go-log-viewer/internal/auth"
	"go-log-viewer/internal/config"
	"go-log-viewer/internal/handler"
	"go-log-viewer/internal/middleware"
)

type Handlers struct {
	Log  *handler.LogHandler
	UI   *handler.UIHandler
	Docs *handler.DocsHandler
}

func New(cfg *config.Config, authenticator *auth.Authenticator, handlers Handlers) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.MutationRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.SecurityHeaders)
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	viewer := func(lv chi.Router) {
		lv.Use(middleware.BasicAuth(authenticator))

		lv.Get("/", handlers.UI.Index)
		lv.Get("/openapi.yaml", handlers.Docs.OpenAPI)
		lv.Get("/swagger", handlers.Docs.SwaggerUI)

		lv.Route("/api", func(api chi.Router) {
			api.Use(middleware.Timeout(cfg.RequestTimeout))

			api.Get("/files", handlers.Log.Files)
			api.Get("/content", handlers.Log.Content)
			api.Post("/clear", handlers.Log.Clear)
			api.Delete("/file", handlers.Log.Delete)
		})

		lv.Get("/*", handlers.UI.Index)
	}

	if cfg.URLPrefix == "" {
		r.Group(viewer)
	} else {
		r.Route(cfg.URLPrefix, viewer)
	}

	return r
}
