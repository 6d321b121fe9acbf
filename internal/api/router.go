package api

import (
	"net/http"

	"github.com/dom/stargate-tracker/internal/api/handlers"
	"github.com/dom/stargate-tracker/internal/api/middleware"
	"github.com/dom/stargate-tracker/internal/config"
	"github.com/dom/stargate-tracker/internal/metrics"
	"github.com/dom/stargate-tracker/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func NewRouter(services *service.Services, m *metrics.Metrics, log *zap.Logger, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.RequestLogger(log.Named("http"), m))
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.CORSAllowedOrigin))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	r.Method(http.MethodGet, "/metrics", m.Handler())

	// Initialize handlers
	handlerLog := log.Named("handlers")
	personHandler := handlers.NewPersonHandler(services.Person, services.Query, services.RequestLog, handlerLog)
	dutyHandler := handlers.NewAstronautDutyHandler(services.Duty, services.Query, services.RequestLog, handlerLog)

	r.Route("/Person", func(r chi.Router) {
		r.Get("/", personHandler.GetAll)
		r.Post("/", personHandler.Create)
		r.Get("/{name}", personHandler.GetByName)
		r.Put("/{name}", personHandler.Rename)
	})

	r.Route("/AstronautDuty", func(r chi.Router) {
		r.Get("/{name}", dutyHandler.GetByName)
		r.Post("/", dutyHandler.Create)
	})

	return r
}
