package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "pet-tracker/docs"
	"pet-tracker/internal/domain/pets"
	"pet-tracker/internal/middleware"
	"pet-tracker/internal/notify"
	"pet-tracker/internal/platform/logger"
)

type Options struct {
	// Store es obligatorio: sqlite o postgres, lo decide quien arma el router.
	Store pets.Store

	// Authority aceptada en URIs content://. Vacío = cualquiera.
	Authority string

	// Opcionales.
	Hub    *notify.Hub
	Logger logger.Logger
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	hub := opts.Hub
	if hub == nil {
		hub = notify.NewHub()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	svc := pets.NewService(opts.Store, pets.NewMatcher(opts.Authority), hub, log)
	pets.RegisterRoutes(r, svc)

	return r
}
