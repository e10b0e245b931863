package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ziz0u9/MillesBTP-sub000/internal/http/amendment"
	"github.com/ziz0u9/MillesBTP-sub000/internal/http/auth"
	"github.com/ziz0u9/MillesBTP-sub000/internal/http/categorize"
	"github.com/ziz0u9/MillesBTP-sub000/internal/http/client"
	"github.com/ziz0u9/MillesBTP-sub000/internal/http/cost"
	"github.com/ziz0u9/MillesBTP-sub000/internal/http/event"
	"github.com/ziz0u9/MillesBTP-sub000/internal/http/importcosts"
	"github.com/ziz0u9/MillesBTP-sub000/internal/http/worksite"
)

func New(
	jwtSecret []byte,
	corsOrigins []string,
	clientsV1 *client.Handler,
	worksitesV1 *worksite.Handler,
	costsV1 *cost.Handler,
	amendmentsV1 *amendment.Handler,
	eventsV1 *event.Handler,
	importV1 *importcosts.Handler,
	categorizeV1 *categorize.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Middleware(jwtSecret))

		r.Route("/clients", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			clientsV1.Routes(r)
		})

		r.Route("/worksites", func(r chi.Router) {
			worksitesV1.Routes(r)

			r.Route("/{id}/costs", func(r chi.Router) {
				costsV1.WorksiteRoutes(r)
				r.Route("/import", importV1.Routes)
			})

			r.Route("/{id}/amendments", amendmentsV1.WorksiteRoutes)
			r.Route("/{id}/events", eventsV1.WorksiteRoutes)
		})

		r.Route("/costs", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			costsV1.Routes(r)
		})

		r.Route("/amendments", amendmentsV1.Routes)

		r.Route("/categorize", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			categorizeV1.Routes(r)
		})
	})

	return router
}
