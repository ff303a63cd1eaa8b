package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vendorlink/vendorlink-backend/api/controllers"
	"github.com/vendorlink/vendorlink-backend/api/middleware"
	"github.com/vendorlink/vendorlink-backend/internal/bids"
	"github.com/vendorlink/vendorlink-backend/internal/directory"
	"github.com/vendorlink/vendorlink-backend/internal/projects"
	"github.com/vendorlink/vendorlink-backend/internal/routing"
	"github.com/vendorlink/vendorlink-backend/pkg/config"
	"github.com/vendorlink/vendorlink-backend/pkg/enums"
	"github.com/vendorlink/vendorlink-backend/pkg/logger"
)

// NewRouter assembles the HTTP surface: business project lifecycle, vendor
// lead queue, and the admin approval/rerouting endpoints.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	redisP controllers.Pinger,
	projectService projects.Service,
	leadService routing.Service,
	bidService bids.Service,
	directoryService directory.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	business := string(enums.ActorRoleBusiness)
	vendor := string(enums.ActorRoleVendor)
	admin := string(enums.ActorRoleAdmin)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/projects", func(r chi.Router) {
			r.Use(middleware.RequireAnyRole(logg, business, admin))

			r.Post("/", controllers.CreateProject(projectService, logg))
			r.Get("/", controllers.ListProjects(projectService, logg))

			r.Route("/{projectId}", func(r chi.Router) {
				r.Get("/", controllers.GetProject(projectService, logg))
				r.Delete("/", controllers.DeleteProject(projectService, logg))
				r.Post("/publish", controllers.PublishProject(projectService, logg))
				r.Post("/assign", controllers.AssignVendor(projectService, logg))
				r.Post("/complete", controllers.CompleteProject(projectService, logg))
				r.Post("/cancel", controllers.CancelProject(projectService, logg))
				r.Get("/activity", controllers.ProjectActivity(projectService, logg))
				r.Get("/bids", controllers.ProjectBids(bidService, logg))

				r.With(middleware.RequireRole(admin, logg)).
					Post("/reroute", controllers.RerouteProject(projectService, logg))
			})
		})

		r.Route("/leads", func(r chi.Router) {
			r.Use(middleware.RequireRole(vendor, logg))

			r.Get("/", controllers.ListLeads(leadService, logg))
			r.Route("/{projectId}", func(r chi.Router) {
				r.Post("/interest", controllers.LeadInterest(leadService, logg))
				r.Post("/decline", controllers.LeadDecline(leadService, logg))
				r.Post("/bids", controllers.SubmitBid(bidService, logg))
				r.Post("/complete", controllers.CompleteProject(projectService, logg))
			})
		})

		r.Route("/vendors", func(r chi.Router) {
			r.With(middleware.RequireRole(vendor, logg)).Get("/me", controllers.VendorProfile(directoryService, logg))
			r.With(middleware.RequireRole(vendor, logg)).Put("/me", controllers.UpsertVendorProfile(directoryService, logg))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireRole(admin, logg))

			r.Post("/vendors/{vendorId}/approval", controllers.SetVendorApproval(directoryService, logg))
		})
	})

	return r
}
