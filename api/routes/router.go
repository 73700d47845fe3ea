package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/procurehub/procurehub-backend/api/controllers"
	"github.com/procurehub/procurehub-backend/api/middleware"
	"github.com/procurehub/procurehub-backend/internal/catalog"
	"github.com/procurehub/procurehub-backend/internal/directory"
	"github.com/procurehub/procurehub-backend/internal/reports"
	"github.com/procurehub/procurehub-backend/internal/requests"
	"github.com/procurehub/procurehub-backend/pkg/config"
	"github.com/procurehub/procurehub-backend/pkg/enums"
	"github.com/procurehub/procurehub-backend/pkg/logger"
	"github.com/procurehub/procurehub-backend/pkg/metrics"
	pkgredis "github.com/procurehub/procurehub-backend/pkg/redis"
)

// Deps bundles everything the router wires together.
type Deps struct {
	Config           *config.Config
	Logger           *logger.Logger
	Registry         *prometheus.Registry
	HTTPMetrics      *metrics.HTTPMetrics
	DB               controllers.Pinger
	Redis            *pkgredis.Client
	IdempotencyStore pkgredis.IdempotencyStore
	Requests         requests.Service
	Directory        directory.Service
	Catalog          catalog.Service
	Reports          reports.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.HTTP.AllowedOrigins),
	)
	if deps.HTTPMetrics != nil {
		r.Use(middleware.Metrics(deps.HTTPMetrics))
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
			"postgres": deps.DB,
			"redis":    deps.Redis,
		}))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Actor(logg))
		if deps.IdempotencyStore != nil {
			r.Use(middleware.Idempotency(deps.IdempotencyStore, logg))
		}

		r.Route("/requests", func(r chi.Router) {
			r.Post("/", controllers.CreateRequest(deps.Requests, logg))
			r.Get("/", controllers.ListRequests(deps.Requests, logg))
			r.With(middleware.RequireRole(logg, string(enums.UserRoleManager))).
				Get("/pending", controllers.ListPendingRequests(deps.Requests, logg))
			r.Route("/{requestId}", func(r chi.Router) {
				r.Get("/", controllers.GetRequest(deps.Requests, logg))
				r.With(middleware.RequireRole(logg, string(enums.UserRoleManager))).
					Post("/decision", controllers.ManagerDecision(deps.Requests, logg))
				r.With(middleware.RequireRole(logg, string(enums.UserRoleSuperAdmin))).
					Post("/process", controllers.AdminProcess(deps.Requests, logg))
			})
		})

		r.Get("/staff/{staffId}/requests", controllers.ListStaffRequests(deps.Requests, logg))

		r.With(middleware.RequireRole(logg, string(enums.UserRoleManager), string(enums.UserRoleSuperAdmin))).
			Get("/reports", controllers.GetReports(deps.Reports, logg))

		admin := middleware.RequireRole(logg, string(enums.UserRoleSuperAdmin))

		r.Route("/users", func(r chi.Router) {
			r.Use(admin)
			r.Post("/", controllers.CreateUser(deps.Directory, logg))
			r.Get("/", controllers.ListUsers(deps.Directory, logg))
			r.Route("/{userId}", func(r chi.Router) {
				r.Get("/", controllers.GetUser(deps.Directory, logg))
				r.Patch("/", controllers.UpdateUser(deps.Directory, logg))
				r.Delete("/", controllers.DeactivateUser(deps.Directory, logg))
			})
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.ListCategories(deps.Catalog, logg))
			r.Get("/{categoryId}", controllers.GetCategory(deps.Catalog, logg))
			r.With(admin).Post("/", controllers.CreateCategory(deps.Catalog, logg))
			r.With(admin).Patch("/{categoryId}", controllers.UpdateCategory(deps.Catalog, logg))
			r.With(admin).Delete("/{categoryId}", controllers.DeactivateCategory(deps.Catalog, logg))
		})

		r.Route("/items", func(r chi.Router) {
			r.Get("/", controllers.ListItems(deps.Catalog, logg))
			r.Get("/{itemId}", controllers.GetItem(deps.Catalog, logg))
			r.With(admin).Post("/", controllers.CreateItem(deps.Catalog, logg))
			r.With(admin).Patch("/{itemId}", controllers.UpdateItem(deps.Catalog, logg))
			r.With(admin).Delete("/{itemId}", controllers.DeactivateItem(deps.Catalog, logg))
		})
	})

	return r
}
