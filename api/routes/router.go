package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wagerworks/wagerbook-backend/api/controllers"
	"github.com/wagerworks/wagerbook-backend/api/middleware"
	"github.com/wagerworks/wagerbook-backend/internal/events"
	"github.com/wagerworks/wagerbook-backend/internal/odds"
	"github.com/wagerworks/wagerbook-backend/internal/payouts"
	"github.com/wagerworks/wagerbook-backend/internal/results"
	"github.com/wagerworks/wagerbook-backend/internal/wagers"
	"github.com/wagerworks/wagerbook-backend/pkg/config"
	"github.com/wagerworks/wagerbook-backend/pkg/logger"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	Events   events.Service
	Wagers   wagers.Service
	Results  results.Service
	Payouts  payouts.Service
	Odds     odds.Service
	Pingers  map[string]controllers.Pinger
	Registry *prometheus.Registry
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.ActorIdentity(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Pingers))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/events", func(r chi.Router) {
		r.Post("/", controllers.EventsCreate(deps.Events, logg))
		r.Get("/", controllers.EventsList(deps.Events, logg))
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", controllers.EventsGet(deps.Events, logg))
			r.Post("/bets", controllers.BetsPlace(deps.Wagers, logg))
			r.Post("/result", controllers.ResultsReport(deps.Results, logg))
			r.Get("/winnings", controllers.WinningsGet(deps.Payouts, logg))
			r.Get("/odds/{option}", controllers.OddsGet(deps.Odds, logg))
		})
	})

	return r
}
