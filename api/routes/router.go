package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vuminhngo/techstore-backend/api/controllers"
	"github.com/vuminhngo/techstore-backend/api/middleware"
	"github.com/vuminhngo/techstore-backend/internal/loyalty"
	"github.com/vuminhngo/techstore-backend/internal/orders"
	"github.com/vuminhngo/techstore-backend/pkg/config"
	"github.com/vuminhngo/techstore-backend/pkg/logger"
	"github.com/vuminhngo/techstore-backend/pkg/redis"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config     *config.Config
	Logger     *logger.Logger
	DBPinger   controllers.Pinger
	Redis      *redis.Client
	Orders     orders.Service
	Thresholds *loyalty.ThresholdSource
	Settings   redis.SettingStore
	Registry   *prometheus.Registry
}

// NewRouter assembles the HTTP surface: public health probes, customer order
// endpoints, and the admin plane.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(d.Logger),
		middleware.RequestID(d.Logger),
		middleware.Logging(d.Logger),
		middleware.CORS(),
		middleware.Identity(d.Logger),
	)

	var redisPinger controllers.Pinger
	if d.Redis != nil {
		redisPinger = d.Redis
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(d.Config))
		r.Get("/ready", controllers.HealthReady(d.Config, d.Logger, d.DBPinger, redisPinger))
	})

	if d.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/orders", func(r chi.Router) {
		r.Use(middleware.RequireUser(d.Logger))
		r.Post("/", controllers.OrderCreate(d.Orders, d.Logger))
		r.Get("/my", controllers.OrderListMine(d.Orders, d.Logger))
		r.Put("/{orderId}/receive", controllers.OrderConfirmReceipt(d.Orders, d.Logger))
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.RequireAdmin(d.Logger))
		r.Get("/orders", controllers.AdminOrderList(d.Orders, d.Logger))
		r.Put("/orders/{orderId}/status", controllers.AdminOrderUpdateStatus(d.Orders, d.Logger))
		r.Get("/settings", controllers.AdminSettingsList(d.Thresholds, d.Logger))
		r.Post("/settings", controllers.AdminSettingsUpsert(d.Settings, d.Logger))
	})

	return r
}
