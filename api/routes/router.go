package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"saleor-tma-bot/api/controllers"
	"saleor-tma-bot/api/middleware"
	"saleor-tma-bot/pkg/config"
	"saleor-tma-bot/pkg/logger"
	"saleor-tma-bot/pkg/metrics"
)

// BotHandler is the dispatcher seen from HTTP: chat updates and Mini-App calls.
type BotHandler interface {
	controllers.UpdateHandler
	controllers.SubmissionHandler
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	m *metrics.Bot,
	gatherer prometheus.Gatherer,
	bot BotHandler,
	gateway controllers.CatalogGateway,
	fallback controllers.CatalogFallback,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(m),
	)

	r.Get("/", controllers.Root())
	r.Method(http.MethodGet, "/metrics", metrics.Handler(gatherer))

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
	})

	r.Post("/telegram", controllers.TelegramWebhook(bot, logg))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", controllers.Health(gateway, fallback))
		r.Post("/webapp", controllers.WebApp(bot, logg))
		r.Get("/restaurants", controllers.Restaurants(gateway, fallback, logg))
		r.Get("/products", controllers.Products(gateway, fallback, logg))
		r.Get("/products/{id}", controllers.Product(gateway, fallback, logg))
		r.Get("/menu/{restaurantId}", controllers.Menu(gateway, fallback, logg))
	})

	return r
}
