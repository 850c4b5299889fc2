package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jordanveras/threadline-backend/api/controllers"
	"github.com/jordanveras/threadline-backend/api/middleware"
	"github.com/jordanveras/threadline-backend/internal/catalog"
	"github.com/jordanveras/threadline-backend/pkg/config"
	"github.com/jordanveras/threadline-backend/pkg/localstore"
	"github.com/jordanveras/threadline-backend/pkg/logger"
	"github.com/jordanveras/threadline-backend/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbPinger controllers.Pinger,
	redisPinger controllers.Pinger,
	catalogService catalog.Service,
	storage localstore.Storage,
	storeMetrics *metrics.StoreMetrics,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.CORS(),
		middleware.Logging(logg),
	)

	pingers := map[string]controllers.Pinger{}
	if dbPinger != nil {
		pingers["database"] = dbPinger
	}
	if redisPinger != nil {
		pingers["redis"] = redisPinger
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, pingers))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	cartDeps := controllers.CartDeps{
		Storage: storage,
		CartKey: cfg.Storage.CartKey,
		Catalog: catalogService,
		Logger:  logg,
		Metrics: storeMetrics,
	}
	wishlistDeps := controllers.WishlistDeps{
		Storage: storage,
		Key:     cfg.Storage.WishlistKey,
		Catalog: catalogService,
		Logger:  logg,
		Metrics: storeMetrics,
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(catalogService, logg))
			r.Get("/{productId}", controllers.ProductDetail(catalogService, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.CartSession(logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(cartDeps))
				r.Delete("/", controllers.CartClear(cartDeps))
				r.Post("/items", controllers.CartAddItem(cartDeps))
				r.Patch("/items/{itemId}", controllers.CartUpdateQuantity(cartDeps))
				r.Delete("/items/{itemId}", controllers.CartRemoveItem(cartDeps))
				r.Post("/items/{itemId}/save", controllers.CartSaveForLater(cartDeps))
				r.Post("/saved/{itemId}/restore", controllers.CartRestore(cartDeps))
				r.Put("/promo", controllers.CartSetPromo(cartDeps))
				r.Post("/toggle", controllers.CartToggle(cartDeps))
			})

			r.Route("/wishlist", func(r chi.Router) {
				r.Get("/", controllers.WishlistFetch(wishlistDeps))
				r.Post("/items", controllers.WishlistAdd(wishlistDeps))
				r.Delete("/items/{productId}", controllers.WishlistRemove(wishlistDeps))
				r.Get("/items/{productId}", controllers.WishlistContains(wishlistDeps))
			})
		})
	})

	return r
}
