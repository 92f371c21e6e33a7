package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"cart-pricing/app/controller"
)

type Controllers struct {
	Catalog *controller.CatalogController
	Cart    *controller.CartController
	Sale    *controller.SaleController
	Metrics http.Handler
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// NewRouter builds the HTTP routes
func NewRouter(controllers *Controllers) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))

	r.Get("/ping", pingHandler)
	if controllers.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", controllers.Metrics)
	}

	r.Get("/catalog", controllers.Catalog.GetCatalog)

	// Carts
	r.Route("/carts/{cartID}", func(r chi.Router) {
		r.Get("/", controllers.Cart.GetCart)
		r.Get("/quote", controllers.Cart.QuoteCart)
		r.Put("/lines/{productID}", controllers.Cart.SetLine)
		r.Delete("/lines/{productID}", controllers.Cart.RemoveLine)
	})

	// Ad-hoc quote against the stored catalog
	r.Post("/quote", controllers.Cart.Quote)

	// Sale events, triggered by an external scheduler
	r.Route("/admin/sales", func(r chi.Router) {
		r.Post("/lightning", controllers.Sale.Lightning)
		r.Post("/suggestion", controllers.Sale.Suggestion)
		r.Post("/reset", controllers.Sale.Reset)
	})

	return r
}
