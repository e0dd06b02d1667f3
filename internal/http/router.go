package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/bloomnext/pos-inventory/internal/http/handlers"
	"github.com/bloomnext/pos-inventory/internal/http/rate_limiter"
)

// NewRouter wires all routes. Mutating routes sit behind the bearer-token
// middleware; a nil limiter disables rate limiting (test suites).
func NewRouter(h *handlers.Handler, limiter *rate_limiter.Registry) http.Handler {
	r := chi.NewRouter()

	if limiter != nil {
		r.Use(RateLimitMiddleware(limiter))
	}

	r.Get("/", rootHandler)
	r.Get("/health", healthHandler)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Post("/register", h.RegisterHandler)
	r.Post("/login", h.LoginHandler)
	r.Post("/refresh", h.RefreshHandler)

	r.Route("/api", func(r chi.Router) {
		// read-only catalog surface
		r.Get("/products", h.GetProductsHandler)
		r.Get("/products/lookup", h.LookupProductHandler)
		r.Get("/products/{id}", h.GetProductByIDHandler)
		r.Get("/products/{id}/inventory", h.GetInventoryHistoryHandler)

		// mutations require authentication
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(h.Tokens()))
			r.Post("/products", h.CreateProductHandler)
			r.Post("/products/import", h.ImportProductsHandler)
			r.Put("/products/{id}", h.UpdateProductHandler)
			r.Delete("/products/{id}", h.DeactivateProductHandler)
			r.Post("/products/{id}/stock/adjust", h.AdjustStockHandler)
			r.Post("/products/{id}/stock/receive", h.ReceiveStockHandler)
			r.Post("/products/{id}/stock/set", h.SetStockHandler)
			r.Get("/metrics/dashboard", h.GetDashboardMetricsHandler)
		})
	})

	return r
}

func rootHandler(w http.ResponseWriter, _ *http.Request) {
	writeStatic(w, map[string]any{
		"ok":      true,
		"service": "BloomNext POS API",
		"message": "Product & Inventory API is running",
		"docs":    "/swagger/index.html",
		"health":  "/health",
	})
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeStatic(w, map[string]any{"ok": true})
}
