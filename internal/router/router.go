package router

import (
	"net/http"

	"catalog-import/internal/handler"
	"catalog-import/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
// metricsHandler may be nil, in which case /metrics is not served.
func New(
	importHandler *handler.ImportHandler,
	productHandler *handler.ProductHandler,
	metricsHandler http.Handler,
	apiKey string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	if metricsHandler != nil {
		mux.Handle("/metrics", metricsHandler)
	}

	// Register import routes (both with and without trailing slash)
	mux.HandleFunc("/api/imports", importHandler.Create)
	mux.HandleFunc("/api/imports/", importHandler.Create)

	productRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		// Anything below the collection path names a single product
		if r.URL.Path != "/api/products" && r.URL.Path != "/api/products/" {
			productHandler.GetByName(w, r)
			return
		}
		productHandler.GetAll(w, r)
	}

	mux.HandleFunc("/api/products", productRouteHandler)
	mux.HandleFunc("/api/products/", productRouteHandler)

	// Apply middleware in order: Recovery -> Logging -> RequestID -> CORS -> APIKeyAuth
	var handler http.Handler = mux
	handler = middleware.APIKeyAuth(apiKey, logger)(handler)
	handler = middleware.CORS(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Recovery(logger)(handler)

	return handler
}
