package handler

import (
	"net/http"
	"strconv"
	"strings"

	"catalog-import/internal/model"
	"catalog-import/internal/service"

	"github.com/rs/zerolog"
)

const productsPath = "/api/products/"

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	service service.ProductService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// GetAll handles GET /api/products requests with pagination.
func (h *ProductHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, model.ErrCodeInvalidParameter, "method not allowed", h.logger)
		return
	}

	limit, ok := h.queryInt(w, r, "limit", 10)
	if !ok {
		return
	}
	offset, ok := h.queryInt(w, r, "offset", 0)
	if !ok {
		return
	}

	products, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// GetByName handles GET /api/products/{name} requests.
func (h *ProductHandler) GetByName(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, model.ErrCodeInvalidParameter, "method not allowed", h.logger)
		return
	}

	name := strings.TrimPrefix(r.URL.Path, productsPath)
	if name == "" || name == r.URL.Path {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidParameter, "product name is required", h.logger)
		return
	}

	product, err := h.service.GetByName(r.Context(), name)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	if product == nil {
		writeServiceError(w, r, model.ErrProductNotFound, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// queryInt reads an integer query parameter, writing a 400 response when it is malformed.
func (h *ProductHandler) queryInt(w http.ResponseWriter, r *http.Request, key string, defaultValue int) (int, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultValue, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidParameter, "invalid "+key+" parameter", h.logger)
		return 0, false
	}
	return value, true
}
