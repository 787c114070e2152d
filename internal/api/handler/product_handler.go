package handler

import (
	"loan-schedule/internal/api/handler/dto"
	"loan-schedule/internal/domain/product"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type ProductHandler struct {
	service product.ProductService
	logger  *slog.Logger
}

func NewProductHandler(s product.ProductService, l *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: s,
		logger:  l.With("component", "ProductHandler"),
	}
}

// ListProducts returns the active loan products.
//
// @Summary List loan products
// @Description Returns every active loan product, ordered by name.
// @Tags Products
// @Produce json
// @Success 200 {object} dto.ProductListResponse "Active loan products"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /loan/products [get]
// @Security BearerAuth
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListActiveProducts(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewProductListResponse(products))
}

// GetProduct returns one active loan product.
//
// @Summary Get a loan product
// @Tags Products
// @Produce json
// @Param productKey path string true "Product key"
// @Success 200 {object} dto.ProductResponse "Loan product"
// @Failure 404 {object} dto.ErrorResponse "Unknown or inactive product"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /loan/products/{productKey} [get]
// @Security BearerAuth
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "productKey")
	p, err := h.service.GetActiveProduct(r.Context(), key)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewProductResponse(*p))
}
