// internal/service/catalog/interfaces/http_handler.go
package interfaces

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"storefront/internal/service/catalog/domain"
)

// CatalogHandler 暴露商品目录的只读 HTTP 接口。
type CatalogHandler struct {
	products domain.ProductRepository
}

// NewCatalogHandler 创建一个新的 HTTP 处理器实例。
func NewCatalogHandler(products domain.ProductRepository) *CatalogHandler {
	return &CatalogHandler{products: products}
}

// RegisterRoutes 在 ServeMux 上注册所有路由。
func (h *CatalogHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/products", h.handleGetProduct)
}

type productResponse struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	UnitPrice     string `json:"unitPrice"`
	StockQuantity int    `json:"stockQuantity"`
}

func (h *CatalogHandler) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	product, err := h.products.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, "could not load product, try again", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(productResponse{
		ID:            product.ID,
		Name:          product.Name,
		UnitPrice:     product.UnitPrice.StringFixed(2),
		StockQuantity: product.StockQuantity,
	})
}
