// internal/service/promotion/interfaces/http_handler.go
package interfaces

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"storefront/internal/service/promotion/application"
)

// PromotionHandler 封装了促销服务的 HTTP 处理器。
type PromotionHandler struct {
	service *application.PromotionService
}

// NewPromotionHandler 创建一个新的 HTTP 处理器实例。
func NewPromotionHandler(service *application.PromotionService) *PromotionHandler {
	return &PromotionHandler{service: service}
}

// RegisterRoutes 在 ServeMux 上注册所有路由。
func (h *PromotionHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/promotions/preview", h.handlePreview)
}

// handlePreview 处理结算页的促销预览：只计算，不产生副作用。
func (h *PromotionHandler) handlePreview(w http.ResponseWriter, r *http.Request) {
	ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "code is required", http.StatusBadRequest)
		return
	}
	subtotal, err := decimal.NewFromString(r.URL.Query().Get("subtotal"))
	if err != nil || subtotal.IsNegative() {
		http.Error(w, "invalid subtotal", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Preview(ctx, code, subtotal)
	if err != nil {
		http.Error(w, "could not evaluate promotion, try again", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
