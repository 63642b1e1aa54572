// internal/service/order/interfaces/http_handler.go
package interfaces

import (
	"encoding/json"
	"net/http"
	"strconv"

	pkgerrors "github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	catalogdomain "storefront/internal/service/catalog/domain"
	"storefront/internal/service/order/application"
	"storefront/internal/service/order/domain"
	"storefront/internal/service/order/port"
)

// OrderHandler 封装了订单服务的 HTTP 处理器。
type OrderHandler struct {
	service *application.OrderService
	cart    port.CartStore
}

// NewOrderHandler 创建一个新的 HTTP 处理器实例。
func NewOrderHandler(service *application.OrderService, cart port.CartStore) *OrderHandler {
	return &OrderHandler{service: service, cart: cart}
}

// RegisterRoutes 在 ServeMux 上注册所有路由。
func (h *OrderHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/cart/items", h.handleAddCartItem)
	mux.HandleFunc("/cart", h.handleGetCart)
	mux.HandleFunc("/checkout", h.handleCheckout)
	mux.HandleFunc("/orders", h.handleListUserOrders)
	mux.HandleFunc("/orders/detail", h.handleGetOrder)
	mux.HandleFunc("/orders/status", h.handleAdvanceStatus)
	mux.HandleFunc("/admin/orders", h.handleAdminList)
}

type cartLineDTO struct {
	ProductID int64  `json:"productId"`
	UnitPrice string `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
}

type checkoutRequest struct {
	UserID        int64         `json:"userId"`
	PromotionCode string        `json:"promotionCode,omitempty"`
	Lines         []cartLineDTO `json:"lines,omitempty"`
}

type orderResponse struct {
	OrderID           string         `json:"orderId"`
	UserID            int64          `json:"userId"`
	Lines             []orderLineDTO `json:"lines,omitempty"`
	Subtotal          string         `json:"subtotal"`
	DiscountAmount    string         `json:"discountAmount"`
	TotalAmount       string         `json:"totalAmount"`
	PromotionID       *int64         `json:"promotionId,omitempty"`
	Status            string         `json:"status"`
	CreatedAt         string         `json:"createdAt"`
	UpdatedAt         string         `json:"updatedAt"`
	PromotionApplied  bool           `json:"promotionApplied,omitempty"`
	PromotionAdvisory string         `json:"promotionAdvisory,omitempty"`
}

type orderLineDTO struct {
	ProductID int64  `json:"productId"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPriceAtPurchase"`
}

func toOrderResponse(o *domain.Order) orderResponse {
	resp := orderResponse{
		OrderID:        o.ID,
		UserID:         o.UserID,
		Subtotal:       o.Subtotal.StringFixed(2),
		DiscountAmount: o.DiscountAmount.StringFixed(2),
		TotalAmount:    o.TotalAmount.StringFixed(2),
		PromotionID:    o.PromotionID,
		Status:         string(o.Status),
		CreatedAt:      o.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:      o.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	for _, l := range o.Lines {
		resp.Lines = append(resp.Lines, orderLineDTO{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPriceAtPurchase.StringFixed(2),
		})
	}
	return resp
}

// handleCheckout 处理结算请求。
// 用户可见的失败分三类：库存/并发冲突（购物车已变化，请重试）、
// 促销未生效（订单仍创建）、持久化失败（请稍后再试）。
func (h *OrderHandler) handleCheckout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.UserID == 0 {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	lines := make([]domain.CartLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		price, err := decimal.NewFromString(l.UnitPrice)
		if err != nil {
			http.Error(w, "invalid unit price", http.StatusBadRequest)
			return
		}
		lines = append(lines, domain.CartLine{ProductID: l.ProductID, UnitPrice: price, Quantity: l.Quantity})
	}

	result, err := h.service.Checkout(ctx, &application.CheckoutRequest{
		UserID:        req.UserID,
		Lines:         lines,
		PromotionCode: req.PromotionCode,
	})
	if err != nil {
		writeCheckoutError(w, err)
		return
	}

	resp := toOrderResponse(result.Order)
	resp.PromotionApplied = result.PromotionApplied
	resp.PromotionAdvisory = result.PromotionAdvisory

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}

func writeCheckoutError(w http.ResponseWriter, err error) {
	switch {
	case pkgerrors.Is(err, domain.ErrEmptyCart):
		http.Error(w, "cart is empty", http.StatusBadRequest)
	case pkgerrors.Is(err, domain.ErrInvalidLine):
		http.Error(w, "invalid cart line", http.StatusBadRequest)
	case catalogdomain.IsInsufficientStock(err):
		http.Error(w, "your cart changed, please retry: "+err.Error(), http.StatusConflict)
	case pkgerrors.Is(err, catalogdomain.ErrProductNotFound):
		http.Error(w, "your cart changed, please retry: "+err.Error(), http.StatusConflict)
	default:
		http.Error(w, "could not complete, try again", http.StatusInternalServerError)
	}
}

type advanceStatusRequest struct {
	OrderID string `json:"orderId"`
	Target  string `json:"target"`
}

// handleAdvanceStatus 处理订单状态流转。
func (h *OrderHandler) handleAdvanceStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

	var req advanceStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	order, err := h.service.AdvanceStatus(ctx, req.OrderID, req.Target)
	if err != nil {
		switch {
		case pkgerrors.Is(err, domain.ErrOrderNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case pkgerrors.Is(err, domain.ErrInvalidStatus),
			pkgerrors.Is(err, domain.ErrIllegalTransition),
			pkgerrors.Is(err, domain.ErrIllegalCancellation):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case pkgerrors.Is(err, domain.ErrConcurrentModification):
			http.Error(w, "order was updated concurrently, please retry", http.StatusConflict)
		default:
			http.Error(w, "could not complete, try again", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toOrderResponse(order))
}

// handleAddCartItem 向会话购物车写入一行，单价在此刻冻结。
func (h *OrderHandler) handleAddCartItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

	var req struct {
		UserID int64 `json:"userId"`
		cartLineDTO
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	price, err := decimal.NewFromString(req.UnitPrice)
	if err != nil || price.IsNegative() || req.Quantity <= 0 {
		http.Error(w, "invalid cart line", http.StatusBadRequest)
		return
	}

	line := domain.CartLine{ProductID: req.ProductID, UnitPrice: price, Quantity: req.Quantity}
	if err := h.cart.AddLine(ctx, req.UserID, line); err != nil {
		http.Error(w, "could not update cart, try again", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleGetCart 返回用户当前的购物车快照。
func (h *OrderHandler) handleGetCart(w http.ResponseWriter, r *http.Request) {
	ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

	userID, err := strconv.ParseInt(r.URL.Query().Get("userId"), 10, 64)
	if err != nil {
		http.Error(w, "invalid userId", http.StatusBadRequest)
		return
	}

	lines, err := h.cart.GetLines(ctx, userID)
	if err != nil {
		http.Error(w, "could not load cart, try again", http.StatusInternalServerError)
		return
	}

	dtos := make([]cartLineDTO, 0, len(lines))
	for _, l := range lines {
		dtos = append(dtos, cartLineDTO{
			ProductID: l.ProductID,
			UnitPrice: l.UnitPrice.StringFixed(2),
			Quantity:  l.Quantity,
		})
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dtos)
}

// handleGetOrder 返回订单详情。
func (h *OrderHandler) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "id is required", http.StatusBadRequest)
		return
	}

	order, err := h.service.GetOrder(ctx, id)
	if err != nil {
		if pkgerrors.Is(err, domain.ErrOrderNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, "could not load order, try again", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toOrderResponse(order))
}

// handleListUserOrders 返回用户的订单历史。
func (h *OrderHandler) handleListUserOrders(w http.ResponseWriter, r *http.Request) {
	ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

	userID, err := strconv.ParseInt(r.URL.Query().Get("userId"), 10, 64)
	if err != nil {
		http.Error(w, "invalid userId", http.StatusBadRequest)
		return
	}

	orders, err := h.service.ListUserOrders(ctx, userID)
	if err != nil {
		http.Error(w, "could not load orders, try again", http.StatusInternalServerError)
		return
	}

	resp := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, toOrderResponse(o))
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// handleAdminList 是管理端的分页订单列表，支持按状态过滤。
func (h *OrderHandler) handleAdminList(w http.ResponseWriter, r *http.Request) {
	ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

	filter := domain.ListFilter{Page: 1, PageSize: 10}
	if s := r.URL.Query().Get("status"); s != "" {
		status, err := domain.ParseStatus(s)
		if err != nil {
			http.Error(w, "invalid status filter", http.StatusBadRequest)
			return
		}
		filter.Status = &status
	}
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		filter.Page = p
	}
	if ps, err := strconv.Atoi(r.URL.Query().Get("pageSize")); err == nil && ps > 0 {
		filter.PageSize = ps
	}

	orders, total, err := h.service.ListOrders(ctx, filter)
	if err != nil {
		http.Error(w, "could not load orders, try again", http.StatusInternalServerError)
		return
	}

	items := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		items = append(items, toOrderResponse(o))
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"items":    items,
		"total":    total,
		"page":     filter.Page,
		"pageSize": filter.PageSize,
	})
}
