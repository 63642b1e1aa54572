// internal/service/order/application/service.go
package application

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"storefront/internal/pkg/logger"
	"storefront/internal/pkg/metrics"
	catalogdomain "storefront/internal/service/catalog/domain"
	"storefront/internal/service/order/domain"
	"storefront/internal/service/order/port"
	promodomain "storefront/internal/service/promotion/domain"
)

// OrderService 编排订单核心链路：结算（订单装配）和状态机流转。
// 业务规则在领域层，这里只负责流程编排、事务边界之后的副作用和可观测性。
type OrderService struct {
	orders     domain.OrderRepository
	promotions port.PromotionEvaluator
	cart       port.CartStore
	notifier   port.NotificationProducer
	tracer     trace.Tracer
	now        func() time.Time
}

// NewOrderService 创建订单应用服务。
func NewOrderService(
	orders domain.OrderRepository,
	promotions port.PromotionEvaluator,
	cart port.CartStore,
	notifier port.NotificationProducer,
	tracer trace.Tracer,
) *OrderService {
	return &OrderService{
		orders:     orders,
		promotions: promotions,
		cart:       cart,
		notifier:   notifier,
		tracer:     tracer,
		now:        time.Now,
	}
}

// Checkout 将购物车快照装配为持久订单。
// 流程：快照取价计算小计 -> 促销评估（失败降级为零折扣）->
// 在一个事务内完成库存扣减与订单落库 -> 提交后发事件、清购物车。
// 库存不足与空购物车是硬失败；促销不合格只产生建议性提示。
func (s *OrderService) Checkout(ctx context.Context, req *CheckoutRequest) (*CheckoutResult, error) {
	ctx, span := s.tracer.Start(ctx, "order.Checkout")
	defer span.End()
	span.SetAttributes(attribute.Int64("user.id", req.UserID))

	start := s.now()

	lines := req.Lines
	if len(lines) == 0 {
		// 交互式结算不带行数据时，以服务端购物车为准
		var err error
		lines, err = s.cart.GetLines(ctx, req.UserID)
		if err != nil {
			span.RecordError(err)
			metrics.OrdersCreated.WithLabelValues("error").Inc()
			return nil, err
		}
	}
	if len(lines) == 0 {
		metrics.OrdersCreated.WithLabelValues("empty_cart").Inc()
		return nil, domain.ErrEmptyCart
	}

	subtotal := domain.Subtotal(lines)
	span.SetAttributes(attribute.String("order.subtotal", subtotal.String()))

	discount := decimal.Zero
	var promotionID *int64
	advisory := ""
	if req.PromotionCode != "" {
		id, d, err := s.promotions.Evaluate(ctx, req.PromotionCode, subtotal, s.now())
		switch {
		case err == nil:
			discount = d
			promotionID = &id
		default:
			// 促销失败绝不阻断结算：订单按零折扣继续，原因作为建议返回
			if ie := promodomain.AsIneligible(err); ie != nil {
				advisory = fmt.Sprintf("promotion not applied: %s", ie.Reason)
			} else {
				logger.Ctx(ctx).Error().Err(err).Str("code", req.PromotionCode).Msg("promotion evaluation failed")
				advisory = "promotion not applied"
			}
			span.AddEvent("promotion rejected", trace.WithAttributes(attribute.String("advisory", advisory)))
		}
	}

	order, err := domain.NewOrder(req.UserID, lines, discount, promotionID, s.now())
	if err != nil {
		span.RecordError(err)
		metrics.OrdersCreated.WithLabelValues("error").Inc()
		return nil, err
	}

	// 库存扣减 + 订单头 + 订单行在仓储内是一个原子单元
	if err := s.orders.Create(ctx, order); err != nil {
		span.RecordError(err)
		if catalogdomain.IsInsufficientStock(err) {
			span.SetStatus(codes.Error, "insufficient stock")
			metrics.OrdersCreated.WithLabelValues("insufficient_stock").Inc()
			return nil, err
		}
		span.SetStatus(codes.Error, "order persistence failed")
		metrics.OrdersCreated.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.OrdersCreated.WithLabelValues("success").Inc()
	metrics.CheckoutDuration.Observe(s.now().Sub(start).Seconds())
	span.AddEvent("order committed")

	// 以下副作用都发生在事务提交之后，失败只记日志
	if err := s.notifier.OrderCreated(ctx, order); err != nil {
		logger.Ctx(ctx).Error().Err(err).Str("order_id", order.ID).Msg("failed to emit order created event")
	}
	if err := s.cart.Clear(ctx, req.UserID); err != nil {
		logger.Ctx(ctx).Error().Err(err).Int64("user_id", req.UserID).Msg("failed to clear cart after checkout")
	}

	logger.Ctx(ctx).Info().
		Str("order_id", order.ID).
		Str("total", order.TotalAmount.StringFixed(2)).
		Bool("promotion_applied", promotionID != nil).
		Msg("order created")

	return &CheckoutResult{
		Order:             order,
		PromotionApplied:  promotionID != nil,
		PromotionAdvisory: advisory,
	}, nil
}

// AdvanceStatus 推进订单状态机。
// 合法性由领域规则判定；持久化以读取到的当前状态做乐观并发检查，
// 写入时状态已被并发修改则返回 ErrConcurrentModification，调用方应
// 重新读取订单后重试。
func (s *OrderService) AdvanceStatus(ctx context.Context, orderID string, target string) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "order.AdvanceStatus")
	defer span.End()
	span.SetAttributes(attribute.String("order.id", orderID), attribute.String("order.target_status", target))

	targetStatus, err := domain.ParseStatus(target)
	if err != nil {
		return nil, err
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if err := domain.CanTransition(order.Status, targetStatus); err != nil {
		span.AddEvent("transition rejected", trace.WithAttributes(
			attribute.String("from", string(order.Status)),
			attribute.String("to", string(targetStatus)),
		))
		return nil, err
	}

	from := order.Status
	at := s.now()
	if err := s.orders.UpdateStatus(ctx, orderID, from, targetStatus, at); err != nil {
		span.RecordError(err)
		return nil, err
	}
	order.Status = targetStatus
	order.UpdatedAt = at

	metrics.StatusTransitions.WithLabelValues(string(targetStatus)).Inc()

	// 事件在状态写入成功之后发出
	if err := s.notifier.OrderStatusChanged(ctx, order, from); err != nil {
		logger.Ctx(ctx).Error().Err(err).Str("order_id", orderID).Msg("failed to emit status changed event")
	}

	logger.Ctx(ctx).Info().
		Str("order_id", orderID).
		Str("from", string(from)).
		Str("to", string(targetStatus)).
		Msg("order status advanced")

	return order, nil
}

// GetOrder 返回订单详情（含订单行）。
func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "order.GetOrder")
	defer span.End()
	return s.orders.FindByID(ctx, orderID)
}

// ListUserOrders 返回某个用户的订单历史，按创建时间倒序。
func (s *OrderService) ListUserOrders(ctx context.Context, userID int64) ([]*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "order.ListUserOrders")
	defer span.End()
	return s.orders.ListByUser(ctx, userID)
}

// ListOrders 是管理端的分页订单列表。
func (s *OrderService) ListOrders(ctx context.Context, filter domain.ListFilter) ([]*domain.Order, int64, error) {
	ctx, span := s.tracer.Start(ctx, "order.ListOrders")
	defer span.End()
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 10
	}
	return s.orders.List(ctx, filter)
}
