// internal/service/order/port/ports.go
package port

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"storefront/internal/service/order/domain"
)

// CartStore 是会话购物车的外部接口。
// 购物车归用户会话所有，结算成功后由订单服务清空。
type CartStore interface {
	GetLines(ctx context.Context, userID int64) ([]domain.CartLine, error)
	AddLine(ctx context.Context, userID int64, line domain.CartLine) error
	Clear(ctx context.Context, userID int64) error
}

// PromotionEvaluator 评估一个促销码对给定小计的资格与折扣。
// 返回命中的促销 ID 和有界折扣；不满足资格时返回 promotion 领域的
// IneligibleError，结算路径将其降级为建议性提示。
type PromotionEvaluator interface {
	Evaluate(ctx context.Context, code string, subtotal decimal.Decimal, now time.Time) (int64, decimal.Decimal, error)
}

// NotificationProducer 发布订单相关的通知事件。
// 实现必须是尽力而为的：调用方只在事务提交后调用，并忽略返回的错误
// （记日志），通知失败不构成订单失败。
type NotificationProducer interface {
	OrderCreated(ctx context.Context, order *domain.Order) error
	OrderStatusChanged(ctx context.Context, order *domain.Order, from domain.Status) error
}
