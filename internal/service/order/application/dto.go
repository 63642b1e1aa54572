// internal/service/order/application/dto.go
package application

import "storefront/internal/service/order/domain"

// CheckoutRequest 是结算用例的输入数据。
// Lines 为空时从购物车存储加载用户的会话购物车。
type CheckoutRequest struct {
	UserID        int64
	Lines         []domain.CartLine
	PromotionCode string
}

// CheckoutResult 是结算用例的输出数据。
// PromotionAdvisory 是建议性字段：促销码被拒绝时订单仍然创建成功，
// 这里只告诉调用方折扣为什么没有生效。
type CheckoutResult struct {
	Order             *domain.Order
	PromotionApplied  bool
	PromotionAdvisory string
}
