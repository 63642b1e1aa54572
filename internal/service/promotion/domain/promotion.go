// internal/service/promotion/domain/promotion.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Promotion 是一个促销活动的领域模型。
// 创建后不可变：审计要求订单引用的促销规则与下单时看到的完全一致，
// 管理端的修改是独立的管理操作，不影响结算路径。
type Promotion struct {
	ID   int64
	Code string

	// DiscountAmount 和 DiscountPercent 至多有一个作为主规则生效，
	// 固定金额优先于百分比。
	DiscountAmount  *decimal.Decimal
	DiscountPercent *decimal.Decimal

	StartDate     time.Time
	EndDate       time.Time
	MinOrderValue *decimal.Decimal
	MaxDiscount   *decimal.Decimal

	// EligibilityExpr 是可选的 CEL 资格表达式，对 subtotal 和 now 求值。
	// 为空时不参与资格判定。
	EligibilityExpr string
}

// CheckEligibility 按固定顺序检查资格条件，短路返回第一个不满足的原因。
// 时间窗口 [StartDate, EndDate] 两端都是闭区间。
func (p *Promotion) CheckEligibility(subtotal decimal.Decimal, now time.Time) *IneligibleError {
	if now.Before(p.StartDate) || now.After(p.EndDate) {
		return &IneligibleError{Reason: ReasonExpired}
	}
	if p.MinOrderValue != nil && subtotal.LessThan(*p.MinOrderValue) {
		return &IneligibleError{Reason: ReasonBelowMinimum}
	}
	return nil
}

// ComputeDiscount 计算有界的折扣金额。
// 金额运算全部使用十进制定点数；最终折扣按货币最小单位四舍五入。
// 结果永远不为负，也永远不超过 subtotal，保证订单总额不会被折成负数。
func (p *Promotion) ComputeDiscount(subtotal decimal.Decimal) decimal.Decimal {
	var discount decimal.Decimal
	switch {
	case p.DiscountAmount != nil:
		discount = *p.DiscountAmount
	case p.DiscountPercent != nil:
		discount = subtotal.Mul(*p.DiscountPercent).Div(decimal.NewFromInt(100))
	}

	if p.MaxDiscount != nil && discount.GreaterThan(*p.MaxDiscount) {
		discount = *p.MaxDiscount
	}
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}
	if discount.IsNegative() {
		discount = decimal.Zero
	}
	// shopspring 的 Round 对正数等价于 round-half-up
	return discount.Round(2)
}

// Evaluate 是资格检查加折扣计算的组合入口，供不需要扩展规则的调用方使用。
func Evaluate(p *Promotion, subtotal decimal.Decimal, now time.Time) (decimal.Decimal, error) {
	if err := p.CheckEligibility(subtotal, now); err != nil {
		return decimal.Zero, err
	}
	return p.ComputeDiscount(subtotal), nil
}
