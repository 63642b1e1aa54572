// internal/service/order/domain/order.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartLine 是结算时购物车快照中的一行。
// UnitPrice 是加入购物车时的价格快照，不是目录中的当前价格：
// 用户应按他看到的价格被收费。
type CartLine struct {
	ProductID int64
	UnitPrice decimal.Decimal
	Quantity  int
}

// OrderLine 是订单中实际成交的一行，创建后不可变。
// UnitPriceAtPurchase 是实际成交单价的审计记录，与后续目录调价无关。
type OrderLine struct {
	OrderID             string
	ProductID           int64
	Quantity            int
	UnitPriceAtPurchase decimal.Decimal
}

// Order 是订单聚合的根实体。
// Subtotal / DiscountAmount / TotalAmount 在创建时冻结，之后永不重算；
// 创建之后订单的唯一可变部分是 Status 与 UpdatedAt。
type Order struct {
	ID             string
	UserID         int64
	Lines          []OrderLine
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TotalAmount    decimal.Decimal
	PromotionID    *int64
	Status         Status
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Subtotal 计算购物车快照的小计：Σ(quantity × unitPrice)。
func Subtotal(lines []CartLine) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return sum
}

// NewOrder 是订单聚合的工厂函数。
// 校验购物车非空、每一行数据合法，并在创建时冻结所有金额。
// 折扣由促销评估器预先算好并保证有界（非负且不超过小计）。
func NewOrder(userID int64, lines []CartLine, discount decimal.Decimal, promotionID *int64, now time.Time) (*Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	for _, l := range lines {
		if l.Quantity <= 0 || l.UnitPrice.IsNegative() {
			return nil, ErrInvalidLine
		}
	}

	subtotal := Subtotal(lines)
	if discount.IsNegative() {
		discount = decimal.Zero
	}
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}

	id := uuid.NewString()
	orderLines := make([]OrderLine, 0, len(lines))
	for _, l := range lines {
		orderLines = append(orderLines, OrderLine{
			OrderID:             id,
			ProductID:           l.ProductID,
			Quantity:            l.Quantity,
			UnitPriceAtPurchase: l.UnitPrice,
		})
	}

	return &Order{
		ID:             id,
		UserID:         userID,
		Lines:          orderLines,
		Subtotal:       subtotal,
		DiscountAmount: discount,
		TotalAmount:    subtotal.Sub(discount),
		PromotionID:    promotionID,
		Status:         StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}
