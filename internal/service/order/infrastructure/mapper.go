// internal/service/order/infrastructure/mapper.go
package infrastructure

import (
	"database/sql"

	"storefront/internal/service/order/domain"
)

// ToOrderModel 将领域模型转换为数据库模型。
func ToOrderModel(o *domain.Order) *OrderModel {
	m := &OrderModel{
		OrderID:        o.ID,
		UserID:         o.UserID,
		Subtotal:       o.Subtotal,
		DiscountAmount: o.DiscountAmount,
		TotalAmount:    o.TotalAmount,
		Status:         string(o.Status),
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
	if o.PromotionID != nil {
		m.PromotionID = sql.NullInt64{Int64: *o.PromotionID, Valid: true}
	}
	for _, l := range o.Lines {
		m.Lines = append(m.Lines, OrderLineModel{
			OrderID:             l.OrderID,
			ProductID:           l.ProductID,
			Quantity:            l.Quantity,
			UnitPriceAtPurchase: l.UnitPriceAtPurchase,
		})
	}
	return m
}

// ToDomainOrder 将数据库模型转换为领域模型。
func ToDomainOrder(m *OrderModel) *domain.Order {
	o := &domain.Order{
		ID:             m.OrderID,
		UserID:         m.UserID,
		Subtotal:       m.Subtotal,
		DiscountAmount: m.DiscountAmount,
		TotalAmount:    m.TotalAmount,
		Status:         domain.Status(m.Status),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	if m.PromotionID.Valid {
		id := m.PromotionID.Int64
		o.PromotionID = &id
	}
	for _, l := range m.Lines {
		o.Lines = append(o.Lines, domain.OrderLine{
			OrderID:             l.OrderID,
			ProductID:           l.ProductID,
			Quantity:            l.Quantity,
			UnitPriceAtPurchase: l.UnitPriceAtPurchase,
		})
	}
	return o
}
