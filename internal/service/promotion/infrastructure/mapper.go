// internal/service/promotion/infrastructure/mapper.go
package infrastructure

import (
	"github.com/shopspring/decimal"

	"storefront/internal/service/promotion/domain"
)

// ToDomainPromotion 将数据库模型转换为领域模型。
func ToDomainPromotion(m *PromotionModel) *domain.Promotion {
	return &domain.Promotion{
		ID:              m.PromotionID,
		Code:            m.Code,
		DiscountAmount:  nullableDecimal(m.DiscountAmount),
		DiscountPercent: nullableDecimal(m.DiscountPercent),
		StartDate:       m.StartDate,
		EndDate:         m.EndDate,
		MinOrderValue:   nullableDecimal(m.MinOrderValue),
		MaxDiscount:     nullableDecimal(m.MaxDiscount),
		EligibilityExpr: m.EligibilityExpr,
	}
}

func nullableDecimal(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}
