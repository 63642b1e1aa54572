// internal/service/promotion/infrastructure/gorm_model.go
package infrastructure

import (
	"time"

	"github.com/shopspring/decimal"
)

// PromotionModel 对应数据库中的 promotions 表。
// 可选的金额字段使用 NullDecimal 映射可空的 decimal(10,2) 列。
type PromotionModel struct {
	PromotionID     int64               `gorm:"primaryKey;autoIncrement"`
	Code            string              `gorm:"size:64;uniqueIndex;not null"`
	DiscountAmount  decimal.NullDecimal `gorm:"type:decimal(10,2)"`
	DiscountPercent decimal.NullDecimal `gorm:"type:decimal(10,2)"`
	StartDate       time.Time           `gorm:"not null"`
	EndDate         time.Time           `gorm:"not null"`
	MinOrderValue   decimal.NullDecimal `gorm:"type:decimal(10,2)"`
	MaxDiscount     decimal.NullDecimal `gorm:"type:decimal(10,2)"`
	EligibilityExpr string              `gorm:"type:text"`
	CreatedAt       time.Time
}

// TableName 指定 GORM 应该使用的表名。
func (PromotionModel) TableName() string {
	return "promotions"
}
