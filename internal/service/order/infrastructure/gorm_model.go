// internal/service/order/infrastructure/gorm_model.go
package infrastructure

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// OrderModel 对应数据库中的 orders 表。
type OrderModel struct {
	OrderID        string          `gorm:"primaryKey;size:36"`
	UserID         int64           `gorm:"index;not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PromotionID    sql.NullInt64
	Status         string `gorm:"size:32;index;not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Lines []OrderLineModel `gorm:"foreignKey:OrderID;references:OrderID"`
}

// TableName 指定 GORM 应该使用的表名。
func (OrderModel) TableName() string {
	return "orders"
}

// OrderLineModel 对应数据库中的 order_lines 表，创建后不可变。
type OrderLineModel struct {
	ID                  int64           `gorm:"primaryKey;autoIncrement"`
	OrderID             string          `gorm:"size:36;index;not null"`
	ProductID           int64           `gorm:"not null"`
	Quantity            int             `gorm:"not null"`
	UnitPriceAtPurchase decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

// TableName 指定 GORM 应该使用的表名。
func (OrderLineModel) TableName() string {
	return "order_lines"
}
