// internal/service/catalog/infrastructure/gorm_model.go
package infrastructure

import (
	"time"

	"github.com/shopspring/decimal"

	"storefront/internal/service/catalog/domain"
)

// ProductModel 对应数据库中的 products 表。
type ProductModel struct {
	ProductID     int64           `gorm:"primaryKey;autoIncrement"`
	Name          string          `gorm:"size:255;not null"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	StockQuantity int             `gorm:"not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName 指定 GORM 应该使用的表名。
func (ProductModel) TableName() string {
	return "products"
}

// ToDomainProduct 将数据库模型转换为领域模型。
func ToDomainProduct(m *ProductModel) *domain.Product {
	return &domain.Product{
		ID:            m.ProductID,
		Name:          m.Name,
		UnitPrice:     m.UnitPrice,
		StockQuantity: m.StockQuantity,
	}
}
