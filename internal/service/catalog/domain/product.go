// internal/service/catalog/domain/product.go
package domain

import (
	"github.com/shopspring/decimal"
)

// Product 是商品目录中的只读商品记录。
// StockQuantity 只允许通过库存台账（StockLedger）修改，
// 任何已提交事务之后都必须满足 StockQuantity >= 0。
type Product struct {
	ID            int64
	Name          string
	UnitPrice     decimal.Decimal
	StockQuantity int
}

// StockLine 是一次库存扣减请求中的一行。
type StockLine struct {
	ProductID int64
	Quantity  int
}
