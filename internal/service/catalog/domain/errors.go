// internal/service/catalog/domain/errors.go
package domain

import (
	"errors"
	"fmt"
)

// ErrProductNotFound 表示目录中不存在该商品。
var ErrProductNotFound = errors.New("product not found")

// InsufficientStockError 表示某个商品的库存不足以满足扣减请求。
// 携带商品 ID，便于调用方提示用户是哪一行失败。
type InsufficientStockError struct {
	ProductID int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d", e.ProductID)
}

// IsInsufficientStock 判断错误链中是否包含库存不足错误。
func IsInsufficientStock(err error) bool {
	var target *InsufficientStockError
	return errors.As(err, &target)
}
