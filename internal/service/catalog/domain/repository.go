// internal/service/catalog/domain/repository.go
package domain

import "context"

// ProductRepository 定义了商品目录的读取接口。
type ProductRepository interface {
	// GetProduct 根据 ID 查找商品，不存在时返回 ErrProductNotFound。
	GetProduct(ctx context.Context, id int64) (*Product, error)
}

// StockLedger 负责一致的库存记账。
// 一次调用中的所有行要么全部扣减成功，要么全部不生效；
// 任何一行库存不足都会返回 InsufficientStockError 并回滚整批。
type StockLedger interface {
	ReserveAndDecrement(ctx context.Context, lines []StockLine) error
}
