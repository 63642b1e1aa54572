// internal/service/catalog/infrastructure/gorm_repository.go
package infrastructure

import (
	"context"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"storefront/internal/service/catalog/domain"
)

// GormProductRepository 是 ProductRepository 和 StockLedger 的 GORM 实现。
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository 创建一个新的 GORM 仓储实例。
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// GetProduct 根据 ID 查找商品。
func (r *GormProductRepository) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	var model ProductModel
	err := r.db.WithContext(ctx).First(&model, "product_id = ?", id).Error
	if err != nil {
		if pkgerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, pkgerrors.Wrap(err, "failed to load product")
	}
	return ToDomainProduct(&model), nil
}

// ReserveAndDecrement 在单个数据库事务中扣减一批商品的库存。
// 任何一行失败都会回滚整批，保证不会出现部分扣减。
func (r *GormProductRepository) ReserveAndDecrement(ctx context.Context, lines []domain.StockLine) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.ReserveAndDecrementTx(tx, lines)
	})
}

// ReserveAndDecrementTx 在调用方提供的事务中逐行扣减。
// 任何一行失败时返回错误，由调用方的事务回滚已扣减的行；
// 订单仓储用它把库存扣减并入订单落库的同一个事务。
func (r *GormProductRepository) ReserveAndDecrementTx(tx *gorm.DB, lines []domain.StockLine) error {
	for _, line := range lines {
		if err := r.DecrementTx(tx, line.ProductID, line.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// DecrementTx 在调用方提供的事务中扣减单个商品的库存。
// 扣减以当前库存为条件（qty >= n），两个并发结算对同一件商品
// 竞争最后一件时，数据库的行锁保证恰好一个成功、另一个拿到库存不足。
func (r *GormProductRepository) DecrementTx(tx *gorm.DB, productID int64, quantity int) error {
	if quantity <= 0 {
		return pkgerrors.Errorf("invalid decrement quantity %d for product %d", quantity, productID)
	}

	res := tx.Model(&ProductModel{}).
		Where("product_id = ? AND stock_quantity >= ?", productID, quantity).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", quantity))
	if res.Error != nil {
		return pkgerrors.Wrap(res.Error, "failed to decrement stock")
	}
	if res.RowsAffected == 0 {
		// 区分商品不存在和库存不足
		var count int64
		if err := tx.Model(&ProductModel{}).Where("product_id = ?", productID).Count(&count).Error; err != nil {
			return pkgerrors.Wrap(err, "failed to check product existence")
		}
		if count == 0 {
			return domain.ErrProductNotFound
		}
		return &domain.InsufficientStockError{ProductID: productID}
	}
	return nil
}
