// internal/service/order/infrastructure/gorm_repository.go
package infrastructure

import (
	"context"
	"time"

	driver "github.com/go-sql-driver/mysql"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	catalogdomain "storefront/internal/service/catalog/domain"
	"storefront/internal/service/order/domain"
)

// stockLedger 是订单仓储对库存台账的窄依赖：
// 只需要在同一个事务里做整批条件扣减的能力。
type stockLedger interface {
	ReserveAndDecrementTx(tx *gorm.DB, lines []catalogdomain.StockLine) error
}

// GormOrderRepository 是 OrderRepository 的 GORM 实现。
// 订单创建与库存扣减共用一个数据库事务，这是整个系统最硬的正确性边界。
type GormOrderRepository struct {
	db     *gorm.DB
	ledger stockLedger
}

// NewGormOrderRepository 创建一个新的 GORM 仓储实例。
func NewGormOrderRepository(db *gorm.DB, ledger stockLedger) *GormOrderRepository {
	return &GormOrderRepository{db: db, ledger: ledger}
}

// Create 在单个事务内完成：所有行的条件库存扣减 -> 订单头 -> 订单行。
// 条件扣减（qty >= n）配合 InnoDB 行锁，保证并发结算抢最后一件库存时
// 恰好一个成功。库存不足的错误原样透传给应用层。
func (r *GormOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	model := ToOrderModel(order)
	stockLines := make([]catalogdomain.StockLine, 0, len(order.Lines))
	for _, line := range order.Lines {
		stockLines = append(stockLines, catalogdomain.StockLine{ProductID: line.ProductID, Quantity: line.Quantity})
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.ledger.ReserveAndDecrementTx(tx, stockLines); err != nil {
			return err
		}

		// Lines 随 OrderModel 的关联一起插入
		if err := tx.Create(model).Error; err != nil {
			var mysqlErr *driver.MySQLError
			if pkgerrors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
				return pkgerrors.Wrap(err, "duplicate order id")
			}
			return pkgerrors.Wrap(err, "failed to insert order")
		}
		return nil
	})
}

// FindByID 加载订单聚合（含订单行）。
func (r *GormOrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	var model OrderModel
	err := r.db.WithContext(ctx).Preload("Lines").First(&model, "order_id = ?", id).Error
	if err != nil {
		if pkgerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, pkgerrors.Wrap(err, "failed to load order")
	}
	return ToDomainOrder(&model), nil
}

// ListByUser 返回用户的订单历史，最新的在前。
func (r *GormOrderRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Order, error) {
	var models []OrderModel
	err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to list orders by user")
	}
	return toDomainOrders(models), nil
}

// List 是管理端的分页列表。
func (r *GormOrderRepository) List(ctx context.Context, filter domain.ListFilter) ([]*domain.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&OrderModel{})
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, pkgerrors.Wrap(err, "failed to count orders")
	}

	var models []OrderModel
	err := query.
		Order("created_at DESC").
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&models).Error
	if err != nil {
		return nil, 0, pkgerrors.Wrap(err, "failed to list orders")
	}
	return toDomainOrders(models), total, nil
}

// UpdateStatus 以当前状态为条件写入新状态。
// 影响行数为 0 且订单存在时，说明在读取和写入之间状态已被并发修改。
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, id string, from, to domain.Status, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&OrderModel{}).
		Where("order_id = ? AND status = ?", id, string(from)).
		Updates(map[string]interface{}{
			"status":     string(to),
			"updated_at": at,
		})
	if res.Error != nil {
		return pkgerrors.Wrap(res.Error, "failed to update order status")
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&OrderModel{}).Where("order_id = ?", id).Count(&count).Error; err != nil {
			return pkgerrors.Wrap(err, "failed to check order existence")
		}
		if count == 0 {
			return domain.ErrOrderNotFound
		}
		return domain.ErrConcurrentModification
	}
	return nil
}

func toDomainOrders(models []OrderModel) []*domain.Order {
	orders := make([]*domain.Order, 0, len(models))
	for i := range models {
		orders = append(orders, ToDomainOrder(&models[i]))
	}
	return orders
}
