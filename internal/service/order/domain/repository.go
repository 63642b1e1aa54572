// internal/service/order/domain/repository.go
package domain

import (
	"context"
	"time"
)

// ListFilter 是管理端订单列表的查询条件。
type ListFilter struct {
	Status   *Status
	Page     int
	PageSize int
}

// OrderRepository 定义了订单聚合的持久化接口。
// 它位于领域层，由基础设施层实现。
type OrderRepository interface {
	// Create 将订单头、订单行和对应的库存扣减作为一个原子单元持久化：
	// 要么全部落库，要么全部不生效。任何一行库存不足时返回
	// InsufficientStockError 且不留下任何部分状态。
	Create(ctx context.Context, order *Order) error

	// FindByID 根据 ID 查找订单聚合（含订单行）。
	FindByID(ctx context.Context, id string) (*Order, error)

	// ListByUser 返回某个用户的全部订单，按创建时间倒序。
	ListByUser(ctx context.Context, userID int64) ([]*Order, error)

	// List 是管理端的分页列表，返回当页数据和总条数。
	List(ctx context.Context, filter ListFilter) ([]*Order, int64, error)

	// UpdateStatus 以乐观并发的方式推进订单状态：
	// 写入以 from 为条件，当前状态已不是 from 时返回 ErrConcurrentModification。
	UpdateStatus(ctx context.Context, id string, from, to Status, at time.Time) error
}
