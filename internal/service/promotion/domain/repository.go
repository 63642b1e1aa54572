// internal/service/promotion/domain/repository.go
package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PromotionRepository 定义了促销数据的持久化接口。
type PromotionRepository interface {
	// FindByCode 根据促销码查找活动，不存在时返回 ErrPromotionNotFound。
	FindByCode(ctx context.Context, code string) (*Promotion, error)
}

// RuleEngine 对促销的扩展资格表达式求值。
// 由基础设施层实现（当前为 CEL），领域层只依赖这个接口。
type RuleEngine interface {
	Eval(expr string, subtotal decimal.Decimal, now time.Time) (bool, error)
}
