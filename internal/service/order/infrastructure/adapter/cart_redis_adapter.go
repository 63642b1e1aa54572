// internal/service/order/infrastructure/adapter/cart_redis_adapter.go
package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"storefront/internal/pkg/redis"
	"storefront/internal/service/order/domain"
)

// CartRedisAdapter 是 port.CartStore 的 Redis 实现。
// 每个用户一个 hash：key 为 cart:{userID}，field 为 productID，
// value 为 JSON 编码的行（价格快照 + 数量）。
// 价格在加入购物车时冻结，结算按这里的快照价计费。
type CartRedisAdapter struct {
	client *redis.Client
}

// NewCartRedisAdapter 创建一个新的购物车存储适配器。
func NewCartRedisAdapter(client *redis.Client) *CartRedisAdapter {
	return &CartRedisAdapter{client: client}
}

type cartLineRecord struct {
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
}

// GetLines 加载用户的购物车快照。
func (a *CartRedisAdapter) GetLines(ctx context.Context, userID int64) ([]domain.CartLine, error) {
	values, err := a.client.GetClient().HGetAll(ctx, cartKey(userID)).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load cart")
	}

	lines := make([]domain.CartLine, 0, len(values))
	for field, raw := range values {
		productID, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "corrupt cart field %q", field)
		}
		var rec cartLineRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, errors.Wrapf(err, "corrupt cart line for product %d", productID)
		}
		lines = append(lines, domain.CartLine{
			ProductID: productID,
			UnitPrice: rec.UnitPrice,
			Quantity:  rec.Quantity,
		})
	}
	return lines, nil
}

// AddLine 写入或覆盖购物车中的一行，单价在此刻冻结。
func (a *CartRedisAdapter) AddLine(ctx context.Context, userID int64, line domain.CartLine) error {
	raw, err := json.Marshal(cartLineRecord{UnitPrice: line.UnitPrice, Quantity: line.Quantity})
	if err != nil {
		return errors.Wrap(err, "failed to encode cart line")
	}
	field := strconv.FormatInt(line.ProductID, 10)
	if err := a.client.GetClient().HSet(ctx, cartKey(userID), field, raw).Err(); err != nil {
		return errors.Wrap(err, "failed to store cart line")
	}
	return nil
}

// Clear 清空用户购物车，结算成功后调用。
func (a *CartRedisAdapter) Clear(ctx context.Context, userID int64) error {
	if err := a.client.GetClient().Del(ctx, cartKey(userID)).Err(); err != nil {
		return errors.Wrap(err, "failed to clear cart")
	}
	return nil
}

func cartKey(userID int64) string {
	return fmt.Sprintf("cart:%d", userID)
}
