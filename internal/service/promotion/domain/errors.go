// internal/service/promotion/domain/errors.go
package domain

import (
	"errors"
	"fmt"
)

// ErrPromotionNotFound 表示不存在匹配该 code 的促销活动。
var ErrPromotionNotFound = errors.New("promotion not found")

// Reason 枚举了促销码被拒绝的原因。
type Reason string

const (
	ReasonNotFound     Reason = "NotFound"     // 促销码不存在
	ReasonExpired      Reason = "Expired"      // 不在活动时间窗口内
	ReasonBelowMinimum Reason = "BelowMinimum" // 未达到最低消费
	ReasonRuleRejected Reason = "RuleRejected" // 被扩展资格规则拒绝
)

// IneligibleError 表示促销码存在但不满足资格条件。
// 结算路径会把它降级为建议性提示，而不是下单失败。
type IneligibleError struct {
	Reason Reason
}

func (e *IneligibleError) Error() string {
	return fmt.Sprintf("promotion ineligible: %s", e.Reason)
}

// AsIneligible 从错误链中提取 IneligibleError，不是资格错误时返回 nil。
func AsIneligible(err error) *IneligibleError {
	var target *IneligibleError
	if errors.As(err, &target) {
		return target
	}
	if errors.Is(err, ErrPromotionNotFound) {
		return &IneligibleError{Reason: ReasonNotFound}
	}
	return nil
}
