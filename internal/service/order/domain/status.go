// internal/service/order/domain/status.go
package domain

// Status 定义了订单的生命周期状态。
// 正向链路严格按 Pending -> Processing -> Shipped -> Completed 推进，
// Cancelled 是只能从 Pending 进入的旁路分支。
type Status string

const (
	StatusPending    Status = "Pending"    // 已创建，等待处理
	StatusProcessing Status = "Processing" // 处理中
	StatusShipped    Status = "Shipped"    // 已发货
	StatusCompleted  Status = "Completed"  // 已完成（终态）
	StatusCancelled  Status = "Cancelled"  // 已取消（终态，仅能从 Pending 进入）
)

// forwardChain 是正向状态链，下标即推进顺序。
var forwardChain = []Status{StatusPending, StatusProcessing, StatusShipped, StatusCompleted}

// ParseStatus 校验并解析外部输入的状态字符串。
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusProcessing, StatusShipped, StatusCompleted, StatusCancelled:
		return Status(s), nil
	}
	return "", ErrInvalidStatus
}

// IsTerminal 报告该状态是否为终态。终态订单拒绝一切后续流转。
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransition 判定一次状态流转是否合法。
// 规则：终态拒绝所有目标；Cancelled 仅当当前状态恰好是 Pending；
// 其余目标必须恰好是正向链中当前状态的下一个，不允许跳级或回退。
func CanTransition(from, to Status) error {
	if from.IsTerminal() {
		return ErrIllegalTransition
	}
	if to == StatusCancelled {
		if from != StatusPending {
			return ErrIllegalCancellation
		}
		return nil
	}
	if forwardIndex(to) != forwardIndex(from)+1 {
		return ErrIllegalTransition
	}
	return nil
}

func forwardIndex(s Status) int {
	for i, v := range forwardChain {
		if v == s {
			return i
		}
	}
	return -2 // 不在正向链中（Cancelled 或非法值），保证 +1 匹配永远失败
}
