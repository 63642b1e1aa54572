// internal/service/order/domain/event.go
package domain

import "time"

// 通知事件类型。消费方（push-gateway 等）按 Kind 分发。
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

// NotificationEvent 是发往通知通道的事件载体。
// 通知是尽力而为的：事件只在订单事务提交之后发出，
// 发送失败只记日志，绝不影响订单本身的正确性。
type NotificationEvent struct {
	EventID     string    `json:"eventId"`
	Kind        string    `json:"kind"`
	UserID      int64     `json:"userId"`
	OrderID     string    `json:"orderId"`
	Message     string    `json:"message"`
	TotalAmount string    `json:"totalAmount,omitempty"`
	FromStatus  string    `json:"fromStatus,omitempty"`
	ToStatus    string    `json:"toStatus,omitempty"`
	OccurredAt  time.Time `json:"occurredAt"`
}
