// internal/service/order/infrastructure/adapter/notification_kafka_adapter.go
package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"storefront/internal/pkg/mq"
	"storefront/internal/service/order/domain"
)

// NotificationKafkaAdapter 是 port.NotificationProducer 的 Kafka 实现。
// 消息以 userID 为 key，保证同一用户的通知在分区内有序。
type NotificationKafkaAdapter struct {
	writer *kafka.Writer
}

// NewNotificationKafkaAdapter 创建一个新的通知生产者适配器。
func NewNotificationKafkaAdapter(writer *kafka.Writer) *NotificationKafkaAdapter {
	return &NotificationKafkaAdapter{writer: writer}
}

// OrderCreated 发布订单创建成功的通知事件。
func (a *NotificationKafkaAdapter) OrderCreated(ctx context.Context, order *domain.Order) error {
	event := domain.NotificationEvent{
		EventID:     uuid.NewString(),
		Kind:        domain.EventOrderCreated,
		UserID:      order.UserID,
		OrderID:     order.ID,
		Message:     fmt.Sprintf("Your order %s has been placed. Total: %s", order.ID, order.TotalAmount.StringFixed(2)),
		TotalAmount: order.TotalAmount.StringFixed(2),
		OccurredAt:  time.Now(),
	}
	return a.produce(ctx, &event)
}

// OrderStatusChanged 发布订单状态变更的通知事件。
func (a *NotificationKafkaAdapter) OrderStatusChanged(ctx context.Context, order *domain.Order, from domain.Status) error {
	event := domain.NotificationEvent{
		EventID:    uuid.NewString(),
		Kind:       domain.EventOrderStatusChanged,
		UserID:     order.UserID,
		OrderID:    order.ID,
		Message:    fmt.Sprintf("Your order %s is now %s", order.ID, order.Status),
		FromStatus: string(from),
		ToStatus:   string(order.Status),
		OccurredAt: time.Now(),
	}
	return a.produce(ctx, &event)
}

func (a *NotificationKafkaAdapter) produce(ctx context.Context, event *domain.NotificationEvent) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal notification event: %w", err)
	}
	key := []byte(fmt.Sprintf("%d", event.UserID))
	// mq.ProduceMessage 会自动把追踪上下文注入消息头
	return mq.ProduceMessage(ctx, a.writer, key, eventBytes)
}

// Close 关闭底层的 Kafka writer。
func (a *NotificationKafkaAdapter) Close() error {
	return a.writer.Close()
}
