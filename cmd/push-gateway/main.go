// cmd/push-gateway/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/segmentio/kafka-go"

	"storefront/internal/pkg/bootstrap"
	"storefront/internal/pkg/logger"
	"storefront/internal/pkg/mq"
	"storefront/internal/service/notification"
	orderdomain "storefront/internal/service/order/domain"
)

const serviceName = "push-gateway"

// main 组装通知推送网关：消费通知 topic，把事件推给在线的 WebSocket 客户端。
func main() {
	logger.Init(serviceName)
	log := logger.Logger()

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	hub := notification.NewHub()
	reader := mq.NewKafkaReader(
		strings.Split(cfg.Kafka.Brokers, ","),
		cfg.Kafka.NotificationTopic,
		cfg.Kafka.ConsumerGroup,
	)

	bootstrap.StartService(bootstrap.AppInfo{
		ServiceName: serviceName,
		Port:        cfg.HTTP.Port + 1,
		Config:      cfg,
		RegisterHandlers: func(appCtx bootstrap.AppCtx) {
			appCtx.Mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
			appCtx.Mux.Handle("/metrics", promhttp.Handler())
			appCtx.Mux.HandleFunc("/ws", hub.ServeWS)
		},
		Background: func(ctx context.Context) error {
			return consume(ctx, reader, hub)
		},
		OnShutdown: func(ctx context.Context) {
			if err := reader.Close(); err != nil {
				log.Error().Err(err).Msg("error closing kafka reader")
			}
		},
	})
}

// consume 是通知事件的消费循环。推送是尽力而为的（离线用户直接丢弃），
// 但 offset 只在消息处理完之后提交，保证不会跳过事件。
func consume(ctx context.Context, reader *kafka.Reader, hub *notification.Hub) error {
	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		msgCtx := mq.ExtractTraceContext(ctx, &msg)
		log := logger.Ctx(msgCtx)

		var event orderdomain.NotificationEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error().Err(err).
				Int64("offset", msg.Offset).
				Msg("skipping malformed notification event")
		} else {
			hub.Push(strconv.FormatInt(event.UserID, 10), msg.Value)
			log.Debug().
				Str("kind", event.Kind).
				Int64("user_id", event.UserID).
				Msg("notification dispatched")
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
	}
}
