// internal/pkg/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 核心链路的业务指标，通过 /metrics 暴露给 Prometheus。
var (
	// OrdersCreated 按结果统计下单请求。result: success / empty_cart / insufficient_stock / error
	OrdersCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_orders_created_total",
		Help: "Number of checkout attempts by result.",
	}, []string{"result"})

	// CheckoutDuration 记录从进入下单用例到事务提交的耗时。
	CheckoutDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "storefront_checkout_duration_seconds",
		Help:    "Latency of the checkout use case.",
		Buckets: prometheus.DefBuckets,
	})

	// PromotionRejections 按原因统计被拒绝的促销码。
	PromotionRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_promotion_rejections_total",
		Help: "Number of promotion codes rejected by reason.",
	}, []string{"reason"})

	// StatusTransitions 按目标状态统计成功的订单状态流转。
	StatusTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_order_status_transitions_total",
		Help: "Number of successful order status transitions by target status.",
	}, []string{"to"})
)
