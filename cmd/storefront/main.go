// cmd/storefront/main.go
package main

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"storefront/internal/pkg/bootstrap"
	"storefront/internal/pkg/logger"
	"storefront/internal/pkg/mq"
	"storefront/internal/pkg/redis"
	cataloginfra "storefront/internal/service/catalog/infrastructure"
	cataloghttp "storefront/internal/service/catalog/interfaces"
	orderapp "storefront/internal/service/order/application"
	orderinfra "storefront/internal/service/order/infrastructure"
	"storefront/internal/service/order/infrastructure/adapter"
	orderhttp "storefront/internal/service/order/interfaces"
	promoapp "storefront/internal/service/promotion/application"
	promoinfra "storefront/internal/service/promotion/infrastructure"
	"storefront/internal/service/promotion/infrastructure/rule"
	promohttp "storefront/internal/service/promotion/interfaces"
)

const serviceName = "storefront"

// main 是应用的组装根：创建并组装所有依赖项，然后启动服务。
func main() {
	logger.Init(serviceName)
	log := logger.Logger()

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := gorm.Open(mysql.Open(cfg.MySQL.DSN), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mysql")
	}
	if err := db.AutoMigrate(
		&cataloginfra.ProductModel{},
		&promoinfra.PromotionModel{},
		&orderinfra.OrderModel{},
		&orderinfra.OrderLineModel{},
	); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate schema")
	}

	redisClient, err := redis.NewClient(cfg.Redis.Addrs)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	kafkaWriter := mq.NewKafkaWriter(strings.Split(cfg.Kafka.Brokers, ","), cfg.Kafka.NotificationTopic)

	tracer := otel.Tracer(serviceName)

	// catalog
	productRepo := cataloginfra.NewGormProductRepository(db)

	// promotion
	ruleEngine, err := rule.NewCELRuleEngine()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create rule engine")
	}
	promoRepo := promoinfra.NewGormPromotionRepository(db)
	promoService := promoapp.NewPromotionService(promoRepo, ruleEngine, tracer)

	// order
	orderRepo := orderinfra.NewGormOrderRepository(db, productRepo)
	cartStore := adapter.NewCartRedisAdapter(redisClient)
	notifier := adapter.NewNotificationKafkaAdapter(kafkaWriter)
	orderService := orderapp.NewOrderService(orderRepo, promoService, cartStore, notifier, tracer)

	bootstrap.StartService(bootstrap.AppInfo{
		ServiceName: serviceName,
		Config:      cfg,
		RegisterHandlers: func(appCtx bootstrap.AppCtx) {
			orderhttp.NewOrderHandler(orderService, cartStore).RegisterRoutes(appCtx.Mux)
			promohttp.NewPromotionHandler(promoService).RegisterRoutes(appCtx.Mux)
			cataloghttp.NewCatalogHandler(productRepo).RegisterRoutes(appCtx.Mux)
		},
		OnShutdown: func(ctx context.Context) {
			if err := notifier.Close(); err != nil {
				log.Error().Err(err).Msg("error closing kafka writer")
			}
			if err := redisClient.Close(); err != nil {
				log.Error().Err(err).Msg("error closing redis client")
			}
		},
	})
}
