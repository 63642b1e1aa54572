// internal/pkg/bootstrap/app.go
package bootstrap

import (
	"context"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"storefront/internal/pkg/config"
	"storefront/internal/pkg/logger"
	"storefront/internal/pkg/nacos"
	"storefront/internal/pkg/tracing"
)

// AppCtx 是传递给各服务注册回调的上下文。
type AppCtx struct {
	Mux    *http.ServeMux
	Config *config.Config
}

// AppInfo 包含了启动一个服务所需的所有特定信息。
type AppInfo struct {
	ServiceName string
	Port        int
	Config      *config.Config
	// RegisterHandlers 允许每个服务注册自己的 HTTP 路由。
	RegisterHandlers func(appCtx AppCtx)
	// Background 是随服务生命周期运行的后台任务（如 Kafka 消费循环），
	// ctx 被取消时必须返回。
	Background func(ctx context.Context) error
	// OnShutdown 在 HTTP 服务器停止后执行资源清理。
	OnShutdown func(ctx context.Context)
}

// StartService 封装了所有服务的通用启动和优雅关停逻辑。
// 调用方通过 LoadConfig 构建依赖后，把配置和路由注册函数交给这里。
func StartService(info AppInfo) {
	logger.Init(info.ServiceName)
	log := logger.Logger()

	cfg := info.Config
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
	}
	if info.Port == 0 {
		info.Port = cfg.HTTP.Port
	}

	tp, err := tracing.InitTracerProvider(info.ServiceName, cfg.Jaeger.Endpoint)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize tracer provider")
	}

	// Nacos 注册是可选的：没有配置注册中心地址时按单机模式运行
	var registry *nacos.Client
	var ip string
	if cfg.Nacos.ServerAddrs != "" {
		registry, err = nacos.NewClient(cfg.Nacos.ServerAddrs, cfg.Nacos.Namespace, cfg.Nacos.Group)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize nacos client")
		}
		ip, err = outboundIP()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to get outbound IP address")
		}
		if err := registry.Register(info.ServiceName, ip, info.Port); err != nil {
			log.Fatal().Err(err).Msg("failed to register service with nacos")
		}
	}

	mux := http.NewServeMux()
	if info.RegisterHandlers != nil {
		info.RegisterHandlers(AppCtx{Mux: mux, Config: cfg})
	}
	server := &http.Server{Addr: ":" + strconv.Itoa(info.Port), Handler: mux}

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(rootCtx)
	g.Go(func() error {
		log.Info().Int("port", info.Port).Msgf("%s listening", info.ServiceName)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	if info.Background != nil {
		g.Go(func() error { return info.Background(gctx) })
	}
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msgf("shutting down %s", info.ServiceName)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if registry != nil {
			if err := registry.Deregister(info.ServiceName, ip, info.Port); err != nil {
				log.Error().Err(err).Msg("error deregistering from nacos")
			}
		}
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("error shutting down http server")
		}
		if info.OnShutdown != nil {
			info.OnShutdown(shutdownCtx)
		}
		// 最后关闭 TracerProvider，确保缓冲中的 Span 全部发出
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("error shutting down tracer provider")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msgf("%s exited with error", info.ServiceName)
	}
	log.Info().Msgf("%s gracefully shut down", info.ServiceName)
}

// LoadConfig 读取 CONFIG_PATH 指定的配置文件，默认 config.yaml。
func LoadConfig() (*config.Config, error) {
	return config.Load(config.GetEnv("CONFIG_PATH", "config.yaml"))
}

// outboundIP 返回本机对外通信使用的 IP，用于注册中心上报。
func outboundIP() (string, error) {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return "", err
	}
	defer conn.Close()
	return conn.LocalAddr().(*net.UDPAddr).IP.String(), nil
}
