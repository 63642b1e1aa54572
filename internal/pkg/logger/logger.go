// internal/pkg/logger/logger.go
package logger

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// base 是全局的根 logger，所有派生 logger 都基于它。
var base = zerolog.New(os.Stderr).With().Timestamp().Logger()

// Init 初始化全局 logger，并附加服务名字段。
// 应该在每个服务的启动阶段调用一次。
func Init(serviceName string) {
	zerolog.TimeFieldFormat = time.RFC3339
	base = zerolog.New(os.Stderr).With().
		Timestamp().
		Str("service", serviceName).
		Logger()
}

// Logger 返回全局根 logger。
func Logger() *zerolog.Logger {
	return &base
}

// Ctx 返回一个绑定了当前追踪上下文的 logger。
// 如果 ctx 中存在有效的 Span，日志会自动带上 trace_id 和 span_id，
// 便于在 Jaeger 和日志系统之间相互跳转。
func Ctx(ctx context.Context) *zerolog.Logger {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return &base
	}
	l := base.With().
		Str("trace_id", sc.TraceID().String()).
		Str("span_id", sc.SpanID().String()).
		Logger()
	return &l
}
