// internal/service/promotion/application/service.go
package application

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"storefront/internal/pkg/logger"
	"storefront/internal/pkg/metrics"
	"storefront/internal/service/promotion/domain"
)

// PromotionService 定义了促销服务提供的所有业务用例。
type PromotionService struct {
	promoRepo domain.PromotionRepository
	rules     domain.RuleEngine
	tracer    trace.Tracer
	now       func() time.Time
}

// NewPromotionService 创建一个新的促销服务实例。
func NewPromotionService(repo domain.PromotionRepository, rules domain.RuleEngine, tracer trace.Tracer) *PromotionService {
	return &PromotionService{
		promoRepo: repo,
		rules:     rules,
		tracer:    tracer,
		now:       time.Now,
	}
}

// Evaluate 是促销评估的核心入口：校验资格并计算有界折扣。
// 资格检查按顺序短路：NotFound -> Expired -> BelowMinimum -> 扩展规则。
// 返回命中的促销 ID 与折扣金额；不满足资格时返回 IneligibleError。
func (s *PromotionService) Evaluate(ctx context.Context, code string, subtotal decimal.Decimal, now time.Time) (int64, decimal.Decimal, error) {
	ctx, span := s.tracer.Start(ctx, "promotion.Evaluate")
	defer span.End()
	span.SetAttributes(
		attribute.String("promotion.code", code),
		attribute.String("order.subtotal", subtotal.String()),
	)

	promo, err := s.promoRepo.FindByCode(ctx, code)
	if err != nil {
		span.RecordError(err)
		if ie := domain.AsIneligible(err); ie != nil {
			metrics.PromotionRejections.WithLabelValues(string(ie.Reason)).Inc()
			return 0, decimal.Zero, ie
		}
		return 0, decimal.Zero, err
	}

	if ie := promo.CheckEligibility(subtotal, now); ie != nil {
		metrics.PromotionRejections.WithLabelValues(string(ie.Reason)).Inc()
		return 0, decimal.Zero, ie
	}

	if promo.EligibilityExpr != "" {
		ok, err := s.rules.Eval(promo.EligibilityExpr, subtotal, now)
		if err != nil {
			// 表达式本身有问题按规则拒绝处理，不让坏规则阻断结算
			logger.Ctx(ctx).Error().Err(err).Str("code", code).Msg("eligibility rule evaluation failed")
			ok = false
		}
		if !ok {
			metrics.PromotionRejections.WithLabelValues(string(domain.ReasonRuleRejected)).Inc()
			return 0, decimal.Zero, &domain.IneligibleError{Reason: domain.ReasonRuleRejected}
		}
	}

	discount := promo.ComputeDiscount(subtotal)
	span.SetAttributes(attribute.String("promotion.discount", discount.String()))
	return promo.ID, discount, nil
}

// Preview 是只读的促销预览，供结算页在提交前向用户展示折扣。
// 不产生任何副作用，不冻结促销。
func (s *PromotionService) Preview(ctx context.Context, code string, subtotal decimal.Decimal) (*PreviewResponse, error) {
	ctx, span := s.tracer.Start(ctx, "promotion.Preview")
	defer span.End()

	promoID, discount, err := s.Evaluate(ctx, code, subtotal, s.now())
	if err != nil {
		if ie := domain.AsIneligible(err); ie != nil {
			return &PreviewResponse{Eligible: false, Reason: string(ie.Reason)}, nil
		}
		return nil, err
	}

	return &PreviewResponse{
		Eligible:    true,
		PromotionID: promoID,
		Discount:    discount.StringFixed(2),
		Total:       subtotal.Sub(discount).StringFixed(2),
	}, nil
}
