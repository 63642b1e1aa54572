package application

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"storefront/internal/service/promotion/domain"
)

type fakePromoRepo struct {
	promos map[string]*domain.Promotion
}

func (f *fakePromoRepo) FindByCode(_ context.Context, code string) (*domain.Promotion, error) {
	p, ok := f.promos[code]
	if !ok {
		return nil, domain.ErrPromotionNotFound
	}
	return p, nil
}

type fakeRuleEngine struct {
	result bool
	err    error
	calls  int
}

func (f *fakeRuleEngine) Eval(string, decimal.Decimal, time.Time) (bool, error) {
	f.calls++
	return f.result, f.err
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

var testNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestService(promos map[string]*domain.Promotion, rules *fakeRuleEngine) *PromotionService {
	svc := NewPromotionService(
		&fakePromoRepo{promos: promos},
		rules,
		noop.NewTracerProvider().Tracer("test"),
	)
	svc.now = func() time.Time { return testNow }
	return svc
}

func activePromotion() *domain.Promotion {
	return &domain.Promotion{
		ID:             42,
		Code:           "SUMMER",
		DiscountAmount: decPtr("10.00"),
		StartDate:      testNow.Add(-24 * time.Hour),
		EndDate:        testNow.Add(24 * time.Hour),
	}
}

func TestEvaluate_UnknownCode(t *testing.T) {
	svc := newTestService(nil, &fakeRuleEngine{result: true})

	_, _, err := svc.Evaluate(context.Background(), "NOPE", dec("100"), testNow)
	ie := domain.AsIneligible(err)
	require.NotNil(t, ie)
	assert.Equal(t, domain.ReasonNotFound, ie.Reason)
}

func TestEvaluate_Success(t *testing.T) {
	rules := &fakeRuleEngine{result: true}
	svc := newTestService(map[string]*domain.Promotion{"SUMMER": activePromotion()}, rules)

	id, discount, err := svc.Evaluate(context.Background(), "SUMMER", dec("100.00"), testNow)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.True(t, dec("10.00").Equal(discount))
	// 没有扩展规则表达式时不应调用规则引擎
	assert.Zero(t, rules.calls)
}

func TestEvaluate_RuleRejected(t *testing.T) {
	promo := activePromotion()
	promo.EligibilityExpr = `subtotal >= 200.0`
	rules := &fakeRuleEngine{result: false}
	svc := newTestService(map[string]*domain.Promotion{"SUMMER": promo}, rules)

	_, _, err := svc.Evaluate(context.Background(), "SUMMER", dec("100.00"), testNow)
	ie := domain.AsIneligible(err)
	require.NotNil(t, ie)
	assert.Equal(t, domain.ReasonRuleRejected, ie.Reason)
	assert.Equal(t, 1, rules.calls)
}

func TestEvaluate_BrokenRuleRejectsInsteadOfFailing(t *testing.T) {
	promo := activePromotion()
	promo.EligibilityExpr = `this is not CEL`
	rules := &fakeRuleEngine{err: assert.AnError}
	svc := newTestService(map[string]*domain.Promotion{"SUMMER": promo}, rules)

	_, _, err := svc.Evaluate(context.Background(), "SUMMER", dec("100.00"), testNow)
	ie := domain.AsIneligible(err)
	require.NotNil(t, ie)
	assert.Equal(t, domain.ReasonRuleRejected, ie.Reason)
}

func TestEvaluate_ExpiredBeforeRuleEngine(t *testing.T) {
	promo := activePromotion()
	promo.EligibilityExpr = `true`
	promo.EndDate = testNow.Add(-time.Hour)
	rules := &fakeRuleEngine{result: true}
	svc := newTestService(map[string]*domain.Promotion{"SUMMER": promo}, rules)

	_, _, err := svc.Evaluate(context.Background(), "SUMMER", dec("100.00"), testNow)
	ie := domain.AsIneligible(err)
	require.NotNil(t, ie)
	assert.Equal(t, domain.ReasonExpired, ie.Reason)
	assert.Zero(t, rules.calls)
}

func TestPreview_Eligible(t *testing.T) {
	svc := newTestService(map[string]*domain.Promotion{"SUMMER": activePromotion()}, &fakeRuleEngine{result: true})

	resp, err := svc.Preview(context.Background(), "SUMMER", dec("100.00"))
	require.NoError(t, err)
	assert.True(t, resp.Eligible)
	assert.Equal(t, int64(42), resp.PromotionID)
	assert.Equal(t, "10.00", resp.Discount)
	assert.Equal(t, "90.00", resp.Total)
}

func TestPreview_IneligibleIsNotAnError(t *testing.T) {
	svc := newTestService(nil, &fakeRuleEngine{result: true})

	resp, err := svc.Preview(context.Background(), "NOPE", dec("100.00"))
	require.NoError(t, err)
	assert.False(t, resp.Eligible)
	assert.Equal(t, string(domain.ReasonNotFound), resp.Reason)
}
