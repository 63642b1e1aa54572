package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

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

var (
	windowStart = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	windowEnd   = time.Date(2026, 1, 31, 23, 59, 59, 0, time.UTC)
)

func basePromotion() *Promotion {
	return &Promotion{
		ID:        1,
		Code:      "NEWYEAR",
		StartDate: windowStart,
		EndDate:   windowEnd,
	}
}

func TestCheckEligibility_WindowIsInclusive(t *testing.T) {
	p := basePromotion()

	assert.Nil(t, p.CheckEligibility(dec("100"), windowStart))
	assert.Nil(t, p.CheckEligibility(dec("100"), windowEnd))

	ie := p.CheckEligibility(dec("100"), windowStart.Add(-time.Second))
	require.NotNil(t, ie)
	assert.Equal(t, ReasonExpired, ie.Reason)

	ie = p.CheckEligibility(dec("100"), windowEnd.Add(time.Second))
	require.NotNil(t, ie)
	assert.Equal(t, ReasonExpired, ie.Reason)
}

func TestCheckEligibility_BelowMinimum(t *testing.T) {
	p := basePromotion()
	p.MinOrderValue = decPtr("50.00")
	now := windowStart.Add(24 * time.Hour)

	ie := p.CheckEligibility(dec("49.99"), now)
	require.NotNil(t, ie)
	assert.Equal(t, ReasonBelowMinimum, ie.Reason)

	assert.Nil(t, p.CheckEligibility(dec("50.00"), now))
}

func TestCheckEligibility_ExpiredBeforeMinimum(t *testing.T) {
	// 两个条件同时不满足时，时间窗口先判
	p := basePromotion()
	p.MinOrderValue = decPtr("50.00")

	ie := p.CheckEligibility(dec("10"), windowEnd.Add(time.Hour))
	require.NotNil(t, ie)
	assert.Equal(t, ReasonExpired, ie.Reason)
}

func TestComputeDiscount_FixedAmount(t *testing.T) {
	p := basePromotion()
	p.DiscountAmount = decPtr("15.00")

	assert.True(t, dec("15.00").Equal(p.ComputeDiscount(dec("100.00"))))
}

func TestComputeDiscount_FixedAmountTakesPrecedenceOverPercent(t *testing.T) {
	p := basePromotion()
	p.DiscountAmount = decPtr("5.00")
	p.DiscountPercent = decPtr("50")

	assert.True(t, dec("5.00").Equal(p.ComputeDiscount(dec("100.00"))))
}

func TestComputeDiscount_Percent(t *testing.T) {
	p := basePromotion()
	p.DiscountPercent = decPtr("10")

	assert.True(t, dec("8.00").Equal(p.ComputeDiscount(dec("80.00"))))
}

func TestComputeDiscount_PercentRoundsHalfUp(t *testing.T) {
	p := basePromotion()
	p.DiscountPercent = decPtr("10")

	// 10% of 10.05 = 1.005，按货币最小单位进位到 1.01
	assert.True(t, dec("1.01").Equal(p.ComputeDiscount(dec("10.05"))))
}

func TestComputeDiscount_MaxDiscountCaps(t *testing.T) {
	p := basePromotion()
	p.DiscountPercent = decPtr("50")
	p.MaxDiscount = decPtr("10.00")

	assert.True(t, dec("10.00").Equal(p.ComputeDiscount(dec("100.00"))))
}

func TestComputeDiscount_NeverExceedsSubtotal(t *testing.T) {
	p := basePromotion()
	p.DiscountAmount = decPtr("20.00")

	assert.True(t, dec("12.50").Equal(p.ComputeDiscount(dec("12.50"))))
}

func TestComputeDiscount_NoRuleMeansZero(t *testing.T) {
	p := basePromotion()

	assert.True(t, p.ComputeDiscount(dec("100.00")).IsZero())
}

func TestEvaluate_CombinesEligibilityAndDiscount(t *testing.T) {
	p := basePromotion()
	p.DiscountAmount = decPtr("7.50")
	now := windowStart.Add(time.Hour)

	discount, err := Evaluate(p, dec("30.00"), now)
	require.NoError(t, err)
	assert.True(t, dec("7.50").Equal(discount))

	_, err = Evaluate(p, dec("30.00"), windowEnd.Add(time.Hour))
	ie := AsIneligible(err)
	require.NotNil(t, ie)
	assert.Equal(t, ReasonExpired, ie.Reason)
}

func TestAsIneligible(t *testing.T) {
	assert.Nil(t, AsIneligible(nil))
	assert.Nil(t, AsIneligible(assert.AnError))

	ie := AsIneligible(ErrPromotionNotFound)
	require.NotNil(t, ie)
	assert.Equal(t, ReasonNotFound, ie.Reason)

	ie = AsIneligible(&IneligibleError{Reason: ReasonBelowMinimum})
	require.NotNil(t, ie)
	assert.Equal(t, ReasonBelowMinimum, ie.Reason)
}
