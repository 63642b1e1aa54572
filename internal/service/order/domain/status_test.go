package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"Pending", "Processing", "Shipped", "Completed", "Cancelled"} {
		got, err := ParseStatus(s)
		assert.NoError(t, err)
		assert.Equal(t, Status(s), got)
	}

	for _, s := range []string{"", "pending", "Delivered", "PENDING"} {
		_, err := ParseStatus(s)
		assert.ErrorIs(t, err, ErrInvalidStatus, "input %q", s)
	}
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusProcessing.IsTerminal())
	assert.False(t, StatusShipped.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     error
	}{
		// 正向链按序推进
		{StatusPending, StatusProcessing, nil},
		{StatusProcessing, StatusShipped, nil},
		{StatusShipped, StatusCompleted, nil},

		// 跳级和回退都不允许
		{StatusPending, StatusShipped, ErrIllegalTransition},
		{StatusPending, StatusCompleted, ErrIllegalTransition},
		{StatusProcessing, StatusCompleted, ErrIllegalTransition},
		{StatusProcessing, StatusPending, ErrIllegalTransition},
		{StatusShipped, StatusProcessing, ErrIllegalTransition},

		// 自身到自身不是合法流转
		{StatusPending, StatusPending, ErrIllegalTransition},
		{StatusProcessing, StatusProcessing, ErrIllegalTransition},

		// 取消只能从 Pending 进入
		{StatusPending, StatusCancelled, nil},
		{StatusProcessing, StatusCancelled, ErrIllegalCancellation},
		{StatusShipped, StatusCancelled, ErrIllegalCancellation},

		// 终态拒绝一切流转，包括取消
		{StatusCompleted, StatusProcessing, ErrIllegalTransition},
		{StatusCompleted, StatusCancelled, ErrIllegalTransition},
		{StatusCancelled, StatusPending, ErrIllegalTransition},
		{StatusCancelled, StatusProcessing, ErrIllegalTransition},
		{StatusCancelled, StatusCancelled, ErrIllegalTransition},
	}

	for _, c := range cases {
		err := CanTransition(c.from, c.to)
		if c.want == nil {
			assert.NoError(t, err, "%s -> %s", c.from, c.to)
		} else {
			assert.ErrorIs(t, err, c.want, "%s -> %s", c.from, c.to)
		}
	}
}
