// internal/service/order/domain/errors.go
package domain

import "errors"

var (
	// ErrEmptyCart 表示结算时购物车为空。
	ErrEmptyCart = errors.New("cart is empty")

	// ErrOrderNotFound 表示订单不存在。
	ErrOrderNotFound = errors.New("order not found")

	// ErrInvalidStatus 表示外部传入了未知的状态值。
	ErrInvalidStatus = errors.New("invalid order status")

	// ErrIllegalTransition 表示状态流转跳级、回退，或订单已处于终态。
	ErrIllegalTransition = errors.New("illegal status transition")

	// ErrIllegalCancellation 表示在非 Pending 状态下尝试取消订单。
	ErrIllegalCancellation = errors.New("order can only be cancelled while pending")

	// ErrConcurrentModification 表示乐观并发检查失败：
	// 读取到的状态在写入前已被其他调用方修改，调用方应重新读取后重试。
	ErrConcurrentModification = errors.New("order was modified concurrently")

	// ErrInvalidLine 表示购物车行数据不合法（数量或价格）。
	ErrInvalidLine = errors.New("invalid cart line")
)
