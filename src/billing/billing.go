// Package billing holds the payment gateway contract the storefront
// depends on. Implementations are injected into the order service by the
// caller; nothing in here touches the database.
package billing

import (
	"context"
	"errors"
)

// ErrPaymentFailed covers every charge failure uniformly: declined card,
// invalid token, provider outage. Callers must not see provider detail.
var ErrPaymentFailed = errors.New("payment failed")

type PaymentGateway interface {
	// Charge collects amount (in minor currency units) from the payment
	// method identified by token. Any error wraps ErrPaymentFailed.
	Charge(ctx context.Context, amount int64, token string) error
}
