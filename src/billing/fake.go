package billing

import (
	"context"
	"fmt"
	"sync"
)

// FakePaymentGateway is a deterministic in-memory gateway for tests. It
// accepts exactly the token returned by ValidTestToken and records every
// successful charge.
type FakePaymentGateway struct {
	mu      sync.Mutex
	charges []int64
}

func NewFakePaymentGateway() *FakePaymentGateway {
	return &FakePaymentGateway{}
}

func (g *FakePaymentGateway) ValidTestToken() string {
	return "valid-token"
}

func (g *FakePaymentGateway) Charge(ctx context.Context, amount int64, token string) error {
	if token != g.ValidTestToken() {
		return fmt.Errorf("%w: invalid payment token", ErrPaymentFailed)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.charges = append(g.charges, amount)
	return nil
}

func (g *FakePaymentGateway) TotalCharges() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	var total int64
	for _, amount := range g.charges {
		total += amount
	}
	return total
}

func (g *FakePaymentGateway) ChargeCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.charges)
}
