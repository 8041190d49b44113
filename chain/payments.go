package chain

import (
	"context"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const hexAlphabet = "0123456789abcdef"

// Payments submits a payment for a vote transaction and returns the
// transaction reference. A real on-chain implementation sits behind the
// same contract as the mock.
type Payments interface {
	SubmitPayment(ctx context.Context, from string, amount float64) (string, error)
}

// MockPayments simulates chain latency and fabricates a transaction hash.
type MockPayments struct {
	Delay time.Duration
}

func (p *MockPayments) SubmitPayment(ctx context.Context, _ string, _ float64) (string, error) {
	if p.Delay > 0 {
		select {
		case <-time.After(p.Delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	suffix, err := gonanoid.Generate(hexAlphabet, 64)
	if err != nil {
		return "", err
	}
	return "0x" + suffix, nil
}
