package catalog

import (
	"context"
	"time"
)

// DefaultLatency is the simulated round trip applied when none is configured.
const DefaultLatency = 300 * time.Millisecond

// Delayer simulates the network latency of a remote catalog.
type Delayer interface {
	// Delay blocks until the latency has elapsed or ctx is done,
	// in which case it returns ctx.Err().
	Delay(ctx context.Context) error
}

// FixedDelay waits for the same duration on every call.
type FixedDelay time.Duration

// NoDelay returns as soon as it is called. Use it in tests.
const NoDelay = FixedDelay(0)

func (d FixedDelay) Delay(ctx context.Context) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(time.Duration(d))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
