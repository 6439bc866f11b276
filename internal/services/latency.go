package services

import (
	"context"
	"time"
)

// Latency holds the simulated request delays, one per operation class.
// There is no real network here; the delays exist so the presentation
// layer's loading states remain observable and testable. The zero value
// disables delays entirely (used by tests).
type Latency struct {
	Auth   time.Duration // login, signup
	Verify time.Duration // aadhaar verification
	Create time.Duration // report creation
	List   time.Duration // collection fetches
	Lookup time.Duration // single-record fetches
}

// DefaultLatency returns the stock delays, optionally scaled.
func DefaultLatency(scale float64) Latency {
	if scale <= 0 {
		scale = 1
	}
	s := func(d time.Duration) time.Duration {
		return time.Duration(float64(d) * scale)
	}
	return Latency{
		Auth:   s(1 * time.Second),
		Verify: s(2 * time.Second),
		Create: s(1500 * time.Millisecond),
		List:   s(500 * time.Millisecond),
		Lookup: s(300 * time.Millisecond),
	}
}

// wait sleeps for d or until ctx is done. A request, once issued, always
// eventually resolves; cancellation only short-circuits the artificial
// delay, it does not abort the operation semantics.
func wait(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
