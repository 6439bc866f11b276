package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultLatency_ScalesAndStaysNonZero(t *testing.T) {
	full := DefaultLatency(1.0)
	half := DefaultLatency(0.5)

	assert.Equal(t, full.Auth/2, half.Auth)
	assert.Greater(t, full.Create, time.Duration(0))

	// A non-positive scale falls back to stock delays rather than
	// silently disabling them.
	assert.Equal(t, full, DefaultLatency(0))
}

func TestWait_ZeroReturnsImmediately(t *testing.T) {
	start := time.Now()
	wait(context.Background(), 0)
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}

func TestWait_CancelledContextShortCircuits(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	wait(ctx, 5*time.Second)
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}
