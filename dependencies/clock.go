package dependencies

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Clock measures time passing and suspends work for a duration.
type Clock interface {
	Now() time.Time
	// Sleep waits for d, returning ctx.Err() if ctx is done first.
	Sleep(ctx context.Context, d time.Duration) error
}

// ContinuousClock is the wall clock when live.
var ContinuousClock = NewKey[Clock]("continuous_clock", Clock(wallClock{}),
	WithTestValue[Clock](unimplementedClock{}),
	WithPreviewValue[Clock](NewImmediateClock(time.Time{})),
)

type wallClock struct{}

func (wallClock) Now() time.Time {
	return time.Now()
}

func (wallClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// ImmediateClock advances virtual time on Sleep without waiting.
type ImmediateClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewImmediateClock(start time.Time) *ImmediateClock {
	return &ImmediateClock{now: start}
}

func (c *ImmediateClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *ImmediateClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return nil
}

type unimplementedClock struct{}

func (unimplementedClock) Now() time.Time {
	panic(fmt.Errorf("%w: %s", ErrUnimplemented, "continuous_clock.Now"))
}

func (unimplementedClock) Sleep(context.Context, time.Duration) error {
	panic(fmt.Errorf("%w: %s", ErrUnimplemented, "continuous_clock.Sleep"))
}
