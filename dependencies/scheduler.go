package dependencies

import (
	"context"

	"github.com/on-the-ground/composable_ive_go/effects/concurrency"
)

// Scheduler runs units of work on some execution context.
type Scheduler interface {
	Schedule(ctx context.Context, fn func(context.Context))
}

// MainQueue runs work asynchronously when live and inline in tests.
var MainQueue = NewKey[Scheduler]("main_queue", Scheduler(goroutineScheduler{}),
	WithTestValue[Scheduler](ImmediateScheduler{}),
)

// goroutineScheduler hands work to the concurrency handler in ctx when one exists,
// so the work is cancelled and joined with that scope.
type goroutineScheduler struct{}

func (goroutineScheduler) Schedule(ctx context.Context, fn func(context.Context)) {
	if concurrency.HasEffectHandler(ctx) && concurrency.Effect(ctx, fn) {
		return
	}
	go fn(ctx)
}

// ImmediateScheduler runs work synchronously on the caller's goroutine.
type ImmediateScheduler struct{}

func (ImmediateScheduler) Schedule(ctx context.Context, fn func(context.Context)) {
	fn(ctx)
}
