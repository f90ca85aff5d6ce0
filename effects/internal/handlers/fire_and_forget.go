package handlers

import (
	"context"
	"log"

	effectmodel "github.com/on-the-ground/composable_ive_go/effects/internal/model"
)

func NewFireAndForgetHandler[P any](
	ctx context.Context,
	bufferSize int,
	handleFn func(context.Context, P),
	teardown func(),
) FireAndForgetHandler[P] {
	ctx, cancelFn := context.WithCancel(ctx)
	return FireAndForgetHandler[P]{
		effectScope: newEffectScope(
			NewSingleQueue(ctx, bufferSize, forgetWith(handleFn)),
			func() {
				teardown()
				cancelFn()
			},
		),
	}
}

func NewPartitionableFireAndForgetHandler[P effectmodel.Partitionable](
	ctx context.Context,
	config effectmodel.EffectScopeConfig,
	handleFn func(context.Context, P),
	teardown func(),
) FireAndForgetHandler[P] {
	ctx, cancelFn := context.WithCancel(ctx)
	return FireAndForgetHandler[P]{
		effectScope: newEffectScope(
			NewPartitionedQueue(ctx, config.NumWorkers, config.BufferSize, forgetWith(handleFn)),
			func() {
				teardown()
				cancelFn()
			},
		),
	}
}

// forgetWith keeps a panicking handle function from taking its worker down.
// The standard logger is used because the log effect may be the one that failed.
func forgetWith[P any](handleFn func(context.Context, P)) func(context.Context, P) {
	return func(ctx context.Context, payload P) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("recovered panic in fire/forget effect: %v", r)
			}
		}()
		handleFn(ctx, payload)
	}
}

type FireAndForgetHandler[P any] struct {
	*effectScope[P]
}

// FireAndForgetEffect enqueues payload and reports whether it was accepted.
func (ffh FireAndForgetHandler[P]) FireAndForgetEffect(ctx context.Context, payload P) bool {
	return ffh.dispatcher.Dispatch(ctx, payload)
}
