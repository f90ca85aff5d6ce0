package handlers

import (
	"context"
	"errors"
	"fmt"

	effectmodel "github.com/on-the-ground/composable_ive_go/effects/internal/model"
)

var (
	// ErrHandlerClosed is returned for effects performed after their handler stopped.
	ErrHandlerClosed = errors.New("effect handler closed")
	// ErrHandlerPanicked wraps a panic recovered from a handle function.
	ErrHandlerPanicked = errors.New("effect handler panicked")
)

func NewResumableHandler[P any, R any](
	ctx context.Context,
	bufferSize int,
	handleFn func(context.Context, P) (R, error),
	teardown func(),
) ResumableHandler[P, R] {
	ctx, cancelFn := context.WithCancel(ctx)
	return ResumableHandler[P, R]{
		effectScope: newEffectScope(
			NewSingleQueue(ctx, bufferSize, resumeWith(handleFn)),
			func() {
				cancelFn()
				teardown()
			},
		),
	}
}

func NewPartitionableResumableHandler[P effectmodel.Partitionable, R any](
	ctx context.Context,
	config effectmodel.EffectScopeConfig,
	handleFn func(context.Context, P) (R, error),
	teardown func(),
) ResumableHandler[P, R] {
	ctx, cancelFn := context.WithCancel(ctx)
	return ResumableHandler[P, R]{
		effectScope: newEffectScope(
			NewPartitionedQueue(ctx, config.NumWorkers, config.BufferSize, resumeWith(handleFn)),
			func() {
				cancelFn()
				teardown()
			},
		),
	}
}

// resumeWith adapts handleFn to the worker signature, sending its result back to the performer.
func resumeWith[P any, R any](
	handleFn func(context.Context, P) (R, error),
) func(context.Context, ResumableEffectMessage[P, R]) {
	return func(ctx context.Context, msg ResumableEffectMessage[P, R]) {
		res := safeHandle(ctx, handleFn, msg.Payload)
		// resumeCh is buffered, the performer never blocks this worker.
		msg.ResumeCh <- res
		close(msg.ResumeCh)
	}
}

func safeHandle[P any, R any](
	ctx context.Context,
	handleFn func(context.Context, P) (R, error),
	payload P,
) (res ResumableResult[R]) {
	defer func() {
		if r := recover(); r != nil {
			res = ResumableResult[R]{Err: fmt.Errorf("%w: %v", ErrHandlerPanicked, r)}
		}
	}()
	return ResumableResultFrom(handleFn(ctx, payload))
}

type ResumableHandler[P any, R any] struct {
	*effectScope[ResumableEffectMessage[P, R]]
}

// PerformEffect enqueues payload and returns the channel its result arrives on.
// If the payload cannot be enqueued the channel already holds the failure.
func (rh ResumableHandler[P, R]) PerformEffect(ctx context.Context, payload P) <-chan ResumableResult[R] {
	resumeCh := make(chan ResumableResult[R], 1)
	msg := ResumableEffectMessage[P, R]{
		Payload:  payload,
		ResumeCh: resumeCh,
	}
	if !rh.dispatcher.Dispatch(ctx, msg) {
		resumeCh <- ResumableResult[R]{Err: rh.dispatchErr(ctx)}
		close(resumeCh)
	}
	return resumeCh
}

// Await performs the effect and blocks until its result, ctx cancellation, or handler shutdown.
func (rh ResumableHandler[P, R]) Await(ctx context.Context, payload P) (R, error) {
	resultCh := rh.PerformEffect(ctx, payload)
	select {
	case res, ok := <-resultCh:
		if ok {
			return res.Value, res.Err
		}
	case <-ctx.Done():
		return *new(R), ctx.Err()
	case <-rh.Done():
	}
	return *new(R), fmt.Errorf("%w: %s", ErrHandlerClosed, rh.EffectId)
}

func (rh ResumableHandler[P, R]) dispatchErr(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fmt.Errorf("%w: %s", ErrHandlerClosed, rh.EffectId)
}

// ResumableResult represents the result of handled effects.
type ResumableResult[T any] struct {
	Value T
	Err   error
}

func ResumableResultFrom[R any](res R, err error) ResumableResult[R] {
	return ResumableResult[R]{Value: res, Err: err}
}

var _ effectmodel.Partitionable = ResumableEffectMessage[any, any]{}

type ResumableEffectMessage[P any, R any] struct {
	Payload  P
	ResumeCh chan ResumableResult[R]
}

func (rem ResumableEffectMessage[P, R]) PartitionKey() string {
	if p, ok := any(rem.Payload).(effectmodel.Partitionable); ok {
		return p.PartitionKey()
	}
	return ""
}
