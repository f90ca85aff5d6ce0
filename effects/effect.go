package effects

import (
	"context"
	"fmt"

	"github.com/on-the-ground/composable_ive_go/effects/internal/handlers"
	effectmodel "github.com/on-the-ground/composable_ive_go/effects/internal/model"
	"github.com/on-the-ground/composable_ive_go/shared/helper"
	"go.uber.org/zap"
)

// EffectEnum identifies a handler inside a context.
type EffectEnum = effectmodel.EffectEnum

// EffectScopeConfig sizes the queues of a handler.
type EffectScopeConfig = effectmodel.EffectScopeConfig

// NewEffectScopeConfig fills non-positive sizes with the default of 1.
func NewEffectScopeConfig(bufferSize, numWorkers int) EffectScopeConfig {
	return effectmodel.NewEffectScopeConfig(bufferSize, numWorkers)
}

// ResumableResult is the outcome of a resumable effect.
type ResumableResult[R any] = handlers.ResumableResult[R]

// ErrNoEffectHandler is the panic value (wrapped) raised when an effect has no handler in scope.
var ErrNoEffectHandler = effectmodel.ErrNoEffectHandler

// ErrHandlerClosed is returned for effects performed against a handler that already stopped.
var ErrHandlerClosed = handlers.ErrHandlerClosed

// WithResumablePartitionableEffectHandler registers a resumable effect handler for a given effect enum.
//
// Payloads are spread over config.NumWorkers workers by PartitionKey(), so payloads
// sharing a key are handled in order.
//
// Usage:
//
//	ctx, end := WithResumablePartitionableEffectHandler(ctx, config, MyEffectEnum, handleFn)
//	defer end()
func WithResumablePartitionableEffectHandler[P effectmodel.Partitionable, R any](
	ctx context.Context,
	config effectmodel.EffectScopeConfig,
	enum effectmodel.EffectEnum,
	handleFn func(context.Context, P) (R, error),
	teardown ...func(),
) (context.Context, func() context.Context) {
	handler := handlers.NewPartitionableResumableHandler(ctx, config, handleFn, normalizeTeardown(teardown))
	return register(ctx, enum, handler, handler.EffectId, "resumable", handler.Close)
}

// WithResumableEffectHandler registers a resumable effect handler whose payloads are handled one at a time, in order.
func WithResumableEffectHandler[P any, R any](
	ctx context.Context,
	bufferSize int,
	enum effectmodel.EffectEnum,
	handleFn func(context.Context, P) (R, error),
	teardown ...func(),
) (context.Context, func() context.Context) {
	handler := handlers.NewResumableHandler(ctx, bufferSize, handleFn, normalizeTeardown(teardown))
	return register(ctx, enum, handler, handler.EffectId, "resumable", handler.Close)
}

// PerformResumableEffect sends a payload to the resumable effect handler.
//
// The returned channel receives exactly one result.
// Panics if no handler is registered for the given effect enum.
func PerformResumableEffect[P any, R any](
	ctx context.Context,
	enum effectmodel.EffectEnum,
	payload P,
) <-chan ResumableResult[R] {
	return mustHandler[handlers.ResumableHandler[P, R]](ctx, enum).PerformEffect(ctx, payload)
}

// AwaitResumableEffect performs a resumable effect and waits for its result,
// returning early when ctx is done or the handler stops.
func AwaitResumableEffect[P any, R any](
	ctx context.Context,
	enum effectmodel.EffectEnum,
	payload P,
) (R, error) {
	return mustHandler[handlers.ResumableHandler[P, R]](ctx, enum).Await(ctx, payload)
}

// WithFireAndForgetEffectHandler registers a fire-and-forget effect handler for a given effect enum.
//
// Suitable for one-shot effects like logging or spawning work that reports back on its own.
func WithFireAndForgetEffectHandler[P any](
	ctx context.Context,
	bufferSize int,
	enum effectmodel.EffectEnum,
	handleFn func(context.Context, P),
	teardown ...func(),
) (context.Context, func() context.Context) {
	handler := handlers.NewFireAndForgetHandler(ctx, bufferSize, handleFn, normalizeTeardown(teardown))
	return register(ctx, enum, handler, handler.EffectId, "fire/forget", handler.Close)
}

// WithFireAndForgetPartitionableEffectHandler registers a partitioned fire-and-forget handler.
func WithFireAndForgetPartitionableEffectHandler[P effectmodel.Partitionable](
	ctx context.Context,
	config effectmodel.EffectScopeConfig,
	enum effectmodel.EffectEnum,
	handleFn func(context.Context, P),
	teardown ...func(),
) (context.Context, func() context.Context) {
	handler := handlers.NewPartitionableFireAndForgetHandler(ctx, config, handleFn, normalizeTeardown(teardown))
	return register(ctx, enum, handler, handler.EffectId, "fire/forget", handler.Close)
}

// FireAndForgetEffect hands payload to the handler registered for enum and returns immediately.
// Panics if no handler is registered for the given enum.
func FireAndForgetEffect[P any](
	ctx context.Context,
	enum effectmodel.EffectEnum,
	payload P,
) bool {
	return mustHandler[handlers.FireAndForgetHandler[P]](ctx, enum).FireAndForgetEffect(ctx, payload)
}

// HasEffectHandler reports whether ctx carries a handler for enum.
func HasEffectHandler(ctx context.Context, enum effectmodel.EffectEnum) bool {
	return ctx.Value(enum) != nil
}

func register(
	ctx context.Context,
	enum effectmodel.EffectEnum,
	handler any,
	effectId string,
	kind string,
	closeFn func(),
) (context.Context, func() context.Context) {
	ctxWith := context.WithValue(ctx, enum, handler)
	zap.L().Debug("created effect handler",
		zap.String("kind", kind), zap.String("effectId", effectId), zap.Any("enum", enum))

	return ctxWith, func() context.Context {
		closeFn()
		zap.L().Debug("closed effect handler",
			zap.String("kind", kind), zap.String("effectId", effectId), zap.Any("enum", enum))
		return ctx
	}
}

func mustHandler[H any](ctx context.Context, enum effectmodel.EffectEnum) H {
	return helper.MustGetTypedValue[H](func() (any, error) {
		raw := ctx.Value(enum)
		if raw == nil {
			return nil, fmt.Errorf("%w: %v", ErrNoEffectHandler, enum)
		}
		return raw, nil
	})
}

// normalizeTeardown flattens optional teardown functions into a single callable.
//
// Accepts either 0 or 1 teardown functions. Panics if more than one is passed.
func normalizeTeardown(teardown []func()) func() {
	switch len(teardown) {
	case 1:
		return teardown[0]
	case 0:
		return func() {}
	default:
		panic("normalizeTeardown: only one or zero teardown functions allowed")
	}
}
