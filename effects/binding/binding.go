package binding

import (
	"context"
	"errors"
	"fmt"

	"github.com/on-the-ground/composable_ive_go/effects"
	effectmodel "github.com/on-the-ground/composable_ive_go/effects/internal/model"
)

// ErrKeyNotFound is returned when neither this scope nor any enclosing one binds the key.
var ErrKeyNotFound = errors.New("key not found")

// Payload is the key looked up by the Binding effect.
type Payload string

func (bp Payload) PartitionKey() string {
	return string(bp)
}

// WithEffectHandler registers a resumable, partitionable effect handler for bindings.
//
//   - Accepts a key-value map used for lookups; the map is copied.
//   - Keys missing locally are delegated to the enclosing binding scope, if any.
//   - The teardown function closes the handler and returns the context passed in.
func WithEffectHandler(
	ctx context.Context,
	config effectmodel.EffectScopeConfig,
	bindingMap map[string]any,
) (context.Context, func() context.Context) {
	bindingHandler := &bindingHandler{
		bindingMap: copyBindingMap(bindingMap),
	}
	return effects.WithResumablePartitionableEffectHandler[Payload, any](
		ctx,
		config,
		effectmodel.EffectBinding,
		bindingHandler.handle,
	)
}

// Effect performs a key-based lookup using the Binding effect handler.
//
// Returns the value bound in the closest scope, or ErrKeyNotFound.
// Panics if no binding handler is registered in ctx.
func Effect(ctx context.Context, key string) (any, error) {
	return effects.AwaitResumableEffect[Payload, any](ctx, effectmodel.EffectBinding, Payload(key))
}

// Lookup is Effect for callers that treat a missing handler like a missing key.
func Lookup(ctx context.Context, key string) (any, bool) {
	if !effects.HasEffectHandler(ctx, effectmodel.EffectBinding) {
		return nil, false
	}
	v, err := Effect(ctx, key)
	if err != nil {
		return nil, false
	}
	return v, true
}

func copyBindingMap(bm map[string]any) map[string]any {
	copied := make(map[string]any, len(bm))
	for k, v := range bm {
		copied[k] = v
	}
	return copied
}

type bindingHandler struct {
	bindingMap map[string]any
}

// handle looks up the key in the local bindingMap.
// - If found: returns the value.
// - If not found: delegates to the upper handler, if one exists.
// - Otherwise: returns ErrKeyNotFound.
func (bh bindingHandler) handle(ctx context.Context, payload Payload) (any, error) {
	key := string(payload)
	if v, ok := bh.bindingMap[key]; ok {
		return v, nil
	}
	if !effects.HasEffectHandler(ctx, effectmodel.EffectBinding) {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	return Effect(ctx, key)
}
