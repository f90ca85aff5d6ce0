package dependencies

import (
	"context"
	"errors"
	"fmt"

	"github.com/on-the-ground/composable_ive_go/effects/binding"
	"github.com/on-the-ground/composable_ive_go/effects/configkeys"
)

// ErrUnimplemented is the panic value of test values that must be overridden before use.
var ErrUnimplemented = errors.New("unimplemented dependency")

// Context selects which default a Key resolves to when nothing overrides it.
type Context int

const (
	ContextLive Context = iota
	ContextTest
	ContextPreview
)

func (c Context) String() string {
	switch c {
	case ContextTest:
		return "test"
	case ContextPreview:
		return "preview"
	default:
		return "live"
	}
}

// Key names a dependency of type T together with its defaults.
type Key[T any] struct {
	name    string
	live    T
	test    *T
	preview *T
}

type KeyOption[T any] func(*Key[T])

// WithTestValue sets the value used in ContextTest.
func WithTestValue[T any](v T) KeyOption[T] {
	return func(k *Key[T]) { k.test = &v }
}

// WithPreviewValue sets the value used in ContextPreview, and in ContextTest when no test value is set.
func WithPreviewValue[T any](v T) KeyOption[T] {
	return func(k *Key[T]) { k.preview = &v }
}

// NewKey declares a dependency. Names must be unique within a process.
func NewKey[T any](name string, live T, opts ...KeyOption[T]) Key[T] {
	k := Key[T]{name: name, live: live}
	for _, opt := range opts {
		opt(&k)
	}
	return k
}

func (k Key[T]) Name() string {
	return k.name
}

// Default is the value k resolves to in c when no scope overrides it.
func (k Key[T]) Default(c Context) T {
	switch c {
	case ContextTest:
		if k.test != nil {
			return *k.test
		}
		if k.preview != nil {
			return *k.preview
		}
	case ContextPreview:
		if k.preview != nil {
			return *k.preview
		}
	}
	return k.live
}

func (k Key[T]) bindingKey() string {
	return configkeys.DependencyValue(k.name)
}

// Get resolves key in ctx: the closest override wins, then the default for ContextOf(ctx).
// Resolution ignores cancellation of ctx.
func Get[T any](ctx context.Context, key Key[T]) T {
	if raw, ok := lookup(ctx, key.bindingKey()); ok {
		if v, ok := raw.(T); ok {
			return v
		}
		panic(fmt.Errorf("dependency %q bound to %T", key.name, raw))
	}
	return key.Default(ContextOf(ctx))
}

// ContextOf reports the dependency context of ctx, ContextLive unless a scope set another.
func ContextOf(ctx context.Context) Context {
	if raw, ok := lookup(ctx, configkeys.DependenciesContext); ok {
		if c, ok := raw.(Context); ok {
			return c
		}
	}
	return ContextLive
}

// lookup reads a binding even when ctx is done, so cancelled work keeps its overrides.
func lookup(ctx context.Context, key string) (any, bool) {
	return binding.Lookup(context.WithoutCancel(ctx), key)
}
