package dependencies

import (
	"context"

	"github.com/on-the-ground/composable_ive_go/effects"
	"github.com/on-the-ground/composable_ive_go/effects/binding"
	"github.com/on-the-ground/composable_ive_go/effects/configkeys"
)

// Values collects the overrides of one scope while it is being opened.
type Values struct {
	parent context.Context
	bound  map[string]any
}

// SetContext switches the scope to c, changing the defaults of every key not overridden.
func (v *Values) SetContext(c Context) {
	v.bound[configkeys.DependenciesContext] = c
}

// Context is the dependency context the scope will have.
func (v *Values) Context() Context {
	if c, ok := v.bound[configkeys.DependenciesContext].(Context); ok {
		return c
	}
	return ContextOf(v.parent)
}

// Set overrides k within the scope.
func (k Key[T]) Set(v *Values, value T) {
	v.bound[k.bindingKey()] = value
}

// Update overrides k with a modified copy of the value it currently resolves to.
func (k Key[T]) Update(v *Values, fn func(*T)) {
	current := k.Current(v)
	fn(&current)
	k.Set(v, current)
}

// Current is the value k would resolve to inside the scope as configured so far.
func (k Key[T]) Current(v *Values) T {
	if raw, ok := v.bound[k.bindingKey()]; ok {
		return raw.(T)
	}
	if raw, ok := lookup(v.parent, k.bindingKey()); ok {
		if value, ok := raw.(T); ok {
			return value
		}
	}
	return k.Default(v.Context())
}

// WithValues opens a scope whose overrides are set by fn.
// The teardown closes the scope and returns ctx.
func WithValues(ctx context.Context, fn func(*Values)) (context.Context, func() context.Context) {
	v := &Values{parent: ctx, bound: make(map[string]any)}
	fn(v)
	return binding.WithEffectHandler(ctx, effects.NewEffectScopeConfig(len(v.bound), 1), v.bound)
}

// WithContext opens a scope that only switches the dependency context.
func WithContext(ctx context.Context, c Context) (context.Context, func() context.Context) {
	return WithValues(ctx, func(v *Values) {
		v.SetContext(c)
	})
}
