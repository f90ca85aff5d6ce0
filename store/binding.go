package store

import (
	"context"
	"reflect"
)

// Equatable is implemented by actions that cannot be compared structurally,
// such as actions carrying functions.
type Equatable interface {
	Equals(other any) bool
}

// BindingAction writes Value into the field of S named by KeyPath.
type BindingAction[S any] struct {
	KeyPath string
	Value   any
	set     func(*S)
}

// Set builds a binding action that assigns value through field.
func Set[S any, V any](keyPath string, field func(*S) *V, value V) BindingAction[S] {
	return BindingAction[S]{
		KeyPath: keyPath,
		Value:   value,
		set: func(s *S) {
			*field(s) = value
		},
	}
}

// Apply writes the bound value into state.
func (b BindingAction[S]) Apply(state *S) {
	if b.set != nil {
		b.set(state)
	}
}

// Equals compares key path and value, ignoring the setter.
func (b BindingAction[S]) Equals(other any) bool {
	o, ok := other.(BindingAction[S])
	return ok && b.KeyPath == o.KeyPath && reflect.DeepEqual(b.Value, o.Value)
}

// BindingReducer applies binding actions found by extract and ignores every other action.
func BindingReducer[S any, A any](extract func(A) (BindingAction[S], bool)) Reducer[S, A] {
	return ReducerFunc[S, A](func(_ context.Context, state *S, action A) Effect[A] {
		if b, ok := extract(action); ok {
			b.Apply(state)
		}
		return None[A]()
	})
}
