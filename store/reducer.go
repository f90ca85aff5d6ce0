package store

import "context"

// Reducer evolves state in response to an action and describes the effects to run next.
type Reducer[S any, A any] interface {
	Reduce(ctx context.Context, state *S, action A) Effect[A]
}

// ReducerFunc adapts a function to Reducer.
type ReducerFunc[S any, A any] func(ctx context.Context, state *S, action A) Effect[A]

func (f ReducerFunc[S, A]) Reduce(ctx context.Context, state *S, action A) Effect[A] {
	return f(ctx, state, action)
}

// Empty leaves state untouched and returns no effect.
func Empty[S any, A any]() Reducer[S, A] {
	return ReducerFunc[S, A](func(context.Context, *S, A) Effect[A] {
		return None[A]()
	})
}

// Combine runs reducers in order on the same state and merges their effects.
func Combine[S any, A any](reducers ...Reducer[S, A]) Reducer[S, A] {
	return ReducerFunc[S, A](func(ctx context.Context, state *S, action A) Effect[A] {
		effs := make([]Effect[A], 0, len(reducers))
		for _, r := range reducers {
			effs = append(effs, r.Reduce(ctx, state, action))
		}
		return Merge(effs...)
	})
}
