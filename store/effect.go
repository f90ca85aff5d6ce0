package store

import "context"

// Effect describes the work that follows a reduction.
//
// Actions are fed back synchronously, before any action sent from outside.
// Operations run on their own goroutines and may send any number of actions.
// Cancellations stop running operations tagged with a cancel ID.
type Effect[A any] struct {
	actions    []A
	operations []Operation[A]
	cancels    []any
}

// Operation is a unit of concurrent work inside an Effect.
type Operation[A any] struct {
	run            func(ctx context.Context, send func(A))
	cancelID       any
	cancelInFlight bool
}

// None is the empty effect.
func None[A any]() Effect[A] {
	return Effect[A]{}
}

// Send feeds actions back into the store immediately after the current action.
func Send[A any](actions ...A) Effect[A] {
	return Effect[A]{actions: actions}
}

// Run executes fn concurrently. Actions passed to send are reduced as they arrive;
// sends after ctx is cancelled are dropped.
func Run[A any](fn func(ctx context.Context, send func(A))) Effect[A] {
	return Effect[A]{operations: []Operation[A]{{run: fn}}}
}

// Cancel stops every running operation tagged with id.
func Cancel[A any](id any) Effect[A] {
	return Effect[A]{cancels: []any{id}}
}

// Merge concatenates effects, preserving the order of their actions.
func Merge[A any](effs ...Effect[A]) Effect[A] {
	var merged Effect[A]
	for _, e := range effs {
		merged.actions = append(merged.actions, e.actions...)
		merged.operations = append(merged.operations, e.operations...)
		merged.cancels = append(merged.cancels, e.cancels...)
	}
	return merged
}

// Cancellable tags the operations of e with id, which must be comparable.
// With cancelInFlight, starting them first cancels operations already running under id.
func (e Effect[A]) Cancellable(id any, cancelInFlight bool) Effect[A] {
	ops := make([]Operation[A], len(e.operations))
	for i, op := range e.operations {
		op.cancelID = id
		op.cancelInFlight = cancelInFlight
		ops[i] = op
	}
	e.operations = ops
	return e
}

func (e Effect[A]) IsNone() bool {
	return len(e.actions) == 0 && len(e.operations) == 0 && len(e.cancels) == 0
}

// Actions lists the actions e sends synchronously.
func (e Effect[A]) Actions() []A {
	return e.actions
}

// Operations lists the operations e runs concurrently.
func (e Effect[A]) Operations() []Operation[A] {
	return e.operations
}

// CancelIDs lists the ids whose operations e cancels.
func (e Effect[A]) CancelIDs() []any {
	return e.cancels
}

// MapEffect lifts an effect of child actions into an effect of parent actions.
func MapEffect[CA any, A any](e Effect[CA], embed func(CA) A) Effect[A] {
	mapped := Effect[A]{cancels: e.cancels}
	for _, a := range e.actions {
		mapped.actions = append(mapped.actions, embed(a))
	}
	for _, op := range e.operations {
		run := op.run
		mapped.operations = append(mapped.operations, Operation[A]{
			run: func(ctx context.Context, send func(A)) {
				run(ctx, func(a CA) { send(embed(a)) })
			},
			cancelID:       op.cancelID,
			cancelInFlight: op.cancelInFlight,
		})
	}
	return mapped
}
