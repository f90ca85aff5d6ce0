// Package storetest provides an exhaustive test harness for reducers.
package storetest

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/on-the-ground/composable_ive_go/dependencies"
	"github.com/on-the-ground/composable_ive_go/effects/concurrency"
	"github.com/on-the-ground/composable_ive_go/store"
	"github.com/stretchr/testify/assert"
	"go.uber.org/multierr"
)

// DefaultReceiveTimeout bounds how long Receive and Finish wait on effects.
const DefaultReceiveTimeout = time.Second

const effectBufferSize = 16

// TestStore reduces actions synchronously and checks every state change exhaustively.
//
// Dependencies resolve in dependencies.ContextTest unless overridden by the functions
// passed to NewTestStore. Actions fed back by effects must all be received,
// and every effect must finish, before the test ends.
type TestStore[S any, A any] struct {
	t       testing.TB
	reducer store.Reducer[S, A]
	state   S
	ctx     context.Context
	Timeout time.Duration

	mu       sync.Mutex
	received []A
	inFlight int
	notify   chan struct{}

	cancellables *store.Cancellables

	finishOnce sync.Once
	teardown   func()
}

// NewTestStore builds a TestStore whose dependencies are prepared by withDeps.
// Finish runs automatically when the test ends.
func NewTestStore[S any, A any](
	t testing.TB,
	initial S,
	reducer store.Reducer[S, A],
	withDeps ...func(*dependencies.Values),
) *TestStore[S, A] {
	t.Helper()

	ctx := context.Background()
	ctx, endOfDeps := dependencies.WithValues(ctx, func(v *dependencies.Values) {
		v.SetContext(dependencies.ContextTest)
		for _, fn := range withDeps {
			fn(v)
		}
	})
	ctx, endOfConcurrency := concurrency.WithEffectHandler(ctx, effectBufferSize)

	ts := &TestStore[S, A]{
		t:            t,
		reducer:      reducer,
		state:        initial,
		ctx:          ctx,
		Timeout:      DefaultReceiveTimeout,
		notify:       make(chan struct{}, 1),
		cancellables: store.NewCancellables(),
		teardown: func() {
			endOfConcurrency()
			endOfDeps()
		},
	}
	t.Cleanup(ts.Finish)
	return ts
}

// State returns the state after the last sent or received action.
func (ts *TestStore[S, A]) State() S {
	return ts.state
}

// Send reduces action and asserts the resulting state equals the previous state modified by expect.
// A nil expect asserts the state did not change.
func (ts *TestStore[S, A]) Send(action A, expect func(*S)) {
	ts.t.Helper()

	if pending := ts.pendingReceived(); len(pending) > 0 {
		ts.t.Errorf("must handle %d received action(s) before sending %T: %s",
			len(pending), action, describe(pending))
	}
	ts.reduceAndAssert(action, expect, "send")
}

// Receive waits for the next action fed back by an effect, asserts it equals action,
// reduces it and checks the state like Send.
func (ts *TestStore[S, A]) Receive(action A, expect func(*S)) {
	ts.t.Helper()

	got, ok := ts.nextReceived()
	if !ok {
		ts.t.Errorf("expected to receive %#v, but no action was received within %s", action, ts.Timeout)
		return
	}
	if !actionsEqual(action, got) {
		ts.t.Errorf("received unexpected action\nexpected: %#v\nactual:   %#v", action, got)
	}
	ts.reduceAndAssert(got, expect, "receive")
}

// Finish fails the test on actions never received or effects still running,
// then tears the store down.
func (ts *TestStore[S, A]) Finish() {
	ts.t.Helper()

	ts.finishOnce.Do(func() {
		var errs error
		if !ts.waitIdle() {
			errs = multierr.Append(errs, fmt.Errorf("%d effect(s) still running after %s", ts.runningEffects(), ts.Timeout))
		}
		if pending := ts.pendingReceived(); len(pending) > 0 {
			errs = multierr.Append(errs, fmt.Errorf("%d received action(s) not asserted: %s", len(pending), describe(pending)))
		}

		ts.cancellables.CancelAll()
		ts.teardown()

		for _, err := range multierr.Errors(errs) {
			ts.t.Errorf("test store finished with unhandled work: %v", err)
		}
	})
}

func (ts *TestStore[S, A]) reduceAndAssert(action A, expect func(*S), verb string) {
	ts.t.Helper()

	expected := ts.state
	if expect != nil {
		expect(&expected)
	}

	next := ts.state
	eff, err := ts.safeReduce(&next, action)
	if err != nil {
		ts.t.Errorf("reducer panicked on %s of %T: %v", verb, action, err)
		return
	}
	ts.state = next
	assert.Equal(ts.t, expected, next, "state mismatch after %s of %#v", verb, action)

	for _, id := range eff.CancelIDs() {
		ts.cancellables.Cancel(id)
	}
	ts.push(eff.Actions()...)
	for _, op := range eff.Operations() {
		ts.spawn(op)
	}
}

func (ts *TestStore[S, A]) safeReduce(state *S, action A) (eff store.Effect[A], err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return ts.reducer.Reduce(ts.ctx, state, action), nil
}

func (ts *TestStore[S, A]) spawn(op store.Operation[A]) {
	opCtx, releaseOp := op.Prepare(ts.cancellables)

	ts.mu.Lock()
	ts.inFlight++
	ts.mu.Unlock()
	release := func() {
		releaseOp()
		ts.mu.Lock()
		ts.inFlight--
		ts.mu.Unlock()
	}

	ok := concurrency.Effect(ts.ctx, func(childCtx context.Context) {
		defer release()
		op.Execute(childCtx, opCtx, func(_ context.Context, a A) {
			ts.push(a)
		})
	})
	if !ok {
		release()
		ts.t.Errorf("effect could not be started")
	}
}

func (ts *TestStore[S, A]) push(actions ...A) {
	if len(actions) == 0 {
		return
	}
	ts.mu.Lock()
	ts.received = append(ts.received, actions...)
	ts.mu.Unlock()
	ts.signal()
}

func (ts *TestStore[S, A]) signal() {
	select {
	case ts.notify <- struct{}{}:
	default:
	}
}

func (ts *TestStore[S, A]) pendingReceived() []A {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return append([]A(nil), ts.received...)
}

func (ts *TestStore[S, A]) runningEffects() int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.inFlight
}

func (ts *TestStore[S, A]) nextReceived() (A, bool) {
	timer := time.NewTimer(ts.Timeout)
	defer timer.Stop()
	for {
		ts.mu.Lock()
		if len(ts.received) > 0 {
			a := ts.received[0]
			ts.received = ts.received[1:]
			ts.mu.Unlock()
			return a, true
		}
		ts.mu.Unlock()

		select {
		case <-ts.notify:
		case <-timer.C:
			var zero A
			return zero, false
		}
	}
}

// waitIdle waits for running effects to finish, up to Timeout.
func (ts *TestStore[S, A]) waitIdle() bool {
	timer := time.NewTimer(ts.Timeout)
	defer timer.Stop()
	ticker := time.NewTicker(time.Millisecond)
	defer ticker.Stop()
	for {
		if ts.runningEffects() == 0 {
			return true
		}
		select {
		case <-ticker.C:
		case <-timer.C:
			return ts.runningEffects() == 0
		}
	}
}

func actionsEqual[A any](expected, actual A) bool {
	if eq, ok := any(expected).(store.Equatable); ok {
		return eq.Equals(actual)
	}
	return assert.ObjectsAreEqual(expected, actual)
}

func describe[A any](actions []A) string {
	out := ""
	for i, a := range actions {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%#v", a)
	}
	return out
}
