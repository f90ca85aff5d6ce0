package concurrency_test

import (
	"context"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/on-the-ground/composable_ive_go/effects/concurrency"
	"github.com/on-the-ground/composable_ive_go/effects/log"
	"github.com/stretchr/testify/assert"
)

type ctxKey string

func TestConcurrencyEffect_AllChildrenRunAndComplete(t *testing.T) {
	ctx, endOfLogHandler := log.WithTestEffectHandler(context.Background())
	defer endOfLogHandler()

	ctx, endOfConcurrencyHandler := concurrency.WithEffectHandler(ctx, 10)
	defer endOfConcurrencyHandler()

	var mu sync.Mutex
	var ran []int
	var wg sync.WaitGroup
	wg.Add(3)

	f := func(i int) func(context.Context) {
		return func(ctx context.Context) {
			defer wg.Done()
			mu.Lock()
			ran = append(ran, i)
			mu.Unlock()
		}
	}

	assert.True(t, concurrency.Effect(ctx, f(1), f(2), f(3)))
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	slices.Sort(ran)
	assert.Equal(t, []int{1, 2, 3}, ran)
}

func TestConcurrencyEffect_ChildrenKeepContextValues(t *testing.T) {
	ctx, endOfLogHandler := log.WithTestEffectHandler(context.Background())
	defer endOfLogHandler()

	ctx = context.WithValue(ctx, ctxKey("scope"), "outer")
	ctx, endOfConcurrencyHandler := concurrency.WithEffectHandler(ctx, 1)
	defer endOfConcurrencyHandler()

	got := make(chan any, 1)
	concurrency.Effect(ctx, func(ctx context.Context) {
		got <- ctx.Value(ctxKey("scope"))
	})

	select {
	case v := <-got:
		assert.Equal(t, "outer", v)
	case <-time.After(time.Second):
		t.Fatal("child never ran")
	}
}

func TestConcurrencyEffect_ContextCancelPropagatesToChildren(t *testing.T) {
	ctx, endOfLogHandler := log.WithTestEffectHandler(context.Background())
	defer endOfLogHandler()

	ctx, cancel := context.WithCancel(ctx)

	ctx, endOfConcurrencyHandler := concurrency.WithEffectHandler(ctx, 10)
	defer endOfConcurrencyHandler()

	blocked := make(chan struct{})
	unblocked := make(chan struct{})

	concurrency.Effect(ctx, func(ctx context.Context) {
		close(blocked)
		<-ctx.Done()
		close(unblocked)
	})

	<-blocked
	cancel()

	select {
	case <-unblocked:
	case <-time.After(time.Second):
		t.Fatal("expected child to unblock on context cancel")
	}
}

func TestConcurrencyEffect_HandlesPanicsGracefully(t *testing.T) {
	ctx, endOfLogHandler := log.WithTestEffectHandler(context.Background())
	defer endOfLogHandler()

	ctx, endOfConcurrencyHandler := concurrency.WithEffectHandler(ctx, 10)
	defer endOfConcurrencyHandler()

	done := make(chan struct{})
	concurrency.Effect(ctx,
		func(ctx context.Context) {
			panic("child boom")
		},
		func(ctx context.Context) {
			close(done)
		},
	)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected non-panicking goroutine to finish")
	}
}

func TestConcurrencyEffect_TeardownCancelsAndJoinsChildren(t *testing.T) {
	ctx, endOfLogHandler := log.WithTestEffectHandler(context.Background())
	defer endOfLogHandler()

	ctx, endOfConcurrencyHandler := concurrency.WithEffectHandler(ctx, 10)

	started := make(chan struct{}, 2)
	var finished sync.WaitGroup
	finished.Add(2)
	longRunning := func(ctx context.Context) {
		defer finished.Done()
		started <- struct{}{}
		<-ctx.Done()
	}
	concurrency.Effect(ctx, longRunning, longRunning)
	<-started
	<-started

	returned := make(chan struct{})
	go func() {
		endOfConcurrencyHandler()
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("teardown did not cancel and join children")
	}
	finished.Wait()

	assert.False(t, concurrency.Effect(ctx, func(context.Context) {}))
}
