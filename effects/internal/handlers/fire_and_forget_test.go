package handlers_test

import (
	"context"
	"testing"
	"time"

	"github.com/on-the-ground/composable_ive_go/effects/internal/handlers"
	effectmodel "github.com/on-the-ground/composable_ive_go/effects/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestFireAndForgetHandler_BasicExecution(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan string, 1)
	handler := handlers.NewFireAndForgetHandler(ctx, 10, func(_ context.Context, msg string) {
		done <- msg
	}, func() {})
	defer handler.Close()

	assert.True(t, handler.FireAndForgetEffect(ctx, "hello"))

	select {
	case got := <-done:
		assert.Equal(t, "hello", got)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for handler")
	}
}

func TestFireAndForgetHandler_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := make(chan struct{}, 1)
	handler := handlers.NewFireAndForgetHandler(ctx, 10, func(context.Context, string) {
		called <- struct{}{}
	}, func() {})
	defer handler.Close()

	assert.False(t, handler.FireAndForgetEffect(ctx, "should-not-send"))
	select {
	case <-called:
		t.Fatal("handler should not have been called")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestFireAndForgetHandler_SurvivesPanics(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan string, 1)
	handler := handlers.NewPartitionableFireAndForgetHandler(
		ctx,
		effectmodel.NewEffectScopeConfig(2, 1),
		func(_ context.Context, msg dummyMessage) {
			if msg.id == 0 {
				panic("boom")
			}
			done <- msg.group
		},
		func() {},
	)
	defer handler.Close()

	handler.FireAndForgetEffect(ctx, dummyMessage{id: 0, group: "a"})
	handler.FireAndForgetEffect(ctx, dummyMessage{id: 1, group: "a"})

	select {
	case got := <-done:
		assert.Equal(t, "a", got)
	case <-time.After(time.Second):
		t.Fatal("worker did not survive the panic")
	}
}

func TestFireAndForgetHandler_TeardownRunsOnce(t *testing.T) {
	calls := 0
	handler := handlers.NewFireAndForgetHandler(context.Background(), 1, func(context.Context, int) {}, func() {
		calls++
	})

	handler.Close()
	handler.Close()

	assert.Equal(t, 1, calls)
	<-handler.Done()
}
