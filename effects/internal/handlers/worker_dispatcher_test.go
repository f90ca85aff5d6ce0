package handlers_test

import (
	"context"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/on-the-ground/composable_ive_go/effects/internal/handlers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dummyMessage implements Partitionable for testing partitioned dispatching.
type dummyMessage struct {
	id    int
	group string
}

func (d dummyMessage) PartitionKey() string {
	return d.group
}

func TestSingleQueue_DispatchesToHandler(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		mu     sync.Mutex
		called []int
		wg     sync.WaitGroup
	)
	wg.Add(2)

	dispatcher := handlers.NewSingleQueue(ctx, 10, func(_ context.Context, msg int) {
		defer wg.Done()
		mu.Lock()
		called = append(called, msg)
		mu.Unlock()
	})

	require.True(t, dispatcher.Dispatch(ctx, 1))
	require.True(t, dispatcher.Dispatch(ctx, 2))
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{1, 2}, called)
}

func TestPartitionedQueue_DispatchesEveryGroup(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		mu        sync.Mutex
		workerHit = make(map[string][]int)
		wg        sync.WaitGroup
	)
	wg.Add(4)

	dispatcher := handlers.NewPartitionedQueue(ctx, 10, 10, func(_ context.Context, msg dummyMessage) {
		defer wg.Done()
		mu.Lock()
		workerHit[msg.group] = append(workerHit[msg.group], msg.id)
		mu.Unlock()
	})

	for _, msg := range []dummyMessage{{1, "groupA"}, {2, "groupA"}, {3, "groupB"}, {4, "groupB"}} {
		require.True(t, dispatcher.Dispatch(ctx, msg))
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, workerHit["groupA"], 2)
	assert.Len(t, workerHit["groupB"], 2)
}

func TestPartitionedQueue_OrderIsPreservedForSamePartitionKey(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		mu        sync.Mutex
		processed []int
		wg        sync.WaitGroup
	)
	wg.Add(5)

	dispatcher := handlers.NewPartitionedQueue(ctx, 2, 10, func(_ context.Context, msg dummyMessage) {
		defer wg.Done()
		mu.Lock()
		processed = append(processed, msg.id)
		mu.Unlock()
	})

	for i := 0; i < 5; i++ {
		dispatcher.Dispatch(ctx, dummyMessage{id: i, group: "sameKey"})
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.True(t, slices.IsSorted(processed), "expected in-order processing, got %v", processed)
}

func TestWorkerDispatcher_RejectsAfterShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	called := make(chan int, 1)
	dispatcher := handlers.NewSingleQueue(ctx, 1, func(_ context.Context, msg int) {
		called <- msg
	})

	require.True(t, dispatcher.Dispatch(context.Background(), 7))
	select {
	case got := <-called:
		assert.Equal(t, 7, got)
	case <-time.After(time.Second):
		t.Fatal("handler was not called before shutdown")
	}

	cancel()
	<-dispatcher.Done()

	assert.False(t, dispatcher.Dispatch(context.Background(), 8))
}

func TestSingleQueue_BlocksWhenBufferIsFull(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	blockUntil := make(chan struct{})
	entered := make(chan struct{}, 1)
	dispatcher := handlers.NewSingleQueue(ctx, 1, func(_ context.Context, _ int) {
		entered <- struct{}{}
		<-blockUntil
	})

	dispatcher.Dispatch(ctx, 1) // handler consumes this and blocks
	select {
	case <-entered:
	case <-time.After(time.Second):
		t.Fatal("handler did not start")
	}

	dispatcher.Dispatch(ctx, 2) // buffer fills

	blocked := make(chan struct{})
	go func() {
		dispatcher.Dispatch(ctx, 3)
		close(blocked)
	}()

	select {
	case <-blocked:
		t.Fatal("expected third message to block")
	case <-time.After(200 * time.Millisecond):
	}

	close(blockUntil)

	select {
	case <-blocked:
	case <-time.After(time.Second):
		t.Fatal("third message never unblocked")
	}
}
