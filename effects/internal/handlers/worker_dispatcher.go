package handlers

import (
	"context"
	"sync"

	effectmodel "github.com/on-the-ground/composable_ive_go/effects/internal/model"
)

// WorkerDispatcher hands messages to the worker goroutine that owns them.
type WorkerDispatcher[T any] interface {
	// Dispatch enqueues msg, blocking while the target queue is full.
	// It reports false when ctx is done or the workers have stopped.
	Dispatch(ctx context.Context, msg T) bool
	// Done is closed once the workers stop accepting messages.
	Done() <-chan struct{}
}

type queues[T any] struct {
	effectChs []chan T
	pick      func(msg T, numChs int) int
	done      <-chan struct{}
}

func (q queues[T]) Dispatch(ctx context.Context, msg T) bool {
	select {
	case <-q.done:
		return false
	default:
	}

	select {
	case <-ctx.Done():
		return false
	case <-q.done:
		return false
	case q.effectChs[q.pick(msg, len(q.effectChs))] <- msg:
		return true
	}
}

func (q queues[T]) Done() <-chan struct{} {
	return q.done
}

// startWorkers launches one goroutine per queue and returns once all of them are running.
// Workers stop when ctx is done; messages still buffered at that point are dropped.
func startWorkers[T any](
	ctx context.Context,
	numWorkers, bufferSize int,
	handleFn func(context.Context, T),
) []chan T {
	channels := make([]chan T, numWorkers)
	ready := sync.WaitGroup{}
	for i := range channels {
		ready.Add(1)
		ch := make(chan T, bufferSize)
		go func(ch chan T) {
			ready.Done()
			for {
				select {
				case msg := <-ch:
					handleFn(ctx, msg)
				case <-ctx.Done():
					return
				}
			}
		}(ch)
		channels[i] = ch
	}
	ready.Wait()
	return channels
}

// NewSingleQueue serialises every message through one worker.
func NewSingleQueue[T any](
	ctx context.Context,
	bufferSize int,
	handleFn func(context.Context, T),
) WorkerDispatcher[T] {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return queues[T]{
		effectChs: startWorkers(ctx, 1, bufferSize, handleFn),
		pick:      func(T, int) int { return 0 },
		done:      ctx.Done(),
	}
}

// NewPartitionedQueue spreads messages over numWorkers queues by PartitionKey.
// Messages sharing a key are handled in send order.
func NewPartitionedQueue[T effectmodel.Partitionable](
	ctx context.Context,
	numWorkers, bufferSize int,
	handleFn func(context.Context, T),
) WorkerDispatcher[T] {
	config := effectmodel.NewEffectScopeConfig(bufferSize, numWorkers)
	return queues[T]{
		effectChs: startWorkers(ctx, config.NumWorkers, config.BufferSize, handleFn),
		pick: func(msg T, numChs int) int {
			return getIndexByHash(msg, numChs)
		},
		done: ctx.Done(),
	}
}
