package concurrency

import (
	"context"
	"sync"

	"github.com/on-the-ground/composable_ive_go/effects"
	effectmodel "github.com/on-the-ground/composable_ive_go/effects/internal/model"
	"github.com/on-the-ground/composable_ive_go/effects/log"
)

// WithEffectHandler installs a fire-and-forget concurrency effect handler.
//
// It allows `Effect(ctx, fns...)` to spawn goroutines under a managed scope.
//
//   - Children get their own cancellable context that keeps the values of ctx.
//   - Cancelling ctx cancels every child.
//   - The returned teardown cancels the children still running and waits for all of them.
//   - Worker count is fixed to 1 (non-partitioned).
func WithEffectHandler(
	ctx context.Context,
	bufferSize int,
) (context.Context, func() context.Context) {
	sv := &supervisor{
		childrenCancels: make(map[uint64]context.CancelFunc),
		doneCh:          make(chan struct{}),
	}
	sv.watchParentCancel(ctx)

	return effects.WithFireAndForgetEffectHandler(
		ctx,
		bufferSize,
		effectmodel.EffectConcurrency,
		sv.spawnConcurrentChildren,
		func() {
			sv.cancelChildren()
			sv.waitChildren(ctx)
			close(sv.doneCh)
		},
	)
}

// Effect spawns each function in its own supervised goroutine.
// It reports false when the concurrency handler no longer accepts work.
// Panics if no concurrency handler is registered in ctx.
func Effect(ctx context.Context, fns ...func(context.Context)) bool {
	return effects.FireAndForgetEffect[Payload](ctx, effectmodel.EffectConcurrency, fns)
}

type Payload []func(context.Context)

// supervisor tracks the children spawned by one concurrency handler.
type supervisor struct {
	wg              sync.WaitGroup
	mu              sync.Mutex
	childrenCancels map[uint64]context.CancelFunc
	nextChildId     uint64
	cancelled       bool
	doneCh          chan struct{}
}

// watchParentCancel cancels every child once the parent context is done.
func (s *supervisor) watchParentCancel(parentContext context.Context) {
	ready := make(chan struct{})
	go func() {
		close(ready)
		select {
		case <-parentContext.Done():
			log.EffectOrNop(parentContext, log.LogInfo, "context cancelled, cancelling child routines", nil)
			s.cancelChildren()
		case <-s.doneCh:
		}
	}()
	<-ready
}

// trackCancel keeps cancelFn until the returned release is called by the finished child.
func (s *supervisor) trackCancel(cancelFn context.CancelFunc) (release func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancelled {
		cancelFn()
		return func() {}
	}
	id := s.nextChildId
	s.nextChildId++
	s.childrenCancels[id] = cancelFn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.childrenCancels, id)
	}
}

func (s *supervisor) cancelChildren() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelled = true
	for _, cancelFn := range s.childrenCancels {
		cancelFn()
	}
}

// spawnConcurrentChildren starts each function in its own goroutine with its own context
// and returns once all of them are running. Panics are recovered and logged per child.
func (s *supervisor) spawnConcurrentChildren(
	parentContext context.Context,
	functions Payload,
) {
	ready := sync.WaitGroup{}

	for _, fn := range functions {
		childCtx, cancel := context.WithCancel(context.WithoutCancel(parentContext))
		release := s.trackCancel(cancel)
		s.wg.Add(1)
		ready.Add(1)
		go func(f func(context.Context), ctx context.Context) {
			defer s.wg.Done()
			defer release()
			defer cancel()
			defer func() {
				if r := recover(); r != nil {
					log.EffectOrNop(parentContext, log.LogError, "panic in child routine", map[string]interface{}{
						"error": r,
					})
				}
			}()
			ready.Done()
			f(ctx)
		}(fn, childCtx)
	}

	ready.Wait()
}

func (s *supervisor) waitChildren(ctx context.Context) {
	log.EffectOrNop(ctx, log.LogDebug, "waiting for all routines to finish", nil)
	s.wg.Wait()
	log.EffectOrNop(ctx, log.LogDebug, "all routines finished", nil)
}

// HasEffectHandler reports whether ctx carries a concurrency handler.
func HasEffectHandler(ctx context.Context) bool {
	return effects.HasEffectHandler(ctx, effectmodel.EffectConcurrency)
}
