package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/on-the-ground/composable_ive_go/effects"
	"github.com/on-the-ground/composable_ive_go/effects/concurrency"
	"github.com/on-the-ground/composable_ive_go/effects/log"
)

// ErrStoreClosed is returned by Send once the store stopped reducing actions.
var ErrStoreClosed = errors.New("store closed")

// StoreOf is the read-and-send surface views bind to.
type StoreOf[S any, A any] interface {
	State() S
	Send(ctx context.Context, action A) error
}

var _ StoreOf[int, int] = (*Store[int, int])(nil)

// Snapshot is the state right after reducing Action, stamped with the time it was reduced.
type Snapshot[S any, A any] struct {
	State    S
	Action   A
	TimeSpan effects.TimeSpan
}

// Store runs a reducer over its state.
//
// Actions are reduced one at a time on a single-queue resumable effect handler.
// Run effects are spawned on a concurrency effect handler owned by the store.
type Store[S any, A any] struct {
	id      string
	enum    effects.EffectEnum
	reducer Reducer[S, A]
	cfg     config
	ctx     context.Context

	mu    sync.RWMutex
	state S

	observersMu sync.Mutex
	observers   map[int]chan Snapshot[S, A]
	nextObsId   int
	closed      bool

	cancellables *Cancellables

	closeOnce sync.Once
	closeFn   func()
	done      chan struct{}
}

// New starts a store and returns it together with its Close function.
//
// Reducers and effects see ctx values, so dependency overrides opened on ctx apply to them.
func New[S any, A any](
	ctx context.Context,
	initial S,
	reducer Reducer[S, A],
	opts ...Option,
) (*Store[S, A], func()) {
	cfg := resolveConfig(ctx, opts)
	id := uuid.NewString()
	s := &Store[S, A]{
		id:           id,
		enum:         effects.EffectEnum("composable_ive_go_store_" + id),
		reducer:      reducer,
		cfg:          cfg,
		state:        initial,
		observers:    make(map[int]chan Snapshot[S, A]),
		cancellables: NewCancellables(),
		done:         make(chan struct{}),
	}

	ctx, endOfConcurrency := concurrency.WithEffectHandler(ctx, cfg.effectBufferSize)
	ctx, endOfReducer := effects.WithResumableEffectHandler(ctx, cfg.actionBufferSize, s.enum, s.handle)
	s.ctx = ctx
	s.closeFn = func() {
		close(s.done)
		endOfReducer()
		endOfConcurrency()
		s.closeObservers()
		log.EffectOrNop(ctx, log.LogDebug, "store closed", map[string]interface{}{"store": id})
	}
	return s, s.Close
}

// Send enqueues action and waits until it, and every action its effect sends synchronously,
// has been reduced. It does not wait for Run effects.
//
// Must not be called from a reducer of the same store.
func (s *Store[S, A]) Send(ctx context.Context, action A) error {
	select {
	case <-s.done:
		return ErrStoreClosed
	default:
	}

	sendCtx, cancel := context.WithCancel(s.ctx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	_, err := effects.AwaitResumableEffect[A, struct{}](sendCtx, s.enum, action)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, effects.ErrHandlerClosed):
		return fmt.Errorf("%w: %v", ErrStoreClosed, err)
	case ctx.Err() != nil:
		return ctx.Err()
	default:
		return err
	}
}

// State returns a copy of the current state.
func (s *Store[S, A]) State() S {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Observe streams a snapshot after every reduced action until ctx is done or the store closes.
// A snapshot is dropped when the observer is too slow to keep its buffer from filling.
func (s *Store[S, A]) Observe(ctx context.Context) <-chan Snapshot[S, A] {
	ch := make(chan Snapshot[S, A], s.cfg.observerBufferSize)

	s.observersMu.Lock()
	if s.closed {
		s.observersMu.Unlock()
		close(ch)
		return ch
	}
	obsId := s.nextObsId
	s.nextObsId++
	s.observers[obsId] = ch
	s.observersMu.Unlock()

	context.AfterFunc(ctx, func() {
		s.observersMu.Lock()
		defer s.observersMu.Unlock()
		if c, ok := s.observers[obsId]; ok {
			delete(s.observers, obsId)
			close(c)
		}
	})
	return ch
}

// Close stops reducing, cancels running effects and waits for them, then closes observers.
func (s *Store[S, A]) Close() {
	s.closeOnce.Do(s.closeFn)
}

func (s *Store[S, A]) handle(ctx context.Context, action A) (struct{}, error) {
	queue := []A{action}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		queue = append(queue, s.reduce(ctx, next)...)
	}
	return struct{}{}, nil
}

// reduce applies one action and returns the actions its effect sends synchronously.
func (s *Store[S, A]) reduce(ctx context.Context, action A) []A {
	started := effects.Now()
	// only this worker writes state, so reading it without the lock is safe
	state := s.state
	eff := s.reducer.Reduce(ctx, &state, action)

	s.mu.Lock()
	s.state = state
	s.mu.Unlock()

	log.EffectOrNop(ctx, log.LogDebug, "reduced action", map[string]interface{}{
		"store":  s.id,
		"action": fmt.Sprintf("%T", action),
	})
	s.publish(Snapshot[S, A]{
		State:    state,
		Action:   action,
		TimeSpan: effects.NewTimeSpan(started.Start(), effects.Now().End()),
	})

	for _, id := range eff.cancels {
		s.cancellables.Cancel(id)
	}
	for _, op := range eff.operations {
		s.spawn(ctx, op)
	}
	return eff.actions
}

func (s *Store[S, A]) publish(snapshot Snapshot[S, A]) {
	s.observersMu.Lock()
	defer s.observersMu.Unlock()
	for _, ch := range s.observers {
		select {
		case ch <- snapshot:
		default:
			log.EffectOrNop(s.ctx, log.LogWarn, "observer is full, dropping snapshot", map[string]interface{}{
				"store": s.id,
			})
		}
	}
}

func (s *Store[S, A]) closeObservers() {
	s.observersMu.Lock()
	defer s.observersMu.Unlock()
	s.closed = true
	for obsId, ch := range s.observers {
		delete(s.observers, obsId)
		close(ch)
	}
}

func (s *Store[S, A]) spawn(ctx context.Context, op Operation[A]) {
	opCtx, release := op.Prepare(s.cancellables)

	ok := concurrency.Effect(ctx, func(childCtx context.Context) {
		defer release()
		op.Execute(childCtx, opCtx, func(runCtx context.Context, a A) {
			if err := s.Send(runCtx, a); err != nil {
				log.EffectOrNop(runCtx, log.LogDebug, "effect action dropped", map[string]interface{}{
					"store":  s.id,
					"action": fmt.Sprintf("%T", a),
					"error":  err.Error(),
				})
			}
		})
	})
	if !ok {
		release()
		log.EffectOrNop(ctx, log.LogWarn, "effect rejected, store is closing", map[string]interface{}{
			"store": s.id,
		})
	}
}
