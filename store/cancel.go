package store

import (
	"context"
	"sync"
)

// Cancellables indexes the cancel functions of running operations by cancel ID.
// It is safe for concurrent use.
type Cancellables struct {
	mu      sync.Mutex
	byId    map[any]map[uint64]context.CancelFunc
	nextKey uint64
}

func NewCancellables() *Cancellables {
	return &Cancellables{byId: make(map[any]map[uint64]context.CancelFunc)}
}

// track registers cancel under id and returns the function that unregisters it.
func (c *Cancellables) track(id any, cancel context.CancelFunc) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.nextKey
	c.nextKey++
	if c.byId[id] == nil {
		c.byId[id] = make(map[uint64]context.CancelFunc)
	}
	c.byId[id][key] = cancel

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.byId[id], key)
		if len(c.byId[id]) == 0 {
			delete(c.byId, id)
		}
	}
}

// Cancel stops every operation running under id.
func (c *Cancellables) Cancel(id any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, cancel := range c.byId[id] {
		cancel()
	}
	delete(c.byId, id)
}

func (c *Cancellables) CancelAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, cancels := range c.byId {
		for _, cancel := range cancels {
			cancel()
		}
		delete(c.byId, id)
	}
}

// Prepare registers op in c before it is spawned, so a Cancel reduced right after reaches it.
// The returned context is cancelled by c.Cancel(id); release must be called once op ends.
func (op Operation[A]) Prepare(c *Cancellables) (opCtx context.Context, release func()) {
	if op.cancelID != nil && op.cancelInFlight {
		c.Cancel(op.cancelID)
	}
	opCtx, cancelOp := context.WithCancel(context.Background())
	if op.cancelID == nil {
		return opCtx, cancelOp
	}
	untrack := c.track(op.cancelID, cancelOp)
	return opCtx, func() {
		cancelOp()
		untrack()
	}
}

// Execute runs op on ctx until it returns or opCtx is cancelled.
// Sends after cancellation are dropped.
func (op Operation[A]) Execute(ctx, opCtx context.Context, send func(context.Context, A)) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(opCtx, cancel)
	defer stop()

	op.run(runCtx, func(a A) {
		if runCtx.Err() != nil {
			return
		}
		send(runCtx, a)
	})
}
