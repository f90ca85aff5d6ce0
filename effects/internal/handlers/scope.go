package handlers

import (
	"sync"

	"github.com/google/uuid"
)

// effectScope ties a dispatcher to the teardown that releases it.
// Close may be called from any goroutine; only the first call runs the teardown.
type effectScope[T any] struct {
	EffectId   string
	dispatcher WorkerDispatcher[T]
	closeOnce  sync.Once
	closeFn    func()
}

func (es *effectScope[T]) Close() {
	es.closeOnce.Do(es.closeFn)
}

// Done is closed when the scope stops handling effects.
func (es *effectScope[T]) Done() <-chan struct{} {
	return es.dispatcher.Done()
}

func newEffectScope[T any](
	dispatcher WorkerDispatcher[T],
	teardown func(),
) *effectScope[T] {
	return &effectScope[T]{
		EffectId:   uuid.New().String(),
		dispatcher: dispatcher,
		closeFn:    teardown,
	}
}
