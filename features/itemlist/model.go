// Package itemlist is a list feature backed by an observable model instead of a reducer.
package itemlist

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/on-the-ground/composable_ive_go/dependencies"
	"github.com/on-the-ground/composable_ive_go/effects/log"
)

// FeatureModel holds the items and adds new ones using the dependencies in the caller's context.
type FeatureModel struct {
	mu          sync.Mutex
	items       []string
	lastAddedAt time.Time
	changed     chan struct{}
}

func NewFeatureModel(items ...string) *FeatureModel {
	return &FeatureModel{
		items:   append([]string(nil), items...),
		changed: make(chan struct{}, 1),
	}
}

func (m *FeatureModel) Items() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.items...)
}

// LastAddedAt is when AddItemLater last completed, per the Date dependency.
func (m *FeatureModel) LastAddedAt() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastAddedAt
}

// Changed is signalled after items change. Signals coalesce.
func (m *FeatureModel) Changed() <-chan struct{} {
	return m.changed
}

// AddItem consults FeatureService, ignoring its answer and error, and appends a new item.
func (m *FeatureModel) AddItem(ctx context.Context) {
	m.append(m.newItem(ctx), time.Time{})
}

// AddItemLater waits delay on the continuous clock, then adds an item on the main queue.
func (m *FeatureModel) AddItemLater(ctx context.Context, delay time.Duration) {
	dependencies.Get(ctx, dependencies.MainQueue).Schedule(ctx, func(ctx context.Context) {
		if err := dependencies.Get(ctx, dependencies.ContinuousClock).Sleep(ctx, delay); err != nil {
			log.EffectOrNop(ctx, log.LogDebug, "delayed item cancelled", map[string]interface{}{
				"error": err.Error(),
			})
			return
		}
		m.append(m.newItem(ctx), dependencies.Now(ctx))
	})
}

func (m *FeatureModel) newItem(ctx context.Context) string {
	_, _ = dependencies.Get(ctx, Service).Test(1)
	return "Item " + strings.ToUpper(dependencies.NewUUID(ctx).String())
}

// append adds item; a non-zero addedAt also becomes LastAddedAt.
func (m *FeatureModel) append(item string, addedAt time.Time) {
	m.mu.Lock()
	m.items = append(m.items, item)
	if !addedAt.IsZero() {
		m.lastAddedAt = addedAt
	}
	m.mu.Unlock()
	m.notify()
}

func (m *FeatureModel) notify() {
	select {
	case m.changed <- struct{}{}:
	default:
	}
}
