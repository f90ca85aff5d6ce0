package store

import (
	"context"

	"github.com/on-the-ground/composable_ive_go/effects/binding"
	"github.com/on-the-ground/composable_ive_go/effects/configkeys"
	"github.com/on-the-ground/composable_ive_go/shared/helper"
)

const (
	defaultActionBufferSize   = 16
	defaultEffectBufferSize   = 16
	defaultObserverBufferSize = 16
)

type config struct {
	actionBufferSize   int
	effectBufferSize   int
	observerBufferSize int
}

// Option tunes a Store. Options win over values bound in ctx under configkeys.
type Option func(*config)

func WithActionBufferSize(n int) Option {
	return func(c *config) { c.actionBufferSize = n }
}

func WithEffectBufferSize(n int) Option {
	return func(c *config) { c.effectBufferSize = n }
}

func WithObserverBufferSize(n int) Option {
	return func(c *config) { c.observerBufferSize = n }
}

func resolveConfig(ctx context.Context, opts []Option) config {
	cfg := config{
		actionBufferSize:   boundInt(ctx, configkeys.ConfigStoreActionBufferSize, defaultActionBufferSize),
		effectBufferSize:   boundInt(ctx, configkeys.ConfigStoreEffectBufferSize, defaultEffectBufferSize),
		observerBufferSize: boundInt(ctx, configkeys.ConfigStoreObserverBufferSize, defaultObserverBufferSize),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.actionBufferSize < 1 {
		cfg.actionBufferSize = 1
	}
	if cfg.effectBufferSize < 1 {
		cfg.effectBufferSize = 1
	}
	if cfg.observerBufferSize < 0 {
		cfg.observerBufferSize = 0
	}
	return cfg
}

func boundInt(ctx context.Context, key string, fallback int) int {
	raw, ok := binding.Lookup(ctx, key)
	if !ok {
		return fallback
	}
	n, err := helper.GetTypedValueOf[int](func() (any, error) { return raw, nil })
	if err != nil {
		return fallback
	}
	return n
}
