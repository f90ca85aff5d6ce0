package effectmodel

import "errors"

// EffectEnum identifies an effect handler inside a context.
type EffectEnum string

const (
	EffectLog         EffectEnum = "composable_ive_go_effect_enum_log"
	EffectConcurrency EffectEnum = "composable_ive_go_effect_enum_concurrency"
	EffectBinding     EffectEnum = "composable_ive_go_effect_enum_binding"
)

// ErrNoEffectHandler is raised when an effect is performed in a context that carries no handler for it.
var ErrNoEffectHandler = errors.New("no effect handler registered for this effect")

// EffectScopeConfig sizes the queues behind an effect handler.
type EffectScopeConfig struct {
	BufferSize int // default: 1
	NumWorkers int // default: 1
}

func NewEffectScopeConfig(bufferSize int, numWorkers int) EffectScopeConfig {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	if numWorkers <= 0 {
		numWorkers = 1
	}
	return EffectScopeConfig{
		BufferSize: bufferSize,
		NumWorkers: numWorkers,
	}
}

// Partitionable payloads are routed to a worker by their key, so that payloads sharing a key keep their order.
type Partitionable interface {
	PartitionKey() string
}
