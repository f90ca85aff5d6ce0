// Package effects is the runtime underneath the store and dependencies packages.
//
// Side effects such as logging, spawning goroutines, and looking up bound values
// are delegated to handlers that live in a context.Context. A handler is installed
// with one of the WithXxxEffectHandler functions, which returns the derived context
// and a teardown:
//
//	ctx, end := log.WithZapEffectHandler(ctx, 16, logger)
//	defer end()
//
// Code running under that context then performs the effect without knowing who
// handles it:
//
//	log.Effect(ctx, log.LogInfo, "counter reset", nil)
//
// Two handler shapes exist:
//   - resumable handlers answer every payload with a ResumableResult, and
//   - fire-and-forget handlers only accept payloads.
//
// Both run their handle function on dedicated worker goroutines. A single-queue
// handler processes payloads strictly in order, which is what a store relies on to
// reduce actions one at a time. Partitioned handlers hash Partitionable payloads
// over several workers so that payloads sharing a key stay ordered.
//
// Performing an effect with no handler in scope panics with ErrNoEffectHandler.
package effects
