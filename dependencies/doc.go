// Package dependencies is a context-scoped registry of the capabilities features depend on.
//
// Each capability is a typed Key with a live value and, optionally, test and preview
// values. Code asks for the value in effect for its context:
//
//	id := dependencies.Get(ctx, dependencies.UUID)()
//
// A scope overrides values for everything that runs under it:
//
//	ctx, end := dependencies.WithValues(ctx, func(v *dependencies.Values) {
//		dependencies.UUID.Set(v, dependencies.IncrementingUUID())
//	})
//	defer end()
//
// Scopes nest; lookups fall back to the enclosing scope and finally to the key's
// default for the scope's Context (live, test or preview).
package dependencies
