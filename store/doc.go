// Package store implements a unidirectional state container.
//
// A Store owns a state value of type S and changes it only by running actions of
// type A through a Reducer. Reducers return an Effect describing follow-up work:
// actions to send right away, or operations to run concurrently that may send
// actions back into the store later.
//
// Actions are reduced one at a time, in order, on a single worker goroutine per
// store; reading the state is safe from any goroutine. Reducers receive a context
// carrying the store's dependency scope (see package dependencies) and must not
// call Send on their own store.
//
// Package storetest provides TestStore, which runs a reducer synchronously and asserts
// every state change and every action fed back by effects.
package store
