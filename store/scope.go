package store

import "context"

// ScopedStore exposes a slice of a parent store's state and sends child actions through it.
type ScopedStore[CS any, CA any] struct {
	state func() CS
	send  func(ctx context.Context, action CA) error
}

var _ StoreOf[int, int] = (*ScopedStore[int, int])(nil)

// Scope derives a child store from parent.
func Scope[S any, A any, CS any, CA any](
	parent StoreOf[S, A],
	toChild func(S) CS,
	fromChild func(CA) A,
) *ScopedStore[CS, CA] {
	return &ScopedStore[CS, CA]{
		state: func() CS { return toChild(parent.State()) },
		send: func(ctx context.Context, action CA) error {
			return parent.Send(ctx, fromChild(action))
		},
	}
}

func (ss *ScopedStore[CS, CA]) State() CS {
	return ss.state()
}

func (ss *ScopedStore[CS, CA]) Send(ctx context.Context, action CA) error {
	return ss.send(ctx, action)
}
