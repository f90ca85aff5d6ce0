package store

import (
	"context"

	"github.com/on-the-ground/composable_ive_go/effects/log"
)

// PresentationAction is either a dismissal of optional child state or an action for it.
type PresentationAction[CA any] struct {
	dismiss   bool
	presented bool
	action    CA
}

func Dismiss[CA any]() PresentationAction[CA] {
	return PresentationAction[CA]{dismiss: true}
}

func Presented[CA any](action CA) PresentationAction[CA] {
	return PresentationAction[CA]{presented: true, action: action}
}

func (p PresentationAction[CA]) IsDismiss() bool {
	return p.dismiss
}

// Action returns the child action, if p is not a dismissal.
func (p PresentationAction[CA]) Action() (CA, bool) {
	return p.action, p.presented
}

type presentationId struct{ _ byte }

// IfLet runs child on the optional state reached by lens, then runs parent.
//
// Child actions arriving while the state is nil are ignored.
// A dismissal runs parent first, then clears the state and cancels the child's effects.
func IfLet[S any, A any, CS any, CA any](
	parent Reducer[S, A],
	lens func(*S) **CS,
	extract func(A) (PresentationAction[CA], bool),
	embed func(PresentationAction[CA]) A,
	child Reducer[CS, CA],
) Reducer[S, A] {
	id := &presentationId{}
	return ReducerFunc[S, A](func(ctx context.Context, state *S, action A) Effect[A] {
		pa, ok := extract(action)
		if !ok {
			return parent.Reduce(ctx, state, action)
		}

		childEff := None[A]()
		if ca, presented := pa.Action(); presented {
			slot := lens(state)
			if *slot == nil {
				log.EffectOrNop(ctx, log.LogWarn, "action sent to dismissed child state", nil)
			} else {
				next := **slot
				eff := child.Reduce(ctx, &next, ca)
				*slot = &next
				childEff = MapEffect(eff, func(a CA) A {
					return embed(Presented(a))
				}).Cancellable(id, false)
			}
		}

		parentEff := parent.Reduce(ctx, state, action)
		if pa.IsDismiss() {
			*lens(state) = nil
			return Merge(childEff, parentEff, Cancel[A](id))
		}
		return Merge(childEff, parentEff)
	})
}
