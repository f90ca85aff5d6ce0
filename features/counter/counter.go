// Package counter is a counter feature with an optional id, a bound text field and a sheet.
package counter

import (
	"context"

	"github.com/google/uuid"
	"github.com/on-the-ground/composable_ive_go/dependencies"
	"github.com/on-the-ground/composable_ive_go/features/sheet"
	"github.com/on-the-ground/composable_ive_go/store"
)

type State struct {
	Count    int
	UUID     uuid.NullUUID
	Optional *string
	Sheet    *sheet.State
}

// Action is implemented by every counter action.
type Action interface {
	isCounterAction()
}

type (
	Increment     struct{}
	Decrement     struct{}
	Reset         struct{}
	GenerateNewID struct{}

	// Delegate carries events for the parent feature.
	Delegate struct {
		Event DelegateEvent
	}

	// Binding writes a bound field of State.
	Binding struct {
		store.BindingAction[State]
	}

	// Sheet drives the presented sheet.
	Sheet struct {
		store.PresentationAction[sheet.Action]
	}
)

type DelegateEvent int

const (
	DelegateReset DelegateEvent = iota + 1
)

func (Increment) isCounterAction()     {}
func (Decrement) isCounterAction()     {}
func (Reset) isCounterAction()         {}
func (GenerateNewID) isCounterAction() {}
func (Delegate) isCounterAction()      {}
func (Binding) isCounterAction()       {}
func (Sheet) isCounterAction()         {}

func (b Binding) Equals(other any) bool {
	o, ok := other.(Binding)
	return ok && b.BindingAction.Equals(o.BindingAction)
}

// SetOptional binds the optional text field.
func SetOptional(v *string) Binding {
	return Binding{store.Set("optional", func(s *State) **string { return &s.Optional }, v)}
}

// SetSheet binds the sheet; a non-nil value presents it.
func SetSheet(v *sheet.State) Binding {
	return Binding{store.Set("sheet", func(s *State) **sheet.State { return &s.Sheet }, v)}
}

// PresentSheet is the binding a view sends to show the sheet.
func PresentSheet() Binding {
	return SetSheet(&sheet.State{})
}

// DismissSheet is the action a view sends to hide the sheet.
func DismissSheet() Sheet {
	return Sheet{store.Dismiss[sheet.Action]()}
}

// Reducer builds the counter reducer.
func Reducer() store.Reducer[State, Action] {
	return store.Combine(
		store.BindingReducer(func(a Action) (store.BindingAction[State], bool) {
			b, ok := a.(Binding)
			return b.BindingAction, ok
		}),
		store.Empty[State, Action](),
		store.IfLet[State, Action, sheet.State, sheet.Action](
			store.ReducerFunc[State, Action](reduce),
			func(s *State) **sheet.State { return &s.Sheet },
			func(a Action) (store.PresentationAction[sheet.Action], bool) {
				s, ok := a.(Sheet)
				return s.PresentationAction, ok
			},
			func(pa store.PresentationAction[sheet.Action]) Action {
				return Sheet{pa}
			},
			sheet.Reducer(),
		),
	)
}

func reduce(ctx context.Context, state *State, action Action) store.Effect[Action] {
	switch action.(type) {
	case Increment:
		state.Count++
	case Decrement:
		state.Count--
	case Reset:
		state.Count = 0
		return store.Send[Action](Delegate{Event: DelegateReset})
	case GenerateNewID:
		state.UUID = uuid.NullUUID{UUID: dependencies.NewUUID(ctx), Valid: true}
	case Binding, Delegate, Sheet:
	}
	return store.None[Action]()
}
