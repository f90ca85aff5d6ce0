// Package sheet is the feature presented modally over the counter.
package sheet

import (
	"context"
	"fmt"
	"io"

	"github.com/on-the-ground/composable_ive_go/store"
)

type State struct{}

// Action is the only action the sheet has.
type Action struct{}

func Reducer() store.Reducer[State, Action] {
	return store.ReducerFunc[State, Action](func(context.Context, *State, Action) store.Effect[Action] {
		return store.None[Action]()
	})
}

// Render writes the sheet's content.
func Render(w io.Writer) error {
	_, err := fmt.Fprintln(w, "Sheet")
	return err
}
