// Package navigationitem is a stateless row that shows a label next to a globe.
package navigationitem

import (
	"fmt"
	"io"

	"github.com/on-the-ground/composable_ive_go/store"
)

type State struct{}

// Action has no variants.
type Action interface {
	isNavigationItemAction()
}

func Reducer() store.Reducer[State, Action] {
	return store.Empty[State, Action]()
}

type View struct {
	Text  string
	Store store.StoreOf[State, Action]
}

func NewView(text string, s store.StoreOf[State, Action]) View {
	return View{Text: text, Store: s}
}

func (v View) Render(w io.Writer) error {
	_, err := fmt.Fprintf(w, "(globe) %s\n", v.Text)
	return err
}
