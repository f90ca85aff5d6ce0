package store_test

import (
	"context"
	"testing"

	"github.com/on-the-ground/composable_ive_go/store"
	"github.com/on-the-ground/composable_ive_go/store/storetest"
	"github.com/stretchr/testify/assert"
)

type profile struct {
	Name   string
	Nick   *string
	Editor *editor
}

type editor struct {
	Draft string
}

type editorAction struct {
	Text string
}

type profileAction interface{ isProfileAction() }

type bindProfile struct{ store.BindingAction[profile] }

type editorPresentation struct {
	store.PresentationAction[editorAction]
}

type reset struct{}

func (bindProfile) isProfileAction()        {}
func (editorPresentation) isProfileAction() {}
func (reset) isProfileAction()              {}

func (b bindProfile) Equals(other any) bool {
	o, ok := other.(bindProfile)
	return ok && b.BindingAction.Equals(o.BindingAction)
}

func setNick(nick *string) bindProfile {
	return bindProfile{store.Set("nick", func(p *profile) **string { return &p.Nick }, nick)}
}

func openEditor() bindProfile {
	return bindProfile{store.Set("editor", func(p *profile) **editor { return &p.Editor }, &editor{})}
}

func editorReducer() store.Reducer[editor, editorAction] {
	return store.ReducerFunc[editor, editorAction](func(_ context.Context, e *editor, a editorAction) store.Effect[editorAction] {
		e.Draft = a.Text
		switch a.Text {
		case "save":
			return store.Send(editorAction{Text: "saved"})
		case "autosave":
			return store.Run(func(ctx context.Context, send func(editorAction)) {
				<-ctx.Done()
				send(editorAction{Text: "saved"})
			})
		}
		return store.None[editorAction]()
	})
}

func profileReducer() store.Reducer[profile, profileAction] {
	core := store.ReducerFunc[profile, profileAction](func(_ context.Context, p *profile, a profileAction) store.Effect[profileAction] {
		switch a := a.(type) {
		case editorPresentation:
			if a.IsDismiss() && p.Editor != nil {
				p.Name = p.Editor.Draft
			}
		case reset:
			p.Name = ""
		}
		return store.None[profileAction]()
	})

	return store.Combine[profile, profileAction](
		store.BindingReducer(func(a profileAction) (store.BindingAction[profile], bool) {
			b, ok := a.(bindProfile)
			return b.BindingAction, ok
		}),
		store.IfLet[profile, profileAction, editor, editorAction](
			core,
			func(p *profile) **editor { return &p.Editor },
			func(a profileAction) (store.PresentationAction[editorAction], bool) {
				e, ok := a.(editorPresentation)
				return e.PresentationAction, ok
			},
			func(pa store.PresentationAction[editorAction]) profileAction {
				return editorPresentation{pa}
			},
			editorReducer(),
		),
	)
}

func ptr[T any](v T) *T { return &v }

func TestBindingReducer_SetsField(t *testing.T) {
	ts := storetest.NewTestStore(t, profile{Nick: ptr("before")}, profileReducer())

	ts.Send(setNick(ptr("changed")), func(p *profile) {
		p.Nick = ptr("changed")
	})
	ts.Send(setNick(nil), func(p *profile) {
		p.Nick = nil
	})
}

func TestBindingAction_Equals(t *testing.T) {
	a := store.Set("nick", func(p *profile) **string { return &p.Nick }, ptr("x"))
	b := store.Set("nick", func(p *profile) **string { return &p.Nick }, ptr("x"))
	c := store.Set("nick", func(p *profile) **string { return &p.Nick }, ptr("y"))

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
	assert.False(t, a.Equals("nick"))
}

func TestIfLet_RunsChildThenParent(t *testing.T) {
	ts := storetest.NewTestStore(t, profile{Name: "ann"}, profileReducer())

	ts.Send(openEditor(), func(p *profile) {
		p.Editor = &editor{}
	})
	ts.Send(editorPresentation{store.Presented(editorAction{Text: "bob"})}, func(p *profile) {
		p.Editor = &editor{Draft: "bob"}
	})
	ts.Send(editorPresentation{store.Dismiss[editorAction]()}, func(p *profile) {
		p.Name = "bob"
		p.Editor = nil
	})
}

func TestIfLet_MapsChildEffects(t *testing.T) {
	ts := storetest.NewTestStore(t, profile{Editor: &editor{}}, profileReducer())

	ts.Send(editorPresentation{store.Presented(editorAction{Text: "save"})}, func(p *profile) {
		p.Editor = &editor{Draft: "save"}
	})
	ts.Receive(editorPresentation{store.Presented(editorAction{Text: "saved"})}, func(p *profile) {
		p.Editor = &editor{Draft: "saved"}
	})
}

func TestIfLet_IgnoresChildActionsWhenDismissed(t *testing.T) {
	ts := storetest.NewTestStore(t, profile{Name: "ann"}, profileReducer())

	ts.Send(editorPresentation{store.Presented(editorAction{Text: "bob"})}, nil)
	ts.Send(reset{}, func(p *profile) {
		p.Name = ""
	})
}

func TestIfLet_DismissCancelsChildEffects(t *testing.T) {
	ts := storetest.NewTestStore(t, profile{Editor: &editor{}}, profileReducer())

	ts.Send(editorPresentation{store.Presented(editorAction{Text: "autosave"})}, func(p *profile) {
		p.Editor = &editor{Draft: "autosave"}
	})
	ts.Send(editorPresentation{store.Dismiss[editorAction]()}, func(p *profile) {
		p.Name = "autosave"
		p.Editor = nil
	})
	// the child effect only ends through cancellation and must not send anything
	ts.Finish()
	assert.Nil(t, ts.State().Editor)
}
