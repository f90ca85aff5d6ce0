package counter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/on-the-ground/composable_ive_go/features/sheet"
	"github.com/on-the-ground/composable_ive_go/store"
)

// ErrUnknownCommand is returned by Handle for input that maps to no action.
var ErrUnknownCommand = errors.New("unknown command")

// View renders a counter store as text and turns typed commands into actions.
type View struct {
	Store store.StoreOf[State, Action]
}

func (v View) Render(w io.Writer) error {
	state := v.Store.State()

	var b strings.Builder
	if state.UUID.Valid {
		fmt.Fprintf(&b, "ID: %s\n", strings.ToUpper(state.UUID.UUID.String()))
	}
	fmt.Fprintf(&b, "Count: %d\n", state.Count)
	if state.Optional != nil {
		fmt.Fprintf(&b, "Text: %s\n", *state.Optional)
	}
	b.WriteString("[-] [+] [reset] [id]\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}
	if state.Sheet != nil {
		return sheet.Render(w)
	}
	return nil
}

// Handle sends the action matching command:
// "+", "-", "reset", "id", "sheet", "dismiss" or "set <text>" ("set" alone clears the text).
func (v View) Handle(ctx context.Context, command string) error {
	action, err := parseCommand(command)
	if err != nil {
		return err
	}
	return v.Store.Send(ctx, action)
}

func parseCommand(command string) (Action, error) {
	command = strings.TrimSpace(command)
	switch command {
	case "+":
		return Increment{}, nil
	case "-":
		return Decrement{}, nil
	case "reset":
		return Reset{}, nil
	case "id":
		return GenerateNewID{}, nil
	case "sheet":
		return PresentSheet(), nil
	case "dismiss":
		return DismissSheet(), nil
	case "set":
		return SetOptional(nil), nil
	}
	if text, ok := strings.CutPrefix(command, "set "); ok {
		return SetOptional(&text), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, command)
}
