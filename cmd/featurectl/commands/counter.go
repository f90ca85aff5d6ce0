package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/on-the-ground/composable_ive_go/effects/log"
	"github.com/on-the-ground/composable_ive_go/features/counter"
	"github.com/on-the-ground/composable_ive_go/store"
	"github.com/spf13/cobra"
)

func counterCmd(a *app) *cobra.Command {
	var initial int
	cmd := &cobra.Command{
		Use:   "counter",
		Short: "Run the counter: +, -, reset, id, sheet, dismiss, set <text>, quit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, closeStore := store.New(a.ctx, counter.State{Count: initial}, counter.Reducer())
			defer closeStore()

			obsCtx, stopObserving := context.WithCancel(a.ctx)
			defer stopObserving()
			go logDelegates(obsCtx, s.Observe(obsCtx))

			view := counter.View{Store: s}
			out := cmd.OutOrStdout()
			if err := view.Render(out); err != nil {
				return err
			}

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}
				if line == "quit" {
					break
				}
				if err := view.Handle(a.ctx, line); err != nil {
					if errors.Is(err, counter.ErrUnknownCommand) {
						fmt.Fprintln(cmd.ErrOrStderr(), err)
						continue
					}
					return err
				}
				if err := view.Render(out); err != nil {
					return err
				}
			}
			return scanner.Err()
		},
	}
	cmd.Flags().IntVar(&initial, "count", 0, "initial count")
	return cmd
}

func logDelegates(ctx context.Context, snapshots <-chan store.Snapshot[counter.State, counter.Action]) {
	for snap := range snapshots {
		if d, ok := snap.Action.(counter.Delegate); ok {
			log.EffectOrNop(ctx, log.LogInfo, "counter delegate", map[string]interface{}{
				"event": int(d.Event),
				"count": snap.State.Count,
				"at":    snap.TimeSpan.End(),
			})
		}
	}
}
