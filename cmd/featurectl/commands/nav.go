package commands

import (
	"github.com/on-the-ground/composable_ive_go/features/navigationitem"
	"github.com/on-the-ground/composable_ive_go/store"
	"github.com/spf13/cobra"
)

func navCmd(a *app) *cobra.Command {
	var text string
	cmd := &cobra.Command{
		Use:   "nav",
		Short: "Print a navigation item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, closeStore := store.New(a.ctx, navigationitem.State{}, navigationitem.Reducer())
			defer closeStore()
			return navigationitem.NewView(text, s).Render(cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&text, "text", "Lorem Ipsum", "label of the item")
	return cmd
}
