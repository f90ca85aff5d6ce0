package commands

import (
	"fmt"
	"time"

	"github.com/on-the-ground/composable_ive_go/features/itemlist"
	"github.com/spf13/cobra"
)

func itemsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Work with the item list",
	}
	cmd.AddCommand(itemsAddCmd(a))
	return cmd
}

func itemsAddCmd(a *app) *cobra.Command {
	var (
		count int
		delay time.Duration
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add items and print the list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 0 {
				return fmt.Errorf("count must not be negative, got %d", count)
			}
			model := itemlist.NewFeatureModel()
			for i := 0; i < count; i++ {
				if delay <= 0 {
					model.AddItem(a.ctx)
					continue
				}
				model.AddItemLater(a.ctx, delay)
				select {
				case <-model.Changed():
				case <-cmd.Context().Done():
					return cmd.Context().Err()
				}
			}
			return itemlist.FeatureView{Model: model}.Render(cmd.OutOrStdout())
		},
	}
	cmd.Flags().IntVar(&count, "count", 1, "number of items to add")
	cmd.Flags().DurationVar(&delay, "delay", 0, "wait this long before adding each item")
	return cmd
}
