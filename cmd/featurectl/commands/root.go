package commands

import (
	"context"

	"github.com/on-the-ground/composable_ive_go/effects"
	"github.com/on-the-ground/composable_ive_go/effects/binding"
	"github.com/on-the-ground/composable_ive_go/effects/concurrency"
	"github.com/on-the-ground/composable_ive_go/effects/configkeys"
	"github.com/on-the-ground/composable_ive_go/effects/log"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type app struct {
	debug  bool
	buffer int

	ctx       context.Context
	teardowns []func() context.Context
}

func Execute() error {
	root, a := newRootCmd()
	defer a.close()
	return root.Execute()
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{ctx: context.Background()}

	root := &cobra.Command{
		Use:          "featurectl",
		Short:        "Drive the sample features from a terminal",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd.Context())
		},
	}

	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "log at debug level to stderr")
	root.PersistentFlags().IntVar(&a.buffer, "buffer", 16, "queue size of stores and effect handlers")

	root.AddCommand(counterCmd(a), itemsCmd(a), navCmd(a))
	return root, a
}

func (a *app) open(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}

	logger := zap.NewNop()
	if a.debug {
		var err error
		logger, err = zap.NewDevelopment()
		if err != nil {
			return err
		}
		zap.ReplaceGlobals(logger)
	}

	ctx, endOfLog := log.WithZapEffectHandler(parent, a.buffer, logger)
	ctx, endOfConcurrency := concurrency.WithEffectHandler(ctx, a.buffer)
	ctx, endOfConfig := binding.WithEffectHandler(ctx, effects.NewEffectScopeConfig(a.buffer, 1), map[string]any{
		configkeys.ConfigStoreActionBufferSize:   a.buffer,
		configkeys.ConfigStoreEffectBufferSize:   a.buffer,
		configkeys.ConfigStoreObserverBufferSize: a.buffer,
	})

	a.ctx = ctx
	a.teardowns = append(a.teardowns, endOfLog, endOfConcurrency, endOfConfig)
	return nil
}

// close runs the teardowns in reverse order of installation.
func (a *app) close() {
	for i := len(a.teardowns) - 1; i >= 0; i-- {
		a.teardowns[i]()
	}
	a.teardowns = nil
}
