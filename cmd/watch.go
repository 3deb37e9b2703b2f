package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/tmplfill/expand"
	"github.com/gnolang/tmplfill/internal"
)

var watchCmd = &cobra.Command{
	Use:   "watch [scan-directory] [template-suffix]",
	Short: "Expand templates again whenever a template or resource changes",
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadConfig(cmd, args)
		if err != nil {
			return err
		}
		engine, err := expand.New(config)
		if err != nil {
			return err
		}

		base, cancel := commandContext(cmd)
		defer cancel()
		ctx, stop := signal.NotifyContext(base, os.Interrupt, syscall.SIGTERM)
		defer stop()

		run := func(ctx context.Context) error {
			results, err := expand.ProcessDir(ctx, logger, engine, config, expand.Options{DryRun: dryRun})
			logger.Info("Expansion finished", zap.Int("templates", len(results)), zap.Error(err))
			if perr := printResults(cmd.OutOrStdout(), results, dryRun); perr != nil {
				return perr
			}
			return err
		}

		w, err := internal.NewWatcher(config.Dir, config.Suffix, logger, run)
		if err != nil {
			return err
		}
		logger.Info("Watching for changes", zap.String("dir", config.Dir))
		return w.Watch(ctx)
	},
}

func init() {
	addRunFlags(watchCmd.Flags())
}
