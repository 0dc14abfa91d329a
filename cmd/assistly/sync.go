package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samvad-hq/assistly-go/internal/app"
	"github.com/samvad-hq/assistly-go/internal/logger"
)

func (c *cli) syncCmd() *cobra.Command {
	var once bool
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Announce new customers to the configured publishers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			logger.InfoObj("syncer starting", "config", c.cfg.Redacted())

			syncer, err := app.NewSyncer(ctx, c.cfg, c.log)
			if err != nil {
				logger.ErrorObj("failed to initialize syncer", "error", err.Error())
				return err
			}
			if once {
				return syncer.RunOnce(ctx)
			}
			if err := syncer.Run(ctx); err != nil {
				return fmt.Errorf("syncer run: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&once, "once", false, "run a single pass and exit")
	return cmd
}
