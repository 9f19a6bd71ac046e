package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"alertsim/internal/console"
	"alertsim/internal/gen"
	"alertsim/internal/sim"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the interactive console",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			c := console.New(console.Options{
				In:         os.Stdin,
				Out:        os.Stdout,
				Registry:   a.reg,
				Stats:      a.stats,
				Manager:    a.manager,
				Logger:     a.logger,
				BuildSinks: a.buildSinks,
			})
			apiURL := a.cfg.Sink.APIBaseURL
			if apiURL == "" && !cmd.Flags().Changed("api-url") {
				apiURL = c.Ask("API base URL (blank for console only)", "")
			}
			c.SetAPIURL(apiURL)

			gens := gen.New(a.reg, a.faker, c, a.logger)
			orch := sim.New(a.reg, gens, a.buildSinks(apiURL), a.stats, c, a.logger)
			defer orch.Close()
			c.Attach(orch)
			return c.Run(ctx)
		},
	}
}
