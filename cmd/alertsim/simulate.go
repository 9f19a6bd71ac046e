package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"alertsim/internal/console"
	"alertsim/internal/gen"
	"alertsim/internal/model"
	"alertsim/internal/sim"
)

// fixedDecider applies one keep/discard policy to every auto-generated item.
type fixedDecider struct {
	keep bool
}

func (d fixedDecider) KeepItem(string, model.Item) bool {
	return d.keep
}

func newSimulateCmd() *cobra.Command {
	var manual bool
	var keepItems bool

	cmd := &cobra.Command{
		Use:   "simulate <event-type>",
		Short: "Emit a single event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var prompter gen.Prompter
			if manual {
				c := console.New(console.Options{
					In:       os.Stdin,
					Out:      os.Stdout,
					Registry: a.reg,
					Stats:    a.stats,
				})
				prompter = c
			}
			gens := gen.New(a.reg, a.faker, prompter, a.logger)
			orch := sim.New(a.reg, gens, a.buildSinks(a.cfg.Sink.APIBaseURL), a.stats, fixedDecider{keep: keepItems}, a.logger)
			defer orch.Close()

			env, err := orch.Simulate(ctx, args[0], manual)
			if err != nil {
				return err
			}
			a.logger.Info("event emitted", "type", env.EventType, "id", env.EventID)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&manual, "manual", "m", false, "Prompt for event details")
	cmd.Flags().BoolVar(&keepItems, "keep-items", true, "Keep auto-generated items after the event")
	return cmd
}
