package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"alertsim/internal/gen"
	"alertsim/internal/sim"
)

func newBatchCmd() *cobra.Command {
	var count int
	var delaySecs float64
	var eventType string
	var keepItems bool

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Emit a stream of events",
		Long: `Emit a fixed number of events with a delay between them. Event types are
picked at random unless --type narrows the stream to one source.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("count") {
				count = a.cfg.Batch.Count
			}
			delay := a.cfg.Batch.Delay
			if cmd.Flags().Changed("delay") {
				delay = time.Duration(delaySecs * float64(time.Second))
			}
			if !cmd.Flags().Changed("keep-items") {
				keepItems = a.cfg.Batch.KeepItems
			}
			if count <= 0 {
				return fmt.Errorf("count must be positive, got %d", count)
			}
			if delay < 0 {
				return fmt.Errorf("delay must not be negative, got %s", delay)
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			gens := gen.New(a.reg, a.faker, nil, a.logger)
			orch := sim.New(a.reg, gens, a.buildSinks(a.cfg.Sink.APIBaseURL), a.stats, fixedDecider{keep: keepItems}, a.logger)
			defer orch.Close()

			sent, failed, err := orch.Automate(ctx, count, delay, eventType)
			summary := fmt.Sprintf("Batch finished: %d sent, %d failed.", sent, failed)
			if failed > 0 {
				warnColor.Fprintln(os.Stdout, summary)
			} else {
				successColor.Fprintln(os.Stdout, summary)
			}
			if err != nil && err != context.Canceled {
				return err
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 10, "Number of events")
	cmd.Flags().Float64Var(&delaySecs, "delay", 2, "Delay between events in seconds")
	cmd.Flags().StringVarP(&eventType, "type", "t", "", "Emit only this event type (default random)")
	cmd.Flags().BoolVar(&keepItems, "keep-items", false, "Keep auto-generated items after each event")
	return cmd
}
