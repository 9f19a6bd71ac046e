package sim

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"time"

	"alertsim/internal/envelope"
	"alertsim/internal/gen"
	"alertsim/internal/model"
	"alertsim/internal/registry"
	"alertsim/internal/sink"
	"alertsim/internal/stats"
)

// Decider resolves whether an auto-generated item becomes permanent. The
// console asks the operator; batch runs apply a fixed policy.
type Decider interface {
	KeepItem(source string, item model.Item) bool
}

// Orchestrator drives one event end to end: generate details, wrap, deliver
// to every sink, settle auto-generated items, clean up.
type Orchestrator struct {
	reg     *registry.Registry
	gens    *gen.Set
	sinks   []sink.Sink
	stats   *stats.Store
	decider Decider
	logger  *slog.Logger
}

func New(reg *registry.Registry, gens *gen.Set, sinks []sink.Sink, st *stats.Store, decider Decider, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		reg:     reg,
		gens:    gens,
		sinks:   sinks,
		stats:   st,
		decider: decider,
		logger:  logger,
	}
}

// SetSinks replaces the delivery fan-out for subsequent events. Replaced
// sinks holding a connection are closed.
func (o *Orchestrator) SetSinks(sinks []sink.Sink) {
	o.closeSinks()
	o.sinks = sinks
}

// Close releases any sink holding a connection.
func (o *Orchestrator) Close() {
	o.closeSinks()
}

func (o *Orchestrator) closeSinks() {
	for _, s := range o.sinks {
		closer, ok := s.(io.Closer)
		if !ok {
			continue
		}
		if err := closer.Close(); err != nil && o.logger != nil {
			o.logger.Warn("sink close failed", "sink", s.Name(), "err", err)
		}
	}
}

// Simulate emits one event of eventType. Sink failures are logged and
// recorded, never fatal; the cleanup pass runs whenever an event was built.
func (o *Orchestrator) Simulate(ctx context.Context, eventType string, manual bool) (model.Envelope, error) {
	data, err := o.gens.Details(eventType, manual)
	if err != nil {
		return model.Envelope{}, err
	}
	env := envelope.New(eventType, data)

	delivered := true
	for _, s := range o.sinks {
		if err := s.Deliver(ctx, env); err != nil {
			delivered = false
			if o.logger != nil {
				o.logger.Error("delivery failed", "sink", s.Name(), "event", env.EventID, "err", err)
			}
		}
	}
	if o.stats != nil {
		o.stats.Record(env, delivered)
	}

	o.settleAutoItems(eventType)
	o.reg.Cleanup()
	return env, nil
}

func (o *Orchestrator) settleAutoItems(eventType string) {
	if o.decider == nil {
		return
	}
	for _, item := range o.reg.AutoGenerated(eventType) {
		keep := o.decider.KeepItem(eventType, item)
		if err := o.reg.ConfirmOrDiscard(eventType, item.ID, keep); err != nil && o.logger != nil {
			o.logger.Warn("item confirmation failed", "source", eventType, "id", item.ID, "err", err)
		}
	}
}

// Automate emits count events with delay between them. An empty eventType
// picks a random source per iteration. Always non-manual.
func (o *Orchestrator) Automate(ctx context.Context, count int, delay time.Duration, eventType string) (sent, failed int, err error) {
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return sent, failed, err
		}
		pick := eventType
		if pick == "" {
			names := o.reg.List()
			if len(names) == 0 {
				return sent, failed, fmt.Errorf("no alert sources configured")
			}
			pick = names[rand.IntN(len(names))]
		}
		if _, err := o.Simulate(ctx, pick, false); err != nil {
			failed++
			if o.logger != nil {
				o.logger.Error("simulation failed", "type", pick, "err", err)
			}
		} else {
			sent++
		}
		if delay > 0 && i < count-1 {
			select {
			case <-ctx.Done():
				return sent, failed, ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return sent, failed, nil
}
