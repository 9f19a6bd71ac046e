package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"alertsim/internal/config"
	"alertsim/internal/console"
	"alertsim/internal/fake"
	"alertsim/internal/journal"
	"alertsim/internal/logging"
	"alertsim/internal/registry"
	"alertsim/internal/sink"
	"alertsim/internal/stats"
	"alertsim/internal/store"
)

var (
	flagConfig   string
	flagStore    string
	flagAPIURL   string
	flagLogLevel string
	flagNoColor  bool
	flagSeed     uint64
)

var (
	headerColor  = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "alertsim",
		Short: "Synthetic security event generator",
		Long: `alertsim generates realistic security events (SIEM detections, login
attempts, fence, location, motion and IR sensor alerts) and delivers them to
the monitoring platform's ingestion API, to Kafka, or to the console.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagNoColor {
				console.DisableColor()
			}
		},
	}
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (json or yaml)")
	root.PersistentFlags().StringVar(&flagStore, "store", "", "Alert source store path (overrides config)")
	root.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "Ingestion API base URL (overrides config)")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	root.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	root.PersistentFlags().Uint64Var(&flagSeed, "seed", 0, "Random seed for generated details (0 picks one)")

	root.AddCommand(newRunCmd())
	root.AddCommand(newSimulateCmd())
	root.AddCommand(newBatchCmd())
	root.AddCommand(newSourcesCmd())
	root.AddCommand(newListenCmd())
	return root
}

// app bundles the pieces every command starts from.
type app struct {
	cfg     *config.Config
	manager *config.Manager
	logger  *slog.Logger
	reg     *registry.Registry
	stats   *stats.Store
	faker   *fake.Faker
}

func initApp() (*app, error) {
	cfg := config.DefaultConfig()
	var manager *config.Manager
	if flagConfig != "" {
		m, err := config.NewManager(config.ResolvePath(flagConfig))
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		manager = m
		cfg = m.Get()
	}
	if flagStore != "" {
		cfg.Store.Path = flagStore
	}
	if flagAPIURL != "" {
		cfg.Sink.APIBaseURL = flagAPIURL
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	logger := logging.NewLogger(cfg.LogLevel, cfg.LogFormat)
	st := store.New(config.ResolvePath(cfg.Store.Path), logger)
	return &app{
		cfg:     cfg,
		manager: manager,
		logger:  logger,
		reg:     registry.New(st, logger),
		stats:   stats.New(0),
		faker:   fake.New(flagSeed),
	}, nil
}

// buildSinks assembles the delivery fan-out. The console sink is always
// first; an empty apiURL means print-only unless Kafka or the journal is
// enabled. A journal that fails to open is logged and skipped so event
// delivery still works.
func (a *app) buildSinks(apiURL string) []sink.Sink {
	sinks := []sink.Sink{sink.NewConsole(os.Stdout)}
	if apiURL != "" {
		sinks = append(sinks, sink.NewHTTP(apiURL, a.cfg.Sink.Timeout))
	}
	if a.cfg.Sink.Kafka.Enabled {
		sinks = append(sinks, sink.NewKafka(a.cfg.Sink.Kafka.Brokers, a.cfg.Sink.Kafka.Topic, a.cfg.Sink.Kafka.WriteTimeout))
	}
	if a.cfg.Journal.Enabled {
		j, err := journal.Open(a.cfg.Journal)
		if err != nil {
			a.logger.Error("journal open failed", "driver", a.cfg.Journal.Driver, "err", err)
		} else {
			sinks = append(sinks, sink.NewJournal(j))
		}
	}
	return sinks
}
