package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"

	"alertsim/internal/config"
	"alertsim/internal/model"
	"alertsim/internal/registry"
	"alertsim/internal/sim"
	"alertsim/internal/sink"
	"alertsim/internal/stats"
)

// Console is the interactive operator UI. It doubles as the manual-entry
// prompter for the detail generators and the keep/discard decider for
// auto-generated items.
type Console struct {
	in      *bufio.Reader
	out     io.Writer
	reg     *registry.Registry
	orch    *sim.Orchestrator
	stats   *stats.Store
	manager *config.Manager
	logger  *slog.Logger

	apiURL     string
	buildSinks func(apiURL string) []sink.Sink
	eof        bool
}

type Options struct {
	In       io.Reader
	Out      io.Writer
	Registry *registry.Registry
	Stats    *stats.Store
	Manager  *config.Manager
	Logger   *slog.Logger
	APIURL   string
	// BuildSinks assembles the delivery fan-out for a given API base URL;
	// used when the operator reconfigures the sink mid-session.
	BuildSinks func(apiURL string) []sink.Sink
}

func New(opts Options) *Console {
	return &Console{
		in:         bufio.NewReader(opts.In),
		out:        opts.Out,
		reg:        opts.Registry,
		stats:      opts.Stats,
		manager:    opts.Manager,
		logger:     opts.Logger,
		apiURL:     opts.APIURL,
		buildSinks: opts.BuildSinks,
	}
}

// Attach wires the orchestrator after construction; the orchestrator itself
// needs this console as prompter and decider.
func (c *Console) Attach(orch *sim.Orchestrator) {
	c.orch = orch
}

// SetAPIURL records the delivery target shown by the sink menu.
func (c *Console) SetAPIURL(url string) {
	c.apiURL = url
}

func (c *Console) Run(ctx context.Context) error {
	for {
		if c.eof || ctx.Err() != nil {
			return ctx.Err()
		}
		c.printMainMenu()
		switch c.readLine() {
		case "1":
			c.manageSources()
		case "2":
			c.manageItems()
		case "3":
			c.manageThresholds()
		case "4":
			c.manageSettings()
		case "5":
			c.simulateMenu(ctx)
		case "6":
			c.automationMenu(ctx)
		case "7":
			c.showStats()
		case "8":
			c.configureSink()
		case "9", "q", "exit":
			fmt.Fprintln(c.out, "Goodbye.")
			return nil
		case "":
			if c.eof {
				return nil
			}
		default:
			errorColor.Fprintln(c.out, "Invalid choice.")
		}
	}
}

func (c *Console) printMainMenu() {
	headerColor.Fprintln(c.out, "\n=== Security Event Simulator ===")
	fmt.Fprintln(c.out, "1. Manage alert sources")
	fmt.Fprintln(c.out, "2. Manage items")
	fmt.Fprintln(c.out, "3. Manage thresholds")
	fmt.Fprintln(c.out, "4. Manage settings")
	fmt.Fprintln(c.out, "5. Simulate event")
	fmt.Fprintln(c.out, "6. Run automation")
	fmt.Fprintln(c.out, "7. Session stats")
	fmt.Fprintln(c.out, "8. Configure sink")
	fmt.Fprintln(c.out, "9. Exit")
	fmt.Fprint(c.out, "Choice: ")
}

// Ask implements gen.Prompter.
func (c *Console) Ask(label, def string) string {
	return c.promptString(label, def)
}

// Warn implements gen.Prompter.
func (c *Console) Warn(msg string) {
	warnColor.Fprintf(c.out, "Warning: %s\n", msg)
}

// KeepItem implements sim.Decider.
func (c *Console) KeepItem(source string, item model.Item) bool {
	desc := item.ID
	if loc := item.Attr("location"); loc != "" {
		desc = fmt.Sprintf("%s (location: %s)", item.ID, loc)
	}
	return c.promptYesNo(fmt.Sprintf("Keep auto-generated item %s in %s?", desc, source), true)
}
