package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"alertsim/internal/model"
)

// Console pretty-prints every envelope. It is configured first so the
// operator sees the event even when remote delivery fails.
type Console struct {
	out io.Writer
}

func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

func (c *Console) Name() string { return "console" }

func (c *Console) Deliver(_ context.Context, env model.Envelope) error {
	body, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return err
	}
	banner := color.New(color.FgCyan, color.Bold).Sprintf("-- Event Generated (%s) --", env.EventType)
	fmt.Fprintf(c.out, "\n%s\n%s\n", banner, body)
	return nil
}
