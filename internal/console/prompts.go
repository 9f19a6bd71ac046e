package console

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

func (c *Console) readLine() string {
	line, err := c.in.ReadString('\n')
	if err != nil {
		c.eof = true
	}
	return strings.TrimSpace(line)
}

// promptString asks for a value; empty input takes the default.
func (c *Console) promptString(label, def string) string {
	if def != "" {
		fmt.Fprintf(c.out, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(c.out, "%s: ", label)
	}
	if v := c.readLine(); v != "" {
		return v
	}
	return def
}

func (c *Console) promptYesNo(label string, def bool) bool {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	fmt.Fprintf(c.out, "%s (%s): ", label, hint)
	switch strings.ToLower(c.readLine()) {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	default:
		return def
	}
}

func (c *Console) promptInt(label string, def int) int {
	v := c.promptString(label, strconv.Itoa(def))
	n, err := strconv.Atoi(v)
	if err != nil {
		warnColor.Fprintf(c.out, "Not a number, using %d.\n", def)
		return def
	}
	return n
}

func (c *Console) promptFloatSeconds(label string, def float64) time.Duration {
	v := c.promptString(label, strconv.FormatFloat(def, 'g', -1, 64))
	secs, err := strconv.ParseFloat(v, 64)
	if err != nil || secs < 0 {
		warnColor.Fprintf(c.out, "Not a valid delay, using %gs.\n", def)
		secs = def
	}
	return time.Duration(secs * float64(time.Second))
}

// promptChoice shows numbered options and accepts a number or the option
// text. Blank input cancels.
func (c *Console) promptChoice(label string, options []string) (string, bool) {
	for i, opt := range options {
		fmt.Fprintf(c.out, "%d. %s\n", i+1, opt)
	}
	v := c.promptString(label, "")
	if v == "" || strings.EqualFold(v, "back") {
		return "", false
	}
	if idx, err := strconv.Atoi(v); err == nil {
		if idx >= 1 && idx <= len(options) {
			return options[idx-1], true
		}
		errorColor.Fprintln(c.out, "Out of range.")
		return "", false
	}
	for _, opt := range options {
		if strings.EqualFold(opt, v) {
			return opt, true
		}
	}
	errorColor.Fprintf(c.out, "Unknown option %q.\n", v)
	return "", false
}

func splitAndTrim(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
