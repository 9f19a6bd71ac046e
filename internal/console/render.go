package console

import "github.com/fatih/color"

var (
	headerColor  = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
)

// DisableColor turns off all ANSI styling, for --no-color and non-TTY runs.
func DisableColor() {
	color.NoColor = true
}
