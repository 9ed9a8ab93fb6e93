package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

var (
	// Message colors
	Success = color.New(color.FgGreen)
	Warning = color.New(color.FgYellow)
	Error   = color.New(color.FgRed)
	Dim     = color.New(color.Faint)

	// Structural colors
	Header = color.New(color.FgWhite, color.Bold)
)

// NoColor disables color output
func NoColor() {
	color.NoColor = true
}

// IsTerminal returns true if stdout is a terminal
func IsTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// FrequencyColor returns the color used to display a notification frequency.
// Disabled notifications are red, unthrottled ones yellow, the rest green.
func FrequencyColor(frequency string) *color.Color {
	switch frequency {
	case "never":
		return Error
	case "always":
		return Warning
	case "":
		return color.New(color.Reset)
	default:
		return Success
	}
}

// FormatFrequency formats a frequency name with its color
func FormatFrequency(frequency string) string {
	return FrequencyColor(frequency).Sprint(frequency)
}

// FormatGate formats whether the next run would query for a release
func FormatGate(open bool) string {
	if open {
		return Success.Sprint("due")
	}
	return Dim.Sprint("waiting")
}

// FprintSuccess prints a success message to w
func FprintSuccess(w io.Writer, format string, args ...interface{}) {
	Success.Fprintf(w, "✓ "+format+"\n", args...)
}

// FprintError prints an error message to w
func FprintError(w io.Writer, format string, args ...interface{}) {
	Error.Fprintf(w, "✗ "+format+"\n", args...)
}

// Fprintln prints with color and newline to w
func Fprintln(w io.Writer, c *color.Color, a ...interface{}) {
	c.Fprintln(w, a...)
}

// KeyValue prints an aligned "key: value" line to w
func KeyValue(w io.Writer, key, value string) {
	fmt.Fprintf(w, "%s %s\n", Header.Sprintf("%-14s", key+":"), value)
}
