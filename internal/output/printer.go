// ABOUTME: Terminal output for jobboard commands
// ABOUTME: Colored status lines, notification flushing and application status badges

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/markalston/jobboard/internal/client"
	"github.com/markalston/jobboard/internal/notify"
)

// ResolveColors determines whether to use colors from the flag and environment
func ResolveColors(disabled, configColors bool) bool {
	if disabled {
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return configColors
}

// Printer handles formatted output to the terminal
type Printer struct {
	out       io.Writer
	err       io.Writer
	useColors bool
}

// NewPrinter creates a printer writing results to out and diagnostics to errOut
func NewPrinter(out, errOut io.Writer, useColors bool) *Printer {
	return &Printer{
		out:       out,
		err:       errOut,
		useColors: useColors,
	}
}

// Out returns the result writer
func (p *Printer) Out() io.Writer {
	return p.out
}

// Info prints an informational message
func (p *Printer) Info(format string, args ...interface{}) {
	if p.useColors {
		color.New(color.FgCyan).Fprintf(p.out, format+"\n", args...)
	} else {
		fmt.Fprintf(p.out, format+"\n", args...)
	}
}

// Success prints a success message
func (p *Printer) Success(format string, args ...interface{}) {
	if p.useColors {
		color.New(color.FgGreen).Fprintf(p.out, "✓ "+format+"\n", args...)
	} else {
		fmt.Fprintf(p.out, "[OK] "+format+"\n", args...)
	}
}

// Warning prints a warning message
func (p *Printer) Warning(format string, args ...interface{}) {
	if p.useColors {
		color.New(color.FgYellow).Fprintf(p.err, "⚠ "+format+"\n", args...)
	} else {
		fmt.Fprintf(p.err, "[WARN] "+format+"\n", args...)
	}
}

// Error prints an error message
func (p *Printer) Error(format string, args ...interface{}) {
	if p.useColors {
		color.New(color.FgRed).Fprintf(p.err, "✗ "+format+"\n", args...)
	} else {
		fmt.Fprintf(p.err, "[ERROR] "+format+"\n", args...)
	}
}

// Suggest prints an indented hint under a preceding error
func (p *Printer) Suggest(text string) {
	if text == "" {
		return
	}
	if p.useColors {
		color.New(color.FgCyan).Fprintf(p.err, "  Suggestion: %s\n", text)
	} else {
		fmt.Fprintf(p.err, "  Suggestion: %s\n", text)
	}
}

// Print prints a plain message
func (p *Printer) Print(format string, args ...interface{}) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Header prints a section header
func (p *Printer) Header(title string) {
	if p.useColors {
		color.New(color.FgWhite, color.Bold).Fprintf(p.out, "\n%s\n", title)
		color.New(color.FgWhite).Fprintf(p.out, "%s\n", repeatChar('─', len([]rune(title))))
	} else {
		fmt.Fprintf(p.out, "\n%s\n%s\n", title, repeatChar('-', len([]rune(title))))
	}
}

// Field prints an aligned "label: value" line
func (p *Printer) Field(label, value string) {
	fmt.Fprintf(p.out, "%-14s %s\n", label+":", value)
}

// Notification prints one notification with the style of its severity
func (p *Printer) Notification(n notify.Notification) {
	switch n.Severity {
	case notify.Success:
		p.Success("%s", n.Message)
	case notify.Error:
		p.Error("%s", n.Message)
	case notify.Warning:
		p.Warning("%s", n.Message)
	default:
		p.Info("%s", n.Message)
	}
}

// Flush prints and removes every live notification in insertion order
func (p *Printer) Flush(notes *notify.Store) {
	for _, n := range notes.List() {
		p.Notification(n)
		notes.Remove(n.ID)
	}
}

// StatusBadge returns a colored application status
func (p *Printer) StatusBadge(status client.ApplicationStatus) string {
	if !p.useColors {
		return string(status)
	}

	switch status {
	case client.StatusOffer, client.StatusAccepted:
		return color.GreenString(string(status))
	case client.StatusInterview:
		return color.YellowString(string(status))
	case client.StatusRejected:
		return color.RedString(string(status))
	default:
		return color.CyanString(string(status))
	}
}

// Bold returns text in bold
func (p *Printer) Bold(text string) string {
	if p.useColors {
		return color.New(color.Bold).Sprint(text)
	}
	return text
}

// Dim returns dimmed text
func (p *Printer) Dim(text string) string {
	if p.useColors {
		return color.New(color.Faint).Sprint(text)
	}
	return text
}

// JSON writes v as indented JSON to the result writer
func (p *Printer) JSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	fmt.Fprintln(p.out, string(data))
	return nil
}

func repeatChar(char rune, count int) string {
	result := make([]rune, count)
	for i := range result {
		result[i] = char
	}
	return string(result)
}
