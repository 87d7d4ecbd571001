package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/verityhq/verity/packages/verify"
)

// ConsoleFormatter renders a session as human-readable colored terminal
// output.
type ConsoleFormatter struct {
	writer  io.Writer
	verbose bool
	noColor bool
}

type ConsoleOption func(*ConsoleFormatter)

func NewConsoleFormatter(opts ...ConsoleOption) *ConsoleFormatter {
	f := &ConsoleFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.noColor {
		color.NoColor = true
	}
	return f
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.writer = w
	}
}

func WithVerbose(v bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.verbose = v
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.noColor = nc
	}
}

func (f *ConsoleFormatter) FormatSession(sessionID string, records []verify.Record) error {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	fmt.Fprintf(f.writer, "\n%s\n\n", bold("Session: "+sessionID))

	passed, failed := 0, 0
	for _, r := range records {
		symbol := green("✓")
		if r.Passed {
			passed++
		} else {
			symbol = red("✗")
			failed++
		}

		fmt.Fprintf(f.writer, "  %s %s %s\n", symbol, r.Message, cyan(fmt.Sprintf("(%dms)", r.ElapsedMillis)))

		if !r.Passed && r.DiffStyle {
			fmt.Fprintf(f.writer, "      Expected: %s\n", r.Expected)
			fmt.Fprintf(f.writer, "      Actual:   %s\n", r.Actual)
		} else if !r.Passed && r.Actual != "" {
			fmt.Fprintf(f.writer, "      Actual: %s\n", r.Actual)
		}

		if f.verbose && r.WaitSeconds > 0 {
			fmt.Fprintf(f.writer, "      Waited up to %ds at %dms intervals, %d attempt(s)\n",
				r.WaitSeconds, r.IntervalMillis, r.Attempts)
		}
	}

	fmt.Fprintf(f.writer, "\n")
	fmt.Fprintf(f.writer, "Checks: ")
	if passed > 0 {
		fmt.Fprintf(f.writer, "%s, ", green(fmt.Sprintf("%d passed", passed)))
	}
	if failed > 0 {
		fmt.Fprintf(f.writer, "%s, ", red(fmt.Sprintf("%d failed", failed)))
	}
	fmt.Fprintf(f.writer, "%d total\n\n", len(records))
	return nil
}

func (f *ConsoleFormatter) FormatError(err error) {
	red := color.New(color.FgRed).SprintFunc()
	fmt.Fprintf(f.writer, "%s %v\n", red("Error:"), err)
}
