// Package output provides terminal output for the autover CLI: colored status
// lines, tables, progress spinners and structured (JSON/YAML) rendering.
package output

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// UI writes user-facing messages. Progress spinners are drawn only when
// Interactive is set.
type UI struct {
	Verbose     bool
	Interactive bool
	Out         io.Writer
	ErrOut      io.Writer
	Symbols     Symbols
}

// New creates a UI on stdout/stderr, interactive when stderr is a terminal.
func New() *UI {
	caps := DetectTerminalCapabilities()
	return &UI{
		Interactive: caps.IsTTY,
		Out:         os.Stdout,
		ErrOut:      os.Stderr,
		Symbols:     SelectSymbols(caps),
	}
}

var (
	infoPrefix    = color.New(color.FgHiBlue).Sprint("i")
	warningPrefix = color.New(color.FgHiYellow).Sprint("!")
	verbosePrefix = color.New(color.FgHiBlue).Sprint("  →")
	green         = color.New(color.FgHiGreen).SprintFunc()
	red           = color.New(color.FgHiRed).SprintFunc()
	cyan          = color.New(color.FgHiCyan).SprintFunc()
	bold          = color.New(color.Bold).SprintFunc()
)

// Cyan returns a cyan-colored string.
func Cyan(s string) string { return cyan(s) }

// Bold returns a bold string.
func Bold(s string) string { return bold(s) }

func (u *UI) Info(format string, a ...any) {
	fmt.Fprintf(u.Out, "%s %s\n", infoPrefix, fmt.Sprintf(format, a...))
}

func (u *UI) Success(format string, a ...any) {
	fmt.Fprintf(u.Out, "%s %s\n", green(u.checkmark()), fmt.Sprintf(format, a...))
}

func (u *UI) Warning(format string, a ...any) {
	fmt.Fprintf(u.ErrOut, "%s %s\n", warningPrefix, fmt.Sprintf(format, a...))
}

func (u *UI) Error(format string, a ...any) {
	fmt.Fprintf(u.ErrOut, "%s %s\n", red(u.failure()), fmt.Sprintf(format, a...))
}

func (u *UI) VerboseLog(format string, a ...any) {
	if u.Verbose {
		fmt.Fprintf(u.Out, "%s %s\n", verbosePrefix, fmt.Sprintf(format, a...))
	}
}

// Marks returns the colored pass and fail symbols used for check lists.
func (u *UI) Marks() (pass, fail string) {
	return green(u.checkmark()), red(u.failure())
}

func (u *UI) checkmark() string {
	if u.Symbols.Checkmark == "" {
		return "✓"
	}
	return u.Symbols.Checkmark
}

func (u *UI) failure() string {
	if u.Symbols.Failure == "" {
		return "✗"
	}
	return u.Symbols.Failure
}

// Spin runs fn while a spinner labelled message is shown on ErrOut.
func (u *UI) Spin(message string, fn func() error) error {
	if !u.Interactive {
		return fn()
	}

	set := u.Symbols.SpinnerSet
	if set == 0 {
		set = 9
	}
	s := spinner.New(spinner.CharSets[set], 100*time.Millisecond, spinner.WithWriter(u.ErrOut))
	s.Suffix = " " + message
	s.Start()
	err := fn()
	s.Stop()
	return err
}

// Table creates a new tablewriter configured with consistent styling.
func (u *UI) Table(headers []string) *tablewriter.Table {
	table := tablewriter.NewTable(u.Out,
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithRowAlignment(tw.AlignLeft),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Lines:      tw.LinesNone,
				Separators: tw.SeparatorsNone,
			},
		}),
		tablewriter.WithPadding(tw.Padding{Left: "", Right: "  "}),
	)
	table.Header(headers)
	return table
}

// DisableColor turns off colored output for the whole process.
func DisableColor() {
	color.NoColor = true
}
