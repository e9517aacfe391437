package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/conduit-lang/ontogen/internal/errors"
)

// Level represents the severity of a message
type Level int

const (
	LevelError Level = iota
	LevelWarning
	LevelInfo
)

// Message is a problem report with optional follow-up help.
//
// Example output:
//
//	✗ class not found: Dgo
//	   Did you mean: Dog?
//	   → run ontogen classes to list every class
type Message struct {
	Level       Level
	Problem     string
	Details     []string
	Suggestions []string
	Hints       []string
	NoColor     bool
}

// Format renders m
func Format(m Message) string {
	var b strings.Builder

	var head *color.Color
	var symbol string
	switch m.Level {
	case LevelWarning:
		head, symbol = color.New(color.FgYellow, color.Bold), "!"
	case LevelInfo:
		head, symbol = color.New(color.FgCyan, color.Bold), "i"
	default:
		head, symbol = color.New(color.FgRed, color.Bold), "✗"
	}
	yellow := color.New(color.FgYellow)
	cyan := color.New(color.FgCyan)
	if m.NoColor {
		head.DisableColor()
		yellow.DisableColor()
		cyan.DisableColor()
	}

	head.Fprintf(&b, "%s %s\n", symbol, m.Problem)
	for _, d := range m.Details {
		fmt.Fprintf(&b, "   %s\n", d)
	}
	if len(m.Suggestions) > 0 {
		yellow.Fprintf(&b, "   Did you mean: %s?\n", strings.Join(m.Suggestions, ", "))
	}
	for _, h := range m.Hints {
		cyan.Fprintf(&b, "   → %s\n", h)
	}
	return b.String()
}

// FromError builds an error message carrying err's hints and details.
func FromError(err error, noColor bool) Message {
	return Message{
		Level:   LevelError,
		Problem: err.Error(),
		Details: errors.GetAllDetails(err),
		Hints:   errors.GetAllHints(err),
		NoColor: noColor,
	}
}

// WriteError writes err with its hints
func WriteError(w io.Writer, err error, noColor bool) {
	fmt.Fprint(w, Format(FromError(err, noColor)))
}

// Warning renders a warning line
func Warning(message string, noColor bool) string {
	return Format(Message{Level: LevelWarning, Problem: message, NoColor: noColor})
}

// Success renders a success line
func Success(message string, noColor bool) string {
	green := color.New(color.FgGreen, color.Bold)
	if noColor {
		green.DisableColor()
	}
	return green.Sprintf("✓ %s", message)
}
