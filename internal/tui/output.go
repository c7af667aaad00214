package tui

import (
	"os"

	"golang.org/x/term"
)

// OutputMode selects how results are presented.
type OutputMode int

const (
	// OutputModePlain is unstyled text, for pipes, files and dumb terminals.
	OutputModePlain OutputMode = iota
	// OutputModeStyled is lipgloss-styled text without interaction.
	OutputModeStyled
	// OutputModeInteractive allows a full bubbletea program.
	OutputModeInteractive
)

// String returns the mode name.
func (m OutputMode) String() string {
	switch m {
	case OutputModePlain:
		return "plain"
	case OutputModeStyled:
		return "styled"
	case OutputModeInteractive:
		return "interactive"
	default:
		return "unknown"
	}
}

const defaultTerminalWidth = 80

// IsTTY reports whether stdout is a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// IsInputTTY reports whether stdin is a terminal.
func IsInputTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// TerminalWidth returns the width of stdout, or 80 when it cannot be read.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultTerminalWidth
	}
	return width
}

// DetectOutputMode picks the richest mode the environment supports.
// plain and noColor (or NO_COLOR in the environment) force plain output;
// forceColor styles output even when stdout is not a terminal. CI systems
// and TERM=dumb never get the interactive mode.
func DetectOutputMode(forceColor, noColor, plain bool) OutputMode {
	return detectOutputMode(forceColor, noColor, plain, IsTTY(), os.Getenv)
}

func detectOutputMode(forceColor, noColor, plain, tty bool, getenv func(string) string) OutputMode {
	switch {
	case plain, noColor, getenv("NO_COLOR") != "":
		return OutputModePlain
	case getenv("TERM") == "dumb":
		return OutputModePlain
	case !tty:
		if forceColor {
			return OutputModeStyled
		}
		return OutputModePlain
	case getenv("CI") != "":
		return OutputModeStyled
	default:
		return OutputModeInteractive
	}
}
