package tui

import (
	"os"

	"golang.org/x/term"
)

// Mode represents how mdsource renders human output.
type Mode int

const (
	// ModePlain is used for CI/CD pipelines, scripts, and redirected output.
	ModePlain Mode = iota
	// ModeStyled is used when a human is reading the terminal.
	ModeStyled
)

// DetectMode determines whether output should carry colors and symbols.
//
// Returns ModePlain if:
//   - MDSOURCE_PLAIN=1 is set
//   - CI=true is set (common CI/CD convention)
//   - NO_COLOR is set (accessibility/automation indicator)
//   - stdout is not a terminal (piped or redirected output)
//
// Returns ModeStyled otherwise.
func DetectMode() Mode {
	if os.Getenv("MDSOURCE_PLAIN") == "1" {
		return ModePlain
	}
	if os.Getenv("CI") != "" {
		return ModePlain
	}
	if os.Getenv("NO_COLOR") != "" {
		return ModePlain
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return ModePlain
	}

	return ModeStyled
}

// IsStyled is a convenience function that returns true if running in styled mode.
func IsStyled() bool {
	return DetectMode() == ModeStyled
}
