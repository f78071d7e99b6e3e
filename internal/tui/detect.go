package tui

import (
	"os"

	"golang.org/x/term"
)

// Mode represents how rdsload renders its run summary.
type Mode int

const (
	// ModePlain is used for CI/CD pipelines, log collectors and redirected output.
	ModePlain Mode = iota
	// ModeStyled is used when a human is watching the terminal.
	ModeStyled
)

// DetectMode determines whether the summary written to stderr may be styled.
//
// Returns ModePlain if:
//   - RDSLOAD_PLAIN=1 is set
//   - CI is set (common CI/CD convention)
//   - NO_COLOR is set (accessibility/automation indicator)
//   - stderr is not a terminal
//
// Returns ModeStyled otherwise.
func DetectMode() Mode {
	if os.Getenv("RDSLOAD_PLAIN") == "1" {
		return ModePlain
	}
	if os.Getenv("CI") != "" {
		return ModePlain
	}
	if os.Getenv("NO_COLOR") != "" {
		return ModePlain
	}

	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return ModePlain
	}

	return ModeStyled
}

// IsStyled is a convenience function that returns true in ModeStyled.
func IsStyled() bool {
	return DetectMode() == ModeStyled
}
