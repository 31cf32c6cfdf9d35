// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// terminal.go - TTY detection and interactive input for CLI commands.
//
// USABILITY: TTY detection for proper terminal handling
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/muesli/termenv"
	"github.com/peterh/liner"
	"golang.org/x/term"

	"github.com/tinder4devs/devtinder-tui/internal/config"
)

// IsTTY returns true if stdin is attached to a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// IsStdoutTTY returns true if stdout is attached to a terminal.
func IsStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// ColorsEnabled reports whether styled output should be produced.
// Respects NO_COLOR (https://no-color.org/) and FORCE_COLOR.
func ColorsEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	return IsStdoutTTY()
}

// GetColorProfile returns the termenv profile for CLI output.
func GetColorProfile() termenv.Profile {
	if !ColorsEnabled() {
		return termenv.Ascii
	}
	return termenv.ColorProfile()
}

// RequiresTTY returns an error if stdin is not a terminal.
func RequiresTTY(operation string) error {
	if !IsTTY() {
		return fmt.Errorf("%s requires an interactive terminal", operation)
	}
	return nil
}

// =============================================================================
// INTERACTIVE INPUT
// =============================================================================

// Prompter reads interactive input with history and line editing.
type Prompter struct {
	line        *liner.State
	historyFile string
}

// NewPrompter creates a Prompter with history stored under the config dir.
func NewPrompter() *Prompter {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}

	p := &Prompter{
		line:        line,
		historyFile: filepath.Join(configDir, "cli_history"),
	}
	if f, err := os.Open(p.historyFile); err == nil {
		p.line.ReadHistory(f)
		f.Close()
	}
	return p
}

// ReadLine reads one line of input with the given prompt.
func (p *Prompter) ReadLine(prompt string) (string, error) {
	input, err := p.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		p.line.AppendHistory(input)
	}
	return input, nil
}

// ReadPassword reads a line without echoing it.
// SECURITY: passwords never enter the liner history.
func (p *Prompter) ReadPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(raw), nil
}

// Close saves history and restores the terminal.
func (p *Prompter) Close() {
	if f, err := os.OpenFile(p.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
		p.line.WriteHistory(f)
		f.Close()
	}
	p.line.Close()
}
