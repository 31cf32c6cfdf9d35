// devtinder - Tinder for developers, in your terminal.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinder4devs/devtinder-tui/internal/api"
	"github.com/tinder4devs/devtinder-tui/internal/cli"
	"github.com/tinder4devs/devtinder-tui/internal/config"
	"github.com/tinder4devs/devtinder-tui/internal/journal"
	"github.com/tinder4devs/devtinder-tui/internal/ui/app"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	config.SetGlobal(cfg)

	switch cmd {
	case cli.CmdTUI:
		os.Exit(runTUI(cfg))
	case cli.CmdLogin:
		os.Exit(cli.HandleLogin(cfg, args))
	case cli.CmdLogout:
		os.Exit(cli.HandleLogout(cfg, args))
	case cli.CmdStatus:
		os.Exit(cli.HandleStatus(cfg, args))
	case cli.CmdConfig:
		os.Exit(cli.HandleConfig(cfg, args))
	case cli.CmdVersion:
		cli.HandleVersion()
	case cli.CmdHelp:
		cli.Usage()
	}
}

// runTUI starts the full-screen application.
func runTUI(cfg *config.Config) int {
	setupLogging()

	client := api.NewClient(cfg.API.BaseURL).
		WithMaxRetries(cfg.API.MaxRetries).
		WithTimeout(cfg.Timeout())

	// A session saved by `devtinder login` skips the login form.
	if path, err := cli.SessionPath(); err == nil {
		if err := client.LoadSession(path); err != nil {
			log.Printf("session restore failed: %v", err)
		}
	}

	j := openJournal()
	if j != nil {
		defer j.Close()
	}

	program := tea.NewProgram(app.New(cfg, client, j), tea.WithAltScreen())

	// Edits to config.toml apply without a restart.
	if w, err := config.Watch(func(next *config.Config) {
		program.Send(app.ConfigReloadedMsg{Config: next})
	}); err != nil {
		log.Printf("config watch unavailable: %v", err)
	} else {
		defer w.Close()
	}

	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// setupLogging sends the standard logger to a file; stdout belongs to the TUI.
func setupLogging() {
	dir, err := config.ConfigDir()
	if err != nil {
		log.SetOutput(os.Stderr)
		return
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		log.SetOutput(os.Stderr)
		return
	}
	f, err := os.OpenFile(filepath.Join(dir, "devtinder.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		log.SetOutput(os.Stderr)
		return
	}
	log.SetOutput(f)
}

// openJournal opens the decision journal. Failure is non-fatal: swiping
// works, but decided candidates reappear after a restart.
func openJournal() *journal.Journal {
	dir, err := config.ConfigDir()
	if err != nil {
		return nil
	}
	j, err := journal.Open(filepath.Join(dir, "decisions.db"))
	if err != nil {
		log.Printf("decision journal unavailable: %v", err)
		return nil
	}
	return j
}
