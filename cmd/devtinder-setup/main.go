// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package main provides the devtinder setup wizard - a guided first-run
// experience that points the client at a server and writes the config.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinder4devs/devtinder-tui/internal/api"
	"github.com/tinder4devs/devtinder-tui/internal/config"
)

const version = "1.0.0"

func main() {
	for _, arg := range os.Args[1:] {
		if arg == "--text" || arg == "-t" {
			runTextSetup()
			return
		}
		if arg == "--help" || arg == "-h" {
			printHelp()
			return
		}
		if arg == "--version" || arg == "-v" {
			fmt.Printf("devtinder-setup v%s\n", version)
			return
		}
	}

	if !isTerminal() {
		fmt.Println("The setup wizard requires an interactive terminal.")
		fmt.Println("Run with --text for a simple text-based setup.")
		os.Exit(1)
	}

	p := tea.NewProgram(NewWizard(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running setup: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println(`devtinder setup wizard v` + version + `

Usage: devtinder-setup [OPTIONS]

Options:
  --text, -t     Run in text mode (copy/paste friendly)
  --help, -h     Show this help
  --version, -v  Show version

Points the client at a Tinder4Devs server, verifies it is reachable, and
writes ~/.devtinder/config.toml. Run devtinder afterwards to log in.`)
}

// isTerminal checks if we're running in an interactive terminal
func isTerminal() bool {
	if runtime.GOOS == "windows" {
		return true
	}
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// =============================================================================
// TEXT MODE SETUP (Copy/Paste Friendly)
// =============================================================================

func runTextSetup() {
	reader := bufio.NewReader(os.Stdin)

	fmt.Println()
	fmt.Println("================================================================================")
	fmt.Println("                             DEVTINDER SETUP")
	fmt.Println("                    Tinder for developers, in your terminal")
	fmt.Println("================================================================================")
	fmt.Println()
	fmt.Println("This setup will:")
	fmt.Println("  [1] Ask where your Tinder4Devs server runs")
	fmt.Println("  [2] Check the server is reachable")
	fmt.Println("  [3] Write your configuration")
	fmt.Println()

	cfg := config.Default()
	fmt.Printf("Server URL [%s]: ", cfg.API.BaseURL)
	input, _ := reader.ReadString('\n')
	if trimmed := strings.TrimSpace(input); trimmed != "" {
		cfg.API.BaseURL = trimmed
		cfg.Channel.SocketURL = deriveSocketURL(trimmed)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Printf("\n[FAIL] Invalid server URL: %v\n", err)
		os.Exit(1)
	}

	fmt.Print("\nChecking server... ")
	if probeServer(cfg.API.BaseURL) {
		fmt.Println("[OK] reachable")
	} else {
		fmt.Println("[WARN] not reachable (you can still save and start it later)")
	}

	if err := config.Save(cfg); err != nil {
		fmt.Printf("[FAIL] Could not write config: %v\n", err)
		os.Exit(1)
	}

	path, _ := config.ConfigPath()
	fmt.Println()
	fmt.Println("Configuration written to " + path)
	fmt.Println("Next: run `devtinder login`, then `devtinder` to start swiping.")
}

// probeServer reports whether the API answers at all. An auth error still
// means the server is up.
func probeServer(baseURL string) bool {
	client := api.NewClient(baseURL).WithMaxRetries(0)
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	_, err := client.ProfileView(ctx)
	return err == nil || !isUnreachable(err)
}

// deriveSocketURL maps an http(s) base URL to the matching ws(s) endpoint.
func deriveSocketURL(baseURL string) string {
	socket := baseURL
	if strings.HasPrefix(socket, "https://") {
		socket = "wss://" + strings.TrimPrefix(socket, "https://")
	} else if strings.HasPrefix(socket, "http://") {
		socket = "ws://" + strings.TrimPrefix(socket, "http://")
	}
	return strings.TrimSuffix(socket, "/") + "/ws"
}
