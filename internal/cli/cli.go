// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - argument parsing and dispatch for the devtinder command line.
package cli

import (
	"fmt"
	"os"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdLogin
	CmdLogout
	CmdStatus
	CmdConfig
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool
	JSON    bool

	// Command-specific
	Email      string
	ConfigKey  string
	ConfigVal  string
	Subcommand string

	// Raw args remaining after flag parsing
	Raw []string
}

const usageText = `devtinder - Tinder for developers, in your terminal

A swipe-deck client for the Tinder4Devs API: browse candidate developers,
send interest, review incoming requests, and chat with your connections
over a live websocket channel.

Usage:
  devtinder                  Start the TUI (default)
  devtinder login            Log in and persist the session
    --email ADDRESS          Skip the email prompt
  devtinder logout           End the session and clear local state
  devtinder status, s        Show API, session, and premium status
    --json                   Output in JSON format
  devtinder config [show|set <key> <value>]
                             View or change configuration
  devtinder version          Show version information
  devtinder help             Show this help

Configuration keys:
  api.base_url               REST endpoint (default http://localhost:7777)
  channel.socket_url         Websocket endpoint (default ws://localhost:7777/ws)
  ui.theme                   auto, dark, or light

Environment overrides:
  DEVTINDER_BASE_URL         Overrides api.base_url
  DEVTINDER_SOCKET_URL       Overrides channel.socket_url

Files:
  ~/.devtinder/config.toml   Configuration
  ~/.devtinder/session.json  Persisted session cookie (0600)
  ~/.devtinder/decisions.db  Swipe decision journal
`

// Usage prints the top-level help text.
func Usage() {
	fmt.Print(usageText)
}

// Parse reads os.Args and returns the command to run with its arguments.
func Parse() (Command, Args) {
	args := os.Args[1:]

	remaining, parsed := parseGlobalFlags(args)
	if len(remaining) == 0 {
		return CmdTUI, parsed
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsed.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, parsed

	case "login":
		parseLoginArgs(&parsed, remaining)
		return CmdLogin, parsed

	case "logout":
		return CmdLogout, parsed

	case "status", "s":
		return CmdStatus, parsed

	case "config":
		parseConfigArgs(&parsed, remaining)
		return CmdConfig, parsed

	case "version", "--version", "-v":
		return CmdVersion, parsed

	case "help", "--help", "-h":
		return CmdHelp, parsed

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		return CmdHelp, parsed
	}
}

// parseGlobalFlags strips flags that apply to every command.
func parseGlobalFlags(args []string) ([]string, Args) {
	var parsed Args
	var remaining []string

	for _, arg := range args {
		switch arg {
		case "--quiet", "-q":
			parsed.Quiet = true
		case "--verbose":
			parsed.Verbose = true
		case "--json":
			parsed.JSON = true
		default:
			remaining = append(remaining, arg)
		}
	}
	return remaining, parsed
}

func parseLoginArgs(parsed *Args, args []string) {
	for i := 0; i < len(args); i++ {
		if args[i] == "--email" && i+1 < len(args) {
			parsed.Email = args[i+1]
			i++
		}
	}
}

func parseConfigArgs(parsed *Args, args []string) {
	if len(args) == 0 {
		parsed.Subcommand = "show"
		return
	}
	parsed.Subcommand = strings.ToLower(args[0])
	if parsed.Subcommand == "set" {
		if len(args) > 1 {
			parsed.ConfigKey = args[1]
		}
		if len(args) > 2 {
			parsed.ConfigVal = args[2]
		}
	}
}

// HandleVersion prints version information.
func HandleVersion() {
	fmt.Printf("devtinder %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
}
