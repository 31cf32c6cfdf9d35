// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"os"
	"testing"
)

func parseWith(t *testing.T, args ...string) (Command, Args) {
	t.Helper()
	old := os.Args
	os.Args = append([]string{"devtinder"}, args...)
	t.Cleanup(func() { os.Args = old })
	return Parse()
}

func TestParseDefaultsToTUI(t *testing.T) {
	cmd, _ := parseWith(t)
	if cmd != CmdTUI {
		t.Errorf("cmd = %v, want CmdTUI", cmd)
	}
}

func TestParseCommands(t *testing.T) {
	tests := []struct {
		args []string
		want Command
	}{
		{[]string{"login"}, CmdLogin},
		{[]string{"logout"}, CmdLogout},
		{[]string{"status"}, CmdStatus},
		{[]string{"s"}, CmdStatus},
		{[]string{"config"}, CmdConfig},
		{[]string{"version"}, CmdVersion},
		{[]string{"help"}, CmdHelp},
		{[]string{"bogus"}, CmdHelp},
	}
	for _, tt := range tests {
		cmd, _ := parseWith(t, tt.args...)
		if cmd != tt.want {
			t.Errorf("Parse(%v) = %v, want %v", tt.args, cmd, tt.want)
		}
	}
}

func TestParseGlobalFlags(t *testing.T) {
	cmd, args := parseWith(t, "--json", "status")
	if cmd != CmdStatus {
		t.Errorf("cmd = %v, want CmdStatus", cmd)
	}
	if !args.JSON {
		t.Error("JSON flag not parsed")
	}
}

func TestParseLoginEmail(t *testing.T) {
	_, args := parseWith(t, "login", "--email", "ada@example.com")
	if args.Email != "ada@example.com" {
		t.Errorf("Email = %q", args.Email)
	}
}

func TestParseConfigSet(t *testing.T) {
	_, args := parseWith(t, "config", "set", "ui.theme", "dark")
	if args.Subcommand != "set" || args.ConfigKey != "ui.theme" || args.ConfigVal != "dark" {
		t.Errorf("parsed = %+v", args)
	}
}

func TestParseConfigDefaultsToShow(t *testing.T) {
	_, args := parseWith(t, "config")
	if args.Subcommand != "show" {
		t.Errorf("Subcommand = %q, want show", args.Subcommand)
	}
}
