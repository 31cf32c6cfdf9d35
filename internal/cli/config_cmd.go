// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - config command implementation.
//
// Command: config
// Short:   View or change configuration
//
// Examples:
//   devtinder config                  Show current configuration
//   devtinder config show             Same
//   devtinder config set api.base_url https://api.example.com
package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/tinder4devs/devtinder-tui/internal/config"
)

// HandleConfig dispatches the config subcommands.
func HandleConfig(cfg *config.Config, args Args) int {
	switch args.Subcommand {
	case "", "show":
		return configShow(cfg)
	case "set":
		return configSet(cfg, args.ConfigKey, args.ConfigVal)
	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", args.Subcommand)
		return 1
	}
}

func configShow(cfg *config.Config) int {
	path, _ := config.ConfigPath()

	fmt.Println(TitleStyle.Render("Configuration"))
	fmt.Println(printField("File", path))
	fmt.Println(SectionStyle.Render("API"))
	fmt.Println(printField("base_url", cfg.API.BaseURL))
	fmt.Println(printField("timeout_secs", strconv.Itoa(cfg.API.TimeoutSecs)))
	fmt.Println(printField("max_retries", strconv.Itoa(cfg.API.MaxRetries)))
	fmt.Println(SectionStyle.Render("Channel"))
	fmt.Println(printField("socket_url", cfg.Channel.SocketURL))
	fmt.Println(printField("reconnect_max_secs", strconv.Itoa(cfg.Channel.ReconnectMaxSecs)))
	fmt.Println(printField("sends_per_second", strconv.FormatFloat(cfg.Channel.SendsPerSecond, 'f', -1, 64)))
	fmt.Println(SectionStyle.Render("UI"))
	fmt.Println(printField("theme", cfg.UI.Theme))
	return 0
}

func configSet(cfg *config.Config, key, value string) int {
	if key == "" || value == "" {
		fmt.Fprintln(os.Stderr, "Usage: devtinder config set <key> <value>")
		return 1
	}

	switch key {
	case "api.base_url":
		cfg.API.BaseURL = value
	case "api.timeout_secs":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			fmt.Fprintln(os.Stderr, ErrorStyle.Render("timeout_secs must be a positive integer"))
			return 1
		}
		cfg.API.TimeoutSecs = n
	case "api.max_retries":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			fmt.Fprintln(os.Stderr, ErrorStyle.Render("max_retries must be a non-negative integer"))
			return 1
		}
		cfg.API.MaxRetries = n
	case "channel.socket_url":
		cfg.Channel.SocketURL = value
	case "channel.reconnect_max_secs":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			fmt.Fprintln(os.Stderr, ErrorStyle.Render("reconnect_max_secs must be a positive integer"))
			return 1
		}
		cfg.Channel.ReconnectMaxSecs = n
	case "ui.theme":
		if value != "auto" && value != "dark" && value != "light" {
			fmt.Fprintln(os.Stderr, ErrorStyle.Render("theme must be auto, dark, or light"))
			return 1
		}
		cfg.UI.Theme = value
	default:
		fmt.Fprintf(os.Stderr, "Unknown config key: %s\n", key)
		return 1
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Invalid value: "+err.Error()))
		return 1
	}
	if err := config.Save(cfg); err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Failed to save config: "+err.Error()))
		return 1
	}
	fmt.Println(SuccessStyle.Render("Saved " + key))
	return 0
}
