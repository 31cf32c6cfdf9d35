// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - status command implementation.
//
// Command: status
// Short:   Display API, session, and premium status
// Aliases: s
//
// Examples:
//   devtinder status              Show status
//   devtinder status --json       Status in JSON format
//
// Output Fields:
//   API        Base URL and reachability
//   Channel    Configured websocket endpoint
//   Session    Logged-in user, or "none"
//   Premium    Premium membership state
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/tinder4devs/devtinder-tui/internal/api"
	"github.com/tinder4devs/devtinder-tui/internal/config"
)

// statusReport is the JSON shape of the status command output.
type statusReport struct {
	BaseURL   string `json:"baseUrl"`
	SocketURL string `json:"socketUrl"`
	Reachable bool   `json:"reachable"`
	LoggedIn  bool   `json:"loggedIn"`
	User      string `json:"user,omitempty"`
	Premium   bool   `json:"premium"`
	Version   string `json:"version"`
}

// HandleStatus probes the API with the persisted session and reports state.
func HandleStatus(cfg *config.Config, args Args) int {
	client := api.NewClient(cfg.API.BaseURL).
		WithMaxRetries(0).
		WithTimeout(cfg.Timeout())

	if path, err := SessionPath(); err == nil {
		_ = client.LoadSession(path)
	}

	report := statusReport{
		BaseURL:   cfg.API.BaseURL,
		SocketURL: cfg.Channel.SocketURL,
		Version:   Version,
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout())
	defer cancel()

	profile, err := client.ProfileView(ctx)
	switch {
	case err == nil:
		report.Reachable = true
		report.LoggedIn = true
		report.User = profile.FullName()
		report.Premium = profile.IsPremium
		if ok, verr := client.VerifyPremium(ctx); verr == nil {
			report.Premium = ok
		}
	case errors.Is(err, api.ErrNoSession):
		report.Reachable = true
	}

	if args.JSON {
		out, merr := json.MarshalIndent(report, "", "  ")
		if merr != nil {
			fmt.Fprintln(os.Stderr, ErrorStyle.Render("Failed to encode status"))
			return 1
		}
		fmt.Println(string(out))
		return 0
	}

	fmt.Println(TitleStyle.Render("devtinder status"))
	fmt.Println(printField("API", report.BaseURL))
	fmt.Println(printField("Channel", report.SocketURL))

	if !report.Reachable {
		fmt.Println(printField("Server", ErrorStyle.Render("unreachable")))
		return 1
	}
	fmt.Println(printField("Server", SuccessStyle.Render("reachable")))

	if report.LoggedIn {
		fmt.Println(printField("Session", report.User))
		premium := "no"
		if report.Premium {
			premium = "yes"
		}
		fmt.Println(printField("Premium", premium))
	} else {
		fmt.Println(printField("Session", DimStyle.Render("none (run devtinder login)")))
	}
	return 0
}
