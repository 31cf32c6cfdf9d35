// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// auth_cmd.go - login and logout command handlers.
//
// Command: login
// Short:   Authenticate and persist the session cookie
//
// Examples:
//   devtinder login                   Prompt for email and password
//   devtinder login --email a@b.com   Prompt for password only
//
// Command: logout
// Short:   End the server session and remove local state
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tinder4devs/devtinder-tui/internal/api"
	"github.com/tinder4devs/devtinder-tui/internal/config"
)

// SessionPath returns the location of the persisted session cookie.
func SessionPath() (string, error) {
	dir, err := config.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "session.json"), nil
}

// HandleLogin runs the interactive login flow and persists the cookie.
func HandleLogin(cfg *config.Config, args Args) int {
	if err := RequiresTTY("login"); err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render(err.Error()))
		return 1
	}

	email := strings.TrimSpace(args.Email)
	prompter := NewPrompter()
	defer prompter.Close()

	if email == "" {
		var err error
		email, err = prompter.ReadLine("Email: ")
		if err != nil {
			fmt.Fprintln(os.Stderr, ErrorStyle.Render("Login aborted"))
			return 1
		}
		email = strings.TrimSpace(email)
	}
	if email == "" {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Email is required"))
		return 1
	}

	password, err := prompter.ReadPassword("Password: ")
	if err != nil || password == "" {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Password is required"))
		return 1
	}

	client := api.NewClient(cfg.API.BaseURL).
		WithMaxRetries(cfg.API.MaxRetries).
		WithTimeout(cfg.Timeout())

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout())
	defer cancel()

	profile, err := client.Login(ctx, email, password)
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Login failed: "+loginFailureDetail(err)))
		return 1
	}

	path, err := SessionPath()
	if err == nil {
		err = client.SaveSession(path)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Logged in, but the session could not be saved: "+err.Error()))
		return 1
	}

	fmt.Println(SuccessStyle.Render("Logged in as " + profile.FullName()))
	fmt.Println(DimStyle.Render("Session saved. Run devtinder to start swiping."))
	return 0
}

func loginFailureDetail(err error) string {
	if detail := api.ServerMessage(err); detail != "" {
		return detail
	}
	return err.Error()
}

// HandleLogout invalidates the server session and deletes the saved cookie.
// Local state is removed even when the server call fails.
func HandleLogout(cfg *config.Config, args Args) int {
	client := api.NewClient(cfg.API.BaseURL).
		WithMaxRetries(cfg.API.MaxRetries).
		WithTimeout(cfg.Timeout())

	path, pathErr := SessionPath()
	if pathErr == nil {
		_ = client.LoadSession(path)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout())
	defer cancel()

	serverErr := client.Logout(ctx)

	if pathErr == nil {
		if err := api.ClearSession(path); err != nil {
			fmt.Fprintln(os.Stderr, ErrorStyle.Render("Could not remove session file: "+err.Error()))
			return 1
		}
	}

	if serverErr != nil {
		if !args.Quiet {
			fmt.Println(DimStyle.Render("Server logout failed; local session cleared anyway."))
		}
		return 0
	}
	fmt.Println(SuccessStyle.Render("Logged out"))
	return 0
}
