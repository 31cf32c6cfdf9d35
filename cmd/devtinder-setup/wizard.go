// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tinder4devs/devtinder-tui/internal/api"
	"github.com/tinder4devs/devtinder-tui/internal/config"
)

const probeTimeout = 5 * time.Second

// Phase is the wizard's current step.
type Phase int

const (
	PhaseWelcome Phase = iota
	PhaseServerURL
	PhaseProbing
	PhaseDone
	PhaseFailed
)

var (
	brandPrimary = lipgloss.Color("205")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(brandPrimary)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	okStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)

// Wizard is the interactive setup flow.
type Wizard struct {
	phase     Phase
	spinner   spinner.Model
	urlInput  textinput.Model
	cfg       *config.Config
	reachable bool
	errMsg    string
	width     int
	height    int
}

// NewWizard creates the setup wizard at the welcome phase.
func NewWizard() *Wizard {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(brandPrimary)

	cfg := config.Default()

	in := textinput.New()
	in.Placeholder = cfg.API.BaseURL
	in.Prompt = "> "
	in.CharLimit = 200
	in.Focus()

	return &Wizard{
		phase:    PhaseWelcome,
		spinner:  s,
		urlInput: in,
		cfg:      cfg,
	}
}

// Init implements tea.Model.
func (w *Wizard) Init() tea.Cmd {
	return w.spinner.Tick
}

type probeDoneMsg struct {
	reachable bool
	saveErr   error
}

// probeAndSave checks the server and writes the config in one step.
func (w *Wizard) probeAndSave() tea.Cmd {
	cfg := w.cfg
	return func() tea.Msg {
		client := api.NewClient(cfg.API.BaseURL).WithMaxRetries(0)
		ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
		defer cancel()

		_, err := client.ProfileView(ctx)
		reachable := err == nil || !isUnreachable(err)
		return probeDoneMsg{reachable: reachable, saveErr: config.Save(cfg)}
	}
}

func isUnreachable(err error) bool {
	return errors.Is(err, api.ErrUnavailable)
}

// Update implements tea.Model.
func (w *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		w.height = msg.Height
		return w, nil

	case tea.KeyMsg:
		return w.handleKey(msg)

	case probeDoneMsg:
		if msg.saveErr != nil {
			w.phase = PhaseFailed
			w.errMsg = "Could not write config: " + msg.saveErr.Error()
			return w, nil
		}
		w.reachable = msg.reachable
		w.phase = PhaseDone
		return w, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		w.spinner, cmd = w.spinner.Update(msg)
		return w, cmd
	}

	if w.phase == PhaseServerURL {
		var cmd tea.Cmd
		w.urlInput, cmd = w.urlInput.Update(msg)
		return w, cmd
	}
	return w, nil
}

func (w *Wizard) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		if w.phase != PhaseServerURL || msg.String() == "ctrl+c" {
			return w, tea.Quit
		}
	case "enter":
		switch w.phase {
		case PhaseWelcome:
			w.phase = PhaseServerURL
			return w, textinput.Blink
		case PhaseServerURL:
			if url := strings.TrimSpace(w.urlInput.Value()); url != "" {
				w.cfg.API.BaseURL = url
				w.cfg.Channel.SocketURL = deriveSocketURL(url)
			}
			if err := w.cfg.Validate(); err != nil {
				w.errMsg = "Invalid server URL"
				return w, nil
			}
			w.errMsg = ""
			w.phase = PhaseProbing
			return w, w.probeAndSave()
		case PhaseDone, PhaseFailed:
			return w, tea.Quit
		}
	}

	if w.phase == PhaseServerURL {
		var cmd tea.Cmd
		w.urlInput, cmd = w.urlInput.Update(msg)
		return w, cmd
	}
	return w, nil
}

// View implements tea.Model.
func (w *Wizard) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("devtinder setup"))
	b.WriteString("\n\n")

	switch w.phase {
	case PhaseWelcome:
		b.WriteString("Welcome! This wizard points the client at your Tinder4Devs\n")
		b.WriteString("server and writes " + configLocation() + ".\n\n")
		b.WriteString(dimStyle.Render("enter continue · q quit"))

	case PhaseServerURL:
		b.WriteString("Where does your server run?\n\n")
		b.WriteString(w.urlInput.View())
		b.WriteString("\n")
		if w.errMsg != "" {
			b.WriteString(warnStyle.Render(w.errMsg))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("enter to accept (blank keeps the default)"))

	case PhaseProbing:
		b.WriteString(w.spinner.View())
		b.WriteString(" Checking the server and saving your config...")

	case PhaseDone:
		if w.reachable {
			b.WriteString(okStyle.Render("[OK] Server reachable. Configuration saved."))
		} else {
			b.WriteString(warnStyle.Render("[WARN] Server not reachable, but the configuration was saved."))
			b.WriteString("\n")
			b.WriteString(dimStyle.Render("Start the server, then check with `devtinder status`."))
		}
		b.WriteString("\n\n")
		b.WriteString("Next: run " + titleStyle.Render("devtinder login") + ", then " + titleStyle.Render("devtinder") + ".\n\n")
		b.WriteString(dimStyle.Render("enter to finish"))

	case PhaseFailed:
		b.WriteString(warnStyle.Render("[FAIL] " + w.errMsg))
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("enter to exit"))
	}

	content := b.String()
	if w.width > 0 && w.height > 0 {
		return lipgloss.Place(w.width, w.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}

func configLocation() string {
	if path, err := config.ConfigPath(); err == nil {
		return path
	}
	return "~/.devtinder/config.toml"
}
