// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinder4devs/devtinder-tui/internal/api"
)

// Update handles auth messages.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case loginResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.serverErr = loginErrMessage(msg.err)
			return m, nil
		}
		return m, func() tea.Msg { return SuccessMsg{Profile: msg.profile} }

	case signupResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.serverErr = loginErrMessage(msg.err)
			return m, nil
		}
		return m, func() tea.Msg { return SuccessMsg{Profile: msg.profile} }

	case otpSentMsg:
		m.submitting = false
		if msg.err != nil {
			m.serverErr = loginErrMessage(msg.err)
			return m, nil
		}
		m.infoMsg = msg.confirmation
		if m.infoMsg == "" {
			m.infoMsg = "Check your email for the one-time code"
		}
		m.cooldownLeft = otpCooldown
		return m, cooldownTick()

	case resetResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.serverErr = loginErrMessage(msg.err)
			return m, nil
		}
		m.SetMode(ModeLogin)
		m.infoMsg = "Password updated. Log in with your new password."
		return m, nil

	case cooldownTickMsg:
		if m.cooldownLeft > 0 {
			m.cooldownLeft -= time.Second
			if m.cooldownLeft > 0 {
				return m, cooldownTick()
			}
		}
		return m, nil
	}

	// Route everything else to the focused input.
	idx := m.focus[m.cursor]
	var cmd tea.Cmd
	m.inputs[idx], cmd = m.inputs[idx].Update(msg)
	return m, cmd
}

// loginErrMessage maps an API failure to user-facing wording.
func loginErrMessage(err error) string {
	if detail := api.ServerMessage(err); detail != "" {
		return detail
	}
	if errors.Is(err, api.ErrNoSession) {
		return "Invalid credentials"
	}
	if errors.Is(err, api.ErrUnavailable) {
		return "Can't reach the server. Is it running?"
	}
	return "Something went wrong. Try again."
}

func (m *Model) handleKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}

	switch msg.String() {
	case "tab", "down":
		m.cursor = (m.cursor + 1) % len(m.focus)
		m.applyFocus()
		return m, nil
	case "shift+tab", "up":
		m.cursor = (m.cursor - 1 + len(m.focus)) % len(m.focus)
		m.applyFocus()
		return m, nil
	case "enter":
		return m.submit()
	case "ctrl+s":
		if m.mode == ModeForgot {
			return m.resendOTP()
		}
	}

	// Mode switches only from blank shortcut positions would fight typing;
	// use function keys instead.
	switch msg.String() {
	case "f2":
		if m.mode != ModeSignup {
			m.SetMode(ModeSignup)
		} else {
			m.SetMode(ModeLogin)
		}
		return m, nil
	case "f3":
		if m.mode != ModeForgot {
			m.SetMode(ModeForgot)
		} else {
			m.SetMode(ModeLogin)
		}
		return m, nil
	}

	idx := m.focus[m.cursor]
	var cmd tea.Cmd
	m.inputs[idx], cmd = m.inputs[idx].Update(msg)
	return m, cmd
}

// submit validates and dispatches the active form.
func (m *Model) submit() (*Model, tea.Cmd) {
	m.serverErr = ""
	if !m.validate() {
		return m, nil
	}

	email := strings.TrimSpace(m.inputs[fieldEmail].Value())

	switch m.mode {
	case ModeLogin:
		m.submitting = true
		return m, m.doLogin(email, m.inputs[fieldPassword].Value())

	case ModeSignup:
		m.submitting = true
		return m, m.doSignup(api.SignupRequest{
			FirstName: strings.TrimSpace(m.inputs[fieldFirstName].Value()),
			LastName:  strings.TrimSpace(m.inputs[fieldLastName].Value()),
			EmailID:   email,
			Password:  m.inputs[fieldPassword].Value(),
			BirthDate: strings.TrimSpace(m.inputs[fieldBirthDate].Value()),
			Gender:    strings.ToLower(strings.TrimSpace(m.inputs[fieldGender].Value())),
			PhotoURL:  strings.TrimSpace(m.inputs[fieldPhotoURL].Value()),
			Skills:    splitSkills(m.inputs[fieldSkills].Value()),
		})

	case ModeForgot:
		// Before a code exists, enter sends one; after, enter resets.
		if m.inputs[fieldOTP].Value() == "" {
			return m.resendOTP()
		}
		m.submitting = true
		return m, m.doReset(email, m.inputs[fieldOTP].Value(), m.inputs[fieldNewPassword].Value())
	}
	return m, nil
}

// resendOTP requests a fresh code, honoring the cooldown.
func (m *Model) resendOTP() (*Model, tea.Cmd) {
	if m.cooldownLeft > 0 {
		return m, nil
	}
	email := strings.TrimSpace(m.inputs[fieldEmail].Value())
	if !validEmail(email) {
		m.fieldErrs[fieldEmail] = "Enter a valid email address"
		return m, nil
	}
	m.submitting = true
	return m, m.doSendOTP(email)
}
