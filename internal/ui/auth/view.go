// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tinder4devs/devtinder-tui/internal/ui/styles"
	"github.com/tinder4devs/devtinder-tui/internal/util"
)

var fieldLabels = map[int]string{
	fieldEmail:       "Email",
	fieldPassword:    "Password",
	fieldFirstName:   "First name",
	fieldLastName:    "Last name",
	fieldBirthDate:   "Birth date",
	fieldGender:      "Gender",
	fieldPhotoURL:    "Photo URL",
	fieldSkills:      "Skills",
	fieldOTP:         "One-time code",
	fieldNewPassword: "New password",
}

// View renders the active form.
func (m *Model) View() string {
	var b strings.Builder

	switch m.mode {
	case ModeSignup:
		b.WriteString(m.theme.CardTitle.Render("Create your account"))
	case ModeForgot:
		b.WriteString(m.theme.CardTitle.Render("Reset your password"))
	default:
		b.WriteString(m.theme.CardTitle.Render("Welcome back"))
	}
	b.WriteString("\n\n")

	for i, idx := range m.focus {
		label := fieldLabels[idx]
		if i == m.cursor {
			b.WriteString(m.theme.InputLabel.Render(label))
		} else {
			b.WriteString(m.theme.ShortcutDesc.Render(label))
		}
		b.WriteString("\n")
		b.WriteString(m.inputs[idx].View())
		b.WriteString("\n")
		if errMsg, ok := m.fieldErrs[idx]; ok {
			b.WriteString(m.theme.InputError.Render(errMsg))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if m.submitting {
		b.WriteString(m.theme.ShortcutDesc.Render("Working..."))
		b.WriteString("\n")
	}
	if m.serverErr != "" {
		b.WriteString(styles.RenderError(m.serverErr))
		b.WriteString("\n")
	}
	if m.infoMsg != "" {
		b.WriteString(styles.RenderInfo(m.infoMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderHints())

	content := b.String()
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}

func (m *Model) renderHints() string {
	switch m.mode {
	case ModeSignup:
		return m.theme.ShortcutDesc.Render("enter submit  ·  F2 back to login")
	case ModeForgot:
		hint := "enter send code / reset  ·  F3 back to login"
		if m.cooldownLeft > 0 {
			secs := int(m.cooldownLeft.Seconds())
			elapsed := 100 * (1 - float64(m.cooldownLeft)/float64(otpCooldown))
			bar := styles.RenderProgressBar(10, elapsed)
			hint = "resend in " + util.IntToString(secs) + "s " + bar + "  ·  " + hint
		} else if m.infoMsg != "" {
			hint = "ctrl+s resend code  ·  " + hint
		}
		return m.theme.ShortcutDesc.Render(hint)
	default:
		return m.theme.ShortcutDesc.Render("enter log in  ·  F2 sign up  ·  F3 forgot password")
	}
}
