// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package account

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinder4devs/devtinder-tui/internal/api"
	"github.com/tinder4devs/devtinder-tui/internal/ui/components"
)

// Update handles account messages.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case savedMsg:
		m.saving = false
		if msg.err != nil {
			return m, components.ShowErrorWith(
				"Couldn't save your profile",
				saveErrMessage(msg.err),
			)
		}
		m.stores.Session.Set(msg.profile)
		return m, components.ShowSuccess("Profile saved")

	case premiumMsg:
		if msg.err != nil {
			// Status stays unknown; the section renders without a badge.
			return m, nil
		}
		m.premiumKnown = true
		m.premium = msg.isPremium
		if profile := m.stores.Session.Get(); profile != nil {
			profile.IsPremium = msg.isPremium
			m.stores.Session.Set(profile)
		}
		return m, nil

	case orderMsg:
		m.ordering = false
		if msg.err != nil {
			return m, components.ShowErrorWith(
				"Couldn't start checkout",
				saveErrMessage(msg.err),
			)
		}
		m.order = msg.order
		return m, components.ShowInfo("Order created. Complete payment in your browser, then press f5 to refresh.")
	}

	return m.routeToInput(msg)
}

func saveErrMessage(err error) string {
	if detail := api.ServerMessage(err); detail != "" {
		return detail
	}
	return "The server rejected the request. Try again."
}

func (m *Model) handleKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	if m.saving {
		return m, nil
	}

	switch msg.String() {
	case "tab", "down":
		m.cursor = (m.cursor + 1) % focusTotal
		m.applyFocus()
		return m, nil
	case "shift+tab", "up":
		m.cursor = (m.cursor - 1 + focusTotal) % focusTotal
		m.applyFocus()
		return m, nil
	case "ctrl+s":
		return m.save()
	case "f5":
		return m, m.verifyPremium()
	case "f10":
		return m, func() tea.Msg { return LogoutMsg{} }
	case "enter":
		switch m.cursor {
		case focusSilver:
			return m.buy(PlanSilver)
		case focusGold:
			return m.buy(PlanGold)
		default:
			return m.save()
		}
	}

	return m.routeToInput(msg)
}

func (m *Model) routeToInput(msg tea.Msg) (*Model, tea.Cmd) {
	if m.cursor >= fieldCount {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.cursor], cmd = m.inputs[m.cursor].Update(msg)
	return m, cmd
}

// save validates the form and issues the profile PATCH.
func (m *Model) save() (*Model, tea.Cmd) {
	if !m.validate() {
		return m, nil
	}

	age, _ := strconv.Atoi(strings.TrimSpace(m.inputs[fieldAge].Value()))
	edit := api.ProfileEdit{
		FirstName: strings.TrimSpace(m.inputs[fieldFirstName].Value()),
		LastName:  strings.TrimSpace(m.inputs[fieldLastName].Value()),
		Age:       age,
		Gender:    strings.ToLower(strings.TrimSpace(m.inputs[fieldGender].Value())),
		PhotoURL:  strings.TrimSpace(m.inputs[fieldPhotoURL].Value()),
		About:     strings.TrimSpace(m.inputs[fieldAbout].Value()),
		Skills:    parseSkills(m.inputs[fieldSkills].Value()),
	}
	m.saving = true
	return m, m.saveProfile(edit)
}

// buy starts premium checkout for the chosen plan.
func (m *Model) buy(plan string) (*Model, tea.Cmd) {
	if m.ordering || m.premium {
		return m, nil
	}
	m.ordering = true
	return m, m.createOrder(plan)
}
