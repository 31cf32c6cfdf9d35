// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package account

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tinder4devs/devtinder-tui/internal/ui/components"
	"github.com/tinder4devs/devtinder-tui/internal/util"
)

var fieldLabels = [fieldCount]string{
	fieldFirstName: "First name",
	fieldLastName:  "Last name",
	fieldAge:       "Age",
	fieldGender:    "Gender",
	fieldPhotoURL:  "Photo URL",
	fieldAbout:     "About",
	fieldSkills:    "Skills",
}

// View renders the edit form beside a live preview of the resulting card.
func (m *Model) View() string {
	form := m.renderForm()
	preview := components.RenderCard(m.theme, m.preview(), components.CardOptions{
		Width: 48,
		Front: true,
	})

	body := lipgloss.JoinHorizontal(lipgloss.Top, form, "   ", preview)

	var b strings.Builder
	b.WriteString(body)
	b.WriteString("\n\n")
	b.WriteString(m.renderPremium())
	b.WriteString("\n\n")
	b.WriteString(m.theme.ShortcutDesc.Render("ctrl+s save  ·  tab next field  ·  f5 refresh premium  ·  f10 log out"))
	return b.String()
}

func (m *Model) renderForm() string {
	var b strings.Builder
	b.WriteString(m.theme.CardTitle.Render("Your profile"))
	b.WriteString("\n\n")

	for i := range m.inputs {
		label := fieldLabels[i]
		if m.cursor == i {
			b.WriteString(m.theme.InputLabel.Render(label))
		} else {
			b.WriteString(m.theme.ShortcutDesc.Render(label))
		}
		b.WriteString("\n")
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
		if errText, ok := m.fieldErrs[i]; ok {
			b.WriteString(m.theme.InputError.Render(errText))
			b.WriteString("\n")
		}
	}

	if m.saving {
		b.WriteString("\n")
		b.WriteString(m.theme.ShortcutDesc.Render("Saving..."))
	}
	return b.String()
}

// renderPremium shows membership status, the plan picker, or the pending order.
func (m *Model) renderPremium() string {
	var b strings.Builder
	b.WriteString(m.theme.CardTitle.Render("Premium"))
	b.WriteString("\n")

	switch {
	case m.premium:
		b.WriteString(m.theme.BadgePremium.Render("PRO") + " " + m.theme.RowDetail.Render("You're a premium member."))

	case m.order != nil:
		b.WriteString(m.theme.RowName.Render("Order " + m.order.OrderID))
		b.WriteString("\n")
		amount := util.Int64ToString(m.order.Amount/100) + " " + m.order.Currency
		b.WriteString(m.theme.RowDetail.Render(m.order.Notes.MembershipType + " plan · " + amount))
		b.WriteString("\n")
		b.WriteString(m.theme.ShortcutDesc.Render("Complete payment externally, then press f5 to verify."))

	default:
		b.WriteString(m.renderPlan(focusSilver, "Silver", "3 months of chat and verified badge"))
		b.WriteString("\n")
		b.WriteString(m.renderPlan(focusGold, "Gold", "6 months, plus unlimited requests"))
		if m.ordering {
			b.WriteString("\n")
			b.WriteString(m.theme.ShortcutDesc.Render("Creating order..."))
		}
	}
	return b.String()
}

func (m *Model) renderPlan(focus int, name, detail string) string {
	line := name + " · " + detail
	if m.cursor == focus {
		return m.theme.RowSelected.Render("> " + line + "  (enter to buy)")
	}
	return m.theme.Row.Render("  " + line)
}
