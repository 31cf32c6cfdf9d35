// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package account renders the profile editor and premium membership views.
package account

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinder4devs/devtinder-tui/internal/api"
	"github.com/tinder4devs/devtinder-tui/internal/model"
	"github.com/tinder4devs/devtinder-tui/internal/store"
	"github.com/tinder4devs/devtinder-tui/internal/ui/styles"
)

// Editable form fields, in focus order. The two plan entries sit after the
// inputs in the same cycle so tab reaches everything.
const (
	fieldFirstName = iota
	fieldLastName
	fieldAge
	fieldGender
	fieldPhotoURL
	fieldAbout
	fieldSkills
	fieldCount

	focusSilver = fieldCount
	focusGold   = fieldCount + 1
	focusTotal  = fieldCount + 2
)

// Membership plans offered at checkout.
const (
	PlanSilver = "silver"
	PlanGold   = "gold"
)

// LogoutMsg asks the app to end the session.
type LogoutMsg struct{}

// Model is the account view: a profile edit form with a live card preview,
// plus the premium membership section.
type Model struct {
	theme  *styles.Theme
	stores *store.Stores
	client *api.Client

	inputs [fieldCount]textinput.Model
	cursor int

	saving    bool
	fieldErrs map[int]string

	// Premium state. premiumKnown distinguishes "not premium" from
	// "verify has not completed yet".
	premium      bool
	premiumKnown bool
	order        *api.PaymentOrder
	ordering     bool

	width  int
	height int
}

// New builds an unmounted account model.
func New(theme *styles.Theme, stores *store.Stores, client *api.Client) *Model {
	m := &Model{
		theme:     theme,
		stores:    stores,
		client:    client,
		fieldErrs: make(map[int]string),
	}

	mk := func(placeholder string, limit int) textinput.Model {
		in := textinput.New()
		in.Placeholder = placeholder
		in.CharLimit = limit
		in.Prompt = ""
		in.PlaceholderStyle = theme.InputPlaceholder
		return in
	}

	m.inputs[fieldFirstName] = mk("First name", 50)
	m.inputs[fieldLastName] = mk("Last name", 50)
	m.inputs[fieldAge] = mk("Age", 3)
	m.inputs[fieldGender] = mk("male / female / other", 10)
	m.inputs[fieldPhotoURL] = mk("https://...", 300)
	m.inputs[fieldAbout] = mk("A few lines about you", 500)
	m.inputs[fieldSkills] = mk("go, postgres, kubernetes", 200)

	return m
}

// SetSize updates layout dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Mount loads the session profile into the form and refreshes premium status.
func (m *Model) Mount() tea.Cmd {
	profile := m.stores.Session.Get()
	if profile != nil {
		m.inputs[fieldFirstName].SetValue(profile.FirstName)
		m.inputs[fieldLastName].SetValue(profile.LastName)
		if profile.Age > 0 {
			m.inputs[fieldAge].SetValue(strconv.Itoa(profile.Age))
		}
		m.inputs[fieldGender].SetValue(profile.Gender)
		m.inputs[fieldPhotoURL].SetValue(profile.PhotoURL)
		m.inputs[fieldAbout].SetValue(profile.About)
		m.inputs[fieldSkills].SetValue(strings.Join(profile.Skills, ", "))
		m.premium = profile.IsPremium
	}
	m.fieldErrs = make(map[int]string)
	m.order = nil
	m.cursor = 0
	m.applyFocus()
	return tea.Batch(m.verifyPremium(), textinput.Blink)
}

func (m *Model) applyFocus() {
	for i := range m.inputs {
		if i == m.cursor {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

// preview assembles a profile from the current form values for the live card.
func (m *Model) preview() model.Profile {
	base := m.stores.Session.Get()
	p := model.Profile{IsPremium: m.premium}
	if base != nil {
		p.ID = base.ID
	}
	p.FirstName = strings.TrimSpace(m.inputs[fieldFirstName].Value())
	p.LastName = strings.TrimSpace(m.inputs[fieldLastName].Value())
	p.Age, _ = strconv.Atoi(strings.TrimSpace(m.inputs[fieldAge].Value()))
	p.Gender = strings.TrimSpace(m.inputs[fieldGender].Value())
	p.PhotoURL = strings.TrimSpace(m.inputs[fieldPhotoURL].Value())
	p.About = strings.TrimSpace(m.inputs[fieldAbout].Value())
	p.Skills = parseSkills(m.inputs[fieldSkills].Value())
	return p
}

// parseSkills splits a comma-separated list, dropping blanks.
func parseSkills(s string) []string {
	var skills []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}
	return skills
}

// validate fills fieldErrs. Returns true when the form can be saved.
func (m *Model) validate() bool {
	m.fieldErrs = make(map[int]string)

	if strings.TrimSpace(m.inputs[fieldFirstName].Value()) == "" {
		m.fieldErrs[fieldFirstName] = "First name is required"
	}
	if strings.TrimSpace(m.inputs[fieldLastName].Value()) == "" {
		m.fieldErrs[fieldLastName] = "Last name is required"
	}
	if raw := strings.TrimSpace(m.inputs[fieldAge].Value()); raw != "" {
		age, err := strconv.Atoi(raw)
		if err != nil || age < 18 {
			m.fieldErrs[fieldAge] = "Age must be a number, 18 or older"
		}
	}
	if g := strings.TrimSpace(m.inputs[fieldGender].Value()); g != "" {
		switch strings.ToLower(g) {
		case "male", "female", "other":
		default:
			m.fieldErrs[fieldGender] = "Use male, female, or other"
		}
	}
	if u := strings.TrimSpace(m.inputs[fieldPhotoURL].Value()); u != "" {
		if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			m.fieldErrs[fieldPhotoURL] = "Photo must be an http(s) URL"
		}
	}
	return len(m.fieldErrs) == 0
}

// =============================================================================
// MESSAGES AND COMMANDS
// =============================================================================

type savedMsg struct {
	profile *model.Profile
	err     error
}

type premiumMsg struct {
	isPremium bool
	err       error
}

type orderMsg struct {
	order *api.PaymentOrder
	err   error
}

func (m *Model) saveProfile(edit api.ProfileEdit) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), api.DefaultTimeout)
		defer cancel()
		profile, err := client.EditProfile(ctx, edit)
		return savedMsg{profile: profile, err: err}
	}
}

func (m *Model) verifyPremium() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), api.DefaultTimeout)
		defer cancel()
		isPremium, err := client.VerifyPremium(ctx)
		return premiumMsg{isPremium: isPremium, err: err}
	}
}

func (m *Model) createOrder(plan string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), api.DefaultTimeout)
		defer cancel()
		order, err := client.CreatePaymentOrder(ctx, plan)
		return orderMsg{order: order, err: err}
	}
}
