// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth implements the login, signup, and password-reset views.
//
// Validation is client-side and inline: a submission with invalid fields
// never leaves the process. Server rejections render the server's own
// message. The OTP resend button carries an independent cooldown timer,
// cleared when the view unmounts.
package auth

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinder4devs/devtinder-tui/internal/api"
	"github.com/tinder4devs/devtinder-tui/internal/model"
	"github.com/tinder4devs/devtinder-tui/internal/ui/styles"
)

// Mode selects which form the view shows.
type Mode int

const (
	// ModeLogin is the email/password form.
	ModeLogin Mode = iota
	// ModeSignup is the registration form.
	ModeSignup
	// ModeForgot is the OTP password-reset form.
	ModeForgot
)

const (
	// otpCooldown is how long the resend button stays disabled after a send.
	otpCooldown = 30 * time.Second

	minPasswordLen = 8
)

// SuccessMsg reports a completed login; the app installs the profile and
// routes to the feed.
type SuccessMsg struct {
	Profile *model.Profile
}

// Field indexes per mode.
const (
	fieldEmail = iota
	fieldPassword
	fieldFirstName
	fieldLastName
	fieldBirthDate
	fieldGender
	fieldPhotoURL
	fieldSkills
	fieldOTP
	fieldNewPassword
	fieldCount
)

// Model is the authentication view.
type Model struct {
	theme  *styles.Theme
	client *api.Client

	mode   Mode
	inputs [fieldCount]textinput.Model
	focus  []int // ordered focusable fields for the current mode
	cursor int

	fieldErrs  map[int]string
	serverErr  string
	submitting bool
	infoMsg    string

	// OTP resend cooldown; zero when ready.
	cooldownLeft time.Duration

	width  int
	height int
}

// New creates the auth view in login mode.
func New(theme *styles.Theme, client *api.Client) *Model {
	m := &Model{
		theme:     theme,
		client:    client,
		fieldErrs: make(map[int]string),
	}

	mk := func(placeholder string, secret bool) textinput.Model {
		in := textinput.New()
		in.Placeholder = placeholder
		in.CharLimit = 120
		in.Prompt = "> "
		if secret {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '*'
		}
		return in
	}

	m.inputs[fieldEmail] = mk("email", false)
	m.inputs[fieldPassword] = mk("password", true)
	m.inputs[fieldFirstName] = mk("first name", false)
	m.inputs[fieldLastName] = mk("last name", false)
	m.inputs[fieldBirthDate] = mk("birth date (YYYY-MM-DD)", false)
	m.inputs[fieldGender] = mk("gender (male/female/other)", false)
	m.inputs[fieldPhotoURL] = mk("photo url (optional)", false)
	m.inputs[fieldSkills] = mk("skills, comma separated (optional)", false)
	m.inputs[fieldOTP] = mk("one-time code", false)
	m.inputs[fieldNewPassword] = mk("new password", true)

	m.SetMode(ModeLogin)
	return m
}

// SetSize updates the layout bounds.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Mode returns the active form.
func (m *Model) Mode() Mode {
	return m.mode
}

// SetMode switches forms and resets transient state. The OTP cooldown is a
// per-mount timer: switching away clears it.
func (m *Model) SetMode(mode Mode) {
	m.mode = mode
	m.cursor = 0
	m.fieldErrs = make(map[int]string)
	m.serverErr = ""
	m.infoMsg = ""
	m.submitting = false
	m.cooldownLeft = 0

	switch mode {
	case ModeSignup:
		m.focus = []int{
			fieldFirstName, fieldLastName, fieldEmail, fieldPassword,
			fieldBirthDate, fieldGender, fieldPhotoURL, fieldSkills,
		}
	case ModeForgot:
		m.focus = []int{fieldEmail, fieldOTP, fieldNewPassword}
	default:
		m.focus = []int{fieldEmail, fieldPassword}
	}
	m.applyFocus()
}

func (m *Model) applyFocus() {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.inputs[m.focus[m.cursor]].Focus()
}

// =============================================================================
// VALIDATION
// =============================================================================

// validEmail is a loose structural check; the server is the authority.
func validEmail(s string) bool {
	at := strings.Index(s, "@")
	return at > 0 && strings.Contains(s[at:], ".")
}

// strongPassword requires minPasswordLen characters with at least one
// uppercase letter, one lowercase letter, and one digit.
func strongPassword(s string) bool {
	if len(s) < minPasswordLen {
		return false
	}
	var upper, lower, digit bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit
}

// alphaName accepts letters only; the server rejects anything else.
func alphaName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// splitSkills turns "go, sql" into {"go", "sql"}, dropping blanks.
func splitSkills(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// validSkills accepts a comma-separated list of alphanumeric entries.
func validSkills(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != ',' && r != ' ' {
			return false
		}
	}
	return true
}

// ageFromBirthDate computes whole years elapsed since a YYYY-MM-DD date.
func ageFromBirthDate(s string, now time.Time) (int, error) {
	birth, err := time.Parse("2006-01-02", s)
	if err != nil {
		return 0, err
	}
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() ||
		(now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age, nil
}

// validate fills fieldErrs for the current mode. Returns true when clean.
func (m *Model) validate() bool {
	m.fieldErrs = make(map[int]string)

	email := strings.TrimSpace(m.inputs[fieldEmail].Value())
	if !validEmail(email) {
		m.fieldErrs[fieldEmail] = "Enter a valid email address"
	}

	switch m.mode {
	case ModeLogin:
		if m.inputs[fieldPassword].Value() == "" {
			m.fieldErrs[fieldPassword] = "Password is required"
		}
	case ModeSignup:
		if !alphaName(strings.TrimSpace(m.inputs[fieldFirstName].Value())) {
			m.fieldErrs[fieldFirstName] = "First name must be letters only"
		}
		if !alphaName(strings.TrimSpace(m.inputs[fieldLastName].Value())) {
			m.fieldErrs[fieldLastName] = "Last name must be letters only"
		}
		if !strongPassword(m.inputs[fieldPassword].Value()) {
			m.fieldErrs[fieldPassword] = "Password needs 8+ characters with upper, lower, and a digit"
		}
		if age, err := ageFromBirthDate(strings.TrimSpace(m.inputs[fieldBirthDate].Value()), time.Now()); err != nil {
			m.fieldErrs[fieldBirthDate] = "Enter your birth date as YYYY-MM-DD"
		} else if age < 18 {
			m.fieldErrs[fieldBirthDate] = "You must be at least 18 years old"
		}
		switch strings.ToLower(strings.TrimSpace(m.inputs[fieldGender].Value())) {
		case "male", "female", "other":
		default:
			m.fieldErrs[fieldGender] = "Gender must be male, female, or other"
		}
		if photo := strings.TrimSpace(m.inputs[fieldPhotoURL].Value()); photo != "" &&
			!strings.HasPrefix(photo, "http://") && !strings.HasPrefix(photo, "https://") {
			m.fieldErrs[fieldPhotoURL] = "Photo URL must start with http:// or https://"
		}
		if !validSkills(m.inputs[fieldSkills].Value()) {
			m.fieldErrs[fieldSkills] = "Skills may only contain letters, numbers, and commas"
		}
	case ModeForgot:
		// OTP and new password are only required once a code was sent.
		if m.inputs[fieldOTP].Value() != "" && len(m.inputs[fieldNewPassword].Value()) < minPasswordLen {
			m.fieldErrs[fieldNewPassword] = "Password must be at least 8 characters"
		}
	}
	return len(m.fieldErrs) == 0
}

// =============================================================================
// MESSAGES AND COMMANDS
// =============================================================================

type loginResultMsg struct {
	profile *model.Profile
	err     error
}

type signupResultMsg struct {
	profile *model.Profile
	err     error
}

type otpSentMsg struct {
	confirmation string
	err          error
}

type resetResultMsg struct {
	err error
}

type cooldownTickMsg struct{}

func cooldownTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return cooldownTickMsg{}
	})
}

func (m *Model) doLogin(email, password string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), api.DefaultTimeout)
		defer cancel()
		profile, err := client.Login(ctx, email, password)
		return loginResultMsg{profile: profile, err: err}
	}
}

func (m *Model) doSignup(req api.SignupRequest) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), api.DefaultTimeout)
		defer cancel()
		if _, err := client.Signup(ctx, req); err != nil {
			return signupResultMsg{err: err}
		}
		// Registration does not establish the session; log in with the
		// same credentials to get the cookie.
		logged, err := client.Login(ctx, req.EmailID, req.Password)
		return signupResultMsg{profile: logged, err: err}
	}
}

func (m *Model) doSendOTP(email string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), api.DefaultTimeout)
		defer cancel()
		confirmation, err := client.SendOTP(ctx, email)
		return otpSentMsg{confirmation: confirmation, err: err}
	}
}

func (m *Model) doReset(email, otp, password string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), api.DefaultTimeout)
		defer cancel()
		return resetResultMsg{err: client.ResetPassword(ctx, email, otp, password)}
	}
}
