// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinder4devs/devtinder-tui/internal/api"
	"github.com/tinder4devs/devtinder-tui/internal/model"
	"github.com/tinder4devs/devtinder-tui/internal/ui/styles"
)

func TestValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"ada@example.com", true},
		{"a@b.co", true},
		{"", false},
		{"no-at-sign", false},
		{"@leading.com", false},
		{"trailing@nodot", false},
	}
	for _, tt := range tests {
		if got := validEmail(tt.email); got != tt.want {
			t.Errorf("validEmail(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}

func TestLoginValidationBlocksSubmit(t *testing.T) {
	m := New(styles.NewTheme(), api.NewClient("http://localhost:0"))

	m.inputs[fieldEmail].SetValue("not-an-email")
	m.inputs[fieldPassword].SetValue("")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("invalid form produced a submit command")
	}
	if m.fieldErrs[fieldEmail] == "" || m.fieldErrs[fieldPassword] == "" {
		t.Errorf("fieldErrs = %v, want inline errors for both fields", m.fieldErrs)
	}
	if !strings.Contains(m.View(), "valid email") {
		t.Error("view missing inline email error")
	}
}

func TestLoginSuccessEmitsProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(model.Profile{ID: "u1", FirstName: "Ada"})
	}))
	defer srv.Close()

	m := New(styles.NewTheme(), api.NewClient(srv.URL).WithMaxRetries(0))
	m.inputs[fieldEmail].SetValue("ada@example.com")
	m.inputs[fieldPassword].SetValue("secretpass")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("valid form produced no command")
	}
	m, cmd = m.Update(cmd())
	if cmd == nil {
		t.Fatal("login result produced no follow-up")
	}

	success, ok := cmd().(SuccessMsg)
	if !ok {
		t.Fatalf("follow-up = %T, want SuccessMsg", cmd())
	}
	if success.Profile == nil || success.Profile.FirstName != "Ada" {
		t.Errorf("profile = %+v", success.Profile)
	}
}

func TestLoginFailureShowsServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials!"})
	}))
	defer srv.Close()

	m := New(styles.NewTheme(), api.NewClient(srv.URL).WithMaxRetries(0))
	m.inputs[fieldEmail].SetValue("ada@example.com")
	m.inputs[fieldPassword].SetValue("wrongpass")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = m.Update(cmd())

	if m.serverErr != "Invalid credentials!" {
		t.Errorf("serverErr = %q, want the server's wording", m.serverErr)
	}
}

func TestSignupRequiresAllFields(t *testing.T) {
	m := New(styles.NewTheme(), api.NewClient("http://localhost:0"))
	m.SetMode(ModeSignup)

	m.inputs[fieldEmail].SetValue("ada@example.com")
	m.inputs[fieldPassword].SetValue("short")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("incomplete signup form submitted")
	}
	for _, idx := range []int{fieldFirstName, fieldLastName, fieldPassword} {
		if m.fieldErrs[idx] == "" {
			t.Errorf("missing inline error for field %d", idx)
		}
	}
}

// fillSignup populates every signup field with acceptable values.
func fillSignup(m *Model) {
	m.inputs[fieldFirstName].SetValue("Ada")
	m.inputs[fieldLastName].SetValue("Lovelace")
	m.inputs[fieldEmail].SetValue("ada@example.com")
	m.inputs[fieldPassword].SetValue("Analytical1")
	m.inputs[fieldBirthDate].SetValue("1990-12-10")
	m.inputs[fieldGender].SetValue("female")
	m.inputs[fieldPhotoURL].SetValue("https://example.com/ada.png")
	m.inputs[fieldSkills].SetValue("go, math")
}

func TestSignupValidationRules(t *testing.T) {
	tests := []struct {
		name   string
		field  int
		value  string
		errIdx int
	}{
		{"password without upper or digit", fieldPassword, "aaaaaaaa", fieldPassword},
		{"password without digit", fieldPassword, "Aaaaaaaa", fieldPassword},
		{"password too short", fieldPassword, "Aa1", fieldPassword},
		{"numeric first name", fieldFirstName, "ada42", fieldFirstName},
		{"unparseable birth date", fieldBirthDate, "next tuesday", fieldBirthDate},
		{"underage birth date", fieldBirthDate, time.Now().AddDate(-17, 0, 0).Format("2006-01-02"), fieldBirthDate},
		{"unknown gender", fieldGender, "robot", fieldGender},
		{"photo url without scheme", fieldPhotoURL, "example.com/ada.png", fieldPhotoURL},
		{"skills with punctuation", fieldSkills, "go; DROP TABLE", fieldSkills},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(styles.NewTheme(), api.NewClient("http://localhost:0"))
			m.SetMode(ModeSignup)
			fillSignup(m)
			m.inputs[tt.field].SetValue(tt.value)

			m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
			if cmd != nil {
				t.Fatal("invalid signup form submitted")
			}
			if m.fieldErrs[tt.errIdx] == "" {
				t.Errorf("fieldErrs = %v, want inline error for field %d", m.fieldErrs, tt.errIdx)
			}
		})
	}
}

func TestSignupSuccessAutoLogsIn(t *testing.T) {
	var gotSignup api.SignupRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/signup":
			json.NewDecoder(r.Body).Decode(&gotSignup)
			json.NewEncoder(w).Encode(map[string]any{
				"message": "created",
				"data":    model.Profile{ID: "u1", FirstName: "Ada"},
			})
		case "/login":
			json.NewEncoder(w).Encode(model.Profile{ID: "u1", FirstName: "Ada"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	m := New(styles.NewTheme(), api.NewClient(srv.URL).WithMaxRetries(0))
	m.SetMode(ModeSignup)
	fillSignup(m)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("valid signup form produced no command")
	}
	m, cmd = m.Update(cmd())
	if cmd == nil {
		t.Fatal("signup result produced no follow-up")
	}
	success, ok := cmd().(SuccessMsg)
	if !ok {
		t.Fatalf("follow-up = %T, want SuccessMsg", cmd())
	}
	if success.Profile == nil || success.Profile.FirstName != "Ada" {
		t.Errorf("profile = %+v", success.Profile)
	}
	if gotSignup.Gender != "female" || len(gotSignup.Skills) != 2 || gotSignup.BirthDate != "1990-12-10" {
		t.Errorf("signup payload = %+v", gotSignup)
	}
}

func TestOTPCooldownBlocksResend(t *testing.T) {
	var sends atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sends.Add(1)
		json.NewEncoder(w).Encode(map[string]string{"message": "code sent"})
	}))
	defer srv.Close()

	m := New(styles.NewTheme(), api.NewClient(srv.URL).WithMaxRetries(0))
	m.SetMode(ModeForgot)
	m.inputs[fieldEmail].SetValue("ada@example.com")

	// First send.
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("no send command produced")
	}
	m, _ = m.Update(cmd())
	if m.cooldownLeft != otpCooldown {
		t.Errorf("cooldownLeft = %v, want %v", m.cooldownLeft, otpCooldown)
	}

	// Resend during cooldown must be refused without a network call.
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd != nil {
		t.Error("resend during cooldown produced a command")
	}
	if sends.Load() != 1 {
		t.Errorf("sends = %d, want 1", sends.Load())
	}
}

func TestCooldownCountsDown(t *testing.T) {
	m := New(styles.NewTheme(), api.NewClient("http://localhost:0"))
	m.SetMode(ModeForgot)
	m.cooldownLeft = 2 * time.Second

	m, cmd := m.Update(cooldownTickMsg{})
	if m.cooldownLeft != time.Second {
		t.Errorf("cooldownLeft = %v, want 1s", m.cooldownLeft)
	}
	if cmd == nil {
		t.Error("countdown stopped early")
	}
	if !strings.Contains(m.View(), styles.ProgressFull) {
		t.Error("view missing cooldown progress bar")
	}

	m, cmd = m.Update(cooldownTickMsg{})
	if m.cooldownLeft != 0 {
		t.Errorf("cooldownLeft = %v, want 0", m.cooldownLeft)
	}
	if cmd != nil {
		t.Error("countdown kept ticking at zero")
	}
}

func TestModeSwitchClearsCooldown(t *testing.T) {
	m := New(styles.NewTheme(), api.NewClient("http://localhost:0"))
	m.SetMode(ModeForgot)
	m.cooldownLeft = 10 * time.Second

	m.SetMode(ModeLogin)
	if m.cooldownLeft != 0 {
		t.Error("cooldown survived mode switch")
	}
}
