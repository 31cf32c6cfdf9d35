// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"encoding/json"
	"testing"
)

// =============================================================================
// PROFILE TESTS
// =============================================================================

func TestProfile_FullName(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		want    string
	}{
		{"both names", Profile{FirstName: "Ada", LastName: "Lovelace"}, "Ada Lovelace"},
		{"lowercase from api", Profile{FirstName: "ada", LastName: "lovelace"}, "Ada Lovelace"},
		{"first only", Profile{FirstName: "Ada"}, "Ada"},
		{"empty", Profile{}, "Unknown"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.profile.FullName(); got != tc.want {
				t.Errorf("FullName() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestProfile_Labels(t *testing.T) {
	p := Profile{Gender: "female", Skills: []string{"go", " react "}}

	if got := p.GenderLabel(); got != "Female" {
		t.Errorf("GenderLabel() = %q, want Female", got)
	}

	labels := p.SkillLabels()
	if len(labels) != 2 || labels[0] != "Go" || labels[1] != "React" {
		t.Errorf("SkillLabels() = %v", labels)
	}

	empty := Profile{}
	if empty.GenderLabel() != "" {
		t.Error("empty gender should produce empty label")
	}
	if empty.SkillLabels() != nil {
		t.Error("no skills should produce nil labels")
	}
}

func TestProfile_Initials(t *testing.T) {
	p := Profile{FirstName: "ada", LastName: "lovelace"}
	if got := p.Initials(); got != "AL" {
		t.Errorf("Initials() = %q, want AL", got)
	}
	if got := (&Profile{}).Initials(); got != "?" {
		t.Errorf("Initials() of empty profile = %q, want ?", got)
	}
	accented := Profile{FirstName: "émile", LastName: "zola"}
	if got := accented.Initials(); got != "ÉZ" {
		t.Errorf("Initials() = %q, want ÉZ", got)
	}
}

func TestProfile_UnmarshalAPIShape(t *testing.T) {
	// Wire shape as returned by GET /user/feed
	raw := `{"_id":"u1","firstName":"Ada","lastName":"Lovelace","age":28,` +
		`"gender":"female","about":"compilers","skills":["go","sql"],"isPremium":true}`

	var p Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if p.ID != "u1" || p.Age != 28 || !p.IsPremium || len(p.Skills) != 2 {
		t.Errorf("unexpected profile: %+v", p)
	}
}

func TestRequestRecord_UnmarshalAPIShape(t *testing.T) {
	// Wire shape as returned by GET /user/requests/received
	raw := `{"_id":"r1","fromUserId":{"_id":"u2","firstName":"Grace","lastName":"Hopper"}}`

	var r RequestRecord
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if r.ID != "r1" || r.From.FirstName != "Grace" {
		t.Errorf("unexpected request: %+v", r)
	}
}

// =============================================================================
// DECISION TESTS
// =============================================================================

func TestDecision_Valid(t *testing.T) {
	if !DecisionInterested.Valid() || !DecisionIgnore.Valid() {
		t.Error("known decisions should be valid")
	}
	if Decision("superlike").Valid() {
		t.Error("unknown decision should be invalid")
	}
}

// =============================================================================
// CHAT MESSAGE TESTS
// =============================================================================

func TestNewOutgoingMessage(t *testing.T) {
	msg := NewOutgoingMessage("u1", "u2", "hello", "Ada")

	if msg.ID == "" {
		t.Error("outgoing message should have a client ID")
	}
	if msg.SenderID != "u1" || msg.TargetID != "u2" {
		t.Errorf("unexpected addressing: %+v", msg)
	}
	if msg.Timestamp == "" {
		t.Error("outgoing message should be timestamped at send")
	}
	if !msg.IsFrom("u1") || msg.IsFrom("u2") {
		t.Error("IsFrom should match the sender only")
	}
}

func TestChatMessage_Preview(t *testing.T) {
	msg := ChatMessage{Text: "a longer message body"}
	if got := msg.Preview(10); got != "a longe..." {
		t.Errorf("Preview(10) = %q", got)
	}
	if got := msg.Preview(100); got != msg.Text {
		t.Errorf("Preview should pass short text through, got %q", got)
	}
}
