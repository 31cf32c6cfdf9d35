// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for profiles, connections,
// requests, and chat messages.
package model

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// =============================================================================
// PROFILE TYPE
// =============================================================================

// Profile represents a user profile as returned by the API.
// Profiles are immutable once fetched; the feed only ever removes them.
type Profile struct {
	ID        string   `json:"_id"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Age       int      `json:"age,omitempty"`
	Gender    string   `json:"gender,omitempty"`
	PhotoURL  string   `json:"photoUrl,omitempty"`
	About     string   `json:"about,omitempty"`
	Skills    []string `json:"skills,omitempty"`
	IsPremium bool     `json:"isPremium,omitempty"`
	Email     string   `json:"emailId,omitempty"`
}

// titleCaser renders lowercase API values ("male", "golang") as display labels.
var titleCaser = cases.Title(language.English)

// FullName returns the profile's display name. The API stores names
// lowercase, so the result is title-cased like the other display labels.
func (p *Profile) FullName() string {
	name := strings.TrimSpace(p.FirstName + " " + p.LastName)
	if name == "" {
		return "Unknown"
	}
	return titleCaser.String(name)
}

// GenderLabel returns the gender as a display label ("male" -> "Male").
func (p *Profile) GenderLabel() string {
	if p.Gender == "" {
		return ""
	}
	return titleCaser.String(p.Gender)
}

// SkillLabels returns the skills as title-cased display labels.
func (p *Profile) SkillLabels() []string {
	if len(p.Skills) == 0 {
		return nil
	}
	labels := make([]string, len(p.Skills))
	for i, s := range p.Skills {
		labels[i] = titleCaser.String(strings.TrimSpace(s))
	}
	return labels
}

// Initials returns up to two letters for the avatar placeholder.
func (p *Profile) Initials() string {
	var b strings.Builder
	for _, name := range [...]string{p.FirstName, p.LastName} {
		if name == "" {
			continue
		}
		r, _ := utf8.DecodeRuneInString(name)
		b.WriteRune(unicode.ToUpper(r))
	}
	if b.Len() == 0 {
		return "?"
	}
	return b.String()
}

// =============================================================================
// CONNECTION AND REQUEST RECORDS
// =============================================================================

// RequestRecord is a pending incoming connection request with the requester's
// profile embedded under fromUserId. A review removes the record from the
// local store immediately, so no local decision state is kept.
type RequestRecord struct {
	ID   string  `json:"_id"`
	From Profile `json:"fromUserId"`
}

// =============================================================================
// DECISIONS
// =============================================================================

// Decision is the binary swipe outcome for a candidate.
type Decision string

const (
	// DecisionInterested records a right swipe.
	DecisionInterested Decision = "interested"
	// DecisionIgnore records a left swipe.
	DecisionIgnore Decision = "ignore"
)

// Valid reports whether d is one of the two known decisions.
func (d Decision) Valid() bool {
	return d == DecisionInterested || d == DecisionIgnore
}

// ReviewStatus is the resolution posted for a pending request.
type ReviewStatus string

const (
	ReviewAccepted ReviewStatus = "accepted"
	ReviewRejected ReviewStatus = "rejected"
)
