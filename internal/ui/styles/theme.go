// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the devtinder TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App       lipgloss.Style
	Container lipgloss.Style

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style
	HeaderBrand    lipgloss.Style

	// ==========================================================================
	// PROFILE CARD STYLES
	// ==========================================================================

	Card           lipgloss.Style
	CardBack       lipgloss.Style
	CardTitle      lipgloss.Style
	CardAbout      lipgloss.Style
	BadgeAge       lipgloss.Style
	BadgeGender    lipgloss.Style
	BadgeSkill     lipgloss.Style
	BadgePremium   lipgloss.Style
	CardInterested lipgloss.Style
	CardIgnore     lipgloss.Style

	// ==========================================================================
	// CHAT BUBBLE STYLES
	// ==========================================================================

	OwnBubble  lipgloss.Style
	PeerBubble lipgloss.Style
	ChatTime   lipgloss.Style
	ChatHeader lipgloss.Style

	// ==========================================================================
	// LIST ROW STYLES (connections, requests)
	// ==========================================================================

	Row         lipgloss.Style
	RowSelected lipgloss.Style
	RowName     lipgloss.Style
	RowDetail   lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer   lipgloss.Style
	InputPrompt      lipgloss.Style
	InputLabel       lipgloss.Style
	InputError       lipgloss.Style
	InputPlaceholder lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	StatusOnline lipgloss.Style
	StatusStale  lipgloss.Style
	Badge        lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// ==========================================================================
	// SPINNER AND EMPTY/ERROR STATES
	// ==========================================================================

	Spinner    lipgloss.Style
	EmptyState lipgloss.Style
	ErrorState lipgloss.Style
}

// NewTheme creates a theme configured for the current terminal.
func NewTheme() *Theme {
	profile := termenv.ColorProfile()
	t := &Theme{
		IsDark:       lipgloss.HasDarkBackground(),
		HasTrueColor: profile == termenv.TrueColor,
		ColorProfile: profile,
	}
	t.initStyles()
	return t
}

// initStyles builds every style from the palette.
func (t *Theme) initStyles() {
	t.App = lipgloss.NewStyle().
		Background(Surface)

	t.Container = lipgloss.NewStyle().
		Padding(0, 1)

	// Header
	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		Padding(0, 1)
	t.HeaderTitle = lipgloss.NewStyle().
		Foreground(Purple).
		Bold(true)
	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(TextSecondary)
	t.HeaderBrand = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	// Profile cards
	t.Card = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(1, 2)
	t.CardBack = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Overlay).
		Foreground(TextMuted).
		Padding(1, 2)
	t.CardTitle = lipgloss.NewStyle().
		Foreground(Purple).
		Bold(true).
		Align(lipgloss.Center)
	t.CardAbout = lipgloss.NewStyle().
		Foreground(TextSecondary)
	t.BadgeAge = lipgloss.NewStyle().
		Foreground(Cyan)
	t.BadgeGender = lipgloss.NewStyle().
		Foreground(TextSecondary)
	t.BadgeSkill = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Purple).
		Padding(0, 1)
	t.BadgePremium = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)
	t.CardInterested = t.Card.BorderForeground(InterestedTint)
	t.CardIgnore = t.Card.BorderForeground(IgnoreTint)

	// Chat bubbles
	t.OwnBubble = lipgloss.NewStyle().
		Foreground(OwnBubbleFg).
		Background(OwnBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(OwnBubbleBorder).
		Padding(0, 1)
	t.PeerBubble = lipgloss.NewStyle().
		Foreground(PeerBubbleFg).
		Background(PeerBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(PeerBubbleBorder).
		Padding(0, 1)
	t.ChatTime = lipgloss.NewStyle().
		Foreground(TextMuted)
	t.ChatHeader = lipgloss.NewStyle().
		Background(SurfaceDim).
		Bold(true).
		Padding(0, 1)

	// List rows
	t.Row = lipgloss.NewStyle().
		Padding(0, 1)
	t.RowSelected = lipgloss.NewStyle().
		Background(SelectionBg).
		Padding(0, 1)
	t.RowName = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true)
	t.RowDetail = lipgloss.NewStyle().
		Foreground(TextSecondary)

	// Inputs
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)
	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)
	t.InputLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)
	t.InputError = lipgloss.NewStyle().
		Foreground(Rose)
	t.InputPlaceholder = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)
	t.StatusOnline = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)
	t.StatusStale = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)
	t.Badge = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Rose).
		Padding(0, 1)
	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)
	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Spinner and states
	t.Spinner = lipgloss.NewStyle().
		Foreground(Cyan)
	t.EmptyState = lipgloss.NewStyle().
		Foreground(TextMuted).
		Align(lipgloss.Center).
		Padding(2, 4)
	t.ErrorState = lipgloss.NewStyle().
		Foreground(Rose).
		Align(lipgloss.Center).
		Padding(2, 4)
}

// SetSize records the current terminal dimensions on the theme.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// LayoutMode describes how much horizontal room the terminal offers.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutNormal                   // 60-100 columns
	LayoutWide                     // > 100 columns
)

// GetLayoutMode returns the layout mode for the current width.
func (t *Theme) GetLayoutMode() LayoutMode {
	switch {
	case t.Width < 60:
		return LayoutNarrow
	case t.Width > 100:
		return LayoutWide
	default:
		return LayoutNormal
	}
}
