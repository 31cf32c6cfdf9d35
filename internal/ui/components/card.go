// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/tinder4devs/devtinder-tui/internal/model"
	"github.com/tinder4devs/devtinder-tui/internal/swipe"
	"github.com/tinder4devs/devtinder-tui/internal/ui/styles"
	"github.com/tinder4devs/devtinder-tui/internal/util"
)

// Markdown renderer for profile bios. Lazily built; nil means plain text.
var bioRenderer *glamour.TermRenderer

func init() {
	var err error
	bioRenderer, err = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(44),
	)
	if err != nil {
		// Fallback to plain text if renderer initialization fails
		bioRenderer = nil
	}
}

// renderBio renders a profile's about text, treating it as markdown.
// Returns the raw text if rendering fails.
func renderBio(about string) string {
	if bioRenderer == nil || about == "" {
		return about
	}
	rendered, err := bioRenderer.Render(about)
	if err != nil {
		return about
	}
	return strings.TrimSpace(rendered)
}

// CardOptions controls the visual state of a rendered card.
type CardOptions struct {
	Width int
	// Front marks the interactive top-of-queue card.
	Front bool
	// OffsetX is the current drag offset; tints and tilts the card.
	OffsetX float64
}

// RenderCard renders a candidate profile as a bordered card.
//
// The horizontal offset shifts the card across the row, tints the border
// toward the pending decision, and dims the content as opacity falls. The
// rotation has no true analogue in a cell grid, so it renders as a degree
// readout next to the decision hint.
func RenderCard(theme *styles.Theme, p model.Profile, opts CardOptions) string {
	style := theme.CardBack
	if opts.Front {
		style = theme.Card
	}

	dir := swipe.Resolve(opts.OffsetX)
	switch {
	case opts.OffsetX >= swipe.CommitThreshold/2:
		style = theme.CardInterested
	case opts.OffsetX <= -swipe.CommitThreshold/2:
		style = theme.CardIgnore
	}

	width := opts.Width
	if width < 30 {
		width = 30
	}
	inner := width - 6

	var b strings.Builder
	title := p.FullName()
	if p.Age > 0 {
		title += ", " + util.IntToString(p.Age)
	}
	b.WriteString(theme.CardTitle.Render(util.TruncateWidth(title, inner)))
	b.WriteString("\n")

	var badges []string
	if label := p.GenderLabel(); label != "" {
		badges = append(badges, theme.BadgeGender.Render(label))
	}
	if p.IsPremium {
		badges = append(badges, theme.BadgePremium.Render("premium"))
	}
	if len(badges) > 0 {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, badges...))
		b.WriteString("\n")
	}

	if about := renderBio(p.About); about != "" {
		b.WriteString("\n")
		b.WriteString(about)
		b.WriteString("\n")
	}

	if skills := p.SkillLabels(); len(skills) > 0 {
		b.WriteString("\n")
		b.WriteString(theme.BadgeSkill.Render(util.TruncateWidth(strings.Join(skills, " · "), inner)))
		b.WriteString("\n")
	}

	if opts.Front {
		b.WriteString("\n")
		b.WriteString(renderGestureHint(theme, opts.OffsetX, dir))
	}

	card := style.Width(width).Render(b.String())

	// Shift the card across the line proportional to the drag offset.
	if shift := int(opts.OffsetX / 10); shift > 0 {
		card = lipgloss.NewStyle().MarginLeft(shift).Render(card)
	}
	return card
}

// renderGestureHint shows the live drag state under the card content.
func renderGestureHint(theme *styles.Theme, offsetX float64, dir swipe.Direction) string {
	if offsetX == 0 {
		return theme.ShortcutDesc.Render("← ignore · → interested")
	}

	readout := util.FloatToString(swipe.Rotation(offsetX)) + " deg"
	switch dir {
	case swipe.DirectionInterested:
		return styles.RenderSuccess("INTERESTED " + readout + ", release to commit")
	case swipe.DirectionIgnore:
		return styles.RenderError("IGNORE " + readout + ", release to commit")
	default:
		return theme.ShortcutDesc.Render("tilt " + readout + ", release to revert")
	}
}
