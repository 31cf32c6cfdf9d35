// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the devtinder TUI.
//
// All colors use Lip Gloss AdaptiveColor so the palette adjusts to light and
// dark terminals automatically. The Theme type bundles the styled components
// used across views; the animation helpers drive the swipe card fly-out and
// spinner frames.
//
// # Key Types
//
//   - Theme: styled lipgloss components for every view
//   - SpinnerConfig: frame set plus FPS for loading spinners
//   - EasingFunc: easing curves for card animations
package styles
