// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the devtinder TUI.
package styles

import (
	"time"
)

// =============================================================================
// SPINNER ANIMATIONS
// =============================================================================

// LineSpinner - Simple line rotation
var LineSpinner = SpinnerConfig{
	Frames: []string{"|", "/", "-", "\\"},
	FPS:    10,
}

// DotsSpinner - Classic three-dot animation
var DotsSpinner = SpinnerConfig{
	Frames: []string{".  ", ".. ", "...", " ..", "  .", "   "},
	FPS:    6,
}

// PulseSpinner - Pulsing indicator for channel reconnect
var PulseSpinner = SpinnerConfig{
	Frames: []string{"( )", "(.)", "(o)", "(O)", "(o)", "(.)", "( )", "   "},
	FPS:    8,
}

// SpinnerConfig holds the configuration for a spinner animation.
type SpinnerConfig struct {
	Frames []string
	FPS    int
}

// Duration returns the duration for each frame.
func (s SpinnerConfig) Duration() time.Duration {
	return time.Second / time.Duration(s.FPS)
}

// Frame returns the frame to show at the given instant. Stateless callers
// (the status bar) animate by passing the current time on each render.
func (s SpinnerConfig) Frame(at time.Time) string {
	if len(s.Frames) == 0 {
		return ""
	}
	idx := int(at.UnixMilli()/s.Duration().Milliseconds()) % len(s.Frames)
	return s.Frames[idx]
}

// =============================================================================
// EASING FUNCTIONS
// =============================================================================

// EasingFunc maps normalized time t in [0,1] to animation progress in [0,1].
type EasingFunc func(t float64) float64

// EaseLinear is a constant-speed transition.
func EaseLinear(t float64) float64 {
	return clamp01(t)
}

// EaseInQuad accelerates from zero velocity.
// Used for the card fly-out: slow start, rapid exit.
func EaseInQuad(t float64) float64 {
	t = clamp01(t)
	return t * t
}

// EaseOutQuad decelerates to zero velocity.
func EaseOutQuad(t float64) float64 {
	t = clamp01(t)
	return t * (2 - t)
}

// EaseOutCubic decelerates sharply, used for the snap-back revert.
func EaseOutCubic(t float64) float64 {
	t = clamp01(t)
	u := t - 1
	return u*u*u + 1
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// =============================================================================
// PROGRESS INDICATORS
// =============================================================================

// ProgressBar characters for resend-cooldown and other progress displays.
var (
	ProgressFull  = "#"
	ProgressEmpty = "-"
)

// RenderProgressBar creates a progress bar string.
// width: total width of the bar in characters
// percent: 0-100 percentage complete
func RenderProgressBar(width int, percent float64) string {
	if width <= 0 {
		return ""
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filled := int(float64(width) * percent / 100)
	bar := make([]byte, 0, width)
	for i := 0; i < width; i++ {
		if i < filled {
			bar = append(bar, ProgressFull[0])
		} else {
			bar = append(bar, ProgressEmpty[0])
		}
	}
	return string(bar)
}
