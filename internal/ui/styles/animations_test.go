// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"testing"
	"time"
)

func TestSpinnerDuration(t *testing.T) {
	if LineSpinner.Duration() != time.Second/10 {
		t.Errorf("LineSpinner.Duration() = %v, want %v", LineSpinner.Duration(), time.Second/10)
	}
	if DotsSpinner.Duration() != time.Second/6 {
		t.Errorf("DotsSpinner.Duration() = %v, want %v", DotsSpinner.Duration(), time.Second/6)
	}
}

func TestSpinnerFrameAdvances(t *testing.T) {
	base := time.UnixMilli(0)
	if got := PulseSpinner.Frame(base); got != PulseSpinner.Frames[0] {
		t.Errorf("Frame(0) = %q, want %q", got, PulseSpinner.Frames[0])
	}
	if got := PulseSpinner.Frame(base.Add(PulseSpinner.Duration())); got != PulseSpinner.Frames[1] {
		t.Errorf("Frame(+1) = %q, want %q", got, PulseSpinner.Frames[1])
	}
}

func TestEasingBounds(t *testing.T) {
	funcs := map[string]EasingFunc{
		"linear":   EaseLinear,
		"inQuad":   EaseInQuad,
		"outQuad":  EaseOutQuad,
		"outCubic": EaseOutCubic,
	}

	for name, fn := range funcs {
		t.Run(name, func(t *testing.T) {
			if got := fn(0); got != 0 {
				t.Errorf("%s(0) = %f, want 0", name, got)
			}
			if got := fn(1); got != 1 {
				t.Errorf("%s(1) = %f, want 1", name, got)
			}
			// Out-of-range inputs clamp
			if got := fn(-0.5); got != 0 {
				t.Errorf("%s(-0.5) = %f, want 0", name, got)
			}
			if got := fn(1.5); got != 1 {
				t.Errorf("%s(1.5) = %f, want 1", name, got)
			}
		})
	}
}

func TestEasingMonotonicMidpoints(t *testing.T) {
	// Quadratic ease-in is below linear at the midpoint, ease-out above.
	if EaseInQuad(0.5) >= 0.5 {
		t.Error("EaseInQuad(0.5) should be below linear")
	}
	if EaseOutQuad(0.5) <= 0.5 {
		t.Error("EaseOutQuad(0.5) should be above linear")
	}
}

func TestRenderProgressBar(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		percent float64
		want    string
	}{
		{"empty", 4, 0, "----"},
		{"half", 4, 50, "##--"},
		{"full", 4, 100, "####"},
		{"over 100 clamps", 4, 150, "####"},
		{"negative clamps", 4, -10, "----"},
		{"zero width", 0, 50, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := RenderProgressBar(tc.width, tc.percent)
			if got != tc.want {
				t.Errorf("RenderProgressBar(%d, %f) = %q, want %q", tc.width, tc.percent, got, tc.want)
			}
		})
	}
}
