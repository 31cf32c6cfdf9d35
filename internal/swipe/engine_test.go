// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package swipe

import (
	"math"
	"testing"
	"time"

	"github.com/tinder4devs/devtinder-tui/internal/model"
)

func TestResolveThreshold(t *testing.T) {
	tests := []struct {
		name    string
		offsetX float64
		want    Direction
	}{
		{"far right commits interested", 150, DirectionInterested},
		{"far left commits ignore", -150, DirectionIgnore},
		{"short drag reverts", 50, DirectionNone},
		{"short left drag reverts", -50, DirectionNone},
		{"exactly at threshold commits", 100, DirectionInterested},
		{"exactly at negative threshold commits", -100, DirectionIgnore},
		{"zero reverts", 0, DirectionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.offsetX); got != tt.want {
				t.Errorf("Resolve(%v) = %v, want %v", tt.offsetX, got, tt.want)
			}
		})
	}
}

func TestRotationLinear(t *testing.T) {
	if got := Rotation(0); got != 0 {
		t.Errorf("Rotation(0) = %v, want 0", got)
	}
	if got := Rotation(100); got != 10 {
		t.Errorf("Rotation(100) = %v, want 10", got)
	}
	if got := Rotation(-100); got != -10 {
		t.Errorf("Rotation(-100) = %v, want -10", got)
	}
}

func TestOpacityDecaysWithFloor(t *testing.T) {
	if got := Opacity(0); got != 1.0 {
		t.Errorf("Opacity(0) = %v, want 1.0", got)
	}
	if got := Opacity(150); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("Opacity(150) = %v, want 0.5", got)
	}
	// Far past the falloff distance the floor holds.
	if got := Opacity(5000); got != OpacityFloor {
		t.Errorf("Opacity(5000) = %v, want floor %v", got, OpacityFloor)
	}
	if got := Opacity(-5000); got != OpacityFloor {
		t.Errorf("Opacity(-5000) = %v, want floor %v", got, OpacityFloor)
	}
}

func TestDragReleaseCommits(t *testing.T) {
	e := NewEngine()
	e.Begin()
	e.Drag(150, 5)

	dir := e.Release()
	if dir != DirectionInterested {
		t.Fatalf("Release() = %v, want interested", dir)
	}
	if e.State() != StateCommitted {
		t.Errorf("state = %v, want committed", e.State())
	}
	if !e.InFlight() {
		t.Error("commit did not set in-flight guard")
	}
	if e.Direction().Decision() != model.DecisionInterested {
		t.Errorf("decision = %q, want interested", e.Direction().Decision())
	}
}

func TestShortDragReverts(t *testing.T) {
	e := NewEngine()
	e.Begin()
	e.Drag(50, 0)

	if dir := e.Release(); dir != DirectionNone {
		t.Fatalf("Release() = %v, want none", dir)
	}
	if e.State() != StateReverted {
		t.Errorf("state = %v, want reverted", e.State())
	}
	if e.OffsetX() != 0 {
		t.Errorf("offset = %v, want snap back to 0", e.OffsetX())
	}
	if e.InFlight() {
		t.Error("revert must not set in-flight guard")
	}
}

func TestDoubleCommitYieldsOneDecision(t *testing.T) {
	e := NewEngine()

	commits := 0
	if e.Commit(DirectionInterested) {
		commits++
	}
	// Rapid second press within the same commit cycle.
	if e.Commit(DirectionInterested) {
		commits++
	}
	if e.Commit(DirectionIgnore) {
		commits++
	}

	if commits != 1 {
		t.Errorf("commits = %d, want exactly 1", commits)
	}
}

func TestCommitAfterFinishAllowed(t *testing.T) {
	e := NewEngine()
	if !e.Commit(DirectionIgnore) {
		t.Fatal("first commit refused")
	}
	e.Finish()
	if !e.Commit(DirectionInterested) {
		t.Error("commit after Finish() refused; next card is stuck")
	}
}

func TestCommitNoneRefused(t *testing.T) {
	e := NewEngine()
	if e.Commit(DirectionNone) {
		t.Error("Commit(DirectionNone) must be refused")
	}
}

func TestFlyOutProgression(t *testing.T) {
	e := NewEngine()
	e.Begin()
	e.Drag(120, 0)
	e.Release()

	start := e.FlyOutOffset(0)
	mid := e.FlyOutOffset(FlyOutDuration / 2)
	end := e.FlyOutOffset(FlyOutDuration)

	if !(start < mid && mid < end) {
		t.Errorf("fly-out not monotonic: %v, %v, %v", start, mid, end)
	}
	if end != FlyOutDistance {
		t.Errorf("final offset = %v, want %v", end, FlyOutDistance)
	}
	if !e.FlyOutDone(FlyOutDuration) {
		t.Error("FlyOutDone at full duration = false")
	}
	if e.FlyOutDone(FlyOutDuration / 2) {
		t.Error("FlyOutDone at half duration = true")
	}
}

func TestFlyOutIgnoreGoesLeft(t *testing.T) {
	e := NewEngine()
	e.Commit(DirectionIgnore)

	if got := e.FlyOutOffset(FlyOutDuration); got != -FlyOutDistance {
		t.Errorf("final offset = %v, want %v", got, -FlyOutDistance)
	}
}

func TestDecayRelaxesToIdle(t *testing.T) {
	e := NewEngine()
	e.Begin()
	e.Drag(80, 0)

	for i := 0; i < 50 && e.State() == StateDragging; i++ {
		e.Decay(0.2)
	}
	if e.State() != StateIdle {
		t.Errorf("state = %v, want idle after decay", e.State())
	}
	if e.OffsetX() != 0 {
		t.Errorf("offset = %v, want 0", e.OffsetX())
	}
}

func TestDragIgnoredOutsideDragging(t *testing.T) {
	e := NewEngine()
	e.Drag(500, 0) // never began
	if e.OffsetX() != 0 {
		t.Errorf("offset = %v, drag before Begin must be ignored", e.OffsetX())
	}

	e.Commit(DirectionInterested)
	e.Drag(500, 0)
	if e.FlyOutOffset(time.Duration(0)) != 0 {
		t.Error("drag during committed state changed the offset")
	}
}
