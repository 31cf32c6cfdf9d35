// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package swipe implements the decision gesture for the top feed card.
//
// The engine is an explicit state machine (Idle, Dragging, Committed,
// Reverted) driven by offset deltas, with pure functions mapping the current
// offset to rotation and opacity. It is decoupled from any animation timer:
// callers feed elapsed time into FlyOutOffset and poll FlyOutDone, so the
// whole gesture is unit-testable without a terminal or a clock.
package swipe

import (
	"math"
	"time"

	"github.com/tinder4devs/devtinder-tui/internal/model"
	"github.com/tinder4devs/devtinder-tui/internal/ui/styles"
)

// Gesture tuning constants.
const (
	// CommitThreshold is the absolute horizontal offset past which a release
	// commits the decision instead of reverting.
	CommitThreshold = 100.0

	// RotationFactor converts horizontal offset to card rotation in degrees.
	RotationFactor = 0.1

	// OpacityFalloff is the horizontal distance over which card opacity
	// decays from full to the floor.
	OpacityFalloff = 300.0

	// OpacityFloor keeps the card visible no matter how far it is dragged.
	OpacityFloor = 0.5

	// FlyOutDistance is how far past the viewport the committed card travels.
	FlyOutDistance = 1000.0

	// FlyOutDuration is the fixed length of the commit animation. It runs
	// independent of the decision request.
	FlyOutDuration = 400 * time.Millisecond
)

// State is the gesture state of the active card.
type State int

const (
	// StateIdle means no gesture is in progress.
	StateIdle State = iota
	// StateDragging means an offset is being accumulated.
	StateDragging
	// StateCommitted means the decision is resolved and the fly-out is running.
	StateCommitted
	// StateReverted means the last release fell short and the card snapped back.
	StateReverted
)

// Direction is the resolved side of a committed gesture.
type Direction int

const (
	// DirectionNone means the gesture did not resolve to a decision.
	DirectionNone Direction = iota
	// DirectionInterested is a rightward commit.
	DirectionInterested
	// DirectionIgnore is a leftward commit.
	DirectionIgnore
)

// Decision maps a commit direction to its API decision value.
func (d Direction) Decision() model.Decision {
	switch d {
	case DirectionInterested:
		return model.DecisionInterested
	case DirectionIgnore:
		return model.DecisionIgnore
	default:
		return ""
	}
}

// =============================================================================
// PURE GEOMETRY
// =============================================================================

// Rotation returns the card tilt in degrees for a horizontal offset.
func Rotation(offsetX float64) float64 {
	return offsetX * RotationFactor
}

// Opacity returns the card opacity for a horizontal offset, floored so the
// card never fully vanishes mid-drag.
func Opacity(offsetX float64) float64 {
	opacity := 1.0 - math.Abs(offsetX)/OpacityFalloff
	if opacity < OpacityFloor {
		return OpacityFloor
	}
	return opacity
}

// Resolve maps a release offset to a direction. Offsets within the commit
// threshold resolve to DirectionNone (revert).
func Resolve(offsetX float64) Direction {
	switch {
	case offsetX >= CommitThreshold:
		return DirectionInterested
	case offsetX <= -CommitThreshold:
		return DirectionIgnore
	default:
		return DirectionNone
	}
}

// =============================================================================
// ENGINE
// =============================================================================

// Engine tracks the gesture for the single interactive card. Cards behind the
// front card never receive input, so one engine instance serves the feed.
type Engine struct {
	state    State
	offsetX  float64
	offsetY  float64
	dir      Direction
	inFlight bool
}

// NewEngine returns an engine in the idle state.
func NewEngine() *Engine {
	return &Engine{}
}

// State returns the current gesture state.
func (e *Engine) State() State { return e.state }

// OffsetX returns the horizontal drag offset.
func (e *Engine) OffsetX() float64 { return e.offsetX }

// Direction returns the committed direction, or DirectionNone.
func (e *Engine) Direction() Direction { return e.dir }

// InFlight reports whether a commit is animating or awaiting its request.
// Direction controls must be ignored while this is true.
func (e *Engine) InFlight() bool { return e.inFlight }

// Begin starts a drag. No-op unless the engine is idle or just reverted.
func (e *Engine) Begin() {
	if e.state == StateIdle || e.state == StateReverted {
		e.state = StateDragging
		e.offsetX = 0
		e.offsetY = 0
	}
}

// Drag accumulates an offset delta. No-op outside the dragging state.
func (e *Engine) Drag(dx, dy float64) {
	if e.state != StateDragging {
		return
	}
	e.offsetX += dx
	e.offsetY += dy
}

// Decay pulls an uncommitted drag back toward center by the given fraction.
// Used by the inactivity tick so an abandoned drag relaxes to rest.
func (e *Engine) Decay(fraction float64) {
	if e.state != StateDragging {
		return
	}
	e.offsetX *= 1 - fraction
	e.offsetY *= 1 - fraction
	if math.Abs(e.offsetX) < 1 && math.Abs(e.offsetY) < 1 {
		e.offsetX = 0
		e.offsetY = 0
		e.state = StateIdle
	}
}

// Release resolves the drag. Past the threshold it commits and returns the
// direction; short of it the card snaps back and DirectionNone is returned.
func (e *Engine) Release() Direction {
	if e.state != StateDragging {
		return DirectionNone
	}
	dir := Resolve(e.offsetX)
	if dir == DirectionNone {
		e.state = StateReverted
		e.offsetX = 0
		e.offsetY = 0
		return DirectionNone
	}
	e.commit(dir)
	return dir
}

// Commit resolves a direction directly, bypassing the drag. This is the
// button path: it enters the same committed state and fly-out as a drag.
// Returns false while a commit is already in flight, so rapid double input
// within one commit cycle yields exactly one decision.
func (e *Engine) Commit(dir Direction) bool {
	if dir == DirectionNone || e.inFlight {
		return false
	}
	if e.state == StateCommitted {
		return false
	}
	e.commit(dir)
	return true
}

func (e *Engine) commit(dir Direction) {
	e.state = StateCommitted
	e.dir = dir
	e.inFlight = true
}

// FlyOutOffset returns the horizontal offset of the committed card at the
// given point in the animation. The card keeps its rotation trend as it
// leaves: callers pass the result back through Rotation and Opacity.
func (e *Engine) FlyOutOffset(elapsed time.Duration) float64 {
	if e.state != StateCommitted {
		return e.offsetX
	}
	t := float64(elapsed) / float64(FlyOutDuration)
	progress := styles.EaseOutCubic(t)
	target := FlyOutDistance
	if e.dir == DirectionIgnore {
		target = -FlyOutDistance
	}
	return e.offsetX + (target-e.offsetX)*progress
}

// FlyOutDone reports whether the commit animation has run its course.
func (e *Engine) FlyOutDone(elapsed time.Duration) bool {
	return e.state == StateCommitted && elapsed >= FlyOutDuration
}

// Finish resets the engine for the next card. Called after the committed
// card has been removed from the queue and its request dispatched.
func (e *Engine) Finish() {
	e.state = StateIdle
	e.offsetX = 0
	e.offsetY = 0
	e.dir = DirectionNone
	e.inFlight = false
}
