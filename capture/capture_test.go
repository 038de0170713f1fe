package capture_test

import (
	"math"
	"testing"

	"go.viam.com/test"

	"github.com/jawallace/rufus/capture"
	"github.com/jawallace/rufus/game"
)

func TestDefaultUsablePartDistanceGate(t *testing.T) {
	pred := capture.DefaultUsablePart(5.0)

	pursuer := game.Vertex{Loc: game.Point{24.9, 0}, State: game.State{0}}
	near := game.Vertex{Loc: game.Point{25.0, 0}}
	far := game.Vertex{Loc: game.Point{100.0, 0}}

	test.That(t, pred(pursuer, near), test.ShouldBeTrue)
	test.That(t, pred(pursuer, far), test.ShouldBeFalse)
}

func TestDefaultUsablePartRejectsRearCapture(t *testing.T) {
	pred := capture.DefaultUsablePart(5.0)

	// pursuer heading along +x; evader directly behind it.
	pursuer := game.Vertex{Loc: game.Point{10.0, 0}, State: game.State{0}}
	behind := game.Vertex{Loc: game.Point{8.0, 0}}
	ahead := game.Vertex{Loc: game.Point{12.0, 0}}

	test.That(t, pred(pursuer, behind), test.ShouldBeFalse)
	test.That(t, pred(pursuer, ahead), test.ShouldBeTrue)
}

func TestNarrowToleranceExcludesWideBearings(t *testing.T) {
	pred := capture.UsablePart(5.0, math.Pi/8)

	pursuer := game.Vertex{Loc: game.Point{0, 0}, State: game.State{0}}
	offAxis := game.Vertex{Loc: game.Point{1.0, 1.0}}

	test.That(t, pred(pursuer, offAxis), test.ShouldBeFalse)
}

func TestUsablePartOmitsBearingForStatelessPursuer(t *testing.T) {
	pred := capture.DefaultUsablePart(5.0)

	pursuer := game.Vertex{Loc: game.Point{0, 0}}
	behind := game.Vertex{Loc: game.Point{-1.0, 0}}

	test.That(t, pred(pursuer, behind), test.ShouldBeTrue)
}

func TestOmnidirectionalIgnoresBearing(t *testing.T) {
	pred := capture.Omnidirectional(5.0)

	pursuer := game.Vertex{Loc: game.Point{0, 0}, State: game.State{0}}
	behind := game.Vertex{Loc: game.Point{-1.0, 0}}
	far := game.Vertex{Loc: game.Point{10.0, 0}}

	test.That(t, pred(pursuer, behind), test.ShouldBeTrue)
	test.That(t, pred(pursuer, far), test.ShouldBeFalse)
}

func TestMismatchedDimensionNeverCaptures(t *testing.T) {
	pursuer2D := game.Vertex{Loc: game.Point{0, 0}, State: game.State{0}}
	evader3D := game.Vertex{Loc: game.Point{0, 0, 0}}

	test.That(t, capture.DefaultUsablePart(5.0)(pursuer2D, evader3D), test.ShouldBeFalse)
	test.That(t, capture.Omnidirectional(5.0)(pursuer2D, evader3D), test.ShouldBeFalse)
}
