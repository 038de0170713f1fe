// Package capture implements the capture predicates used to couple the
// pursuer and evader search trees inside the planner: a pure function of two
// Vertices deciding whether the pursuer has captured the evader at that pair
// of configurations.
package capture

import (
	"math"

	"github.com/jawallace/rufus/game"
)

// Predicate decides whether the pursuer vertex vP captures the evader
// vertex vE. The pursuer is always the first argument; implementations may
// rely on this asymmetry (e.g. reading vP.State as the pursuer's heading).
// A vP/vE pair whose Loc dimensions disagree never counts as a capture.
type Predicate func(vP, vE game.Vertex) bool

// zeroDistEpsilon is the distance below which the bearing from pursuer to
// evader is undefined (they occupy the same point); below this the bearing
// test is skipped rather than evaluated against an arbitrary atan2(0,0).
const zeroDistEpsilon = 1e-9

// UsablePart returns a Predicate implementing Isaacs' "usable part" capture
// condition for a forward-only pursuer: the evader must lie within rCapture
// of the pursuer, and the bearing from the pursuer to the evader must differ
// from the pursuer's heading (vP.State's first component) by less than
// tolerance. tolerance = pi (the default used by DefaultUsablePart) admits
// every bearing except directly behind the pursuer; tolerance = pi/2 limits
// capture to the forward half-plane, and smaller values narrow the cone
// further.
//
// A pursuer vertex whose State carries no heading (the stateless case, e.g.
// a Linear pursuer) is treated as omnidirectional: the bearing test is
// skipped and only the distance condition applies.
func UsablePart(rCapture, tolerance float64) Predicate {
	return func(vP, vE game.Vertex) bool {
		if len(vP.Loc) != len(vE.Loc) {
			return false
		}

		dist := vP.Loc.Dist(vE.Loc)
		if dist >= rCapture {
			return false
		}

		heading, ok := vP.State.Heading()
		if !ok || dist < zeroDistEpsilon || len(vP.Loc) < 2 {
			return true
		}

		diff := vE.Loc.Sub(vP.Loc)
		bearing := math.Atan2(diff[1], diff[0])
		delta := angleDiff(bearing, heading)
		return math.Abs(delta) < tolerance
	}
}

// DefaultUsablePart is UsablePart with the default tolerance of pi, which
// excludes only an evader lying directly behind the pursuer.
func DefaultUsablePart(rCapture float64) Predicate {
	return UsablePart(rCapture, math.Pi)
}

// Omnidirectional returns a Predicate that ignores bearing entirely: capture
// holds whenever the evader is within rCapture of the pursuer, regardless of
// heading.
func Omnidirectional(rCapture float64) Predicate {
	return func(vP, vE game.Vertex) bool {
		if len(vP.Loc) != len(vE.Loc) {
			return false
		}
		return vP.Loc.Dist(vE.Loc) < rCapture
	}
}

// angleDiff returns a-b wrapped into (-pi, pi].
func angleDiff(a, b float64) float64 {
	d := math.Mod(a-b, 2*math.Pi)
	if d > math.Pi {
		d -= 2 * math.Pi
	} else if d <= -math.Pi {
		d += 2 * math.Pi
	}
	return d
}
