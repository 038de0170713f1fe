// Package actors contains concrete game.Actor kinematic models: an
// infinitely maneuverable Linear actor and the two forward-only,
// curvature-constrained Dubins vehicles.
package actors

import (
	"math"

	"github.com/pkg/errors"

	"github.com/jawallace/rufus/game"
)

// Linear is a simple actor for test purposes and stateless players (e.g. the
// Homicidal Chauffeur's evader): infinitely maneuverable, constant speed,
// and dimension-agnostic. Its State is always empty.
type Linear struct {
	dt    float64
	speed float64
}

// NewLinear constructs a Linear actor with the given sampling period and
// constant speed. Both must be strictly positive.
func NewLinear(dt, speed float64) (*Linear, error) {
	if dt <= 0 {
		return nil, errors.New("actors: dt must be positive")
	}
	if speed <= 0 {
		return nil, errors.New("actors: speed must be positive")
	}
	return &Linear{dt: dt, speed: speed}, nil
}

// sampleCount is the number of points produced by Steer for a straight-line
// segment of the given length: floor(dist/(speed*dt)) + 1, per the
// k = 0, 1, ..., floor(D/(s*dt)) indexing in the kinematic contract. Time
// reports this same count (rather than the raw Euclidean distance) so that
// it matches len(Steer(...).trajectory) exactly, which downstream rewiring
// and nearest-neighbor cost comparisons rely on.
func (a *Linear) sampleCount(dist float64) int {
	return int(math.Floor(dist/(a.speed*a.dt))) + 1
}

// Steer implements game.Actor.
func (a *Linear) Steer(start, end game.Point, _ game.State) (game.State, game.Trajectory, error) {
	if len(start) != len(end) {
		return nil, nil, errors.Errorf("actors: start/end dimension mismatch (%d vs %d)", len(start), len(end))
	}

	dist := start.Dist(end)
	n := a.sampleCount(dist)

	unit := make(game.Point, len(start))
	if dist > 0 {
		for i := range unit {
			unit[i] = (end[i] - start[i]) / dist
		}
	}

	traj := make(game.Trajectory, n)
	for k := 0; k < n; k++ {
		t := float64(k) * a.dt
		p := make(game.Point, len(start))
		for i := range p {
			p[i] = start[i] + a.speed*t*unit[i]
		}
		traj[k] = p
	}

	return game.State{}, traj, nil
}

// Time implements game.Actor. See sampleCount's doc comment for why this
// returns a discretized sample count rather than the raw Euclidean norm.
func (a *Linear) Time(start, end game.Point, _ game.State) float64 {
	return float64(a.sampleCount(start.Dist(end)))
}

var _ game.Actor = (*Linear)(nil)
