package actors

import (
	"math"
	"math/rand"

	"github.com/pkg/errors"

	"github.com/jawallace/rufus/game"
)

// DubinsCar is a forward-only, constant-speed, bounded-turning-radius planar
// vehicle. Its State is a single heading in radians. Because a target Point
// carries no orientation, the car is free to arrive at any heading; Steer
// draws that terminal heading uniformly from (-pi, pi] using the actor's own
// injected randomness, mirroring the way the planner itself draws samples.
type DubinsCar struct {
	dt     float64
	speed  float64
	radius float64
	rng    *rand.Rand
}

// NewDubinsCar constructs a DubinsCar actor. dt and speed set the sampling
// period and constant forward speed; radius is the minimum turning radius.
// seed is the random source used to draw terminal headings; callers should
// pass the same *rand.Rand used for region sampling so that an entire run is
// reproducible from one seed.
func NewDubinsCar(dt, speed, radius float64, seed *rand.Rand) (*DubinsCar, error) {
	if dt <= 0 {
		return nil, errors.New("actors: dt must be positive")
	}
	if speed <= 0 {
		return nil, errors.New("actors: speed must be positive")
	}
	if radius <= 0 {
		return nil, errors.New("actors: radius must be positive")
	}
	if seed == nil {
		return nil, errors.New("actors: seed must not be nil")
	}
	return &DubinsCar{dt: dt, speed: speed, radius: radius, rng: seed}, nil
}

// Steer implements game.Actor.
func (a *DubinsCar) Steer(start, end game.Point, state game.State) (game.State, game.Trajectory, error) {
	if len(start) != 2 || len(end) != 2 {
		return nil, nil, errors.New("actors: DubinsCar requires 2-D points")
	}
	heading, ok := state.Heading()
	if !ok {
		return nil, nil, errors.New("actors: DubinsCar requires an initial heading in state")
	}

	startPose := newPose2(start[0], start[1], heading)
	endPose := newPose2(end[0], end[1], math.Pi-2*math.Pi*a.rng.Float64())

	path, ok := planDubinsPath(startPose, endPose, a.radius)
	if !ok {
		return nil, nil, game.ErrUnsteerable
	}

	step := a.speed * a.dt
	poses := samplePath(path, a.radius, startPose, step)

	traj := make(game.Trajectory, len(poses))
	for i, p := range poses {
		traj[i] = game.Point{p.x(), p.y()}
	}

	last := poses[len(poses)-1]
	return game.State{last.theta}, traj, nil
}

// Time implements game.Actor, returning the admissible Euclidean
// lower-bound heuristic rather than the actual (longer) Dubins path length.
func (a *DubinsCar) Time(start, end game.Point, _ game.State) float64 {
	return start.Dist(end)
}

var _ game.Actor = (*DubinsCar)(nil)
