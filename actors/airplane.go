package actors

import (
	"math"
	"math/rand"

	"github.com/pkg/errors"

	"github.com/jawallace/rufus/game"
)

// minSeparationFactor is the number of minimum turning radii that must
// separate start and end for a DubinsAirplane path to be considered
// steerable, per the horizontal-circle clearance rule used for the Dubins
// airplane's low-altitude case.
const minSeparationFactor = 6

// standardGravity is used to convert a bank-angle limit into a minimum
// turning radius: rmin = airspeed^2 / (g * tan(bankMax)), the coordinated-turn
// radius for a fixed-wing aircraft banked at bankMax.
const standardGravity = 9.80665

// DubinsAirplane is the three-dimensional extension of DubinsCar: constant
// airspeed, a horizontal turning radius bounded by the vehicle's maximum
// bank angle, and a bounded flight-path (climb/descent) angle. Its State is
// a single heading in radians; the flight-path angle is zero at every
// committed vertex and only departs from zero along the interior of a
// trajectory between vertices.
type DubinsAirplane struct {
	dt       float64
	speed    float64
	radius   float64
	gammaMax float64
	rng      *rand.Rand
}

// NewDubinsAirplane constructs a DubinsAirplane actor. bankMax is the
// vehicle's maximum bank angle (radians), from which the minimum horizontal
// turning radius is derived via the coordinated-turn relation; gammaMax is
// the maximum flight-path angle (radians) the climb/descent profile between
// vertices may use; airspeed is the constant forward speed.
func NewDubinsAirplane(dt, bankMax, gammaMax, airspeed float64, seed *rand.Rand) (*DubinsAirplane, error) {
	if dt <= 0 {
		return nil, errors.New("actors: dt must be positive")
	}
	if airspeed <= 0 {
		return nil, errors.New("actors: airspeed must be positive")
	}
	if bankMax <= 0 || bankMax >= math.Pi/2 {
		return nil, errors.New("actors: bankMax must be in (0, pi/2)")
	}
	if gammaMax <= 0 || gammaMax >= math.Pi/2 {
		return nil, errors.New("actors: gammaMax must be in (0, pi/2)")
	}
	if seed == nil {
		return nil, errors.New("actors: seed must not be nil")
	}
	radius := (airspeed * airspeed) / (standardGravity * math.Tan(bankMax))
	return &DubinsAirplane{dt: dt, speed: airspeed, radius: radius, gammaMax: gammaMax, rng: seed}, nil
}

// Steer implements game.Actor. The horizontal component is a planar Dubins
// path identical to DubinsCar's; the altitude component is a parabolic
// flight-path-angle profile that starts and ends at gamma=0 and integrates
// to exactly the requested elevation change, clamped to unsteerable if doing
// so would require exceeding gammaMax.
func (a *DubinsAirplane) Steer(start, end game.Point, state game.State) (game.State, game.Trajectory, error) {
	if len(start) != 3 || len(end) != 3 {
		return nil, nil, errors.New("actors: DubinsAirplane requires 3-D points")
	}
	heading, ok := state.Heading()
	if !ok {
		return nil, nil, errors.New("actors: DubinsAirplane requires an initial heading in state")
	}

	startPose := newPose2(start[0], start[1], heading)
	endPose := newPose2(end[0], end[1], math.Pi-2*math.Pi*a.rng.Float64())

	if startPose.pos.Sub(endPose.pos).Norm() < minSeparationFactor*a.radius {
		return nil, nil, game.ErrUnsteerable
	}

	path, ok := planDubinsPath(startPose, endPose, a.radius)
	if !ok {
		return nil, nil, game.ErrUnsteerable
	}

	dz := end[2] - start[2]
	// A parabolic gamma(s) = 4*peak*s*(L-s)/L^2 profile starts and ends at
	// gamma=0 and integrates (for small angles, tan(gamma) =~ gamma) to
	// dz = (2/3)*peak*L over s in [0, L], so solving for peak reproduces dz
	// exactly when peak stays within the vehicle's flight-path-angle bound.
	peak := 1.5 * dz / path.total
	if math.Abs(peak) > a.gammaMax {
		return nil, nil, game.ErrUnsteerable
	}

	step := a.speed * a.dt
	poses := samplePath(path, a.radius, startPose, step)

	traj := make(game.Trajectory, len(poses))
	for i, p := range poses {
		s := float64(i) * step
		if s > path.total {
			s = path.total
		}
		z := start[2] + gammaIntegral(peak, path.total, s)
		traj[i] = game.Point{p.x(), p.y(), z}
	}
	// Force the final sample level with the requested elevation change so
	// that committed vertices always land with gamma implicitly back at 0.
	traj[len(traj)-1][2] = start[2] + dz

	last := poses[len(poses)-1]
	return game.State{last.theta}, traj, nil
}

// gammaIntegral returns the altitude gained by arc length s into a path of
// total length total under the parabolic flight-path-angle profile peaking
// at peak: the antiderivative of 4*peak*s*(total-s)/total^2 from 0 to s.
func gammaIntegral(peak, total, s float64) float64 {
	if total <= 0 {
		return 0
	}
	return 4 * peak * (s*s/2 - s*s*s/(3*total)) / total
}

// Time implements game.Actor, returning the admissible 3-D Euclidean
// lower-bound heuristic.
func (a *DubinsAirplane) Time(start, end game.Point, _ game.State) float64 {
	return start.Dist(end)
}

var _ game.Actor = (*DubinsAirplane)(nil)
