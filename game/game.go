// Package game contains the core data types shared by every other package in
// this module: the Point/State/Trajectory representation of a vertex, the
// Actor and Region interfaces that concrete kinematic models and game spaces
// implement, and the Vertex type itself.
package game

import (
	"math"
	"math/rand"

	"github.com/pkg/errors"
)

// Point is a coordinate in the game space. Its dimension is implicit in its
// length; Tree, Region and the Linear actor operate on Points of any
// dimension, while DubinsCar expects 2-D and DubinsAirplane 3-D Points.
type Point []float64

// Clone returns a copy of p.
func (p Point) Clone() Point {
	out := make(Point, len(p))
	copy(out, p)
	return out
}

// Sub returns p - q, componentwise. p and q must have equal length.
func (p Point) Sub(q Point) Point {
	out := make(Point, len(p))
	for i := range p {
		out[i] = p[i] - q[i]
	}
	return out
}

// Norm returns the Euclidean length of p.
func (p Point) Norm() float64 {
	var sum float64
	for _, v := range p {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return p.Sub(q).Norm()
}

// State is the non-positional kinematic state of an Actor at a Vertex: empty
// for a stateless actor (Linear), or a single heading/azimuth in
// radians for a forward-only vehicle.
type State []float64

// Heading returns s[0] and true if s carries an orientation component, or
// (0, false) if s is the empty, stateless state.
func (s State) Heading() (float64, bool) {
	if len(s) == 0 {
		return 0, false
	}
	return s[0], true
}

// Trajectory is an ordered sequence of sampled Points describing the motion
// from a vertex's parent to the vertex itself, sampled at the planner's dt.
type Trajectory []Point

// Len is the number of sample points in the trajectory; this is what
// TimeToRoot sums, and multiplying by dt yields elapsed game time.
func (t Trajectory) Len() int {
	return len(t)
}

// Vertex is the atomic node payload stored at every tree node.
type Vertex struct {
	// Loc is the position of the actor at this vertex.
	Loc Point `json:"loc"`
	// State is the actor's kinematic state at Loc, after executing Trajectory.
	State State `json:"state"`
	// Trajectory is the sampled path from the parent vertex's Loc to Loc.
	// Root vertices carry an empty Trajectory.
	Trajectory Trajectory `json:"trajectory"`
}

// NewRootVertex constructs a Vertex suitable for rooting a Tree: an empty
// trajectory and the given initial location/state.
func NewRootVertex(loc Point, state State) Vertex {
	return Vertex{Loc: loc, State: state, Trajectory: nil}
}

// ErrUnsteerable is returned by Actor.Steer when no feasible trajectory
// exists between start and end under the actor's kinematics (e.g. the
// Dubins-airplane minimum-turning-radius clearance rule).
var ErrUnsteerable = errors.New("actor: unsteerable")

// CostFunc is the distance/time heuristic an Actor exposes for
// nearest-neighbor and ball-radius queries: CostFunc(from, to, stateAtFrom).
type CostFunc func(start, end Point, state State) float64

// Actor encodes the kinematics of one participant in the game.
type Actor interface {
	// Steer determines the trajectory from start to end under the actor's
	// kinematics, returning the actor's state at the final sampled point.
	// It returns ErrUnsteerable if no feasible trajectory exists.
	//
	// Postconditions on success: trajectory[0] == start (within tolerance)
	// and the final sample is within one step-length of end.
	Steer(start, end Point, state State) (State, Trajectory, error)

	// Time returns a non-negative cost heuristic for traversing from start
	// to end. It need not equal len(Steer(...)) and may be a lower-bound
	// heuristic for curvature-constrained actors.
	Time(start, end Point, state State) float64
}

// Region is a subset of the game space supporting containment tests and
// uniform sampling.
type Region interface {
	// Contains reports whether p lies in the region.
	Contains(p Point) bool
	// Sample draws a uniformly distributed Point from the region using rng.
	Sample(rng *rand.Rand) Point
	// Dim is the dimension of points accepted/produced by this region.
	Dim() int
}
