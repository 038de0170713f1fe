// Package planner implements the dual-tree RRT*-style search that
// constructs the evader's and pursuer's reachable sets and prunes the
// evader tree wherever the pursuer can already force a capture.
package planner

import (
	"math/rand"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/jawallace/rufus/capture"
	"github.com/jawallace/rufus/game"
	"github.com/jawallace/rufus/logging"
	"github.com/jawallace/rufus/tree"
)

// Progress is invoked once before the first iteration (iteration=0) and
// once after every iteration thereafter, reporting how much of the run has
// elapsed according to the Planner's clock.
type Progress func(iteration, total int, elapsed time.Duration)

// Planner owns the evader and pursuer search trees and runs the dual-tree
// extension loop described by Solve.
type Planner struct {
	dt      float64
	space   game.Region
	pursuer game.Actor
	evader  game.Actor
	capture capture.Predicate
	gamma   float64
	rng     *rand.Rand
	clock   clock.Clock
	logger  *logging.Logger
}

// Option configures optional Planner fields.
type Option func(*Planner)

// WithClock overrides the Planner's clock, used only to time the Solve loop
// for progress callbacks. Defaults to the real clock.
func WithClock(c clock.Clock) Option {
	return func(p *Planner) { p.clock = c }
}

// WithLogger overrides the Planner's logger. Defaults to a debug-level
// stdout logger.
func WithLogger(l *logging.Logger) Option {
	return func(p *Planner) { p.logger = l }
}

// New constructs a Planner. dt is the actors' sampling period, space is the
// shared game region, pursuer/evader are the two players' kinematic models,
// capturePredicate decides when the pursuer has captured the evader, gamma
// scales the Karaman-Frazzoli near-ball radius (on the order of the
// game-space diameter), and seed is the injected random source used for all
// sampling performed by Solve.
func New(
	dt float64,
	space game.Region,
	pursuer, evader game.Actor,
	capturePredicate capture.Predicate,
	gamma float64,
	seed *rand.Rand,
	opts ...Option,
) (*Planner, error) {
	if dt <= 0 {
		return nil, errors.New("planner: dt must be positive")
	}
	if space == nil {
		return nil, errors.New("planner: space must not be nil")
	}
	if pursuer == nil || evader == nil {
		return nil, errors.New("planner: pursuer and evader actors must not be nil")
	}
	if capturePredicate == nil {
		return nil, errors.New("planner: capturePredicate must not be nil")
	}
	if gamma <= 0 {
		return nil, errors.New("planner: gamma must be positive")
	}
	if seed == nil {
		return nil, errors.New("planner: seed must not be nil")
	}

	p := &Planner{
		dt:      dt,
		space:   space,
		pursuer: pursuer,
		evader:  evader,
		capture: capturePredicate,
		gamma:   gamma,
		rng:     seed,
		clock:   clock.New(),
		logger:  logging.NewTestLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Solution is the result of a completed Solve call: the two frozen search
// trees, tagged with a run identifier for log correlation.
type Solution struct {
	ID            uuid.UUID
	EvaderTree    *tree.Tree
	PursuerTree   *tree.Tree
	DT            float64
	IterationsRun int
}

// extendResult is the outcome of one extend() call.
type extendResult struct {
	handle tree.Handle
	tNew   int
	ok     bool
}

// extend implements the RRT* extension step described in the component
// design: find the cheapest steerable parent for z among the nearest
// neighbor and the near-ball, insert the new vertex, then rewire the near
// ball through it where doing so is strictly cheaper.
func extend(g *tree.Tree, z game.Point, actor game.Actor, gamma float64) extendResult {
	nn := g.NearestNeighbor(z, actor.Time)
	vNN, err := g.Vertex(nn)
	if err != nil {
		return extendResult{}
	}

	stateNN, trajNN, err := actor.Steer(vNN.Loc, z, vNN.State)
	if err != nil {
		return extendResult{}
	}

	near := g.Near(z, actor.Time, gamma)

	vMin := nn
	bestState, bestTraj := stateNN, trajNN
	tNNParent, err := g.TimeToRoot(nn)
	if err != nil {
		return extendResult{}
	}
	costMin := tNNParent + trajNN.Len()

	for _, v := range near {
		vv, err := g.Vertex(v)
		if err != nil {
			continue
		}
		state, traj, err := actor.Steer(vv.Loc, z, vv.State)
		if err != nil {
			continue
		}
		tParent, err := g.TimeToRoot(v)
		if err != nil {
			continue
		}
		cost := tParent + traj.Len()
		if cost < costMin {
			vMin = v
			bestState, bestTraj = state, traj
			costMin = cost
		}
	}

	newVertex := game.Vertex{Loc: z.Clone(), State: bestState, Trajectory: bestTraj}
	vNew, err := g.Insert(vMin, newVertex)
	if err != nil {
		return extendResult{}
	}
	tNew, err := g.TimeToRoot(vNew)
	if err != nil {
		return extendResult{}
	}

	for _, v := range near {
		if v == vMin {
			continue
		}
		vv, err := g.Vertex(v)
		if err != nil {
			continue
		}
		state, traj, err := actor.Steer(z, vv.Loc, bestState)
		if err != nil {
			continue
		}
		tOld, err := g.TimeToRoot(v)
		if err != nil {
			continue
		}
		newCost := tNew + traj.Len()
		if tOld > newCost {
			_ = g.Reparent(v, vNew, game.Vertex{Loc: vv.Loc, State: state, Trajectory: traj})
		}
	}

	return extendResult{handle: vNew, tNew: tNew, ok: true}
}

// Solve runs nIter iterations of the dual-tree extension and capture-aware
// pruning loop described in the component design, starting from the given
// pursuer/evader initial vertices. progress, if non-nil, is invoked once
// before the loop and once per iteration thereafter.
func (p *Planner) Solve(pInit, eInit game.Vertex, nIter int, progress Progress) (*Solution, error) {
	if nIter < 0 {
		return nil, errors.New("planner: nIter must be non-negative")
	}

	gP := tree.New(pInit)
	gE := tree.New(eInit)

	start := p.clock.Now()
	if progress != nil {
		progress(0, nIter, 0)
	}

	for i := 0; i < nIter; i++ {
		zE := p.space.Sample(p.rng)
		rE := extend(gE, zE, p.evader, p.gamma)
		if rE.ok {
			p.pruneEvaderIfDominated(gE, gP, rE)
		}

		zP := p.space.Sample(p.rng)
		rP := extend(gP, zP, p.pursuer, p.gamma)
		if rP.ok {
			p.prunePursuerCaptures(gE, gP, rP)
		}

		if progress != nil {
			progress(i+1, nIter, p.clock.Now().Sub(start))
		}
		p.logger.Debugw("extend iteration complete", "iteration", i, "evaderExtended", rE.ok, "pursuerExtended", rP.ok)
	}

	return &Solution{
		ID:            uuid.New(),
		EvaderTree:    gE,
		PursuerTree:   gP,
		DT:            p.dt,
		IterationsRun: nIter,
	}, nil
}

// pruneEvaderIfDominated removes the evader subtree just inserted at rE if
// the pursuer tree already contains a vertex that both (a) is within the
// pursuer's near-ball of the new evader vertex and (b) captures it no later
// than the evader reaches it.
func (p *Planner) pruneEvaderIfDominated(gE, gP *tree.Tree, rE extendResult) {
	vENew, err := gE.Vertex(rE.handle)
	if err != nil {
		return
	}

	near := gP.Near(vENew.Loc, p.pursuer.Time, p.gamma)
	for _, vp := range near {
		pv, err := gP.Vertex(vp)
		if err != nil {
			continue
		}
		if !p.capture(pv, vENew) {
			continue
		}
		tP, err := gP.TimeToRoot(vp)
		if err != nil {
			continue
		}
		if tP <= rE.tNew {
			if err := gE.RemoveSubtree(rE.handle); err == nil {
				p.logger.Warnw("evader extension pruned: dominated by pursuer", "pursuerTime", tP, "evaderTime", rE.tNew)
			}
			return
		}
	}
}

// prunePursuerCaptures removes every evader subtree that the newly inserted
// pursuer vertex dominates: within its near-ball, captured, and reached by
// the pursuer no later than the evader reaches it.
func (p *Planner) prunePursuerCaptures(gE, gP *tree.Tree, rP extendResult) {
	vPNew, err := gP.Vertex(rP.handle)
	if err != nil {
		return
	}

	near := gE.Near(vPNew.Loc, p.pursuer.Time, p.gamma)
	for _, ve := range near {
		ev, err := gE.Vertex(ve)
		if err != nil {
			continue
		}
		if !p.capture(vPNew, ev) {
			continue
		}
		tE, err := gE.TimeToRoot(ve)
		if err != nil {
			continue
		}
		if rP.tNew <= tE {
			if err := gE.RemoveSubtree(ve); err == nil {
				p.logger.Warnw("evader subtree pruned: captured by pursuer extension", "pursuerTime", rP.tNew, "evaderTime", tE)
			}
		}
	}
}
