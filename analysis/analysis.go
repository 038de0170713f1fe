// Package analysis implements queries over a completed planner.Solution: for
// a target Region, has the evader already found a path into it, and if so,
// what does that path look like.
package analysis

import (
	"github.com/jawallace/rufus/game"
	"github.com/jawallace/rufus/tree"
)

// GameSolution answers reachability and trajectory queries against a frozen
// pair of search trees. All queries in this package operate on the evader
// tree: the pursuer tree is retained for completeness and for callers who
// want to inspect its own reachable set symmetrically.
type GameSolution struct {
	evaderTree  *tree.Tree
	pursuerTree *tree.Tree
	dt          float64
}

// New constructs a GameSolution over the given evader and pursuer trees. dt
// is the sampling period used to convert a trajectory's sample count into
// elapsed game time.
func New(evaderTree, pursuerTree *tree.Tree, dt float64) *GameSolution {
	return &GameSolution{evaderTree: evaderTree, pursuerTree: pursuerTree, dt: dt}
}

// EvaderTree returns the solution's evader search tree.
func (s *GameSolution) EvaderTree() *tree.Tree { return s.evaderTree }

// PursuerTree returns the solution's pursuer search tree.
func (s *GameSolution) PursuerTree() *tree.Tree { return s.pursuerTree }

// TargetTrajectory is one path from the evader tree's root into a target
// Region: the committed vertices along the way, their concatenated sampled
// trajectory, and the elapsed game time the trajectory represents.
type TargetTrajectory struct {
	// Path is the root-to-target sequence of committed vertices, inclusive
	// of both endpoints.
	Path []game.Vertex
	// Trajectory is every trajectory sample along Path, in order, with the
	// final vertex's own Loc appended.
	Trajectory game.Trajectory
	// ElapsedTime is len(Trajectory)*dt, excluding the appended final Loc
	// sample, which marks arrival rather than travel.
	ElapsedTime float64
}

// CanReach reports whether any evader-tree vertex has already reached
// target.
func (s *GameSolution) CanReach(target game.Region) bool {
	return len(s.reachableNodes(target)) > 0
}

// AllTrajectoriesToTarget returns the first-crossing trajectory into target
// for every evader-tree vertex that reaches it and has no ancestor that
// already does (an ancestor's trajectory is a prefix of its descendant's, so
// only the earliest crossing on each root-to-leaf path is reported).
func (s *GameSolution) AllTrajectoriesToTarget(target game.Region) []TargetTrajectory {
	nodes := s.reachableNodes(target)
	out := make([]TargetTrajectory, 0, len(nodes))
	for _, h := range nodes {
		out = append(out, s.collectTarget(h))
	}
	return out
}

// MinTrajectoryToTarget returns the shortest (by sample count) of
// AllTrajectoriesToTarget's results, or ok=false if target is unreached.
func (s *GameSolution) MinTrajectoryToTarget(target game.Region) (TargetTrajectory, bool) {
	all := s.AllTrajectoriesToTarget(target)
	if len(all) == 0 {
		return TargetTrajectory{}, false
	}

	best := all[0]
	for _, tt := range all[1:] {
		if len(tt.Trajectory) < len(best.Trajectory) {
			best = tt
		}
	}
	return best, true
}

// MaxTimeTrajectory returns the longest (by sample count) root-to-leaf
// trajectory anywhere in the evader tree, regardless of any target region.
func (s *GameSolution) MaxTimeTrajectory() TargetTrajectory {
	var best TargetTrajectory
	first := true
	for _, h := range s.evaderTree.Leaves() {
		tt := s.collectTarget(h)
		if first || len(tt.Trajectory) > len(best.Trajectory) {
			best = tt
			first = false
		}
	}
	return best
}

// reachableNodes returns every evader-tree vertex (by handle) whose Loc or
// any trajectory sample lies in target, excluding any such vertex that has
// an ancestor also in the result set (that ancestor's own crossing is the
// first one, and is reported instead).
//
// This is a direct, unoptimized double loop over the tree's nodes; fine for
// the tree sizes this module produces, but would need a smarter approach
// (e.g. stopping tree traversal at the first crossing per root-to-leaf walk)
// to scale to much larger trees.
func (s *GameSolution) reachableNodes(target game.Region) []tree.Handle {
	var hits []tree.Handle
	for _, h := range s.evaderTree.All() {
		if s.crosses(h, target) {
			hits = append(hits, h)
		}
	}

	var out []tree.Handle
	for _, h := range hits {
		dominated := false
		for _, other := range hits {
			if other == h {
				continue
			}
			if isAncestor, err := s.evaderTree.IsAncestor(other, h); err == nil && isAncestor {
				dominated = true
				break
			}
		}
		if !dominated {
			out = append(out, h)
		}
	}
	return out
}

// crosses reports whether h's vertex (its committed Loc, or any point along
// the trajectory that reached it) lies in target.
func (s *GameSolution) crosses(h tree.Handle, target game.Region) bool {
	v, err := s.evaderTree.Vertex(h)
	if err != nil {
		return false
	}
	if target.Contains(v.Loc) {
		return true
	}
	for _, p := range v.Trajectory {
		if target.Contains(p) {
			return true
		}
	}
	return false
}

// collectPath returns h's root-to-h vertices, in root-first order.
func (s *GameSolution) collectPath(h tree.Handle) []game.Vertex {
	ancestors, err := s.evaderTree.Ancestors(h)
	if err != nil {
		return nil
	}

	path := make([]game.Vertex, 0, len(ancestors)+1)
	for i := len(ancestors) - 1; i >= 0; i-- {
		v, err := s.evaderTree.Vertex(ancestors[i])
		if err != nil {
			continue
		}
		path = append(path, v)
	}
	v, err := s.evaderTree.Vertex(h)
	if err == nil {
		path = append(path, v)
	}
	return path
}

// collectTarget builds the TargetTrajectory for the root-to-h path.
func (s *GameSolution) collectTarget(h tree.Handle) TargetTrajectory {
	path := s.collectPath(h)

	var traj game.Trajectory
	sampleCount := 0
	for _, v := range path {
		if len(v.Trajectory) == 0 {
			continue
		}
		traj = append(traj, v.Trajectory...)
		sampleCount += len(v.Trajectory)
	}
	if len(path) > 0 {
		traj = append(traj, path[len(path)-1].Loc)
	}

	return TargetTrajectory{
		Path:        path,
		Trajectory:  traj,
		ElapsedTime: float64(sampleCount) * s.dt,
	}
}
