package analysis_test

import (
	"testing"

	"go.viam.com/test"

	"github.com/jawallace/rufus/analysis"
	"github.com/jawallace/rufus/game"
	"github.com/jawallace/rufus/region"
	"github.com/jawallace/rufus/tree"
)

// buildFixture constructs the 10-node evader tree used throughout this file:
//
//	0 -> 1 -> 2 -> 3 -> 4
//	               3 -> 5
//	          2 -> 6
//	     1 -> 7 -> 8
//	          7 -> 9
func buildFixture(t *testing.T) (*tree.Tree, map[int]tree.Handle) {
	g := tree.New(game.NewRootVertex(game.Point{0, 0}, nil))
	h := map[int]tree.Handle{0: g.Root()}

	insert := func(id, parent int, loc game.Point, traj game.Trajectory) {
		v := game.Vertex{Loc: loc, Trajectory: traj}
		handle, err := g.Insert(h[parent], v)
		test.That(t, err, test.ShouldBeNil)
		h[id] = handle
	}

	insert(1, 0, game.Point{15, 15}, game.Trajectory{{0, 0}, {5, 5}, {10, 10}})
	insert(2, 1, game.Point{30, 45}, game.Trajectory{{15, 15}, {20, 25}, {25, 35}})
	insert(3, 2, game.Point{66, 60}, game.Trajectory{{30, 45}, {42, 50}, {54, 55}})
	insert(4, 3, game.Point{60, 90}, game.Trajectory{{66, 60}, {64, 70}, {62, 80}})
	insert(5, 3, game.Point{90, 60}, game.Trajectory{{66, 60}, {78, 60}})
	insert(6, 2, game.Point{20, 75}, game.Trajectory{{30, 45}, {25, 65}})
	insert(7, 1, game.Point{55, 19}, game.Trajectory{{15, 15}, {25, 16}, {35, 17}, {45, 18}})
	insert(8, 7, game.Point{55, 54}, game.Trajectory{
		{55, 19}, {55, 24}, {55, 29}, {55, 34}, {55, 39}, {55, 44}, {55, 49},
	})
	insert(9, 7, game.Point{75, 39}, game.Trajectory{{55, 19}, {65, 29}})

	return g, h
}

func newSolution(t *testing.T) *analysis.GameSolution {
	g, _ := buildFixture(t)
	return analysis.New(g, g, 1.0)
}

func TestCanReach(t *testing.T) {
	soln := newSolution(t)

	target1, err := region.New(game.Point{50, 50}, game.Point{60, 60})
	test.That(t, err, test.ShouldBeNil)
	target2, err := region.New(game.Point{20, 80}, game.Point{50, 100})
	test.That(t, err, test.ShouldBeNil)
	target3, err := region.New(game.Point{30, 10}, game.Point{60, 30})
	test.That(t, err, test.ShouldBeNil)

	test.That(t, soln.CanReach(target1), test.ShouldBeTrue)
	test.That(t, soln.CanReach(target2), test.ShouldBeFalse)
	test.That(t, soln.CanReach(target3), test.ShouldBeTrue)
}

func locs(path []game.Vertex) []game.Point {
	out := make([]game.Point, len(path))
	for i, v := range path {
		out[i] = v.Loc
	}
	return out
}

func TestAllTrajectoriesToTarget(t *testing.T) {
	soln := newSolution(t)

	target1, err := region.New(game.Point{50, 50}, game.Point{60, 60})
	test.That(t, err, test.ShouldBeNil)

	results := soln.AllTrajectoriesToTarget(target1)
	test.That(t, len(results), test.ShouldEqual, 2)

	// order is undetermined: identify each result by path length.
	var path0178, path0123 *analysis.TargetTrajectory
	for i := range results {
		switch len(results[i].Path) {
		case 4:
			if results[i].Path[2].Loc[0] == 55 {
				path0178 = &results[i]
			} else {
				path0123 = &results[i]
			}
		}
	}
	test.That(t, path0178, test.ShouldNotBeNil)
	test.That(t, path0123, test.ShouldNotBeNil)

	test.That(t, len(path0178.Trajectory), test.ShouldEqual, 15)
	test.That(t, len(path0123.Trajectory), test.ShouldEqual, 10)

	target2, err := region.New(game.Point{20, 80}, game.Point{50, 100})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(soln.AllTrajectoriesToTarget(target2)), test.ShouldEqual, 0)

	target3, err := region.New(game.Point{30, 10}, game.Point{60, 30})
	test.That(t, err, test.ShouldBeNil)
	results3 := soln.AllTrajectoriesToTarget(target3)
	test.That(t, len(results3), test.ShouldEqual, 1)
	test.That(t, len(results3[0].Path), test.ShouldEqual, 3)
	test.That(t, len(results3[0].Trajectory), test.ShouldEqual, 8)
}

func TestMinTrajectoryToTarget(t *testing.T) {
	soln := newSolution(t)

	target1, err := region.New(game.Point{50, 50}, game.Point{60, 60})
	test.That(t, err, test.ShouldBeNil)
	best, ok := soln.MinTrajectoryToTarget(target1)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, len(best.Path), test.ShouldEqual, 4)
	test.That(t, len(best.Trajectory), test.ShouldEqual, 10)

	target2, err := region.New(game.Point{20, 80}, game.Point{50, 100})
	test.That(t, err, test.ShouldBeNil)
	_, ok = soln.MinTrajectoryToTarget(target2)
	test.That(t, ok, test.ShouldBeFalse)

	target3, err := region.New(game.Point{30, 10}, game.Point{60, 30})
	test.That(t, err, test.ShouldBeNil)
	best3, ok := soln.MinTrajectoryToTarget(target3)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, len(best3.Path), test.ShouldEqual, 3)
	test.That(t, len(best3.Trajectory), test.ShouldEqual, 8)
}

func TestMaxTimeTrajectory(t *testing.T) {
	soln := newSolution(t)

	best := soln.MaxTimeTrajectory()
	test.That(t, len(best.Path), test.ShouldEqual, 4)
	test.That(t, len(best.Trajectory), test.ShouldEqual, 15)
	test.That(t, best.Path[3].Loc, test.ShouldResemble, game.Point{55, 54})
}
