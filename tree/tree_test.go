package tree_test

import (
	"math"
	"testing"

	"go.viam.com/test"

	"github.com/jawallace/rufus/game"
	"github.com/jawallace/rufus/tree"
)

// buildFixture reproduces the five-node chain used throughout the reference
// test suite: root(10) -> n1(20) -> {n2(25), n3(30)}; root(10) -> n4(5).
func buildFixture(t *testing.T) (*tree.Tree, map[string]tree.Handle) {
	t.Helper()

	traj := func(from, to float64) game.Trajectory {
		var out game.Trajectory
		if from <= to {
			for v := from; v < to; v++ {
				out = append(out, game.Point{v})
			}
		} else {
			for v := from; v > to; v-- {
				out = append(out, game.Point{v})
			}
		}
		return out
	}

	g := tree.New(game.NewRootVertex(game.Point{10.0}, nil))
	h := map[string]tree.Handle{"root": g.Root()}

	var err error
	h["n1"], err = g.Insert(h["root"], game.Vertex{Loc: game.Point{20.0}, Trajectory: traj(10, 20)})
	test.That(t, err, test.ShouldBeNil)
	h["n2"], err = g.Insert(h["n1"], game.Vertex{Loc: game.Point{25.0}, Trajectory: traj(20, 25)})
	test.That(t, err, test.ShouldBeNil)
	h["n3"], err = g.Insert(h["n1"], game.Vertex{Loc: game.Point{30.0}, Trajectory: traj(20, 30)})
	test.That(t, err, test.ShouldBeNil)
	h["n4"], err = g.Insert(h["root"], game.Vertex{Loc: game.Point{5.0}, Trajectory: traj(10, 5)})
	test.That(t, err, test.ShouldBeNil)

	return g, h
}

func dist(a, b game.Point, _ game.State) float64 {
	return a.Dist(b)
}

func TestTimeToRoot(t *testing.T) {
	g, h := buildFixture(t)

	tt, err := g.TimeToRoot(h["root"])
	test.That(t, err, test.ShouldBeNil)
	test.That(t, tt, test.ShouldEqual, 0)

	tt, err = g.TimeToRoot(h["n1"])
	test.That(t, err, test.ShouldBeNil)
	test.That(t, tt, test.ShouldEqual, 10)

	tt, err = g.TimeToRoot(h["n4"])
	test.That(t, err, test.ShouldBeNil)
	test.That(t, tt, test.ShouldEqual, 5)

	tt, err = g.TimeToRoot(h["n2"])
	test.That(t, err, test.ShouldBeNil)
	test.That(t, tt, test.ShouldEqual, 15)
}

func TestNearestNeighbor(t *testing.T) {
	g, h := buildFixture(t)

	cases := []struct {
		query    float64
		expected tree.Handle
	}{
		{9.0, h["root"]},
		{21.0, h["n1"]},
		{23.0, h["n2"]},
		{31.0, h["n3"]},
		{2.0, h["n4"]},
	}

	for _, c := range cases {
		got := g.NearestNeighbor(game.Point{c.query}, dist)
		test.That(t, got, test.ShouldEqual, c.expected)
	}
}

func TestWithinRadius(t *testing.T) {
	g, h := buildFixture(t)

	got := g.WithinRadius(game.Point{25.0}, 10.0, dist)
	test.That(t, len(got), test.ShouldEqual, 3)
	test.That(t, asSet(got), test.ShouldResemble, asSet([]tree.Handle{h["n1"], h["n2"], h["n3"]}))
}

func TestRemoveSubtree(t *testing.T) {
	g, h := buildFixture(t)

	err := g.RemoveSubtree(h["n1"])
	test.That(t, err, test.ShouldBeNil)

	remaining := g.All()
	test.That(t, len(remaining), test.ShouldEqual, 2)
	test.That(t, asSet(remaining), test.ShouldResemble, asSet([]tree.Handle{h["root"], h["n4"]}))
}

func TestLogball(t *testing.T) {
	test.That(t, tree.Logball(1.0, 1, 1), test.ShouldEqual, 0.0)
	test.That(t, math.Abs(tree.Logball(1.0, 10, 1)-math.Log(10)/10), test.ShouldBeLessThan, 1e-9)
}

func TestNear(t *testing.T) {
	g, h := buildFixture(t)

	// gamma=20 over 5 nodes in 1-D gives a ball radius of 20*ln(5)/5 ~ 6.44.
	got := g.Near(game.Point{25.0}, dist, 20.0)
	test.That(t, len(got), test.ShouldEqual, 3)
	test.That(t, asSet(got), test.ShouldResemble, asSet([]tree.Handle{h["n1"], h["n2"], h["n3"]}))

	got = g.Near(game.Point{0.0}, dist, 20.0)
	test.That(t, len(got), test.ShouldEqual, 1)
	test.That(t, got[0], test.ShouldEqual, h["n4"])

	got = g.Near(game.Point{50.0}, dist, 20.0)
	test.That(t, len(got), test.ShouldEqual, 0)
}

func TestIsAncestor(t *testing.T) {
	g, h := buildFixture(t)

	ok, err := g.IsAncestor(h["root"], h["n2"])
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ok, test.ShouldBeTrue)

	ok, err = g.IsAncestor(h["n1"], h["n2"])
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ok, test.ShouldBeTrue)

	ok, err = g.IsAncestor(h["n2"], h["n3"])
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ok, test.ShouldBeFalse)

	ok, err = g.IsAncestor(h["n4"], h["n2"])
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ok, test.ShouldBeFalse)
}

func TestAncestors(t *testing.T) {
	g, h := buildFixture(t)

	anc, err := g.Ancestors(h["n2"])
	test.That(t, err, test.ShouldBeNil)
	test.That(t, anc, test.ShouldResemble, []tree.Handle{h["n1"], h["root"]})
}

func TestLeaves(t *testing.T) {
	g, h := buildFixture(t)

	leaves := g.Leaves()
	test.That(t, asSet(leaves), test.ShouldResemble, asSet([]tree.Handle{h["n2"], h["n3"], h["n4"]}))
}

func TestReparentRejectsCycles(t *testing.T) {
	g, h := buildFixture(t)

	err := g.Reparent(h["n1"], h["n2"], game.Vertex{Loc: game.Point{20.0}})
	test.That(t, err, test.ShouldNotBeNil)

	err = g.Reparent(h["root"], h["n1"], game.Vertex{})
	test.That(t, err, test.ShouldNotBeNil)
}

func TestReparentMovesSubtree(t *testing.T) {
	g, h := buildFixture(t)

	err := g.Reparent(h["n2"], h["n4"], game.Vertex{Loc: game.Point{25.0}, Trajectory: game.Trajectory{{5.0}, {25.0}}})
	test.That(t, err, test.ShouldBeNil)

	parent, err := g.Parent(h["n2"])
	test.That(t, err, test.ShouldBeNil)
	test.That(t, parent, test.ShouldEqual, h["n4"])

	anc, err := g.Ancestors(h["n2"])
	test.That(t, err, test.ShouldBeNil)
	test.That(t, anc, test.ShouldResemble, []tree.Handle{h["n4"], h["root"]})
}

func asSet(hs []tree.Handle) map[tree.Handle]struct{} {
	out := make(map[tree.Handle]struct{}, len(hs))
	for _, h := range hs {
		out[h] = struct{}{}
	}
	return out
}
