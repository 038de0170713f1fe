// Package tree implements the flat-arena tree structure shared by both
// players' search trees: a slice of node records addressed by integer
// handle, rather than a pointer graph, so that Reparent and RemoveSubtree
// never need to walk or rebuild pointer chains.
package tree

import (
	"math"

	"github.com/pkg/errors"

	"github.com/jawallace/rufus/game"
)

// Handle addresses a node in a Tree's arena. The root is always handle 0. A
// Handle remains valid until its node is removed by RemoveSubtree, after
// which the slot is tombstoned and never reused.
type Handle int

const invalidHandle Handle = -1

type node struct {
	vertex   game.Vertex
	parent   Handle
	children []Handle
	removed  bool
}

// Tree is a single rooted tree of game.Vertex values, arena-backed.
type Tree struct {
	nodes []node
	root  Handle
}

// New constructs a Tree holding only root.
func New(root game.Vertex) *Tree {
	t := &Tree{root: 0}
	t.nodes = append(t.nodes, node{vertex: root, parent: invalidHandle})
	return t
}

// Root returns the tree's root handle.
func (t *Tree) Root() Handle {
	return t.root
}

// Len is the number of live (non-removed) nodes in the tree.
func (t *Tree) Len() int {
	n := 0
	for _, nd := range t.nodes {
		if !nd.removed {
			n++
		}
	}
	return n
}

func (t *Tree) get(h Handle) (*node, error) {
	if h < 0 || int(h) >= len(t.nodes) {
		return nil, errors.Errorf("tree: handle %d out of range", h)
	}
	nd := &t.nodes[h]
	if nd.removed {
		return nil, errors.Errorf("tree: handle %d refers to a removed node", h)
	}
	return nd, nil
}

// Vertex returns the vertex stored at h.
func (t *Tree) Vertex(h Handle) (game.Vertex, error) {
	nd, err := t.get(h)
	if err != nil {
		return game.Vertex{}, err
	}
	return nd.vertex, nil
}

// Parent returns h's parent handle, or an error if h is the root or invalid.
func (t *Tree) Parent(h Handle) (Handle, error) {
	nd, err := t.get(h)
	if err != nil {
		return invalidHandle, err
	}
	if nd.parent == invalidHandle {
		return invalidHandle, errors.New("tree: root has no parent")
	}
	return nd.parent, nil
}

// Insert allocates a new node holding vertex under parent, returning its
// handle.
func (t *Tree) Insert(parent Handle, vertex game.Vertex) (Handle, error) {
	if _, err := t.get(parent); err != nil {
		return invalidHandle, errors.Wrap(err, "tree: insert")
	}
	h := Handle(len(t.nodes))
	t.nodes = append(t.nodes, node{vertex: vertex, parent: parent})
	t.nodes[parent].children = append(t.nodes[parent].children, h)
	return h, nil
}

// Reparent moves the subtree rooted at v so that it hangs under newParent,
// replacing v's stored vertex with updated (its Loc is unchanged by
// convention, while its State and Trajectory reflect the new parent edge).
// Descendants of v are preserved unchanged.
func (t *Tree) Reparent(v Handle, newParent Handle, updated game.Vertex) error {
	vn, err := t.get(v)
	if err != nil {
		return errors.Wrap(err, "tree: reparent")
	}
	if v == t.root {
		return errors.New("tree: cannot reparent the root")
	}
	if _, err := t.get(newParent); err != nil {
		return errors.Wrap(err, "tree: reparent")
	}
	if newParent == v || t.isAncestorUnchecked(v, newParent) {
		return errors.New("tree: reparent would create a cycle")
	}

	oldParent := vn.parent
	t.removeChild(oldParent, v)
	t.nodes[newParent].children = append(t.nodes[newParent].children, v)
	vn.parent = newParent
	vn.vertex = updated
	return nil
}

func (t *Tree) removeChild(parent, child Handle) {
	siblings := t.nodes[parent].children
	for i, c := range siblings {
		if c == child {
			t.nodes[parent].children = append(siblings[:i], siblings[i+1:]...)
			return
		}
	}
}

// RemoveSubtree deletes v and all of its descendants, tombstoning their
// arena slots and dropping their Vertex payloads. v must not be the root.
func (t *Tree) RemoveSubtree(v Handle) error {
	vn, err := t.get(v)
	if err != nil {
		return errors.Wrap(err, "tree: remove subtree")
	}
	if v == t.root {
		return errors.New("tree: cannot remove the root")
	}

	t.removeChild(vn.parent, v)

	stack := []Handle{v}
	for len(stack) > 0 {
		h := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		nd := &t.nodes[h]
		if nd.removed {
			continue
		}
		stack = append(stack, nd.children...)
		nd.removed = true
		nd.children = nil
		nd.vertex = game.Vertex{}
	}
	return nil
}

// TimeToRoot is the sum of len(w.Trajectory) for every vertex w on the path
// from root to v, exclusive of the root (whose own trajectory is empty).
func (t *Tree) TimeToRoot(v Handle) (int, error) {
	nd, err := t.get(v)
	if err != nil {
		return 0, errors.Wrap(err, "tree: time to root")
	}

	total := 0
	cur := nd
	h := v
	for h != t.root {
		total += cur.vertex.Trajectory.Len()
		h = cur.parent
		cur = &t.nodes[h]
	}
	return total, nil
}

// Ancestors returns v's ancestors in order from v's parent up to the root
// (inclusive of the root).
func (t *Tree) Ancestors(v Handle) ([]Handle, error) {
	nd, err := t.get(v)
	if err != nil {
		return nil, errors.Wrap(err, "tree: ancestors")
	}

	var out []Handle
	h := nd.parent
	for h != invalidHandle {
		out = append(out, h)
		next := t.nodes[h].parent
		h = next
	}
	return out, nil
}

// IsAncestor reports whether a is an ancestor of b (a strict ancestor; a
// node is not its own ancestor).
func (t *Tree) IsAncestor(a, b Handle) (bool, error) {
	if _, err := t.get(a); err != nil {
		return false, errors.Wrap(err, "tree: is ancestor")
	}
	if _, err := t.get(b); err != nil {
		return false, errors.Wrap(err, "tree: is ancestor")
	}
	return t.isAncestorUnchecked(a, b), nil
}

func (t *Tree) isAncestorUnchecked(a, b Handle) bool {
	h := t.nodes[b].parent
	for h != invalidHandle {
		if h == a {
			return true
		}
		h = t.nodes[h].parent
	}
	return false
}

// Leaves returns the handles of every live node with no children.
func (t *Tree) Leaves() []Handle {
	var out []Handle
	for i, nd := range t.nodes {
		if nd.removed {
			continue
		}
		if len(nd.children) == 0 {
			out = append(out, Handle(i))
		}
	}
	return out
}

// All returns every live node's handle, in arena (insertion) order.
func (t *Tree) All() []Handle {
	var out []Handle
	for i, nd := range t.nodes {
		if !nd.removed {
			out = append(out, Handle(i))
		}
	}
	return out
}

// NearestNeighbor returns the live vertex minimizing cost(v.Loc, z,
// v.State), breaking ties by insertion order.
func (t *Tree) NearestNeighbor(z game.Point, cost game.CostFunc) Handle {
	best := invalidHandle
	bestCost := math.Inf(1)
	for i, nd := range t.nodes {
		if nd.removed {
			continue
		}
		c := cost(nd.vertex.Loc, z, nd.vertex.State)
		if c < bestCost {
			bestCost = c
			best = Handle(i)
		}
	}
	return best
}

// WithinRadius returns every live vertex v with cost(v.Loc, z, v.State) < r.
func (t *Tree) WithinRadius(z game.Point, r float64, cost game.CostFunc) []Handle {
	var out []Handle
	for i, nd := range t.nodes {
		if nd.removed {
			continue
		}
		if cost(nd.vertex.Loc, z, nd.vertex.State) < r {
			out = append(out, Handle(i))
		}
	}
	return out
}

// Logball is the Karaman-Frazzoli shrinking-ball radius gamma*(ln(n)/n)^(1/dim).
// It returns 0 when n <= 1 (ln(1) = 0, and the formula is undefined for n=0).
func Logball(gamma float64, n int, dim int) float64 {
	if n <= 1 {
		return 0
	}
	return gamma * math.Pow(math.Log(float64(n))/float64(n), 1.0/float64(dim))
}

// Near is WithinRadius with r computed by Logball(gamma, len(tree), len(z)):
// the ball's dimension is always z's own arity, never a separately supplied
// value that could drift out of sync with it.
func (t *Tree) Near(z game.Point, cost game.CostFunc, gamma float64) []Handle {
	r := Logball(gamma, t.Len(), len(z))
	return t.WithinRadius(z, r, cost)
}
