// Package region implements the axis-aligned box game.Region used both as
// the game space and as analysis targets.
package region

import (
	"math/rand"

	"github.com/pkg/errors"

	"github.com/jawallace/rufus/game"
)

// Box is an axis-aligned, half-open n-orthotope: lower <= p < upper,
// componentwise.
type Box struct {
	lower, upper game.Point
	extent       game.Point
}

// New constructs a Box region. It rejects mismatched arity and any
// dimension where upper <= lower.
func New(lower, upper game.Point) (*Box, error) {
	if len(lower) != len(upper) {
		return nil, errors.Errorf("region: lower and upper have different arity (%d vs %d)", len(lower), len(upper))
	}
	if len(lower) == 0 {
		return nil, errors.New("region: box must have at least one dimension")
	}

	extent := make(game.Point, len(lower))
	for i := range lower {
		if upper[i] <= lower[i] {
			return nil, errors.Errorf("region: dimension %d is degenerate (lower=%v, upper=%v)", i, lower[i], upper[i])
		}
		extent[i] = upper[i] - lower[i]
	}

	return &Box{lower: lower.Clone(), upper: upper.Clone(), extent: extent}, nil
}

// Contains reports whether p lies in the box: lower <= p < upper,
// componentwise. Points of the wrong arity are never contained.
func (b *Box) Contains(p game.Point) bool {
	if len(p) != len(b.lower) {
		return false
	}
	for i := range p {
		if p[i] < b.lower[i] || p[i] >= b.upper[i] {
			return false
		}
	}
	return true
}

// Sample draws a Point uniformly from the box using rng.
func (b *Box) Sample(rng *rand.Rand) game.Point {
	out := make(game.Point, len(b.lower))
	for i := range out {
		out[i] = b.lower[i] + rng.Float64()*b.extent[i]
	}
	return out
}

// Dim is the box's arity.
func (b *Box) Dim() int {
	return len(b.lower)
}

// Lower returns the box's lower bound.
func (b *Box) Lower() game.Point {
	return b.lower.Clone()
}

// Upper returns the box's upper bound.
func (b *Box) Upper() game.Point {
	return b.upper.Clone()
}

var _ game.Region = (*Box)(nil)
