package actors

import (
	"math"

	"github.com/golang/geo/r3"
)

// pose2 is a planar pose (position, heading) used internally while
// constructing Dubins curves. It is distinct from game.Point/game.State
// because the Dubins geometry below is a pure function of a 2-D position and
// a scalar heading, not of the module's generic n-dimensional
// representation; position is carried as an r3.Vector (Z always 0) so that
// circle-center and arc-endpoint arithmetic reads the way it does throughout
// the rest of the corpus's vector math.
type pose2 struct {
	pos   r3.Vector
	theta float64
}

func newPose2(x, y, theta float64) pose2 {
	return pose2{pos: r3.Vector{X: x, Y: y}, theta: theta}
}

func (p pose2) x() float64 { return p.pos.X }
func (p pose2) y() float64 { return p.pos.Y }

// dubinsSegment is one of the three constant-curvature arcs making up a
// Dubins path. kind is 'L' (turn left at radius r), 'R' (turn right at
// radius r), or 'S' (straight). length is the arc length actually traveled
// along that segment (already scaled by r for turns).
type dubinsSegment struct {
	kind   byte
	length float64
}

// dubinsPath is the minimum-length CSC path connecting two poses at a given
// turning radius, along with its total length.
type dubinsPath struct {
	segments [3]dubinsSegment
	total    float64
}

func mod2pi(theta float64) float64 {
	theta = math.Mod(theta, 2*math.Pi)
	if theta < 0 {
		theta += 2 * math.Pi
	}
	return theta
}

// planDubinsPath finds the shortest Dubins path of the four CSC families
// (LSL, RSR, RSL, LSR) connecting start to end at turning radius r. It
// reports ok=false if none of the four families is geometrically feasible
// (only possible for the RSL/LSR "straight" cross-over families, when the
// two turning circles overlap too much to fit a connecting tangent).
//
// CCC families (RLR, LRL) are not implemented: they only ever improve on
// the best CSC path when the two endpoints are very close together relative
// to the turning radius. DubinsAirplane's Steer rejects that regime with its
// minimum-separation check; DubinsCar's Steer has no such check, so for
// close endpoints it returns the shortest CSC path, which can be longer than
// the true minimum-length Dubins path.
func planDubinsPath(start, end pose2, r float64) (dubinsPath, bool) {
	delta := end.pos.Sub(start.pos)
	d := delta.Norm() / r
	theta := mod2pi(math.Atan2(delta.Y, delta.X))
	alpha := mod2pi(start.theta - theta)
	beta := mod2pi(end.theta - theta)

	type candidate struct {
		d1, d2, d3 float64
		mode       [3]byte
		ok         bool
	}

	cands := []candidate{
		lsl(alpha, beta, d),
		rsr(alpha, beta, d),
		rsl(alpha, beta, d),
		lsr(alpha, beta, d),
	}

	best := candidate{ok: false}
	bestLen := math.Inf(1)
	for _, c := range cands {
		if !c.ok {
			continue
		}
		total := c.d1 + c.d2 + c.d3
		if total < bestLen {
			bestLen = total
			best = c
		}
	}

	if !best.ok {
		return dubinsPath{}, false
	}

	segs := [3]dubinsSegment{
		{kind: best.mode[0], length: best.d1 * r},
		{kind: best.mode[1], length: best.d2 * r},
		{kind: best.mode[2], length: best.d3 * r},
	}
	return dubinsPath{segments: segs, total: bestLen * r}, true
}

type csc struct {
	d1, d2, d3 float64
	mode       [3]byte
	ok         bool
}

func lsl(alpha, beta, d float64) csc {
	sa, sb := math.Sin(alpha), math.Sin(beta)
	ca, cb := math.Cos(alpha), math.Cos(beta)
	cab := math.Cos(alpha - beta)

	pSq := 2 + d*d - 2*cab + 2*d*(sa-sb)
	if pSq < 0 {
		return csc{}
	}
	tmp := math.Atan2(cb-ca, d+sa-sb)
	t := mod2pi(-alpha + tmp)
	p := math.Sqrt(pSq)
	q := mod2pi(beta - tmp)
	return csc{d1: t, d2: p, d3: q, mode: [3]byte{'L', 'S', 'L'}, ok: true}
}

func rsr(alpha, beta, d float64) csc {
	sa, sb := math.Sin(alpha), math.Sin(beta)
	ca, cb := math.Cos(alpha), math.Cos(beta)
	cab := math.Cos(alpha - beta)

	pSq := 2 + d*d - 2*cab + 2*d*(sb-sa)
	if pSq < 0 {
		return csc{}
	}
	tmp := math.Atan2(ca-cb, d-sa+sb)
	t := mod2pi(alpha - tmp)
	p := math.Sqrt(pSq)
	q := mod2pi(-beta + tmp)
	return csc{d1: t, d2: p, d3: q, mode: [3]byte{'R', 'S', 'R'}, ok: true}
}

func rsl(alpha, beta, d float64) csc {
	sa, sb := math.Sin(alpha), math.Sin(beta)
	ca, cb := math.Cos(alpha), math.Cos(beta)
	cab := math.Cos(alpha - beta)

	pSq := d*d - 2 + 2*cab - 2*d*(sa+sb)
	if pSq < 0 {
		return csc{}
	}
	p := math.Sqrt(pSq)
	tmp := math.Atan2(ca+cb, d-sa-sb) - math.Atan2(2, p)
	t := mod2pi(alpha - tmp)
	q := mod2pi(beta - tmp)
	return csc{d1: t, d2: p, d3: q, mode: [3]byte{'R', 'S', 'L'}, ok: true}
}

func lsr(alpha, beta, d float64) csc {
	sa, sb := math.Sin(alpha), math.Sin(beta)
	ca, cb := math.Cos(alpha), math.Cos(beta)
	cab := math.Cos(alpha - beta)

	pSq := -2 + d*d + 2*cab + 2*d*(sa+sb)
	if pSq < 0 {
		return csc{}
	}
	p := math.Sqrt(pSq)
	tmp := math.Atan2(-ca-cb, d+sa+sb) - math.Atan2(-2, p)
	t := mod2pi(-alpha + tmp)
	q := mod2pi(-beta + tmp)
	return csc{d1: t, d2: p, d3: q, mode: [3]byte{'L', 'S', 'R'}, ok: true}
}

// poseAt returns the pose reached after traveling arc length s along path,
// starting from start, at turning radius r. s is clamped to [0, path.total].
func poseAt(path dubinsPath, r float64, start pose2, s float64) pose2 {
	if s < 0 {
		s = 0
	}
	if s > path.total {
		s = path.total
	}

	pos, th := start.pos, start.theta
	remaining := s
	for _, seg := range path.segments {
		if remaining <= 0 {
			break
		}
		d := math.Min(remaining, seg.length)
		switch seg.kind {
		case 'S':
			pos = pos.Add(r3.Vector{X: d * math.Cos(th), Y: d * math.Sin(th)})
		case 'L':
			phi := d / r
			center := pos.Add(r3.Vector{X: -r * math.Sin(th), Y: r * math.Cos(th)})
			th += phi
			pos = center.Add(r3.Vector{X: r * math.Sin(th), Y: -r * math.Cos(th)})
		case 'R':
			phi := d / r
			center := pos.Add(r3.Vector{X: r * math.Sin(th), Y: -r * math.Cos(th)})
			th -= phi
			pos = center.Add(r3.Vector{X: -r * math.Sin(th), Y: r * math.Cos(th)})
		}
		remaining -= d
	}

	return pose2{pos: pos, theta: mod2pi(th)}
}

// samplePath samples path at step arc-length intervals, starting at s=0,
// following the same floor(total/step)+1 count convention used by Linear's
// Steer so that every actor's trajectory length formula is consistent.
func samplePath(path dubinsPath, r float64, start pose2, step float64) []pose2 {
	n := int(math.Floor(path.total/step)) + 1
	out := make([]pose2, n)
	for k := 0; k < n; k++ {
		out[k] = poseAt(path, r, start, float64(k)*step)
	}
	return out
}
