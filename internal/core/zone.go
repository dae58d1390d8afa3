package core

import "math"

// NoFlyZone is a polygonal region closed to traffic during its active window.
// The polygon is an ordered vertex sequence, implicitly closed, at least a
// triangle.
type NoFlyZone struct {
	ID      ZoneID
	Polygon []Pos
	Active  TimeWindow
}

// NewNoFlyZone creates a zone over the given polygon.
func NewNoFlyZone(id ZoneID, polygon []Pos, active TimeWindow) *NoFlyZone {
	return &NoFlyZone{ID: id, Polygon: polygon, Active: active}
}

// NewRectZone creates a rectangular zone, the common generator shape.
func NewRectZone(id ZoneID, x, y, w, h float64, active TimeWindow) *NoFlyZone {
	return NewNoFlyZone(id, []Pos{
		{X: x, Y: y},
		{X: x + w, Y: y},
		{X: x + w, Y: y + h},
		{X: x, Y: y + h},
	}, active)
}

// ActiveAt checks whether the zone is enforced at time t.
func (z *NoFlyZone) ActiveAt(t float64) bool {
	return z.Active.Contains(t)
}

// Contains checks whether p lies inside the polygon, by ray casting.
func (z *NoFlyZone) Contains(p Pos) bool {
	inside := false
	n := len(z.Polygon)
	j := n - 1
	for i := 0; i < n; i++ {
		a := z.Polygon[i]
		b := z.Polygon[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			crossX := (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y) + a.X
			if p.X < crossX {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// BlocksSegment checks whether the flight segment a-b crosses the polygon:
// an endpoint inside the region, or an intersection with any polygon edge.
// Time is not considered here; callers gate on ActiveAt first.
func (z *NoFlyZone) BlocksSegment(a, b Pos) bool {
	if z.Contains(a) || z.Contains(b) {
		return true
	}
	n := len(z.Polygon)
	for i := 0; i < n; i++ {
		c := z.Polygon[i]
		d := z.Polygon[(i+1)%n]
		if segmentsIntersect(a, b, c, d) {
			return true
		}
	}
	return false
}

// segmentsIntersect checks whether closed segments ab and cd intersect,
// including touching and collinear-overlap cases.
func segmentsIntersect(a, b, c, d Pos) bool {
	d1 := crossOrient(c, d, a)
	d2 := crossOrient(c, d, b)
	d3 := crossOrient(a, b, c)
	d4 := crossOrient(a, b, d)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	if d1 == 0 && onSegment(c, d, a) {
		return true
	}
	if d2 == 0 && onSegment(c, d, b) {
		return true
	}
	if d3 == 0 && onSegment(a, b, c) {
		return true
	}
	if d4 == 0 && onSegment(a, b, d) {
		return true
	}
	return false
}

// crossOrient returns the cross product orienting p relative to segment ab.
func crossOrient(a, b, p Pos) float64 {
	return (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
}

// onSegment checks whether p, known collinear with ab, lies within its bounds.
func onSegment(a, b, p Pos) bool {
	return math.Min(a.X, b.X) <= p.X && p.X <= math.Max(a.X, b.X) &&
		math.Min(a.Y, b.Y) <= p.Y && p.Y <= math.Max(a.Y, b.Y)
}

// Bounds returns the polygon's axis-aligned bounding box.
func (z *NoFlyZone) Bounds() (min, max Pos) {
	if len(z.Polygon) == 0 {
		return Pos{}, Pos{}
	}
	min = z.Polygon[0]
	max = z.Polygon[0]
	for _, p := range z.Polygon[1:] {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return min, max
}
