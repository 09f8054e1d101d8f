// github.com/substation-beta/ssb - an SSB subtitle rendering engine
// Copyright (C) 2026  SSB Contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package raster

import "math"

// curveDeviationLength is the flatness tolerance ε used by cubic
// subdivision: a segment is flat enough once its control polygon is within
// this many units of the chord length.
const curveDeviationLength = 0.125

// arcControlDistance is 0.5519150244/√2, the quarter-circle cubic Bézier
// constant scaled for handles placed symmetrically about the chord
// midpoint rather than at the endpoints.
const arcControlDistance = 0.5519150244 / math.Sqrt2

func vlen(p Point) float32 {
	return float32(math.Hypot(float64(p.X), float64(p.Y)))
}

func lerp(a, b Point, t float32) Point {
	return Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}

type cubic struct {
	p0, p1, p2, p3 Point
}

func isCubicFlat(c cubic) bool {
	controlLen := vlen(c.p1.Sub(c.p0)) + vlen(c.p2.Sub(c.p1)) + vlen(c.p3.Sub(c.p2))
	chordLen := vlen(c.p3.Sub(c.p0))
	return controlLen < chordLen+curveDeviationLength
}

func splitCubicMid(c cubic) (cubic, cubic) {
	p01 := lerp(c.p0, c.p1, 0.5)
	p12 := lerp(c.p1, c.p2, 0.5)
	p23 := lerp(c.p2, c.p3, 0.5)
	p012 := lerp(p01, p12, 0.5)
	p123 := lerp(p12, p23, 0.5)
	p0123 := lerp(p012, p123, 0.5)
	return cubic{c.p0, p01, p012, p0123}, cubic{p0123, p123, p23, c.p3}
}

// flattenCubic returns the polyline approximating the cubic Bézier
// (p0,p1,p2,p3), starting with p0 and followed by one point per emitted
// line segment. Subdivision proceeds from a work stack, right half pushed
// first so the left half is processed (and so emitted) first.
func flattenCubic(p0, p1, p2, p3 Point) []Point {
	out := []Point{p0}
	stack := []cubic{{p0, p1, p2, p3}}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if isCubicFlat(c) {
			out = append(out, c.p3)
			continue
		}
		left, right := splitCubicMid(c)
		stack = append(stack, right, left)
	}
	return out
}

// arcToCubics decomposes an arc starting at startPoint, sweeping by the
// signed angle (degrees) around centerPoint, into a sequence of cubic
// Bézier segments: ⌊|angle|/90⌋ quarter turns plus a remainder segment for
// the |angle| mod 90 leftover. Each segment's control points sit at
// arcControlDistance·chord from the endpoints along the endpoint tangents;
// the remainder segment rotates its control vector by the half-angle of the
// remaining sweep to keep the handles symmetric about the chord. Returns
// nil if angle is zero.
func arcToCubics(startPoint, centerPoint Point, angle Degree) []cubic {
	if angle == 0 {
		return nil
	}

	fullTurns := int(math.Floor(math.Abs(float64(angle)) / 90))
	remainder := math.Mod(float64(angle), 90)
	dir := float32(1)
	if angle < 0 {
		dir = -1
	}

	out := make([]cubic, 0, fullTurns+1)
	vector := startPoint.Sub(centerPoint)

	const sinCos45 = 0.70710678118654752440

	for i := 0; i < fullTurns; i++ {
		rotated := Point{X: -vector.Y * dir, Y: vector.X * dir}

		startEnd := rotated.Sub(vector).Mul(float32(arcControlDistance) * sinCos45)
		endStart := startEnd.Mul(-1)

		p0 := centerPoint.Add(vector)
		p1 := centerPoint.Add(vector).Add(Point{
			X: startEnd.X + startEnd.Y*dir,
			Y: startEnd.Y - startEnd.X*dir,
		})
		p2 := centerPoint.Add(rotated).Add(Point{
			X: endStart.X - endStart.Y*dir,
			Y: endStart.X*dir + endStart.Y,
		})
		p3 := centerPoint.Add(rotated)
		out = append(out, cubic{p0, p1, p2, p3})

		vector = rotated
	}

	if remainder != 0 {
		rad := remainder * math.Pi / 180
		sinA, cosA := math.Sin(rad), math.Cos(rad)

		vx, vy := float64(vector.X), float64(vector.Y)
		rotated := Point{
			X: float32(vx*cosA - vy*sinA),
			Y: float32(vy*cosA + vx*sinA),
		}

		startEnd := rotated.Sub(vector).Mul(float32(arcControlDistance))
		endStart := startEnd.Mul(-1)

		halfRad := rad / 2
		hs, hc := float32(math.Sin(halfRad)), float32(math.Cos(halfRad))

		p0 := centerPoint.Add(vector)
		p1 := centerPoint.Add(vector).Add(Point{
			X: startEnd.X*hc + startEnd.Y*hs,
			Y: startEnd.Y*hc - startEnd.X*hs,
		})
		p2 := centerPoint.Add(rotated).Add(Point{
			X: endStart.X*hc - endStart.Y*hs,
			Y: endStart.Y*hc + endStart.X*hs,
		})
		p3 := centerPoint.Add(rotated)
		out = append(out, cubic{p0, p1, p2, p3})
	}

	return out
}

// Flatten lowers p to a FlatPath: Curve and Arc segments are replaced by
// the polylines produced by flattenCubic/arcToCubics, and Move/Line/Close
// pass through unchanged. The last-point tracker follows the original
// segment stream so curves and arcs start from the correct current point.
func (p *Path) Flatten() *FlatPath {
	fp := &FlatPath{}
	var current, subpathStart Point
	for _, seg := range p.Segments {
		switch seg.Kind {
		case MoveTo:
			fp.Move(seg.P)
			current = seg.P
			subpathStart = seg.P

		case LineTo:
			fp.Line(seg.P)
			current = seg.P

		case CurveTo:
			pts := flattenCubic(current, seg.C1, seg.C2, seg.P)
			for _, pt := range pts[1:] {
				fp.Line(pt)
			}
			current = seg.P

		case ArcBy:
			for _, c := range arcToCubics(current, seg.P, seg.Angle) {
				pts := flattenCubic(c.p0, c.p1, c.p2, c.p3)
				for _, pt := range pts[1:] {
					fp.Line(pt)
				}
				current = c.p3
			}

		case Close:
			fp.CloseSub()
			current = subpathStart
		}
	}
	return fp
}
