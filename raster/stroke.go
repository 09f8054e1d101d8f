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

import (
	"math"

	"seehuhn.de/go/pdf/graphics"
)

// DefaultMiterLimit is used when a border's join style is miter and no
// other limit has been configured.
const DefaultMiterLimit = 10

// strokeSeg is one offset-able segment of a flattened subpath: endpoints
// plus the precomputed unit tangent and left-hand (90° CCW) normal.
type strokeSeg struct {
	A, B Point
	T, N Point
}

func buildStrokeSegs(pts []Point) []strokeSeg {
	var segs []strokeSeg
	for i := 0; i+1 < len(pts); i++ {
		a, b := pts[i], pts[i+1]
		d := b.Sub(a)
		length := vlen(d)
		if length < 1e-6 {
			continue
		}
		t := d.Mul(1 / length)
		n := Point{X: -t.Y, Y: t.X}
		segs = append(segs, strokeSeg{A: a, B: b, T: t, N: n})
	}
	return segs
}

// reverseStrokeSegs returns segs traversed back to front, with every
// tangent and normal negated, so that a routine written for the "+N" side
// of a forward-oriented polyline can be reused unchanged for the "-N"
// side: the -N side of the original is the +N side of the reversal.
func reverseStrokeSegs(segs []strokeSeg) []strokeSeg {
	out := make([]strokeSeg, len(segs))
	for i, s := range segs {
		out[len(segs)-1-i] = strokeSeg{A: s.B, B: s.A, T: s.T.Mul(-1), N: s.N.Mul(-1)}
	}
	return out
}

// subpathsFromFlat splits fp into polylines, one per Move..Close/end run,
// dropping runs with fewer than two points. closed reports, per returned
// subpath, whether it ended in a Close segment.
func subpathsFromFlat(fp *FlatPath) (subpaths [][]Point, closed []bool) {
	var current []Point
	isClosed := false
	flush := func() {
		if len(current) >= 2 {
			subpaths = append(subpaths, current)
			closed = append(closed, isClosed)
		}
		current = nil
		isClosed = false
	}
	for _, seg := range fp.Segments {
		switch seg.Kind {
		case FlatMoveTo:
			flush()
			current = []Point{seg.P}
		case FlatLineTo:
			current = append(current, seg.P)
		case FlatClose:
			if len(current) > 0 && current[0] != current[len(current)-1] {
				current = append(current, current[0])
			}
			isClosed = true
		}
	}
	flush()
	return subpaths, closed
}

// arcPoints returns the polyline (excluding the start point) approximating
// the arc of the given radius around center, starting in direction
// startDir and sweeping by sweep degrees. Reuses the same cubic
// decomposition and flattening Flatten uses for path ArcBy segments.
func arcPoints(center Point, radius float32, startDir Point, sweep Degree) []Point {
	start := center.Add(startDir.Mul(radius))
	var pts []Point
	for _, c := range arcToCubics(start, center, sweep) {
		poly := flattenCubic(c.p0, c.p1, c.p2, c.p3)
		pts = append(pts, poly[1:]...)
	}
	return pts
}

// capPoints returns the extra polyline closing off an open subpath's end,
// given the point and the outward tangent (pointing away from the line).
func capPoints(p, outward Point, halfWidth float32, cap graphics.LineCapStyle) []Point {
	n := Point{X: -outward.Y, Y: outward.X}
	switch cap {
	case graphics.LineCapSquare:
		ext := p.Add(outward.Mul(halfWidth))
		return []Point{ext.Add(n.Mul(halfWidth)), ext.Sub(n.Mul(halfWidth))}
	case graphics.LineCapRound:
		return arcPoints(p, halfWidth, n, -180)
	default: // graphics.LineCapButt
		return nil
	}
}

// joinPoints returns the extra polyline bridging a corner where the
// direction changes from t1 to t2, on the side whose normals are n1, n2.
// Nearly-collinear corners need no bridge. A miter join that would exceed
// miterLimit falls back to a plain bevel (no extra points), matching the
// PDF/SVG convention the Cap/Join enums are borrowed from.
func joinPoints(corner, t1, t2, n1, n2 Point, halfWidth float32, join graphics.LineJoinStyle, miterLimit float32) []Point {
	cross := float64(t1.X*t2.Y - t1.Y*t2.X)
	dot := float64(t1.X*t2.X + t1.Y*t2.Y)
	if math.Abs(cross) < 1e-6 {
		return nil
	}
	switch join {
	case graphics.LineJoinRound:
		angle := Degree(math.Atan2(cross, dot) * 180 / math.Pi)
		return arcPoints(corner, halfWidth, n1, angle)
	case graphics.LineJoinMiter:
		halfAngle := math.Sqrt(math.Max(0, (1+dot)/2))
		if halfAngle > 1e-9 && 1/halfAngle <= float64(miterLimit) {
			bisector := n1.Add(n2)
			blen := float64(vlen(bisector))
			if blen > 1e-9 {
				u := bisector.Mul(float32(1 / blen))
				dist := halfWidth / float32(halfAngle)
				return []Point{corner.Add(u.Mul(dist))}
			}
		}
		return nil
	default: // graphics.LineJoinBevel
		return nil
	}
}

// buildStrokeSide returns the offset polyline along the +N side of segs,
// with join geometry bridging each interior corner.
func buildStrokeSide(segs []strokeSeg, halfWidth float32, join graphics.LineJoinStyle, miterLimit float32) []Point {
	out := []Point{segs[0].A.Add(segs[0].N.Mul(halfWidth))}
	for i, seg := range segs {
		out = append(out, seg.B.Add(seg.N.Mul(halfWidth)))
		if i+1 < len(segs) {
			next := segs[i+1]
			out = append(out, joinPoints(seg.B, seg.T, next.T, seg.N, next.N, halfWidth, join, miterLimit)...)
			out = append(out, next.A.Add(next.N.Mul(halfWidth)))
		}
	}
	return out
}

// StrokeOutline builds the filled outline of fp stroked at the given total
// width (half-width offset to each side) with the given cap and join
// styles, as a new Path ready for Flatten and Rasterize. fp is not
// modified. Corners are bridged on both sides regardless of turn
// direction rather than only on the convex side: the concave side's extra
// geometry self-overlaps the already-filled interior, which the
// non-zero-winding rasterizer fills identically to a precisely mitred
// inner corner.
func StrokeOutline(fp *FlatPath, width float32, cap graphics.LineCapStyle, join graphics.LineJoinStyle, miterLimit float32) *Path {
	out := NewPath()
	halfWidth := width / 2
	subpaths, closedFlags := subpathsFromFlat(fp)
	for i, pts := range subpaths {
		segs := buildStrokeSegs(pts)
		if len(segs) == 0 {
			continue
		}
		var poly []Point
		if closedFlags[i] {
			first, last := segs[0], segs[len(segs)-1]
			fwd := buildStrokeSide(segs, halfWidth, join, miterLimit)
			fwd = append(fwd, joinPoints(last.B, last.T, first.T, last.N, first.N, halfWidth, join, miterLimit)...)
			bwd := buildStrokeSide(reverseStrokeSegs(segs), halfWidth, join, miterLimit)
			bwd = append(bwd, joinPoints(first.A, first.T.Mul(-1), last.T.Mul(-1), first.N.Mul(-1), last.N.Mul(-1), halfWidth, join, miterLimit)...)
			poly = append(poly, fwd...)
			poly = append(poly, bwd...)
		} else {
			first, last := segs[0], segs[len(segs)-1]
			fwd := buildStrokeSide(segs, halfWidth, join, miterLimit)
			endCap := capPoints(last.B, last.T, halfWidth, cap)
			bwd := buildStrokeSide(reverseStrokeSegs(segs), halfWidth, join, miterLimit)
			startCap := capPoints(first.A, first.T.Mul(-1), halfWidth, cap)
			poly = append(poly, fwd...)
			poly = append(poly, endCap...)
			poly = append(poly, bwd...)
			poly = append(poly, startCap...)
		}
		if len(poly) < 3 {
			continue
		}
		out.Move(poly[0])
		for _, pt := range poly[1:] {
			out.Line(pt)
		}
		out.CloseSub()
	}
	return out
}
