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

// SegmentKind identifies the kind of a Path segment.
type SegmentKind int

const (
	MoveTo SegmentKind = iota
	LineTo
	CurveTo
	ArcBy
	Close
)

// Segment is one drawing instruction of a Path. Only the fields relevant to
// Kind are meaningful:
//
//   - MoveTo, LineTo: P is the target point.
//   - CurveTo: C1, C2 are the control points, P is the end point.
//   - ArcBy: P is the center, Angle is the signed sweep in degrees.
//   - Close: no fields used.
type Segment struct {
	Kind   SegmentKind
	P      Point
	C1, C2 Point
	Angle  Degree
}

// Path is a value sequence of drawing segments: MoveTo, LineTo, CurveTo,
// ArcBy and Close. It carries curves and arcs; see FlatPath for the
// flattened variant used by the rasterizer.
type Path struct {
	Segments []Segment
}

// NewPath returns an empty path.
func NewPath() *Path {
	return &Path{}
}

// Move appends a MoveTo segment and returns the receiver for chaining.
func (p *Path) Move(pt Point) *Path {
	p.Segments = append(p.Segments, Segment{Kind: MoveTo, P: pt})
	return p
}

// Line appends a LineTo segment and returns the receiver for chaining.
func (p *Path) Line(pt Point) *Path {
	p.Segments = append(p.Segments, Segment{Kind: LineTo, P: pt})
	return p
}

// Curve appends a CurveTo segment and returns the receiver for chaining.
func (p *Path) Curve(c1, c2, pt Point) *Path {
	p.Segments = append(p.Segments, Segment{Kind: CurveTo, C1: c1, C2: c2, P: pt})
	return p
}

// Arc appends an ArcBy segment (center, signed sweep in degrees) and
// returns the receiver for chaining.
func (p *Path) Arc(center Point, angle Degree) *Path {
	p.Segments = append(p.Segments, Segment{Kind: ArcBy, P: center, Angle: angle})
	return p
}

// CloseSub appends a Close segment and returns the receiver for chaining.
func (p *Path) CloseSub() *Path {
	p.Segments = append(p.Segments, Segment{Kind: Close})
	return p
}

// FlatSegmentKind identifies the kind of a FlatPath segment.
type FlatSegmentKind int

const (
	FlatMoveTo FlatSegmentKind = iota
	FlatLineTo
	FlatClose
)

// FlatSegment is one drawing instruction of a FlatPath.
type FlatSegment struct {
	Kind FlatSegmentKind
	P    Point
}

// FlatPath is the grammar of Path minus Curve and Arc: every curved segment
// has already been replaced by a polyline of LineTo segments. Close
// re-closes to the most recently seen Move point; a FlatPath's Close is
// only ever preceded by at least one Move.
type FlatPath struct {
	Segments []FlatSegment
}

// Move appends a FlatMoveTo segment and returns the receiver for chaining.
func (fp *FlatPath) Move(pt Point) *FlatPath {
	fp.Segments = append(fp.Segments, FlatSegment{Kind: FlatMoveTo, P: pt})
	return fp
}

// Line appends a FlatLineTo segment and returns the receiver for chaining.
func (fp *FlatPath) Line(pt Point) *FlatPath {
	fp.Segments = append(fp.Segments, FlatSegment{Kind: FlatLineTo, P: pt})
	return fp
}

// CloseSub appends a FlatClose segment and returns the receiver for
// chaining.
func (fp *FlatPath) CloseSub() *FlatPath {
	fp.Segments = append(fp.Segments, FlatSegment{Kind: FlatClose})
	return fp
}

// Clone returns a deep copy of fp, safe to mutate independently.
func (fp *FlatPath) Clone() *FlatPath {
	out := &FlatPath{Segments: make([]FlatSegment, len(fp.Segments))}
	copy(out.Segments, fp.Segments)
	return out
}

// Translate adds (dx,dy) to every Move/Line point of fp and returns a new
// FlatPath; fp is not modified.
func (fp *FlatPath) Translate(dx, dy float32) *FlatPath {
	out := fp.Clone()
	d := Point{X: dx, Y: dy}
	for i, seg := range out.Segments {
		if seg.Kind == FlatClose {
			continue
		}
		out.Segments[i].P = seg.P.Add(d)
	}
	return out
}

// Rect is an axis-aligned bounding box, [Min,Max) in both axes.
type Rect struct {
	MinX, MinY, MaxX, MaxY float32
}

// Empty reports whether r contains no area.
func (r Rect) Empty() bool {
	return r.MaxX <= r.MinX || r.MaxY <= r.MinY
}

// Bounding returns the axis-aligned bounding box over the Move/Line points
// of fp; Close segments do not contribute. Returns an empty Rect if fp has
// no Move/Line segments.
func (fp *FlatPath) Bounding() Rect {
	first := true
	var r Rect
	for _, seg := range fp.Segments {
		if seg.Kind == FlatClose {
			continue
		}
		if first {
			r = Rect{MinX: seg.P.X, MinY: seg.P.Y, MaxX: seg.P.X, MaxY: seg.P.Y}
			first = false
			continue
		}
		if seg.P.X < r.MinX {
			r.MinX = seg.P.X
		}
		if seg.P.Y < r.MinY {
			r.MinY = seg.P.Y
		}
		if seg.P.X > r.MaxX {
			r.MaxX = seg.P.X
		}
		if seg.P.Y > r.MaxY {
			r.MaxY = seg.P.Y
		}
	}
	return r
}
