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
	"testing"
)

func almostEqual(a, b, eps float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}

func TestFlattenCubicStraightLine(t *testing.T) {
	// A cubic whose control points sit exactly on the chord is flat on the
	// first test and should emit a single line segment.
	p0 := Point{X: 0, Y: 0}
	p3 := Point{X: 10, Y: 0}
	p1 := lerp(p0, p3, 1.0/3)
	p2 := lerp(p0, p3, 2.0/3)

	pts := flattenCubic(p0, p1, p2, p3)
	if len(pts) != 2 {
		t.Fatalf("expected 2 points for a flat cubic, got %d: %v", len(pts), pts)
	}
	if pts[0] != p0 || pts[1] != p3 {
		t.Errorf("got %v, want [%v %v]", pts, p0, p3)
	}
}

func TestFlattenCubicSubdividesCurvedSegment(t *testing.T) {
	p0 := Point{X: 0, Y: 0}
	p1 := Point{X: 0, Y: 50}
	p2 := Point{X: 50, Y: 50}
	p3 := Point{X: 50, Y: 0}

	pts := flattenCubic(p0, p1, p2, p3)
	if len(pts) < 4 {
		t.Fatalf("expected a curved cubic to subdivide into several points, got %d", len(pts))
	}
	if pts[0] != p0 {
		t.Errorf("first point = %v, want %v", pts[0], p0)
	}
	if pts[len(pts)-1] != p3 {
		t.Errorf("last point = %v, want %v", pts[len(pts)-1], p3)
	}
}

func TestArcToCubicsZeroAngle(t *testing.T) {
	if cubics := arcToCubics(Point{X: 1, Y: 0}, Point{}, 0); cubics != nil {
		t.Errorf("zero-angle arc should produce no segments, got %d", len(cubics))
	}
}

func TestArcToCubicsFullTurnCount(t *testing.T) {
	// -450 degrees = -(360+90): five quarter turns, no remainder.
	cubics := arcToCubics(Point{X: 1, Y: 0}, Point{}, -450)
	if len(cubics) != 5 {
		t.Fatalf("got %d segments, want 5", len(cubics))
	}
	last := cubics[len(cubics)-1]
	// After -450 degrees from (1,0) the end point is at angle -90: (0,-1).
	if !almostEqual(last.p3.X, 0, 1e-4) || !almostEqual(last.p3.Y, -1, 1e-4) {
		t.Errorf("end point = %v, want (0,-1)", last.p3)
	}
}

func TestArcToCubicsRemainderOnly(t *testing.T) {
	cubics := arcToCubics(Point{X: 1, Y: 0}, Point{}, 45)
	if len(cubics) != 1 {
		t.Fatalf("got %d segments, want 1", len(cubics))
	}
	want := Point{X: float32(math.Cos(math.Pi / 4)), Y: float32(math.Sin(math.Pi / 4))}
	got := cubics[0].p3
	if !almostEqual(got.X, want.X, 1e-4) || !almostEqual(got.Y, want.Y, 1e-4) {
		t.Errorf("end point = %v, want %v", got, want)
	}
}

func TestPathFlattenRoundTrip(t *testing.T) {
	p := NewPath().
		Move(Point{X: 0, Y: 0}).
		Line(Point{X: 10, Y: 0}).
		Curve(Point{X: 13, Y: 3}, Point{X: 17, Y: 3}, Point{X: 20, Y: 0}).
		Arc(Point{X: 20, Y: 5}, 90).
		CloseSub()

	fp := p.Flatten()
	if len(fp.Segments) == 0 {
		t.Fatal("flattened path has no segments")
	}
	if fp.Segments[0].Kind != FlatMoveTo {
		t.Errorf("first segment kind = %v, want FlatMoveTo", fp.Segments[0].Kind)
	}
	last := fp.Segments[len(fp.Segments)-1]
	if last.Kind != FlatClose {
		t.Errorf("last segment kind = %v, want FlatClose", last.Kind)
	}
	for _, seg := range fp.Segments {
		if seg.Kind != FlatMoveTo && seg.Kind != FlatLineTo && seg.Kind != FlatClose {
			t.Fatalf("unexpected flat segment kind %v", seg.Kind)
		}
	}
}
