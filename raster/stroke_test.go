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
	"testing"

	"seehuhn.de/go/pdf/graphics"
)

func TestStrokeOutlineOpenLineProducesNonEmptyMask(t *testing.T) {
	fp := (&FlatPath{}).Move(Point{X: 2, Y: 10}).Line(Point{X: 18, Y: 10})
	outline := StrokeOutline(fp, 4, graphics.LineCapButt, graphics.LineJoinMiter, DefaultMiterLimit)
	flat := outline.Flatten()
	mask := Rasterize(flat, 20, 20)
	if mask == nil {
		t.Fatal("expected a non-nil coverage mask for a stroked horizontal line")
	}
	if mask.At(10, 10) == 0 {
		t.Error("expected coverage at the stroke's midpoint")
	}
	if mask.At(10, 0) != 0 {
		t.Error("expected no coverage far above the stroke")
	}
}

func TestStrokeOutlineSquareCapExtendsBeyondEndpoints(t *testing.T) {
	butt := (&FlatPath{}).Move(Point{X: 5, Y: 10}).Line(Point{X: 15, Y: 10})
	square := (&FlatPath{}).Move(Point{X: 5, Y: 10}).Line(Point{X: 15, Y: 10})

	buttMask := Rasterize(StrokeOutline(butt, 4, graphics.LineCapButt, graphics.LineJoinMiter, DefaultMiterLimit).Flatten(), 20, 20)
	squareMask := Rasterize(StrokeOutline(square, 4, graphics.LineCapSquare, graphics.LineJoinMiter, DefaultMiterLimit).Flatten(), 20, 20)

	if buttMask.At(4, 10) != 0 {
		t.Error("butt cap should not extend past the line's start point")
	}
	if squareMask.At(4, 10) == 0 {
		t.Error("square cap should extend past the line's start point")
	}
}

func TestStrokeOutlineClosedSquareFillsInterior(t *testing.T) {
	fp := (&FlatPath{}).
		Move(Point{X: 5, Y: 5}).
		Line(Point{X: 15, Y: 5}).
		Line(Point{X: 15, Y: 15}).
		Line(Point{X: 5, Y: 15}).
		CloseSub()

	mask := Rasterize(StrokeOutline(fp, 2, graphics.LineCapButt, graphics.LineJoinBevel, DefaultMiterLimit).Flatten(), 20, 20)
	if mask == nil {
		t.Fatal("expected a non-nil mask for a stroked closed square")
	}
	if mask.At(5, 5) == 0 {
		t.Error("expected coverage at a corner of the stroked square")
	}
	if mask.At(10, 10) != 0 {
		t.Error("expected no coverage deep inside the square (only the border is stroked)")
	}
}
