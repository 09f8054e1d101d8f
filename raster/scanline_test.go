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

import "testing"

func TestScanlinesAxisAlignedSquare(t *testing.T) {
	fp := NewPath().
		Move(Point{X: 2, Y: 2}).
		Line(Point{X: 8, Y: 2}).
		Line(Point{X: 8, Y: 8}).
		Line(Point{X: 2, Y: 8}).
		CloseSub().
		Flatten()

	rows := Scanlines(fp, 10, 10)
	for y := 2; y < 8; y++ {
		ranges, ok := rows[y]
		if !ok {
			t.Fatalf("row %d missing from scanline output", y)
		}
		if len(ranges) != 1 || ranges[0] != (Range{XLo: 2, XHi: 8}) {
			t.Errorf("row %d ranges = %v, want [{2 8}]", y, ranges)
		}
	}
	for _, y := range []int{0, 1, 8, 9} {
		if _, ok := rows[y]; ok {
			t.Errorf("row %d should have no coverage, got %v", y, rows[y])
		}
	}
}

func TestScanlinesDiscardsHorizontalLines(t *testing.T) {
	fp := &FlatPath{}
	fp.Move(Point{X: 0, Y: 5}).Line(Point{X: 10, Y: 5}).CloseSub()
	rows := Scanlines(fp, 10, 10)
	if len(rows) != 0 {
		t.Errorf("purely horizontal path should produce no scanlines, got %v", rows)
	}
}

func TestScanlinesDiscardsOutOfArea(t *testing.T) {
	fp := &FlatPath{}
	fp.Move(Point{X: -5, Y: -5}).Line(Point{X: -1, Y: -1}).CloseSub()
	rows := Scanlines(fp, 10, 10)
	if len(rows) != 0 {
		t.Errorf("fully-above-area path should produce no scanlines, got %v", rows)
	}
}

// TestScanlinesHoleVsOverlap checks the two nested-square winding cases:
// an inner square whose vertex order runs opposite to the outer square's
// cancels to a hole, while one whose order runs the same way reinforces
// into solid fill.
// Non-zero winding, not even-odd, is what the rasterizer must implement;
// these are the cases that tell the two apart.
func TestScanlinesHoleVsOverlap(t *testing.T) {
	outer := func(fp *FlatPath) *FlatPath {
		return fp.
			Move(Point{X: 0, Y: 0}).
			Line(Point{X: 9, Y: 0}).
			Line(Point{X: 9, Y: 10}).
			Line(Point{X: 0, Y: 10}).
			CloseSub()
	}

	t.Run("quad with hole, opposite winding", func(t *testing.T) {
		fp := outer(&FlatPath{}).
			Move(Point{X: 2, Y: 2}).
			Line(Point{X: 2, Y: 5}).
			Line(Point{X: 7, Y: 5}).
			Line(Point{X: 7, Y: 2}).
			CloseSub()

		rows := Scanlines(fp, 9, 10)
		row2 := rows[2]
		if len(row2) != 2 || row2[0] != (Range{XLo: 0, XHi: 2}) || row2[1] != (Range{XLo: 7, XHi: 9}) {
			t.Errorf("row 2 = %v, want [{0 2} {7 9}]", row2)
		}
		row7 := rows[7]
		if len(row7) != 1 || row7[0] != (Range{XLo: 0, XHi: 9}) {
			t.Errorf("row 7 = %v, want [{0 9}]", row7)
		}
	})

	t.Run("both CCW-same-direction, no hole", func(t *testing.T) {
		fp := outer(&FlatPath{}).
			Move(Point{X: 2, Y: 2}).
			Line(Point{X: 7, Y: 2}).
			Line(Point{X: 7, Y: 5}).
			Line(Point{X: 2, Y: 5}).
			CloseSub()

		rows := Scanlines(fp, 9, 10)
		row2 := rows[2]
		if len(row2) != 1 || row2[0] != (Range{XLo: 0, XHi: 9}) {
			t.Errorf("row 2 = %v, want [{0 9}] throughout (no hole)", row2)
		}
	})
}

func TestRoundHalfDown(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{2.5, 2},
		{2.4, 2},
		{2.6, 3},
		{-0.5, -1},
		{3.0, 3},
	}
	for _, c := range cases {
		if got := roundHalfDown(c.in); got != c.want {
			t.Errorf("roundHalfDown(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}
