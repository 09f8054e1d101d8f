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

func square(minX, minY, maxX, maxY float32) *FlatPath {
	return NewPath().
		Move(Point{X: minX, Y: minY}).
		Line(Point{X: maxX, Y: minY}).
		Line(Point{X: maxX, Y: maxY}).
		Line(Point{X: minX, Y: maxY}).
		CloseSub().
		Flatten()
}

func TestRasterizeEmptyPathYieldsNoMask(t *testing.T) {
	if m := Rasterize(&FlatPath{}, 10, 10); m != nil {
		t.Errorf("empty path should yield a nil mask, got %v", m)
	}
}

func TestRasterizeInteriorIsFullyCovered(t *testing.T) {
	fp := square(2, 2, 8, 8)
	m := Rasterize(fp, 10, 10)
	if m == nil {
		t.Fatal("Rasterize returned nil for a non-empty path")
	}
	if got := m.At(5, 5); got != 255 {
		t.Errorf("interior pixel coverage = %d, want 255", got)
	}
}

func TestRasterizeOutsidePathIsUncovered(t *testing.T) {
	fp := square(2, 2, 8, 8)
	m := Rasterize(fp, 10, 10)
	if m == nil {
		t.Fatal("Rasterize returned nil for a non-empty path")
	}
	for _, p := range [][2]int{{0, 0}, {9, 9}, {9, 0}, {0, 9}} {
		if got := m.At(p[0], p[1]); got != 0 {
			t.Errorf("At(%d,%d) = %d, want 0", p[0], p[1], got)
		}
	}
}

func TestRasterizeMaskOffsetPadsByDeviationBounds(t *testing.T) {
	fp := square(2, 2, 8, 8)
	m := Rasterize(fp, 10, 10)
	if m == nil {
		t.Fatal("Rasterize returned nil for a non-empty path")
	}
	if m.OffsetX < 0 || m.OffsetX > 2 || m.OffsetY < 0 || m.OffsetY > 2 {
		t.Errorf("mask offset (%d,%d) not within the expected padding range", m.OffsetX, m.OffsetY)
	}
	if m.Width < 6 || m.Height < 6 {
		t.Errorf("mask size (%d,%d) smaller than the unpadded bounding box", m.Width, m.Height)
	}
}

func TestRasterizeClampsToOutputArea(t *testing.T) {
	// A path that extends past the output area on every side must produce a
	// mask clamped to [0,W)x[0,H).
	fp := square(-5, -5, 15, 15)
	m := Rasterize(fp, 10, 10)
	if m == nil {
		t.Fatal("Rasterize returned nil for a non-empty path")
	}
	if m.OffsetX != 0 || m.OffsetY != 0 {
		t.Errorf("offset = (%d,%d), want (0,0)", m.OffsetX, m.OffsetY)
	}
	if m.Width != 10 || m.Height != 10 {
		t.Errorf("size = (%d,%d), want (10,10)", m.Width, m.Height)
	}
	if got := m.At(5, 5); got != 255 {
		t.Errorf("interior pixel coverage = %d, want 255", got)
	}
}

// TestRasterizeSingleOnGridPixel reproduces the spec's exact single-pixel
// rasterize scenario: a unit square aligned to the pixel grid must read
// fully covered, and the same square shifted by (-0.5,+0.5) must split
// evenly across the four touched quadrant pixels (two of the eight
// supersamples land in each).
func TestRasterizeSingleOnGridPixel(t *testing.T) {
	fp := NewPath().
		Move(Point{X: 2, Y: 3}).
		Line(Point{X: 3, Y: 3}).
		Line(Point{X: 3, Y: 4}).
		Line(Point{X: 2, Y: 4}).
		CloseSub().
		Flatten()

	m := Rasterize(fp, 5, 5)
	if m == nil {
		t.Fatal("Rasterize returned nil for a non-empty path")
	}
	if m.OffsetX != 2 || m.OffsetY != 3 || m.Width != 1 || m.Height != 1 {
		t.Fatalf("mask = offset(%d,%d) size(%d,%d), want offset(2,3) size(1,1)", m.OffsetX, m.OffsetY, m.Width, m.Height)
	}
	if got := m.Data[0]; got != 255 {
		t.Errorf("on-grid pixel coverage = %d, want 255", got)
	}
}

func TestRasterizeSingleOnGridPixelTranslated(t *testing.T) {
	fp := NewPath().
		Move(Point{X: 1.5, Y: 3.5}).
		Line(Point{X: 2.5, Y: 3.5}).
		Line(Point{X: 2.5, Y: 4.5}).
		Line(Point{X: 1.5, Y: 4.5}).
		CloseSub().
		Flatten()

	m := Rasterize(fp, 5, 5)
	if m == nil {
		t.Fatal("Rasterize returned nil for a non-empty path")
	}
	if m.OffsetX != 1 || m.OffsetY != 3 || m.Width != 2 || m.Height != 2 {
		t.Fatalf("mask = offset(%d,%d) size(%d,%d), want offset(1,3) size(2,2)", m.OffsetX, m.OffsetY, m.Width, m.Height)
	}
	for i, got := range m.Data {
		if got != 64 {
			t.Errorf("pixel %d coverage = %d, want 64 (two of eight samples)", i, got)
		}
	}
}

func TestAddSaturating(t *testing.T) {
	var b byte = 250
	addSaturating(&b, 32)
	if b != 255 {
		t.Errorf("addSaturating(250,32) = %d, want 255", b)
	}
}
