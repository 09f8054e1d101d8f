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
	"slices"
)

// Range is a half-open pixel interval [XLo, XHi) on one scanline row.
type Range struct {
	XLo, XHi int
}

// roundHalfDown rounds x to the nearest integer, breaking exact .5 ties
// towards -∞ (floor) rather than away from zero.
func roundHalfDown(x float64) float64 {
	f := math.Floor(x)
	if x-f <= 0.5 {
		return f
	}
	return f + 1
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// stop is a signed winding transition recorded where a line crosses a
// pixel-center scanline.
type stop struct {
	x float64
	w int
}

// Scanlines converts a flattened path into a map from row index y (0<=y<H)
// to its sorted, non-overlapping list of filled pixel ranges, using the
// non-zero winding rule. Rows with no surviving ranges are omitted.
func Scanlines(fp *FlatPath, width, height int) map[int][]Range {
	rows := make(map[int][]stop)

	var current, moveP Point
	emitLine := func(p0, p1 Point) {
		if p0.Y == p1.Y {
			return // horizontal/degenerate
		}
		if p0.Y < 0 && p1.Y < 0 {
			return // entirely above the area
		}
		if p0.Y >= float32(height) && p1.Y >= float32(height) {
			return // entirely below the area
		}
		addLine(rows, p0, p1, height)
	}

	for _, seg := range fp.Segments {
		switch seg.Kind {
		case FlatMoveTo:
			current = seg.P
			moveP = seg.P
		case FlatLineTo:
			emitLine(current, seg.P)
			current = seg.P
		case FlatClose:
			if current != moveP {
				emitLine(current, moveP)
			}
			current = moveP
		}
	}

	out := make(map[int][]Range, len(rows))
	for row, stops := range rows {
		ranges := finalizeRow(stops, width)
		if len(ranges) > 0 {
			out[row] = ranges
		}
	}
	return out
}

// addLine records the winding stops a single surviving line contributes to
// each pixel-center scanline it crosses.
func addLine(rows map[int][]stop, p0, p1 Point, height int) {
	y0, y1 := float64(p0.Y), float64(p1.Y)
	x0 := float64(p0.X)
	dxdy := (float64(p1.X) - x0) / (y1 - y0)

	winding := 1
	if y1 < y0 {
		winding = -1
	}

	first := math.Max(0.5, roundHalfDown(math.Min(y0, y1))+0.5)
	last := math.Min(float64(height)-0.5, roundHalfDown(math.Max(y0, y1))-0.5)
	if first > last {
		return
	}

	n := int(math.Round(last - first))
	for i := 0; i <= n; i++ {
		curY := first + float64(i)
		x := x0 + (curY-y0)*dxdy
		row := int(math.Floor(curY))
		rows[row] = append(rows[row], stop{x: x, w: winding})
	}
}

// finalizeRow sorts a row's winding stops by x and accumulates the
// non-zero-winding open/close transitions into half-open pixel ranges.
func finalizeRow(stops []stop, width int) []Range {
	slices.SortStableFunc(stops, func(a, b stop) int {
		switch {
		case a.x < b.x:
			return -1
		case a.x > b.x:
			return 1
		default:
			return 0
		}
	})

	var ranges []Range
	count := 0
	var rangeStart float64
	for _, s := range stops {
		prev := count
		count += s.w
		if prev == 0 && count != 0 {
			rangeStart = s.x
		} else if prev != 0 && count == 0 {
			lo := clampInt(int(roundHalfDown(rangeStart)), 0, width)
			hi := clampInt(int(math.Round(s.x)), 0, width)
			if hi > lo {
				ranges = append(ranges, Range{XLo: lo, XHi: hi})
			}
		}
	}
	return ranges
}
