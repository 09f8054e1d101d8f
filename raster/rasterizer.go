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

// sampleWeight is the per-sample contribution to coverage: ⌊256/8⌋.
const sampleWeight = 32

// deviations are the 8 fixed sub-pixel sample offsets: four edge-adjacent
// points at ±3/8 by ±1/8 and four corner-adjacent points at ±1/8 by ±3/8,
// arranged rotationally symmetric about the pixel center.
var deviations = [8]Point{
	{X: 3.0 / 8, Y: 1.0 / 8},
	{X: -3.0 / 8, Y: 1.0 / 8},
	{X: 3.0 / 8, Y: -1.0 / 8},
	{X: -3.0 / 8, Y: -1.0 / 8},
	{X: 1.0 / 8, Y: 3.0 / 8},
	{X: -1.0 / 8, Y: 3.0 / 8},
	{X: 1.0 / 8, Y: -3.0 / 8},
	{X: -1.0 / 8, Y: -3.0 / 8},
}

// Rasterize fills fp at 8x supersampling into a coverage Mask sized for the
// (width,height) output area. Returns nil for an empty path or a path whose
// padded bounding box does not intersect the output area.
func Rasterize(fp *FlatPath, width, height int) *Mask {
	bounds := fp.Bounding()
	if bounds.Empty() {
		return nil
	}

	minDevX, maxDevX := deviations[0].X, deviations[0].X
	minDevY, maxDevY := deviations[0].Y, deviations[0].Y
	for _, d := range deviations[1:] {
		minDevX = min(minDevX, d.X)
		maxDevX = max(maxDevX, d.X)
		minDevY = min(minDevY, d.Y)
		maxDevY = max(maxDevY, d.Y)
	}

	paddedMinX := float64(bounds.MinX + minDevX)
	paddedMinY := float64(bounds.MinY + minDevY)
	paddedMaxX := float64(bounds.MaxX + maxDevX)
	paddedMaxY := float64(bounds.MaxY + maxDevY)

	offsetX := clampInt(int(roundHalfDown(paddedMinX)), 0, width)
	offsetY := clampInt(int(roundHalfDown(paddedMinY)), 0, height)
	maxX := clampInt(int(math.Round(paddedMaxX)), 0, width)
	maxY := clampInt(int(math.Round(paddedMaxY)), 0, height)

	maskWidth := maxX - offsetX
	maskHeight := maxY - offsetY
	if maskWidth <= 0 || maskHeight <= 0 {
		return nil
	}

	data := make([]byte, maskWidth*maskHeight)
	for _, dev := range deviations {
		translated := fp.Translate(-float32(offsetX)+dev.X, -float32(offsetY)+dev.Y)
		rows := Scanlines(translated, maskWidth, maskHeight)
		for row, ranges := range rows {
			base := row * maskWidth
			for _, r := range ranges {
				for x := r.XLo; x < r.XHi; x++ {
					addSaturating(&data[base+x], sampleWeight)
				}
			}
		}
	}

	return &Mask{OffsetX: offsetX, OffsetY: offsetY, Width: maskWidth, Height: maskHeight, Data: data}
}

func addSaturating(b *byte, v int) {
	sum := int(*b) + v
	if sum > 255 {
		sum = 255
	}
	*b = byte(sum)
}
