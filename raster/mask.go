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

// Mask is a rectangular 8-bit coverage buffer placed at (OffsetX, OffsetY)
// in image space. Data is row-major, Width*Height bytes, 0 = uncovered and
// 255 = fully covered.
type Mask struct {
	OffsetX, OffsetY int
	Width, Height    int
	Data             []byte
}

// At returns the coverage at image-space (x,y), or 0 outside the mask.
func (m *Mask) At(x, y int) byte {
	x -= m.OffsetX
	y -= m.OffsetY
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return 0
	}
	return m.Data[y*m.Width+x]
}
