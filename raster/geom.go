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

// Package raster implements the 2-D vector/raster graphics core of the SSB
// rendering engine: the path model, curve and arc flattening, 4x4
// transformation algebra, and a scanline-based, 8-sample supersampling
// rasterizer that turns transformed geometry into pixel coverage masks.
package raster

// Point is a 2-D point with 32-bit coordinates, the unit used by path
// segments and flattened polylines.
type Point struct {
	X, Y float32
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Mul returns p scaled by s.
func (p Point) Mul(s float32) Point {
	return Point{p.X * s, p.Y * s}
}

// Point3D is a 3-D point with 32-bit coordinates, used for the `position`
// tag and as the fixed-z input to the projective point transform.
type Point3D struct {
	X, Y, Z float32
}

// Degree is an angle in degrees, carried at 64-bit precision for the
// transform and arc math that accumulates many small rotations.
type Degree float64
