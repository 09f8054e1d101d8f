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

// Matrix is a 4x4 row-major transformation matrix, indexed Matrix[row][col].
// Point transforms treat points as column vectors: Matrix * (x,y,z,1)ᵀ.
type Matrix [4][4]float64

// Identity is the canonical 4x4 identity matrix.
var Identity = Matrix{
	{1, 0, 0, 0},
	{0, 1, 0, 0},
	{0, 0, 1, 0},
	{0, 0, 0, 1},
}

// IsIdentity reports whether m is exactly (bit-for-bit) the identity
// matrix, letting callers short-circuit a no-op transform.
func (m Matrix) IsIdentity() bool {
	return m == Identity
}

// Mul returns m multiplied on the right by other: m.Mul(other) applied to a
// point transforms by other first, then by m.
func (m Matrix) Mul(other Matrix) Matrix {
	var out Matrix
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[row][k] * other[k][col]
			}
			out[row][col] = sum
		}
	}
	return out
}

// Translate returns the canonical translation matrix multiplied onto m.
func (m Matrix) Translate(x, y, z float64) Matrix {
	t := Identity
	t[0][3], t[1][3], t[2][3] = x, y, z
	return m.Mul(t)
}

// Scale returns the canonical scale matrix multiplied onto m.
func (m Matrix) Scale(x, y, z float64) Matrix {
	s := Identity
	s[0][0], s[1][1], s[2][2] = x, y, z
	return m.Mul(s)
}

// Shear returns the canonical x/y shear matrix multiplied onto m. x shears
// along the x axis proportional to y, y shears along the y axis
// proportional to x.
func (m Matrix) Shear(x, y float64) Matrix {
	s := Identity
	s[0][1] = x
	s[1][0] = y
	return m.Mul(s)
}

// RotateX returns the canonical rotation-about-X matrix (radians)
// multiplied onto m.
func (m Matrix) RotateX(rad float64) Matrix {
	s, c := math.Sin(rad), math.Cos(rad)
	r := Identity
	r[1][1], r[1][2] = c, -s
	r[2][1], r[2][2] = s, c
	return m.Mul(r)
}

// RotateY returns the canonical rotation-about-Y matrix (radians)
// multiplied onto m.
func (m Matrix) RotateY(rad float64) Matrix {
	s, c := math.Sin(rad), math.Cos(rad)
	r := Identity
	r[0][0], r[0][2] = c, s
	r[2][0], r[2][2] = -s, c
	return m.Mul(r)
}

// RotateZ returns the canonical rotation-about-Z matrix (radians)
// multiplied onto m.
func (m Matrix) RotateZ(rad float64) Matrix {
	s, c := math.Sin(rad), math.Cos(rad)
	r := Identity
	r[0][0], r[0][1] = c, -s
	r[1][0], r[1][1] = s, c
	return m.Mul(r)
}

// TransformPoint applies m to the point (x,y,z,1) and returns the resulting
// 2-D point. If the homogeneous weight w'=1 the result is (x',y') directly;
// if w'=0 the result is the origin; otherwise (x'/w', y'/w').
func (m Matrix) TransformPoint(p Point, z float32) Point {
	col := m.zColumn(float64(z))
	x := m[0][0]*float64(p.X) + m[0][1]*float64(p.Y) + col[0]
	y := m[1][0]*float64(p.X) + m[1][1]*float64(p.Y) + col[1]
	w := m[3][0]*float64(p.X) + m[3][1]*float64(p.Y) + col[2]

	switch w {
	case 1:
		return Point{X: float32(x), Y: float32(y)}
	case 0:
		return Point{}
	default:
		return Point{X: float32(x / w), Y: float32(y / w)}
	}
}

// zColumn precomputes the z-dependent contribution (column 2 scaled by z,
// plus the translation column) once, so that transforming many points at a
// fixed z (the common case for 2-D paths placed at a constant depth) need
// not recompute m[row][2]*z on every call.
func (m Matrix) zColumn(z float64) [3]float64 {
	return [3]float64{
		m[0][2]*z + m[0][3],
		m[1][2]*z + m[1][3],
		m[3][2]*z + m[3][3],
	}
}

// NewTransformer returns a closure over m's z-dependent column for the
// given fixed z, amortizing zColumn across many TransformPoint calls at the
// same depth.
func (m Matrix) NewTransformer(z float32) func(Point) Point {
	col := m.zColumn(float64(z))
	m00, m01 := m[0][0], m[0][1]
	m10, m11 := m[1][0], m[1][1]
	m30, m31 := m[3][0], m[3][1]
	return func(p Point) Point {
		x := m00*float64(p.X) + m01*float64(p.Y) + col[0]
		y := m10*float64(p.X) + m11*float64(p.Y) + col[1]
		w := m30*float64(p.X) + m31*float64(p.Y) + col[2]
		switch w {
		case 1:
			return Point{X: float32(x), Y: float32(y)}
		case 0:
			return Point{}
		default:
			return Point{X: float32(x / w), Y: float32(y / w)}
		}
	}
}

// TransformFlat applies m (at fixed z) to every point of fp and returns a
// new FlatPath; fp is not modified.
func (m Matrix) TransformFlat(fp *FlatPath, z float32) *FlatPath {
	if m.IsIdentity() {
		return fp.Clone()
	}
	xf := m.NewTransformer(z)
	out := &FlatPath{Segments: make([]FlatSegment, len(fp.Segments))}
	for i, seg := range fp.Segments {
		out.Segments[i] = seg
		if seg.Kind != FlatClose {
			out.Segments[i].P = xf(seg.P)
		}
	}
	return out
}
