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

func TestIdentityIsIdentity(t *testing.T) {
	if !Identity.IsIdentity() {
		t.Error("Identity.IsIdentity() = false")
	}
	m := Identity.Translate(1, 0, 0)
	if m.IsIdentity() {
		t.Error("translated matrix reports IsIdentity() = true")
	}
}

func TestTranslateTransformPoint(t *testing.T) {
	m := Identity.Translate(3, 4, 0)
	got := m.TransformPoint(Point{X: 1, Y: 1}, 0)
	want := Point{X: 4, Y: 5}
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestScaleTransformPoint(t *testing.T) {
	m := Identity.Scale(2, 3, 1)
	got := m.TransformPoint(Point{X: 5, Y: 5}, 0)
	want := Point{X: 10, Y: 15}
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestRotateZQuarterTurn(t *testing.T) {
	m := Identity.RotateZ(math.Pi / 2)
	got := m.TransformPoint(Point{X: 1, Y: 0}, 0)
	if !almostEqual(got.X, 0, 1e-5) || !almostEqual(got.Y, 1, 1e-5) {
		t.Errorf("got %v, want (0,1)", got)
	}
}

func TestMulOrderAppliesRightFirst(t *testing.T) {
	// m = translate.Mul(scale) applies scale first, then translate:
	// (1,1) scales to (2,2), which translates to (12,2).
	translate := Identity.Translate(10, 0, 0)
	scale := Identity.Scale(2, 2, 1)
	m := translate.Mul(scale)
	got := m.TransformPoint(Point{X: 1, Y: 1}, 0)
	want := Point{X: 12, Y: 2}
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestNewTransformerMatchesTransformPoint(t *testing.T) {
	m := Identity.Translate(1, 2, 0).RotateZ(0.3).Scale(1.5, 0.5, 1)
	xf := m.NewTransformer(0)
	pts := []Point{{X: 0, Y: 0}, {X: 3, Y: -2}, {X: -7, Y: 5}}
	for _, p := range pts {
		want := m.TransformPoint(p, 0)
		got := xf(p)
		if got != want {
			t.Errorf("NewTransformer(%v) = %v, want %v", p, got, want)
		}
	}
}

func TestTransformFlatIdentityClones(t *testing.T) {
	fp := NewPath().Move(Point{X: 1, Y: 1}).Line(Point{X: 2, Y: 2}).CloseSub().Flatten()
	out := Identity.TransformFlat(fp, 0)
	if len(out.Segments) != len(fp.Segments) {
		t.Fatalf("got %d segments, want %d", len(out.Segments), len(fp.Segments))
	}
	out.Segments[0].P.X = 99
	if fp.Segments[0].P.X == 99 {
		t.Error("TransformFlat with identity did not clone; mutation leaked")
	}
}

func TestTransformFlatSkipsClosePoint(t *testing.T) {
	fp := NewPath().Move(Point{X: 1, Y: 1}).Line(Point{X: 2, Y: 2}).CloseSub().Flatten()
	m := Identity.Translate(100, 100, 0)
	out := m.TransformFlat(fp, 0)
	for _, seg := range out.Segments {
		if seg.Kind == FlatClose && seg.P != (Point{}) {
			t.Errorf("Close segment carries a point %v, want zero value", seg.P)
		}
	}
}
