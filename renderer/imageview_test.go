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

package renderer

import "testing"

func newTestView(t *testing.T, w, h int, ct ColorType) *ImageView {
	t.Helper()
	stride := w * ct.BytesPerPixel()
	view, err := NewImageView(w, h, stride, ct, [][]byte{make([]byte, h*stride)})
	if err != nil {
		t.Fatalf("NewImageView: %v", err)
	}
	return view
}

func TestNewImageViewRejectsBadDimensions(t *testing.T) {
	if _, err := NewImageView(0, 4, 16, R8G8B8A8, [][]byte{make([]byte, 64)}); err == nil {
		t.Error("want error for zero width, got nil")
	}
}

func TestNewImageViewRejectsWrongPlaneCount(t *testing.T) {
	if _, err := NewImageView(4, 4, 16, R8G8B8A8, [][]byte{}); err == nil {
		t.Error("want error for missing plane, got nil")
	}
}

func TestNewImageViewRejectsShortPlane(t *testing.T) {
	if _, err := NewImageView(4, 4, 16, R8G8B8A8, [][]byte{make([]byte, 8)}); err == nil {
		t.Error("want error for undersized plane, got nil")
	}
}

func TestBlendOverOpaqueReplacesPixel(t *testing.T) {
	view := newTestView(t, 2, 2, R8G8B8A8)
	view.blendOver(0, 0, [3]byte{10, 20, 30}, 255)
	if got := view.at(0, 0); got != [3]byte{10, 20, 30} {
		t.Errorf("at(0,0) = %v, want {10,20,30}", got)
	}
}

func TestBlendOverZeroAlphaLeavesPixelUnchanged(t *testing.T) {
	view := newTestView(t, 2, 2, R8G8B8A8)
	view.blendOver(0, 0, [3]byte{10, 20, 30}, 255)
	view.blendOver(0, 0, [3]byte{200, 200, 200}, 0)
	if got := view.at(0, 0); got != [3]byte{10, 20, 30} {
		t.Errorf("at(0,0) = %v, want unchanged {10,20,30}", got)
	}
}

func TestBlendOverHalfAlphaAverages(t *testing.T) {
	view := newTestView(t, 2, 2, R8G8B8A8)
	view.blendOver(0, 0, [3]byte{0, 0, 0}, 255)
	view.blendOver(0, 0, [3]byte{254, 254, 254}, 128)
	got := view.at(0, 0)
	for i, c := range got {
		if c < 120 || c > 135 {
			t.Errorf("channel %d = %d, want roughly half way between 0 and 254", i, c)
		}
	}
}

func TestBlendOverOutOfBoundsIsIgnored(t *testing.T) {
	view := newTestView(t, 2, 2, R8G8B8A8)
	view.blendOver(-1, 0, [3]byte{1, 2, 3}, 255)
	view.blendOver(0, 5, [3]byte{1, 2, 3}, 255)
}

func TestBlendOverSwappedColorType(t *testing.T) {
	view := newTestView(t, 1, 1, B8G8R8A8)
	view.blendOver(0, 0, [3]byte{10, 20, 30}, 255)
	if got := view.at(0, 0); got != [3]byte{10, 20, 30} {
		t.Errorf("at(0,0) = %v, want {10,20,30} (swap round-trips through at)", got)
	}
	off := view.pixelOffset(0, 0)
	if view.Planes[0][off] != 30 || view.Planes[0][off+2] != 10 {
		t.Errorf("plane bytes = %v, want blue-then-red storage order", view.Planes[0][off:off+3])
	}
}

func TestColorTypeHasAlpha(t *testing.T) {
	cases := map[ColorType]bool{
		R8G8B8:   false,
		B8G8R8:   false,
		R8G8B8A8: true,
		B8G8R8A8: true,
	}
	for ct, want := range cases {
		if got := ct.HasAlpha(); got != want {
			t.Errorf("%s.HasAlpha() = %v, want %v", ct, got, want)
		}
	}
}
