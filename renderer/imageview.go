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

import (
	"fmt"

	"github.com/substation-beta/ssb/ssberr"
)

// ColorType names a pixel layout an ImageView's planes are interpreted
// under. All four are packed (single-plane) formats; the swapped variants
// exist because a frame-server host's native byte order is not always
// R-then-B.
type ColorType int

const (
	R8G8B8 ColorType = iota
	B8G8R8
	R8G8B8A8
	B8G8R8A8
)

func (c ColorType) String() string {
	switch c {
	case R8G8B8:
		return "R8G8B8"
	case B8G8R8:
		return "B8G8R8"
	case R8G8B8A8:
		return "R8G8B8A8"
	case B8G8R8A8:
		return "B8G8R8A8"
	default:
		return "unknown"
	}
}

// HasAlpha reports whether c carries a fourth (alpha) channel.
func (c ColorType) HasAlpha() bool {
	return c == R8G8B8A8 || c == B8G8R8A8
}

// swapped reports whether c stores blue before red.
func (c ColorType) swapped() bool {
	return c == B8G8R8 || c == B8G8R8A8
}

// BytesPerPixel returns the packed pixel size of c, or 0 if c is not a
// recognised color type.
func (c ColorType) BytesPerPixel() int {
	switch c {
	case R8G8B8, B8G8R8:
		return 3
	case R8G8B8A8, B8G8R8A8:
		return 4
	default:
		return 0
	}
}

// PlaneCount returns how many plane slices c expects. Every color type
// supported today is single-plane; the field exists so a future planar
// format (e.g. a YUV target) only needs a new case here, not a new
// ImageView shape.
func (c ColorType) PlaneCount() int {
	if c.BytesPerPixel() == 0 {
		return 0
	}
	return 1
}

// ImageView is a non-owning, multiplanar reference to a caller-owned
// frame buffer: width and height in pixels, a row stride in bytes, a
// color type, and one mutable byte slice per plane the color type
// expects. The renderer mutates Planes in place and retains no reference
// to them past the Render call that received the view.
type ImageView struct {
	Width, Height int
	Stride        int
	Color         ColorType
	Planes        [][]byte
}

// NewImageView validates and constructs an ImageView. It rejects a
// non-positive width/height, an unrecognised color type, a stride too
// narrow to hold one row of pixels, a plane count that does not match the
// color type, and any plane shorter than height*stride.
func NewImageView(width, height, stride int, color ColorType, planes [][]byte) (*ImageView, error) {
	if width <= 0 || height <= 0 {
		return nil, ssberr.New(ssberr.KindRuntime, fmt.Sprintf("image view: width and height must be positive, got %dx%d", width, height))
	}
	bpp := color.BytesPerPixel()
	if bpp == 0 {
		return nil, ssberr.New(ssberr.KindRuntime, fmt.Sprintf("image view: unknown color type %d", int(color)))
	}
	if stride < width*bpp {
		return nil, ssberr.New(ssberr.KindRuntime, fmt.Sprintf("image view: stride %d too small for width %d at %d bytes/pixel", stride, width, bpp))
	}
	wantPlanes := color.PlaneCount()
	if len(planes) != wantPlanes {
		return nil, ssberr.New(ssberr.KindRuntime, fmt.Sprintf("image view: %s expects %d plane(s), got %d", color, wantPlanes, len(planes)))
	}
	need := height * stride
	for i, p := range planes {
		if len(p) < need {
			return nil, ssberr.New(ssberr.KindRuntime, fmt.Sprintf("image view: plane %d has length %d, want at least %d", i, len(p), need))
		}
	}
	return &ImageView{Width: width, Height: height, Stride: stride, Color: color, Planes: planes}, nil
}

// pixelOffset returns the byte offset of pixel (x,y) within Planes[0].
func (v *ImageView) pixelOffset(x, y int) int {
	return y*v.Stride + x*v.Color.BytesPerPixel()
}

// at returns the current (unswapped) RGB color of the pixel at (x,y),
// for blend modes that need to read the destination before compositing.
func (v *ImageView) at(x, y int) [3]byte {
	off := v.pixelOffset(x, y)
	plane := v.Planes[0]
	r, g, b := plane[off+0], plane[off+1], plane[off+2]
	if v.Color.swapped() {
		r, b = b, r
	}
	return [3]byte{r, g, b}
}

// blendOver composites rgb at coverage alpha (0-255, already including any
// gating mask) onto the pixel at (x,y) using straight alpha-over
// compositing. Out-of-bounds coordinates are ignored.
func (v *ImageView) blendOver(x, y int, rgb [3]byte, alpha byte) {
	if x < 0 || y < 0 || x >= v.Width || y >= v.Height || alpha == 0 {
		return
	}
	off := v.pixelOffset(x, y)
	plane := v.Planes[0]
	r, g, b := rgb[0], rgb[1], rgb[2]
	if v.Color.swapped() {
		r, b = b, r
	}
	a := uint32(alpha)
	inv := 255 - a
	plane[off+0] = byte((uint32(plane[off+0])*inv + uint32(r)*a) / 255)
	plane[off+1] = byte((uint32(plane[off+1])*inv + uint32(g)*a) / 255)
	plane[off+2] = byte((uint32(plane[off+2])*inv + uint32(b)*a) / 255)
	if v.Color.HasAlpha() {
		prev := uint32(plane[off+3])
		plane[off+3] = byte(prev + (255-prev)*a/255)
	}
}
