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
	"bytes"
	"image"
	_ "image/jpeg" // texture resources commonly ship as jpeg
	_ "image/png"  // texture resources commonly ship as png

	_ "golang.org/x/image/bmp" // hosts that ship uncompressed bitmap textures
	"golang.org/x/image/draw"

	"github.com/substation-beta/ssb/raster"
	"github.com/substation-beta/ssb/ssb/lower"
)

// texFill resolves the active texture and texfill placement into a scaled
// RGBA tile plus the device-space rectangle it's placed at, ready for
// wrapped per-pixel sampling.
type texFill struct {
	tile *image.RGBA
	rect raster.Rect
	wrap lower.TextureWrap
}

// resolveTexture decodes the named texture resource and scales it, via
// x/image/draw, to fit the placement rectangle implied by fill within
// bounds. Returns nil if the texture id is unknown or undecodable: the
// caller then falls back to a plain color fill.
func (p *painter) resolveTexture(id string, fill lower.TagTexFill, bounds raster.Rect) *texFill {
	data, ok := p.doc.Textures[id]
	if !ok {
		return nil
	}
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil
	}

	w := bounds.MaxX - bounds.MinX
	h := bounds.MaxY - bounds.MinY
	rect := raster.Rect{
		MinX: bounds.MinX + float32(fill.X0)*w,
		MinY: bounds.MinY + float32(fill.Y0)*h,
		MaxX: bounds.MinX + float32(fill.X1)*w,
		MaxY: bounds.MinY + float32(fill.Y1)*h,
	}
	tileW := int(rect.MaxX - rect.MinX)
	tileH := int(rect.MaxY - rect.MinY)
	if tileW < 1 {
		tileW = 1
	}
	if tileH < 1 {
		tileH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, tileW, tileH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return &texFill{tile: dst, rect: rect, wrap: fill.Wrap}
}

// at samples the tile at device coordinates (x,y), addressing outside its
// placement rectangle according to wrap.
func (t *texFill) at(x, y int) (rgb [3]byte, alpha byte) {
	w, h := t.tile.Rect.Dx(), t.tile.Rect.Dy()
	lx := x - int(t.rect.MinX)
	ly := y - int(t.rect.MinY)

	switch t.wrap {
	case lower.TextureWrapClamp:
		if lx < 0 || ly < 0 || lx >= w || ly >= h {
			return [3]byte{}, 0
		}
	case lower.TextureWrapRepeat:
		lx = wrapMod(lx, w)
		ly = wrapMod(ly, h)
	case lower.TextureWrapMirror:
		lx = wrapMirror(lx, w)
		ly = wrapMirror(ly, h)
	default: // TextureWrapPad
		lx = clampInt(lx, 0, w-1)
		ly = clampInt(ly, 0, h-1)
	}

	c := t.tile.RGBAAt(lx, ly)
	return [3]byte{c.R, c.G, c.B}, c.A
}

func wrapMod(v, n int) int {
	if n <= 0 {
		return 0
	}
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

func wrapMirror(v, n int) int {
	if n <= 0 {
		return 0
	}
	period := 2 * n
	v = wrapMod(v, period)
	if v >= n {
		v = period - 1 - v
	}
	return v
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
