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
	"golang.org/x/image/font/basicfont"
	"seehuhn.de/go/pdf/graphics"

	"github.com/substation-beta/ssb/raster"
	"github.com/substation-beta/ssb/ssb"
	"github.com/substation-beta/ssb/ssb/lower"
)

// style is the current style state threaded through one event's
// EventObject stream: every tag mutates it, every geometry token paints
// using its current values. It is not exported; callers only ever see
// its effects on an ImageView.
type style struct {
	ctm raster.Matrix
	z   float32

	mode lower.Mode

	color       lower.Color
	borderColor lower.Color
	alpha       lower.Alpha
	borderAlpha lower.Alpha

	borderWidth float32
	join        graphics.LineJoinStyle
	cap         graphics.LineCapStyle

	blurRadius float32
	blend      lower.Blend
	target     lower.Target
	maskMode   lower.MaskMode

	textureID  string
	hasTexFill bool
	texFill    lower.TagTexFill

	fontSize float32

	karaokeElapsedMs    int64
	karaokeSyllableEnds int64
	karaokeColor        [3]byte
}

func newStyle() style {
	return style{
		ctm:         raster.Identity,
		color:       lower.Color{Shape: lower.ColorMono, RGB: [5][3]byte{{255, 255, 255}}},
		alpha:       lower.Alpha{Shape: lower.ColorMono, A: [5]byte{255}},
		borderAlpha: lower.Alpha{Shape: lower.ColorMono, A: [5]byte{255}},
		fontSize:    36,
		cap:         graphics.LineCapButt,
		join:        graphics.LineJoinMiter,
	}
}

// painter executes one event's token stream against a view, with its own
// style state and a canvas-sized scratch mask for target=mask/mask-mode
// gating. A fresh painter is created per matching event, matching the
// contract that a mask's buffer is scoped to a single rasterization.
type painter struct {
	view    *ImageView
	doc     *lower.RenderDocument
	trigger ssb.Trigger
	query   Query

	st         style
	canvasMask []byte // width*height, nil until first touched
}

func newPainter(view *ImageView, doc *lower.RenderDocument, trigger ssb.Trigger, q Query) *painter {
	return &painter{view: view, doc: doc, trigger: trigger, query: q, st: newStyle()}
}

func (p *painter) paint(objects []lower.EventObject) error {
	for _, obj := range objects {
		if err := p.apply(obj); err != nil {
			return err
		}
	}
	return nil
}

func (p *painter) apply(obj lower.EventObject) error {
	switch o := obj.(type) {
	case lower.GeometryText:
		p.paintText(string(o))
	case lower.GeometryPoints:
		p.paintPolygon(o)
	case lower.GeometryShape:
		p.paintShape(o)

	case lower.TagPosition:
		p.st.ctm = p.st.ctm.Translate(float64(o.X), float64(o.Y), float64(o.Z))
		p.st.z = o.Z
	case lower.TagRotate:
		p.applyAxis3Rotate(lower.Rotate3(o))
	case lower.TagScale:
		p.applyAxis3ScaleOrTranslate(lower.Rotate3(o), true)
	case lower.TagTranslate:
		p.applyAxis3ScaleOrTranslate(lower.Rotate3(o), false)
	case lower.TagShear:
		p.applyShear(lower.Shear2(o))
	case lower.TagMatrix:
		p.st.ctm = raster.Matrix(o)
	case lower.TagIdentity:
		p.st.ctm = raster.Identity

	case lower.TagMode:
		p.st.mode = lower.Mode(o)
	case lower.TagSize:
		p.st.fontSize = float32(o)

	case lower.TagBorder:
		p.st.borderWidth = borderWidthOf(lower.AxisPair(o))
	case lower.TagJoin:
		p.st.join = graphics.LineJoinStyle(o)
	case lower.TagCap:
		p.st.cap = graphics.LineCapStyle(o)

	case lower.TagColor:
		p.st.color = lower.Color(o)
	case lower.TagBorderColor:
		p.st.borderColor = lower.Color(o)
	case lower.TagAlpha:
		p.st.alpha = lower.Alpha(o)
	case lower.TagBorderAlpha:
		p.st.borderAlpha = lower.Alpha(o)

	case lower.TagBlur:
		ap := lower.AxisPair(o)
		p.st.blurRadius = borderWidthOf(ap)
	case lower.TagBlend:
		p.st.blend = lower.Blend(o)
	case lower.TagTarget:
		p.st.target = lower.Target(o)
	case lower.TagMaskMode:
		p.st.maskMode = lower.MaskMode(o)
	case lower.TagMaskClear:
		p.canvasMask = nil

	case lower.TagTexture:
		p.st.textureID = string(o)
	case lower.TagTexFill:
		p.st.texFill = o
		p.st.hasTexFill = true

	case lower.TagKaraoke:
		p.st.karaokeSyllableEnds = p.st.karaokeElapsedMs + int64(o)*10
	case lower.TagKaraokeSet:
		p.st.karaokeElapsedMs = int64(o) * 10
	case lower.TagKaraokeColor:
		p.st.karaokeColor = [3]byte(o)

	case lower.TagAnimate:
		// Interpolated styles are a host-timeline concern; the painter
		// applies the nested tags at their resting (fully-animated)
		// values, matching how an id-triggered (non-timed) render has no
		// well-defined interpolation fraction either.
		for _, nested := range o.Tags {
			if err := p.apply(nested); err != nil {
				return err
			}
		}

	default:
		// Font family, bold/italic/underline/strikeout, alignment,
		// margin, wrap-style, direction and space are text-layout
		// concerns the placeholder glyph-box painter does not need to
		// branch on to place ink; they still flow through the style
		// struct's zero value harmlessly.
	}
	return nil
}

func borderWidthOf(ap lower.AxisPair) float32 {
	if ap.Axis == lower.Axis2HAll {
		return (ap.X + ap.Y) / 2
	}
	return ap.Single
}

func (p *painter) applyAxis3Rotate(r lower.Rotate3) {
	switch r.Axis {
	case lower.Axis3X:
		p.st.ctm = p.st.ctm.RotateX(float64(r.X) * degToRad)
	case lower.Axis3Y:
		p.st.ctm = p.st.ctm.RotateY(float64(r.Y) * degToRad)
	case lower.Axis3Z:
		p.st.ctm = p.st.ctm.RotateZ(float64(r.Z) * degToRad)
	default:
		p.st.ctm = p.st.ctm.RotateX(float64(r.X) * degToRad)
		p.st.ctm = p.st.ctm.RotateY(float64(r.Y) * degToRad)
		p.st.ctm = p.st.ctm.RotateZ(float64(r.Z) * degToRad)
	}
}

const degToRad = 3.14159265358979323846 / 180

func (p *painter) applyAxis3ScaleOrTranslate(r lower.Rotate3, isScale bool) {
	x, y, z := float64(r.X), float64(r.Y), float64(r.Z)
	if isScale {
		switch r.Axis {
		case lower.Axis3X:
			p.st.ctm = p.st.ctm.Scale(x, 1, 1)
		case lower.Axis3Y:
			p.st.ctm = p.st.ctm.Scale(1, y, 1)
		case lower.Axis3Z:
			p.st.ctm = p.st.ctm.Scale(1, 1, z)
		default:
			p.st.ctm = p.st.ctm.Scale(x, y, z)
		}
		return
	}
	switch r.Axis {
	case lower.Axis3X:
		p.st.ctm = p.st.ctm.Translate(x, 0, 0)
	case lower.Axis3Y:
		p.st.ctm = p.st.ctm.Translate(0, y, 0)
	case lower.Axis3Z:
		p.st.ctm = p.st.ctm.Translate(0, 0, z)
	default:
		p.st.ctm = p.st.ctm.Translate(x, y, z)
	}
}

func (p *painter) applyShear(s lower.Shear2) {
	switch s.Axis {
	case lower.Axis2X:
		p.st.ctm = p.st.ctm.Shear(float64(s.X)*degToRad, 0)
	case lower.Axis2Y:
		p.st.ctm = p.st.ctm.Shear(0, float64(s.Y)*degToRad)
	default:
		p.st.ctm = p.st.ctm.Shear(float64(s.X)*degToRad, float64(s.Y)*degToRad)
	}
}

// placeholderAdvance is basicfont.Face7x13's advance width, reused as a
// stand-in glyph box size so text geometry occupies a realistic amount of
// horizontal space without a real shaper/rasterizer.
var placeholderAdvance = float32(basicfont.Face7x13.Advance)

// paintText renders each rune of text as a filled box approximating its
// advance width and the active font size, left-to-right from the current
// origin. It is a placeholder for real glyph rendering (out of scope),
// grounded on basicfont's fixed advance metric rather than an invented
// constant.
func (p *painter) paintText(text string) {
	scale := p.st.fontSize / 13 // basicfont.Face7x13's cell height
	advance := placeholderAdvance * scale
	x := float32(0)
	localMs, haveTime := p.localTimeMs()

	for _, r := range text {
		if r == '\n' {
			x = 0
			continue
		}
		box := raster.NewPath().
			Move(raster.Point{X: x, Y: 0}).
			Line(raster.Point{X: x + advance*0.85, Y: 0}).
			Line(raster.Point{X: x + advance*0.85, Y: p.st.fontSize}).
			Line(raster.Point{X: x, Y: p.st.fontSize}).
			CloseSub()
		x += advance

		color := p.st.color
		if p.st.karaokeSyllableEnds > 0 {
			if haveTime {
				color = lower.Color{Shape: lower.ColorMono, RGB: [5][3]byte{p.karaokeBlend(sampleColor(color, raster.Rect{}, 0.5, 0.5), localMs)}}
			} else {
				color = lower.Color{Shape: lower.ColorMono, RGB: [5][3]byte{p.st.karaokeColor}}
			}
		}
		p.paintPath(box, color, p.st.alpha)
	}
	if p.st.karaokeSyllableEnds > p.st.karaokeElapsedMs {
		p.st.karaokeElapsedMs = p.st.karaokeSyllableEnds
	}
}

// localTimeMs returns the render query's time relative to this event's
// trigger start, when the query is itself time-based.
func (p *painter) localTimeMs() (int64, bool) {
	if p.query.Kind != QueryTime {
		return 0, false
	}
	return int64(p.query.TimeMS) - int64(p.trigger.Start), true
}

// karaokeBlend returns rgb unchanged before the active syllable starts,
// fully swapped for karaokeColor once it ends, and linearly blended while
// localMs falls within [karaokeElapsedMs, karaokeSyllableEnds).
func (p *painter) karaokeBlend(rgb [3]byte, localMs int64) [3]byte {
	start, end := p.st.karaokeElapsedMs, p.st.karaokeSyllableEnds
	if localMs <= start || end <= start {
		return rgb
	}
	if localMs >= end {
		return p.st.karaokeColor
	}
	t := float64(localMs-start) / float64(end-start)
	return lerpRGB(rgb, p.st.karaokeColor, t)
}

func lerpRGB(a, b [3]byte, t float64) [3]byte {
	var out [3]byte
	for i := range a {
		out[i] = byte(float64(a[i])*(1-t) + float64(b[i])*t)
	}
	return out
}

func (p *painter) paintPolygon(pts []raster.Point) {
	if len(pts) < 2 {
		return
	}
	path := raster.NewPath().Move(pts[0])
	for _, pt := range pts[1:] {
		path.Line(pt)
	}
	path.CloseSub()
	p.paintGeometryPath(path)
}

func (p *painter) paintShape(segs []raster.Segment) {
	p.paintGeometryPath(&raster.Path{Segments: segs})
}

// paintGeometryPath fills (and, if an active border width is set,
// strokes) one geometry run using the current color/alpha/border style.
func (p *painter) paintGeometryPath(path *raster.Path) {
	flat := path.Flatten().Clone()
	transformed := p.st.ctm
	flatDev := transformed.TransformFlat(flat, p.st.z)
	bounds := flatDev.Bounding()

	if p.st.borderWidth > 0 {
		outline := raster.StrokeOutline(flatDev, p.st.borderWidth, p.st.cap, p.st.join, raster.DefaultMiterLimit)
		p.rasterizeAndComposite(outline.Flatten(), p.st.borderColor, p.st.borderAlpha, bounds, nil)
	}

	var tex *texFill
	if p.st.textureID != "" && p.st.hasTexFill {
		tex = p.resolveTexture(p.st.textureID, p.st.texFill, bounds)
	}
	p.rasterizeAndComposite(flatDev, p.st.color, p.st.alpha, bounds, tex)
}

func (p *painter) paintPath(path *raster.Path, c lower.Color, a lower.Alpha) {
	flatDev := p.st.ctm.TransformFlat(path.Flatten(), p.st.z)
	p.rasterizeAndComposite(flatDev, c, a, flatDev.Bounding(), nil)
}

func (p *painter) rasterizeAndComposite(flat *raster.FlatPath, c lower.Color, a lower.Alpha, bounds raster.Rect, tex *texFill) {
	mask := raster.Rasterize(flat, p.view.Width, p.view.Height)
	if mask == nil {
		return
	}
	if p.st.blurRadius > 0 {
		boxBlur(mask, int(p.st.blurRadius))
	}
	p.composite(mask, c, a, bounds, tex)
}

// normalize maps x into [0,1] across [lo,hi), clamped, treating a
// zero-width span as entirely at 0.
func normalize(x, lo, hi float32) float32 {
	span := hi - lo
	if span <= 0 {
		return 0
	}
	u := (x - lo) / span
	if u < 0 {
		return 0
	}
	if u > 1 {
		return 1
	}
	return u
}

// composite blends one rasterized mask into the view or the event-local
// mask buffer according to the active target, blend mode and mask-mode
// gate. Color and alpha are evaluated per pixel against bounds so that
// gradient shapes vary across the filled area rather than using one
// averaged tint.
func (p *painter) composite(mask *raster.Mask, c lower.Color, a lower.Alpha, bounds raster.Rect, tex *texFill) {
	if p.st.target == lower.TargetMask {
		p.ensureCanvasMask()
		for row := 0; row < mask.Height; row++ {
			y := mask.OffsetY + row
			if y < 0 || y >= p.view.Height {
				continue
			}
			for col := 0; col < mask.Width; col++ {
				x := mask.OffsetX + col
				if x < 0 || x >= p.view.Width {
					continue
				}
				cov := mask.Data[row*mask.Width+col]
				u := normalize(float32(x), bounds.MinX, bounds.MaxX)
				v := normalize(float32(y), bounds.MinY, bounds.MaxY)
				weighted := uint32(cov) * uint32(sampleAlpha(a, bounds, u, v)) / 255
				idx := y*p.view.Width + x
				addSaturating8(&p.canvasMask[idx], byte(weighted))
			}
		}
		return
	}

	for row := 0; row < mask.Height; row++ {
		y := mask.OffsetY + row
		if y < 0 || y >= p.view.Height {
			continue
		}
		for col := 0; col < mask.Width; col++ {
			x := mask.OffsetX + col
			if x < 0 || x >= p.view.Width {
				continue
			}
			cov := mask.Data[row*mask.Width+col]
			if cov == 0 {
				continue
			}
			u := normalize(float32(x), bounds.MinX, bounds.MaxX)
			v := normalize(float32(y), bounds.MinY, bounds.MaxY)

			var rgb [3]byte
			var texAlpha byte = 255
			if tex != nil {
				rgb, texAlpha = tex.at(x, y)
			} else {
				rgb = sampleColor(c, bounds, u, v)
			}

			effAlpha := uint32(cov) * uint32(sampleAlpha(a, bounds, u, v)) / 255 * uint32(texAlpha) / 255
			if gate := p.maskGateAt(x, y); gate != 255 {
				effAlpha = effAlpha * uint32(gate) / 255
			}
			if effAlpha == 0 {
				continue
			}
			dst := p.view.at(x, y)
			blended := applyBlend(dst, rgb, p.st.blend)
			p.view.blendOver(x, y, blended, byte(effAlpha))
		}
	}
}

func (p *painter) ensureCanvasMask() {
	if p.canvasMask == nil {
		p.canvasMask = make([]byte, p.view.Width*p.view.Height)
	}
}

// maskGateAt returns 255 if no mask is active, or the gating coverage
// (direct under MaskModeNormal, inverted under MaskModeInvert) otherwise.
func (p *painter) maskGateAt(x, y int) byte {
	if p.canvasMask == nil {
		return 255
	}
	v := p.canvasMask[y*p.view.Width+x]
	if p.st.maskMode == lower.MaskModeInvert {
		return 255 - v
	}
	return v
}

func addSaturating8(b *byte, v byte) {
	sum := int(*b) + int(v)
	if sum > 255 {
		sum = 255
	}
	*b = byte(sum)
}

// applyBlend computes the blended source color the active blend mode
// produces against dst, before straight alpha-over compositing applies
// the coverage/alpha weight. BlendAdd is the engine's normal mode: the
// straight alpha-over formula already is a weighted add of src onto dst,
// so no extra transform is needed for it.
func applyBlend(dst, src [3]byte, mode lower.Blend) [3]byte {
	var out [3]byte
	for i := range out {
		d, s := int(dst[i]), int(src[i])
		switch mode {
		case lower.BlendSubtract:
			out[i] = clampByte(d - s)
		case lower.BlendMultiply:
			out[i] = byte(d * s / 255)
		case lower.BlendInvert:
			out[i] = clampByte(255 - d)
		case lower.BlendDifference:
			diff := d - s
			if diff < 0 {
				diff = -diff
			}
			out[i] = byte(diff)
		case lower.BlendScreen:
			out[i] = byte(255 - (255-d)*(255-s)/255)
		default: // BlendAdd
			out[i] = src[i]
		}
	}
	return out
}

func clampByte(v int) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}

// sampleColor evaluates color's gradient shape at normalized position
// (u,v) within a shape's bounds (0,0 = top-left, 1,1 = bottom-right).
// bounds is unused by the formula itself (u,v are already normalized)
// but kept for symmetry with sampleAlpha and future shapes that might
// need the aspect ratio.
func sampleColor(c lower.Color, bounds raster.Rect, u, v float32) [3]byte {
	switch c.Shape {
	case lower.ColorMono:
		return c.RGB[0]
	case lower.ColorLinear:
		return lerpRGB(c.RGB[0], c.RGB[1], float64(u))
	case lower.ColorLinearWithStop:
		if u < 0.5 {
			return lerpRGB(c.RGB[0], c.RGB[1], float64(u)*2)
		}
		return lerpRGB(c.RGB[1], c.RGB[2], (float64(u)-0.5)*2)
	case lower.ColorCorners, lower.ColorCornersWithStop:
		top := lerpRGB(c.RGB[0], c.RGB[1], float64(u))
		bottom := lerpRGB(c.RGB[3], c.RGB[2], float64(u))
		bilinear := lerpRGB(top, bottom, float64(v))
		if c.Shape == lower.ColorCornersWithStop {
			return lerpRGB(bilinear, c.RGB[4], 0.5)
		}
		return bilinear
	default:
		return c.RGB[0]
	}
}

func sampleAlpha(a lower.Alpha, bounds raster.Rect, u, v float32) byte {
	lerp := func(a0, a1 byte, t float64) byte {
		return byte(float64(a0)*(1-t) + float64(a1)*t)
	}
	switch a.Shape {
	case lower.ColorMono:
		return a.A[0]
	case lower.ColorLinear:
		return lerp(a.A[0], a.A[1], float64(u))
	case lower.ColorLinearWithStop:
		if u < 0.5 {
			return lerp(a.A[0], a.A[1], float64(u)*2)
		}
		return lerp(a.A[1], a.A[2], (float64(u)-0.5)*2)
	case lower.ColorCorners, lower.ColorCornersWithStop:
		top := lerp(a.A[0], a.A[1], float64(u))
		bottom := lerp(a.A[3], a.A[2], float64(u))
		bilinear := lerp(top, bottom, float64(v))
		if a.Shape == lower.ColorCornersWithStop {
			return lerp(bilinear, a.A[4], 0.5)
		}
		return bilinear
	default:
		return a.A[0]
	}
}

// boxBlur approximates a Gaussian blur of the given pixel radius with
// three passes of a horizontal+vertical box filter, the standard
// cheap substitute when a true separable Gaussian kernel isn't needed.
func boxBlur(mask *raster.Mask, radius int) {
	if radius <= 0 {
		return
	}
	for pass := 0; pass < 3; pass++ {
		boxBlurPass(mask, radius)
	}
}

func boxBlurPass(mask *raster.Mask, radius int) {
	w, h := mask.Width, mask.Height
	tmp := make([]byte, w*h)

	for y := 0; y < h; y++ {
		base := y * w
		for x := 0; x < w; x++ {
			sum, count := 0, 0
			for dx := -radius; dx <= radius; dx++ {
				xx := x + dx
				if xx < 0 || xx >= w {
					continue
				}
				sum += int(mask.Data[base+xx])
				count++
			}
			tmp[base+x] = byte(sum / count)
		}
	}

	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			sum, count := 0, 0
			for dy := -radius; dy <= radius; dy++ {
				yy := y + dy
				if yy < 0 || yy >= h {
					continue
				}
				sum += int(tmp[yy*w+x])
				count++
			}
			mask.Data[y*w+x] = byte(sum / count)
		}
	}
}
