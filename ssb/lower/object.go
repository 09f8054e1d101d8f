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

// Package lower turns a parsed ssb.RawDocument into a render-ready
// RenderDocument: macro-flattened, tag/geometry-tokenized EventObject
// streams per event, with resource URLs resolved to byte blobs.
package lower

import (
	"seehuhn.de/go/pdf/graphics"

	"github.com/substation-beta/ssb/raster"
)

// EventObject is the closed tagged-variant family produced by lowering an
// event body: one value per tag or geometry run, in source order. Each
// concrete type's isEventObject method is unexported, preventing types
// outside this package from joining the family.
type EventObject interface {
	isEventObject()
}

// GeometryText is a Text-mode geometry run, stored verbatim (after escape
// resolution).
type GeometryText string

func (GeometryText) isEventObject() {}

// GeometryPoints is a Points-mode geometry run: whitespace-separated pairs
// of floats.
type GeometryPoints []raster.Point

func (GeometryPoints) isEventObject() {}

// GeometryShape is a Shape-mode geometry run: a sequence of path segments
// built from space-separated m/l/b/a/c tokens.
type GeometryShape []raster.Segment

func (GeometryShape) isEventObject() {}

// TagFont sets the active font family.
type TagFont string

func (TagFont) isEventObject() {}

// TagSize sets the active font size.
type TagSize float32

func (TagSize) isEventObject() {}

// TagBold, TagItalic, TagUnderline and TagStrikeout toggle text decoration.
type (
	TagBold      bool
	TagItalic    bool
	TagUnderline bool
	TagStrikeout bool
)

func (TagBold) isEventObject()      {}
func (TagItalic) isEventObject()    {}
func (TagUnderline) isEventObject() {}
func (TagStrikeout) isEventObject() {}

// TagPosition sets the event's anchor position.
type TagPosition raster.Point3D

func (TagPosition) isEventObject() {}

// Numpad is the classic 1-9 keypad alignment layout.
type Numpad int

const (
	NumpadBottomLeft Numpad = iota + 1
	NumpadBottomCenter
	NumpadBottomRight
	NumpadMiddleLeft
	NumpadMiddleCenter
	NumpadMiddleRight
	NumpadTopLeft
	NumpadTopCenter
	NumpadTopRight
)

// NumpadFromDigit converts the numpad 1-9 tag value to a Numpad (5, dead
// center, is NumpadMiddleCenter). It reports false for any other digit.
func NumpadFromDigit(d int) (Numpad, bool) {
	switch d {
	case 1:
		return NumpadBottomLeft, true
	case 2:
		return NumpadBottomCenter, true
	case 3:
		return NumpadBottomRight, true
	case 4:
		return NumpadMiddleLeft, true
	case 5:
		return NumpadMiddleCenter, true
	case 6:
		return NumpadMiddleRight, true
	case 7:
		return NumpadTopLeft, true
	case 8:
		return NumpadTopCenter, true
	case 9:
		return NumpadTopRight, true
	default:
		return 0, false
	}
}

// Alignment is either a numpad position or an explicit (x,y) offset.
type Alignment struct {
	IsOffset bool
	Numpad   Numpad
	Offset   raster.Point
}

// TagAlignment sets the event's text/geometry alignment.
type TagAlignment Alignment

func (TagAlignment) isEventObject() {}

// Margin is either all four sides at once or a single named side.
type Margin struct {
	Side  Side // SideAll uses All; otherwise uses Value
	All   [4]float32
	Value float32
}

// Side names a margin edge, or SideAll for all four at once.
type Side int

const (
	SideAll Side = iota
	SideTop
	SideRight
	SideBottom
	SideLeft
)

// TagMargin sets one or all event margins.
type TagMargin Margin

func (TagMargin) isEventObject() {}

// WrapStyle selects how Text-mode geometry wraps within an event's box.
type WrapStyle int

const (
	WrapSpace WrapStyle = iota
	WrapCharacter
	WrapNone
)

// TagWrapStyle sets the active wrap style.
type TagWrapStyle WrapStyle

func (TagWrapStyle) isEventObject() {}

// Direction selects the reading direction of Text-mode geometry.
type Direction int

const (
	DirectionLTR Direction = iota
	DirectionRTL
	DirectionTTB
	DirectionBTT
)

// TagDirection sets the active reading direction.
type TagDirection Direction

func (TagDirection) isEventObject() {}

// Axis2H names a horizontal/vertical axis pair, or Axis2HAll for both at
// once: the shape shared by space, border and blur tag values.
type Axis2H int

const (
	Axis2HAll Axis2H = iota
	Axis2HHorizontal
	Axis2HVertical
)

// AxisPair is either both axes at once (X,Y meaningful) or a single named
// axis (Single meaningful).
type AxisPair struct {
	Axis   Axis2H
	X, Y   float32
	Single float32
}

// TagSpace sets character/line spacing.
type TagSpace AxisPair

func (TagSpace) isEventObject() {}

// Rotate3 carries a rotation around one or all three axes (degrees).
type Rotate3 struct {
	Axis    Axis3 // Axis3All or a single axis
	X, Y, Z raster.Degree
}

// Axis3 names a 3-D transform axis, or Axis3All for all at once.
type Axis3 int

const (
	Axis3All Axis3 = iota
	Axis3X
	Axis3Y
	Axis3Z
)

// TagRotate, TagScale, TagTranslate share Rotate3's (axis, x, y, z) shape;
// TagShear has only x and y.
type (
	TagRotate    Rotate3
	TagScale     Rotate3
	TagTranslate Rotate3
)

func (TagRotate) isEventObject()    {}
func (TagScale) isEventObject()     {}
func (TagTranslate) isEventObject() {}

// Shear2 carries a shear amount around one or both axes.
type Shear2 struct {
	Axis Axis2
	X, Y raster.Degree
}

// Axis2 names a 2-D shear axis, or Axis2All for both at once.
type Axis2 int

const (
	Axis2All Axis2 = iota
	Axis2X
	Axis2Y
)

// TagShear sets the active shear.
type TagShear Shear2

func (TagShear) isEventObject() {}

// TagMatrix replaces the active transform with an explicit row-major 4x4
// matrix given as 16 values.
type TagMatrix raster.Matrix

func (TagMatrix) isEventObject() {}

// TagIdentity resets the active transform to the identity matrix.
type TagIdentity struct{}

func (TagIdentity) isEventObject() {}

// Mode selects how subsequent geometry runs are interpreted.
type Mode int

const (
	ModeText Mode = iota
	ModePoints
	ModeShape
)

// TagMode switches the active geometry interpretation mode.
type TagMode Mode

func (TagMode) isEventObject() {}

// Border carries a border width for one or both axes.
type Border AxisPair

// TagBorder sets the active border width.
type TagBorder Border

func (TagBorder) isEventObject() {}

// TagJoin sets the active stroke join style, reusing the PDF graphics
// library's enum rather than inventing a parallel one.
type TagJoin graphics.LineJoinStyle

func (TagJoin) isEventObject() {}

// TagCap sets the active stroke cap style.
type TagCap graphics.LineCapStyle

func (TagCap) isEventObject() {}

// TagTexture selects the active fill texture by resource id.
type TagTexture string

func (TagTexture) isEventObject() {}

// TextureWrap selects how a texture tiles outside its fill rectangle.
type TextureWrap int

const (
	TextureWrapPad TextureWrap = iota
	TextureWrapClamp
	TextureWrapRepeat
	TextureWrapMirror
)

// TagTexFill places and tiles the active texture within a fill rectangle.
type TagTexFill struct {
	X0, Y0, X1, Y1 raster.Degree
	Wrap           TextureWrap
}

func (TagTexFill) isEventObject() {}

// Color is a closed variant over the five color-gradient shapes the format
// supports: a single RGB triple, a 2-stop linear gradient, a 3-stop linear
// gradient with an explicit stop position folded in, 4 corner colors, or 5
// (4 corners plus a center).
type Color struct {
	Shape ColorShape
	RGB   [5][3]byte // only the first Shape.Count() entries are meaningful
}

// ColorShape discriminates Color's five variants.
type ColorShape int

const (
	ColorMono ColorShape = iota
	ColorLinear
	ColorLinearWithStop
	ColorCorners
	ColorCornersWithStop
)

// Count returns how many RGB entries Shape carries.
func (s ColorShape) Count() int {
	switch s {
	case ColorMono:
		return 1
	case ColorLinear:
		return 2
	case ColorLinearWithStop:
		return 3
	case ColorCorners:
		return 4
	case ColorCornersWithStop:
		return 5
	default:
		return 0
	}
}

// TagColor and TagBorderColor set the active fill/border color.
type (
	TagColor       Color
	TagBorderColor Color
)

func (TagColor) isEventObject()       {}
func (TagBorderColor) isEventObject() {}

// Alpha mirrors Color's five-shape grammar for opacity.
type Alpha struct {
	Shape ColorShape
	A     [5]byte
}

// TagAlpha and TagBorderAlpha set the active fill/border alpha.
type (
	TagAlpha       Alpha
	TagBorderAlpha Alpha
)

func (TagAlpha) isEventObject()       {}
func (TagBorderAlpha) isEventObject() {}

// TagBlur sets the active blur radius for one or both axes.
type TagBlur AxisPair

func (TagBlur) isEventObject() {}

// Blend selects how the active draw operation composites onto its target.
type Blend int

const (
	BlendAdd Blend = iota
	BlendSubtract
	BlendMultiply
	BlendInvert
	BlendDifference
	BlendScreen
)

// TagBlend sets the active blend mode.
type TagBlend Blend

func (TagBlend) isEventObject() {}

// Target selects whether subsequent draws composite onto the frame or the
// event's mask.
type Target int

const (
	TargetFrame Target = iota
	TargetMask
)

// TagTarget sets the active composite target.
type TagTarget Target

func (TagTarget) isEventObject() {}

// MaskMode selects how the active mask gates compositing.
type MaskMode int

const (
	MaskModeNormal MaskMode = iota
	MaskModeInvert
)

// TagMaskMode sets the active mask mode.
type TagMaskMode MaskMode

func (TagMaskMode) isEventObject() {}

// TagMaskClear clears the active mask back to fully transparent.
type TagMaskClear struct{}

func (TagMaskClear) isEventObject() {}

// Animate carries an optional time window, an optional interpolation
// formula name, and the nested tag stream to interpolate towards.
type Animate struct {
	HasTime    bool
	TimeStart  int32
	TimeEnd    int32
	HasFormula bool
	Formula    string
	Tags       []EventObject
}

// TagAnimate schedules Tags to interpolate in over Animate's time window.
type TagAnimate Animate

func (TagAnimate) isEventObject() {}

// TagKaraoke sets the active karaoke syllable duration, in centiseconds
// (matching the original engine's unit; the painter multiplies by 10 for
// millisecond timing).
type TagKaraoke uint32

func (TagKaraoke) isEventObject() {}

// TagKaraokeSet offsets the karaoke clock without emitting a syllable
// boundary, also in centiseconds.
type TagKaraokeSet int32

func (TagKaraokeSet) isEventObject() {}

// TagKaraokeColor sets the color swept over already-sung karaoke text.
type TagKaraokeColor [3]byte

func (TagKaraokeColor) isEventObject() {}
