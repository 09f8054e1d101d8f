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

package lower

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
	"seehuhn.de/go/pdf/graphics"

	"github.com/substation-beta/ssb/raster"
	"github.com/substation-beta/ssb/ssb"
	"github.com/substation-beta/ssb/ssberr"
)

// EventRender is one lowered event: its trigger, carried unchanged from the
// raw document, plus the ordered EventObject stream produced from its body.
type EventRender struct {
	Trigger ssb.Trigger
	Objects []EventObject
}

// RenderDocument is the fully lowered form of a RawDocument: macros
// flattened and substituted away, event bodies tokenized into typed
// EventObjects, and texture resources resolved to byte blobs.
type RenderDocument struct {
	Target   ssb.Target
	Events   []EventRender
	Fonts    map[ssb.FontKey][]byte
	Textures map[string][]byte
}

// Lower turns a parsed RawDocument into a RenderDocument. searchPath is
// joined with any URL-sourced texture to resolve it from disk.
func Lower(doc *ssb.RawDocument, searchPath string) (*RenderDocument, error) {
	flat := map[string]string{}
	history := map[string]bool{}
	for name := range doc.Macros {
		if err := ssb.FlattenMacro(name, history, doc.Macros, flat); err != nil {
			return nil, err
		}
	}

	out := &RenderDocument{
		Target:   doc.Target,
		Fonts:    doc.Resources.Fonts,
		Textures: make(map[string][]byte, len(doc.Resources.Textures)),
	}

	for _, ev := range doc.Events {
		objects, err := lowerEvent(ev, flat)
		if err != nil {
			return nil, err
		}
		out.Events = append(out.Events, EventRender{Trigger: ev.Trigger, Objects: objects})
	}

	for id, src := range doc.Resources.Textures {
		switch src.Kind {
		case ssb.TextureData:
			out.Textures[id] = src.Data
		case ssb.TextureURL:
			data, err := os.ReadFile(filepath.Join(searchPath, src.URL))
			if err != nil {
				return nil, ssberr.Wrap(ssberr.KindResource, 0, 0, fmt.Sprintf("reading texture %q", id), err)
			}
			out.Textures[id] = data
		}
	}

	return out, nil
}

// lowerEvent expands ev's body against flat and tokenizes the result into
// an EventObject stream.
func lowerEvent(ev ssb.Event, flat map[string]string) ([]EventObject, error) {
	body := ev.Body
	if ev.Macro != "" {
		base, ok := flat[ev.Macro]
		if !ok {
			return nil, ssberr.At(ssberr.KindSemantic, ev.Line, ev.Column, fmt.Sprintf("undefined base macro %q", ev.Macro))
		}
		body = base + body
	}
	body, err := ssb.ExpandRefs(body, flat)
	if err != nil {
		return nil, ssberr.Wrap(ssberr.KindSemantic, ev.Line, ev.Column, "expanding macro references", err)
	}

	st := &lowerState{mode: ModeText, line: ev.Line, column: ev.Column}
	return st.tokenize(body)
}

// lowerState threads the active geometry Mode through one event's token
// stream; Mode persists across tag and geometry tokens within the event.
type lowerState struct {
	mode   Mode
	line   int
	column int
}

func (st *lowerState) errf(format string, args ...any) error {
	return ssberr.At(ssberr.KindSemantic, st.line, st.column, fmt.Sprintf(format, args...))
}

// tokenize walks body's tag/geometry alternation, producing one EventObject
// per tag and one per geometry run.
func (st *lowerState) tokenize(body string) ([]EventObject, error) {
	var objects []EventObject
	tok := ssb.NewTokenizer(body)
	for {
		token, ok := tok.Next()
		if !ok {
			break
		}
		if !token.IsTag {
			obj, err := st.lowerGeometry(token.Text)
			if err != nil {
				return nil, err
			}
			objects = append(objects, obj)
			continue
		}
		for _, tt := range ssb.SplitTagBody(token.Text) {
			obj, err := st.lowerTag(tt)
			if err != nil {
				return nil, err
			}
			objects = append(objects, obj)
		}
	}
	return objects, nil
}

func (st *lowerState) lowerGeometry(text string) (EventObject, error) {
	switch st.mode {
	case ModeText:
		return GeometryText(norm.NFC.String(text)), nil
	case ModePoints:
		pts, err := parsePoints(text)
		if err != nil {
			return nil, st.errf("points geometry: %v", err)
		}
		return GeometryPoints(pts), nil
	case ModeShape:
		segs, err := parseShape(text)
		if err != nil {
			return nil, st.errf("shape geometry: %v", err)
		}
		return GeometryShape(segs), nil
	default:
		return GeometryText(norm.NFC.String(text)), nil
	}
}

func parsePoints(text string) ([]raster.Point, error) {
	fields := strings.Fields(text)
	if len(fields)%2 != 0 {
		return nil, fmt.Errorf("%d fields is not a whole number of x,y pairs", len(fields))
	}
	pts := make([]raster.Point, 0, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		x, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, err
		}
		y, err := strconv.ParseFloat(fields[i+1], 32)
		if err != nil {
			return nil, err
		}
		pts = append(pts, raster.Point{X: float32(x), Y: float32(y)})
	}
	return pts, nil
}

// shapeArity gives the number of numeric arguments each segment kind
// consumes before it is emitted.
var shapeArity = map[raster.SegmentKind]int{
	raster.MoveTo:  2,
	raster.LineTo:  2,
	raster.CurveTo: 6,
	raster.ArcBy:   3,
}

func parseShape(text string) ([]raster.Segment, error) {
	var segs []raster.Segment
	kind := raster.MoveTo
	var nums []float32
	for _, f := range strings.Fields(text) {
		switch f {
		case "m":
			if len(nums) != 0 {
				return nil, fmt.Errorf("incomplete segment before %q", f)
			}
			kind = raster.MoveTo
			continue
		case "l":
			if len(nums) != 0 {
				return nil, fmt.Errorf("incomplete segment before %q", f)
			}
			kind = raster.LineTo
			continue
		case "b":
			if len(nums) != 0 {
				return nil, fmt.Errorf("incomplete segment before %q", f)
			}
			kind = raster.CurveTo
			continue
		case "a":
			if len(nums) != 0 {
				return nil, fmt.Errorf("incomplete segment before %q", f)
			}
			kind = raster.ArcBy
			continue
		case "c":
			if len(nums) != 0 {
				return nil, fmt.Errorf("incomplete segment before %q", f)
			}
			segs = append(segs, raster.Segment{Kind: raster.Close})
			kind = raster.MoveTo
			continue
		}
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid shape number %q", f)
		}
		nums = append(nums, float32(v))
		if len(nums) == shapeArity[kind] {
			segs = append(segs, buildShapeSegment(kind, nums))
			nums = nil
		}
	}
	if len(nums) != 0 {
		return nil, fmt.Errorf("trailing incomplete segment, %d numbers left over", len(nums))
	}
	return segs, nil
}

func buildShapeSegment(kind raster.SegmentKind, nums []float32) raster.Segment {
	switch kind {
	case raster.MoveTo:
		return raster.Segment{Kind: raster.MoveTo, P: raster.Point{X: nums[0], Y: nums[1]}}
	case raster.LineTo:
		return raster.Segment{Kind: raster.LineTo, P: raster.Point{X: nums[0], Y: nums[1]}}
	case raster.CurveTo:
		return raster.Segment{
			Kind: raster.CurveTo,
			C1:   raster.Point{X: nums[0], Y: nums[1]},
			C2:   raster.Point{X: nums[2], Y: nums[3]},
			P:    raster.Point{X: nums[4], Y: nums[5]},
		}
	case raster.ArcBy:
		return raster.Segment{Kind: raster.ArcBy, P: raster.Point{X: nums[0], Y: nums[1]}, Angle: raster.Degree(nums[2])}
	default:
		return raster.Segment{}
	}
}

// lowerTag dispatches one name[=value] tag token to its EventObject
// variant. Mode-affecting tags also update st.mode.
func (st *lowerState) lowerTag(tt ssb.TagToken) (EventObject, error) {
	switch tt.Name {
	case "font":
		return TagFont(tt.Value), nil
	case "size":
		v, err := parseFloat(tt.Value)
		return TagSize(v), st.wrap("size", err)
	case "bold":
		v, err := ssb.ParseBool(tt.Value)
		return TagBold(v), st.wrap("bold", err)
	case "italic":
		v, err := ssb.ParseBool(tt.Value)
		return TagItalic(v), st.wrap("italic", err)
	case "underline":
		v, err := ssb.ParseBool(tt.Value)
		return TagUnderline(v), st.wrap("underline", err)
	case "strikeout":
		v, err := ssb.ParseBool(tt.Value)
		return TagStrikeout(v), st.wrap("strikeout", err)
	case "position":
		return st.lowerPosition(tt.Value)
	case "alignment":
		return st.lowerAlignment(tt.Value)
	case "margin":
		return st.lowerMargin(tt.Value)
	case "margin-top":
		return st.lowerMarginSide(SideTop, tt.Value)
	case "margin-right":
		return st.lowerMarginSide(SideRight, tt.Value)
	case "margin-bottom":
		return st.lowerMarginSide(SideBottom, tt.Value)
	case "margin-left":
		return st.lowerMarginSide(SideLeft, tt.Value)
	case "wrap-style":
		return st.lowerWrapStyle(tt.Value)
	case "direction":
		return st.lowerDirection(tt.Value)
	case "space":
		m, err := st.lowerAxisPairRaw(tt.Value, Axis2HAll)
		return TagSpace(m), err
	case "space-h":
		m, err := st.lowerAxisPairSingleRaw(tt.Value, Axis2HHorizontal)
		return TagSpace(m), err
	case "space-v":
		m, err := st.lowerAxisPairSingleRaw(tt.Value, Axis2HVertical)
		return TagSpace(m), err
	case "rotate":
		return st.lowerRotate3(Axis3All, tt.Value)
	case "rotate-x":
		return st.lowerRotate3Single(Axis3X, tt.Value)
	case "rotate-y":
		return st.lowerRotate3Single(Axis3Y, tt.Value)
	case "rotate-z":
		return st.lowerRotate3Single(Axis3Z, tt.Value)
	case "scale":
		return st.lowerScaleTranslate3(Axis3All, tt.Value, true)
	case "scale-x":
		return st.lowerScaleTranslate3Single(Axis3X, tt.Value, true)
	case "scale-y":
		return st.lowerScaleTranslate3Single(Axis3Y, tt.Value, true)
	case "scale-z":
		return st.lowerScaleTranslate3Single(Axis3Z, tt.Value, true)
	case "translate":
		return st.lowerScaleTranslate3(Axis3All, tt.Value, false)
	case "translate-x":
		return st.lowerScaleTranslate3Single(Axis3X, tt.Value, false)
	case "translate-y":
		return st.lowerScaleTranslate3Single(Axis3Y, tt.Value, false)
	case "translate-z":
		return st.lowerScaleTranslate3Single(Axis3Z, tt.Value, false)
	case "shear":
		return st.lowerShear(Axis2All, tt.Value)
	case "shear-x":
		return st.lowerShearSingle(Axis2X, tt.Value)
	case "shear-y":
		return st.lowerShearSingle(Axis2Y, tt.Value)
	case "matrix":
		return st.lowerMatrix(tt.Value)
	case "mode":
		return st.lowerMode(tt.Value)
	case "border":
		m, err := st.lowerAxisPairRaw(tt.Value, Axis2HAll)
		return TagBorder(m), err
	case "border-h":
		m, err := st.lowerAxisPairSingleRaw(tt.Value, Axis2HHorizontal)
		return TagBorder(m), err
	case "border-v":
		m, err := st.lowerAxisPairSingleRaw(tt.Value, Axis2HVertical)
		return TagBorder(m), err
	case "join":
		return st.lowerJoin(tt.Value)
	case "cap":
		return st.lowerCap(tt.Value)
	case "texture":
		return TagTexture(tt.Value), nil
	case "texfill":
		return st.lowerTexFill(tt.Value)
	case "color":
		c, err := st.lowerColor(tt.Value)
		return TagColor(c), err
	case "bordercolor":
		c, err := st.lowerColor(tt.Value)
		return TagBorderColor(c), err
	case "alpha":
		a, err := st.lowerAlpha(tt.Value)
		return TagAlpha(a), err
	case "borderalpha":
		a, err := st.lowerAlpha(tt.Value)
		return TagBorderAlpha(a), err
	case "blur":
		m, err := st.lowerAxisPairRaw(tt.Value, Axis2HAll)
		return TagBlur(m), err
	case "blur-h":
		m, err := st.lowerAxisPairSingleRaw(tt.Value, Axis2HHorizontal)
		return TagBlur(m), err
	case "blur-v":
		m, err := st.lowerAxisPairSingleRaw(tt.Value, Axis2HVertical)
		return TagBlur(m), err
	case "blend":
		return st.lowerBlend(tt.Value)
	case "target":
		return st.lowerTarget(tt.Value)
	case "mask-mode":
		return st.lowerMaskMode(tt.Value)
	case "mask-clear":
		return TagMaskClear{}, nil
	case "animate":
		return st.lowerAnimate(tt.Value)
	case "k":
		n, err := strconv.ParseUint(tt.Value, 10, 32)
		return TagKaraoke(n), st.wrap("k", err)
	case "kset":
		n, err := strconv.ParseInt(tt.Value, 10, 32)
		return TagKaraokeSet(n), st.wrap("kset", err)
	case "kcolor":
		rgb, err := ssb.ParseColor(tt.Value)
		return TagKaraokeColor(rgb), err
	default:
		return nil, st.errf("unknown tag %q", tt.Name)
	}
}

func (st *lowerState) wrap(tag string, err error) error {
	if err == nil {
		return nil
	}
	return st.errf("%s: %v", tag, err)
}

func parseFloat(s string) (float32, error) {
	v, err := strconv.ParseFloat(s, 32)
	return float32(v), err
}

func splitFloats(s string, n int) ([]float32, error) {
	fields := strings.Split(s, ",")
	if len(fields) != n {
		return nil, fmt.Errorf("want %d comma-separated values, got %d", n, len(fields))
	}
	out := make([]float32, n)
	for i, f := range fields {
		v, err := parseFloat(strings.TrimSpace(f))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (st *lowerState) lowerPosition(value string) (EventObject, error) {
	fields := strings.Split(value, ",")
	if len(fields) != 2 && len(fields) != 3 {
		return nil, st.errf("position: want 2 or 3 comma-separated values, got %d", len(fields))
	}
	var p raster.Point3D
	x, err := parseFloat(strings.TrimSpace(fields[0]))
	if err != nil {
		return nil, st.errf("position: %v", err)
	}
	y, err := parseFloat(strings.TrimSpace(fields[1]))
	if err != nil {
		return nil, st.errf("position: %v", err)
	}
	p.X, p.Y = x, y
	if len(fields) == 3 {
		z, err := parseFloat(strings.TrimSpace(fields[2]))
		if err != nil {
			return nil, st.errf("position: %v", err)
		}
		p.Z = z
	}
	return TagPosition(p), nil
}

func (st *lowerState) lowerAlignment(value string) (EventObject, error) {
	if !strings.Contains(value, ",") {
		digit, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil, st.errf("alignment: %v", err)
		}
		n, ok := NumpadFromDigit(digit)
		if !ok {
			return nil, st.errf("alignment: %d is not a numpad digit 1-9", digit)
		}
		return TagAlignment{Numpad: n}, nil
	}
	vals, err := splitFloats(value, 2)
	if err != nil {
		return nil, st.errf("alignment: %v", err)
	}
	return TagAlignment{IsOffset: true, Offset: raster.Point{X: vals[0], Y: vals[1]}}, nil
}

func (st *lowerState) lowerMargin(value string) (EventObject, error) {
	if !strings.Contains(value, ",") {
		v, err := parseFloat(strings.TrimSpace(value))
		if err != nil {
			return nil, st.errf("margin: %v", err)
		}
		return TagMargin{Side: SideAll, All: [4]float32{v, v, v, v}}, nil
	}
	vals, err := splitFloats(value, 4)
	if err != nil {
		return nil, st.errf("margin: %v", err)
	}
	return TagMargin{Side: SideAll, All: [4]float32{vals[0], vals[1], vals[2], vals[3]}}, nil
}

func (st *lowerState) lowerMarginSide(side Side, value string) (EventObject, error) {
	v, err := parseFloat(strings.TrimSpace(value))
	if err != nil {
		return nil, st.errf("margin side: %v", err)
	}
	return TagMargin{Side: side, Value: v}, nil
}

func (st *lowerState) lowerWrapStyle(value string) (EventObject, error) {
	switch value {
	case "space":
		return TagWrapStyle(WrapSpace), nil
	case "character":
		return TagWrapStyle(WrapCharacter), nil
	case "nowrap":
		return TagWrapStyle(WrapNone), nil
	default:
		return nil, st.errf("wrap-style: unknown literal %q", value)
	}
}

func (st *lowerState) lowerDirection(value string) (EventObject, error) {
	switch value {
	case "ltr":
		return TagDirection(DirectionLTR), nil
	case "rtl":
		return TagDirection(DirectionRTL), nil
	case "ttb":
		return TagDirection(DirectionTTB), nil
	case "btt":
		return TagDirection(DirectionBTT), nil
	default:
		return nil, st.errf("direction: unknown literal %q", value)
	}
}

func (st *lowerState) lowerAxisPairRaw(value string, axis Axis2H) (AxisPair, error) {
	if !strings.Contains(value, ",") {
		v, err := parseFloat(strings.TrimSpace(value))
		if err != nil {
			return AxisPair{}, st.errf("%v", err)
		}
		return AxisPair{Axis: axis, X: v, Y: v}, nil
	}
	vals, err := splitFloats(value, 2)
	if err != nil {
		return AxisPair{}, st.errf("%v", err)
	}
	return AxisPair{Axis: axis, X: vals[0], Y: vals[1]}, nil
}

func (st *lowerState) lowerAxisPairSingleRaw(value string, axis Axis2H) (AxisPair, error) {
	v, err := parseFloat(strings.TrimSpace(value))
	if err != nil {
		return AxisPair{}, st.errf("%v", err)
	}
	return AxisPair{Axis: axis, Single: v}, nil
}

func (st *lowerState) lowerRotate3(axis Axis3, value string) (EventObject, error) {
	vals, err := splitFloats(value, 3)
	if err != nil {
		return nil, st.errf("rotate: %v", err)
	}
	return TagRotate{Axis: axis, X: raster.Degree(vals[0]), Y: raster.Degree(vals[1]), Z: raster.Degree(vals[2])}, nil
}

func (st *lowerState) lowerRotate3Single(axis Axis3, value string) (EventObject, error) {
	v, err := parseFloat(strings.TrimSpace(value))
	if err != nil {
		return nil, st.errf("rotate axis: %v", err)
	}
	r := TagRotate{Axis: axis}
	setAxis3(&r.X, &r.Y, &r.Z, axis, raster.Degree(v))
	return r, nil
}

func setAxis3(x, y, z *raster.Degree, axis Axis3, v raster.Degree) {
	switch axis {
	case Axis3X:
		*x = v
	case Axis3Y:
		*y = v
	case Axis3Z:
		*z = v
	}
}

// lowerScaleTranslate3 parses the plain (x,y,z) form shared by scale and
// translate; isScale selects TagScale over TagTranslate and the error
// message's tag name.
func (st *lowerState) lowerScaleTranslate3(axis Axis3, value string, isScale bool) (EventObject, error) {
	vals, err := splitFloats(value, 3)
	if err != nil {
		return nil, st.errf("%s: %v", scaleOrTranslate(isScale), err)
	}
	r := Rotate3{Axis: axis, X: raster.Degree(vals[0]), Y: raster.Degree(vals[1]), Z: raster.Degree(vals[2])}
	if isScale {
		return TagScale(r), nil
	}
	return TagTranslate(r), nil
}

func (st *lowerState) lowerScaleTranslate3Single(axis Axis3, value string, isScale bool) (EventObject, error) {
	v, err := parseFloat(strings.TrimSpace(value))
	if err != nil {
		return nil, st.errf("%s axis: %v", scaleOrTranslate(isScale), err)
	}
	r := Rotate3{Axis: axis}
	setAxis3(&r.X, &r.Y, &r.Z, axis, raster.Degree(v))
	if isScale {
		return TagScale(r), nil
	}
	return TagTranslate(r), nil
}

func scaleOrTranslate(isScale bool) string {
	if isScale {
		return "scale"
	}
	return "translate"
}

func (st *lowerState) lowerShear(axis Axis2, value string) (EventObject, error) {
	vals, err := splitFloats(value, 2)
	if err != nil {
		return nil, st.errf("shear: %v", err)
	}
	return TagShear{Axis: axis, X: raster.Degree(vals[0]), Y: raster.Degree(vals[1])}, nil
}

func (st *lowerState) lowerShearSingle(axis Axis2, value string) (EventObject, error) {
	v, err := parseFloat(strings.TrimSpace(value))
	if err != nil {
		return nil, st.errf("shear axis: %v", err)
	}
	s := Shear2{Axis: axis}
	switch axis {
	case Axis2X:
		s.X = raster.Degree(v)
	case Axis2Y:
		s.Y = raster.Degree(v)
	}
	return TagShear(s), nil
}

func (st *lowerState) lowerMatrix(value string) (EventObject, error) {
	vals, err := splitFloats(value, 16)
	if err != nil {
		return nil, st.errf("matrix: %v", err)
	}
	var m raster.Matrix
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			m[row][col] = float64(vals[row*4+col])
		}
	}
	return TagMatrix(m), nil
}

func (st *lowerState) lowerMode(value string) (EventObject, error) {
	switch value {
	case "text":
		st.mode = ModeText
		return TagMode(ModeText), nil
	case "points":
		st.mode = ModePoints
		return TagMode(ModePoints), nil
	case "shape":
		st.mode = ModeShape
		return TagMode(ModeShape), nil
	default:
		return nil, st.errf("mode: unknown literal %q", value)
	}
}

func (st *lowerState) lowerJoin(value string) (EventObject, error) {
	switch value {
	case "round":
		return TagJoin(graphics.LineJoinRound), nil
	case "bevel":
		return TagJoin(graphics.LineJoinBevel), nil
	case "miter":
		return TagJoin(graphics.LineJoinMiter), nil
	default:
		return nil, st.errf("join: unknown literal %q", value)
	}
}

func (st *lowerState) lowerCap(value string) (EventObject, error) {
	switch value {
	case "round":
		return TagCap(graphics.LineCapRound), nil
	case "butt":
		return TagCap(graphics.LineCapButt), nil
	case "square":
		return TagCap(graphics.LineCapSquare), nil
	default:
		return nil, st.errf("cap: unknown literal %q", value)
	}
}

func (st *lowerState) lowerTexFill(value string) (EventObject, error) {
	fields := strings.Split(value, ",")
	if len(fields) != 5 {
		return nil, st.errf("texfill: want 5 comma-separated fields, got %d", len(fields))
	}
	vals, err := splitFloats(strings.Join(fields[:4], ","), 4)
	if err != nil {
		return nil, st.errf("texfill: %v", err)
	}
	var wrap TextureWrap
	switch strings.TrimSpace(fields[4]) {
	case "pad":
		wrap = TextureWrapPad
	case "clamp":
		wrap = TextureWrapClamp
	case "repeat":
		wrap = TextureWrapRepeat
	case "mirror":
		wrap = TextureWrapMirror
	default:
		return nil, st.errf("texfill: unknown wrap literal %q", fields[4])
	}
	return TagTexFill{
		X0:   raster.Degree(vals[0]),
		Y0:   raster.Degree(vals[1]),
		X1:   raster.Degree(vals[2]),
		Y1:   raster.Degree(vals[3]),
		Wrap: wrap,
	}, nil
}

// colorShapeForCount maps the number of RRGGBB (or alpha) tokens in a
// color/alpha tag value to the gradient shape it describes.
func colorShapeForCount(n int) (ColorShape, error) {
	switch n {
	case 1:
		return ColorMono, nil
	case 2:
		return ColorLinear, nil
	case 3:
		return ColorLinearWithStop, nil
	case 4:
		return ColorCorners, nil
	case 5:
		return ColorCornersWithStop, nil
	default:
		return 0, fmt.Errorf("%d is not a valid color/alpha token count (want 1-5)", n)
	}
}

func (st *lowerState) lowerColor(value string) (Color, error) {
	fields := strings.Split(value, ",")
	shape, err := colorShapeForCount(len(fields))
	if err != nil {
		return Color{}, st.errf("color: %v", err)
	}
	var c Color
	c.Shape = shape
	for i, f := range fields {
		rgb, err := ssb.ParseColor(strings.TrimSpace(f))
		if err != nil {
			return Color{}, st.errf("color: %v", err)
		}
		c.RGB[i] = rgb
	}
	return c, nil
}

func (st *lowerState) lowerAlpha(value string) (Alpha, error) {
	fields := strings.Split(value, ",")
	shape, err := colorShapeForCount(len(fields))
	if err != nil {
		return Alpha{}, st.errf("alpha: %v", err)
	}
	var a Alpha
	a.Shape = shape
	for i, f := range fields {
		v, err := ssb.ParseAlpha(strings.TrimSpace(f))
		if err != nil {
			return Alpha{}, st.errf("alpha: %v", err)
		}
		a.A[i] = v
	}
	return a, nil
}

func (st *lowerState) lowerBlend(value string) (EventObject, error) {
	switch value {
	case "add":
		return TagBlend(BlendAdd), nil
	case "subtract":
		return TagBlend(BlendSubtract), nil
	case "multiply":
		return TagBlend(BlendMultiply), nil
	case "invert":
		return TagBlend(BlendInvert), nil
	case "difference":
		return TagBlend(BlendDifference), nil
	case "screen":
		return TagBlend(BlendScreen), nil
	default:
		return nil, st.errf("blend: unknown literal %q", value)
	}
}

func (st *lowerState) lowerTarget(value string) (EventObject, error) {
	switch value {
	case "frame":
		return TagTarget(TargetFrame), nil
	case "mask":
		return TagTarget(TargetMask), nil
	default:
		return nil, st.errf("target: unknown literal %q", value)
	}
}

func (st *lowerState) lowerMaskMode(value string) (EventObject, error) {
	switch value {
	case "normal":
		return TagMaskMode(MaskModeNormal), nil
	case "invert":
		return TagMaskMode(MaskModeInvert), nil
	default:
		return nil, st.errf("mask-mode: unknown literal %q", value)
	}
}

// lowerAnimate parses the animate tag value grammar
// [time-start,time-end,][formula,]<tag-body>, where <tag-body> is itself a
// bracketed, semicolon-separated tag group tokenized recursively.
func (st *lowerState) lowerAnimate(value string) (EventObject, error) {
	parts := splitTopLevel(value, ',')
	var a Animate
	switch len(parts) {
	case 1:
	case 2:
		a.HasFormula = true
		a.Formula = parts[0]
		parts = parts[1:]
	case 3:
		start, end, err := parseAnimateWindow(parts[0], parts[1])
		if err != nil {
			return nil, st.errf("animate: %v", err)
		}
		a.HasTime, a.TimeStart, a.TimeEnd = true, start, end
		parts = parts[2:]
	case 4:
		start, end, err := parseAnimateWindow(parts[0], parts[1])
		if err != nil {
			return nil, st.errf("animate: %v", err)
		}
		a.HasTime, a.TimeStart, a.TimeEnd = true, start, end
		a.HasFormula = true
		a.Formula = parts[2]
		parts = parts[3:]
	default:
		return nil, st.errf("animate: %d comma-separated fields is not a valid animate value", len(parts))
	}

	body := strings.TrimSpace(parts[0])
	body = strings.TrimPrefix(body, "[")
	body = strings.TrimSuffix(body, "]")

	tags, err := st.tokenizeTagBody(body)
	if err != nil {
		return nil, err
	}
	a.Tags = tags
	return TagAnimate(a), nil
}

// tokenizeTagBody lowers a nested tag-body (the inner text of an animate
// value's trailing bracket group) the same way a top-level tag group's body
// is lowered; a nested mode tag updates st.mode just as a top-level one
// does.
func (st *lowerState) tokenizeTagBody(body string) ([]EventObject, error) {
	var objects []EventObject
	for _, tt := range ssb.SplitTagBody(body) {
		obj, err := st.lowerTag(tt)
		if err != nil {
			return nil, err
		}
		objects = append(objects, obj)
	}
	return objects, nil
}

func parseAnimateWindow(startStr, endStr string) (int32, int32, error) {
	start, err := strconv.ParseInt(strings.TrimSpace(startStr), 10, 32)
	if err != nil {
		return 0, 0, err
	}
	end, err := strconv.ParseInt(strings.TrimSpace(endStr), 10, 32)
	if err != nil {
		return 0, 0, err
	}
	return int32(start), int32(end), nil
}

// splitTopLevel splits s on sep, ignoring occurrences nested inside
// brackets, mirroring the tag tokenizer's own depth tracking.
func splitTopLevel(s string, sep byte) []string {
	var out []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		case sep:
			if depth == 0 {
				out = append(out, s[start:i])
				start = i + 1
			}
		}
	}
	out = append(out, s[start:])
	return out
}
