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
	"strings"
	"testing"

	"github.com/substation-beta/ssb/raster"
	"github.com/substation-beta/ssb/ssb"
)

func lowerOneEvent(t *testing.T, script string) []EventObject {
	t.Helper()
	p := ssb.NewParser()
	if err := p.ParseReader(strings.NewReader(script)); err != nil {
		t.Fatalf("parsing script: %v", err)
	}
	doc, err := Lower(p.Document(), ".")
	if err != nil {
		t.Fatalf("lowering: %v", err)
	}
	if len(doc.Events) != 1 {
		t.Fatalf("got %d events, want 1", len(doc.Events))
	}
	return doc.Events[0].Objects
}

func TestLowerTextGeometryDefaultsToMode(t *testing.T) {
	objs := lowerOneEvent(t, "#Events\n0-1.||| hello")
	if len(objs) != 1 {
		t.Fatalf("got %d objects, want 1: %+v", len(objs), objs)
	}
	if g, ok := objs[0].(GeometryText); !ok || g != " hello" {
		t.Errorf("objs[0] = %+v, want GeometryText(\" hello\")", objs[0])
	}
}

func TestLowerBoldTag(t *testing.T) {
	objs := lowerOneEvent(t, "#Events\n0-1.|||[bold=y]text")
	if len(objs) != 2 {
		t.Fatalf("got %d objects, want 2: %+v", len(objs), objs)
	}
	if b, ok := objs[0].(TagBold); !ok || !bool(b) {
		t.Errorf("objs[0] = %+v, want TagBold(true)", objs[0])
	}
	if g, ok := objs[1].(GeometryText); !ok || g != "text" {
		t.Errorf("objs[1] = %+v, want GeometryText(\"text\")", objs[1])
	}
}

func TestLowerPointsMode(t *testing.T) {
	objs := lowerOneEvent(t, "#Events\n0-1.|||[mode=points]0 0 10 10 20 0")
	if len(objs) != 2 {
		t.Fatalf("got %d objects, want 2: %+v", len(objs), objs)
	}
	pts, ok := objs[1].(GeometryPoints)
	if !ok || len(pts) != 3 {
		t.Fatalf("objs[1] = %+v, want 3 points", objs[1])
	}
	if pts[1].X != 10 || pts[1].Y != 10 {
		t.Errorf("pts[1] = %+v, want (10,10)", pts[1])
	}
}

func TestLowerShapeMode(t *testing.T) {
	objs := lowerOneEvent(t, "#Events\n0-1.|||[mode=shape]m 0 0 l 10 0 l 10 10 c")
	segs, ok := objs[1].(GeometryShape)
	if !ok || len(segs) != 4 {
		t.Fatalf("objs[1] = %+v, want 4 segments", objs[1])
	}
	if segs[0].P.X != 0 || segs[0].P.Y != 0 {
		t.Errorf("segs[0] = %+v", segs[0])
	}
	if segs[3].Kind != raster.Close {
		t.Errorf("segs[3].Kind = %v, want Close", segs[3].Kind)
	}
}

func TestLowerColorGradientShapes(t *testing.T) {
	objs := lowerOneEvent(t, "#Events\n0-1.|||[color=ff0000,00ff00]")
	c, ok := objs[0].(TagColor)
	if !ok || c.Shape != ColorLinear {
		t.Fatalf("objs[0] = %+v, want TagColor{Shape: ColorLinear}", objs[0])
	}
	if c.RGB[0] != [3]byte{0xff, 0, 0} || c.RGB[1] != [3]byte{0, 0xff, 0} {
		t.Errorf("RGB = %+v", c.RGB)
	}
}

func TestLowerPositionWithAndWithoutZ(t *testing.T) {
	objs := lowerOneEvent(t, "#Events\n0-1.|||[position=1,2]")
	p, ok := objs[0].(TagPosition)
	if !ok || p.X != 1 || p.Y != 2 || p.Z != 0 {
		t.Errorf("objs[0] = %+v", objs[0])
	}
}

func TestLowerAlignmentNumpad(t *testing.T) {
	objs := lowerOneEvent(t, "#Events\n0-1.|||[alignment=7]")
	a, ok := objs[0].(TagAlignment)
	if !ok || a.IsOffset || a.Numpad != NumpadTopLeft {
		t.Errorf("objs[0] = %+v, want Numpad(TopLeft)", objs[0])
	}
}

func TestLowerMarginUniformAndPerSide(t *testing.T) {
	objs := lowerOneEvent(t, "#Events\n0-1.|||[margin=5;margin-top=1]")
	m0, ok := objs[0].(TagMargin)
	if !ok || m0.Side != SideAll || m0.All != [4]float32{5, 5, 5, 5} {
		t.Errorf("objs[0] = %+v", objs[0])
	}
	m1, ok := objs[1].(TagMargin)
	if !ok || m1.Side != SideTop || m1.Value != 1 {
		t.Errorf("objs[1] = %+v", objs[1])
	}
}

func TestLowerAnimateWithTimeWindowAndNestedTag(t *testing.T) {
	objs := lowerOneEvent(t, "#Events\n0-1.|||[animate=0,100,[bold=y]]")
	a, ok := objs[0].(TagAnimate)
	if !ok {
		t.Fatalf("objs[0] = %+v, want TagAnimate", objs[0])
	}
	if !a.HasTime || a.TimeStart != 0 || a.TimeEnd != 100 {
		t.Errorf("time window = %+v", a)
	}
	if len(a.Tags) != 1 {
		t.Fatalf("nested tags = %+v, want 1", a.Tags)
	}
	if b, ok := a.Tags[0].(TagBold); !ok || !bool(b) {
		t.Errorf("nested tag = %+v, want TagBold(true)", a.Tags[0])
	}
}

func TestLowerUndefinedMacroReferenceErrors(t *testing.T) {
	p := ssb.NewParser()
	if err := p.ParseReader(strings.NewReader("#Events\n0-1.|||${missing}")); err != nil {
		t.Fatalf("parsing: %v", err)
	}
	if _, err := Lower(p.Document(), "."); err == nil {
		t.Error("expected an error for an undefined macro reference")
	}
}

func TestLowerUnknownTagErrors(t *testing.T) {
	p := ssb.NewParser()
	if err := p.ParseReader(strings.NewReader("#Events\n0-1.|||[bogus=1]")); err != nil {
		t.Fatalf("parsing: %v", err)
	}
	if _, err := Lower(p.Document(), "."); err == nil {
		t.Error("expected an error for an unknown tag name")
	}
}
