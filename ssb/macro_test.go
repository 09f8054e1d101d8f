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

package ssb

import (
	"testing"

	"github.com/substation-beta/ssb/ssberr"
)

func TestFlattenMacroSuccess(t *testing.T) {
	macros := map[string]string{
		"a": "Hello ${b} test!",
		"b": "fr${c}",
		"c": "om",
	}
	flat := map[string]string{}
	if err := FlattenMacro("a", map[string]bool{}, macros, flat); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if flat["a"] != "Hello from test!" {
		t.Errorf("flat[a] = %q, want %q", flat["a"], "Hello from test!")
	}
	if flat["b"] != "from" {
		t.Errorf("flat[b] = %q, want %q", flat["b"], "from")
	}
	if flat["c"] != "om" {
		t.Errorf("flat[c] = %q, want %q", flat["c"], "om")
	}
}

func TestFlattenMacroInfiniteLoop(t *testing.T) {
	macros := map[string]string{
		"a": "foo ${b}",
		"b": "${a} bar",
	}
	err := FlattenMacro("a", map[string]bool{}, macros, map[string]string{})
	var se *ssberr.Error
	if err == nil {
		t.Fatal("expected an InfiniteLoop error")
	}
	if se, _ = err.(*ssberr.Error); se == nil || se.Kind != ssberr.KindSemantic {
		t.Errorf("got %v, want a KindSemantic error", err)
	}
}

func TestFlattenMacroNotFound(t *testing.T) {
	err := FlattenMacro("x", map[string]bool{}, map[string]string{}, map[string]string{})
	if err == nil {
		t.Fatal("expected a NotFound error")
	}
}

func TestFlattenMacroAlreadyFlatIsNoOp(t *testing.T) {
	flat := map[string]string{"a": "cached"}
	if err := FlattenMacro("a", map[string]bool{}, map[string]string{}, flat); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if flat["a"] != "cached" {
		t.Errorf("flat[a] = %q, should remain %q", flat["a"], "cached")
	}
}
