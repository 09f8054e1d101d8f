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

// Package ssb implements the raw SSB document model together with the
// line-oriented parser, the field-level lexical conversions, the macro
// expander and the escape/tag tokenizer that feed it.
package ssb

// Info carries the free-form #Info section: the four well-known fields
// plus any custom key/value pairs, kept in a map (their source order is
// not preserved).
type Info struct {
	Title       string
	Author      string
	Description string
	Version     string
	Custom      map[string]string
}

// ViewMode selects the projection used when interpreting 3-D transforms.
type ViewMode int

const (
	Perspective ViewMode = iota
	Orthogonal
)

// Target carries the #Target section: canvas size, projection depth and
// view mode.
type Target struct {
	Width  uint16
	Height uint16
	Depth  uint16 // default 1000
	View   ViewMode
}

// Trigger selects which events a render call visits: either a named id or
// a Start/End time interval in milliseconds, which a time query matches
// half-open as [Start,End). It is a closed
// two-variant tagged union; use Kind to discriminate.
type Trigger struct {
	Kind  TriggerKind
	ID    string
	Start uint32
	End   uint32
}

// TriggerKind discriminates Trigger's two shapes.
type TriggerKind int

const (
	TriggerID TriggerKind = iota
	TriggerTime
)

// Event is one raw #Events line: a trigger, an optional base macro name, an
// optional note, and the raw (unexpanded) body text together with the
// (line, column) at which the body begins.
type Event struct {
	Trigger Trigger
	Macro   string // empty means no base macro
	Note    string // empty means no note
	Body    string
	Line    int
	Column  int
}

// FontStyle enumerates the four font style combinations addressable by a
// Font resource key.
type FontStyle int

const (
	FontRegular FontStyle = iota
	FontBold
	FontItalic
	FontBoldItalic
)

// FontKey identifies a font resource by family and style.
type FontKey struct {
	Family string
	Style  FontStyle
}

// TextureSource is either an inline byte blob or a URL to be resolved
// against a caller-supplied search path at lowering time.
type TextureSource struct {
	Kind TextureSourceKind
	Data []byte
	URL  string
}

// TextureSourceKind discriminates TextureSource's two shapes.
type TextureSourceKind int

const (
	TextureData TextureSourceKind = iota
	TextureURL
)

// Resources carries the #Resources section: font blobs keyed by
// (family,style), and textures keyed by id.
type Resources struct {
	Fonts    map[FontKey][]byte
	Textures map[string]TextureSource
}

// RawDocument is the structural parse of an SSB script, built line-by-line
// by Parser. It owns all its strings and buffers and is consumed one-way
// by the lowering stage.
type RawDocument struct {
	Info      Info
	Target    Target
	Macros    map[string]string
	Events    []Event
	Resources Resources
}

// NewRawDocument returns an empty document ready for incremental parsing.
func NewRawDocument() *RawDocument {
	return &RawDocument{
		Target: Target{Depth: 1000},
		Info:   Info{Custom: map[string]string{}},
		Macros: map[string]string{},
		Resources: Resources{
			Fonts:    map[FontKey][]byte{},
			Textures: map[string]TextureSource{},
		},
	}
}
