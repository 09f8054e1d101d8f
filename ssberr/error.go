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

// Package ssberr implements the position-tagged, chainable error type used
// throughout the parser, lowering and rendering stages.
package ssberr

import "fmt"

// Kind classifies the cause of an Error for callers that want to branch on
// it without string matching. It is informational only: Error's behavior
// does not depend on Kind.
type Kind int

const (
	// KindLexical marks an unparsable number, timestamp or hex literal.
	KindLexical Kind = iota
	// KindStructural marks an unexpected line, missing field or
	// out-of-order section.
	KindStructural
	// KindSemantic marks an unknown reference, a macro cycle, an
	// inverted time range or an unknown tag/enum literal.
	KindSemantic
	// KindResource marks an I/O or decoding failure while resolving a
	// font or texture resource.
	KindResource
	// KindRuntime marks an invalid color type or plane/array mismatch
	// at render time.
	KindRuntime
)

// Position is a (line, column) location in a script, 1-based.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Error is a chainable, optionally position-tagged error. Display renders
// "msg <line:col>" (position omitted if absent), followed by a newline and
// the wrapped error's own display if present.
type Error struct {
	Kind   Kind
	Msg    string
	Pos    *Position
	Source error
}

// New returns a position-less error of the given kind.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// At returns an error tagged with a (line, column) position.
func At(kind Kind, line, column int, msg string) *Error {
	return &Error{Kind: kind, Msg: msg, Pos: &Position{Line: line, Column: column}}
}

// Wrap returns an error tagged with a position that chains source as its
// cause.
func Wrap(kind Kind, line, column int, msg string, source error) *Error {
	return &Error{Kind: kind, Msg: msg, Pos: &Position{Line: line, Column: column}, Source: source}
}

func (e *Error) Error() string {
	s := e.Msg
	if e.Pos != nil {
		s += " <" + e.Pos.String() + ">"
	}
	if e.Source != nil {
		s += "\n" + e.Source.Error()
	}
	return s
}

// Unwrap exposes the chained cause to errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Source
}

// NotFound reports a reference to an undefined macro.
func NotFound(name string) *Error {
	return &Error{Kind: KindSemantic, Msg: fmt.Sprintf("macro %q not found", name)}
}

// InfiniteLoop reports a macro reference cycle, naming one of the
// participants.
func InfiniteLoop(name string) *Error {
	return &Error{Kind: KindSemantic, Msg: fmt.Sprintf("infinite loop in macro %q", name)}
}
