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

import "strings"

// Token is one element of a tokenized event body: either a tag group's raw,
// still-escaped inner text (IsTag true) or an already-unescaped geometry
// run (IsTag false).
type Token struct {
	IsTag bool
	Text  string
}

// Tokenizer splits an event body into an alternation of tag groups and
// geometry runs. It is a cursor-holding, forward-only iterator: call Next
// until it reports no more tokens.
type Tokenizer struct {
	s   string
	pos int
}

// NewTokenizer returns a Tokenizer positioned at the start of s.
func NewTokenizer(s string) *Tokenizer {
	return &Tokenizer{s: s}
}

// Next returns the next token and true, or a zero Token and false once the
// input is exhausted.
func (t *Tokenizer) Next() (Token, bool) {
	if t.pos >= len(t.s) {
		return Token{}, false
	}
	if t.s[t.pos] == '[' {
		return t.scanTag(), true
	}
	return t.scanGeometry(), true
}

// scanTag consumes a tag group starting at the opening '[' and returns its
// raw (still-escaped) inner text, ending at the first ']' whose nested-
// bracket depth is zero.
func (t *Tokenizer) scanTag() Token {
	t.pos++ // consume '['
	start := t.pos
	depth := 0
	for t.pos < len(t.s) {
		switch c := t.s[t.pos]; {
		case c == '\\' && t.pos+1 < len(t.s):
			t.pos += 2
		case c == '[':
			depth++
			t.pos++
		case c == ']':
			if depth == 0 {
				text := t.s[start:t.pos]
				t.pos++ // consume ']'
				return Token{IsTag: true, Text: text}
			}
			depth--
			t.pos++
		default:
			t.pos++
		}
	}
	// Unterminated tag group: take the rest of the input as its body.
	return Token{IsTag: true, Text: t.s[start:]}
}

// scanGeometry consumes a geometry run up to the next unescaped '[' (or
// end of input) and returns it with escapes resolved.
func (t *Tokenizer) scanGeometry() Token {
	start := t.pos
	for t.pos < len(t.s) && t.s[t.pos] != '[' {
		if t.s[t.pos] == '\\' && t.pos+1 < len(t.s) {
			t.pos += 2
			continue
		}
		t.pos++
	}
	return Token{IsTag: false, Text: Unescape(t.s[start:t.pos])}
}

// Unescape resolves the four recognized escape sequences (\\, \[, \], \n);
// every other character, including a lone trailing backslash, is copied
// literally.
func Unescape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case '\\':
				b.WriteByte('\\')
			case '[':
				b.WriteByte('[')
			case ']':
				b.WriteByte(']')
			case 'n':
				b.WriteByte('\n')
			default:
				b.WriteByte(s[i])
				b.WriteByte(s[i+1])
			}
			i++
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// TagToken is one name or name=value entry inside a tag group's body.
type TagToken struct {
	Name     string
	Value    string
	HasValue bool
}

// SplitTagBody splits a tag group's raw inner text (as returned by
// Tokenizer for IsTag tokens) on ';' at bracket-depth zero, then each
// resulting entry on the first '=' into name and optional value. Escape
// sequences are resolved in both name and value.
func SplitTagBody(raw string) []TagToken {
	var tokens []TagToken
	depth := 0
	start := 0
	flush := func(end int) {
		entry := raw[start:end]
		if entry == "" {
			return
		}
		tokens = append(tokens, splitTagEntry(entry))
	}
	i := 0
	for i < len(raw) {
		switch c := raw[i]; {
		case c == '\\' && i+1 < len(raw):
			i += 2
			continue
		case c == '[':
			depth++
		case c == ']':
			if depth > 0 {
				depth--
			}
		case c == ';' && depth == 0:
			flush(i)
			start = i + 1
		}
		i++
	}
	flush(len(raw))
	return tokens
}

func splitTagEntry(entry string) TagToken {
	if idx := strings.IndexByte(entry, '='); idx >= 0 {
		return TagToken{
			Name:     Unescape(entry[:idx]),
			Value:    Unescape(entry[idx+1:]),
			HasValue: true,
		}
	}
	return TagToken{Name: Unescape(entry)}
}
