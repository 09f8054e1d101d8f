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
	"regexp"

	"github.com/substation-beta/ssb/ssberr"
)

// macroPattern matches the first "${ident}" inline reference, ident being
// one or more of [A-Za-z0-9_-].
var macroPattern = regexp.MustCompile(`\$\{([A-Za-z0-9_-]+)\}`)

// FlattenMacro resolves name's fully-expanded value into flat, recursing
// through every "${sub}" reference it contains. history tracks the
// in-progress call chain so a reference cycle is reported rather than
// looping forever; flat memoizes already-resolved names so repeated
// references are expanded only once.
func FlattenMacro(name string, history map[string]bool, macros map[string]string, flat map[string]string) error {
	if _, ok := flat[name]; ok {
		return nil
	}
	value, ok := macros[name]
	if !ok {
		return ssberr.NotFound(name)
	}
	if history[name] {
		return ssberr.InfiniteLoop(name)
	}
	history[name] = true

	for {
		loc := macroPattern.FindStringSubmatchIndex(value)
		if loc == nil {
			break
		}
		subName := value[loc[2]:loc[3]]
		if _, ok := flat[subName]; !ok {
			if err := FlattenMacro(subName, history, macros, flat); err != nil {
				return err
			}
		}
		subValue, ok := flat[subName]
		if !ok {
			return ssberr.NotFound(subName)
		}
		value = value[:loc[0]] + subValue + value[loc[1]:]
	}

	flat[name] = value
	return nil
}

// ExpandRefs repeatedly replaces every "${name}" occurrence in body with
// its fully-flattened value, erroring on a reference to an undefined
// macro. Unlike FlattenMacro it does not recurse through flat itself: all
// referenced names must already be present in flat.
func ExpandRefs(body string, flat map[string]string) (string, error) {
	for {
		loc := macroPattern.FindStringSubmatchIndex(body)
		if loc == nil {
			return body, nil
		}
		name := body[loc[2]:loc[3]]
		value, ok := flat[name]
		if !ok {
			return "", ssberr.NotFound(name)
		}
		body = body[:loc[0]] + value + body[loc[1]:]
	}
}
