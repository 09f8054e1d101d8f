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
	"fmt"
	"regexp"
	"strconv"

	"github.com/substation-beta/ssb/ssberr"
)

// timestampPattern matches (H:HM:|M:)?(S.)?MS with the bounds spec.md §4.6
// requires: hours 0-2 digits, minutes/seconds/HM 0-2 digits starting 0-5,
// milliseconds 0-3 digits. Groups 1,2 are the two-colon H:HM: form; group 3
// is the one-colon M: form; group 4 is seconds; group 5 is milliseconds.
var timestampPattern = regexp.MustCompile(
	`^(?:(?:(\d{0,2}):([0-5]?\d?):)|(?:([0-5]?\d?):))?(?:([0-5]?\d?)\.)?(\d{0,3})$`,
)

// ParseTimestamp parses an SSB timestamp of the form (H:HM:|M:)?(S.)?MS into
// milliseconds. An empty string parses to 0.
func ParseTimestamp(s string) (uint32, error) {
	if s == "" {
		return 0, nil
	}
	m := timestampPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, ssberr.New(ssberr.KindLexical, fmt.Sprintf("invalid timestamp %q", s))
	}
	hours := atoiOr0(m[1])
	minutes := atoiOr0(m[2])
	if m[3] != "" {
		minutes = atoiOr0(m[3])
	}
	seconds := atoiOr0(m[4])
	millis := atoiOr0(m[5])
	total := uint32(millis) + uint32(seconds)*1000 + uint32(minutes)*60000 + uint32(hours)*3600000
	return total, nil
}

func atoiOr0(s string) int {
	if s == "" {
		return 0
	}
	n, _ := strconv.Atoi(s)
	return n
}

// ParseBool parses an SSB boolean field: exactly "y" or "n".
func ParseBool(s string) (bool, error) {
	switch s {
	case "y":
		return true, nil
	case "n":
		return false, nil
	default:
		return false, ssberr.New(ssberr.KindLexical, fmt.Sprintf("invalid boolean %q", s))
	}
}

// ParseAlpha parses a 1-2 hex digit alpha value into its 8-bit value.
func ParseAlpha(s string) (byte, error) {
	if len(s) == 0 || len(s) >= 3 {
		return 0, ssberr.New(ssberr.KindLexical, fmt.Sprintf("invalid alpha %q", s))
	}
	n, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return 0, ssberr.New(ssberr.KindLexical, fmt.Sprintf("invalid alpha %q", s))
	}
	return byte(n), nil
}

// ParseColor parses a 1-6 hex digit color value into a 24-bit big-endian RGB
// triple.
func ParseColor(s string) ([3]byte, error) {
	var rgb [3]byte
	if len(s) == 0 || len(s) >= 7 {
		return rgb, ssberr.New(ssberr.KindLexical, fmt.Sprintf("invalid color %q", s))
	}
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return rgb, ssberr.New(ssberr.KindLexical, fmt.Sprintf("invalid color %q", s))
	}
	rgb[0] = byte(n >> 16)
	rgb[1] = byte(n >> 8)
	rgb[2] = byte(n)
	return rgb, nil
}
