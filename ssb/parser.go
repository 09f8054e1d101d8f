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
	"bufio"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/substation-beta/ssb/ssberr"
)

// Section identifies the active #-prefixed section while parsing.
type Section int

const (
	SectionNone Section = iota
	SectionInfo
	SectionTarget
	SectionMacros
	SectionEvents
	SectionResources
)

// Parser builds a RawDocument by streaming SSB script text line by line. It
// may be fed input incrementally across multiple ParseReader/ParseLine
// calls before Document is consumed; consumption by the lowering stage is
// one-way.
type Parser struct {
	doc     *RawDocument
	section Section
	line    int
}

// NewParser returns a Parser with an empty document, ready to accept input.
func NewParser() *Parser {
	return &Parser{doc: NewRawDocument()}
}

// Document returns the document built so far.
func (p *Parser) Document() *RawDocument {
	return p.doc
}

// ParseReader reads r line by line (LF-terminated, trailing CR tolerated)
// and feeds each line to ParseLine, stopping at the first error.
func (p *Parser) ParseReader(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if err := p.ParseLine(scanner.Text()); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return ssberr.Wrap(ssberr.KindResource, p.line, 1, "reading script", err)
	}
	return nil
}

// ParseLine parses one line and folds it into the document under
// construction.
func (p *Parser) ParseLine(raw string) error {
	p.line++
	line := strings.TrimSuffix(raw, "\r")
	if line == "" || strings.HasPrefix(line, "//") {
		return nil
	}

	switch line {
	case "#Info":
		p.section = SectionInfo
		return nil
	case "#Target":
		p.section = SectionTarget
		return nil
	case "#Macros":
		p.section = SectionMacros
		return nil
	case "#Events":
		p.section = SectionEvents
		return nil
	case "#Resources":
		p.section = SectionResources
		return nil
	}

	switch p.section {
	case SectionNone:
		return ssberr.At(ssberr.KindStructural, p.line, 1, "no section set")
	case SectionInfo:
		return p.parseInfoLine(line)
	case SectionTarget:
		return p.parseTargetLine(line)
	case SectionMacros:
		return p.parseMacrosLine(line)
	case SectionEvents:
		return p.parseEventsLine(line)
	case SectionResources:
		return p.parseResourcesLine(line)
	default:
		return ssberr.At(ssberr.KindStructural, p.line, 1, "no section set")
	}
}

func (p *Parser) parseInfoLine(line string) error {
	switch {
	case strings.HasPrefix(line, "Title: "):
		p.doc.Info.Title = line[len("Title: "):]
	case strings.HasPrefix(line, "Author: "):
		p.doc.Info.Author = line[len("Author: "):]
	case strings.HasPrefix(line, "Description: "):
		p.doc.Info.Description = line[len("Description: "):]
	case strings.HasPrefix(line, "Version: "):
		p.doc.Info.Version = line[len("Version: "):]
	default:
		key, value, ok := strings.Cut(line, ": ")
		if !ok || key == "" {
			return ssberr.At(ssberr.KindStructural, p.line, 1, fmt.Sprintf("invalid info line %q", line))
		}
		p.doc.Info.Custom[key] = value
	}
	return nil
}

func (p *Parser) parseTargetLine(line string) error {
	switch {
	case strings.HasPrefix(line, "Width: "):
		n, err := strconv.ParseUint(line[len("Width: "):], 10, 16)
		if err != nil {
			return ssberr.Wrap(ssberr.KindLexical, p.line, 1, "invalid target width", err)
		}
		p.doc.Target.Width = uint16(n)
	case strings.HasPrefix(line, "Height: "):
		n, err := strconv.ParseUint(line[len("Height: "):], 10, 16)
		if err != nil {
			return ssberr.Wrap(ssberr.KindLexical, p.line, 1, "invalid target height", err)
		}
		p.doc.Target.Height = uint16(n)
	case strings.HasPrefix(line, "Depth: "):
		n, err := strconv.ParseUint(line[len("Depth: "):], 10, 16)
		if err != nil {
			return ssberr.Wrap(ssberr.KindLexical, p.line, 1, "invalid target depth", err)
		}
		p.doc.Target.Depth = uint16(n)
	case strings.HasPrefix(line, "View: "):
		switch v := line[len("View: "):]; v {
		case "perspective":
			p.doc.Target.View = Perspective
		case "orthogonal":
			p.doc.Target.View = Orthogonal
		default:
			return ssberr.At(ssberr.KindSemantic, p.line, 1, fmt.Sprintf("unknown view mode %q", v))
		}
	default:
		return ssberr.At(ssberr.KindStructural, p.line, 1, fmt.Sprintf("invalid target line %q", line))
	}
	return nil
}

func (p *Parser) parseMacrosLine(line string) error {
	key, value, ok := strings.Cut(line, ": ")
	if !ok || key == "" {
		return ssberr.At(ssberr.KindStructural, p.line, 1, fmt.Sprintf("invalid macro line %q", line))
	}
	p.doc.Macros[key] = value
	return nil
}

func (p *Parser) parseEventsLine(line string) error {
	fields := strings.SplitN(line, "|", 4)
	if len(fields) != 4 {
		return ssberr.At(ssberr.KindStructural, p.line, 1, fmt.Sprintf("event line has %d fields, want 4", len(fields)))
	}

	trigger, err := parseTrigger(fields[0])
	if err != nil {
		kind := ssberr.KindStructural
		var se *ssberr.Error
		if errors.As(err, &se) {
			kind = se.Kind
		}
		return ssberr.Wrap(kind, p.line, 1, "invalid trigger", err)
	}

	column := 1
	for _, f := range fields[:3] {
		column += len(f) + 1
	}

	p.doc.Events = append(p.doc.Events, Event{
		Trigger: trigger,
		Macro:   fields[1],
		Note:    fields[2],
		Body:    fields[3],
		Line:    p.line,
		Column:  column,
	})
	return nil
}

func parseTrigger(field string) (Trigger, error) {
	if len(field) >= 2 && field[0] == '\'' && field[len(field)-1] == '\'' {
		return Trigger{Kind: TriggerID, ID: field[1 : len(field)-1]}, nil
	}
	startStr, endStr, ok := strings.Cut(field, "-")
	if !ok {
		return Trigger{}, fmt.Errorf("%q is neither a quoted id nor a start-end interval", field)
	}
	start, err := ParseTimestamp(startStr)
	if err != nil {
		return Trigger{}, err
	}
	end, err := ParseTimestamp(endStr)
	if err != nil {
		return Trigger{}, err
	}
	if start > end {
		return Trigger{}, ssberr.New(ssberr.KindSemantic, fmt.Sprintf("trigger start %d exceeds end %d", start, end))
	}
	return Trigger{Kind: TriggerTime, Start: start, End: end}, nil
}

func (p *Parser) parseResourcesLine(line string) error {
	switch {
	case strings.HasPrefix(line, "Font: "):
		return p.parseFontLine(line[len("Font: "):])
	case strings.HasPrefix(line, "Texture: "):
		return p.parseTextureLine(line[len("Texture: "):])
	default:
		return ssberr.At(ssberr.KindStructural, p.line, 1, fmt.Sprintf("invalid resource line %q", line))
	}
}

func (p *Parser) parseFontLine(rest string) error {
	fields := strings.SplitN(rest, ",", 3)
	if len(fields) != 3 {
		return ssberr.At(ssberr.KindStructural, p.line, 1, "font resource requires family,style,data")
	}
	style, err := parseFontStyle(fields[1])
	if err != nil {
		return ssberr.At(ssberr.KindSemantic, p.line, 1, err.Error())
	}
	data, err := base64.StdEncoding.DecodeString(fields[2])
	if err != nil {
		return ssberr.Wrap(ssberr.KindResource, p.line, 1, "decoding font data", err)
	}
	p.doc.Resources.Fonts[FontKey{Family: fields[0], Style: style}] = data
	return nil
}

func parseFontStyle(s string) (FontStyle, error) {
	switch s {
	case "regular":
		return FontRegular, nil
	case "bold":
		return FontBold, nil
	case "italic":
		return FontItalic, nil
	case "bold-italic":
		return FontBoldItalic, nil
	default:
		return 0, fmt.Errorf("unknown font style %q", s)
	}
}

func (p *Parser) parseTextureLine(rest string) error {
	fields := strings.SplitN(rest, ",", 3)
	if len(fields) != 3 {
		return ssberr.At(ssberr.KindStructural, p.line, 1, "texture resource requires id,type,payload")
	}
	id, kind, payload := fields[0], fields[1], fields[2]
	switch kind {
	case "data":
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return ssberr.Wrap(ssberr.KindResource, p.line, 1, "decoding texture data", err)
		}
		p.doc.Resources.Textures[id] = TextureSource{Kind: TextureData, Data: data}
	case "url":
		p.doc.Resources.Textures[id] = TextureSource{Kind: TextureURL, URL: payload}
	default:
		return ssberr.At(ssberr.KindSemantic, p.line, 1, fmt.Sprintf("unknown texture source kind %q", kind))
	}
	return nil
}
