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

// Package renderer drives the token-driven painter over a lowered
// document: it selects the events a query matches and composites their
// geometry into a caller-owned image view.
package renderer

import (
	"fmt"
	"sync"

	"github.com/substation-beta/ssb/ssb"
	"github.com/substation-beta/ssb/ssb/lower"
)

// QueryKind discriminates Query's two shapes, mirroring ssb.TriggerKind.
type QueryKind int

const (
	QueryTime QueryKind = iota
	QueryID
)

// Query selects which events a Render call visits: either a point in time
// (milliseconds) or an event id.
type Query struct {
	Kind   QueryKind
	TimeMS uint32
	ID     string
}

// ByTime returns a Query matching events whose [start,end) trigger window
// contains ms.
func ByTime(ms uint32) Query {
	return Query{Kind: QueryTime, TimeMS: ms}
}

// ByID returns a Query matching the event whose trigger id equals id.
func ByID(id string) Query {
	return Query{Kind: QueryID, ID: id}
}

// matches reports whether an event's trigger is selected by q. A
// time trigger's window is half-open: ms == Start matches, ms == End does
// not.
func (q Query) matches(t ssb.Trigger) bool {
	switch q.Kind {
	case QueryID:
		return t.Kind == ssb.TriggerID && t.ID == q.ID
	default:
		return t.Kind == ssb.TriggerTime && q.TimeMS >= t.Start && q.TimeMS < t.End
	}
}

// Renderer owns a lowered render document and executes the token-driven
// painter against caller-supplied image views.
//
// Render takes an internal mutex, so concurrent callers from multiple
// host threads serialize rather than run in parallel. Higher concurrency
// (rendering distinct frames in parallel) is the host's responsibility,
// achieved by giving each goroutine its own Renderer over the same
// *lower.RenderDocument.
type Renderer struct {
	mu  sync.Mutex
	doc *lower.RenderDocument
}

// New returns a Renderer over the given lowered document. doc is treated
// as read-only for the Renderer's lifetime.
func New(doc *lower.RenderDocument) *Renderer {
	return &Renderer{doc: doc}
}

// Version is the engine's semantic version string, the one a host
// embedding surface would report back to its caller.
const Version = "0.1.0"

// Render paints every event matching q onto view, in document order.
// Rendering is best-effort per event: a token whose interpretation fails
// aborts painting of that event only, not of later events. Render returns
// a non-nil *RenderError (implementing error) naming every failed event's
// trigger when at least one event failed, and nil when all matching
// events painted cleanly. Render blocks if another goroutine is already
// rendering with the same Renderer.
func (r *Renderer) Render(view *ImageView, q Query) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var failures []EventError
	for _, ev := range r.doc.Events {
		if !q.matches(ev.Trigger) {
			continue
		}
		p := newPainter(view, r.doc, ev.Trigger, q)
		if err := p.paint(ev.Objects); err != nil {
			failures = append(failures, EventError{Trigger: ev.Trigger, Err: err})
		}
	}
	if len(failures) == 0 {
		return nil
	}
	return &RenderError{Failures: failures}
}

// EventError pairs one event's trigger with the error that aborted its
// painting.
type EventError struct {
	Trigger ssb.Trigger
	Err     error
}

// RenderError reports that one or more events failed to paint during a
// single best-effort Render call; events not named here painted cleanly.
type RenderError struct {
	Failures []EventError
}

func (e *RenderError) Error() string {
	if len(e.Failures) == 1 {
		return fmt.Sprintf("rendering: 1 event failed: %v", e.Failures[0].Err)
	}
	return fmt.Sprintf("rendering: %d events failed, first: %v", len(e.Failures), e.Failures[0].Err)
}
