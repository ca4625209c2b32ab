/*
 * OLSR routing daemon core. Copyright (C) 2021-present David Coles
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation; either version 2 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License along
 * with this program; if not, write to the Free Software Foundation, Inc.,
 * 51 Franklin Street, Fifth Floor, Boston, MA 02110-1301 USA.
 */

// Package dup implements the Duplicate Set of spec.md §4.2: the
// histogram-based per-(origin, seqno) table that the default forwarding
// algorithm uses to suppress flooding loops.
package dup

import (
	"time"

	"github.com/netolsr/olsrd/ids"
)

// Tuple is one entry of the Duplicate Set, keyed by (Origin, Seqno).
type Tuple struct {
	Origin      [4]byte
	Seqno       uint16
	Faces       map[ids.FaceID]bool
	IsForwarded bool
	Expiry      time.Time
}

type key struct {
	origin [4]byte
	seqno  uint16
}

// Set owns the Duplicate Set. It is driven entirely by the core's event
// loop: Expire must be called on every tick with the current time, and
// nothing here starts its own timer goroutine (spec.md §5's
// single-threaded, cooperative model).
type Set struct {
	tuples map[key]*Tuple
	hold   time.Duration
}

func New(hold time.Duration) *Set {
	return &Set{tuples: map[key]*Tuple{}, hold: hold}
}

// Observe records receipt of a non-HELLO message (origin, seqno) on
// face, and reports whether this copy is a duplicate that MUST NOT be
// processed or forwarded (spec.md §4.2).
//
// A copy is a duplicate iff a tuple already exists and it has either
// been forwarded already, or was previously seen on this same face.
func (s *Set) Observe(now time.Time, origin [4]byte, seqno uint16, face ids.FaceID) (isDuplicate bool) {
	k := key{origin, seqno}
	t, ok := s.tuples[k]
	if !ok {
		s.tuples[k] = &Tuple{
			Origin: origin,
			Seqno:  seqno,
			Faces:  map[ids.FaceID]bool{face: true},
			Expiry: now.Add(s.hold),
		}
		return false
	}

	if t.IsForwarded || t.Faces[face] {
		return true
	}
	t.Faces[face] = true
	return false
}

// MarkForwarded records that the tuple for (origin, seqno) has now been
// flooded, so later copies on any face are rejected as duplicates
// (spec.md P7: forward-once).
func (s *Set) MarkForwarded(origin [4]byte, seqno uint16) {
	if t, ok := s.tuples[key{origin, seqno}]; ok {
		t.IsForwarded = true
	}
}

// Lookup returns the tuple for (origin, seqno), if any.
func (s *Set) Lookup(origin [4]byte, seqno uint16) (*Tuple, bool) {
	t, ok := s.tuples[key{origin, seqno}]
	return t, ok
}

// Expire drops every tuple whose hold time has elapsed as of now.
func (s *Set) Expire(now time.Time) {
	for k, t := range s.tuples {
		if !now.Before(t.Expiry) {
			delete(s.tuples, k)
		}
	}
}

// Len reports the number of live tuples, for introspection/metrics.
func (s *Set) Len() int { return len(s.tuples) }

// Dump returns a snapshot of all tuples (supplement #3: print_databases
// introspection, returned as structs rather than formatted text).
func (s *Set) Dump() []Tuple {
	out := make([]Tuple, 0, len(s.tuples))
	for _, t := range s.tuples {
		out = append(out, *t)
	}
	return out
}
