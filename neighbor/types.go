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

// Package neighbor implements the Neighborhood of spec.md §4.4: the
// Link Set, Neighbor Set and Two-Hop Set, HELLO-driven link sensing,
// and MPR selection. Entities are held in arenas keyed by stable
// numeric ids (spec.md §9) rather than cross-owning pointers.
package neighbor

import (
	"time"

	"github.com/netolsr/olsrd/ids"
	"github.com/netolsr/olsrd/wire"
)

// Link is a LogicalLink: evidence, from HELLOs heard on one Face, of a
// link between one of our interface addresses and a remote interface
// address.
type Link struct {
	ID                    ids.LinkID
	FaceID                ids.FaceID
	LocalAddr, RemoteAddr wire.Addr
	SymTime               time.Time
	AsymTime              time.Time
	HoldTime              time.Time
	LostUntil             time.Time
	NeighborID            ids.NeighborID
}

// CurrentType derives the link's state from its time fields, per
// spec.md §4.4's link-type derivation rule.
func (l *Link) CurrentType(now time.Time) uint8 {
	if now.Before(l.LostUntil) {
		return wire.LostLink
	}
	if now.Before(l.SymTime) {
		return wire.SymLink
	}
	if now.Before(l.AsymTime) {
		return wire.AsymLink
	}
	return wire.UnspecLink
}

// Neighbor is a one-hop Neighbor, keyed by its main address.
type Neighbor struct {
	ID                ids.NeighborID
	MainAddr          wire.Addr
	Willingness       uint8
	IsSym             bool
	IsAdvertised      bool
	IsMPR             bool
	IsMPRSelector     bool
	MPRSelectorExpiry time.Time
	Links             map[ids.LinkID]bool
	TwoHopLinks       map[ids.TwoHopLinkID]bool
}

// TwoHopNeighbor is a node reachable only at radius 2, keyed by its
// main address.
type TwoHopNeighbor struct {
	ID          ids.TwoHopID
	MainAddr    wire.Addr
	IsStrict    bool
	TwoHopLinks map[ids.TwoHopLinkID]bool
}

// TwoHopLink is one piece of HELLO evidence that a TwoHopNeighbor is
// reachable via a given one-hop Neighbor.
type TwoHopLink struct {
	ID         ids.TwoHopLinkID
	FaceID     ids.FaceID
	NeighborID ids.NeighborID
	TwoHopID   ids.TwoHopID
	HoldTime   time.Time
}

// Set owns the Link Set, Neighbor Set and Two-Hop Set.
type Set struct {
	links       map[ids.LinkID]*Link
	linkByAddrs map[[2]wire.Addr]ids.LinkID
	nextLinkID  ids.LinkID

	neighbors     map[ids.NeighborID]*Neighbor
	neighborByMain map[wire.Addr]ids.NeighborID
	nextNeighborID ids.NeighborID

	twoHops       map[ids.TwoHopID]*TwoHopNeighbor
	twoHopByMain  map[wire.Addr]ids.TwoHopID
	nextTwoHopID  ids.TwoHopID

	twoHopLinks    map[ids.TwoHopLinkID]*TwoHopLink
	nextTwoHopLink ids.TwoHopLinkID
}

func New() *Set {
	return &Set{
		links:          map[ids.LinkID]*Link{},
		linkByAddrs:    map[[2]wire.Addr]ids.LinkID{},
		neighbors:      map[ids.NeighborID]*Neighbor{},
		neighborByMain: map[wire.Addr]ids.NeighborID{},
		twoHops:        map[ids.TwoHopID]*TwoHopNeighbor{},
		twoHopByMain:   map[wire.Addr]ids.TwoHopID{},
		twoHopLinks:    map[ids.TwoHopLinkID]*TwoHopLink{},
	}
}

func (s *Set) Link(id ids.LinkID) (*Link, bool) {
	l, ok := s.links[id]
	return l, ok
}

func (s *Set) Neighbor(id ids.NeighborID) (*Neighbor, bool) {
	n, ok := s.neighbors[id]
	return n, ok
}

func (s *Set) NeighborByMainAddr(addr wire.Addr) (*Neighbor, bool) {
	id, ok := s.neighborByMain[addr]
	if !ok {
		return nil, false
	}
	return s.neighbors[id], true
}

func (s *Set) TwoHop(id ids.TwoHopID) (*TwoHopNeighbor, bool) {
	n, ok := s.twoHops[id]
	return n, ok
}

func (s *Set) TwoHopLink(id ids.TwoHopLinkID) (*TwoHopLink, bool) {
	l, ok := s.twoHopLinks[id]
	return l, ok
}

// Links returns all live links, for introspection/metrics.
func (s *Set) Links() []*Link {
	out := make([]*Link, 0, len(s.links))
	for _, l := range s.links {
		out = append(out, l)
	}
	return out
}

// Neighbors returns all live neighbors, for introspection/metrics.
func (s *Set) Neighbors() []*Neighbor {
	out := make([]*Neighbor, 0, len(s.neighbors))
	for _, n := range s.neighbors {
		out = append(out, n)
	}
	return out
}

// TwoHopNeighbors returns all live two-hop neighbors.
func (s *Set) TwoHopNeighbors() []*TwoHopNeighbor {
	out := make([]*TwoHopNeighbor, 0, len(s.twoHops))
	for _, n := range s.twoHops {
		out = append(out, n)
	}
	return out
}

func (s *Set) linkKey(local, remote wire.Addr) [2]wire.Addr { return [2]wire.Addr{local, remote} }
