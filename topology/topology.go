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

// Package topology implements the Topology Manager of spec.md §4.5: the
// MID Set (interface aliases of remote nodes) and the TC Set (topology
// tuples advertised by MPR-selected nodes), TC/MID reception, and the
// ANSN counter TC origination uses.
package topology

import (
	"time"

	"github.com/netolsr/olsrd/duptime"
	"github.com/netolsr/olsrd/ids"
	"github.com/netolsr/olsrd/wire"
)

// MidEntry records that IfaceAddr is an alias of MainAddr.
type MidEntry struct {
	ID        ids.MidID
	MainAddr  wire.Addr
	IfaceAddr wire.Addr
	Distance  int
	HoldTime  time.Time
}

// TopologyEntry is one (destination, lasthop) tuple from a TC message.
type TopologyEntry struct {
	ID       ids.TopologyID
	Dest     wire.Addr
	LastHop  wire.Addr
	Distance int
	ANSN     uint16
	HoldTime time.Time
}

type midKey [2]wire.Addr // (main, iface)
type topoKey [2]wire.Addr // (dest, lasthop)

// Set owns the MID Set and TC Set.
type Set struct {
	mids      map[ids.MidID]*MidEntry
	midByKey  map[midKey]ids.MidID
	midIface  map[wire.Addr]wire.Addr // iface addr -> main addr
	nextMidID ids.MidID

	topo       map[ids.TopologyID]*TopologyEntry
	topoByKey  map[topoKey]ids.TopologyID
	nextTopoID ids.TopologyID

	ansn uint16
}

func New() *Set {
	return &Set{
		mids:      map[ids.MidID]*MidEntry{},
		midByKey:  map[midKey]ids.MidID{},
		midIface:  map[wire.Addr]wire.Addr{},
		topo:      map[ids.TopologyID]*TopologyEntry{},
		topoByKey: map[topoKey]ids.TopologyID{},
	}
}

// ResolveMain resolves an interface address to its owner's main address
// via the MID Set; the zero Addr means unknown (callers fall back to
// treating the address as its own main address, per spec.md §4.4).
func (s *Set) ResolveMain(iface wire.Addr) wire.Addr {
	return s.midIface[iface]
}

// ProcessMID applies a received MID message (spec.md §4.5).
func (s *Set) ProcessMID(now time.Time, origin wire.Addr, hopCount uint8, vtime time.Duration, mid *wire.MID) (changed bool) {
	for _, alias := range mid.Interfaces {
		key := midKey{origin, alias}
		if id, ok := s.midByKey[key]; ok {
			e := s.mids[id]
			e.Distance = int(hopCount) + 1
			e.HoldTime = now.Add(vtime)
			s.midIface[alias] = origin
			continue
		}
		s.nextMidID++
		id := s.nextMidID
		s.mids[id] = &MidEntry{ID: id, MainAddr: origin, IfaceAddr: alias, Distance: int(hopCount) + 1, HoldTime: now.Add(vtime)}
		s.midByKey[key] = id
		s.midIface[alias] = origin
		changed = true
	}
	return changed
}

// Aliases returns every known interface alias of main.
func (s *Set) Aliases(main wire.Addr) []wire.Addr {
	var out []wire.Addr
	for _, e := range s.mids {
		if e.MainAddr == main {
			out = append(out, e.IfaceAddr)
		}
	}
	return out
}

// ProcessTC applies a received TC message (spec.md §4.5). It does not
// check the originator itself: the caller must already have established
// that it is a symmetric one-hop neighbor (the core's TC handler drops
// TCs from any other originator before calling this).
func (s *Set) ProcessTC(now time.Time, origin wire.Addr, ansn uint16, hopCount uint8, vtime time.Duration, neighbors []wire.Addr) (changed bool) {
	touched := map[ids.TopologyID]bool{}
	dist := int(hopCount) + 1

	for _, d := range neighbors {
		key := topoKey{d, origin}
		if id, ok := s.topoByKey[key]; ok {
			e := s.topo[id]
			if !duptime.IsOlder(e.ANSN, ansn) {
				// incoming ANSN is not newer: reject per spec.md §4.5.
				touched[id] = true
				continue
			}
			e.ANSN = ansn
			e.Distance = dist
			e.HoldTime = now.Add(vtime)
			touched[id] = true
			changed = true
			continue
		}
		s.nextTopoID++
		id := s.nextTopoID
		s.topo[id] = &TopologyEntry{ID: id, Dest: d, LastHop: origin, Distance: dist, ANSN: ansn, HoldTime: now.Add(vtime)}
		s.topoByKey[key] = id
		touched[id] = true
		changed = true
	}

	for id, e := range s.topo {
		if e.LastHop == origin && !touched[id] && duptime.IsOlder(e.ANSN, ansn) {
			delete(s.topo, id)
			delete(s.topoByKey, topoKey{e.Dest, e.LastHop})
			changed = true
		}
	}

	return changed
}

// Entries returns all live TopologyEntry values, for the Route Manager
// and introspection.
func (s *Set) Entries() []*TopologyEntry {
	out := make([]*TopologyEntry, 0, len(s.topo))
	for _, e := range s.topo {
		out = append(out, e)
	}
	return out
}

// MidEntries returns all live MidEntry values.
func (s *Set) MidEntries() []*MidEntry {
	out := make([]*MidEntry, 0, len(s.mids))
	for _, e := range s.mids {
		out = append(out, e)
	}
	return out
}

// ANSN returns the current Advertised Neighbor Sequence Number.
func (s *Set) ANSN() uint16 { return s.ansn }

// IncrementANSN bumps the ANSN; called whenever the advertised-neighbor
// set changes (spec.md §3, P5).
func (s *Set) IncrementANSN() { s.ansn++ }

// Expire drops MID and TC entries whose hold time has elapsed.
func (s *Set) Expire(now time.Time) (changed bool) {
	for id, e := range s.mids {
		if !now.Before(e.HoldTime) {
			delete(s.mids, id)
			delete(s.midByKey, midKey{e.MainAddr, e.IfaceAddr})
			if s.midIface[e.IfaceAddr] == e.MainAddr {
				delete(s.midIface, e.IfaceAddr)
			}
			changed = true
		}
	}
	for id, e := range s.topo {
		if !now.Before(e.HoldTime) {
			delete(s.topo, id)
			delete(s.topoByKey, topoKey{e.Dest, e.LastHop})
			changed = true
		}
	}
	return changed
}
