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

// Package external implements External Routes of spec.md §4.6: the
// learned HNA set (prefixes advertised by other nodes) and the
// originated HNA set (prefixes this node redistributes into OLSR).
package external

import (
	"net/netip"
	"time"

	"github.com/netolsr/olsrd/ids"
	"github.com/netolsr/olsrd/wire"
)

// Learned is one HNA advertisement heard from the network.
type Learned struct {
	ID       ids.ExternalID
	Prefix   netip.Prefix
	LastHop  wire.Addr
	Distance int
	HoldTime time.Time
}

// Originated is a locally redistributed prefix; it never expires.
type Originated struct {
	ID     ids.ExternalID
	Prefix netip.Prefix
}

type learnedKey struct {
	prefix  netip.Prefix
	lasthop wire.Addr
}

// Set owns the learned and originated HNA sets.
type Set struct {
	learned      map[ids.ExternalID]*Learned
	learnedByKey map[learnedKey]ids.ExternalID
	nextID       ids.ExternalID

	originated      map[ids.ExternalID]*Originated
	originatedByKey map[netip.Prefix]ids.ExternalID
}

func New() *Set {
	return &Set{
		learned:         map[ids.ExternalID]*Learned{},
		learnedByKey:    map[learnedKey]ids.ExternalID{},
		originated:      map[ids.ExternalID]*Originated{},
		originatedByKey: map[netip.Prefix]ids.ExternalID{},
	}
}

// maskLen returns the number of leading one-bits in a contiguous
// netmask, or ok=false if the mask isn't contiguous.
func maskLen(mask wire.Addr) (ones int, ok bool) {
	seenZero := false
	for _, b := range mask {
		for i := 7; i >= 0; i-- {
			if b&(1<<uint(i)) != 0 {
				if seenZero {
					return 0, false
				}
				ones++
			} else {
				seenZero = true
			}
		}
	}
	return ones, true
}

func addrToPrefix(network, mask wire.Addr) (netip.Prefix, bool) {
	ones, ok := maskLen(mask)
	if !ok {
		return netip.Prefix{}, false
	}
	addr := netip.AddrFrom4([4]byte(network))
	return netip.PrefixFrom(addr, ones).Masked(), true
}

// ProcessHNA applies a received HNA message (spec.md §4.6).
func (s *Set) ProcessHNA(now time.Time, lasthop wire.Addr, hopCount uint8, vtime time.Duration, hna *wire.HNA) (changed bool) {
	for _, pair := range hna.Pairs {
		prefix, ok := addrToPrefix(pair.Network, pair.Netmask)
		if !ok {
			continue
		}
		key := learnedKey{prefix, lasthop}
		if id, ok := s.learnedByKey[key]; ok {
			e := s.learned[id]
			e.Distance = int(hopCount) + 1
			e.HoldTime = now.Add(vtime)
			continue
		}
		s.nextID++
		id := s.nextID
		s.learned[id] = &Learned{ID: id, Prefix: prefix, LastHop: lasthop, Distance: int(hopCount) + 1, HoldTime: now.Add(vtime)}
		s.learnedByKey[key] = id
		changed = true
	}
	return changed
}

// Winners returns, for every distinct learned prefix, the
// shortest-distance entry (ties broken by lexicographically-smallest
// lasthop), per spec.md §4.6.
func (s *Set) Winners() []*Learned {
	best := map[netip.Prefix]*Learned{}
	for _, e := range s.learned {
		cur, ok := best[e.Prefix]
		if !ok || e.Distance < cur.Distance || (e.Distance == cur.Distance && lessAddr(e.LastHop, cur.LastHop)) {
			best[e.Prefix] = e
		}
	}
	out := make([]*Learned, 0, len(best))
	for _, e := range best {
		out = append(out, e)
	}
	return out
}

func lessAddr(a, b wire.Addr) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// Originate adds prefix to the set redistributed into OLSR. It reports
// whether the prefix is new (the caller may use this to trigger an
// early HNA emission, per spec.md §4.6).
func (s *Set) Originate(prefix netip.Prefix) (isNew bool) {
	if _, ok := s.originatedByKey[prefix]; ok {
		return false
	}
	s.nextID++
	id := s.nextID
	s.originated[id] = &Originated{ID: id, Prefix: prefix}
	s.originatedByKey[prefix] = id
	return true
}

// Withdraw removes prefix from the originated set.
func (s *Set) Withdraw(prefix netip.Prefix) {
	if id, ok := s.originatedByKey[prefix]; ok {
		delete(s.originated, id)
		delete(s.originatedByKey, prefix)
	}
}

// OriginatedPrefixes returns every prefix this node redistributes.
func (s *Set) OriginatedPrefixes() []netip.Prefix {
	out := make([]netip.Prefix, 0, len(s.originated))
	for _, o := range s.originated {
		out = append(out, o.Prefix)
	}
	return out
}

// Expire drops learned entries whose hold time has elapsed.
func (s *Set) Expire(now time.Time) (changed bool) {
	for id, e := range s.learned {
		if !now.Before(e.HoldTime) {
			delete(s.learned, id)
			delete(s.learnedByKey, learnedKey{e.Prefix, e.LastHop})
			changed = true
		}
	}
	return changed
}
