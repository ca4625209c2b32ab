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

package neighbor

import (
	"time"

	"github.com/netolsr/olsrd/ids"
	"github.com/netolsr/olsrd/wire"
)

func hasAddr(addrs []wire.Addr, want wire.Addr) bool {
	for _, a := range addrs {
		if a == want {
			return true
		}
	}
	return false
}

// ProcessHello applies one received HELLO to the Link Set, Neighbor Set
// and Two-Hop Set (spec.md §4.4, items 1-4). faceLocalAddr is our own
// interface address on the face the HELLO arrived on; mainAddr is our
// node's main address; isLocalAddr reports whether an address belongs
// to one of our own enabled Faces; resolveMain resolves an interface
// address to its owner's main address via the MID Set, falling back to
// the address itself when unknown.
func (s *Set) ProcessHello(
	now time.Time,
	faceID ids.FaceID,
	faceLocalAddr, mainAddr, src wire.Addr,
	vtime time.Duration,
	hello *wire.Hello,
	isLocalAddr func(wire.Addr) bool,
	resolveMain func(wire.Addr) wire.Addr,
) (changed bool) {
	link := s.getOrCreateLink(faceID, faceLocalAddr, src)
	link.HoldTime = now.Add(vtime)

	weAreSymToSrc := false
	for _, lm := range hello.Links {
		if !hasAddr(lm.Addrs, faceLocalAddr) {
			continue
		}
		switch lm.LinkType {
		case wire.SymLink:
			link.SymTime = now.Add(vtime)
			link.AsymTime = now.Add(vtime)
			weAreSymToSrc = true
		case wire.AsymLink:
			link.AsymTime = now.Add(vtime)
		case wire.LostLink:
			link.LostUntil = now.Add(vtime)
			link.SymTime = time.Time{}
		}
	}

	var nb *Neighbor
	if link.NeighborID == 0 {
		resolved := resolveMain(src)
		if (resolved == wire.Addr{}) {
			resolved = src
		}
		nb = s.getOrCreateNeighbor(resolved)
		link.NeighborID = nb.ID
		nb.Links[link.ID] = true
		changed = true
	} else {
		nb, _ = s.Neighbor(link.NeighborID)
	}
	if nb == nil {
		return changed
	}

	if nb.Willingness != hello.Willingness {
		nb.Willingness = hello.Willingness
		changed = true
	}

	wasSym := nb.IsSym
	nb.IsSym = s.anyLinkSym(nb, now)
	if wasSym != nb.IsSym {
		changed = true
	}

	if weAreSymToSrc {
		for _, lm := range hello.Links {
			if lm.NeighborType == wire.NotNeigh {
				continue
			}
			for _, addr := range lm.Addrs {
				if isLocalAddr(addr) {
					continue
				}
				twoHopMain := resolveMain(addr)
				if (twoHopMain == wire.Addr{}) {
					twoHopMain = addr
				}
				if isLocalAddr(twoHopMain) {
					continue
				}
				if _, ok := s.neighborByMain[twoHopMain]; ok {
					if thID, ok2 := s.twoHopByMain[twoHopMain]; ok2 {
						s.removeTwoHopNeighbor(thID)
						changed = true
					}
					continue
				}
				th := s.getOrCreateTwoHop(twoHopMain)
				tl := s.getOrCreateTwoHopLink(faceID, nb.ID, th.ID)
				tl.HoldTime = now.Add(vtime)
			}
		}
	}

	if hasAddr(addrsOf(hello, wire.MprNeigh), mainAddr) {
		if !nb.IsMPRSelector {
			changed = true
		}
		nb.IsMPRSelector = true
		nb.MPRSelectorExpiry = now.Add(vtime)
	}

	return changed
}

// addrsOf flattens every address advertised under neighborType across
// all link messages of a HELLO.
func addrsOf(hello *wire.Hello, neighborType uint8) []wire.Addr {
	var out []wire.Addr
	for _, lm := range hello.Links {
		if lm.NeighborType == neighborType {
			out = append(out, lm.Addrs...)
		}
	}
	return out
}

func (s *Set) anyLinkSym(nb *Neighbor, now time.Time) bool {
	for lid := range nb.Links {
		l, ok := s.links[lid]
		if !ok {
			continue
		}
		if l.CurrentType(now) == wire.SymLink {
			return true
		}
	}
	return false
}

func (s *Set) getOrCreateLink(faceID ids.FaceID, local, remote wire.Addr) *Link {
	key := s.linkKey(local, remote)
	if id, ok := s.linkByAddrs[key]; ok {
		return s.links[id]
	}
	s.nextLinkID++
	id := s.nextLinkID
	l := &Link{ID: id, FaceID: faceID, LocalAddr: local, RemoteAddr: remote}
	s.links[id] = l
	s.linkByAddrs[key] = id
	return l
}

func (s *Set) getOrCreateNeighbor(main wire.Addr) *Neighbor {
	if id, ok := s.neighborByMain[main]; ok {
		return s.neighbors[id]
	}
	s.nextNeighborID++
	id := s.nextNeighborID
	n := &Neighbor{
		ID:          id,
		MainAddr:    main,
		Links:       map[ids.LinkID]bool{},
		TwoHopLinks: map[ids.TwoHopLinkID]bool{},
	}
	s.neighbors[id] = n
	s.neighborByMain[main] = id
	return n
}

func (s *Set) getOrCreateTwoHop(main wire.Addr) *TwoHopNeighbor {
	if id, ok := s.twoHopByMain[main]; ok {
		return s.twoHops[id]
	}
	s.nextTwoHopID++
	id := s.nextTwoHopID
	n := &TwoHopNeighbor{ID: id, MainAddr: main, IsStrict: true, TwoHopLinks: map[ids.TwoHopLinkID]bool{}}
	s.twoHops[id] = n
	s.twoHopByMain[main] = id
	return n
}

func (s *Set) getOrCreateTwoHopLink(faceID ids.FaceID, neighborID ids.NeighborID, twoHopID ids.TwoHopID) *TwoHopLink {
	for id, tl := range s.twoHopLinks {
		if tl.NeighborID == neighborID && tl.TwoHopID == twoHopID {
			return s.twoHopLinks[id]
		}
	}
	s.nextTwoHopLink++
	id := s.nextTwoHopLink
	tl := &TwoHopLink{ID: id, FaceID: faceID, NeighborID: neighborID, TwoHopID: twoHopID}
	s.twoHopLinks[id] = tl
	nb, ok := s.neighbors[neighborID]
	if ok {
		nb.TwoHopLinks[id] = true
	}
	th, ok := s.twoHops[twoHopID]
	if ok {
		th.TwoHopLinks[id] = true
	}
	return tl
}

func (s *Set) removeTwoHopNeighbor(id ids.TwoHopID) {
	th, ok := s.twoHops[id]
	if !ok {
		return
	}
	for tlID := range th.TwoHopLinks {
		tl, ok := s.twoHopLinks[tlID]
		if !ok {
			continue
		}
		if nb, ok := s.neighbors[tl.NeighborID]; ok {
			delete(nb.TwoHopLinks, tlID)
		}
		delete(s.twoHopLinks, tlID)
	}
	delete(s.twoHopByMain, th.MainAddr)
	delete(s.twoHops, id)
}
