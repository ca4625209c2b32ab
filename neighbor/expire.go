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
)

// Expire drops Links, Neighbors, TwoHopLinks and TwoHopNeighbors whose
// hold time has elapsed, and clears MPR-selector flags that have
// expired. It reports whether anything changed, so the caller can
// schedule a route recomputation and an MPR reselection.
func (s *Set) Expire(now time.Time) (changed bool) {
	for id, l := range s.links {
		if !now.Before(l.HoldTime) {
			s.removeLink(id)
			changed = true
		}
	}

	for id, tl := range s.twoHopLinks {
		if !now.Before(tl.HoldTime) {
			s.removeTwoHopLink(id)
			changed = true
		}
	}

	for id, th := range s.twoHops {
		if len(th.TwoHopLinks) == 0 {
			delete(s.twoHopByMain, th.MainAddr)
			delete(s.twoHops, id)
			changed = true
		}
	}

	for id, nb := range s.neighbors {
		if nb.IsMPRSelector && !now.Before(nb.MPRSelectorExpiry) {
			nb.IsMPRSelector = false
			changed = true
		}
		wasSym := nb.IsSym
		nb.IsSym = s.anyLinkSym(nb, now)
		if wasSym != nb.IsSym {
			changed = true
		}
		if len(nb.Links) == 0 {
			delete(s.neighborByMain, nb.MainAddr)
			delete(s.neighbors, id)
			changed = true
		}
	}

	return changed
}

func (s *Set) removeLink(id ids.LinkID) {
	l, ok := s.links[id]
	if !ok {
		return
	}
	delete(s.linkByAddrs, s.linkKey(l.LocalAddr, l.RemoteAddr))
	if nb, ok := s.neighbors[l.NeighborID]; ok {
		delete(nb.Links, id)
	}
	delete(s.links, id)
}

func (s *Set) removeTwoHopLink(id ids.TwoHopLinkID) {
	tl, ok := s.twoHopLinks[id]
	if !ok {
		return
	}
	if nb, ok := s.neighbors[tl.NeighborID]; ok {
		delete(nb.TwoHopLinks, id)
	}
	if th, ok := s.twoHops[tl.TwoHopID]; ok {
		delete(th.TwoHopLinks, id)
	}
	delete(s.twoHopLinks, id)
}
