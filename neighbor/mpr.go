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
	"github.com/netolsr/olsrd/ids"
	"github.com/netolsr/olsrd/wire"
)

// SelectMPRs runs the MPR selection algorithm of spec.md §4.4 (RFC 3626
// §8.3.1) and updates every Neighbor's IsMPR flag. It reports whether
// any Neighbor's MPR status changed, and the set of strict two-hop
// neighbors that could not be covered mprCoverage times (normally
// empty; non-empty means the caller should report BadTwoHopCoverage
// per spec.md §7/P3).
func (s *Set) SelectMPRs(mprCoverage int) (changed bool, uncoverable []ids.TwoHopID) {
	if mprCoverage < 1 {
		mprCoverage = 1
	}

	var candidates []ids.NeighborID
	for id, nb := range s.neighbors {
		if nb.IsSym && nb.Willingness != wire.WillNever {
			candidates = append(candidates, id)
		}
	}

	// coveredBy[n2] = set of candidate neighbors reaching it.
	coveredBy := map[ids.TwoHopID]map[ids.NeighborID]bool{}
	for _, nid := range candidates {
		nb := s.neighbors[nid]
		for tlID := range nb.TwoHopLinks {
			tl, ok := s.twoHopLinks[tlID]
			if !ok {
				continue
			}
			if _, ok := s.twoHops[tl.TwoHopID]; !ok {
				continue
			}
			if coveredBy[tl.TwoHopID] == nil {
				coveredBy[tl.TwoHopID] = map[ids.NeighborID]bool{}
			}
			coveredBy[tl.TwoHopID][nid] = true
		}
	}

	mprSet := map[ids.NeighborID]bool{}

	// Step 2: willingness ALWAYS neighbors are always MPRs.
	for _, nid := range candidates {
		if s.neighbors[nid].Willingness == wire.WillAlways {
			mprSet[nid] = true
		}
	}

	// Step 3: n2 reachable through exactly one candidate.
	for n2, coverers := range coveredBy {
		if len(coverers) == 1 {
			for nid := range coverers {
				mprSet[nid] = true
			}
			_ = n2
		}
	}

	coveredCount := func(n2 ids.TwoHopID) int {
		c := 0
		for nid := range coveredBy[n2] {
			if mprSet[nid] {
				c++
			}
		}
		return c
	}

	degree := func(nid ids.NeighborID) int {
		return len(s.neighbors[nid].TwoHopLinks)
	}

	uncovered := func() []ids.TwoHopID {
		var out []ids.TwoHopID
		for n2 := range coveredBy {
			if coveredCount(n2) < mprCoverage {
				out = append(out, n2)
			}
		}
		return out
	}

	for {
		need := uncovered()
		if len(need) == 0 {
			break
		}

		var best ids.NeighborID
		bestR := -1
		found := false
		for _, nid := range candidates {
			if mprSet[nid] {
				continue
			}
			r := 0
			for _, n2 := range need {
				if coveredBy[n2][nid] {
					r++
				}
			}
			if r == 0 {
				continue
			}
			if !found {
				best, bestR, found = nid, r, true
				continue
			}
			bw, nw := s.neighbors[best].Willingness, s.neighbors[nid].Willingness
			switch {
			case nw > bw:
				best, bestR = nid, r
			case nw == bw && r > bestR:
				best, bestR = nid, r
			case nw == bw && r == bestR && degree(nid) > degree(best):
				best = nid
			}
		}

		if !found {
			// No remaining candidate can cover anything left uncovered.
			break
		}
		mprSet[best] = true
	}

	// Step 6: minimize, removing MPRs in increasing willingness order
	// whose removal leaves every n2 still covered mprCoverage times.
	order := make([]ids.NeighborID, 0, len(mprSet))
	for nid := range mprSet {
		order = append(order, nid)
	}
	for i := 0; i < len(order); i++ {
		for j := i + 1; j < len(order); j++ {
			if s.neighbors[order[j]].Willingness < s.neighbors[order[i]].Willingness {
				order[i], order[j] = order[j], order[i]
			}
		}
	}
	for _, nid := range order {
		if s.neighbors[nid].Willingness == wire.WillAlways {
			continue
		}
		delete(mprSet, nid)
		if len(uncovered()) > 0 {
			mprSet[nid] = true
		}
	}

	for n2, coverers := range coveredBy {
		count := 0
		for nid := range coverers {
			if mprSet[nid] {
				count++
			}
		}
		if count < mprCoverage {
			uncoverable = append(uncoverable, n2)
		}
	}

	for _, nid := range candidates {
		nb := s.neighbors[nid]
		want := mprSet[nid]
		if nb.IsMPR != want {
			nb.IsMPR = want
			changed = true
		}
	}
	for id, nb := range s.neighbors {
		if !mprSet[id] && nb.IsMPR && !(nb.IsSym && nb.Willingness != wire.WillNever) {
			nb.IsMPR = false
			changed = true
		}
	}

	return changed, uncoverable
}
