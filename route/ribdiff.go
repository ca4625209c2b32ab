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

package route

import (
	"net/netip"

	"github.com/gaissmai/bart"
)

// Op names a RIB operation emitted by Diff (spec.md §4.7's
// transactional commit, P9).
type Op int

const (
	OpAdd Op = iota
	OpDelete
	OpReplace
)

// PendingOp is one operation the caller must issue against the RIB
// through the I/O collaborator.
type PendingOp struct {
	Op    Op
	Entry RouteEntry
}

// Filter evaluates whether a route should be installed; it stands in
// for the policy-filter collaborator of spec.md §6.
type Filter func(RouteEntry) bool

// BuildTrie fills a fresh current trie from a recomputation's emitted
// routes, compared against the previous trie by prefix via a balanced
// routing trie instead of a plain map, per spec.md §4.7/§9.
func BuildTrie(entries []RouteEntry) *bart.Table[RouteEntry] {
	t := &bart.Table[RouteEntry]{}
	for _, e := range entries {
		t.Insert(e.Dest, e)
	}
	return t
}

// Diff compares current against previous, applies filter, and returns
// the RIB operations to issue plus the updated per-prefix accepted map
// (spec.md §4.7's transactional commit):
//
//   - key in previous, not in current: delete, if it had been accepted.
//   - key in current, not in previous: filter; add if accepted.
//   - key in both, nexthop/metric unchanged: keep prior accepted flag.
//   - key in both, nexthop/metric changed: re-filter; replace if the
//     accepted flag is unchanged and true, add/delete if it flipped.
func Diff(current, previous *bart.Table[RouteEntry], accepted map[netip.Prefix]bool, filter Filter) (ops []PendingOp, nextAccepted map[netip.Prefix]bool) {
	nextAccepted = map[netip.Prefix]bool{}

	for prefix, prevEntry := range previous.All() {
		if _, ok := current.Get(prefix); ok {
			continue
		}
		if accepted[prefix] {
			ops = append(ops, PendingOp{Op: OpDelete, Entry: prevEntry})
		}
	}

	for prefix, curEntry := range current.All() {
		prevEntry, existed := previous.Get(prefix)
		if !existed {
			ok := filter(curEntry)
			nextAccepted[prefix] = ok
			if ok {
				ops = append(ops, PendingOp{Op: OpAdd, Entry: curEntry})
			}
			continue
		}

		if curEntry.NextHop == prevEntry.NextHop && curEntry.Metric == prevEntry.Metric {
			nextAccepted[prefix] = accepted[prefix]
			continue
		}

		wasAccepted := accepted[prefix]
		ok := filter(curEntry)
		nextAccepted[prefix] = ok
		switch {
		case ok && wasAccepted:
			ops = append(ops, PendingOp{Op: OpReplace, Entry: curEntry})
		case ok && !wasAccepted:
			ops = append(ops, PendingOp{Op: OpAdd, Entry: curEntry})
		case !ok && wasAccepted:
			ops = append(ops, PendingOp{Op: OpDelete, Entry: prevEntry})
		}
	}

	return ops, nextAccepted
}

// PushRoutes re-runs filter against the current trie without a new SPT
// recomputation (spec.md §4.7's push_routes entry point), emitting
// add/delete ops only where the accepted flag flips.
func PushRoutes(current *bart.Table[RouteEntry], accepted map[netip.Prefix]bool, filter Filter) (ops []PendingOp, nextAccepted map[netip.Prefix]bool) {
	nextAccepted = map[netip.Prefix]bool{}
	for prefix, entry := range current.All() {
		ok := filter(entry)
		nextAccepted[prefix] = ok
		if ok == accepted[prefix] {
			continue
		}
		if ok {
			ops = append(ops, PendingOp{Op: OpAdd, Entry: entry})
		} else {
			ops = append(ops, PendingOp{Op: OpDelete, Entry: entry})
		}
	}
	return ops, nextAccepted
}
