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
	"sort"

	"github.com/netolsr/olsrd/config"
	"github.com/netolsr/olsrd/wire"
)

// RecomputeAdvertised marks which Neighbors belong to the advertised
// set for the given TC_REDUNDANCY mode (spec.md §4.5) and reports
// whether the set changed since the last call — the signal the
// Topology Manager uses to increment the ANSN (spec.md §3, P5).
func (s *Set) RecomputeAdvertised(mode config.TCRedundancy) (changed bool) {
	for _, nb := range s.neighbors {
		var want bool
		switch mode {
		case config.MprsIn:
			want = nb.IsMPRSelector
		case config.MprsInOut:
			want = nb.IsMPRSelector || nb.IsMPR
		case config.All:
			want = nb.IsSym
		}
		if nb.IsAdvertised != want {
			nb.IsAdvertised = want
			changed = true
		}
	}
	return changed
}

// AdvertisedMainAddrs returns the main addresses of every currently
// advertised Neighbor, sorted for deterministic TC message content.
func (s *Set) AdvertisedMainAddrs() []wire.Addr {
	var out []wire.Addr
	for _, nb := range s.neighbors {
		if nb.IsAdvertised {
			out = append(out, nb.MainAddr)
		}
	}
	sort.Slice(out, func(i, j int) bool { return lessAddr(out[i], out[j]) })
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
