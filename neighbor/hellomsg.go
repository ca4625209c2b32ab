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
	"time"

	"github.com/netolsr/olsrd/ids"
	"github.com/netolsr/olsrd/wire"
)

// HelloLinkMessages builds the Link Messages for a HELLO originated on
// face, grouping known remotes by (link_type, neighbor_type) per
// spec.md §4.3.
func (s *Set) HelloLinkMessages(now time.Time, face ids.FaceID) []wire.LinkMessage {
	groups := map[[2]uint8][]wire.Addr{}

	for _, l := range s.links {
		if l.FaceID != face {
			continue
		}
		linkType := l.CurrentType(now)
		neighborType := wire.NotNeigh
		if nb, ok := s.neighbors[l.NeighborID]; ok {
			switch {
			case nb.IsMPR:
				neighborType = wire.MprNeigh
			case nb.IsSym:
				neighborType = wire.SymNeigh
			}
		}
		key := [2]uint8{linkType, neighborType}
		groups[key] = append(groups[key], l.RemoteAddr)
	}

	keys := make([][2]uint8, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i][0] != keys[j][0] {
			return keys[i][0] < keys[j][0]
		}
		return keys[i][1] < keys[j][1]
	})

	out := make([]wire.LinkMessage, 0, len(keys))
	for _, k := range keys {
		out = append(out, wire.LinkMessage{LinkType: k[0], NeighborType: k[1], Addrs: groups[k]})
	}
	return out
}
