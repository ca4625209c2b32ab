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

import "github.com/netolsr/olsrd/wire"

// IsMPRSelectorAddr reports whether addr is the remote interface
// address of a link owned by one of our MPR-selector Neighbors, for
// the Face Manager's default forwarding decision (spec.md §4.3).
func (s *Set) IsMPRSelectorAddr(addr wire.Addr) bool {
	for _, l := range s.links {
		if l.RemoteAddr != addr {
			continue
		}
		if nb, ok := s.neighbors[l.NeighborID]; ok && nb.IsMPRSelector {
			return true
		}
	}
	return false
}
