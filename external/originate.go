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

package external

import (
	"net/netip"

	"github.com/netolsr/olsrd/wire"
)

// OriginateHNA builds the HNA message body listing every originated
// prefix (spec.md §4.6). It does not check for an empty set; the caller
// skips emission while no prefix is originated.
func (s *Set) OriginateHNA() *wire.HNA {
	hna := &wire.HNA{}
	for _, p := range s.OriginatedPrefixes() {
		hna.Pairs = append(hna.Pairs, wire.HNAPair{
			Network: prefixToAddr(p),
			Netmask: maskToAddr(p.Bits()),
		})
	}
	return hna
}

func prefixToAddr(p netip.Prefix) wire.Addr {
	return wire.Addr(p.Addr().As4())
}

func maskToAddr(ones int) wire.Addr {
	var m wire.Addr
	for i := 0; i < ones; i++ {
		m[i/8] |= 1 << uint(7-i%8)
	}
	return m
}
