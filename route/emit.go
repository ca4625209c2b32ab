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

	"github.com/netolsr/olsrd/external"
	"github.com/netolsr/olsrd/ids"
	"github.com/netolsr/olsrd/wire"
)

// RouteEntry is one host or prefix route the Route Manager wants
// installed in the RIB.
type RouteEntry struct {
	Dest    netip.Prefix
	NextHop wire.Addr
	Metric  int
	FaceID  ids.FaceID
	FromMID bool
	FromHNA bool
}

func host(addr wire.Addr) netip.Prefix {
	return netip.PrefixFrom(netip.AddrFrom4(addr), 32)
}

// Emit turns an SPT result set, the MID Set's alias lookup, and the
// External Routes winners into the full RouteEntry list of spec.md §4.7
// steps 6-7.
func Emit(results []Result, aliasesOf func(main wire.Addr) []wire.Addr, hnaWinners []*external.Learned) []RouteEntry {
	var out []RouteEntry
	byMain := map[wire.Addr]Result{}

	for _, r := range results {
		byMain[r.Dest] = r

		out = append(out, RouteEntry{Dest: host(r.Dest), NextHop: r.NextHop.RemoteAddr, Metric: r.Metric, FaceID: r.NextHop.FaceID})

		if r.OneHop && r.OneHopLink != (wire.Addr{}) && r.OneHopLink != r.Dest {
			out = append(out, RouteEntry{Dest: host(r.OneHopLink), NextHop: r.NextHop.RemoteAddr, Metric: r.Metric, FaceID: r.NextHop.FaceID})
		}

		for _, alias := range aliasesOf(r.Dest) {
			out = append(out, RouteEntry{Dest: host(alias), NextHop: r.NextHop.RemoteAddr, Metric: r.Metric, FaceID: r.NextHop.FaceID, FromMID: true})
		}
	}

	for _, w := range hnaWinners {
		r, ok := byMain[w.LastHop]
		if !ok {
			continue
		}
		out = append(out, RouteEntry{Dest: w.Prefix, NextHop: r.NextHop.RemoteAddr, Metric: r.Metric, FaceID: r.NextHop.FaceID, FromHNA: true})
	}

	return out
}
