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
	"testing"
	"time"

	"github.com/netolsr/olsrd/config"
	"github.com/netolsr/olsrd/ids"
	"github.com/netolsr/olsrd/wire"
)

var noop = func(wire.Addr) bool { return false }

func identity(a wire.Addr) wire.Addr { return a }

func TestProcessHelloCreatesSymNeighbor(t *testing.T) {
	s := New()
	now := time.Unix(0, 0)
	local := wire.Addr{10, 0, 0, 1}
	src := wire.Addr{10, 0, 0, 2}
	hello := &wire.Hello{
		Willingness: wire.WillDefault,
		Links: []wire.LinkMessage{
			{LinkType: wire.SymLink, NeighborType: wire.SymNeigh, Addrs: []wire.Addr{local}},
		},
	}

	changed := s.ProcessHello(now, ids.FaceID(1), local, local, src, 2*time.Second, hello, noop, identity)
	if !changed {
		t.Fatal("expected change on first HELLO")
	}

	nb, ok := s.NeighborByMainAddr(src)
	if !ok {
		t.Fatal("expected neighbor to be created")
	}
	if !nb.IsSym {
		t.Fatal("expected neighbor to be symmetric")
	}
}

func TestProcessHelloTwoHopDiscovery(t *testing.T) {
	s := New()
	now := time.Unix(0, 0)
	local := wire.Addr{10, 0, 0, 1}
	src := wire.Addr{10, 0, 0, 2}
	twoHop := wire.Addr{10, 0, 0, 3}

	hello := &wire.Hello{
		Willingness: wire.WillDefault,
		Links: []wire.LinkMessage{
			{LinkType: wire.SymLink, NeighborType: wire.SymNeigh, Addrs: []wire.Addr{local}},
			{LinkType: wire.SymLink, NeighborType: wire.SymNeigh, Addrs: []wire.Addr{twoHop}},
		},
	}

	s.ProcessHello(now, ids.FaceID(1), local, local, src, 2*time.Second, hello, noop, identity)

	found := false
	for _, th := range s.TwoHopNeighbors() {
		if th.MainAddr == twoHop {
			found = true
		}
	}
	if !found {
		t.Fatal("expected two-hop neighbor to be discovered")
	}
}

func TestMPRSelectorFlag(t *testing.T) {
	s := New()
	now := time.Unix(0, 0)
	local := wire.Addr{10, 0, 0, 1}
	src := wire.Addr{10, 0, 0, 2}

	hello := &wire.Hello{
		Willingness: wire.WillDefault,
		Links: []wire.LinkMessage{
			{LinkType: wire.SymLink, NeighborType: wire.MprNeigh, Addrs: []wire.Addr{local}},
		},
	}
	s.ProcessHello(now, ids.FaceID(1), local, local, src, 2*time.Second, hello, noop, identity)

	nb, _ := s.NeighborByMainAddr(src)
	if !nb.IsMPRSelector {
		t.Fatal("expected MPR-selector flag to be set")
	}
}

// TestMPRCoverAllStrictTwoHop exercises P3: every strict two-hop
// neighbor must be covered by at least MPR_COVERAGE MPRs after
// selection.
func TestMPRCoverAllStrictTwoHop(t *testing.T) {
	s := New()
	now := time.Unix(0, 0)
	local := wire.Addr{10, 0, 0, 1}

	// Two one-hop neighbors, each reaching a disjoint two-hop node, so
	// both must become MPRs to cover everything.
	n1 := wire.Addr{10, 0, 0, 2}
	n2 := wire.Addr{10, 0, 0, 3}
	th1 := wire.Addr{10, 0, 0, 4}
	th2 := wire.Addr{10, 0, 0, 5}

	s.ProcessHello(now, ids.FaceID(1), local, local, n1, 2*time.Second, &wire.Hello{
		Willingness: wire.WillDefault,
		Links: []wire.LinkMessage{
			{LinkType: wire.SymLink, NeighborType: wire.SymNeigh, Addrs: []wire.Addr{local}},
			{LinkType: wire.SymLink, NeighborType: wire.SymNeigh, Addrs: []wire.Addr{th1}},
		},
	}, noop, identity)

	s.ProcessHello(now, ids.FaceID(1), local, local, n2, 2*time.Second, &wire.Hello{
		Willingness: wire.WillDefault,
		Links: []wire.LinkMessage{
			{LinkType: wire.SymLink, NeighborType: wire.SymNeigh, Addrs: []wire.Addr{local}},
			{LinkType: wire.SymLink, NeighborType: wire.SymNeigh, Addrs: []wire.Addr{th2}},
		},
	}, noop, identity)

	_, uncoverable := s.SelectMPRs(1)
	if len(uncoverable) != 0 {
		t.Fatalf("expected full coverage, got uncoverable=%v", uncoverable)
	}

	nb1, _ := s.NeighborByMainAddr(n1)
	nb2, _ := s.NeighborByMainAddr(n2)
	if !nb1.IsMPR || !nb2.IsMPR {
		t.Fatal("expected both neighbors to become MPRs since each uniquely covers a two-hop node")
	}
}

func TestRecomputeAdvertisedMprsIn(t *testing.T) {
	s := New()
	now := time.Unix(0, 0)
	local := wire.Addr{10, 0, 0, 1}
	src := wire.Addr{10, 0, 0, 2}

	s.ProcessHello(now, ids.FaceID(1), local, local, src, 2*time.Second, &wire.Hello{
		Willingness: wire.WillDefault,
		Links: []wire.LinkMessage{
			{LinkType: wire.SymLink, NeighborType: wire.MprNeigh, Addrs: []wire.Addr{local}},
		},
	}, noop, identity)

	changed := s.RecomputeAdvertised(config.MprsIn)
	if !changed {
		t.Fatal("expected advertised set to change")
	}
	addrs := s.AdvertisedMainAddrs()
	if len(addrs) != 1 || addrs[0] != src {
		t.Fatalf("AdvertisedMainAddrs() = %v, want [%v]", addrs, src)
	}
}

func TestExpireRemovesLink(t *testing.T) {
	s := New()
	t0 := time.Unix(0, 0)
	local := wire.Addr{10, 0, 0, 1}
	src := wire.Addr{10, 0, 0, 2}

	s.ProcessHello(t0, ids.FaceID(1), local, local, src, 2*time.Second, &wire.Hello{
		Willingness: wire.WillDefault,
		Links: []wire.LinkMessage{
			{LinkType: wire.SymLink, NeighborType: wire.SymNeigh, Addrs: []wire.Addr{local}},
		},
	}, noop, identity)

	if len(s.Links()) != 1 {
		t.Fatalf("Links() = %d, want 1", len(s.Links()))
	}

	changed := s.Expire(t0.Add(10 * time.Second))
	if !changed {
		t.Fatal("expected expiry to report a change")
	}
	if len(s.Links()) != 0 {
		t.Fatalf("Links() = %d, want 0 after expiry", len(s.Links()))
	}
	if _, ok := s.NeighborByMainAddr(src); ok {
		t.Fatal("expected neighbor to be removed once its last link expired")
	}
}
