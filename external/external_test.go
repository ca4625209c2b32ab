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
	"testing"
	"time"

	"github.com/netolsr/olsrd/wire"
)

func TestProcessHNACreatesLearnedEntry(t *testing.T) {
	s := New()
	now := time.Unix(0, 0)
	lasthop := wire.Addr{10, 0, 0, 2}

	changed := s.ProcessHNA(now, lasthop, 1, 5*time.Second, &wire.HNA{
		Pairs: []wire.HNAPair{{Network: wire.Addr{203, 0, 113, 0}, Netmask: wire.Addr{255, 255, 255, 0}}},
	})
	if !changed {
		t.Fatal("expected change on first HNA")
	}

	winners := s.Winners()
	if len(winners) != 1 {
		t.Fatalf("Winners() = %v, want 1 entry", winners)
	}
	want := netip.MustParsePrefix("203.0.113.0/24")
	if winners[0].Prefix != want {
		t.Fatalf("prefix = %v, want %v", winners[0].Prefix, want)
	}
	if winners[0].Distance != 2 {
		t.Fatalf("distance = %d, want 2 (hopcount+1)", winners[0].Distance)
	}
}

func TestWinnersPicksShortestDistance(t *testing.T) {
	s := New()
	now := time.Unix(0, 0)
	prefix := wire.HNAPair{Network: wire.Addr{203, 0, 113, 0}, Netmask: wire.Addr{255, 255, 255, 0}}

	s.ProcessHNA(now, wire.Addr{10, 0, 0, 2}, 3, 5*time.Second, &wire.HNA{Pairs: []wire.HNAPair{prefix}})
	s.ProcessHNA(now, wire.Addr{10, 0, 0, 3}, 0, 5*time.Second, &wire.HNA{Pairs: []wire.HNAPair{prefix}})

	winners := s.Winners()
	if len(winners) != 1 {
		t.Fatalf("Winners() = %v, want 1", winners)
	}
	if winners[0].LastHop != (wire.Addr{10, 0, 0, 3}) {
		t.Fatalf("winner lasthop = %v, want the shorter-distance one", winners[0].LastHop)
	}
}

func TestOriginateIsNewOnlyOnce(t *testing.T) {
	s := New()
	p := netip.MustParsePrefix("198.51.100.0/24")
	if !s.Originate(p) {
		t.Fatal("expected first Originate to report new")
	}
	if s.Originate(p) {
		t.Fatal("expected second Originate of same prefix to report not-new")
	}
	if len(s.OriginatedPrefixes()) != 1 {
		t.Fatalf("OriginatedPrefixes() = %v, want 1", s.OriginatedPrefixes())
	}
}

func TestOriginateHNARoundTrip(t *testing.T) {
	s := New()
	p := netip.MustParsePrefix("198.51.100.0/24")
	s.Originate(p)

	hna := s.OriginateHNA()
	if len(hna.Pairs) != 1 {
		t.Fatalf("OriginateHNA() pairs = %v, want 1", hna.Pairs)
	}
	if hna.Pairs[0].Network != (wire.Addr{198, 51, 100, 0}) {
		t.Fatalf("network = %v, want 198.51.100.0", hna.Pairs[0].Network)
	}
	if hna.Pairs[0].Netmask != (wire.Addr{255, 255, 255, 0}) {
		t.Fatalf("netmask = %v, want 255.255.255.0", hna.Pairs[0].Netmask)
	}
}

func TestExpireDropsStaleLearned(t *testing.T) {
	s := New()
	t0 := time.Unix(0, 0)
	s.ProcessHNA(t0, wire.Addr{10, 0, 0, 2}, 0, 1*time.Second, &wire.HNA{
		Pairs: []wire.HNAPair{{Network: wire.Addr{203, 0, 113, 0}, Netmask: wire.Addr{255, 255, 255, 0}}},
	})
	if !s.Expire(t0.Add(2 * time.Second)) {
		t.Fatal("expected expiry to report a change")
	}
	if len(s.Winners()) != 0 {
		t.Fatal("expected learned entry to be expired")
	}
}
