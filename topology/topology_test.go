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

package topology

import (
	"testing"
	"time"

	"github.com/netolsr/olsrd/wire"
)

func TestProcessMIDCreatesAliasAndResolves(t *testing.T) {
	s := New()
	now := time.Unix(0, 0)
	main := wire.Addr{10, 0, 0, 1}
	alias := wire.Addr{10, 0, 0, 11}

	changed := s.ProcessMID(now, main, 0, 5*time.Second, &wire.MID{Interfaces: []wire.Addr{alias}})
	if !changed {
		t.Fatal("expected change on first MID")
	}
	if got := s.ResolveMain(alias); got != main {
		t.Fatalf("ResolveMain(%v) = %v, want %v", alias, got, main)
	}
}

func TestProcessTCSupersedesOlderANSN(t *testing.T) {
	s := New()
	now := time.Unix(0, 0)
	origin := wire.Addr{10, 0, 0, 1}
	dest := wire.Addr{10, 0, 0, 2}

	s.ProcessTC(now, origin, 5, 0, 5*time.Second, []wire.Addr{dest})
	entries := s.Entries()
	if len(entries) != 1 || entries[0].ANSN != 5 {
		t.Fatalf("entries = %v, want one entry with ANSN 5", entries)
	}

	// Older ANSN must be rejected.
	s.ProcessTC(now, origin, 3, 0, 5*time.Second, []wire.Addr{dest})
	entries = s.Entries()
	if entries[0].ANSN != 5 {
		t.Fatalf("ANSN regressed to %d, want still 5", entries[0].ANSN)
	}

	// Newer ANSN must replace.
	s.ProcessTC(now, origin, 7, 0, 5*time.Second, []wire.Addr{dest})
	entries = s.Entries()
	if entries[0].ANSN != 7 {
		t.Fatalf("ANSN = %d, want 7 after newer update", entries[0].ANSN)
	}
}

func TestProcessTCRemovesStaleDestinationsOnNewerANSN(t *testing.T) {
	s := New()
	now := time.Unix(0, 0)
	origin := wire.Addr{10, 0, 0, 1}
	d1 := wire.Addr{10, 0, 0, 2}
	d2 := wire.Addr{10, 0, 0, 3}

	s.ProcessTC(now, origin, 1, 0, 5*time.Second, []wire.Addr{d1, d2})
	if len(s.Entries()) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(s.Entries()))
	}

	// Newer ANSN drops d2 since it's no longer advertised.
	s.ProcessTC(now, origin, 2, 0, 5*time.Second, []wire.Addr{d1})
	entries := s.Entries()
	if len(entries) != 1 || entries[0].Dest != d1 {
		t.Fatalf("entries = %v, want only d1 to remain", entries)
	}
}

func TestANSNIncrement(t *testing.T) {
	s := New()
	if s.ANSN() != 0 {
		t.Fatalf("ANSN() = %d, want 0 initially", s.ANSN())
	}
	s.IncrementANSN()
	s.IncrementANSN()
	if s.ANSN() != 2 {
		t.Fatalf("ANSN() = %d, want 2", s.ANSN())
	}
}

func TestExpireDropsStaleEntries(t *testing.T) {
	s := New()
	t0 := time.Unix(0, 0)
	origin := wire.Addr{10, 0, 0, 1}
	s.ProcessMID(t0, origin, 0, 1*time.Second, &wire.MID{Interfaces: []wire.Addr{{10, 0, 0, 9}}})
	s.ProcessTC(t0, origin, 1, 0, 1*time.Second, []wire.Addr{{10, 0, 0, 2}})

	if !s.Expire(t0.Add(2 * time.Second)) {
		t.Fatal("expected expiry to report a change")
	}
	if len(s.MidEntries()) != 0 || len(s.Entries()) != 0 {
		t.Fatal("expected both MID and TC entries to be expired")
	}
}
