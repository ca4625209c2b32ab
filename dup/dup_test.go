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

package dup

import (
	"testing"
	"time"

	"github.com/netolsr/olsrd/ids"
)

func TestObserveFirstCopyNotDuplicate(t *testing.T) {
	s := New(30 * time.Second)
	now := time.Unix(0, 0)
	if s.Observe(now, [4]byte{1, 1, 1, 1}, 5, 1) {
		t.Fatal("first copy should not be a duplicate")
	}
}

func TestObserveSameFaceTwiceIsDuplicate(t *testing.T) {
	s := New(30 * time.Second)
	now := time.Unix(0, 0)
	origin := [4]byte{1, 1, 1, 1}
	s.Observe(now, origin, 5, 1)
	if !s.Observe(now, origin, 5, 1) {
		t.Fatal("second copy on same face should be a duplicate")
	}
}

func TestObserveDifferentFaceNotDuplicateUntilForwarded(t *testing.T) {
	s := New(30 * time.Second)
	now := time.Unix(0, 0)
	origin := [4]byte{1, 1, 1, 1}
	s.Observe(now, origin, 5, 1)
	if s.Observe(now, origin, 5, 2) {
		t.Fatal("copy on a different, not-yet-seen face should not be a duplicate")
	}
}

func TestMarkForwardedRejectsLaterCopiesOnAnyFace(t *testing.T) {
	s := New(30 * time.Second)
	now := time.Unix(0, 0)
	origin := [4]byte{1, 1, 1, 1}
	s.Observe(now, origin, 5, 1)
	s.MarkForwarded(origin, 5)
	if !s.Observe(now, origin, 5, 3) {
		t.Fatal("copy after forwarding should be a duplicate even on an unseen face")
	}
}

func TestExpireRemovesStaleTuples(t *testing.T) {
	s := New(10 * time.Second)
	t0 := time.Unix(0, 0)
	origin := [4]byte{1, 1, 1, 1}
	s.Observe(t0, origin, 1, 1)
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
	s.Expire(t0.Add(11 * time.Second))
	if s.Len() != 0 {
		t.Fatalf("Len() = %d, want 0 after expiry", s.Len())
	}
}

func TestIdempotentProcessing(t *testing.T) {
	// P2: processing the same message twice has the same net effect as
	// processing it once — here, the duplicate table gains exactly one
	// tuple regardless of how many times Observe is called for it.
	s := New(30 * time.Second)
	now := time.Unix(0, 0)
	origin := [4]byte{2, 2, 2, 2}
	for i := 0; i < 5; i++ {
		s.Observe(now, origin, 9, ids.FaceID(i%2))
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 tuple for repeated (origin,seqno)", s.Len())
	}
}
