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

package face

import (
	"testing"
	"time"

	"github.com/netolsr/olsrd/config"
	"github.com/netolsr/olsrd/dup"
	"github.com/netolsr/olsrd/ids"
	"github.com/netolsr/olsrd/wire"
)

type fakeIO struct {
	mtu  int
	sent [][]byte
}

func (f *fakeIO) EnableAddress(string, string, wire.Addr, uint16, wire.Addr) error { return nil }
func (f *fakeIO) DisableAddress(string, string, wire.Addr, uint16) error           { return nil }
func (f *fakeIO) Send(ifName, vifName string, src wire.Addr, sport uint16, dst wire.Addr, dport uint16, payload []byte) error {
	cp := make([]byte, len(payload))
	copy(cp, payload)
	f.sent = append(f.sent, cp)
	return nil
}
func (f *fakeIO) GetMTU(string) int                            { return f.mtu }
func (f *fakeIO) GetAddresses(string, string) []wire.Addr      { return nil }
func (f *fakeIO) IsVifBroadcastCapable(string, string) bool    { return true }
func (f *fakeIO) IsVifMulticastCapable(string, string) bool    { return false }
func (f *fakeIO) GetBroadcastAddress(string, string) wire.Addr { return wire.Addr{255, 255, 255, 255} }

// TestSingleFaceNoPeersOriginatesHellos is spec.md §8 scenario 1: bring
// up one face with no peers and a 1s HELLO_INTERVAL; after simulating 4
// origination ticks, expect >=2 outgoing HELLO packets.
func TestSingleFaceNoPeersOriginatesHellos(t *testing.T) {
	io := &fakeIO{mtu: 1500}
	m := New(io, nil, nil)
	m.Configure([]config.FaceConfig{{
		IfName: "eth0", VifName: "vif0",
		LocalAddr: wire.Addr{192, 0, 2, 1}, LocalPort: 6698,
		AllNodesAddr: wire.Addr{255, 255, 255, 255}, AllNodesPort: 6698,
	}})

	origin := wire.Addr{192, 0, 2, 1}
	noLinks := func(time.Time, ids.FaceID) []wire.LinkMessage { return nil }

	now := time.Unix(0, 0)
	for i := 0; i < 4; i++ {
		m.OriginateHello(now, origin, wire.WillDefault, time.Second, 2*time.Second, noLinks)
		now = now.Add(time.Second)
	}

	if len(io.sent) < 2 {
		t.Fatalf("sent %d packets, want >= 2", len(io.sent))
	}

	pkt, _, err := wire.DecodePacket(io.sent[0])
	if err != nil {
		t.Fatalf("DecodePacket: %v", err)
	}
	if len(pkt.Messages) != 1 || pkt.Messages[0].Hello == nil {
		t.Fatalf("expected a single HELLO message, got %+v", pkt.Messages)
	}
}

func TestReceiveDropsMessageFromSelf(t *testing.T) {
	io := &fakeIO{mtu: 1500}
	m := New(io, nil, nil)
	m.Configure([]config.FaceConfig{{IfName: "eth0", VifName: "vif0", LocalAddr: wire.Addr{1, 1, 1, 1}}})

	origin := wire.Addr{1, 1, 1, 1}
	buf, _ := wire.EncodePacket(1, []wire.Message{{Header: wire.Header{Type: wire.HelloMessage, Origin: origin, TTL: 1}, Hello: &wire.Hello{}}}, 1500)

	dupSet := dup.New(30 * time.Second)
	called := false
	handlers := []Handler{func(time.Time, wire.Addr, *Face, *wire.Message) bool { called = true; return true }}

	m.Receive(time.Unix(0, 0), "eth0", "vif0", origin, buf, origin, dupSet, func(wire.Addr) bool { return false }, handlers)

	if called {
		t.Fatal("handler should not run for a message from ourselves")
	}
	f, _ := m.Lookup("eth0", "vif0")
	if f.MessagesFromSelf != 1 {
		t.Fatalf("MessagesFromSelf = %d, want 1", f.MessagesFromSelf)
	}
}

func TestReceiveDropsDuplicateAndForwardsOnce(t *testing.T) {
	io := &fakeIO{mtu: 1500}
	m := New(io, nil, nil)
	m.Configure([]config.FaceConfig{
		{IfName: "eth0", VifName: "vif0", LocalAddr: wire.Addr{1, 1, 1, 1}, AllNodesAddr: wire.Addr{255, 255, 255, 255}},
	})

	remoteOrigin := wire.Addr{2, 2, 2, 2}
	src := wire.Addr{3, 3, 3, 3}
	buf, _ := wire.EncodePacket(7, []wire.Message{{Header: wire.Header{Type: wire.TCMessage, Origin: remoteOrigin, TTL: 5}, TC: &wire.TC{}}}, 1500)

	dupSet := dup.New(30 * time.Second)
	hits := 0
	handlers := []Handler{func(time.Time, wire.Addr, *Face, *wire.Message) bool { hits++; return true }}
	isMPRSelector := func(a wire.Addr) bool { return a == src }

	now := time.Unix(0, 0)
	m.Receive(now, "eth0", "vif0", src, buf, wire.Addr{1, 1, 1, 1}, dupSet, isMPRSelector, handlers)
	m.Receive(now, "eth0", "vif0", src, buf, wire.Addr{1, 1, 1, 1}, dupSet, isMPRSelector, handlers)

	if hits != 1 {
		t.Fatalf("handler ran %d times, want exactly 1 (second copy is a duplicate)", hits)
	}
	if len(io.sent) != 1 {
		t.Fatalf("forwarded %d packets, want exactly 1 (forward-once, P7)", len(io.sent))
	}
}
