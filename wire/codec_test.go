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

package wire

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRoundTripHello(t *testing.T) {
	msgs := []Message{
		{
			Header: Header{Type: HelloMessage, VTime: 0x38, Origin: Addr{10, 0, 0, 1}, TTL: 1, HopCount: 0, Seqno: 42},
			Hello: &Hello{
				Htime:       0x2A,
				Willingness: WillDefault,
				Links: []LinkMessage{
					{LinkType: SymLink, NeighborType: MprNeigh, Addrs: []Addr{{10, 0, 0, 2}, {10, 0, 0, 3}}},
					{LinkType: AsymLink, NeighborType: NotNeigh, Addrs: nil},
				},
			},
		},
	}

	buf, truncated := EncodePacket(7, msgs, 0)
	if truncated {
		t.Fatalf("unexpected truncation with mtu=0 (unbounded)")
	}

	pkt, msgErrs, err := DecodePacket(buf)
	if err != nil {
		t.Fatalf("DecodePacket: %v", err)
	}
	if len(msgErrs) != 0 {
		t.Fatalf("unexpected message errors: %v", msgErrs)
	}
	if pkt.Seqno != 7 {
		t.Fatalf("seqno = %d, want 7", pkt.Seqno)
	}
	if diff := cmp.Diff(msgs, pkt.Messages); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTripTCMIDHNA(t *testing.T) {
	msgs := []Message{
		{
			Header: Header{Type: TCMessage, Origin: Addr{192, 168, 1, 1}, TTL: 255, Seqno: 1},
			TC:     &TC{ANSN: 3, Neighbors: []Addr{{192, 168, 1, 2}, {192, 168, 1, 3}}},
		},
		{
			Header: Header{Type: MIDMessage, Origin: Addr{192, 168, 1, 1}, TTL: 255, Seqno: 2},
			MID:    &MID{Interfaces: []Addr{{192, 168, 2, 1}}},
		},
		{
			Header: Header{Type: HNAMessage, Origin: Addr{192, 168, 1, 1}, TTL: 255, Seqno: 3},
			HNA:    &HNA{Pairs: []HNAPair{{Network: Addr{10, 0, 0, 0}, Netmask: Addr{255, 255, 255, 0}}}},
		},
	}

	buf, _ := EncodePacket(99, msgs, 0)
	pkt, msgErrs, err := DecodePacket(buf)
	if err != nil || len(msgErrs) != 0 {
		t.Fatalf("decode: err=%v msgErrs=%v", err, msgErrs)
	}
	if diff := cmp.Diff(msgs, pkt.Messages); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestUnknownMessagePreservedVerbatim(t *testing.T) {
	msgs := []Message{
		{
			Header: Header{Type: 99, Origin: Addr{1, 1, 1, 1}, TTL: 2, Seqno: 5},
			Other:  &Unknown{Body: []byte{0xDE, 0xAD, 0xBE, 0xEF}},
		},
	}
	buf, _ := EncodePacket(1, msgs, 0)
	pkt, msgErrs, err := DecodePacket(buf)
	if err != nil || len(msgErrs) != 0 {
		t.Fatalf("decode: err=%v msgErrs=%v", err, msgErrs)
	}
	if diff := cmp.Diff(msgs, pkt.Messages); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodePacketTruncatedHeader(t *testing.T) {
	_, _, err := DecodePacket([]byte{0, 1})
	if err == nil {
		t.Fatal("expected error for packet shorter than header")
	}
	de, ok := err.(*DecodeError)
	if !ok || de.Kind != Truncated {
		t.Fatalf("got %v, want Truncated", err)
	}
}

func TestDecodePacketBadLength(t *testing.T) {
	buf := make([]byte, 4)
	buf[0], buf[1] = 0, 200 // claims 200 bytes, datagram is only 4
	_, _, err := DecodePacket(buf)
	if err == nil {
		t.Fatal("expected error for packet_length exceeding datagram size")
	}
	if de, ok := err.(*DecodeError); !ok || de.Kind != BadLength {
		t.Fatalf("got %v, want BadLength", err)
	}
}

func TestDecodePacketSkipsBadMessageButKeepsGood(t *testing.T) {
	good := Message{
		Header: Header{Type: MIDMessage, Origin: Addr{1, 2, 3, 4}, Seqno: 1},
		MID:    &MID{Interfaces: []Addr{{5, 6, 7, 8}}},
	}
	goodEnc := encodeMessage(&good)

	// A TC body whose neighbor list length isn't a multiple of 4.
	badTC := append([]byte{0, 0, 0, 0}, []byte{1, 2, 3}...)
	badHeader := make([]byte, MessageHeaderLen)
	badHeader[0] = TCMessage
	badSize := MessageHeaderLen + len(badTC)
	badHeader[2] = byte(badSize >> 8)
	badHeader[3] = byte(badSize)
	badEnc := append(badHeader, badTC...)

	total := PacketHeaderLen + len(goodEnc) + len(badEnc)
	buf := make([]byte, PacketHeaderLen, total)
	buf[0] = byte(total >> 8)
	buf[1] = byte(total)
	buf = append(buf, goodEnc...)
	buf = append(buf, badEnc...)

	pkt, msgErrs, err := DecodePacket(buf)
	if err != nil {
		t.Fatalf("DecodePacket: %v", err)
	}
	if len(msgErrs) != 1 {
		t.Fatalf("msgErrs = %v, want exactly one", msgErrs)
	}
	if len(pkt.Messages) != 1 {
		t.Fatalf("Messages = %v, want the one good MID", pkt.Messages)
	}
	if diff := cmp.Diff(good, pkt.Messages[0]); diff != "" {
		t.Fatalf("good message mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodePacketTruncatesDeterministically(t *testing.T) {
	msgs := []Message{
		{Header: Header{Type: MIDMessage, Origin: Addr{1, 1, 1, 1}}, MID: &MID{Interfaces: []Addr{{2, 2, 2, 2}}}},
		{Header: Header{Type: MIDMessage, Origin: Addr{3, 3, 3, 3}}, MID: &MID{Interfaces: []Addr{{4, 4, 4, 4}}}},
	}
	full, _ := EncodePacket(1, msgs, 0)

	buf, truncated := EncodePacket(1, msgs, len(full)-1)
	if !truncated {
		t.Fatal("expected truncation")
	}
	pkt, msgErrs, err := DecodePacket(buf)
	if err != nil || len(msgErrs) != 0 {
		t.Fatalf("decode of truncated packet: err=%v msgErrs=%v", err, msgErrs)
	}
	if len(pkt.Messages) != 1 {
		t.Fatalf("Messages = %d, want 1 after truncation", len(pkt.Messages))
	}
	if diff := cmp.Diff(msgs[0], pkt.Messages[0]); diff != "" {
		t.Fatalf("kept message mismatch (-want +got):\n%s", diff)
	}
}
