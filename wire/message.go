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

// Addr is the wire representation of an OLSR address: 32-bit IPv4 only,
// per spec.md's Non-goals (no IPv6 in this core).
type Addr [4]byte

// Header is the common 12-byte message header shared by every message
// type (spec.md §4.1).
type Header struct {
	Type     uint8
	VTime    uint8 // 8-bit encoded validity time
	Origin   Addr
	TTL      uint8
	HopCount uint8
	Seqno    uint16
}

// LinkMessage is one Link Code group within a HELLO message: a
// (link_type, neighbor_type) pair plus the neighbor interface addresses
// advertised under it.
type LinkMessage struct {
	LinkType     uint8
	NeighborType uint8
	Addrs        []Addr
}

// Hello is a decoded HELLO message body (spec.md §4.1).
type Hello struct {
	Htime       uint8
	Willingness uint8
	Links       []LinkMessage
}

// TC is a decoded TC message body.
type TC struct {
	ANSN      uint16
	Neighbors []Addr
}

// MID is a decoded MID message body: interface aliases of the
// originator, never including its main address.
type MID struct {
	Interfaces []Addr
}

// HNAPair is one (network, netmask) advertisement inside an HNA message.
type HNAPair struct {
	Network Addr
	Netmask Addr
}

// HNA is a decoded HNA message body.
type HNA struct {
	Pairs []HNAPair
}

// Unknown preserves the raw body of a message type this core does not
// decode, so the Face Manager can still flood it per the default
// forwarding algorithm (spec.md §4.1, §9).
type Unknown struct {
	Body []byte
}

// Message is a decoded wire message: a Header plus exactly one of the
// typed body pointers below, modeled as a tagged sum: the decoder sets
// exactly one of them (spec.md §9's "polymorphic message types" note).
type Message struct {
	Header Header
	Hello  *Hello
	TC     *TC
	MID    *MID
	HNA    *HNA
	Other  *Unknown
}

// Kind returns the message's wire type, independent of which body
// pointer is populated.
func (m *Message) Kind() uint8 {
	return m.Header.Type
}
