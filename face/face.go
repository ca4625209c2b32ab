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

// Package face implements the Face Manager of spec.md §4.3: the
// reception path, the default forwarding algorithm, and per-face HELLO
// and MID origination. It owns the Face collection and delegates every
// socket/interface operation to the IO collaborator (spec.md §6); the
// Face Manager itself never touches a socket.
package face

import (
	"github.com/netolsr/olsrd/ids"
	"github.com/netolsr/olsrd/wire"
)

// IO is the transport collaborator the host implements (spec.md §6's
// table, minus add_route/replace_route/delete_route which belong to
// the Route Manager's own RIB collaborator).
type IO interface {
	EnableAddress(ifName, vifName string, localAddr wire.Addr, localPort uint16, allNodesAddr wire.Addr) error
	DisableAddress(ifName, vifName string, localAddr wire.Addr, localPort uint16) error
	Send(ifName, vifName string, src wire.Addr, sport uint16, dst wire.Addr, dport uint16, payload []byte) error
	GetMTU(ifName string) int
	GetAddresses(ifName, vifName string) []wire.Addr
	IsVifBroadcastCapable(ifName, vifName string) bool
	IsVifMulticastCapable(ifName, vifName string) bool
	GetBroadcastAddress(ifName, vifName string) wire.Addr
}

// Face is one administratively-configured OLSR interface binding.
type Face struct {
	ID           ids.FaceID
	IfName       string
	VifName      string
	LocalAddr    wire.Addr
	LocalPort    uint16
	AllNodesAddr wire.Addr
	AllNodesPort uint16
	Cost         int
	Enabled      bool
	MTU          int

	nextSeqno uint16

	BadPackets       uint64
	BadMessages      uint64
	Duplicates       uint64
	MessagesFromSelf uint64
}

// NextPacketSeqno returns the next outgoing packet sequence number for
// this Face (P1: strictly monotonic per Face, wrapping mod 2^16).
func (f *Face) NextPacketSeqno() uint16 {
	f.nextSeqno++
	return f.nextSeqno
}

type ifVifKey struct{ ifName, vifName string }
