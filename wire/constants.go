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

// Package wire implements the OLSRv1 packet and message encoding of
// RFC 3626, plus the protocol constants the rest of the core shares.
package wire

// Message types (RFC 3626 §3.2, olsr_types.hh MessageTypes). Values
// above HNA are reserved by the RFC for link-quality extensions this
// core does not implement; they still decode as Unknown so a message
// of that type can still be flooded.
const (
	HelloMessage = 1
	TCMessage    = 2
	MIDMessage   = 3
	HNAMessage   = 4
)

// Link types carried in a HELLO Link Message (olsr_types.hh LinkTypes).
const (
	UnspecLink = 0
	AsymLink   = 1
	SymLink    = 2
	LostLink   = 3
)

// Neighbor types carried in a HELLO Link Message (olsr_types.hh NeighborTypes).
const (
	NotNeigh = 0
	SymNeigh = 1
	MprNeigh = 2
)

// Willingness values (RFC 3626 §18.2, olsr_types.hh Willingness).
const (
	WillNever   = 0
	WillLow     = 1
	WillDefault = 3
	WillHigh    = 6
	WillAlways  = 7
	WillMin     = WillLow
	WillMax     = WillAlways
)

// TC_REDUNDANCY modes (olsr_types.hh TcRedundancyMode).
const (
	TCRMprsIn    = 0
	TCRMprsInOut = 1
	TCRAll       = 2
)

// DefaultPort is the well-known OLSR UDP port (olsr_types.hh DEFAULT_OLSR_PORT).
const DefaultPort = 698

// MaxTTL is the maximum value of a message's TTL field.
const MaxTTL = 255

// Header sizes, in bytes, per spec.md §4.1.
const (
	PacketHeaderLen  = 4
	MessageHeaderLen = 12
)
