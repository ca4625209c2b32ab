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
	"time"

	"github.com/netolsr/olsrd/duptime"
	"github.com/netolsr/olsrd/ids"
	"github.com/netolsr/olsrd/log"
	"github.com/netolsr/olsrd/wire"
)

// LinkMessagesOf supplies the Link Messages a HELLO on this Face should
// carry, computed by the Neighborhood (spec.md §4.3/§4.4).
type LinkMessagesOf func(now time.Time, face ids.FaceID) []wire.LinkMessage

// OriginateHello emits one HELLO on every enabled Face, per
// HELLO_INTERVAL (spec.md §4.3). helloInterval is advertised as Htime;
// neighHoldTime is the HELLO's validity time, the hold time a receiver
// applies to the resulting Link/Neighbor entries (spec.md §4.4).
func (m *Manager) OriginateHello(now time.Time, origin wire.Addr, willingness uint8, helloInterval, neighHoldTime time.Duration, linksOf LinkMessagesOf) {
	for _, f := range m.Enabled() {
		hello := &wire.Hello{
			Htime:       duptime.FromSeconds(helloInterval.Seconds()),
			Willingness: willingness,
			Links:       linksOf(now, f.ID),
		}
		msg := wire.Message{
			Header: wire.Header{
				Type:   wire.HelloMessage,
				VTime:  duptime.FromSeconds(neighHoldTime.Seconds()),
				Origin: origin,
				TTL:    1,
			},
			Hello: hello,
		}
		m.send(f, &msg)
	}
}

// OriginateMID emits an MID message listing every local address other
// than mainAddr, on every enabled Face, but only while ≥2 Faces are
// enabled (spec.md §4.3).
func (m *Manager) OriginateMID(now time.Time, origin wire.Addr, midHoldTime time.Duration) {
	enabled := m.Enabled()
	if len(enabled) < 2 {
		return
	}

	var aliases []wire.Addr
	for _, f := range enabled {
		if f.LocalAddr != origin {
			aliases = append(aliases, f.LocalAddr)
		}
	}
	if len(aliases) == 0 {
		return
	}

	for _, f := range enabled {
		msg := wire.Message{
			Header: wire.Header{
				Type:   wire.MIDMessage,
				VTime:  duptime.FromSeconds(midHoldTime.Seconds()),
				Origin: origin,
				TTL:    wire.MaxTTL,
			},
			MID: &wire.MID{Interfaces: aliases},
		}
		m.send(f, &msg)
	}
}

// OriginateMessage emits an arbitrary message this node originates (TC,
// HNA) on every enabled Face, for the Topology Manager and External
// Routes to drive from their own timers (spec.md §4.5, §4.6).
func (m *Manager) OriginateMessage(origin wire.Addr, msgType uint8, vtime time.Duration, ttl uint8, body any) {
	msg := wire.Message{Header: wire.Header{
		Type:   msgType,
		VTime:  duptime.FromSeconds(vtime.Seconds()),
		Origin: origin,
		TTL:    ttl,
	}}
	switch b := body.(type) {
	case *wire.TC:
		msg.TC = b
	case *wire.HNA:
		msg.HNA = b
	}
	for _, f := range m.Enabled() {
		m.send(f, &msg)
	}
}

func (m *Manager) send(f *Face, msg *wire.Message) {
	msg.Header.Seqno = f.NextPacketSeqno()
	buf, truncated := wire.EncodePacket(msg.Header.Seqno, []wire.Message{*msg}, f.MTU)
	if truncated {
		m.lg.WARNING(facility, log.KV{"event": "truncated", "if": f.IfName, "type": msg.Header.Type})
	}
	m.io.Send(f.IfName, f.VifName, f.LocalAddr, f.LocalPort, f.AllNodesAddr, f.AllNodesPort, buf)
}
