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

	"github.com/netolsr/olsrd/dup"
	"github.com/netolsr/olsrd/log"
	"github.com/netolsr/olsrd/wire"
)

// Handler processes one decoded message. It returns true if it
// recognized and handled the message; the Face Manager calls handlers
// in reverse registration order and stops at the first one that
// returns true, matching spec.md §4.3's "last handler is a fallback
// that consumes unknown message types" (handlers are registered
// general-to-specific, so the fallback is registered first and tried
// last... precisely: index 0 is tried last).
type Handler func(now time.Time, src wire.Addr, f *Face, msg *wire.Message) (handled bool)

// Receive implements the reception path of spec.md §4.3: resolve the
// face, decode the packet, drop messages from ourselves or duplicates,
// dispatch to handlers, then apply the default forwarding algorithm.
// src is the UDP source address of the datagram (the immediate sender,
// which for a relayed message differs from the message's Origin).
func (m *Manager) Receive(now time.Time, ifName, vifName string, src wire.Addr, buf []byte, mainAddr wire.Addr, dupSet *dup.Set, isMPRSelector func(wire.Addr) bool, handlers []Handler) {
	f, ok := m.Lookup(ifName, vifName)
	if !ok {
		return
	}

	pkt, msgErrs, err := wire.DecodePacket(buf)
	if err != nil {
		f.BadPackets++
		m.rec.IncBadPackets(f.IfName)
		m.lg.WARNING(facility, log.KV{"event": "bad-packet", "if": ifName, "vif": vifName, "error": err.Error()})
		return
	}
	for _, merr := range msgErrs {
		f.BadMessages++
		m.rec.IncBadMessages(f.IfName)
		m.lg.WARNING(facility, log.KV{"event": "bad-message", "if": ifName, "vif": vifName, "error": merr.Error()})
	}

	for i := range pkt.Messages {
		msg := &pkt.Messages[i]

		if msg.Header.Origin == mainAddr {
			f.MessagesFromSelf++
			m.rec.IncMessagesFromSelf(f.IfName)
			continue
		}

		isHello := msg.Kind() == wire.HelloMessage
		var isDup bool
		if !isHello {
			isDup = dupSet.Observe(now, msg.Header.Origin, msg.Header.Seqno, f.ID)
			if isDup {
				f.Duplicates++
				m.rec.IncDuplicates(f.IfName)
				continue
			}
		}

		for i := len(handlers) - 1; i >= 0; i-- {
			if handlers[i](now, src, f, msg) {
				break
			}
		}

		if !isHello {
			m.forward(src, msg, dupSet, isMPRSelector)
		}
	}
}

// forward implements the default forwarding algorithm of spec.md §4.3
// (RFC 3626 §3.4.1): forward iff the sender is an MPR-selector, ttl>1,
// and the duplicate set does not already mark this copy forwarded or
// seen on the arrival face — which dup.Observe's return value already
// encodes, since this call site only runs for !isDup copies. Forwarding
// marks the tuple forwarded so later copies on any Face are rejected
// (P7: forward-once).
func (m *Manager) forward(src wire.Addr, msg *wire.Message, dupSet *dup.Set, isMPRSelector func(wire.Addr) bool) {
	if !isMPRSelector(src) || msg.Header.TTL <= 1 {
		return
	}

	fwd := *msg
	fwd.Header.TTL--
	fwd.Header.HopCount++

	for _, f := range m.Enabled() {
		seqno := f.NextPacketSeqno()
		buf, truncated := wire.EncodePacket(seqno, []wire.Message{fwd}, f.MTU)
		if truncated {
			m.lg.WARNING(facility, log.KV{"event": "truncated", "if": f.IfName})
		}
		m.io.Send(f.IfName, f.VifName, f.LocalAddr, f.LocalPort, f.AllNodesAddr, f.AllNodesPort, buf)
	}

	dupSet.MarkForwarded(msg.Header.Origin, msg.Header.Seqno)
}
