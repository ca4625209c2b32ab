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

import "encoding/binary"

// Packet is a decoded OLSR UDP datagram: a 4-byte header followed by
// zero or more messages (spec.md §4.1).
type Packet struct {
	Seqno    uint16
	Messages []Message
}

// DecodePacket parses a single UDP datagram.
//
// A fatal error (truncated or malformed packet header, or a message
// header that cannot even be skipped over) is returned as err; the
// caller must count it against the Face's bad_packets counter and
// discard the whole datagram.
//
// Failures to parse an individual message body are instead returned in
// msgErrs, one per bad message; the messages that did parse are still
// returned in pkt.Messages, since only the dead message is discarded
// (spec.md §4.4: malformed HELLOs increment bad_messages but never
// abort processing of the rest of the packet).
func DecodePacket(buf []byte) (pkt *Packet, msgErrs []error, err error) {
	if len(buf) < PacketHeaderLen {
		return nil, nil, decodeErr(Truncated, "packet shorter than %d-byte header", PacketHeaderLen)
	}

	length := binary.BigEndian.Uint16(buf[0:2])
	seqno := binary.BigEndian.Uint16(buf[2:4])

	if int(length) > len(buf) {
		return nil, nil, decodeErr(BadLength, "packet_length %d exceeds datagram size %d", length, len(buf))
	}
	if int(length) < PacketHeaderLen {
		return nil, nil, decodeErr(BadLength, "packet_length %d shorter than header", length)
	}

	pkt = &Packet{Seqno: seqno}
	off := PacketHeaderLen
	end := int(length)

	for off < end {
		remaining := buf[off:end]
		if len(remaining) < MessageHeaderLen {
			return pkt, msgErrs, decodeErr(Truncated, "%d trailing bytes shorter than message header", len(remaining))
		}

		msgSize := binary.BigEndian.Uint16(remaining[2:4])
		if int(msgSize) < MessageHeaderLen || int(msgSize) > len(remaining) {
			return pkt, msgErrs, decodeErr(BadLength, "msg_size %d invalid in %d remaining bytes", msgSize, len(remaining))
		}

		msg, merr := decodeMessage(remaining[:msgSize])
		if merr != nil {
			msgErrs = append(msgErrs, merr)
		} else {
			pkt.Messages = append(pkt.Messages, *msg)
		}

		off += int(msgSize)
	}

	return pkt, msgErrs, nil
}

func decodeMessage(buf []byte) (*Message, error) {
	if len(buf) < MessageHeaderLen {
		return nil, decodeErr(Truncated, "message shorter than %d-byte header", MessageHeaderLen)
	}

	h := Header{
		Type:     buf[0],
		VTime:    buf[1],
		Origin:   Addr{buf[4], buf[5], buf[6], buf[7]},
		TTL:      buf[8],
		HopCount: buf[9],
		Seqno:    binary.BigEndian.Uint16(buf[10:12]),
	}

	body := buf[MessageHeaderLen:]
	m := &Message{Header: h}

	switch h.Type {
	case HelloMessage:
		hello, err := decodeHello(body)
		if err != nil {
			return nil, err
		}
		m.Hello = hello
	case TCMessage:
		tc, err := decodeTC(body)
		if err != nil {
			return nil, err
		}
		m.TC = tc
	case MIDMessage:
		m.MID = decodeMID(body)
	case HNAMessage:
		hna, err := decodeHNA(body)
		if err != nil {
			return nil, err
		}
		m.HNA = hna
	default:
		cp := make([]byte, len(body))
		copy(cp, body)
		m.Other = &Unknown{Body: cp}
	}

	return m, nil
}

func decodeHello(body []byte) (*Hello, error) {
	// 16 bits reserved, 8-bit Htime, 8-bit willingness, then link messages.
	if len(body) < 4 {
		return nil, decodeErr(Truncated, "HELLO body shorter than 4-byte prefix")
	}
	h := &Hello{Htime: body[2], Willingness: body[3]}

	off := 4
	for off < len(body) {
		rest := body[off:]
		if len(rest) < 4 {
			return nil, decodeErr(BadLinkCode, "%d trailing bytes shorter than link-message header", len(rest))
		}

		linkCode := rest[0]
		linkType := linkCode & 0x03
		neighborType := (linkCode >> 2) & 0x03
		size := binary.BigEndian.Uint16(rest[2:4])

		if int(size) < 4 || int(size) > len(rest) || (int(size)-4)%4 != 0 {
			return nil, decodeErr(BadLinkCode, "link-message size %d invalid in %d remaining bytes", size, len(rest))
		}

		lm := LinkMessage{LinkType: linkType, NeighborType: neighborType}
		addrBytes := rest[4:size]
		for i := 0; i+4 <= len(addrBytes); i += 4 {
			lm.Addrs = append(lm.Addrs, Addr{addrBytes[i], addrBytes[i+1], addrBytes[i+2], addrBytes[i+3]})
		}
		h.Links = append(h.Links, lm)

		off += int(size)
	}

	return h, nil
}

func decodeTC(body []byte) (*TC, error) {
	if len(body) < 4 {
		return nil, decodeErr(Truncated, "TC body shorter than 4-byte prefix")
	}
	tc := &TC{ANSN: binary.BigEndian.Uint16(body[0:2])}

	addrs := body[4:]
	if len(addrs)%4 != 0 {
		return nil, decodeErr(BadLength, "TC neighbor list length %d not a multiple of 4", len(addrs))
	}
	for i := 0; i+4 <= len(addrs); i += 4 {
		tc.Neighbors = append(tc.Neighbors, Addr{addrs[i], addrs[i+1], addrs[i+2], addrs[i+3]})
	}
	return tc, nil
}

func decodeMID(body []byte) *MID {
	mid := &MID{}
	for i := 0; i+4 <= len(body); i += 4 {
		mid.Interfaces = append(mid.Interfaces, Addr{body[i], body[i+1], body[i+2], body[i+3]})
	}
	return mid
}

func decodeHNA(body []byte) (*HNA, error) {
	if len(body)%8 != 0 {
		return nil, decodeErr(BadLength, "HNA body length %d not a multiple of 8", len(body))
	}
	hna := &HNA{}
	for i := 0; i+8 <= len(body); i += 8 {
		hna.Pairs = append(hna.Pairs, HNAPair{
			Network: Addr{body[i], body[i+1], body[i+2], body[i+3]},
			Netmask: Addr{body[i+4], body[i+5], body[i+6], body[i+7]},
		})
	}
	return hna, nil
}

// EncodePacket serializes seqno and msgs into a single UDP datagram. If
// the result would exceed mtu bytes, the encoder deterministically
// truncates by dropping trailing messages (in the order given) and
// reports truncated=true so the caller can log a warning; proper
// segmentation across multiple packets is permitted but not required
// by spec.md §4.3.
func EncodePacket(seqno uint16, msgs []Message, mtu int) (buf []byte, truncated bool) {
	encoded := make([][]byte, 0, len(msgs))
	total := PacketHeaderLen
	for _, m := range msgs {
		e := encodeMessage(&m)
		encoded = append(encoded, e)
		total += len(e)
	}

	kept := encoded
	if mtu > 0 && total > mtu {
		truncated = true
		size := PacketHeaderLen
		kept = kept[:0]
		for _, e := range encoded {
			if size+len(e) > mtu {
				break
			}
			kept = append(kept, e)
			size += len(e)
		}
	}

	length := PacketHeaderLen
	for _, e := range kept {
		length += len(e)
	}

	buf = make([]byte, PacketHeaderLen, length)
	binary.BigEndian.PutUint16(buf[0:2], uint16(length))
	binary.BigEndian.PutUint16(buf[2:4], seqno)
	for _, e := range kept {
		buf = append(buf, e...)
	}
	return buf, truncated
}

func encodeMessage(m *Message) []byte {
	var body []byte
	switch {
	case m.Hello != nil:
		body = encodeHello(m.Hello)
	case m.TC != nil:
		body = encodeTC(m.TC)
	case m.MID != nil:
		body = encodeMID(m.MID)
	case m.HNA != nil:
		body = encodeHNA(m.HNA)
	case m.Other != nil:
		body = m.Other.Body
	}

	size := MessageHeaderLen + len(body)
	buf := make([]byte, size)
	buf[0] = m.Header.Type
	buf[1] = m.Header.VTime
	binary.BigEndian.PutUint16(buf[2:4], uint16(size))
	copy(buf[4:8], m.Header.Origin[:])
	buf[8] = m.Header.TTL
	buf[9] = m.Header.HopCount
	binary.BigEndian.PutUint16(buf[10:12], m.Header.Seqno)
	copy(buf[MessageHeaderLen:], body)
	return buf
}

func encodeHello(h *Hello) []byte {
	buf := []byte{0, 0, h.Htime, h.Willingness}
	for _, lm := range h.Links {
		linkCode := (lm.NeighborType&0x03)<<2 | (lm.LinkType & 0x03)
		lmSize := 4 + 4*len(lm.Addrs)
		lmBuf := make([]byte, 4, lmSize)
		lmBuf[0] = linkCode
		lmBuf[1] = 0
		binary.BigEndian.PutUint16(lmBuf[2:4], uint16(lmSize))
		for _, a := range lm.Addrs {
			lmBuf = append(lmBuf, a[:]...)
		}
		buf = append(buf, lmBuf...)
	}
	return buf
}

func encodeTC(tc *TC) []byte {
	buf := make([]byte, 4, 4+4*len(tc.Neighbors))
	binary.BigEndian.PutUint16(buf[0:2], tc.ANSN)
	for _, a := range tc.Neighbors {
		buf = append(buf, a[:]...)
	}
	return buf
}

func encodeMID(mid *MID) []byte {
	buf := make([]byte, 0, 4*len(mid.Interfaces))
	for _, a := range mid.Interfaces {
		buf = append(buf, a[:]...)
	}
	return buf
}

func encodeHNA(hna *HNA) []byte {
	buf := make([]byte, 0, 8*len(hna.Pairs))
	for _, p := range hna.Pairs {
		buf = append(buf, p.Network[:]...)
		buf = append(buf, p.Netmask[:]...)
	}
	return buf
}
