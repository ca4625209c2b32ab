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

import "fmt"

// DecodeErrorKind enumerates the ways a packet or message can fail to
// parse (spec.md §4.1, §7).
type DecodeErrorKind int

const (
	Truncated DecodeErrorKind = iota
	BadLength
	BadType
	BadLinkCode
)

func (k DecodeErrorKind) String() string {
	switch k {
	case Truncated:
		return "truncated"
	case BadLength:
		return "bad_length"
	case BadType:
		return "bad_type"
	case BadLinkCode:
		return "bad_link_code"
	default:
		return "unknown"
	}
}

// DecodeError reports why a packet or message could not be parsed. The
// caller is expected to count it and discard the offending unit, never
// to treat it as fatal (spec.md §7).
type DecodeError struct {
	Kind DecodeErrorKind
	Msg  string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("olsr decode: %s: %s", e.Kind, e.Msg)
}

func decodeErr(k DecodeErrorKind, format string, args ...interface{}) error {
	return &DecodeError{Kind: k, Msg: fmt.Sprintf(format, args...)}
}
