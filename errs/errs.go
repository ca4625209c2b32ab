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

// Package errs defines the typed lookup-error kinds of spec.md §7: the
// ten Bad* sentinel values database lookups fail with. These are
// recovery-local; nothing in the core treats them as fatal.
package errs

import "errors"

var (
	BadFace           = errors.New("bad face")
	BadLink           = errors.New("bad link")
	BadNeighbor       = errors.New("bad neighbor")
	BadTwoHopNode     = errors.New("bad two-hop node")
	BadTwoHopLink     = errors.New("bad two-hop link")
	BadMidEntry       = errors.New("bad mid entry")
	BadTopologyEntry  = errors.New("bad topology entry")
	BadExternalRoute  = errors.New("bad external route")
	BadLinkCoverage   = errors.New("bad link coverage")
	BadTwoHopCoverage = errors.New("bad two-hop coverage")
)
