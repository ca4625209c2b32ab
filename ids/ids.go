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

// Package ids defines the stable numeric identifiers spec.md §9 calls
// for in place of pointer graphs: every core entity is owned by exactly
// one arena (a map keyed by its own id), and peers refer to each other
// by id and look up on demand.
package ids

type FaceID int

type LinkID int

type NeighborID int

type TwoHopID int

type TwoHopLinkID int

type MidID int

type TopologyID int

type ExternalID int
