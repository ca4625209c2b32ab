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

// Package olsrcore wires the Wire Codec, Duplicate Set, Face Manager,
// Neighborhood, Topology Manager, External Routes and Route Manager
// into the single-threaded event loop of spec.md §5. Core is the one
// root object everything else is constructed against (spec.md §9's
// "global mutable state... single root object" note); there are no
// package-level singletons anywhere in this module.
package olsrcore

import (
	"net/netip"

	"github.com/gaissmai/bart"
	"github.com/netolsr/olsrd/config"
	"github.com/netolsr/olsrd/dup"
	"github.com/netolsr/olsrd/external"
	"github.com/netolsr/olsrd/face"
	"github.com/netolsr/olsrd/log"
	"github.com/netolsr/olsrd/metrics"
	"github.com/netolsr/olsrd/neighbor"
	"github.com/netolsr/olsrd/route"
	"github.com/netolsr/olsrd/topology"
	"github.com/netolsr/olsrd/wire"
)

// RIB is the Route Manager's asynchronous RPC collaborator (spec.md
// §6's add_route/replace_route/delete_route, kept separate from
// face.IO since it speaks to a routing-table process, not a socket).
type RIB interface {
	Apply(op route.PendingOp, done func())
}

// Core owns every database and drives the cooperative event loop.
type Core struct {
	cfg config.Config
	lg  log.Log
	rec metrics.Recorder

	Faces      *face.Manager
	Neighbors  *neighbor.Set
	Topology   *topology.Set
	External   *external.Set
	Duplicates *dup.Set

	queue    *route.Queue
	accepted map[netip.Prefix]bool
	previous *bart.Table[route.RouteEntry]
	filter   route.Filter

	recvCh chan recvEvent
	die    chan struct{}
	done   chan struct{}

	routeDirty bool
}

type recvEvent struct {
	ifName, vifName string
	src             wire.Addr
	buf             []byte
}

// New constructs a Core. filter stands in for the policy-filter
// collaborator of spec.md §6; pass a function that always returns true
// if no filtering is required.
func New(cfg config.Config, io face.IO, rib RIB, filter route.Filter, lg log.Log, rec metrics.Recorder) *Core {
	if lg == nil {
		lg = log.Nil{}
	}
	if rec == nil {
		rec = metrics.Nil{}
	}

	c := &Core{
		cfg:        cfg,
		lg:         lg,
		rec:        rec,
		Faces:      face.New(io, rec, lg),
		Neighbors:  neighbor.New(),
		Topology:   topology.New(),
		External:   external.New(),
		Duplicates: dup.New(cfg.DupHoldTime),
		accepted:   map[netip.Prefix]bool{},
		previous:   &bart.Table[route.RouteEntry]{},
		filter:     filter,
		recvCh:     make(chan recvEvent, 64),
		die:        make(chan struct{}),
		done:       make(chan struct{}),
	}
	c.queue = route.NewQueue(func(op route.PendingOp, done func()) { rib.Apply(op, done) })
	c.Faces.Configure(cfg.Faces)
	return c
}

// Deliver marshals a received datagram onto the event loop, per spec.md
// §5's requirement that the I/O collaborator never touch core state
// directly from its own context.
func (c *Core) Deliver(ifName, vifName string, src wire.Addr, buf []byte) {
	c.recvCh <- recvEvent{ifName, vifName, src, buf}
}

// isLocalAddr reports whether addr belongs to one of our own enabled
// Faces, used during HELLO two-hop discovery (spec.md §4.4).
func (c *Core) isLocalAddr(addr wire.Addr) bool {
	for _, f := range c.Faces.Enabled() {
		if f.LocalAddr == addr {
			return true
		}
	}
	return false
}

// scheduleRouteUpdate marks the route table for recomputation at the
// end of the current event-loop turn; repeated calls within the same
// turn collapse to one recomputation (spec.md §5).
func (c *Core) scheduleRouteUpdate() { c.routeDirty = true }
