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

package olsrcore

import (
	"time"

	"github.com/netolsr/olsrd/duptime"
	"github.com/netolsr/olsrd/face"
	"github.com/netolsr/olsrd/wire"
)

// handlers returns the Face Manager dispatch table, fallback first
// (spec.md §4.3: tried last in reverse-registration order, consuming
// whatever no specific handler claimed).
func (c *Core) handlers() []face.Handler {
	return []face.Handler{
		c.fallbackHandler,
		c.helloHandler,
		c.tcHandler,
		c.midHandler,
		c.hnaHandler,
	}
}

func (c *Core) fallbackHandler(time.Time, wire.Addr, *face.Face, *wire.Message) bool {
	return true
}

func (c *Core) helloHandler(now time.Time, src wire.Addr, f *face.Face, msg *wire.Message) bool {
	if msg.Hello == nil {
		return false
	}
	vtime := time.Duration(duptime.ToSeconds(msg.Header.VTime) * float64(time.Second))
	changed := c.Neighbors.ProcessHello(now, f.ID, f.LocalAddr, c.cfg.MainAddr, src, vtime, msg.Hello, c.isLocalAddr, c.Topology.ResolveMain)
	if changed {
		if c.Neighbors.RecomputeAdvertised(c.cfg.TCRedundancy) {
			c.Topology.IncrementANSN()
		}
		c.reselectMPRs()
		c.scheduleRouteUpdate()
	}
	return true
}

func (c *Core) reselectMPRs() {
	changed, uncoverable := c.Neighbors.SelectMPRs(c.cfg.MPRCoverage)
	if len(uncoverable) > 0 {
		c.lg.WARNING("neighbor", map[string]any{"event": "bad-two-hop-coverage", "count": len(uncoverable)})
	}
	if changed {
		if c.Neighbors.RecomputeAdvertised(c.cfg.TCRedundancy) {
			c.Topology.IncrementANSN()
		}
		c.scheduleRouteUpdate()
	}
}

func (c *Core) tcHandler(now time.Time, src wire.Addr, f *face.Face, msg *wire.Message) bool {
	if msg.TC == nil {
		return false
	}
	if nb, ok := c.Neighbors.NeighborByMainAddr(msg.Header.Origin); !ok || !nb.IsSym {
		return true
	}
	vtime := time.Duration(duptime.ToSeconds(msg.Header.VTime) * float64(time.Second))
	if c.Topology.ProcessTC(now, msg.Header.Origin, msg.TC.ANSN, msg.Header.HopCount, vtime, msg.TC.Neighbors) {
		c.scheduleRouteUpdate()
	}
	return true
}

func (c *Core) midHandler(now time.Time, src wire.Addr, f *face.Face, msg *wire.Message) bool {
	if msg.MID == nil {
		return false
	}
	vtime := time.Duration(duptime.ToSeconds(msg.Header.VTime) * float64(time.Second))
	if c.Topology.ProcessMID(now, msg.Header.Origin, msg.Header.HopCount, vtime, msg.MID) {
		c.scheduleRouteUpdate()
	}
	return true
}

func (c *Core) hnaHandler(now time.Time, src wire.Addr, f *face.Face, msg *wire.Message) bool {
	if msg.HNA == nil {
		return false
	}
	vtime := time.Duration(duptime.ToSeconds(msg.Header.VTime) * float64(time.Second))
	if c.External.ProcessHNA(now, msg.Header.Origin, msg.Header.HopCount, vtime, msg.HNA) {
		c.scheduleRouteUpdate()
	}
	return true
}
