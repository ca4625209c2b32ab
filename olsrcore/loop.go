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

	"github.com/netolsr/olsrd/route"
	"github.com/netolsr/olsrd/wire"
)

// Start spawns the single background goroutine that runs the
// cooperative event loop (spec.md §5): every timer tick, every received
// datagram, and every queued RIB completion are all handled here, in
// series, so no lock is ever needed: one goroutine with a die-channel
// shutdown, generalized from a single status channel to the OLSR
// core's full timer set.
func (c *Core) Start() {
	go c.background()
}

// Stop requests an orderly shutdown: timers stop, every Face is
// disabled, and the RIB queue stops dispatching new operations;
// outstanding RIB RPCs are not cancelled, and the goroutine does not
// wait for them (spec.md §5's cancellation rule). It blocks until the
// loop has exited.
func (c *Core) Stop() {
	close(c.die)
	<-c.done
}

func (c *Core) background() {
	defer close(c.done)

	hello := time.NewTicker(c.cfg.HelloInterval)
	mid := time.NewTicker(c.cfg.MIDInterval)
	tc := time.NewTicker(c.cfg.TCInterval)
	hna := time.NewTicker(c.cfg.HNAInterval)
	refresh := time.NewTicker(c.cfg.RefreshInterval)
	defer hello.Stop()
	defer mid.Stop()
	defer tc.Stop()
	defer hna.Stop()
	defer refresh.Stop()

	for {
		select {
		case now := <-hello.C:
			c.Faces.OriginateHello(now, c.cfg.MainAddr, c.cfg.Willingness, c.cfg.HelloInterval, c.cfg.NeighHoldTime(), c.Neighbors.HelloLinkMessages)

		case now := <-mid.C:
			c.Faces.OriginateMID(now, c.cfg.MainAddr, c.cfg.MidHoldTime())

		case <-tc.C:
			c.originateTC()

		case <-hna.C:
			c.originateHNA()

		case now := <-refresh.C:
			c.expireAll(now)

		case ev := <-c.recvCh:
			c.Faces.Receive(time.Now(), ev.ifName, ev.vifName, ev.src, ev.buf, c.cfg.MainAddr, c.Duplicates, c.Neighbors.IsMPRSelectorAddr, c.handlers())

		case <-c.die:
			c.shutdown()
			return
		}

		if c.routeDirty {
			c.recomputeRoutes(time.Now())
			c.routeDirty = false
		}
	}
}

func (c *Core) originateTC() {
	advertised := c.Neighbors.AdvertisedMainAddrs()
	if len(advertised) == 0 {
		return
	}
	tc := c.Topology.OriginateTC(advertised)
	c.Faces.OriginateMessage(c.cfg.MainAddr, wire.TCMessage, c.cfg.TCHoldTime(), wire.MaxTTL, tc)
}

func (c *Core) originateHNA() {
	if len(c.External.OriginatedPrefixes()) == 0 {
		return
	}
	hna := c.External.OriginateHNA()
	c.Faces.OriginateMessage(c.cfg.MainAddr, wire.HNAMessage, c.cfg.HnaHoldTime(), wire.MaxTTL, hna)
}

func (c *Core) expireAll(now time.Time) {
	neighborChanged := c.Neighbors.Expire(now)
	topoChanged := c.Topology.Expire(now)
	externalChanged := c.External.Expire(now)
	c.Duplicates.Expire(now)

	if neighborChanged {
		c.reselectMPRs()
	}
	if neighborChanged || topoChanged || externalChanged {
		if c.Neighbors.RecomputeAdvertised(c.cfg.TCRedundancy) {
			c.Topology.IncrementANSN()
		}
		c.scheduleRouteUpdate()
	}

	c.rec.SetDatabaseSize("links", len(c.Neighbors.Links()))
	c.rec.SetDatabaseSize("neighbors", len(c.Neighbors.Neighbors()))
	c.rec.SetDatabaseSize("two_hop", len(c.Neighbors.TwoHopNeighbors()))
	c.rec.SetDatabaseSize("topology", len(c.Topology.Entries()))
	c.rec.SetDatabaseSize("mid", len(c.Topology.MidEntries()))
}

func (c *Core) recomputeRoutes(now time.Time) {
	g := route.BuildGraph(now, c.cfg.MainAddr, c.Faces.Cost, c.Neighbors, c.Topology.Entries())
	g.Run()
	results := g.Results()
	entries := route.Emit(results, c.Topology.Aliases, c.External.Winners())

	current := route.BuildTrie(entries)
	ops, next := route.Diff(current, c.previous, c.accepted, c.filter)

	c.queue.Enqueue(ops...)
	c.previous = current
	c.accepted = next
}

func (c *Core) shutdown() {
	c.Faces.Configure(nil)
	c.queue.Close()
}
