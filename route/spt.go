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

// Package route implements the Route Manager of spec.md §4.7: the
// Shortest-Path Tree computation over the Neighborhood and Topology
// databases, route emission, and the transactional RIB diff/commit.
package route

import (
	"time"

	"github.com/netolsr/olsrd/ids"
	"github.com/netolsr/olsrd/neighbor"
	"github.com/netolsr/olsrd/topology"
	"github.com/netolsr/olsrd/wire"
)

// HopInfo records the first-hop link used to reach a vertex from the
// origin: a one-hop Neighbor's face and the remote interface address of
// the symmetric link chosen to reach it.
type HopInfo struct {
	FaceID     ids.FaceID
	RemoteAddr wire.Addr
}

type edge struct {
	to     wire.Addr
	weight int
}

type vnode struct {
	addr   wire.Addr
	oneHop bool
	hop    HopInfo
	edges  []edge
}

// Graph is the per-recomputation SPT input graph of spec.md §4.7.
type Graph struct {
	origin   wire.Addr
	vertices map[wire.Addr]*vnode

	dist map[wire.Addr]int
	prev map[wire.Addr]wire.Addr
}

// FaceCoster returns the configured cost of a face, for edge weighting.
type FaceCoster func(ids.FaceID) int

// BuildGraph constructs the SPT input graph per spec.md §4.7 steps 1-4.
func BuildGraph(now time.Time, origin wire.Addr, faceCost FaceCoster, nb *neighbor.Set, topo []*topology.TopologyEntry) *Graph {
	g := &Graph{origin: origin, vertices: map[wire.Addr]*vnode{}}
	g.vertex(origin)

	for _, n := range nb.Neighbors() {
		if !n.IsSym || n.Willingness == wire.WillNever {
			continue
		}
		hop, ok := bestSymLink(now, nb, n, faceCost)
		if !ok {
			continue
		}
		v := g.vertex(n.MainAddr)
		v.oneHop = true
		v.hop = hop

		selectorBonus := 1
		if n.IsMPRSelector {
			selectorBonus = 0
		}
		weight := faceCost(hop.FaceID) + int(wire.WillMax-n.Willingness) + selectorBonus
		g.addEdge(origin, n.MainAddr, weight)
	}

	for _, th := range nb.TwoHopNeighbors() {
		for tlID := range th.TwoHopLinks {
			tl, ok := nb.TwoHopLink(tlID)
			if !ok {
				continue
			}
			n, ok := nb.Neighbor(tl.NeighborID)
			if !ok || !n.IsSym || n.Willingness == wire.WillNever {
				continue
			}
			if _, ok := g.vertices[n.MainAddr]; !ok {
				continue
			}
			g.vertex(th.MainAddr)
			g.addEdge(n.MainAddr, th.MainAddr, 1)
		}
	}

	for _, e := range topo {
		if _, ok := g.vertices[e.LastHop]; !ok {
			continue
		}
		g.vertex(e.Dest)
		g.addEdge(e.LastHop, e.Dest, 1)
	}

	return g
}

func bestSymLink(now time.Time, nb *neighbor.Set, n *neighbor.Neighbor, faceCost FaceCoster) (HopInfo, bool) {
	best := HopInfo{}
	bestCost := -1
	found := false
	for lid := range n.Links {
		l, ok := nb.Link(lid)
		if !ok || l.CurrentType(now) != wire.SymLink {
			continue
		}
		cost := faceCost(l.FaceID)
		if !found || cost < bestCost {
			found, bestCost = true, cost
			best = HopInfo{FaceID: l.FaceID, RemoteAddr: l.RemoteAddr}
		}
	}
	return best, found
}

func (g *Graph) vertex(addr wire.Addr) *vnode {
	if v, ok := g.vertices[addr]; ok {
		return v
	}
	v := &vnode{addr: addr}
	g.vertices[addr] = v
	return v
}

func (g *Graph) addEdge(from, to wire.Addr, weight int) {
	g.vertices[from].edges = append(g.vertices[from].edges, edge{to: to, weight: weight})
}

// Run executes Dijkstra from the origin vertex (spec.md §4.7 step 5).
func (g *Graph) Run() {
	const inf = int(^uint(0) >> 1)

	g.dist = map[wire.Addr]int{g.origin: 0}
	g.prev = map[wire.Addr]wire.Addr{}
	visited := map[wire.Addr]bool{}

	for len(visited) < len(g.vertices) {
		var u wire.Addr
		best := inf
		foundAny := false
		for addr := range g.vertices {
			if visited[addr] {
				continue
			}
			d, ok := g.dist[addr]
			if !ok {
				continue
			}
			if !foundAny || d < best {
				u, best, foundAny = addr, d, true
			}
		}
		if !foundAny {
			break
		}
		visited[u] = true

		for _, e := range g.vertices[u].edges {
			nd := g.dist[u] + e.weight
			if cur, ok := g.dist[e.to]; !ok || nd < cur {
				g.dist[e.to] = nd
				g.prev[e.to] = u
			}
		}
	}
}

// Result is one entry of the computed shortest-path tree.
type Result struct {
	Dest        wire.Addr
	NextHop     HopInfo
	Metric      int
	OneHop      bool
	OneHopLink  wire.Addr // populated when Dest is itself a one-hop Neighbor
}

// Results returns the SPT computed by Run, one entry per reachable
// destination other than the origin (spec.md §4.7 step 6).
func (g *Graph) Results() []Result {
	var out []Result
	for addr, v := range g.vertices {
		if addr == g.origin {
			continue
		}
		d, ok := g.dist[addr]
		if !ok {
			continue
		}

		cur := addr
		for g.prev[cur] != g.origin {
			p, ok := g.prev[cur]
			if !ok {
				break
			}
			cur = p
		}
		firstHop := g.vertices[cur]

		r := Result{Dest: addr, NextHop: firstHop.hop, Metric: d, OneHop: v.oneHop}
		if v.oneHop {
			r.OneHopLink = v.hop.RemoteAddr
		}
		out = append(out, r)
	}
	return out
}
