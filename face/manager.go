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
	"github.com/netolsr/olsrd/config"
	"github.com/netolsr/olsrd/ids"
	"github.com/netolsr/olsrd/log"
	"github.com/netolsr/olsrd/metrics"
)

// Manager owns every Face (spec.md §4.3). Reconciling the enabled set
// against a new configuration diffs the keyed map: entries present in
// the new set but not the old are enabled, entries present in the old
// set but
// not the new are disabled and dropped.
type Manager struct {
	io  IO
	rec metrics.Recorder
	lg  log.Log

	faces   map[ids.FaceID]*Face
	byIfVif map[ifVifKey]ids.FaceID
	nextID  ids.FaceID
}

func New(io IO, rec metrics.Recorder, lg log.Log) *Manager {
	if rec == nil {
		rec = metrics.Nil{}
	}
	if lg == nil {
		lg = log.Nil{}
	}
	return &Manager{
		io:      io,
		rec:     rec,
		lg:      lg,
		faces:   map[ids.FaceID]*Face{},
		byIfVif: map[ifVifKey]ids.FaceID{},
	}
}

const facility = "face"

// Configure reconciles the live Face set against cfgs, enabling new
// Faces and disabling ones no longer present (spec.md §4.3's "own all
// Faces").
func (m *Manager) Configure(cfgs []config.FaceConfig) {
	want := map[ifVifKey]config.FaceConfig{}
	for _, c := range cfgs {
		want[ifVifKey{c.IfName, c.VifName}] = c
	}

	for key, id := range m.byIfVif {
		if _, ok := want[key]; ok {
			continue
		}
		f := m.faces[id]
		m.io.DisableAddress(f.IfName, f.VifName, f.LocalAddr, f.LocalPort)
		m.lg.NOTICE(facility, log.KV{"event": "face-disabled", "if": f.IfName, "vif": f.VifName})
		delete(m.faces, id)
		delete(m.byIfVif, key)
	}

	for key, c := range want {
		if id, ok := m.byIfVif[key]; ok {
			f := m.faces[id]
			f.Cost = c.Cost
			f.AllNodesAddr, f.AllNodesPort = c.AllNodesAddr, c.AllNodesPort
			continue
		}

		if err := m.io.EnableAddress(c.IfName, c.VifName, c.LocalAddr, c.LocalPort, c.AllNodesAddr); err != nil {
			m.lg.ERR(facility, log.KV{"event": "enable-failed", "if": c.IfName, "vif": c.VifName, "error": err.Error()})
			continue
		}

		m.nextID++
		id := m.nextID
		f := &Face{
			ID:           id,
			IfName:       c.IfName,
			VifName:      c.VifName,
			LocalAddr:    c.LocalAddr,
			LocalPort:    c.LocalPort,
			AllNodesAddr: c.AllNodesAddr,
			AllNodesPort: c.AllNodesPort,
			Cost:         c.Cost,
			Enabled:      true,
			MTU:          m.io.GetMTU(c.IfName),
		}
		m.faces[id] = f
		m.byIfVif[key] = id
		m.lg.NOTICE(facility, log.KV{"event": "face-enabled", "if": c.IfName, "vif": c.VifName, "local": f.LocalAddr})
	}
}

// Lookup resolves (ifname, vifname) to an enabled Face.
func (m *Manager) Lookup(ifName, vifName string) (*Face, bool) {
	id, ok := m.byIfVif[ifVifKey{ifName, vifName}]
	if !ok {
		return nil, false
	}
	f := m.faces[id]
	if !f.Enabled {
		return nil, false
	}
	return f, true
}

// Face returns the Face by id, for introspection.
func (m *Manager) Face(id ids.FaceID) (*Face, bool) {
	f, ok := m.faces[id]
	return f, ok
}

// Enabled returns every currently enabled Face.
func (m *Manager) Enabled() []*Face {
	out := make([]*Face, 0, len(m.faces))
	for _, f := range m.faces {
		if f.Enabled {
			out = append(out, f)
		}
	}
	return out
}

// Cost returns the configured cost of a Face, for the Route Manager's
// FaceCoster (spec.md §4.7 step 2).
func (m *Manager) Cost(id ids.FaceID) int {
	if f, ok := m.faces[id]; ok {
		return f.Cost
	}
	return 0
}

// FaceCoster satisfies route.FaceCoster without importing route here
// (route already imports ids, not face, to avoid a cycle).
func (m *Manager) FaceCoster() func(ids.FaceID) int { return m.Cost }
