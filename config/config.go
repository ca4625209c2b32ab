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

// Package config holds the tunable parameters of the OLSR core
// (spec.md §6) and their defaults. The core never reads files or the
// environment itself; loading a Config from outside the process is the
// demo command's job (see koanf.go).
package config

import (
	"fmt"
	"time"

	"github.com/netolsr/olsrd/wire"
)

// TCRedundancy selects which neighbors a node advertises in its TC
// messages (spec.md §4.5).
type TCRedundancy int

const (
	MprsIn TCRedundancy = iota
	MprsInOut
	All
)

// FaceConfig describes one interface binding to enable at startup.
type FaceConfig struct {
	IfName       string
	VifName      string
	LocalAddr    wire.Addr
	LocalPort    uint16
	AllNodesAddr wire.Addr
	AllNodesPort uint16
	Cost         int
}

// Config is the full set of OLSR core parameters, with the defaults of
// spec.md §6.
type Config struct {
	HelloInterval   time.Duration
	RefreshInterval time.Duration
	TCInterval      time.Duration
	MIDInterval     time.Duration
	HNAInterval     time.Duration
	DupHoldTime     time.Duration

	Willingness  uint8
	TCRedundancy TCRedundancy
	MPRCoverage  int

	MainAddr wire.Addr
	Faces    []FaceConfig
}

// Default returns a Config populated with spec.md §6's default values
// and no Faces; the caller adds Faces before Validate.
func Default() Config {
	return Config{
		HelloInterval:   2 * time.Second,
		RefreshInterval: 2 * time.Second,
		TCInterval:      5 * time.Second,
		MIDInterval:     5 * time.Second,
		HNAInterval:     5 * time.Second,
		DupHoldTime:     30 * time.Second,
		Willingness:     wire.WillDefault,
		TCRedundancy:    MprsIn,
		MPRCoverage:     1,
	}
}

// MidHoldTime is 3x MIDInterval per spec.md §4.3.
func (c Config) MidHoldTime() time.Duration { return 3 * c.MIDInterval }

// TCHoldTime is 3x TCInterval per spec.md §4.5.
func (c Config) TCHoldTime() time.Duration { return 3 * c.TCInterval }

// HnaHoldTime is 3x HNAInterval per spec.md §4.6.
func (c Config) HnaHoldTime() time.Duration { return 3 * c.HNAInterval }

// NeighHoldTime is the validity time carried in originated HELLOs,
// 3x HELLO_INTERVAL by the same rule as the other databases' hold
// times (spec.md §8 scenario 3 names NEIGH_HOLD_TIME without listing a
// default; this core derives it the same way MID/TC/HNA do).
func (c Config) NeighHoldTime() time.Duration { return 3 * c.HelloInterval }

// Validate checks the invariants spec.md §6 and §3 require before the
// core can start.
func (c Config) Validate() error {
	if c.Willingness > wire.WillMax {
		return fmt.Errorf("config: willingness %d out of range [0..7]", c.Willingness)
	}
	if c.MPRCoverage < 1 {
		return fmt.Errorf("config: mpr_coverage %d must be >= 1", c.MPRCoverage)
	}
	if c.TCRedundancy != MprsIn && c.TCRedundancy != MprsInOut && c.TCRedundancy != All {
		return fmt.Errorf("config: invalid tc_redundancy %d", c.TCRedundancy)
	}
	seen := map[string]bool{}
	var mainSeen bool
	for _, f := range c.Faces {
		key := f.IfName + "/" + f.VifName
		if seen[key] {
			return fmt.Errorf("config: duplicate face %s", key)
		}
		seen[key] = true
		if f.Cost < 0 {
			return fmt.Errorf("config: face %s has negative cost", key)
		}
		if f.LocalAddr == c.MainAddr {
			mainSeen = true
		}
	}
	if len(c.Faces) > 0 && !mainSeen {
		return fmt.Errorf("config: main_addr %v matches no enabled face", c.MainAddr)
	}
	return nil
}
