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

package config

import (
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// wireFile is the on-disk/YAML shape; only the demo command uses it,
// never the core (spec.md §6 scopes persistence out of the core).
type wireFile struct {
	HelloInterval   time.Duration `koanf:"hello_interval"`
	RefreshInterval time.Duration `koanf:"refresh_interval"`
	TCInterval      time.Duration `koanf:"tc_interval"`
	MIDInterval     time.Duration `koanf:"mid_interval"`
	HNAInterval     time.Duration `koanf:"hna_interval"`
	DupHoldTime     time.Duration `koanf:"dup_hold_time"`
	Willingness     uint8         `koanf:"willingness"`
	TCRedundancy    int           `koanf:"tc_redundancy"`
	MPRCoverage     int           `koanf:"mpr_coverage"`
}

// LoadFile reads a YAML config file, overlays environment variables
// prefixed OLSRD_, and returns a Config seeded from Default() wherever
// a field is unset.
func LoadFile(path string) (Config, error) {
	k := koanf.New(".")
	cfg := Default()

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return cfg, err
	}
	envKey := func(s string) string { return strings.ToLower(strings.TrimPrefix(s, "OLSRD_")) }
	if err := k.Load(env.Provider("OLSRD_", ".", envKey), nil); err != nil {
		return cfg, err
	}

	var w wireFile
	w.HelloInterval = cfg.HelloInterval
	w.RefreshInterval = cfg.RefreshInterval
	w.TCInterval = cfg.TCInterval
	w.MIDInterval = cfg.MIDInterval
	w.HNAInterval = cfg.HNAInterval
	w.DupHoldTime = cfg.DupHoldTime
	w.Willingness = cfg.Willingness
	w.TCRedundancy = int(cfg.TCRedundancy)
	w.MPRCoverage = cfg.MPRCoverage

	if err := k.Unmarshal("", &w); err != nil {
		return cfg, err
	}

	cfg.HelloInterval = w.HelloInterval
	cfg.RefreshInterval = w.RefreshInterval
	cfg.TCInterval = w.TCInterval
	cfg.MIDInterval = w.MIDInterval
	cfg.HNAInterval = w.HNAInterval
	cfg.DupHoldTime = w.DupHoldTime
	cfg.Willingness = w.Willingness
	cfg.TCRedundancy = TCRedundancy(w.TCRedundancy)
	cfg.MPRCoverage = w.MPRCoverage

	return cfg, nil
}
