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

package log

import "go.uber.org/zap"

// Zap adapts a *zap.SugaredLogger to the Log contract.
type Zap struct {
	s *zap.SugaredLogger
}

func NewZap(s *zap.SugaredLogger) *Zap {
	return &Zap{s: s}
}

func fields(kv KV) []any {
	f := make([]any, 0, 2*len(kv))
	for k, v := range kv {
		f = append(f, k, v)
	}
	return f
}

func (z *Zap) NOTICE(facility string, kv KV)  { z.s.Infow(facility, fields(kv)...) }
func (z *Zap) WARNING(facility string, kv KV) { z.s.Warnw(facility, fields(kv)...) }
func (z *Zap) ERR(facility string, kv KV)     { z.s.Errorw(facility, fields(kv)...) }
func (z *Zap) DEBUG(facility string, kv KV)   { z.s.Debugw(facility, fields(kv)...) }
