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

// Package metrics wires the core's per-Face counters (spec.md §4.3) and
// database sizes onto a Prometheus registry for a host process to
// serve. The core never imports Prometheus directly; it reports
// through the Recorder interface so it stays usable without Prometheus
// wired in (e.g. under test).
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Recorder is the narrow interface components use to report counters;
// satisfied by *Metrics or a no-op stub in tests.
type Recorder interface {
	IncBadPackets(face string)
	IncBadMessages(face string)
	IncDuplicates(face string)
	IncMessagesFromSelf(face string)
	SetDatabaseSize(name string, n int)
}

// Metrics registers the OLSR core's gauges and counters against reg.
type Metrics struct {
	badPackets       *prometheus.CounterVec
	badMessages      *prometheus.CounterVec
	duplicates       *prometheus.CounterVec
	messagesFromSelf *prometheus.CounterVec
	databaseSize     *prometheus.GaugeVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		badPackets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "olsrd", Name: "bad_packets_total", Help: "Packets discarded for decode failure, by face.",
		}, []string{"face"}),
		badMessages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "olsrd", Name: "bad_messages_total", Help: "Messages discarded for decode failure, by face.",
		}, []string{"face"}),
		duplicates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "olsrd", Name: "duplicates_total", Help: "Messages discarded as duplicates, by face.",
		}, []string{"face"}),
		messagesFromSelf: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "olsrd", Name: "messages_from_self_total", Help: "Messages discarded as originating from this node, by face.",
		}, []string{"face"}),
		databaseSize: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "olsrd", Name: "database_size", Help: "Live entry count of an OLSR database, by name.",
		}, []string{"name"}),
	}
	reg.MustRegister(m.badPackets, m.badMessages, m.duplicates, m.messagesFromSelf, m.databaseSize)
	return m
}

func (m *Metrics) IncBadPackets(face string)       { m.badPackets.WithLabelValues(face).Inc() }
func (m *Metrics) IncBadMessages(face string)      { m.badMessages.WithLabelValues(face).Inc() }
func (m *Metrics) IncDuplicates(face string)       { m.duplicates.WithLabelValues(face).Inc() }
func (m *Metrics) IncMessagesFromSelf(face string) { m.messagesFromSelf.WithLabelValues(face).Inc() }
func (m *Metrics) SetDatabaseSize(name string, n int) {
	m.databaseSize.WithLabelValues(name).Set(float64(n))
}

// Nil is a Recorder that discards everything, used where a component is
// constructed without a Prometheus registry (e.g. under test).
type Nil struct{}

func (Nil) IncBadPackets(string)        {}
func (Nil) IncBadMessages(string)       {}
func (Nil) IncDuplicates(string)        {}
func (Nil) IncMessagesFromSelf(string)  {}
func (Nil) SetDatabaseSize(string, int) {}
