package gxbridge

// --------------------------------------------------------------------------
//
//	Gurux Ltd
//
// Filename:        $HeadURL$
//
// Version:         $Revision$,
//
//	$Date$
//	$Author$
//
// # Copyright (c) Gurux Ltd
//
// ---------------------------------------------------------------------------
//
//	DESCRIPTION
//
// This file is a part of Gurux Device Framework.
//
// Gurux Device Framework is Open Source software; you can redistribute it
// and/or modify it under the terms of the GNU General Public License
// as published by the Free Software Foundation; version 2 of the License.
// Gurux Device Framework is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU General Public License for more details.
//
// More information of Gurux products: https://www.gurux.org
//
// This code is licensed under the GNU General Public License v2.
// Full text may be retrieved at http://www.gnu.org/licenses/gpl-2.0.txt
// ---------------------------------------------------------------------------

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "gxbridge"

// Metrics holds the bridge counters. They are created unregistered; use
// Register to expose them.
type Metrics struct {
	// Accepted counts admitted clients.
	Accepted prometheus.Counter
	// Refused counts clients refused under KeepClient.
	Refused prometheus.Counter
	// Replaced counts clients closed to make room for a new one.
	Replaced prometheus.Counter
	// Uplink counts bytes written to clients.
	Uplink prometheus.Counter
	// Downlink counts bytes read from clients.
	Downlink prometheus.Counter
	// Dropped counts serial bytes received while no client was connected.
	Dropped prometheus.Counter

	collectors []prometheus.Collector
}

// NewMetrics returns counters for one bridge. Overflow loss and staging are
// read from arb and the connected gauge from connected when scraped.
func NewMetrics(arb *Arbitrator, connected func() bool) *Metrics {
	f := promauto.With(nil)
	counter := func(subsystem, name, help string) prometheus.Counter {
		return f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      name,
			Help:      help,
		})
	}
	m := &Metrics{
		Accepted: counter("session", "accepted_total", "Clients admitted by the bridge"),
		Refused:  counter("session", "refused_total", "Clients refused because another client was served"),
		Replaced: counter("session", "replaced_total", "Clients closed to admit a newer client"),
		Uplink:   counter("uplink", "bytes_total", "Serial bytes written to the client"),
		Downlink: counter("downlink", "bytes_total", "Client bytes transmitted on the serial port"),
		Dropped:  counter("uplink", "idle_dropped_bytes_total", "Serial bytes received while no client was connected"),
	}
	lost := f.NewCounterFunc(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "uplink",
		Name:      "overflow_lost_bytes_total",
		Help:      "Serial bytes discarded because the ring buffers were full",
	}, func() float64 {
		return float64(arb.Lost())
	})
	staged := f.NewCounterFunc(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "uplink",
		Name:      "staged_bursts_total",
		Help:      "Serial bursts stored in the staging buffer while the drain task held the lock",
	}, func() float64 {
		return float64(arb.Staged())
	})
	conn := f.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Subsystem: "session",
		Name:      "connected",
		Help:      "1 while a client is served",
	}, func() float64 {
		if connected != nil && connected() {
			return 1
		}
		return 0
	})
	m.collectors = []prometheus.Collector{
		m.Accepted, m.Refused, m.Replaced, m.Uplink, m.Downlink, m.Dropped,
		lost, staged, conn,
	}
	return m
}

// Register registers all counters with reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range m.collectors {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
