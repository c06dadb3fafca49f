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
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ErrBridgeClosed is returned by Serve after Close.
var ErrBridgeClosed = errors.New("bridge closed")

// GXBridge forwards bytes received on a serial port to a TCP client and bytes
// received from the client to the serial port.
type GXBridge struct {
	cfg     Config
	arb     *Arbitrator
	session *Session
	log     *zap.Logger

	mu     sync.Mutex
	ln     net.Listener
	closed bool

	// Printer for localized messages.
	p *message.Printer
}

// NewGXBridge creates a bridge that transmits client data through uart.
// Serial data is handed to the bridge by calling Receive.
func NewGXBridge(cfg Config, uart UART, log *zap.Logger) (*GXBridge, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if uart == nil {
		return nil, errors.New("uart is nil")
	}
	if log == nil {
		log = zap.NewNop()
	}
	arb, err := NewArbitrator(make([]byte, cfg.PrimarySize), make([]byte, cfg.StagingSize))
	if err != nil {
		return nil, err
	}
	g := &GXBridge{
		cfg:     cfg,
		arb:     arb,
		session: NewSession(arb, uart, cfg, log),
		log:     log,
	}
	g.Localize(language.AmericanEnglish)
	return g, nil
}

// Config returns the used settings.
func (g *GXBridge) Config() Config {
	return g.cfg
}

// State returns the state of the client slot.
func (g *GXBridge) State() SessionState {
	return g.session.State()
}

// Metrics returns the bridge counters.
func (g *GXBridge) Metrics() *Metrics {
	return g.session.Metrics()
}

// RegisterMetrics registers the bridge counters with reg.
func (g *GXBridge) RegisterMetrics(reg prometheus.Registerer) error {
	return g.session.Metrics().Register(reg)
}

// SetOnStateChange sets the handler called when a client connects or leaves.
// It must not call Close.
func (g *GXBridge) SetOnStateChange(value StateHandler) {
	g.session.SetOnStateChange(value)
}

// SetOnError sets the handler called when a network failure ends a session.
// It must not call Close.
func (g *GXBridge) SetOnError(value ErrorHandler) {
	g.session.SetOnError(value)
}

// Receive is the byte arrival entry point of the serial port.
// It never blocks. Data received while no client is connected is dropped.
func (g *GXBridge) Receive(data []byte) {
	if !g.session.Connected() {
		g.session.metrics.Dropped.Add(float64(len(data)))
		return
	}
	if lost := g.arb.Produce(data); lost != 0 {
		if ce := g.log.Check(zap.DebugLevel, "ring buffer overflow"); ce != nil {
			ce.Write(zap.Int("lost", lost), zap.Uint64("total", g.arb.Lost()))
		}
	}
}

// ListenAndServe listens on the configured address and serves clients until
// ctx is done or Close is called.
func (g *GXBridge) ListenAndServe(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", g.cfg.ListenAddress())
	if err != nil {
		msg := g.p.Sprintf("msg.listen_failed", g.cfg.ListenAddress(), err)
		g.log.Error(msg)
		return fmt.Errorf("listen %s: %w", g.cfg.ListenAddress(), err)
	}
	return g.Serve(ctx, ln)
}

// Serve accepts clients on ln until ctx is done or Close is called.
// The current client is closed before Serve returns. A nil error is returned
// on a normal shutdown.
func (g *GXBridge) Serve(ctx context.Context, ln net.Listener) error {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		_ = ln.Close()
		return ErrBridgeClosed
	}
	g.ln = ln
	g.mu.Unlock()

	stop := context.AfterFunc(ctx, func() {
		_ = ln.Close()
	})
	defer stop()
	defer g.session.Close()

	g.log.Info(g.p.Sprintf("msg.listening", ln.Addr().String()), zap.Stringer("policy", g.cfg.Policy()))
	var delay time.Duration
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				g.log.Info(g.p.Sprintf("msg.listener_closed", ln.Addr().String()))
				return nil
			}
			if delay == 0 {
				delay = 5 * time.Millisecond
			} else {
				delay = min(2*delay, time.Second)
			}
			g.log.Warn(g.p.Sprintf("msg.accept_failed", err), zap.Duration("retry", delay))
			select {
			case <-time.After(delay):
			case <-ctx.Done():
			}
			continue
		}
		delay = 0
		g.log.Info(g.p.Sprintf("msg.client_from", conn.RemoteAddr().String()))
		if !g.session.Admit(conn) {
			g.log.Info(g.p.Sprintf("msg.client_refused", conn.RemoteAddr().String()))
		}
	}
}

// Addr returns the address of the listener, or nil before Serve.
func (g *GXBridge) Addr() net.Addr {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.ln == nil {
		return nil
	}
	return g.ln.Addr()
}

// Close stops the listener and the current client.
func (g *GXBridge) Close() error {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return nil
	}
	g.closed = true
	ln := g.ln
	g.mu.Unlock()
	var err error
	if ln != nil {
		err = ln.Close()
		if errors.Is(err, net.ErrClosed) {
			err = nil
		}
	}
	g.session.Close()
	return err
}

// Localize messages for the specified language.
// No errors is returned if language is not supported.
func (g *GXBridge) Localize(language language.Tag) {
	g.p = message.NewPrinter(language)
}
