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
	"errors"
	"io"
	"net"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionState is the state of the single client slot.
type SessionState int32

const (
	// SessionIdle means no client is served.
	SessionIdle SessionState = iota
	// SessionConnected means a client is served.
	SessionConnected
	// SessionClosing is reported while a client is torn down.
	SessionClosing
)

func (s SessionState) String() string {
	switch s {
	case SessionIdle:
		return "Idle"
	case SessionConnected:
		return "Connected"
	case SessionClosing:
		return "Closing"
	}
	return "SessionState(" + strconv.Itoa(int(s)) + ")"
}

// UART is the serial side of the bridge.
type UART interface {
	// WriteByte transmits one byte.
	WriteByte(c byte) error
}

// StateEventArgs describes a state change of the client slot.
type StateEventArgs struct {
	// Session identifies the connection.
	Session uuid.UUID
	// Remote is the address of the client.
	Remote string
	State  SessionState
}

// StateHandler is called when the client slot changes state.
type StateHandler func(e StateEventArgs)

// ErrorHandler is called when a network failure ends a session.
type ErrorHandler func(session uuid.UUID, err error)

// link is one admitted connection and the two tasks serving it.
type link struct {
	id     uuid.UUID
	remote string
	conn   net.Conn
	out    []byte
	in     []byte
	log    *zap.Logger

	stop chan struct{}
	once sync.Once
	wg   sync.WaitGroup
}

// shutdown closes the connection and releases the drain task.
// The tasks exit on their own; use wg.Wait to join them.
func (l *link) shutdown() {
	l.once.Do(func() {
		close(l.stop)
		_ = l.conn.Close()
	})
}

// Session is the single client slot. It admits connections according to the
// admission policy and runs a drain task (serial to network) and a relay task
// (network to serial) for the admitted one.
type Session struct {
	arb    *Arbitrator
	uart   UART
	policy AdmissionPolicy

	sendSize    int
	receiveSize int

	log     *zap.Logger
	metrics *Metrics

	// admitMu serializes Admit and Close.
	admitMu sync.Mutex

	mu  sync.Mutex
	cur *link
	// ended is a link torn down by its own task. The next Admit or Close
	// joins it.
	ended   *link
	onState StateHandler
	onErr   ErrorHandler

	state atomic.Int32
}

// NewSession returns an idle session that buffers serial data in arb and
// transmits network data through uart.
func NewSession(arb *Arbitrator, uart UART, cfg Config, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Session{
		arb:         arb,
		uart:        uart,
		policy:      cfg.Policy(),
		sendSize:    cfg.SendSize,
		receiveSize: cfg.ReceiveSize,
		log:         log,
	}
	s.metrics = NewMetrics(arb, s.Connected)
	return s
}

// Metrics returns the session counters.
func (s *Session) Metrics() *Metrics {
	return s.metrics
}

// State returns the current state.
func (s *Session) State() SessionState {
	return SessionState(s.state.Load())
}

// Connected reports whether a client is served.
func (s *Session) Connected() bool {
	return s.State() == SessionConnected
}

// SetOnStateChange sets the state change handler.
// The handler runs on a session goroutine and must not call Close.
func (s *Session) SetOnStateChange(value StateHandler) {
	s.mu.Lock()
	s.onState = value
	s.mu.Unlock()
}

// SetOnError sets the handler for session ending network failures.
// The handler runs on a session goroutine and must not call Close.
func (s *Session) SetOnError(value ErrorHandler) {
	s.mu.Lock()
	s.onErr = value
	s.mu.Unlock()
}

// Admit hands a new connection to the session. It returns false when the
// connection was refused and closed. Under ReplaceClient the current client
// is closed and its tasks are joined before the buffers are reset and the new
// client's tasks start.
func (s *Session) Admit(conn net.Conn) bool {
	s.admitMu.Lock()
	defer s.admitMu.Unlock()

	s.mu.Lock()
	prev, ended := s.cur, s.ended
	if s.Connected() && s.policy == KeepClient {
		s.mu.Unlock()
		_ = conn.Close()
		s.metrics.Refused.Inc()
		s.log.Info("client refused", zap.Stringer("remote", conn.RemoteAddr()))
		return false
	}
	s.ended = nil
	s.mu.Unlock()

	if ended != nil {
		ended.wg.Wait()
	}
	if prev != nil {
		if s.Connected() {
			s.metrics.Replaced.Inc()
			prev.log.Info("client replaced", zap.Stringer("by", conn.RemoteAddr()))
		}
		s.stop(prev)
	}

	s.arb.Truncate()

	l := &link{
		id:     uuid.New(),
		remote: conn.RemoteAddr().String(),
		conn:   conn,
		out:    make([]byte, s.sendSize),
		in:     make([]byte, s.receiveSize),
		stop:   make(chan struct{}),
	}
	l.log = s.log.With(zap.String("session", l.id.String()), zap.String("remote", l.remote))

	s.mu.Lock()
	s.cur = l
	s.state.Store(int32(SessionConnected))
	s.mu.Unlock()
	s.metrics.Accepted.Inc()
	l.log.Info("client connected")
	s.statef(l, SessionConnected)

	l.wg.Add(2)
	go s.drain(l)
	go s.relay(l)
	return true
}

// Close ends the current session, if any, and waits for its tasks.
func (s *Session) Close() {
	s.admitMu.Lock()
	defer s.admitMu.Unlock()
	s.mu.Lock()
	l, ended := s.cur, s.ended
	s.ended = nil
	s.mu.Unlock()
	if ended != nil {
		ended.wg.Wait()
	}
	if l != nil {
		s.stop(l)
	}
}

// stop tears l down and joins its tasks.
func (s *Session) stop(l *link) {
	s.mu.Lock()
	active := s.cur == l && s.Connected()
	if active {
		s.state.Store(int32(SessionClosing))
	}
	s.mu.Unlock()
	if active {
		s.statef(l, SessionClosing)
	}
	l.shutdown()
	l.wg.Wait()

	s.mu.Lock()
	if s.cur == l {
		s.cur = nil
	}
	if s.ended == l {
		s.ended = nil
	}
	s.mu.Unlock()
	if active {
		s.state.Store(int32(SessionIdle))
		l.log.Info("client closed")
		s.statef(l, SessionIdle)
	}
}

// fail is called by a task that saw a terminal socket error. Only the first
// failure of an active link is reported; the sibling task and intentional
// closes land here too and are ignored.
func (s *Session) fail(l *link, err error) {
	s.mu.Lock()
	active := s.cur == l && s.Connected()
	if active {
		s.state.Store(int32(SessionClosing))
	}
	s.mu.Unlock()
	l.shutdown()
	if !active {
		return
	}
	s.statef(l, SessionClosing)
	l.log.Info("client disconnected", zap.Error(err))
	s.errorf(l, err)

	s.mu.Lock()
	if s.cur == l {
		s.cur = nil
		s.ended = l
		s.state.Store(int32(SessionIdle))
	}
	s.mu.Unlock()
	s.statef(l, SessionIdle)
}

// drain waits for the doorbell and writes everything queued in the primary
// buffer, up to the send buffer size, to the client.
func (s *Session) drain(l *link) {
	defer l.wg.Done()
	for {
		select {
		case <-l.stop:
			return
		case <-s.arb.Doorbell():
		}
		select {
		case <-l.stop:
			// Pass the wakeup on to the next client's drain task.
			s.arb.ring()
			return
		default:
		}
		n, remaining := s.arb.Drain(l.out)
		if remaining != 0 {
			s.arb.ring()
		}
		if n == 0 {
			continue
		}
		w, err := l.conn.Write(l.out[:n])
		if err == nil && w != n {
			err = io.ErrShortWrite
		}
		if err != nil {
			s.fail(l, &SocketError{Op: "write", Err: err})
			return
		}
		s.metrics.Uplink.Add(float64(n))
	}
}

// relay copies bytes received from the client to the UART one at a time.
func (s *Session) relay(l *link) {
	defer l.wg.Done()
	for {
		n, err := l.conn.Read(l.in)
		for i := 0; i < n; i++ {
			if werr := s.uart.WriteByte(l.in[i]); werr != nil {
				l.log.Warn("serial write failed", zap.Error(werr), zap.Int("dropped", n-i))
				break
			}
		}
		if n > 0 {
			s.metrics.Downlink.Add(float64(n))
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = ErrSocketClosed
			}
			s.fail(l, &SocketError{Op: "read", Err: err})
			return
		}
	}
}

func (s *Session) statef(l *link, state SessionState) {
	s.mu.Lock()
	cb := s.onState
	s.mu.Unlock()
	if cb != nil {
		cb(StateEventArgs{Session: l.id, Remote: l.remote, State: state})
	}
}

func (s *Session) errorf(l *link, err error) {
	s.mu.Lock()
	cb := s.onErr
	s.mu.Unlock()
	if cb != nil {
		cb(l.id, err)
	}
}
