package gxbridge

import (
	"context"
	"io"
	"net"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/text/language"
)

type testBridge struct {
	*GXBridge
	uart *recordingUART
	addr string
}

func startBridge(t *testing.T, policy AdmissionPolicy) *testBridge {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Address = "127.0.0.1"
	cfg.Port = 0
	cfg.KeepClient = policy == KeepClient
	uart := &recordingUART{}
	b, err := NewGXBridge(cfg, uart, zaptest.NewLogger(t))
	require.NoError(t, err)

	ln, err := net.Listen("tcp", cfg.ListenAddress())
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- b.Serve(ctx, ln)
	}()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(waitFor):
			t.Error("Serve did not return")
		}
	})
	return &testBridge{GXBridge: b, uart: uart, addr: ln.Addr().String()}
}

func (b *testBridge) dial(t *testing.T) net.Conn {
	t.Helper()
	conn, err := net.Dial("tcp", b.addr)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = conn.Close()
	})
	return conn
}

func readN(t *testing.T, conn net.Conn, n int) []byte {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(waitFor)))
	buf := make([]byte, n)
	_, err := io.ReadFull(conn, buf)
	require.NoError(t, err)
	return buf
}

func assertEOF(t *testing.T, conn net.Conn) {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(waitFor)))
	_, err := conn.Read(make([]byte, 1))
	assert.Error(t, err)
}

func TestNewGXBridgeValidates(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StagingSize = 1
	_, err := NewGXBridge(cfg, &recordingUART{}, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewGXBridge(DefaultConfig(), nil, nil)
	assert.Error(t, err)
}

func TestBridgeEndToEnd(t *testing.T) {
	b := startBridge(t, KeepClient)
	conn := b.dial(t)
	require.Eventually(t, func() bool {
		return b.State() == SessionConnected
	}, waitFor, time.Millisecond)

	_, err := conn.Write([]byte("AT\r\n"))
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return len(b.uart.Bytes()) == 4
	}, waitFor, time.Millisecond)
	assert.Equal(t, []byte{'A', 'T', '\r', '\n'}, b.uart.Bytes())

	b.Receive([]byte("OK\r\n"))
	assert.Equal(t, []byte("OK\r\n"), readN(t, conn, 4))
	require.Eventually(t, func() bool {
		return testutil.ToFloat64(b.Metrics().Uplink) == 4
	}, waitFor, time.Millisecond)
}

func TestBridgeDropsWhileIdle(t *testing.T) {
	b := startBridge(t, KeepClient)
	b.Receive([]byte("lost"))
	assert.Equal(t, 4.0, testutil.ToFloat64(b.Metrics().Dropped))
	p, s := b.arb.Buffered()
	assert.Equal(t, 0, p)
	assert.Equal(t, 0, s)

	conn := b.dial(t)
	require.Eventually(t, func() bool {
		return b.State() == SessionConnected
	}, waitFor, time.Millisecond)
	b.Receive([]byte("kept"))
	assert.Equal(t, []byte("kept"), readN(t, conn, 4))
}

func TestBridgeKeepClient(t *testing.T) {
	b := startBridge(t, KeepClient)
	first := b.dial(t)
	require.Eventually(t, func() bool {
		return b.State() == SessionConnected
	}, waitFor, time.Millisecond)

	second := b.dial(t)
	assertEOF(t, second)
	assert.Equal(t, 1.0, testutil.ToFloat64(b.Metrics().Refused))

	b.Receive([]byte("hi"))
	assert.Equal(t, []byte("hi"), readN(t, first, 2))
}

func TestBridgeReplaceClient(t *testing.T) {
	b := startBridge(t, ReplaceClient)
	first := b.dial(t)
	require.Eventually(t, func() bool {
		return testutil.ToFloat64(b.Metrics().Accepted) == 1
	}, waitFor, time.Millisecond)

	second := b.dial(t)
	assertEOF(t, first)
	require.Eventually(t, func() bool {
		return testutil.ToFloat64(b.Metrics().Accepted) == 2
	}, waitFor, time.Millisecond)

	b.Receive([]byte("hi"))
	assert.Equal(t, []byte("hi"), readN(t, second, 2))
}

func TestBridgeClientReconnects(t *testing.T) {
	b := startBridge(t, KeepClient)
	first := b.dial(t)
	require.Eventually(t, func() bool {
		return b.State() == SessionConnected
	}, waitFor, time.Millisecond)
	require.NoError(t, first.Close())
	require.Eventually(t, func() bool {
		return b.State() == SessionIdle
	}, waitFor, time.Millisecond)

	second := b.dial(t)
	require.Eventually(t, func() bool {
		return b.State() == SessionConnected
	}, waitFor, time.Millisecond)
	b.Receive([]byte("again"))
	assert.Equal(t, []byte("again"), readN(t, second, 5))
}

func TestBridgeServeAfterClose(t *testing.T) {
	b, err := NewGXBridge(DefaultConfig(), &recordingUART{}, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NoError(t, b.Close())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	assert.ErrorIs(t, b.Serve(context.Background(), ln), ErrBridgeClosed)
}

func TestBridgeCloseStopsServe(t *testing.T) {
	b, err := NewGXBridge(DefaultConfig(), &recordingUART{}, zaptest.NewLogger(t))
	require.NoError(t, err)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	done := make(chan error, 1)
	go func() {
		done <- b.Serve(context.Background(), ln)
	}()
	require.Eventually(t, func() bool {
		return b.Addr() != nil
	}, waitFor, time.Millisecond)

	conn, err := net.Dial("tcp", ln.Addr().String())
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool {
		return b.State() == SessionConnected
	}, waitFor, time.Millisecond)

	require.NoError(t, b.Close())
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(waitFor):
		t.Fatal("Serve did not return")
	}
	assert.Equal(t, SessionIdle, b.State())
	assertEOF(t, conn)
}

func TestBridgeRegisterMetrics(t *testing.T) {
	b, err := NewGXBridge(DefaultConfig(), &recordingUART{}, nil)
	require.NoError(t, err)
	reg := prometheus.NewRegistry()
	require.NoError(t, b.RegisterMetrics(reg))
	assert.Error(t, b.RegisterMetrics(reg))

	n, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 9, n)
}

func TestBridgeLocalize(t *testing.T) {
	b, err := NewGXBridge(DefaultConfig(), &recordingUART{}, nil)
	require.NoError(t, err)
	b.Localize(language.Finnish)
	assert.Equal(t, "Asiakas osoitteesta x", b.p.Sprintf("msg.client_from", "x"))
	b.Localize(language.AmericanEnglish)
	assert.Equal(t, "Client from x", b.p.Sprintf("msg.client_from", "x"))
}
