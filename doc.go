// Package gxbridge bridges a serial line (UART) to a single TCP client.
// Bytes received from the line are buffered and streamed to the connected
// client; bytes read from the client are written to the line one at a time.
//
// Features
//
//   - Single client slot with Keep or Replace admission of new clients.
//   - Overwrite-oldest ring buffer for line data, sized by configuration.
//   - Non-blocking producer: bursts arriving while the drain task holds the
//     buffer go to a small staging buffer and are merged on the next burst.
//   - Coalesced wakeups: one pending doorbell for any number of bursts.
//   - Events: session state changes and session errors.
//   - Prometheus counters for admissions, traffic and overflow.
//
// # Construction
//
// Use NewGXBridge with a Config and a UART. Feed line data to Receive, for
// example from the receive handler of a serial.Port.
//
// Example
//
//	media := serial.NewPort("/dev/ttyUSB0", gxcommon.BaudRate(115200), 8, gxcommon.ParityNone, gxcommon.StopBitsOne, log)
//	bridge, err := gxbridge.NewGXBridge(gxbridge.DefaultConfig(), media, log)
//	if err != nil {
//	    // handle configuration error
//	}
//	if err := media.Open(bridge.Receive); err != nil {
//	    // handle connect error
//	}
//	defer media.Close()
//
//	bridge.SetOnStateChange(func(e gxbridge.StateEventArgs) {
//	    // e.Session, e.Remote, e.State
//	})
//	err = bridge.ListenAndServe(ctx)
//
// # Overflow
//
// When the client reads slower than the line produces, the oldest buffered
// bytes are discarded. Data received while no client is connected is
// dropped and counted.
//
// # Notes
//
// The zero value of GXBridge is not ready for use; always construct via
// NewGXBridge. Handlers run on session goroutines and should not block.
// A handler must not call Close: Close waits for the goroutine the handler
// runs on.
package gxbridge
