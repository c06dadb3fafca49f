// Package serial provides a raw serial port for the bridge.
// The port is opened with the configured framing (baud rate, data bits,
// parity, stop bits) in raw mode. A reader goroutine delivers every chunk
// read from the line to the receive handler given to Open.
//
// Example
//
//	p := serial.NewPort("/dev/ttyUSB0", gxcommon.BaudRate(115200), 8, gxcommon.ParityNone, gxcommon.StopBitsOne, log)
//	if err := p.Open(func(data []byte) {
//	    // handle data
//	}); err != nil {
//	    // handle connect error
//	}
//	defer p.Close()
//	_ = p.WriteByte('A')
//
// Close unblocks the reader and waits for it to exit before releasing the
// device. PortNames lists the serial devices found on the host.
package serial
