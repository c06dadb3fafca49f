package serial

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
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/Gurux/gxcommon-go"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ReadSize is the largest burst handed to the receive handler at once.
const ReadSize = 1024

// errClosing is returned by the platform read when Close woke it up.
var errClosing = errors.New("serial port closing")

// settings is what the platform back ends need to open a port.
type settings struct {
	name     string
	baudRate gxcommon.BaudRate
	dataBits int
	parity   gxcommon.Parity
	stopBits gxcommon.StopBits
}

// Port is a serial port whose received bytes are delivered to a handler from
// a dedicated goroutine.
type Port struct {
	Name     string
	baudRate gxcommon.BaudRate
	dataBits int
	parity   gxcommon.Parity
	stopBits gxcommon.StopBits

	// mu guards s. Open and Close hold it exclusively, writers shared.
	mu   sync.RWMutex
	wg   sync.WaitGroup
	stop chan struct{}
	s    port

	bytesSent     atomic.Uint64
	bytesReceived atomic.Uint64

	log *zap.Logger
	// Printer for localized messages.
	p *message.Printer
}

// NewPort returns a closed port with the given settings.
func NewPort(name string,
	baudRate gxcommon.BaudRate,
	dataBits int,
	parity gxcommon.Parity,
	stopBits gxcommon.StopBits,
	log *zap.Logger) *Port {
	if log == nil {
		log = zap.NewNop()
	}
	p := &Port{Name: name, baudRate: baudRate, dataBits: dataBits, parity: parity, stopBits: stopBits, log: log}
	p.Localize(language.AmericanEnglish)
	return p
}

// PortNames returns the serial ports found on this machine.
func PortNames() ([]string, error) {
	return getPortNames()
}

// BaudRate returns the used baud rate.
func (p *Port) BaudRate() gxcommon.BaudRate {
	return p.baudRate
}

// DataBits returns the amount of the data bits.
func (p *Port) DataBits() int {
	return p.dataBits
}

// Parity returns used parity.
func (p *Port) Parity() gxcommon.Parity {
	return p.parity
}

// StopBits returns used stop bits.
func (p *Port) StopBits() gxcommon.StopBits {
	return p.stopBits
}

// BytesSent returns the number of bytes written since the port was created.
func (p *Port) BytesSent() uint64 {
	return p.bytesSent.Load()
}

// BytesReceived returns the number of bytes read since the port was created.
func (p *Port) BytesReceived() uint64 {
	return p.bytesReceived.Load()
}

func (p *Port) String() string {
	return fmt.Sprintf("%s %s %d %s %s", p.Name, p.baudRate, p.dataBits, p.stopBits, p.parity)
}

// Validate checks the settings before Open.
func (p *Port) Validate() error {
	if p.Name == "" {
		return errors.New(p.p.Sprintf("msg.no_serial_port_selected"))
	}
	if p.dataBits < 5 || p.dataBits > 8 {
		return errors.New(p.p.Sprintf("msg.invalid_data_bits", p.dataBits))
	}
	if p.baudRate <= 0 {
		return errors.New(p.p.Sprintf("msg.invalid_baud_rate", int(p.baudRate)))
	}
	return nil
}

// IsOpen reports whether the port is open.
func (p *Port) IsOpen() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.s.isOpen()
}

// Open opens the port and starts delivering received bytes to onReceived.
// onReceived runs on the reader goroutine; the slice it gets is reused after
// it returns.
func (p *Port) Open(onReceived func(data []byte)) error {
	if onReceived == nil {
		return errors.New("receive handler is nil")
	}
	if err := p.Validate(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.s.isOpen() {
		return nil
	}
	p.log.Info(p.p.Sprintf("msg.opening", p.Name), zap.Stringer("settings", p))
	err := openPort(&p.s, settings{
		name:     p.Name,
		baudRate: p.baudRate,
		dataBits: p.dataBits,
		parity:   p.parity,
		stopBits: p.stopBits,
	})
	if err != nil {
		p.log.Error(p.p.Sprintf("msg.open_failed", p.Name, err))
		return err
	}
	p.stop = make(chan struct{})
	p.wg.Add(1)
	go p.reader(onReceived, p.stop)
	p.log.Info(p.p.Sprintf("msg.opened", p.Name))
	return nil
}

func (p *Port) reader(onReceived func(data []byte), stop <-chan struct{}) {
	defer p.wg.Done()
	buf := make([]byte, ReadSize)
	for {
		n, err := p.s.read(buf)
		select {
		case <-stop:
			return
		default:
		}
		if err != nil {
			if !errors.Is(err, errClosing) {
				p.log.Error(p.p.Sprintf("msg.read_failed", p.Name, err))
			}
			return
		}
		if n != 0 {
			p.bytesReceived.Add(uint64(n))
			onReceived(buf[:n])
		}
	}
}

// Write transmits data.
func (p *Port) Write(data []byte) (int, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.s.isOpen() {
		return 0, errors.New(p.p.Sprintf("msg.port_not_open", p.Name))
	}
	n, err := p.s.write(data)
	p.bytesSent.Add(uint64(n))
	return n, err
}

// WriteByte transmits one byte.
func (p *Port) WriteByte(c byte) error {
	b := [1]byte{c}
	_, err := p.Write(b[:])
	return err
}

// Close stops the reader goroutine and closes the port.
func (p *Port) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.s.isOpen() {
		return nil
	}
	p.log.Info(p.p.Sprintf("msg.closing_connection", p.Name))
	close(p.stop)
	p.s.wake()
	p.wg.Wait()
	err := p.s.close()
	p.log.Info(p.p.Sprintf("msg.connection_closed", p.Name))
	return err
}

// Localize messages for the specified language.
// No errors is returned if language is not supported.
func (p *Port) Localize(language language.Tag) {
	p.p = message.NewPrinter(language)
}
