//go:build windows

package serial

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unsafe"

	"github.com/Gurux/gxcommon-go"
	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

type port struct {
	h       windows.Handle
	ovRead  windows.Overlapped
	ovWrite windows.Overlapped
	// Manual reset event set by Close.
	closing windows.Handle
}

const (
	dcbFBinary         = 1 << 0
	dcbFParity         = 1 << 1
	dcbFDtrControlMask = 0x3 << 4
	dcbFErrorChar      = 1 << 10
	dcbFNull           = 1 << 11
	dcbFRtsControlMask = 0x3 << 12
	dcbFAbortOnError   = 1 << 14
)

func (s *port) isOpen() bool {
	return s.h != 0 && s.h != windows.InvalidHandle
}

// getPortNames retrieves the serial port names from the registry.
func getPortNames() ([]string, error) {
	const path = `HARDWARE\DEVICEMAP\SERIALCOMM`

	key, err := registry.OpenKey(registry.LOCAL_MACHINE, path, registry.QUERY_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return []string{}, nil
		}
		return nil, err
	}
	defer func() {
		_ = key.Close()
	}()

	valueNames, err := key.ReadValueNames(-1)
	if err != nil {
		return nil, err
	}
	var ports []string
	for _, name := range valueNames {
		if port, _, err := key.GetStringValue(name); err == nil {
			ports = append(ports, port)
		}
	}
	return ports, nil
}

func openPort(s *port, cfg settings) error {
	if strings.TrimSpace(cfg.name) == "" {
		return errors.New("invalid serial port name")
	}
	*s = port{}
	fail := func(err error) error {
		_ = s.close()
		return err
	}

	closing, err := windows.CreateEvent(nil, 1, 0, nil)
	if err != nil {
		return fmt.Errorf("CreateEvent(closing) failed: %w", err)
	}
	s.closing = closing

	h, err := windows.CreateFile(
		windows.StringToUTF16Ptr(`\\.\`+cfg.name),
		windows.GENERIC_READ|windows.GENERIC_WRITE,
		0,
		nil,
		windows.OPEN_EXISTING,
		windows.FILE_FLAG_OVERLAPPED,
		0,
	)
	if err != nil {
		return fail(fmt.Errorf("failed to open port %q: %w", cfg.name, err))
	}
	s.h = h

	if s.ovRead.HEvent, err = windows.CreateEvent(nil, 0, 0, nil); err != nil {
		return fail(fmt.Errorf("CreateEvent(read) failed: %w", err))
	}
	if s.ovWrite.HEvent, err = windows.CreateEvent(nil, 0, 0, nil); err != nil {
		return fail(fmt.Errorf("CreateEvent(write) failed: %w", err))
	}
	if err := s.configure(cfg); err != nil {
		return fail(fmt.Errorf("failed to update serial port settings: %w", err))
	}
	if err := windows.PurgeComm(s.h,
		windows.PURGE_TXCLEAR|windows.PURGE_TXABORT|windows.PURGE_RXCLEAR|windows.PURGE_RXABORT,
	); err != nil {
		return fail(fmt.Errorf("PurgeComm failed: %w", err))
	}
	return nil
}

func (s *port) configure(cfg settings) error {
	var d windows.DCB
	d.DCBlength = uint32(unsafe.Sizeof(d))
	if err := windows.GetCommState(s.h, &d); err != nil {
		return fmt.Errorf("GetCommState failed: %w", err)
	}
	d.BaudRate = uint32(cfg.baudRate)
	d.ByteSize = byte(cfg.dataBits)
	d.Parity = byte(cfg.parity)
	switch cfg.stopBits {
	case gxcommon.StopBitsOne:
		d.StopBits = 0 // ONESTOPBIT
	case gxcommon.StopBitsTwo:
		d.StopBits = 2 // TWOSTOPBITS
	default:
		return gxcommon.ErrInvalidArgument
	}
	// Binary mode, no flow control, RTS and DTR disabled.
	d.Flags &^= dcbFParity | dcbFNull | dcbFErrorChar | dcbFAbortOnError | dcbFDtrControlMask | dcbFRtsControlMask
	d.Flags |= dcbFBinary
	if d.Parity != 0 {
		d.Flags |= dcbFParity
	}
	if err := windows.SetCommState(s.h, &d); err != nil {
		return fmt.Errorf("SetCommState failed: %w", err)
	}
	return nil
}

func (s *port) bytesToRead() (int, error) {
	var flags uint32
	var st windows.ComStat
	if err := windows.ClearCommError(s.h, &flags, &st); err != nil {
		return 0, fmt.Errorf("ClearCommError failed: %w", err)
	}
	return int(st.CBInQue), nil
}

// closed reports whether Close has signalled the closing event.
func (s *port) closed() bool {
	r, err := windows.WaitForSingleObject(s.closing, 0)
	return err == nil && r == windows.WAIT_OBJECT_0
}

func (s *port) read(buf []byte) (int, error) {
	// Without read timeouts ReadFile waits until buf is full, so never ask
	// for more than is queued.
	count, err := s.bytesToRead()
	if err != nil {
		if s.closed() {
			return 0, errClosing
		}
		return 0, err
	}
	count = min(max(count, 1), len(buf))

	var n uint32
	_ = windows.ResetEvent(s.ovRead.HEvent)
	err = windows.ReadFile(s.h, buf[:count], &n, &s.ovRead)
	if err == nil {
		return int(n), nil
	}
	if !errors.Is(err, windows.ERROR_IO_PENDING) {
		if s.closed() {
			return 0, errClosing
		}
		return 0, fmt.Errorf("read failed: %w", err)
	}
	handles := []windows.Handle{s.closing, s.ovRead.HEvent}
	idx, err := windows.WaitForMultipleObjects(handles, false, windows.INFINITE)
	if err != nil {
		if s.closed() {
			return 0, errClosing
		}
		return 0, fmt.Errorf("read wait failed: %w", err)
	}
	if idx == windows.WAIT_OBJECT_0 {
		_ = windows.CancelIoEx(s.h, &s.ovRead)
		return 0, errClosing
	}
	if err := windows.GetOverlappedResult(s.h, &s.ovRead, &n, true); err != nil {
		if errors.Is(err, windows.ERROR_OPERATION_ABORTED) || s.closed() {
			return 0, errClosing
		}
		return 0, fmt.Errorf("read failed: %w", err)
	}
	return int(n), nil
}

func (s *port) write(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, nil
	}
	var n uint32
	_ = windows.ResetEvent(s.ovWrite.HEvent)
	err := windows.WriteFile(s.h, data, &n, &s.ovWrite)
	if err == nil {
		return len(data), nil
	}
	if !errors.Is(err, windows.ERROR_IO_PENDING) {
		return 0, fmt.Errorf("write failed: %w", err)
	}
	timeout := uint32(time.Second / time.Millisecond)
	handles := []windows.Handle{s.closing, s.ovWrite.HEvent}
	idx, err := windows.WaitForMultipleObjects(handles, false, timeout)
	if err != nil {
		return 0, fmt.Errorf("write wait failed: %w", err)
	}
	if idx == windows.WAIT_OBJECT_0 {
		return 0, errClosing
	}
	if err := windows.GetOverlappedResult(s.h, &s.ovWrite, &n, true); err != nil {
		return 0, fmt.Errorf("write failed: %w", err)
	}
	return int(n), nil
}

func (s *port) wake() {
	if s.closing != 0 {
		_ = windows.SetEvent(s.closing)
	}
}

func (s *port) close() error {
	if s.isOpen() {
		_ = windows.CancelIoEx(s.h, nil)
	}
	for _, h := range []windows.Handle{s.ovRead.HEvent, s.ovWrite.HEvent, s.h, s.closing} {
		if h != 0 && h != windows.InvalidHandle {
			_ = windows.CloseHandle(h)
		}
	}
	*s = port{}
	return nil
}
