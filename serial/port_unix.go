//go:build linux || darwin

package serial

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Gurux/gxcommon-go"
	"golang.org/x/sys/unix"
)

type port struct {
	fd   int
	open bool
	// Self pipe that wakes a pending poll on Close.
	r, w *os.File
	rfd  int
}

var dataBitFlags = map[int]tcflag{
	5: unix.CS5,
	6: unix.CS6,
	7: unix.CS7,
	8: unix.CS8,
}

func (s *port) isOpen() bool {
	return s.open
}

func openPort(s *port, cfg settings) error {
	fd, err := unix.Open(cfg.name, unix.O_RDWR|unix.O_NOCTTY|unix.O_NONBLOCK, 0666)
	if err != nil {
		return fmt.Errorf("open %s: %w", cfg.name, err)
	}
	if err := configure(fd, cfg); err != nil {
		_ = unix.Close(fd)
		return err
	}
	r, w, err := os.Pipe()
	if err != nil {
		_ = unix.Close(fd)
		return err
	}
	rfd := int(r.Fd())
	_ = unix.SetNonblock(rfd, true)
	*s = port{fd: fd, open: true, r: r, w: w, rfd: rfd}
	return nil
}

// configure puts the line in raw mode with the requested framing.
func configure(fd int, cfg settings) error {
	t, err := unix.IoctlGetTermios(fd, reqGetTermios)
	if err != nil {
		return fmt.Errorf("tcgetattr failed: %w", err)
	}
	t.Cflag |= unix.CLOCAL | unix.CREAD
	t.Lflag &^= unix.ICANON | unix.ECHO | unix.ECHOE | unix.ECHOK | unix.ECHONL | unix.ISIG | unix.IEXTEN
	t.Oflag &^= unix.OPOST | unix.ONLCR | unix.OCRNL
	t.Iflag &^= unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IGNBRK | unix.INPCK | unix.ISTRIP | unix.IXON | unix.IXOFF
	t.Cflag &^= unix.CRTSCTS

	speed, ok := baudRates[int(cfg.baudRate)]
	if !ok {
		return fmt.Errorf("unsupported baud rate %d", int(cfg.baudRate))
	}
	setSpeed(t, speed)

	size, ok := dataBitFlags[cfg.dataBits]
	if !ok {
		return errors.New("invalid databits (must be 5..8)")
	}
	t.Cflag &^= unix.CSIZE
	t.Cflag |= size

	switch cfg.stopBits {
	case gxcommon.StopBitsOne:
		t.Cflag &^= unix.CSTOPB
	case gxcommon.StopBitsTwo:
		t.Cflag |= unix.CSTOPB
	default:
		return fmt.Errorf("invalid stopbits %s", cfg.stopBits)
	}

	t.Cflag &^= unix.PARENB | unix.PARODD | cmspar
	switch cfg.parity {
	case gxcommon.ParityNone:
	case gxcommon.ParityEven:
		t.Cflag |= unix.PARENB
	case gxcommon.ParityOdd:
		t.Cflag |= unix.PARENB | unix.PARODD
	case gxcommon.ParityMark:
		if cmspar == 0 {
			return errors.New("mark parity requested but CMSPAR not supported")
		}
		t.Cflag |= unix.PARENB | unix.PARODD | cmspar
	case gxcommon.ParitySpace:
		if cmspar == 0 {
			return errors.New("space parity requested but CMSPAR not supported")
		}
		t.Cflag |= unix.PARENB | cmspar
	default:
		return errors.New("invalid parity")
	}

	t.Cc[unix.VMIN] = 1
	t.Cc[unix.VTIME] = 0
	if err := unix.IoctlSetTermios(fd, reqSetTermios, t); err != nil {
		return fmt.Errorf("tcsetattr failed: %w", err)
	}
	return flushInput(fd)
}

func (s *port) read(buf []byte) (int, error) {
	pfds := []unix.PollFd{
		{Fd: int32(s.fd), Events: unix.POLLIN},
		{Fd: int32(s.rfd), Events: unix.POLLIN},
	}
	for {
		_, err := unix.Poll(pfds, pollTimeout)
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			return 0, err
		}
		if pfds[1].Revents != 0 {
			return 0, errClosing
		}
		if pfds[0].Revents&(unix.POLLERR|unix.POLLHUP|unix.POLLNVAL) != 0 {
			return 0, io.ErrUnexpectedEOF
		}
		if pfds[0].Revents&unix.POLLIN == 0 {
			continue
		}
		n, err := unix.Read(s.fd, buf)
		if err != nil {
			if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EINTR) {
				continue
			}
			return 0, err
		}
		if n == 0 {
			return 0, io.EOF
		}
		return n, nil
	}
}

func (s *port) write(data []byte) (int, error) {
	written := 0
	for len(data) != 0 {
		n, err := unix.Write(s.fd, data)
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			if errors.Is(err, unix.EAGAIN) {
				pfds := []unix.PollFd{{Fd: int32(s.fd), Events: unix.POLLOUT}}
				if _, err := unix.Poll(pfds, 1000); err != nil && !errors.Is(err, unix.EINTR) {
					return written, err
				}
				continue
			}
			return written, err
		}
		written += n
		data = data[n:]
	}
	return written, nil
}

func (s *port) wake() {
	if s.w != nil {
		_, _ = s.w.Write([]byte{0})
	}
}

func (s *port) close() error {
	if !s.open {
		return nil
	}
	if s.r != nil {
		_ = s.r.Close()
	}
	if s.w != nil {
		_ = s.w.Close()
	}
	err := unix.Close(s.fd)
	*s = port{}
	return err
}
