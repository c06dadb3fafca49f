//go:build darwin

package serial

import (
	"path/filepath"
	"unsafe"

	"golang.org/x/sys/unix"
)

const (
	reqGetTermios = unix.TIOCGETA
	reqSetTermios = unix.TIOCSETA
	cmspar        = 0
	// Close might hang sometimes if poll waits forever.
	pollTimeout = 100
)

type tcflag = uint64

// baudRates maps a baud rate to the corresponding constant in the unix package.
var baudRates = map[int]uint32{
	50:     unix.B50,
	75:     unix.B75,
	110:    unix.B110,
	134:    unix.B134,
	150:    unix.B150,
	200:    unix.B200,
	300:    unix.B300,
	600:    unix.B600,
	1200:   unix.B1200,
	1800:   unix.B1800,
	2400:   unix.B2400,
	4800:   unix.B4800,
	9600:   unix.B9600,
	19200:  unix.B19200,
	38400:  unix.B38400,
	57600:  unix.B57600,
	115200: unix.B115200,
	230400: unix.B230400,
}

func setSpeed(t *unix.Termios, speed uint32) {
	t.Ispeed = uint64(speed)
	t.Ospeed = uint64(speed)
}

func flushInput(fd int) error {
	v := unix.TCIFLUSH
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), uintptr(unix.TIOCFLUSH), uintptr(unsafe.Pointer(&v)))
	if errno != 0 {
		return errno
	}
	return nil
}

// getPortNames returns a list of available serial port device paths on macOS.
func getPortNames() ([]string, error) {
	var devices []string
	seen := make(map[string]struct{})
	for _, pattern := range []string{"/dev/tty.*", "/dev/cu.*"} {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, err
		}
		for _, device := range matches {
			if _, ok := seen[device]; !ok {
				seen[device] = struct{}{}
				devices = append(devices, device)
			}
		}
	}
	return devices, nil
}
