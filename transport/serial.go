// Package transport collects the concrete session.Driver implementations
// this stack ships: a direct serial UART link and (in transport/usb) an
// HCI-over-USB link via a vendor-specific Controller's bulk/control
// endpoints.
package transport

import (
	"context"
	"fmt"

	"golang.org/x/sys/unix"
)

// SerialDriver is a session.Driver backed by a plain UART device node
// (/dev/ttyUSB0, /dev/ttyACM0, and the like). It talks raw H4-framed HCI
// octets directly to the Controller; it never attaches the kernel's own
// N_HCI line discipline, since that would hand the port to the kernel
// Bluetooth stack instead of to this package's own session engine.
type SerialDriver struct {
	fd int
}

// OpenSerial opens path and puts it into raw mode at baud, 8 data bits,
// no parity, one stop bit, with hardware flow control either enabled or
// disabled per rtscts. Most BLE Controller UART transports run at a
// high fixed baud (often 115200 or 1000000) with RTS/CTS flow control;
// callers read the Controller's datasheet for the right combination.
func OpenSerial(path string, baud uint32, rtscts bool) (*SerialDriver, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_NOCTTY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	termios, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("get termios on %s: %w", path, err)
	}

	unix.CfmakeRaw(termios)
	termios.Cflag &^= unix.CSIZE | unix.PARENB | unix.CSTOPB
	termios.Cflag |= unix.CS8 | unix.CLOCAL | unix.CREAD
	if rtscts {
		termios.Cflag |= unix.CRTSCTS
	} else {
		termios.Cflag &^= unix.CRTSCTS
	}
	termios.Cc[unix.VMIN] = 0
	termios.Cc[unix.VTIME] = 0

	speed, err := baudSpeed(baud)
	if err != nil {
		unix.Close(fd)
		return nil, err
	}
	termios.Ispeed = speed
	termios.Ospeed = speed
	termios.Cflag &^= unix.CBAUD | unix.CBAUDEX
	termios.Cflag |= speed

	if err := unix.IoctlSetTermios(fd, unix.TCSETS, termios); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("set termios on %s: %w", path, err)
	}

	return &SerialDriver{fd: fd}, nil
}

func baudSpeed(baud uint32) (uint32, error) {
	switch baud {
	case 9600:
		return unix.B9600, nil
	case 19200:
		return unix.B19200, nil
	case 38400:
		return unix.B38400, nil
	case 57600:
		return unix.B57600, nil
	case 115200:
		return unix.B115200, nil
	case 230400:
		return unix.B230400, nil
	case 460800:
		return unix.B460800, nil
	case 921600:
		return unix.B921600, nil
	case 1000000:
		return unix.B1000000, nil
	case 2000000:
		return unix.B2000000, nil
	default:
		return 0, fmt.Errorf("unsupported baud rate %d", baud)
	}
}

// Close closes the underlying file descriptor.
func (d *SerialDriver) Close() error {
	return unix.Close(d.fd)
}

// Write writes buf to the port. The port is opened O_NONBLOCK so a
// short write against a full kernel tty buffer is retried until ctx is
// done rather than silently dropping bytes.
func (d *SerialDriver) Write(ctx context.Context, buf []byte) (int, error) {
	written := 0
	for written < len(buf) {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		n, err := unix.Write(d.fd, buf[written:])
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				if werr := waitWritable(ctx, d.fd); werr != nil {
					return written, werr
				}
				continue
			}
			return written, err
		}
		written += n
	}
	return written, nil
}

// Read reads at least one byte into buf, blocking on ctx until data is
// available. O_NONBLOCK means a bare read returns EAGAIN immediately
// when the Controller has nothing queued, so Read parks on poll(2)
// between attempts instead of busy-spinning.
func (d *SerialDriver) Read(ctx context.Context, buf []byte) (int, error) {
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		n, err := unix.Read(d.fd, buf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				if werr := waitReadable(ctx, d.fd); werr != nil {
					return 0, werr
				}
				continue
			}
			return 0, err
		}
		if n == 0 {
			if werr := waitReadable(ctx, d.fd); werr != nil {
				return 0, werr
			}
			continue
		}
		return n, nil
	}
}

const (
	pollTimeoutMillis = 100
)

// waitReadable polls fd for readability in small slices so ctx
// cancellation is never blocked behind an indefinite poll(2) call.
func waitReadable(ctx context.Context, fd int) error {
	return waitPoll(ctx, fd, unix.POLLIN)
}

func waitWritable(ctx context.Context, fd int) error {
	return waitPoll(ctx, fd, unix.POLLOUT)
}

func waitPoll(ctx context.Context, fd int, events int16) error {
	fds := []unix.PollFd{{Fd: int32(fd), Events: events}}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, err := unix.Poll(fds, pollTimeoutMillis)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return err
		}
		if n > 0 {
			return nil
		}
	}
}
