//go:build linux || darwin

package socket

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

type (
	rawSockaddrAny   = unix.RawSockaddrAny
	rawSockaddrInet4 = unix.RawSockaddrInet4
	rawSockaddrInet6 = unix.RawSockaddrInet6
	socklen          = uint32
)

const (
	afInet  = unix.AF_INET
	afInet6 = unix.AF_INET6

	errInterrupted = unix.EINTR
	errAgain       = unix.EAGAIN
	errInProgress  = unix.EINPROGRESS
)

type posixPlatform struct{}

var backend platform = posixPlatform{}

func (posixPlatform) socket(v6 bool) (Handle, error) {
	family := unix.AF_INET
	if v6 {
		family = unix.AF_INET6
	}
	fd, err := newStreamSocket(family)
	if err != nil {
		return InvalidHandle, err
	}
	return Handle(fd), nil
}

func (posixPlatform) close(h Handle) error {
	return unix.Close(int(h))
}

func (posixPlatform) setNoDelay(h Handle) error {
	return unix.SetsockoptInt(int(h), unix.IPPROTO_TCP, unix.TCP_NODELAY, 1)
}

func (posixPlatform) setNonblock(h Handle) error {
	return unix.SetNonblock(int(h), true)
}

func (posixPlatform) setNoSigpipe(h Handle) error {
	return noSigpipe(int(h))
}

// connect, getsockname and getpeername are issued raw so the kernel sees
// exactly the bytes produced by the codec.

func (posixPlatform) connect(h Handle, sa *rawSockaddrAny, n socklen) error {
	_, _, e := unix.Syscall(unix.SYS_CONNECT, uintptr(h), uintptr(unsafe.Pointer(sa)), uintptr(n))
	if e != 0 {
		return e
	}
	return nil
}

func (posixPlatform) getsockname(h Handle, sa *rawSockaddrAny, n *socklen) error {
	_, _, e := unix.Syscall(unix.SYS_GETSOCKNAME, uintptr(h), uintptr(unsafe.Pointer(sa)), uintptr(unsafe.Pointer(n)))
	if e != 0 {
		return e
	}
	return nil
}

func (posixPlatform) getpeername(h Handle, sa *rawSockaddrAny, n *socklen) error {
	_, _, e := unix.Syscall(unix.SYS_GETPEERNAME, uintptr(h), uintptr(unsafe.Pointer(sa)), uintptr(unsafe.Pointer(n)))
	if e != 0 {
		return e
	}
	return nil
}

func (posixPlatform) send(h Handle, p []byte) (int, error) {
	return unix.Write(int(h), p)
}

func (posixPlatform) recv(h Handle, p []byte) (int, error) {
	return unix.Read(int(h), p)
}

func (posixPlatform) pendingError(h Handle) (int, error) {
	return unix.GetsockoptInt(int(h), unix.SOL_SOCKET, unix.SO_ERROR)
}
