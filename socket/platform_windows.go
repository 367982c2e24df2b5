//go:build windows

package socket

import (
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"

	nberrors "github.com/nczempin/nbtcp/errors"
)

type (
	rawSockaddrAny   = windows.RawSockaddrAny
	rawSockaddrInet4 = windows.RawSockaddrInet4
	rawSockaddrInet6 = windows.RawSockaddrInet6
	socklen          = int32
)

const (
	afInet  = windows.AF_INET
	afInet6 = windows.AF_INET6

	errInterrupted = windows.WSAEINTR
	errAgain       = windows.WSAEWOULDBLOCK
	// A non-blocking connect reports WSAEWOULDBLOCK, not WSAEINPROGRESS.
	errInProgress = windows.WSAEWOULDBLOCK
)

const (
	socketError = -1
	fionbio     = 0x8004667e
	tcpNoDelay  = 0x0001
	solSocket   = 0xffff
	soError     = 0x1007
)

var (
	modws2_32 = windows.NewLazySystemDLL("ws2_32.dll")

	procConnect        = modws2_32.NewProc("connect")
	procGetsockname    = modws2_32.NewProc("getsockname")
	procGetpeername    = modws2_32.NewProc("getpeername")
	procGetsockopt     = modws2_32.NewProc("getsockopt")
	procIoctlsocket    = modws2_32.NewProc("ioctlsocket")
	procRecv           = modws2_32.NewProc("recv")
	procSend           = modws2_32.NewProc("send")
	procWSAEventSelect = modws2_32.NewProc("WSAEventSelect")
)

var (
	startupOnce sync.Once
	startupErr  error
)

func startup() error {
	startupOnce.Do(func() {
		var data windows.WSAData
		startupErr = windows.WSAStartup(uint32(0x202), &data)
	})
	return startupErr
}

type winsockPlatform struct{}

var backend platform = winsockPlatform{}

func (winsockPlatform) socket(v6 bool) (Handle, error) {
	if err := startup(); err != nil {
		return InvalidHandle, err
	}
	family := windows.AF_INET
	if v6 {
		family = windows.AF_INET6
	}
	s, err := windows.Socket(family, windows.SOCK_STREAM, windows.IPPROTO_TCP)
	if err != nil {
		return InvalidHandle, err
	}
	return Handle(s), nil
}

func (winsockPlatform) close(h Handle) error {
	return windows.Closesocket(windows.Handle(h))
}

func (winsockPlatform) setNoDelay(h Handle) error {
	return windows.SetsockoptInt(windows.Handle(h), windows.IPPROTO_TCP, tcpNoDelay, 1)
}

func (winsockPlatform) setNonblock(h Handle) error {
	on := uint32(1)
	r, _, e := procIoctlsocket.Call(uintptr(h), uintptr(fionbio), uintptr(unsafe.Pointer(&on)))
	if int32(r) == socketError {
		return e
	}
	return nil
}

// Winsock send never raises a signal.
func (winsockPlatform) setNoSigpipe(h Handle) error {
	return nil
}

func (winsockPlatform) connect(h Handle, sa *rawSockaddrAny, n socklen) error {
	r, _, e := procConnect.Call(uintptr(h), uintptr(unsafe.Pointer(sa)), uintptr(n))
	if int32(r) == socketError {
		return e
	}
	return nil
}

func (winsockPlatform) getsockname(h Handle, sa *rawSockaddrAny, n *socklen) error {
	r, _, e := procGetsockname.Call(uintptr(h), uintptr(unsafe.Pointer(sa)), uintptr(unsafe.Pointer(n)))
	if int32(r) == socketError {
		return e
	}
	return nil
}

func (winsockPlatform) getpeername(h Handle, sa *rawSockaddrAny, n *socklen) error {
	r, _, e := procGetpeername.Call(uintptr(h), uintptr(unsafe.Pointer(sa)), uintptr(unsafe.Pointer(n)))
	if int32(r) == socketError {
		return e
	}
	return nil
}

func (winsockPlatform) send(h Handle, p []byte) (int, error) {
	r, _, e := procSend.Call(uintptr(h), uintptr(unsafe.Pointer(&p[0])), uintptr(transferLen(len(p))), 0)
	if int32(r) == socketError {
		return 0, e
	}
	return int(int32(r)), nil
}

func (winsockPlatform) recv(h Handle, p []byte) (int, error) {
	r, _, e := procRecv.Call(uintptr(h), uintptr(unsafe.Pointer(&p[0])), uintptr(transferLen(len(p))), 0)
	if int32(r) == socketError {
		return 0, e
	}
	return int(int32(r)), nil
}

func (winsockPlatform) pendingError(h Handle) (int, error) {
	var v int32
	n := int32(unsafe.Sizeof(v))
	r, _, e := procGetsockopt.Call(uintptr(h), solSocket, soError, uintptr(unsafe.Pointer(&v)), uintptr(unsafe.Pointer(&n)))
	if int32(r) == socketError {
		return 0, e
	}
	return int(v), nil
}

func setFamilyInet4(sa *rawSockaddrInet4) {
	sa.Family = windows.AF_INET
}

func setFamilyInet6(sa *rawSockaddrInet6) {
	sa.Family = windows.AF_INET6
}

// SetWaitingEvents associates event with the socket and selects the network
// events matching waiting, as translated by EventMask. The event object
// belongs to the caller's poller.
func (s *Socket) SetWaitingEvents(event windows.Handle, waiting Ready) error {
	if !s.IsOpen() {
		nberrors.Violate("Socket.SetWaitingEvents", "socket is not open")
	}

	r, _, e := procWSAEventSelect.Call(uintptr(s.handle), uintptr(event), uintptr(EventMask(waiting)))
	if int32(r) == socketError {
		return nberrors.NewSystemError(nberrors.EventSelectFailure, "WSAEventSelect", errnoOf(e))
	}
	return nil
}
