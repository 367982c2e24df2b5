//go:build linux || darwin || windows

// Package socket implements a non-blocking TCP client socket on top of the
// native BSD socket and Winsock APIs.
//
// A Socket never blocks the calling goroutine. Open starts a connect and
// returns while the handshake may still be in flight; Send and Receive
// return 0 when no progress is possible. Waiting is the job of an external
// poller, which registers Handle with the OS and reports readiness back
// through SetReady.
//
// A Socket is not safe for concurrent use. It is meant to be owned by a
// single event loop goroutine.
//
// Contract violations, such as sending on a closed socket or opening an
// open one, panic with *errors.ContractViolation. System failures are
// returned as *errors.Error carrying the failing call and platform code.
package socket

import (
	"io"
	"syscall"

	"go.uber.org/zap"

	"github.com/nczempin/nbtcp/address"
	nberrors "github.com/nczempin/nbtcp/errors"
)

// Handle is a native socket: a file descriptor or a Winsock SOCKET.
type Handle uintptr

// InvalidHandle is -1 on POSIX and INVALID_SOCKET on Windows.
const InvalidHandle = ^Handle(0)

// Socket is one TCP client connection endpoint.
type Socket struct {
	handle Handle
	ready  Ready
	log    *zap.Logger
}

// Option configures a Socket.
type Option func(*Socket)

// WithLogger sets the logger used for debug-level lifecycle events.
func WithLogger(l *zap.Logger) Option {
	return func(s *Socket) {
		s.log = l.Named("socket")
	}
}

// New creates a closed socket.
func New(opts ...Option) *Socket {
	s := &Socket{
		handle: InvalidHandle,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsOpen reports whether the socket holds a native handle.
func (s *Socket) IsOpen() bool {
	return s.handle != InvalidHandle
}

// Handle returns the native handle for registration with a poller.
func (s *Socket) Handle() Handle {
	return s.handle
}

// Readiness returns the cached readiness flags.
func (s *Socket) Readiness() Ready {
	return s.ready
}

// SetReady marks r as ready. Only pollers call this; the socket itself only
// ever clears flags.
func (s *Socket) SetReady(r Ready) {
	s.ready |= r
}

// Open creates a socket for addr's family, switches it to non-blocking mode
// and starts connecting. A nil error means the socket is open, which
// includes a connect that is still pending; writability signals its
// completion and ConnectResult reports how it ended.
func (s *Socket) Open(addr address.Address, disableNagle bool) error {
	if s.IsOpen() {
		nberrors.Violate("Socket.Open", "socket already open")
	}

	v6 := !addr.Host().IsV4()
	h, err := backend.socket(v6)
	if err != nil {
		return nberrors.NewSystemError(nberrors.SocketCreateFailure, "socket", errnoOf(err))
	}

	if disableNagle {
		if err := backend.setNoDelay(h); err != nil {
			s.log.Debug("TCP_NODELAY not applied", zap.Error(err))
		}
	}

	if err := backend.setNoSigpipe(h); err != nil {
		s.log.Debug("SO_NOSIGPIPE not applied", zap.Error(err))
	}

	if err := backend.setNonblock(h); err != nil {
		backend.close(h)
		return nberrors.NewSystemError(nberrors.SocketCreateFailure, "setnonblock", errnoOf(err))
	}

	s.handle = h
	s.ready = 0

	var sa rawSockaddrAny
	n := encodeSockaddr(addr, &sa)

	pending := false
	if err := backend.connect(h, &sa, n); err != nil {
		o, code := classifyConnect(err)
		if o == fatal {
			s.Close()
			return nberrors.NewSystemError(nberrors.SocketConnectFailure, "connect", code)
		}
		pending = true
	}

	fields := []zap.Field{
		zap.Stringer("remote", addr),
		zap.Bool("pending", pending),
		zap.Bool("nodelay", disableNagle),
	}
	if v6 {
		fields = append(fields, zap.String("ipv6_dialect", ipv6Dialect))
	}
	s.log.Debug("socket opened", fields...)
	return nil
}

// ConnectResult reports the outcome of a pending connect once the poller has
// signalled writability. A failed connect closes the socket.
func (s *Socket) ConnectResult() error {
	if !s.IsOpen() {
		nberrors.Violate("Socket.ConnectResult", "socket is not open")
	}

	code, err := backend.pendingError(s.handle)
	if err != nil {
		s.Close()
		return nberrors.NewSystemError(nberrors.SocketConnectFailure, "getsockopt", errnoOf(err))
	}
	if code != 0 {
		s.Close()
		return nberrors.NewSystemError(nberrors.SocketConnectFailure, "connect", syscall.Errno(code))
	}
	return nil
}

// Send writes as much of p as the OS accepts right now and returns the
// count, which may be less than len(p). It returns 0 when the send buffer
// is full.
func (s *Socket) Send(p []byte) (int, error) {
	if !s.IsOpen() {
		nberrors.Violate("Socket.Send", "socket is not open")
	}

	s.ready &^= ReadyWrite

	if len(p) == 0 {
		return 0, nil
	}

	for {
		n, err := backend.send(s.handle, p)
		if err == nil {
			return n, nil
		}
		switch o, code := classifyTransfer(err); o {
		case retry:
			continue
		case wouldBlock:
			return 0, nil
		default:
			return 0, nberrors.NewSystemError(nberrors.SocketWriteFailure, "send", code)
		}
	}
}

// Receive reads whatever is available into p. It returns 0 and a nil error
// when nothing is available, and 0 with io.EOF once the peer has shut down
// its side of the connection.
func (s *Socket) Receive(p []byte) (int, error) {
	// Cleared even if the call fails: the readiness signal has been consumed.
	s.ready &^= ReadyRead

	if !s.IsOpen() {
		nberrors.Violate("Socket.Receive", "socket is not open")
	}

	if len(p) == 0 {
		return 0, nil
	}

	for {
		n, err := backend.recv(s.handle, p)
		if err == nil {
			if n == 0 {
				return 0, io.EOF
			}
			return n, nil
		}
		switch o, code := classifyTransfer(err); o {
		case retry:
			continue
		case wouldBlock:
			return 0, nil
		default:
			return 0, nberrors.NewSystemError(nberrors.SocketReadFailure, "recv", code)
		}
	}
}

// LocalAddress returns the local endpoint the OS bound the socket to.
func (s *Socket) LocalAddress() (address.Address, error) {
	if !s.IsOpen() {
		nberrors.Violate("Socket.LocalAddress", "socket is not open")
	}

	var sa rawSockaddrAny
	n := socklen(rawSockaddrAnySize)
	if err := backend.getsockname(s.handle, &sa, &n); err != nil {
		return address.Address{}, nberrors.NewSystemError(nberrors.AddressQueryFailure, "getsockname", errnoOf(err))
	}
	return decodeSockaddr(&sa), nil
}

// RemoteAddress returns the peer endpoint. It fails with ENOTCONN while a
// connect is still pending.
func (s *Socket) RemoteAddress() (address.Address, error) {
	if !s.IsOpen() {
		nberrors.Violate("Socket.RemoteAddress", "socket is not open")
	}

	var sa rawSockaddrAny
	n := socklen(rawSockaddrAnySize)
	if err := backend.getpeername(s.handle, &sa, &n); err != nil {
		return address.Address{}, nberrors.NewSystemError(nberrors.AddressQueryFailure, "getpeername", errnoOf(err))
	}
	return decodeSockaddr(&sa), nil
}

// Close releases the native handle and clears the readiness flags. It does
// not negotiate a graceful shutdown. Closing a closed socket does nothing.
func (s *Socket) Close() {
	if !s.IsOpen() {
		return
	}

	backend.close(s.handle)
	s.handle = InvalidHandle
	s.ready = 0
	s.log.Debug("socket closed")
}
