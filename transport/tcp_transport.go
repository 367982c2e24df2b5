//go:build linux || darwin

package transport

import (
	"context"
	"errors"
	"io"

	"go.uber.org/zap"

	"github.com/nczempin/nbtcp/address"
	nberrors "github.com/nczempin/nbtcp/errors"
	"github.com/nczempin/nbtcp/reactor"
	"github.com/nczempin/nbtcp/socket"
)

// TcpTransport implements the Transport interface on a non-blocking
// socket, waiting for readiness through a reactor.Poller.
type TcpTransport struct {
	sock   *socket.Socket
	poller *reactor.Poller
	log    *zap.Logger
}

// Option configures a TcpTransport.
type Option func(*TcpTransport)

// WithLogger sets the logger for the transport and the socket it owns.
func WithLogger(l *zap.Logger) Option {
	return func(t *TcpTransport) {
		t.log = l.Named("transport")
	}
}

// WithPoller shares a poller between transports.
func WithPoller(p *reactor.Poller) Option {
	return func(t *TcpTransport) {
		t.poller = p
	}
}

// NewTcpTransport creates a new TcpTransport instance
func NewTcpTransport(opts ...Option) *TcpTransport {
	t := &TcpTransport{log: zap.NewNop()}
	for _, opt := range opts {
		opt(t)
	}
	if t.poller == nil {
		t.poller = reactor.New(reactor.WithLogger(t.log))
	}
	t.sock = socket.New(socket.WithLogger(t.log))
	return t
}

// Socket exposes the underlying socket, e.g. for address queries.
func (t *TcpTransport) Socket() *socket.Socket {
	return t.sock
}

// Connect establishes a TCP connection with Nagle's algorithm disabled and
// waits for the handshake to finish.
func (t *TcpTransport) Connect(ctx context.Context, addr address.Address) error {
	if t.sock.IsOpen() {
		return nberrors.NewTransportError(nberrors.InvalidArgument, "already connected", nil)
	}

	if err := t.sock.Open(addr, true); err != nil {
		return err
	}

	if err := t.await(ctx, socket.ReadyWrite); err != nil {
		t.sock.Close()
		return err
	}

	if err := t.sock.ConnectResult(); err != nil {
		return err
	}

	t.log.Debug("connected", zap.Stringer("remote", addr))
	return nil
}

// Write sends all of buf over the TCP connection
func (t *TcpTransport) Write(ctx context.Context, buf []byte) (int, error) {
	if !t.sock.IsOpen() {
		return 0, nberrors.NewTransportError(nberrors.SocketWriteFailure, "not connected", nil)
	}

	total := 0
	for total < len(buf) {
		n, err := t.sock.Send(buf[total:])
		if err != nil {
			if isPeerGone(err) {
				return total, nberrors.NewTransportError(nberrors.ConnectionClosed, "connection closed during write", err)
			}
			return total, err
		}
		total += n
		if n == 0 {
			if err := t.await(ctx, socket.ReadyWrite); err != nil {
				return total, err
			}
		}
	}

	return total, nil
}

// Read receives data from the TCP connection, waiting until some is available
func (t *TcpTransport) Read(ctx context.Context, buf []byte) (int, error) {
	if !t.sock.IsOpen() {
		return 0, nberrors.NewTransportError(nberrors.SocketReadFailure, "not connected", nil)
	}
	if len(buf) == 0 {
		return 0, nil
	}

	for {
		n, err := t.sock.Receive(buf)
		if errors.Is(err, io.EOF) {
			return 0, nberrors.NewTransportError(nberrors.ConnectionClosed, "connection closed by peer", err)
		}
		if err != nil {
			if isPeerGone(err) {
				return 0, nberrors.NewTransportError(nberrors.ConnectionClosed, "connection reset by peer", err)
			}
			return 0, err
		}
		if n > 0 {
			return n, nil
		}
		if err := t.await(ctx, socket.ReadyRead); err != nil {
			return 0, err
		}
	}
}

// Close closes the TCP connection
func (t *TcpTransport) Close() error {
	t.sock.Close() // Idempotent close
	return nil
}

func (t *TcpTransport) await(ctx context.Context, want socket.Ready) error {
	err := t.poller.Wait(ctx, t.sock, want)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return nberrors.NewTransportError(nberrors.Timeout, "waiting for "+want.String()+" readiness", err)
	default:
		return err
	}
}
