//go:build linux || darwin

// Package reactor is a small poll(2) based readiness poller for sockets
// from the socket package. It is the collaborator that turns OS readiness
// into the sockets' readiness flags; it never performs I/O itself.
package reactor

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/nczempin/nbtcp/socket"
)

const defaultMaxWait = 100 * time.Millisecond

type entry struct {
	sock     *socket.Socket
	interest socket.Ready
}

// Poller tracks a set of sockets and the readiness each one waits for.
// Like the sockets it drives, it belongs to one goroutine.
type Poller struct {
	entries []entry
	maxWait time.Duration
	log     *zap.Logger
}

// Option configures a Poller.
type Option func(*Poller)

// WithLogger sets the logger used for debug-level poll events.
func WithLogger(l *zap.Logger) Option {
	return func(p *Poller) {
		p.log = l.Named("reactor")
	}
}

// WithMaxWait bounds a single poll(2) call, which is how often a blocked
// Poll notices context cancellation.
func WithMaxWait(d time.Duration) Option {
	return func(p *Poller) {
		p.maxWait = d
	}
}

// New creates an empty Poller.
func New(opts ...Option) *Poller {
	p := &Poller{
		maxWait: defaultMaxWait,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Add registers s, or replaces its interest if already registered.
func (p *Poller) Add(s *socket.Socket, interest socket.Ready) {
	for i := range p.entries {
		if p.entries[i].sock == s {
			p.entries[i].interest = interest
			return
		}
	}
	p.entries = append(p.entries, entry{sock: s, interest: interest})
}

// Remove unregisters s. Removing an unknown socket does nothing.
func (p *Poller) Remove(s *socket.Socket) {
	for i := range p.entries {
		if p.entries[i].sock == s {
			last := len(p.entries) - 1
			copy(p.entries[i:], p.entries[i+1:])
			p.entries[last] = entry{}
			p.entries = p.entries[:last]
			return
		}
	}
}

// Len returns the number of registered sockets.
func (p *Poller) Len() int {
	return len(p.entries)
}

// Poll blocks until at least one registered socket is ready or ctx is done.
// It sets the readiness flags of the ready sockets and returns them.
func (p *Poller) Poll(ctx context.Context) ([]*socket.Socket, error) {
	fds := make([]unix.PollFd, len(p.entries))
	for i, e := range p.entries {
		fds[i] = pollFd(e.sock, e.interest)
	}

	if err := p.wait(ctx, fds); err != nil {
		return nil, err
	}

	var ready []*socket.Socket
	for i, e := range p.entries {
		if r := readiness(fds[i].Revents, e.interest); r != 0 {
			e.sock.SetReady(r)
			ready = append(ready, e.sock)
		}
	}
	p.log.Debug("poll", zap.Int("registered", len(fds)), zap.Int("ready", len(ready)))
	return ready, nil
}

// Wait blocks until s reports any of want, or ctx is done. s does not need
// to be registered.
func (p *Poller) Wait(ctx context.Context, s *socket.Socket, want socket.Ready) error {
	fds := []unix.PollFd{pollFd(s, want)}
	if err := p.wait(ctx, fds); err != nil {
		return err
	}

	r := readiness(fds[0].Revents, want)
	s.SetReady(r)
	p.log.Debug("wait", zap.Stringer("want", want), zap.Stringer("ready", r))
	return nil
}

func (p *Poller) wait(ctx context.Context, fds []unix.PollFd) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		timeout := p.maxWait
		if deadline, ok := ctx.Deadline(); ok {
			if d := time.Until(deadline); d < timeout {
				timeout = d
			}
		}
		if timeout < 0 {
			timeout = 0
		}

		n, err := unix.Poll(fds, int((timeout+time.Millisecond-1)/time.Millisecond))
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return errors.Wrap(err, "poll")
		}
		if n > 0 {
			return nil
		}
	}
}

func pollFd(s *socket.Socket, interest socket.Ready) unix.PollFd {
	var events int16
	if interest.Has(socket.ReadyRead) {
		events |= unix.POLLIN
	}
	if interest.Has(socket.ReadyWrite) {
		events |= unix.POLLOUT
	}
	fd := int32(-1)
	if s.IsOpen() {
		fd = int32(s.Handle())
	}
	return unix.PollFd{Fd: fd, Events: events}
}

// readiness maps revents to flags. Errors and hang-ups mark every flag of
// interest so the next operation surfaces the condition.
func readiness(revents int16, interest socket.Ready) socket.Ready {
	var r socket.Ready
	if revents&unix.POLLIN != 0 {
		r |= socket.ReadyRead
	}
	if revents&unix.POLLOUT != 0 {
		r |= socket.ReadyWrite
	}
	if revents&(unix.POLLERR|unix.POLLHUP|unix.POLLNVAL) != 0 {
		r |= interest
	}
	return r & interest
}
