//go:build linux || darwin || windows

package socket

import "math"

// platform is the OS socket API. Exactly one implementation is compiled in:
// posixPlatform on linux and darwin, winsockPlatform on windows.
// Every method returns the raw platform error so the translator can classify it.
type platform interface {
	socket(v6 bool) (Handle, error)
	close(h Handle) error
	setNoDelay(h Handle) error
	setNonblock(h Handle) error
	// setNoSigpipe stops writes to a reset connection from raising SIGPIPE
	// where the platform needs a socket option for that.
	setNoSigpipe(h Handle) error
	connect(h Handle, sa *rawSockaddrAny, n socklen) error
	send(h Handle, p []byte) (int, error)
	recv(h Handle, p []byte) (int, error)
	getsockname(h Handle, sa *rawSockaddrAny, n *socklen) error
	getpeername(h Handle, sa *rawSockaddrAny, n *socklen) error
	// pendingError reads and clears SO_ERROR.
	pendingError(h Handle) (int, error)
}

// transferLen caps a buffer length at what a C int length argument can hold.
func transferLen(n int) int {
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	return n
}
