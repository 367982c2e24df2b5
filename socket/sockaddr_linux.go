package socket

import "golang.org/x/sys/unix"

func newStreamSocket(family int) (int, error) {
	return unix.Socket(family, unix.SOCK_STREAM|unix.SOCK_CLOEXEC, 0)
}

// Linux has no SO_NOSIGPIPE; the Go runtime already ignores SIGPIPE on
// sockets.
func noSigpipe(fd int) error {
	return nil
}

func setFamilyInet4(sa *rawSockaddrInet4) {
	sa.Family = unix.AF_INET
}

func setFamilyInet6(sa *rawSockaddrInet6) {
	sa.Family = unix.AF_INET6
}
