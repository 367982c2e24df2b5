package socket

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// Darwin has neither SOCK_CLOEXEC nor MSG_NOSIGNAL.
func newStreamSocket(family int) (int, error) {
	syscall.ForkLock.RLock()
	fd, err := unix.Socket(family, unix.SOCK_STREAM, 0)
	if err == nil {
		unix.CloseOnExec(fd)
	}
	syscall.ForkLock.RUnlock()
	if err != nil {
		return -1, err
	}
	return fd, nil
}

func noSigpipe(fd int) error {
	return unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_NOSIGPIPE, 1)
}

func setFamilyInet4(sa *rawSockaddrInet4) {
	sa.Len = unix.SizeofSockaddrInet4
	sa.Family = unix.AF_INET
}

func setFamilyInet6(sa *rawSockaddrInet6) {
	sa.Len = unix.SizeofSockaddrInet6
	sa.Family = unix.AF_INET6
}
