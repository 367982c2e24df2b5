package socket

import "strings"

// Ready is a set of readiness flags.
type Ready uint8

const (
	ReadyRead Ready = 1 << iota
	ReadyWrite
)

// Has reports whether all flags in f are set in r.
func (r Ready) Has(f Ready) bool {
	return r&f == f
}

func (r Ready) String() string {
	if r == 0 {
		return "none"
	}
	var parts []string
	if r.Has(ReadyRead) {
		parts = append(parts, "read")
	}
	if r.Has(ReadyWrite) {
		parts = append(parts, "write")
	}
	return strings.Join(parts, "|")
}

// Winsock network event bits (winsock2.h).
const (
	fdRead    = 0x01
	fdWrite   = 0x02
	fdConnect = 0x10
	fdClose   = 0x20
)

// EventMask translates the readiness a poller waits for into the Winsock
// network event mask passed to WSAEventSelect. FD_CLOSE is always included.
// Write interest also covers FD_CONNECT, since completion of a pending
// connect is signalled as writability.
func EventMask(waiting Ready) uint32 {
	mask := uint32(fdClose)
	if waiting.Has(ReadyRead) {
		mask |= fdRead
	}
	if waiting.Has(ReadyWrite) {
		mask |= fdWrite | fdConnect
	}
	return mask
}
