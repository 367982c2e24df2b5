//go:build linux || darwin || windows

package socket

import (
	"encoding/binary"
	"fmt"
	"unsafe"

	"github.com/nczempin/nbtcp/address"
	nberrors "github.com/nczempin/nbtcp/errors"
)

const rawSockaddrAnySize = unsafe.Sizeof(rawSockaddrAny{})

// encodeSockaddr writes a into buf using the native sockaddr_in/sockaddr_in6
// layout and returns the structure length to pass to the OS.
func encodeSockaddr(a address.Address, buf *rawSockaddrAny) socklen {
	*buf = rawSockaddrAny{}

	if a.Host().IsV4() {
		sa := (*rawSockaddrInet4)(unsafe.Pointer(buf))
		setFamilyInet4(sa)
		sa.Port = hton16(a.Port())
		binary.BigEndian.PutUint32(sa.Addr[:], a.Host().V4())
		return socklen(unsafe.Sizeof(*sa))
	}

	sa := (*rawSockaddrInet6)(unsafe.Pointer(buf))
	setFamilyInet6(sa)
	sa.Port = hton16(a.Port())
	putIPv6(&sa.Addr, a.Host().Quads())
	return socklen(unsafe.Sizeof(*sa))
}

// decodeSockaddr is the inverse of encodeSockaddr. buf must hold an AF_INET
// or AF_INET6 structure filled in by the OS.
func decodeSockaddr(buf *rawSockaddrAny) address.Address {
	switch buf.Addr.Family {
	case afInet:
		sa := (*rawSockaddrInet4)(unsafe.Pointer(buf))
		return address.V4(binary.BigEndian.Uint32(sa.Addr[:]), ntoh16(sa.Port))
	case afInet6:
		sa := (*rawSockaddrInet6)(unsafe.Pointer(buf))
		return address.V6(getIPv6(&sa.Addr), ntoh16(sa.Port))
	}
	nberrors.Violate("decodeSockaddr", fmt.Sprintf("unsupported address family %d", buf.Addr.Family))
	return address.Address{}
}
