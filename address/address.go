// Package address holds the portable endpoint value used by the socket
// package. It is independent of any platform sockaddr layout.
package address

import (
	"encoding/binary"
	"net/netip"
	"strconv"

	"github.com/nczempin/nbtcp/errors"
)

// Host is either an IPv4 address or an IPv6 address stored as four 32-bit
// quads in host byte order, most significant quad first. An IPv4 host keeps
// only its value in the last quad, so the zero Host is 0.0.0.0.
type Host struct {
	v6   bool
	quad [4]uint32
}

// HostV4 returns an IPv4 host. 127.0.0.1 is 0x7f000001.
func HostV4(v uint32) Host {
	return Host{quad: [4]uint32{3: v}}
}

// HostV6 returns an IPv6 host from its four quads.
func HostV6(q0, q1, q2, q3 uint32) Host {
	return Host{v6: true, quad: [4]uint32{q0, q1, q2, q3}}
}

// HostFromQuads is HostV6 taking an array.
func HostFromQuads(q [4]uint32) Host {
	return HostV6(q[0], q[1], q[2], q[3])
}

// IsV4 reports whether h is an IPv4 host.
func (h Host) IsV4() bool {
	return !h.v6
}

// V4 returns the IPv4 value. Calling it on an IPv6 host is a contract violation.
func (h Host) V4() uint32 {
	if h.v6 {
		errors.Violate("Host.V4", "host is not an IPv4 address")
	}
	return h.quad[3]
}

// Quads returns the 128-bit form. IPv4 hosts come back IPv4-mapped.
func (h Host) Quads() [4]uint32 {
	if !h.v6 {
		return [4]uint32{0, 0, 0xffff, h.quad[3]}
	}
	return h.quad
}

func (h Host) netipAddr() netip.Addr {
	if !h.v6 {
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], h.quad[3])
		return netip.AddrFrom4(b)
	}
	var b [16]byte
	for i, q := range h.quad {
		binary.BigEndian.PutUint32(b[i*4:], q)
	}
	return netip.AddrFrom16(b)
}

func (h Host) String() string {
	return h.netipAddr().String()
}

// Address is a TCP endpoint: host plus port in host byte order. The zero
// Address is 0.0.0.0:0.
type Address struct {
	host Host
	port uint16
}

// Loopback hosts for each family.
var (
	Loopback4 = HostV4(0x7f000001)
	Loopback6 = HostV6(0, 0, 0, 1)
)

// New returns the endpoint host:port.
func New(host Host, port uint16) Address {
	return Address{host: host, port: port}
}

// V4 is shorthand for New(HostV4(v), port).
func V4(v uint32, port uint16) Address {
	return New(HostV4(v), port)
}

// V6 is shorthand for New(HostFromQuads(q), port).
func V6(q [4]uint32, port uint16) Address {
	return New(HostFromQuads(q), port)
}

// Host returns the endpoint's host.
func (a Address) Host() Host {
	return a.host
}

// Port returns the endpoint's port in host byte order.
func (a Address) Port() uint16 {
	return a.port
}

// AddrPort converts a to the standard library representation.
func (a Address) AddrPort() netip.AddrPort {
	return netip.AddrPortFrom(a.host.netipAddr(), a.port)
}

// FromAddrPort converts a standard library endpoint. IPv4-mapped IPv6
// addresses become IPv4 hosts; zones are dropped.
func FromAddrPort(ap netip.AddrPort) Address {
	ip := ap.Addr().Unmap()
	if ip.Is4() {
		b := ip.As4()
		return V4(binary.BigEndian.Uint32(b[:]), ap.Port())
	}
	b := ip.As16()
	return V6([4]uint32{
		binary.BigEndian.Uint32(b[0:]),
		binary.BigEndian.Uint32(b[4:]),
		binary.BigEndian.Uint32(b[8:]),
		binary.BigEndian.Uint32(b[12:]),
	}, ap.Port())
}

func (a Address) String() string {
	if a.host.v6 {
		return "[" + a.host.String() + "]:" + strconv.Itoa(int(a.port))
	}
	return a.host.String() + ":" + strconv.Itoa(int(a.port))
}
