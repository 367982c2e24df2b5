//go:build linux || darwin || windows

package socket

import (
	"testing"
	"testing/quick"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nczempin/nbtcp/address"
)

func sockaddrBytes(buf *rawSockaddrAny, n socklen) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(buf)), n)
}

func TestCodec_RoundTripFixed(t *testing.T) {
	cases := []address.Address{
		address.V4(0, 0),
		address.V4(0xffffffff, 0xffff),
		address.V4(0x7f000001, 8080),
		address.V4(0xc0a80114, 1),
		address.V6([4]uint32{0, 0, 0, 0}, 0),
		address.V6([4]uint32{0xffffffff, 0xffffffff, 0xffffffff, 0xffffffff}, 0xffff),
		address.V6([4]uint32{0, 0, 0, 1}, 443),
		address.V6([4]uint32{0x20010db8, 0x85a30000, 0x00008a2e, 0x03707334}, 8443),
		address.V6([4]uint32{0xfe800000, 0, 0x0123abcd, 0xa5a5a5a5}, 0x8000),
		address.V6([4]uint32{0, 0, 0xffff, 0x7f000001}, 80),
	}

	for _, a := range cases {
		t.Run(a.String(), func(t *testing.T) {
			var buf rawSockaddrAny
			encodeSockaddr(a, &buf)
			assert.Equal(t, a, decodeSockaddr(&buf))
		})
	}
}

func TestCodec_RoundTripProperty(t *testing.T) {
	v4 := func(v uint32, port uint16) bool {
		a := address.V4(v, port)
		var buf rawSockaddrAny
		encodeSockaddr(a, &buf)
		return decodeSockaddr(&buf) == a
	}
	require.NoError(t, quick.Check(v4, nil))

	v6 := func(q [4]uint32, port uint16) bool {
		a := address.V6(q, port)
		var buf rawSockaddrAny
		encodeSockaddr(a, &buf)
		return decodeSockaddr(&buf) == a
	}
	require.NoError(t, quick.Check(v6, nil))
}

func TestCodec_EncodeV4Layout(t *testing.T) {
	var buf rawSockaddrAny
	n := encodeSockaddr(address.V4(0x7f000001, 8080), &buf)

	require.Equal(t, socklen(unsafe.Sizeof(rawSockaddrInet4{})), n)

	sa := (*rawSockaddrInet4)(unsafe.Pointer(&buf))
	assert.EqualValues(t, afInet, sa.Family)
	assert.Equal(t, [4]byte{127, 0, 0, 1}, sa.Addr)

	raw := sockaddrBytes(&buf, n)
	assert.Equal(t, []byte{0x1f, 0x90}, raw[2:4], "port must be in network byte order")
	assert.Equal(t, []byte{127, 0, 0, 1}, raw[4:8])
}

func TestCodec_EncodeV6Layout(t *testing.T) {
	var buf rawSockaddrAny
	n := encodeSockaddr(address.V6([4]uint32{0x20010db8, 0x01020304, 0, 0xa0b0c0d0}, 443), &buf)

	require.Equal(t, socklen(unsafe.Sizeof(rawSockaddrInet6{})), n)

	sa := (*rawSockaddrInet6)(unsafe.Pointer(&buf))
	assert.EqualValues(t, afInet6, sa.Family)
	assert.Equal(t, [16]byte{
		0x20, 0x01, 0x0d, 0xb8,
		0x01, 0x02, 0x03, 0x04,
		0, 0, 0, 0,
		0xa0, 0xb0, 0xc0, 0xd0,
	}, sa.Addr)
	assert.Zero(t, sa.Flowinfo)
	assert.Zero(t, sa.Scope_id)

	raw := sockaddrBytes(&buf, n)
	assert.Equal(t, []byte{0x01, 0xbb}, raw[2:4])
}

func TestCodec_DialectsAgree(t *testing.T) {
	check := func(q [4]uint32) bool {
		var b, w [16]byte
		putQuadsBytes(&b, q)
		putQuadsWords(&w, q)
		return b == w && getQuadsBytes(&b) == q && getQuadsWords(&w) == q && getQuadsBytes(&w) == q
	}
	require.NoError(t, quick.Check(check, nil))

	var b [16]byte
	putQuadsWords(&b, [4]uint32{0x00112233, 0x44556677, 0x8899aabb, 0xccddeeff})
	assert.Equal(t, [16]byte{
		0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77,
		0x88, 0x99, 0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff,
	}, b)
}

func TestCodec_ByteOrderHelpers(t *testing.T) {
	assert.Equal(t, uint16(0x1234), ntoh16(hton16(0x1234)))
	assert.Equal(t, uint32(0xdeadbeef), ntoh32(hton32(0xdeadbeef)))

	p := hton16(0x0102)
	assert.Equal(t, [2]byte{0x01, 0x02}, *(*[2]byte)(unsafe.Pointer(&p)))
}

func TestCodec_DecodeUnknownFamilyPanics(t *testing.T) {
	var buf rawSockaddrAny
	assert.Panics(t, func() { decodeSockaddr(&buf) })
}
