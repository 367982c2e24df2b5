package address

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHost_V4(t *testing.T) {
	h := HostV4(0x7f000001)

	assert.True(t, h.IsV4())
	assert.Equal(t, uint32(0x7f000001), h.V4())
	assert.Equal(t, [4]uint32{0, 0, 0xffff, 0x7f000001}, h.Quads())
	assert.Equal(t, "127.0.0.1", h.String())
	assert.Equal(t, Loopback4, h)
}

func TestHost_V6(t *testing.T) {
	h := HostV6(0x20010db8, 0, 0, 1)

	assert.False(t, h.IsV4())
	assert.Equal(t, [4]uint32{0x20010db8, 0, 0, 1}, h.Quads())
	assert.Equal(t, "2001:db8::1", h.String())
	assert.Panics(t, func() { h.V4() })
}

func TestHost_MappedIsNotV4(t *testing.T) {
	// A v6 host that happens to carry the mapped prefix keeps its family.
	mapped := HostV6(0, 0, 0xffff, 0x7f000001)

	assert.False(t, mapped.IsV4())
	assert.NotEqual(t, HostV4(0x7f000001), mapped)
}

func TestAddress_String(t *testing.T) {
	assert.Equal(t, "127.0.0.1:8080", V4(0x7f000001, 8080).String())
	assert.Equal(t, "[::1]:443", New(Loopback6, 443).String())
}

func TestAddress_AddrPortRoundTrip(t *testing.T) {
	cases := []string{
		"0.0.0.0:0",
		"255.255.255.255:65535",
		"192.168.1.20:7",
		"[::]:0",
		"[::1]:9000",
		"[ffff:ffff:ffff:ffff:ffff:ffff:ffff:ffff]:65535",
		"[fe80::1234:5678:9abc:def0]:80",
	}

	for _, c := range cases {
		t.Run(c, func(t *testing.T) {
			ap, err := netip.ParseAddrPort(c)
			require.NoError(t, err)

			a := FromAddrPort(ap)
			assert.Equal(t, ap, a.AddrPort())
			assert.Equal(t, ap.Port(), a.Port())
			assert.Equal(t, ap.Addr().Is4(), a.Host().IsV4())
		})
	}
}

func TestFromAddrPort_UnmapsV4(t *testing.T) {
	a := FromAddrPort(netip.MustParseAddrPort("[::ffff:10.0.0.1]:22"))

	require.True(t, a.Host().IsV4())
	assert.Equal(t, uint32(0x0a000001), a.Host().V4())
	assert.Equal(t, uint16(22), a.Port())
}

func TestHost_ZeroValueIsUnspecifiedV4(t *testing.T) {
	var h Host

	assert.True(t, h.IsV4())
	assert.Equal(t, HostV4(0), h)
	assert.Equal(t, [4]uint32{0, 0, 0xffff, 0}, h.Quads())
	assert.Equal(t, "0.0.0.0", h.String())
}

func TestAddress_ZeroValue(t *testing.T) {
	var a Address

	assert.Equal(t, V4(0, 0), a)
	assert.Equal(t, "0.0.0.0:0", a.String())
	assert.Equal(t, a, FromAddrPort(netip.MustParseAddrPort("0.0.0.0:0")))
}
