//go:build !linux || android

package socket

const ipv6Dialect = "byte-array"

var (
	putIPv6 = putQuadsBytes
	getIPv6 = getQuadsBytes
)
