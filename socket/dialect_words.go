//go:build linux && !android

package socket

const ipv6Dialect = "word-array"

var (
	putIPv6 = putQuadsWords
	getIPv6 = getQuadsWords
)
