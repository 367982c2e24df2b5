package socket

import "encoding/binary"

// Native sockaddr structures keep ports and addresses in network byte order
// inside fields the CPU reads in host order. These helpers are htons/htonl.

func hton16(v uint16) uint16 {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	return binary.NativeEndian.Uint16(b[:])
}

func ntoh16(v uint16) uint16 {
	var b [2]byte
	binary.NativeEndian.PutUint16(b[:], v)
	return binary.BigEndian.Uint16(b[:])
}

func hton32(v uint32) uint32 {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return binary.NativeEndian.Uint32(b[:])
}

func ntoh32(v uint32) uint32 {
	var b [4]byte
	binary.NativeEndian.PutUint32(b[:], v)
	return binary.BigEndian.Uint32(b[:])
}

// IPv6 byte-array dialect: s6_addr is addressed byte by byte, most
// significant byte of each quad first.

func putQuadsBytes(dst *[16]byte, q [4]uint32) {
	for i, v := range q {
		dst[i*4] = byte(v >> 24)
		dst[i*4+1] = byte(v >> 16)
		dst[i*4+2] = byte(v >> 8)
		dst[i*4+3] = byte(v)
	}
}

func getQuadsBytes(src *[16]byte) [4]uint32 {
	var q [4]uint32
	for i := range q {
		q[i] = uint32(src[i*4])<<24 | uint32(src[i*4+1])<<16 | uint32(src[i*4+2])<<8 | uint32(src[i*4+3])
	}
	return q
}

// IPv6 word-array dialect: s6_addr32 words, each written in host order after
// htonl.

func putQuadsWords(dst *[16]byte, q [4]uint32) {
	for i, v := range q {
		binary.NativeEndian.PutUint32(dst[i*4:], hton32(v))
	}
}

func getQuadsWords(src *[16]byte) [4]uint32 {
	var q [4]uint32
	for i := range q {
		q[i] = ntoh32(binary.NativeEndian.Uint32(src[i*4:]))
	}
	return q
}
