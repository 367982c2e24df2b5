package socket

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReady_String(t *testing.T) {
	assert.Equal(t, "none", Ready(0).String())
	assert.Equal(t, "read", ReadyRead.String())
	assert.Equal(t, "write", ReadyWrite.String())
	assert.Equal(t, "read|write", (ReadyRead | ReadyWrite).String())
}

func TestReady_Has(t *testing.T) {
	r := ReadyRead | ReadyWrite

	assert.True(t, r.Has(ReadyRead))
	assert.True(t, r.Has(ReadyRead|ReadyWrite))
	assert.False(t, ReadyRead.Has(ReadyWrite))
	assert.False(t, ReadyRead.Has(ReadyRead|ReadyWrite))
}

func TestEventMask(t *testing.T) {
	assert.Equal(t, uint32(0x20), EventMask(0), "FD_CLOSE is always selected")
	assert.Equal(t, uint32(0x20|0x01), EventMask(ReadyRead))
	assert.Equal(t, uint32(0x20|0x02|0x10), EventMask(ReadyWrite))
	assert.Equal(t, uint32(0x20|0x01|0x02|0x10), EventMask(ReadyRead|ReadyWrite))
}
