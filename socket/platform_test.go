//go:build linux || darwin || windows

package socket

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransferLen(t *testing.T) {
	assert.Equal(t, 0, transferLen(0))
	assert.Equal(t, 4096, transferLen(4096))
	assert.Equal(t, math.MaxInt32, transferLen(math.MaxInt32))
	if math.MaxInt > math.MaxInt32 {
		big := int64(math.MaxInt32)
		big++
		assert.Equal(t, math.MaxInt32, transferLen(int(big)))
		assert.Equal(t, math.MaxInt32, transferLen(math.MaxInt))
	}
}
