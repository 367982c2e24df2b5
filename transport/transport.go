package transport

import (
	"context"

	"github.com/nczempin/nbtcp/address"
)

// Transport defines the interface for stream I/O for callers that are not
// event loops themselves. Every call blocks until it makes progress or ctx
// is done.
type Transport interface {
	// Connect establishes a connection to the specified address.
	Connect(ctx context.Context, addr address.Address) error

	// Write sends all of buf to the connected peer.
	// Returns the number of bytes written or an error.
	Write(ctx context.Context, buf []byte) (int, error)

	// Read receives data from the connected peer.
	// Returns the number of bytes read or an error.
	Read(ctx context.Context, buf []byte) (int, error)

	// Close closes the connection.
	Close() error
}
