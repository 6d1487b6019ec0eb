package protocol

import (
	"fmt"
	"math/bits"

	"github.com/google/netstack/tcpip/header"
)

// Digest is a running Internet checksum over the NameRecords of a session, in
// order. Client and server each keep one; equal values mean both ends saw the
// same names in the same order.
type Digest struct {
	sum   uint16
	count int
}

// Add folds one name, terminator included, into the digest. The running sum is
// rotated before each record so that reordering changes the result.
func (d *Digest) Add(name string) {
	rec := make([]byte, len(name)+1)
	copy(rec, name)
	d.sum = header.Checksum(rec, bits.RotateLeft16(d.sum, 5))
	d.count++
}

func (d *Digest) Sum() uint16 { return d.sum }
func (d *Digest) Count() int  { return d.count }

func (d *Digest) String() string {
	return fmt.Sprintf("%04x/%d", d.sum, d.count)
}
