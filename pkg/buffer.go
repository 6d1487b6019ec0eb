package protocol

import "github.com/pkg/errors"

const (
	HandshakeBufferSize     = 256  // READY and directory records
	DefaultClientBufferSize = 1024 // client receive bound when no exponent is given

	MinBufferExponent = 2
	MaxBufferExponent = 20
)

var ErrBufferExponent = errors.New("buffer exponent out of range")

// BufferSize returns B = 2^i for a validated exponent.
func BufferSize(i int) (int, error) {
	if i < MinBufferExponent || i > MaxBufferExponent {
		return 0, errors.Wrapf(ErrBufferExponent, "i_size %d (want %d..%d)", i, MinBufferExponent, MaxBufferExponent)
	}
	return 1 << i, nil
}
