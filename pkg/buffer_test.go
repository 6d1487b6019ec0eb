package protocol

import (
	"testing"

	"github.com/pkg/errors"
)

func TestBufferSize(t *testing.T) {
	for i, want := range map[int]int{2: 4, 4: 16, 6: 64, 10: 1024, 20: 1 << 20} {
		got, err := BufferSize(i)
		if err != nil {
			t.Fatalf("BufferSize(%d): %v", i, err)
		}
		if got != want {
			t.Errorf("BufferSize(%d) = %d, want %d", i, got, want)
		}
	}
}

func TestBufferSizeRejectsUnsafeExponents(t *testing.T) {
	for _, i := range []int{-3, 0, 1, 21, 64} {
		_, err := BufferSize(i)
		if errors.Cause(err) != ErrBufferExponent {
			t.Errorf("BufferSize(%d) error = %v, want ErrBufferExponent", i, err)
		}
	}
}
