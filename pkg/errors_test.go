package protocol

import (
	"io"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestKindSurvivesWrapping(t *testing.T) {
	err := Wrap(KindFilesystem, io.ErrUnexpectedEOF, "write ./results/x.txt")
	wrapped := errors.WithMessage(err, "receiving file name")

	if got := KindOf(wrapped); got != KindFilesystem {
		t.Errorf("KindOf = %q, want %q", got, KindFilesystem)
	}
	if errors.Cause(wrapped) != io.ErrUnexpectedEOF {
		t.Errorf("Cause = %v, want io.ErrUnexpectedEOF", errors.Cause(wrapped))
	}
	if !strings.HasPrefix(wrapped.Error(), "receiving file name: filesystem: write ./results/x.txt") {
		t.Errorf("unexpected message %q", wrapped.Error())
	}
}

func TestWrapNil(t *testing.T) {
	if err := Wrap(KindTransport, nil, "recv"); err != nil {
		t.Errorf("Wrap(nil) = %v, want nil", err)
	}
}

func TestKindOfForeignError(t *testing.T) {
	if got := KindOf(io.EOF); got != "" {
		t.Errorf("KindOf(io.EOF) = %q, want empty", got)
	}
	if got := Kind("").String(); got != "unknown" {
		t.Errorf("empty kind prints as %q", got)
	}
}

func TestExpect(t *testing.T) {
	if err := Expect("ACK", Ack); err != nil {
		t.Errorf("Expect(ACK): %v", err)
	}
	err := Expect("NAK", Ack)
	if KindOf(err) != KindProtocolViolation {
		t.Fatalf("Expect(NAK) = %v, want a protocol violation", err)
	}
	if !strings.Contains(err.Error(), `"NAK"`) {
		t.Errorf("message %q does not name the received literal", err.Error())
	}
}
