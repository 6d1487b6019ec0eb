package protocol

import "github.com/pkg/errors"

// Kind classifies a failure. Every kind is fatal to the session.
type Kind string

const (
	KindSocketSetup       Kind = "socket setup"
	KindNameResolution    Kind = "name resolution"
	KindProtocolViolation Kind = "protocol violation"
	KindPeerClosed        Kind = "peer closed"
	KindTransport         Kind = "transport"
	KindFilesystem        Kind = "filesystem"
)

type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.Err.Error()
}

func (e *Error) Cause() error  { return e.Err }
func (e *Error) Unwrap() error { return e.Err }

func Wrap(kind Kind, err error, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Err: errors.Wrap(err, msg)}
}

func Wrapf(kind Kind, err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Err: errors.Wrapf(err, format, args...)}
}

func Errorf(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Err: errors.Errorf(format, args...)}
}

// KindOf returns the kind of the outermost *Error in the chain, or "" when err
// was not produced by this package.
func KindOf(err error) Kind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}

// Expect compares a received literal against the one the protocol requires.
func Expect(got, want string) error {
	if got != want {
		return Errorf(KindProtocolViolation, "expected %q, got %q", want, got)
	}
	return nil
}

func (k Kind) String() string {
	if k == "" {
		return "unknown"
	}
	return string(k)
}
