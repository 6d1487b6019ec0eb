package protocol

import (
	"bufio"
	"bytes"
	"io"
	"net"
	"strings"
	"syscall"

	"github.com/pkg/errors"
)

// Framing selects how records are cut out of the byte stream.
type Framing int

const (
	// FramingStream reads until the NUL terminator, across as many reads as needed.
	FramingStream Framing = iota
	// FramingSingleRead treats one read of up to B bytes as one record. It
	// relies on every send arriving in a single delivery.
	FramingSingleRead
)

func (f Framing) String() string {
	switch f {
	case FramingStream:
		return "stream"
	case FramingSingleRead:
		return "single-read"
	}
	return "unknown"
}

func ParseFraming(s string) (Framing, error) {
	switch s {
	case "", "stream":
		return FramingStream, nil
	case "single-read":
		return FramingSingleRead, nil
	}
	return 0, errors.Errorf("unknown framing %q (want stream or single-read)", s)
}

// Conn carries NUL-terminated records over one stream connection.
type Conn struct {
	conn    net.Conn
	reader  *bufio.Reader
	framing Framing
}

func NewConn(conn net.Conn, framing Framing) *Conn {
	return &Conn{
		conn:    conn,
		reader:  bufio.NewReader(conn),
		framing: framing,
	}
}

func (c *Conn) LocalAddr() net.Addr  { return c.conn.LocalAddr() }
func (c *Conn) RemoteAddr() net.Addr { return c.conn.RemoteAddr() }
func (c *Conn) Close() error         { return c.conn.Close() }

// WriteReady sends the bare READY literal. It is the only record without a NUL.
func (c *Conn) WriteReady() (int, error) {
	n, err := c.conn.Write([]byte(Ready))
	if err != nil {
		return n, classifyWrite(err, Ready)
	}
	return n, nil
}

// WriteRecord sends s followed by NUL in a single write and returns the number
// of bytes written.
func (c *Conn) WriteRecord(s string) (int, error) {
	if strings.IndexByte(s, 0) >= 0 {
		return 0, Errorf(KindProtocolViolation, "record %q contains a NUL byte", s)
	}
	buf := make([]byte, len(s)+1)
	copy(buf, s)
	n, err := c.conn.Write(buf)
	if err != nil {
		return n, classifyWrite(err, s)
	}
	return n, nil
}

// ReadReady consumes the READY literal. In stream framing READY is exactly
// five bytes; anything after it, a NUL included, belongs to the next record.
func (c *Conn) ReadReady() error {
	if c.framing == FramingSingleRead {
		data, err := c.readOnce(HandshakeBufferSize)
		if err != nil {
			return err
		}
		if i := bytes.IndexByte(data, 0); i >= 0 {
			data = data[:i]
		}
		return Expect(string(data), Ready)
	}

	buf := make([]byte, len(Ready))
	if _, err := io.ReadFull(c.reader, buf); err != nil {
		if err == io.ErrUnexpectedEOF {
			return Errorf(KindProtocolViolation, "short READY record")
		}
		return classifyRead(err)
	}
	return Expect(string(buf), Ready)
}

// ReadRecord returns the next record without its NUL. max bounds the record
// length including the terminator.
func (c *Conn) ReadRecord(max int) (string, error) {
	if c.framing == FramingSingleRead {
		return c.readSingle(max)
	}

	var rec []byte
	for {
		chunk, err := c.reader.ReadSlice(0)
		rec = append(rec, chunk...)
		if len(rec) > max {
			return "", Errorf(KindProtocolViolation, "record exceeds %d-byte buffer", max)
		}
		switch {
		case err == nil:
			return string(rec[:len(rec)-1]), nil
		case err == bufio.ErrBufferFull:
			continue
		case err == io.EOF && len(rec) > 0:
			return "", Errorf(KindProtocolViolation, "short record: %d bytes without NUL terminator", len(rec))
		default:
			return "", classifyRead(err)
		}
	}
}

func (c *Conn) readSingle(max int) (string, error) {
	data, err := c.readOnce(max)
	if err != nil {
		return "", err
	}
	i := bytes.IndexByte(data, 0)
	if i < 0 {
		return "", Errorf(KindProtocolViolation, "%d-byte delivery has no NUL terminator within %d-byte buffer", len(data), max)
	}
	if i != len(data)-1 {
		return "", Errorf(KindProtocolViolation, "%d unexpected bytes after record", len(data)-i-1)
	}
	return string(data[:i]), nil
}

func (c *Conn) readOnce(max int) ([]byte, error) {
	buf := make([]byte, max)
	n, err := c.reader.Read(buf)
	if n == 0 {
		if err == nil {
			err = io.EOF
		}
		return nil, classifyRead(err)
	}
	return buf[:n], nil
}

func classifyRead(err error) error {
	switch {
	case errors.Is(err, io.EOF):
		return Errorf(KindPeerClosed, "connection closed by peer")
	case errors.Is(err, syscall.ECONNRESET):
		return Wrap(KindPeerClosed, err, "recv")
	}
	return Wrap(KindTransport, err, "recv")
}

func classifyWrite(err error, rec string) error {
	if errors.Is(err, syscall.EPIPE) || errors.Is(err, syscall.ECONNRESET) {
		return Wrapf(KindPeerClosed, err, "send %q", rec)
	}
	return Wrapf(KindTransport, err, "send %q", rec)
}
