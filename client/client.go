package client

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	protocol "filename-bench/pkg"
)

// Client sends the names of the regular files in one directory, one record at
// a time, waiting for the server's ACK after each.
type Client struct {
	cfg     Config
	bufSize int
}

// Report is the benchmark result of one clean run.
type Report struct {
	SessionID string
	Server    string
	Dir       string
	Names     int
	// BytesSent counts the directory record and every name record, NUL
	// terminators included. READY and bye are not counted.
	BytesSent int
	Elapsed   time.Duration
	Digest    protocol.Digest
}

// Throughput is acknowledged names per second.
func (r Report) Throughput() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Names) / r.Elapsed.Seconds()
}

func (r Report) String() string {
	return fmt.Sprintf("session %s to %s: %d names, %d bytes in %v (%.1f names/s), digest %s",
		r.SessionID, r.Server, r.Names, r.BytesSent, r.Elapsed, r.Throughput(), &r.Digest)
}

func New(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Client{cfg: cfg, bufSize: cfg.bufferSize()}, nil
}

// Resolve looks host up and picks the address to dial: the first IPv6 result
// if there is one, otherwise the first IPv4 result as an IPv4-mapped address.
func Resolve(ctx context.Context, host string) (netip.Addr, error) {
	if addr, err := netip.ParseAddr(host); err == nil {
		return toIPv6(addr), nil
	}
	addrs, err := net.DefaultResolver.LookupNetIP(ctx, "ip", host)
	if err != nil {
		return netip.Addr{}, protocol.Wrapf(protocol.KindNameResolution, err, "failed to resolve hostname %s", host)
	}
	if len(addrs) == 0 {
		return netip.Addr{}, protocol.Errorf(protocol.KindNameResolution, "no addresses for %s", host)
	}
	for _, addr := range addrs {
		if addr.Is6() && !addr.Is4In6() {
			return addr, nil
		}
	}
	return toIPv6(addrs[0]), nil
}

func toIPv6(addr netip.Addr) netip.Addr {
	if addr.Is4() {
		return netip.AddrFrom16(addr.As16())
	}
	return addr
}

// Run performs one complete session. Cancelling ctx closes the connection.
func (c *Client) Run(ctx context.Context) (report Report, err error) {
	report = Report{
		SessionID: uuid.NewString(),
		Dir:       c.cfg.Dir,
	}

	addr, err := Resolve(ctx, c.cfg.Host)
	if err != nil {
		return report, err
	}
	report.Server = netip.AddrPortFrom(addr, uint16(c.cfg.Port)).String()
	c.cfg.Logger.Printf("Trying to connect to the server at %s (%s) using directory %s",
		c.cfg.Host, report.Server, c.cfg.Dir)

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", report.Server)
	if err != nil {
		return report, protocol.Wrap(protocol.KindSocketSetup, err, "failed to connect to server")
	}
	rc := protocol.NewConn(conn, c.cfg.Framing)
	defer rc.Close()
	stop := context.AfterFunc(ctx, func() { rc.Close() })
	defer stop()
	c.cfg.Logger.Printf("Connection established from %s", rc.LocalAddr())
	if _, err := rc.WriteReady(); err != nil {
		return report, err
	}
	start := time.Now()

	reply, err := rc.ReadRecord(c.bufSize)
	if err == nil {
		err = protocol.Expect(reply, protocol.ReadyAck)
	}
	if err != nil {
		return report, errors.WithMessage(err, "server did not respond with READY ACK")
	}

	dir, err := os.Open(c.cfg.Dir)
	if err != nil {
		return report, protocol.Wrapf(protocol.KindFilesystem, err, "error while opening directory %s", c.cfg.Dir)
	}
	defer dir.Close()

	n, err := rc.WriteRecord(c.cfg.Dir)
	if err != nil {
		return report, errors.WithMessage(err, "error while sending directory name")
	}
	report.BytesSent += n
	c.cfg.Logger.Printf("Starting file transfer from: %s", c.cfg.Dir)

	err = eachRegularFile(dir, c.cfg.Dir, func(name string) error {
		n, err := rc.WriteRecord(name)
		if err != nil {
			return errors.WithMessage(err, "error while sending file name")
		}
		report.BytesSent += n
		c.cfg.Logger.Printf("Sent file name: %s (%d bytes)", name, n)

		ack, err := rc.ReadRecord(c.bufSize)
		if err == nil {
			err = protocol.Expect(ack, protocol.Ack)
		}
		if err != nil {
			return errors.WithMessage(err, "server did not respond with ACK")
		}
		report.Names++
		report.Digest.Add(name)
		return nil
	})
	if err != nil {
		return report, err
	}

	if _, err := rc.WriteRecord(protocol.Bye); err != nil {
		return report, errors.WithMessage(err, "sending bye")
	}
	report.Elapsed = time.Since(start)
	return report, nil
}
