package server

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	protocol "filename-bench/pkg"
)

// Server accepts a single client, records the names it sends and exits.
type Server struct {
	cfg      Config
	listener net.Listener
	bufSize  int
	serverIP string
	state    protocol.State
}

// Summary describes one finished (or failed) session.
type Summary struct {
	SessionID     string
	ServerIP      string
	Peer          string
	Dir           string
	Path          string
	Names         int
	BytesReceived int
	Digest        protocol.Digest
	State         protocol.State
	Elapsed       time.Duration
}

func (s Summary) String() string {
	return fmt.Sprintf("session %s from %s: %d names, %d bytes, digest %s, %s in %v",
		s.SessionID, s.Peer, s.Names, s.BytesReceived, &s.Digest, s.State, s.Elapsed)
}

// Listen binds the dual-stack listening socket. Nothing is accepted until
// Serve is called.
func Listen(cfg Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	bufSize, _ := protocol.BufferSize(cfg.BufferExponent)

	s := &Server{
		cfg:     cfg,
		bufSize: bufSize,
		state:   protocol.StateInit,
	}
	s.serverIP = cfg.LocalIP()

	// a wildcard "tcp" listener is an AF_INET6 socket that also takes IPv4 peers
	listener, err := net.Listen("tcp", ":"+strconv.Itoa(cfg.Port))
	if err != nil {
		return nil, protocol.Wrapf(protocol.KindSocketSetup, err, "bind port %d", cfg.Port)
	}
	s.listener = listener
	s.setState(protocol.StateListening)
	s.cfg.Logger.Printf("Server listening on IP: %s at port %d (B=%d, framing %s)",
		s.serverIP, s.Port(), s.bufSize, cfg.Framing)
	return s, nil
}

func (s *Server) Addr() net.Addr { return s.listener.Addr() }

func (s *Server) Port() int {
	if tcp, ok := s.listener.Addr().(*net.TCPAddr); ok {
		return tcp.Port
	}
	return s.cfg.Port
}

func (s *Server) State() protocol.State { return s.state }

func (s *Server) setState(state protocol.State) {
	s.state = state
}

// Close releases the listener without serving. Serve closes it on its own.
func (s *Server) Close() error {
	return s.listener.Close()
}

// Serve accepts exactly one connection and runs the session to completion.
// Cancelling ctx closes the sockets; whatever was written to the ResultFile
// stays on disk.
func (s *Server) Serve(ctx context.Context) (summary Summary, err error) {
	summary = Summary{
		SessionID: uuid.NewString(),
		ServerIP:  s.serverIP,
	}
	start := time.Now()
	defer func() {
		summary.Elapsed = time.Since(start)
		if err != nil {
			s.setState(protocol.StateFailed)
			s.cfg.Logger.Printf("session %s failed: %v", summary.SessionID, err)
		}
		summary.State = s.state
	}()

	defer s.listener.Close()
	stopListener := context.AfterFunc(ctx, func() { s.listener.Close() })
	defer stopListener()

	conn, err := s.listener.Accept()
	if err != nil {
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		return summary, protocol.Wrap(protocol.KindSocketSetup, err, "failed to accept client")
	}
	rc := protocol.NewConn(conn, s.cfg.Framing)
	defer rc.Close()
	stopConn := context.AfterFunc(ctx, func() { rc.Close() })
	defer stopConn()

	s.setState(protocol.StateAccepted)
	summary.Peer = rc.RemoteAddr().String()
	s.cfg.Logger.Printf("Client %s connected. Waiting for messages...", protocol.FormatPeer(rc.RemoteAddr()))

	if err := s.handshake(rc); err != nil {
		return summary, err
	}

	s.setState(protocol.StateAwaitDir)
	dir, err := rc.ReadRecord(protocol.HandshakeBufferSize)
	if err != nil {
		return summary, errors.WithMessage(err, "receiving directory name")
	}
	summary.Dir = dir
	summary.Path = protocol.ResultPath(s.cfg.ResultsDir, s.serverIP, dir)
	rf, err := CreateResultFile(summary.Path)
	if err != nil {
		return summary, err
	}
	s.cfg.Logger.Printf("Directory name received from client: %q, writing %s", dir, rf.Path())

	s.setState(protocol.StateReceiving)
	if err := s.receive(rc, rf, &summary); err != nil {
		rf.Close()
		summary.Names = rf.Lines()
		return summary, err
	}
	summary.Names = rf.Lines()
	if err := rf.Close(); err != nil {
		return summary, err
	}

	rc.Close()
	s.listener.Close()
	s.setState(protocol.StateDone)
	s.cfg.Logger.Printf("Bye message received from client. Saved %d names to %s", summary.Names, summary.Path)

	if s.cfg.Archiver != nil {
		meta := Metadata{
			SessionID: summary.SessionID,
			ServerIP:  s.serverIP,
			Dir:       dir,
			Names:     summary.Names,
		}
		if err := s.cfg.Archiver.Archive(ctx, summary.Path, meta); err != nil {
			s.cfg.Logger.Printf("archiving %s: %v", summary.Path, err)
		}
	}
	return summary, nil
}

func (s *Server) handshake(rc *protocol.Conn) error {
	s.setState(protocol.StateAwaitReady)
	if err := rc.ReadReady(); err != nil {
		return errors.WithMessage(err, "initial message 'READY' not received from client")
	}
	if _, err := rc.WriteRecord(protocol.ReadyAck); err != nil {
		return errors.WithMessage(err, "sending READY ACK")
	}
	s.setState(protocol.StateReadySent)
	return nil
}

// receive runs the stop-and-wait loop until "bye". bye is never acknowledged.
func (s *Server) receive(rc *protocol.Conn, rf *ResultFile, summary *Summary) error {
	for {
		name, err := rc.ReadRecord(s.bufSize)
		if err != nil {
			return errors.WithMessage(err, "receiving file name")
		}
		summary.BytesReceived += len(name) + 1
		if name == protocol.Bye {
			return nil
		}

		if err := rf.Append(name); err != nil {
			return err
		}
		summary.Digest.Add(name)
		s.cfg.Logger.Printf("Received: %s", name)

		if _, err := rc.WriteRecord(protocol.Ack); err != nil {
			return errors.WithMessage(err, "sending ACK")
		}
	}
}
