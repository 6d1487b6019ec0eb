package client

import (
	"io"
	"log"

	"github.com/pkg/errors"

	protocol "filename-bench/pkg"
)

type Config struct {
	Host string
	Port int
	Dir  string

	// BufferExponent sizes the receive buffer as 2^i; zero keeps
	// protocol.DefaultClientBufferSize.
	BufferExponent int
	Framing        protocol.Framing
	Logger         *log.Logger
}

func (c *Config) Validate() error {
	if c.Host == "" {
		return errors.New("server host is empty")
	}
	if c.Port < 1 || c.Port > 65535 {
		return errors.Errorf("server port %d out of range 1..65535", c.Port)
	}
	if len(c.Dir)+1 > protocol.HandshakeBufferSize {
		return errors.Errorf("directory name is %d bytes, the server accepts at most %d", len(c.Dir), protocol.HandshakeBufferSize-1)
	}
	if c.BufferExponent != 0 {
		if _, err := protocol.BufferSize(c.BufferExponent); err != nil {
			return err
		}
	}
	if c.Logger == nil {
		c.Logger = log.New(io.Discard, "", 0)
	}
	return nil
}

func (c *Config) bufferSize() int {
	if c.BufferExponent == 0 {
		return protocol.DefaultClientBufferSize
	}
	n, _ := protocol.BufferSize(c.BufferExponent)
	return n
}
