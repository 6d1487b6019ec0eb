package server

import (
	"context"
	"io"
	"log"

	"github.com/pkg/errors"

	protocol "filename-bench/pkg"
)

// Archiver stores a finished ResultFile somewhere other than local disk.
type Archiver interface {
	Archive(ctx context.Context, path string, meta Metadata) error
}

// Metadata describes the session that produced a ResultFile.
type Metadata struct {
	SessionID string
	ServerIP  string
	Dir       string
	Names     int
}

type Config struct {
	Port           int
	BufferExponent int
	Framing        protocol.Framing
	ResultsDir     string

	// LocalIP names the server in the ResultFile path. Defaults to
	// protocol.LocalIPv4.
	LocalIP func() string

	Archiver Archiver
	Logger   *log.Logger
}

func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return errors.Errorf("server port %d out of range", c.Port)
	}
	if _, err := protocol.BufferSize(c.BufferExponent); err != nil {
		return err
	}
	if c.ResultsDir == "" {
		c.ResultsDir = protocol.DefaultResultsDir
	}
	if c.LocalIP == nil {
		c.LocalIP = protocol.LocalIPv4
	}
	if c.Logger == nil {
		c.Logger = log.New(io.Discard, "", 0)
	}
	return nil
}
