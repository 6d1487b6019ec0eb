package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"filename-bench/client"
	protocol "filename-bench/pkg"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [flags] <server_host> <server_port> <dir_name>\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	os.Exit(run())
}

func run() int {
	framing := flag.String("framing", "stream", "record framing: stream or single-read")
	exponent := flag.Int("i", 0, "receive buffer exponent (B = 2^i); 0 keeps a 1024-byte buffer")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 3 {
		usage()
		return 1
	}
	port, err := strconv.Atoi(flag.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid server port %q\n", flag.Arg(1))
		return 1
	}
	mode, err := protocol.ParseFraming(*framing)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := client.New(client.Config{
		Host:           flag.Arg(0),
		Port:           port,
		Dir:            flag.Arg(2),
		BufferExponent: *exponent,
		Framing:        mode,
		Logger:         log.New(os.Stderr, "client: ", log.LstdFlags),
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	report, err := c.Run(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}

	fmt.Printf("Transfer completed in %f seconds.\n", report.Elapsed.Seconds())
	fmt.Printf("Total bytes sent: %d\n", report.BytesSent)
	fmt.Printf("Names sent: %d (%.1f names/s), digest %s\n", report.Names, report.Throughput(), &report.Digest)
	return 0
}
