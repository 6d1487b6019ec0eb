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

	"filename-bench/archive"
	protocol "filename-bench/pkg"
	"filename-bench/server"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [flags] <server_port> <i_size>\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	os.Exit(run())
}

func run() int {
	framing := flag.String("framing", "stream", "record framing: stream or single-read")
	resultsDir := flag.String("results", protocol.DefaultResultsDir, "directory for result files")
	mongoURI := flag.String("mongo-uri", "", "also archive the result file to this MongoDB via GridFS")
	mongoDB := flag.String("mongo-db", archive.DefaultDatabase, "database holding the GridFS archive")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 2 {
		usage()
		return 1
	}
	port, err := strconv.Atoi(flag.Arg(0))
	if err != nil || port < 1 || port > 65535 {
		fmt.Fprintf(os.Stderr, "Error: invalid server port %q\n", flag.Arg(0))
		return 1
	}
	iSize, err := strconv.Atoi(flag.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid i_size %q\n", flag.Arg(1))
		return 1
	}
	mode, err := protocol.ParseFraming(*framing)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}

	logger := log.New(os.Stderr, "server: ", log.LstdFlags)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := server.Config{
		Port:           port,
		BufferExponent: iSize,
		Framing:        mode,
		ResultsDir:     *resultsDir,
		Logger:         logger,
	}
	if *mongoURI != "" {
		store, err := archive.Open(ctx, *mongoURI, *mongoDB)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return 1
		}
		defer store.Close(context.Background())
		cfg.Archiver = store
	}

	srv, err := server.Listen(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	summary, err := srv.Serve(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	logger.Println(summary)
	return 0
}
