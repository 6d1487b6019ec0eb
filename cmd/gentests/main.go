package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"filename-bench/gentests"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("gentests", flag.ContinueOnError)
	fs.SetOutput(stderr)
	dir := fs.String("dir", gentests.DefaultDir, "directory to populate")
	count := fs.Int("count", gentests.DefaultCount, "number of files to create (at least 1)")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: gentests [flags] <i_size>\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 1
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return 1
	}
	i, err := strconv.Atoi(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "Error: invalid i_size %q\n", fs.Arg(0))
		return 1
	}
	// Generator treats a zero Count as the default
	if *count < 1 {
		fmt.Fprintf(stderr, "Error: -count must be at least 1, got %d\n", *count)
		return 1
	}

	g := &gentests.Generator{Dir: *dir, Count: *count}
	names, err := g.Generate(i)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	length, _ := gentests.NameLength(i)
	fmt.Fprintf(stdout, "%d files with %d-byte names created in %s\n", len(names), length, *dir)
	return 0
}
