package server

import (
	"bufio"
	"os"
	"path/filepath"

	protocol "filename-bench/pkg"
)

// ResultFile holds one received name per line.
type ResultFile struct {
	path   string
	file   *os.File
	writer *bufio.Writer
	lines  int
}

// CreateResultFile makes the parent directory if needed and opens path with
// truncation.
func CreateResultFile(path string) (*ResultFile, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, protocol.Wrapf(protocol.KindFilesystem, err, "create results directory %s", filepath.Dir(path))
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, protocol.Wrapf(protocol.KindFilesystem, err, "create output file %s", path)
	}
	return &ResultFile{
		path:   path,
		file:   file,
		writer: bufio.NewWriter(file),
	}, nil
}

// Append writes name as one line and flushes it to the file.
func (rf *ResultFile) Append(name string) error {
	if _, err := rf.writer.WriteString(name + "\n"); err != nil {
		return protocol.Wrapf(protocol.KindFilesystem, err, "write %s", rf.path)
	}
	if err := rf.writer.Flush(); err != nil {
		return protocol.Wrapf(protocol.KindFilesystem, err, "flush %s", rf.path)
	}
	rf.lines++
	return nil
}

func (rf *ResultFile) Path() string { return rf.path }
func (rf *ResultFile) Lines() int   { return rf.lines }

func (rf *ResultFile) Close() error {
	if err := rf.writer.Flush(); err != nil {
		rf.file.Close()
		return protocol.Wrapf(protocol.KindFilesystem, err, "flush %s", rf.path)
	}
	if err := rf.file.Close(); err != nil {
		return protocol.Wrapf(protocol.KindFilesystem, err, "close %s", rf.path)
	}
	return nil
}
