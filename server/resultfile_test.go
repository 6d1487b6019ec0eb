package server

import (
	"os"
	"path/filepath"
	"testing"

	protocol "filename-bench/pkg"
)

func TestResultFileCreatesDirectoryAndAppendsLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results", "127.0.0.1_tests.txt")

	rf, err := CreateResultFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"one.json", "two.json", ""} {
		if err := rf.Append(name); err != nil {
			t.Fatal(err)
		}
	}
	if rf.Path() != path {
		t.Errorf("Path = %q, want %q", rf.Path(), path)
	}
	if rf.Lines() != 3 {
		t.Errorf("Lines = %d, want 3", rf.Lines())
	}

	// every line is on disk before Close
	if got := readFile(t, path); got != "one.json\ntwo.json\n\n" {
		t.Errorf("before close: %q", got)
	}
	if err := rf.Close(); err != nil {
		t.Fatal(err)
	}
	if got := readFile(t, path); got != "one.json\ntwo.json\n\n" {
		t.Errorf("after close: %q", got)
	}
}

func TestResultFileTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	if err := os.WriteFile(path, []byte("stale\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	rf, err := CreateResultFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := rf.Close(); err != nil {
		t.Fatal(err)
	}
	if got := readFile(t, path); got != "" {
		t.Errorf("got %q, want an empty file", got)
	}
}

func TestResultFileUnwritableDirectory(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "results")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := CreateResultFile(filepath.Join(blocker, "x.txt"))
	assertKind(t, err, protocol.KindFilesystem)
}
