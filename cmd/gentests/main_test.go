package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunRejectsCountBelowOne(t *testing.T) {
	for _, count := range []string{"0", "-3"} {
		dir := filepath.Join(t.TempDir(), "tests")
		var stdout, stderr bytes.Buffer

		if code := run([]string{"-dir", dir, "-count", count, "4"}, &stdout, &stderr); code != 1 {
			t.Errorf("-count %s: exit code %d, want 1", count, code)
		}
		if !strings.Contains(stderr.String(), "-count must be at least 1") {
			t.Errorf("-count %s: stderr %q", count, stderr.String())
		}
		if _, err := os.Stat(dir); !os.IsNotExist(err) {
			t.Errorf("-count %s: directory was created", count)
		}
	}
}

func TestRunCreatesFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "tests")
	var stdout, stderr bytes.Buffer

	if code := run([]string{"-dir", dir, "-count", "3", "4"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code %d, stderr %q", code, stderr.String())
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Errorf("created %d files, want 3", len(entries))
	}
	if want := "3 files with 16-byte names created in " + dir + "\n"; stdout.String() != want {
		t.Errorf("stdout %q, want %q", stdout.String(), want)
	}
}

func TestRunUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run(nil, &stdout, &stderr); code != 1 {
		t.Errorf("exit code %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "Usage: gentests") {
		t.Errorf("stderr %q", stderr.String())
	}
}
