package client

import (
	"io"
	"os"
	"path/filepath"

	protocol "filename-bench/pkg"
)

const readDirBatch = 64

// RegularFiles lists the regular files of dir in the order the filesystem
// returns them, which is the order Run sends them in.
func RegularFiles(dir string) ([]string, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, protocol.Wrapf(protocol.KindFilesystem, err, "error while opening directory %s", dir)
	}
	defer f.Close()

	var names []string
	err = eachRegularFile(f, dir, func(name string) error {
		names = append(names, name)
		return nil
	})
	return names, err
}

// eachRegularFile streams the entries of an open directory and calls fn for
// the regular ones. Anything else, symlinks included, is skipped.
func eachRegularFile(f *os.File, dir string, fn func(name string) error) error {
	for {
		entries, err := f.ReadDir(readDirBatch)
		for _, entry := range entries {
			name := entry.Name()
			if name == "." || name == ".." {
				continue
			}
			info, statErr := os.Lstat(filepath.Join(dir, name))
			if statErr != nil {
				return protocol.Wrapf(protocol.KindFilesystem, statErr, "stat %s", name)
			}
			if !info.Mode().IsRegular() {
				continue
			}
			if err := fn(name); err != nil {
				return err
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return protocol.Wrapf(protocol.KindFilesystem, err, "reading directory %s", dir)
		}
	}
}
