// Package gentests populates a directory with empty files whose base names all
// have the same length, so that the benchmark can vary the record size.
package gentests

import (
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

const (
	DefaultDir   = "./tests"
	DefaultCount = 50

	Suffix        = ".json"
	MaxNameLength = 255 // longest base name most filesystems accept

	alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// NameLength returns L = min(2^i, 255), the byte length of every generated
// base name including Suffix.
func NameLength(i int) (int, error) {
	if i < 0 {
		return 0, errors.Errorf("i_size %d is negative", i)
	}
	l := MaxNameLength
	if i < 8 {
		l = 1 << i
	}
	if l < len(Suffix)+1 {
		return 0, errors.Errorf("name length %d cannot hold a %q suffix (need i_size >= 3)", l, Suffix)
	}
	return l, nil
}

type Generator struct {
	Dir   string
	Count int
	// Rand picks the name characters. Nil uses the global source.
	Rand *rand.Rand
}

// Generate creates Count distinct empty files in Dir and returns their names.
func (g *Generator) Generate(i int) ([]string, error) {
	length, err := NameLength(i)
	if err != nil {
		return nil, err
	}
	dir := g.Dir
	if dir == "" {
		dir = DefaultDir
	}
	count := g.Count
	if count == 0 {
		count = DefaultCount
	}
	if count < 0 {
		return nil, errors.Errorf("file count %d is negative", count)
	}
	if total, ok := distinctNames(length-len(Suffix), count); ok && total < count {
		return nil, errors.Errorf("only %d distinct %d-byte names exist, %d requested", total, length, count)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create %s", dir)
	}

	names := make([]string, 0, count)
	seen := make(map[string]bool, count)
	for len(names) < count {
		name := g.randomString(length-len(Suffix)) + Suffix
		if seen[name] {
			continue
		}
		seen[name] = true

		path := filepath.Join(dir, name)
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return names, errors.Wrapf(err, "create %s", path)
		}
		if err := f.Close(); err != nil {
			return names, errors.Wrapf(err, "close %s", path)
		}
		names = append(names, name)
	}
	return names, nil
}

// distinctNames returns len(alphabet)^n when it is at most limit. ok is false
// when there are more names than that.
func distinctNames(n, limit int) (total int, ok bool) {
	total = 1
	for ; n > 0; n-- {
		if total > limit/len(alphabet) {
			return 0, false
		}
		total *= len(alphabet)
	}
	return total, true
}

func (g *Generator) randomString(n int) string {
	b := make([]byte, n)
	for i := range b {
		if g.Rand != nil {
			b[i] = alphabet[g.Rand.IntN(len(alphabet))]
		} else {
			b[i] = alphabet[rand.IntN(len(alphabet))]
		}
	}
	return string(b)
}
