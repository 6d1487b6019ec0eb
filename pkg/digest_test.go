package protocol

import (
	"fmt"
	"testing"
)

func digestOf(names ...string) *Digest {
	d := &Digest{}
	for _, n := range names {
		d.Add(n)
	}
	return d
}

func TestDigestMatchesForSameSequence(t *testing.T) {
	a := digestOf("a.json", "b.json", "c.json")
	b := digestOf("a.json", "b.json", "c.json")

	if a.Sum() != b.Sum() || a.Count() != b.Count() {
		t.Errorf("digests differ: %s vs %s", a, b)
	}
	if a.Count() != 3 {
		t.Errorf("Count = %d, want 3", a.Count())
	}
}

func TestDigestDependsOnOrder(t *testing.T) {
	a := digestOf("a.json", "b.json")
	b := digestOf("b.json", "a.json")

	if a.Sum() == b.Sum() {
		t.Errorf("reordered names produced the same digest %s", a)
	}
}

func TestEmptyDigest(t *testing.T) {
	d := &Digest{}
	if d.String() != "0000/0" {
		t.Errorf("empty digest = %s, want 0000/0", d)
	}
}

func ExampleDigest() {
	d := &Digest{}
	d.Add("a.json")
	d.Add("b.json")
	fmt.Println(d.Count())
	// Output: 2
}
