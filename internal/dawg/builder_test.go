package dawg

import "testing"

func keys(ss ...string) [][]byte {
	out := make([][]byte, len(ss))
	for i, s := range ss {
		out[i] = []byte(s)
	}
	return out
}

func TestBuildSingleKey(t *testing.T) {
	d := Build(keys("a"), []int32{5}, nil)
	if d.NumStates() != 3 {
		t.Fatalf("expected root, 'a' node, and terminator leaf, got %d", d.NumStates())
	}

	root := Handle(0)
	child := d.Child(root)
	if child == 0 {
		t.Fatalf("root has no child")
	}
	if d.Label(child) != 'a' {
		t.Fatalf("root's child should be labeled 'a', got %d", d.Label(child))
	}
	if d.IsLeaf(child) {
		t.Fatalf("root's child is the 'a' node, not yet the terminator leaf")
	}

	leaf := d.Child(child)
	if d.Label(leaf) != 0 {
		t.Fatalf("terminator state should carry the 0 label, got %d", d.Label(leaf))
	}
	if !d.IsLeaf(leaf) {
		t.Fatalf("expected terminator state to be a leaf")
	}
	if d.Value(leaf) != 5 {
		t.Fatalf("got value %d, want 5", d.Value(leaf))
	}
}

func TestBuildSharesCommonSuffix(t *testing.T) {
	// Both keys end in the same 7-byte suffix "storage\0" but diverge in
	// their first two bytes; every state along that shared suffix chain
	// should be folded into one.
	d := Build(keys("xxstorage", "yystorage"), []int32{1, 2}, nil)
	if got := d.NumMergedStates(); got < 5 {
		t.Fatalf("expected at least 5 merged states, got %d", got)
	}
}

func TestBuildDistinctSuffixesDoNotMerge(t *testing.T) {
	d := Build(keys("apple", "banana"), []int32{1, 2}, nil)
	if got := d.NumMergedStates(); got != 0 {
		t.Fatalf("no suffix sharing expected, got %d merged states", got)
	}
}

func TestProgressCallbackFires(t *testing.T) {
	calls := 0
	Build(keys("a", "b", "c"), []int32{1, 2, 3}, func(done, total int) {
		calls++
		if done > total {
			t.Fatalf("done %d exceeds total %d", done, total)
		}
	})
	if calls == 0 {
		t.Fatalf("expected at least one progress callback")
	}
}

func TestRotateRightUsesBitWidthNotByteWidth(t *testing.T) {
	// Rotating 0x12000000 right by 8 bits moves the 0x12 byte down one byte
	// position, to 0x00120000. The byte-width sizeof(value)-shift
	// formulation from the source this is modeled on (4-8 here) does not
	// compute that rotate.
	v := uint32(0x12000000)
	got := rotateRight(v, 8)
	want := uint32(0x00120000)
	if got != want {
		t.Fatalf("rotateRight(0x12000000, 8) = %#x, want %#x", got, want)
	}
}
