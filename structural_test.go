package dat

import "testing"

// TestStructuralInvariant checks that every non-leaf unit's label is
// reachable from its parent by the offset relation the packer is
// supposed to establish: unit[i].label == c implies some parent j with
// i == j XOR o XOR c and o == unit[j].offset.
//
// It walks the array forward from the root rather than reconstructing
// parent pointers, by re-deriving child addresses the same way the
// lookup engine does and checking every key actually resolves there.
func TestStructuralInvariant(t *testing.T) {
	keys := []string{"app", "apple", "application", "banana", "band"}
	values := []int32{2, 1, 3, 4, 5}
	d := build(t, keys, values)

	for i, k := range keys {
		index := 0
		unit := d.units[index]
		for j := 0; j < len(k); j++ {
			next := index ^ int(unit.offset()) ^ int(k[j])
			nextUnit := d.units[next]
			if nextUnit.label() != Unit(k[j]) {
				t.Fatalf("key %q: byte %d: child at %d has label %d, want %d",
					k, j, next, nextUnit.label(), k[j])
			}
			index, unit = next, nextUnit
		}
		if !unit.hasLeaf() {
			t.Fatalf("key %q: terminal unit missing hasLeaf", k)
		}
		leaf := d.units[index^int(unit.offset())]
		if leaf.value() != values[i] {
			t.Fatalf("key %q: leaf value %d, want %d", k, leaf.value(), values[i])
		}
	}
}

// TestNoSpuriousPrefixMatches checks the round-trip property's negative
// half: no byte string outside the key set -- including every proper
// prefix or extension of a real key -- is reported as a hit.
func TestNoSpuriousPrefixMatches(t *testing.T) {
	keys := []string{"apple", "banana"}
	d := build(t, keys, []int32{1, 2})

	misses := []string{"a", "app", "appl", "applesauce", "b", "ban", "bananas", "ap"}
	for _, m := range misses {
		if got := d.ExactMatchSearch([]byte(m), 0); got.Value != -1 {
			t.Fatalf("%q: expected miss, got %+v", m, got)
		}
	}
}
