/*
Package dat builds and queries a frozen double-array trie (DAT) mapping a
sorted set of byte-string keys to non-negative 31-bit integer values.

A DAT is built in two stages. First, the sorted key/value stream is folded
into a directed acyclic word graph (DAWG) that merges equivalent suffixes.
Second, the DAWG is packed depth-first into a flat array of 32-bit units,
one per trie state, such that each state's children are reachable from a
single XOR offset. When no values are supplied, the packer consumes the
sorted keys directly and assigns each key its rank as a value, skipping the
DAWG stage entirely.

The algorithm follows Darts-clone (Susumu Yata), a well known reimplementation of
Jun-ichi Aoe's double-array trie construction. Lookup is O(|key|) and the
packed array is immutable once built, allowing it to be shared read-only
across goroutines or persisted to disk as a raw sequence of little-endian
32-bit words.

Further Reading

	https://github.com/s-yata/darts-clone
	Aoe, J. "An Efficient Digital Search Algorithm by Using a Double-Array Structure" (1989)

----------------------------------------------------------------------

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer@com>

All rights reserved.

License information is available in the LICENSE file.
*/
package dat

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'dat'
func tracer() tracing.Trace {
	return tracing.Select("dat")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
