package dat

import (
	"bytes"

	"github.com/eric1688/dat/internal/dawg"
)

// ProgressFunc receives (done, total) reports over the course of a Build.
// On the plain trie path it is called num_keys times, with total equal to
// num_keys. On the DAWG path it is called once per key while the DAWG is
// built (total num_keys + num_keys/4), then once per packed state, at most
// S times, with done counting up from 4*S towards a total of 5*S, where S
// is the number of live DAWG states; the number of calls on this path is
// therefore not limited to num_keys + num_keys/4. It has no return value
// and must not call back into the builder.
type ProgressFunc func(done, total int)

// Build packs keys, a set of sorted, deduplicated, non-empty byte-string
// keys none of which contain an interior 0x00 byte, into an immutable
// double array. If values is non-nil it must hold one non-negative entry
// per key and drives suffix-sharing via a DAWG; if nil, each key is
// assigned its zero-based index as a value and no DAWG is built.
//
// Build returns a *BuildError for any malformed input or capacity
// failure. A failed Build must be discarded; there is no partial result
// to retry with.
func Build(keys [][]byte, values []int32, progress ProgressFunc) (*DoubleArray, error) {
	if err := validateKeys(keys, values); err != nil {
		return nil, err
	}

	p := newPacker(progress)

	if len(keys) == 0 {
		p.reserveUnit(0)
		p.extras[0].isUsed = true
		if err := p.units[0].setOffset(1); err != nil {
			return nil, err
		}
		p.units[0].setLabel(0)
		p.fixAllBlocks()
		return &DoubleArray{units: p.units}, nil
	}

	if values != nil {
		dg := dawg.Build(keys, values, dawg.Progress(progress))
		tracer().Infof("dat: dawg built: %d states, %d merged", dg.NumStates(), dg.NumMergedStates())
		if err := p.buildDawgPacked(dg); err != nil {
			return nil, err
		}
	} else {
		if err := p.buildTrie(keys, nil); err != nil {
			return nil, err
		}
	}

	tracer().Infof("dat: packed %d units for %d keys", len(p.units), len(keys))
	return &DoubleArray{units: p.units}, nil
}

// validateKeys enforces the builder's input contract: no nil or
// zero-length keys, no interior terminator byte, non-negative values,
// and strictly increasing lexicographic order.
//
// The zero-length check is explicit rather than folded into the
// interior-null scan: a reimplementation that instead guards it behind
// "if lengths are absent" reproduces a copy-paste bug in the source that
// made the check unreachable.
func validateKeys(keys [][]byte, values []int32) error {
	for i, key := range keys {
		if key == nil {
			return newBuildError(ErrNullKey, i, "key is nil")
		}
		if len(key) == 0 {
			return newBuildError(ErrZeroLength, i, "key has zero length")
		}
		for _, b := range key {
			if b == 0 {
				return newBuildError(ErrInteriorNull, i, "key contains reserved 0x00 byte")
			}
		}
		if values != nil && values[i] < 0 {
			return newBuildError(ErrNegativeValue, i, "value is negative")
		}
		if i > 0 && bytes.Compare(keys[i-1], key) >= 0 {
			return newBuildError(ErrKeyOrder, i, "keys are not strictly increasing")
		}
	}
	return nil
}
