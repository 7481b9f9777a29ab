package dat

// DoubleArray is a built, immutable double-array trie. The zero value is
// not usable; obtain one from Build or Load.
//
// A DoubleArray is safe for concurrent read-only use: lookup methods take
// no mutable state and units is never modified after Build returns.
type DoubleArray struct {
	units []Unit
}

// NumUnits returns the number of units in the packed array, including the
// root unit at index 0.
func (d *DoubleArray) NumUnits() int { return len(d.units) }

// TotalSize returns the size in bytes the packed array occupies, as it
// would be written by Save.
func (d *DoubleArray) TotalSize() int { return len(d.units) * 4 }

// Unit exposes the raw unit at index i, mainly for diagnostics and tests.
func (d *DoubleArray) Unit(i int) Unit { return d.units[i] }
