package dat

import (
	"encoding/binary"
	"io"
)

// Save writes the packed unit array to w as a raw sequence of little-endian
// 32-bit words: no header, no magic number, no length prefix. It returns
// -1 on any I/O failure, per the spec's non-fatal serializer error
// convention (the builder itself never does I/O).
func (d *DoubleArray) Save(w io.Writer) int {
	buf := make([]byte, 4*len(d.units))
	for i, u := range d.units {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(u))
	}
	if _, err := w.Write(buf); err != nil {
		tracer().Errorf("dat: save failed: %v", err)
		return -1
	}
	return 0
}

// Load reads a packed unit array from r. size, if non-zero, limits the
// number of bytes read; when size is zero, Load reads to EOF. size must be
// a multiple of 4, matching the on-disk unit width. Load returns -1 on any
// I/O or framing failure, never a Go error, matching Save's convention.
func Load(r io.Reader, size int) (*DoubleArray, int) {
	var raw []byte
	var err error
	if size > 0 {
		raw = make([]byte, size)
		_, err = io.ReadFull(r, raw)
	} else {
		raw, err = io.ReadAll(r)
	}
	if err != nil {
		tracer().Errorf("dat: load failed: %v", err)
		return nil, -1
	}
	if len(raw)%4 != 0 {
		tracer().Errorf("dat: load failed: size %d is not a multiple of 4", len(raw))
		return nil, -1
	}

	units := make([]Unit, len(raw)/4)
	for i := range units {
		units[i] = Unit(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	if len(units) == 0 {
		tracer().Errorf("dat: load failed: empty unit array")
		return nil, -1
	}
	return &DoubleArray{units: units}, 0
}
