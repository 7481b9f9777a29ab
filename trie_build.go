package dat

// keyRange identifies the slice of (sorted) keys sharing a common prefix
// of length depth, and the unit index their shared parent state occupies
// once reserved.
type keyRange struct {
	begin, end, depth int
	index             uint32
}

// buildTrie packs sorted keys directly into a double array without going
// through a DAWG: it is the path taken when the caller supplies no
// values, in which case each key's zero-based rank becomes its value.
// Unlike buildDawgPacked it never merges states -- shared suffixes are not
// collapsed -- but it also never needs a state pool, just the keys
// themselves partitioned by shared prefix depth.
func (p *packer) buildTrie(keys [][]byte, values []int32) error {
	p.reserveUnit(0)
	p.extras[0].isUsed = true
	if err := p.units[0].setOffset(1); err != nil {
		return err
	}
	p.units[0].setLabel(0)

	p.progress = 0
	p.maxProgress = len(keys)

	if len(keys) > 0 {
		if err := p.packTrieRanges(keys, values); err != nil {
			return err
		}
	}
	p.fixAllBlocks()
	return nil
}

func keyByteAt(key []byte, depth int) byte {
	if depth < len(key) {
		return key[depth]
	}
	return 0
}

func (p *packer) packTrieRanges(keys [][]byte, values []int32) error {
	stack := []keyRange{{begin: 0, end: len(keys), depth: 0, index: 0}}

	for len(stack) > 0 {
		r := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		var labels []byte
		var childRanges []keyRange

		childBegin := r.begin
		labels = append(labels, keyByteAt(keys[childBegin], r.depth))
		for i := r.begin + 1; i != r.end; i++ {
			if labels[len(labels)-1] == 0 {
				p.tick()
			}
			b := keyByteAt(keys[i], r.depth)
			if b != labels[len(labels)-1] {
				labels = append(labels, b)
				childRanges = append(childRanges, keyRange{begin: childBegin, end: i, depth: r.depth + 1})
				childBegin = i
			}
		}
		if labels[len(labels)-1] == 0 {
			p.tick()
		}
		childRanges = append(childRanges, keyRange{begin: childBegin, end: r.end, depth: r.depth + 1})

		offset := p.findOffset(r.index, labels)
		if err := p.units[r.index].setOffset(r.index ^ offset); err != nil {
			return err
		}

		for i := len(childRanges) - 1; i >= 0; i-- {
			child := offset ^ uint32(labels[i])
			p.reserveUnit(child)

			if labels[i] == 0 {
				p.units[r.index].setHasLeaf()
				var value int32
				if values != nil {
					value = values[r.begin+i]
				} else {
					value = int32(r.begin + i)
				}
				p.units[child].setValue(value)
			} else {
				p.units[child].setLabel(labels[i])
				cr := childRanges[i]
				cr.index = child
				stack = append(stack, cr)
			}
		}
		p.extras[offset].isUsed = true
	}
	return nil
}
