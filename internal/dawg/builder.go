package dawg

const defaultHashTableSize = 1 << 8

// Build inserts keys (which must already be sorted in strictly increasing
// lexicographic order, and are processed last-to-first) and folds any
// states reachable at the end of insertion that share identical
// transition/sibling/label triples. keys[i] maps to values[i].
//
// progress, if non-nil, is called once per key as insertion proceeds, with
// done running from 1 to len(keys) and total fixed at
// len(keys) + len(keys)/4; the final merge makes no progress call.
func Build(keys [][]byte, values []int32, progress Progress) *DAWG {
	b := &builder{hashTable: make([]uint32, defaultHashTableSize)}

	// Root state and root node.
	b.get()
	b.setLabel(0, 0)
	b.unfixed = append(b.unfixed, 0)

	numKeys := len(keys)
	maxProgress := numKeys + numKeys/4
	for keyID := numKeys - 1; keyID >= 0; keyID-- {
		b.insertKey(keys[keyID], values[keyID])
		if progress != nil {
			progress(numKeys-keyID, maxProgress)
		}
	}

	// Merges the states corresponding to the first key.
	b.merge(0)

	b.hashTable = nil
	return &DAWG{
		transition:      b.transition,
		sibling:         b.sibling,
		label:           b.label,
		numUnusedStates: len(b.unused),
		numMergedStates: int(b.numMerged),
	}
}

// builder holds the mutable state pool and bookkeeping used only while a
// DAWG is under construction; none of it survives into the returned DAWG.
type builder struct {
	transition []uint32
	sibling    []uint32
	label      []byte

	hashTable []uint32
	unfixed   []uint32
	unused    []uint32
	numMerged uint32
}

func (b *builder) size() uint32 { return uint32(len(b.transition)) }

func (b *builder) clearState(index uint32) {
	b.transition[index] = 0
	b.sibling[index] = 0
}

func (b *builder) setChild(index, child uint32)    { b.transition[index] = child << 1 }
func (b *builder) setSibling(index, sibling uint32) { b.sibling[index] = sibling << 1 }
func (b *builder) setValue(index uint32, value int32) {
	b.transition[index] = (uint32(value) << 1) | 1
}
func (b *builder) setLabel(index uint32, label byte) { b.label[index] = label }

func (b *builder) child(index uint32) uint32   { return b.transition[index] >> 1 }
func (b *builder) sibling_(index uint32) uint32 { return b.sibling[index] >> 1 }
func (b *builder) isLeaf(index uint32) bool    { return b.transition[index]&1 == 1 }
func (b *builder) label_(index uint32) byte    { return b.label[index] }

// insertKey finds the point at which key diverges from the unfixed spine
// (the path of the key inserted just before it, which -- because insertion
// runs in reverse sorted order -- is the first-child chain from the root),
// merges the states above that divergence point, then appends new states
// for the remainder of key.
func (b *builder) insertKey(key []byte, value int32) {
	var index uint32
	var keyPos int

	for ; keyPos <= len(key); keyPos++ {
		childIndex := b.child(index)
		if childIndex == 0 {
			break
		}
		if b.label_(childIndex) != keyLabel(key, keyPos) {
			b.merge(index)
			break
		}
		index = childIndex
	}

	for ; keyPos <= len(key); keyPos++ {
		childIndex := b.get()
		b.setSibling(childIndex, b.child(index))
		b.setLabel(childIndex, keyLabel(key, keyPos))
		b.unfixed = append(b.unfixed, childIndex)
		b.setChild(index, childIndex)
		index = childIndex
	}
	b.setValue(index, value)
}

// merge folds every unfixed state above index, walking from the bottom of
// the right spine, replacing each with its hash-table match if one
// exists.
func (b *builder) merge(index uint32) {
	for b.unfixed[len(b.unfixed)-1] != index {
		unfixedIndex := b.unfixed[len(b.unfixed)-1]

		if b.size() >= uint32(len(b.hashTable))-uint32(len(b.hashTable))>>2 {
			b.expandHashTable()
		}

		matchedIndex, hashID := b.findState(unfixedIndex)
		if matchedIndex != 0 {
			b.unget(unfixedIndex)
			unfixedIndex = matchedIndex
			b.numMerged++
		} else {
			b.hashTable[hashID] = unfixedIndex
		}

		b.unfixed = b.unfixed[:len(b.unfixed)-1]
		b.setChild(b.unfixed[len(b.unfixed)-1], unfixedIndex)
	}
}

// findState looks up a state structurally equal to index (same transition
// word, sibling word and label) in the hash table. It returns the match's
// handle, or 0 with the empty slot's hash id if there is none.
func (b *builder) findState(index uint32) (matched, hashID uint32) {
	transitionWord := b.transition[index]
	siblingWord := b.sibling[index]
	label := b.label[index]

	hashID = hash(transitionWord, siblingWord, uint32(label)) % uint32(len(b.hashTable))
	for {
		stateID := b.hashTable[hashID]
		if stateID == 0 {
			return 0, hashID
		}
		if transitionWord == b.transition[stateID] &&
			siblingWord == b.sibling[stateID] &&
			label == b.label[stateID] {
			return stateID, hashID
		}
		hashID = (hashID + 1) % uint32(len(b.hashTable))
	}
}

// expandHashTable doubles the hash table and reinserts every live state,
// skipping the states currently on the unfixed spine or the unused free
// list (both are snapshotted and sorted first so the scan can skip over
// them by index rather than by membership test).
func (b *builder) expandHashTable() {
	freeStates := make([]uint32, 0, len(b.unfixed)+len(b.unused))
	freeStates = append(freeStates, b.unfixed...)
	freeStates = append(freeStates, b.unused...)
	sortUint32s(freeStates)

	b.hashTable = make([]uint32, len(b.hashTable)<<1)

	var stateID uint32
	for _, free := range freeStates {
		for ; stateID < free; stateID++ {
			_, hashID := b.findState(stateID)
			b.hashTable[hashID] = stateID
		}
		stateID++
	}
	for ; stateID < b.size(); stateID++ {
		_, hashID := b.findState(stateID)
		b.hashTable[hashID] = stateID
	}
}

// get allocates a fresh state, recycling one from the free list when
// possible, and clears it before returning.
func (b *builder) get() uint32 {
	var index uint32
	if len(b.unused) == 0 {
		index = b.size()
		b.transition = append(b.transition, 0)
		b.sibling = append(b.sibling, 0)
		b.label = append(b.label, 0)
	} else {
		index = b.unused[len(b.unused)-1]
		b.unused = b.unused[:len(b.unused)-1]
	}
	b.clearState(index)
	return index
}

// unget returns index to the free list for later reuse by get.
func (b *builder) unget(index uint32) {
	b.unused = append(b.unused, index)
}

// keyLabel returns the byte of key at pos, or the 0 terminator once pos
// reaches len(key).
func keyLabel(key []byte, pos int) byte {
	if pos < len(key) {
		return key[pos]
	}
	return 0
}

// hash mixes three 32-bit words with Jenkins' classic integer hash. The
// rotate uses a corrected 32-minus-shift formulation (see rotateRight);
// the original C++ used sizeof(value)-shift, which operates in bytes
// rather than bits and rotates far less than intended.
func hash(a, b, c uint32) uint32 {
	a -= b
	a -= c
	a ^= rotateRight(c, 13)
	b -= c
	b -= a
	b ^= a << 8
	c -= a
	c -= b
	c ^= rotateRight(b, 13)
	a -= b
	a -= c
	a ^= rotateRight(c, 12)
	b -= c
	b -= a
	b ^= a << 16
	c -= a
	c -= b
	c ^= rotateRight(b, 5)
	a -= b
	a -= c
	a ^= rotateRight(c, 3)
	b -= c
	b -= a
	b ^= a << 10
	c -= a
	c -= b
	c ^= rotateRight(b, 15)
	return c
}

// rotateRight rotates a 32-bit value right by shift bits.
func rotateRight(value uint32, shift int) uint32 {
	return (value >> shift) | (value << (32 - shift))
}

// sortUint32s insertion-sorts a small slice of ascending state handles.
// expandHashTable's free lists are bounded by the live unfixed spine plus
// recycled count, both tiny relative to the state pool, so a simple sort
// avoids pulling in sort.Slice's reflection-based comparator for no
// measurable benefit.
func sortUint32s(s []uint32) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
