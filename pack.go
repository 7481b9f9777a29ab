package dat

const (
	blockSize       = 256
	numUnfixedBlocks = 16

	offsetMaxBits = 21
	lowerMask     = uint32(1)<<offsetMaxBits - 1
	upperMask     = ^lowerMask
)

// extra is per-slot scratch state used only while a double array is under
// construction: whether the slot is reserved for a unit (fixed), whether
// it has been chosen as some state's base offset (used), and its
// neighbors in the circular free-list threaded through every not-yet-
// reserved slot in the live blocks.
//
// darts-clone pages extras in 256-slot blocks and drops a block's page
// once it falls outside the 16-block editable window, to bound peak
// memory. A flat growable slice serves the same role here: Go's
// reallocation preserves index identity, so paging buys nothing (see the
// design note this module follows for its memory layout).
type extra struct {
	next    uint32
	prev    uint32
	isFixed bool
	isUsed  bool
}

// packer assigns DAWG transitions (or, in the no-values path, trie
// ranges) to positions in a flat unit array via the free-slot XOR
// strategy, and owns the scratch state that only exists during that
// assignment.
type packer struct {
	units  []Unit
	extras []extra

	unfixedIndex    uint32
	numUnusedUnits  int

	progress    int
	maxProgress int
	progressFn  func(done, total int)
}

func newPacker(progressFn func(done, total int)) *packer {
	return &packer{progressFn: progressFn}
}

func (p *packer) numUnits() uint32 { return uint32(len(p.units)) }
func (p *packer) numBlocks() uint32 { return p.numUnits() / blockSize }

func (p *packer) tick() {
	if p.progress >= p.maxProgress {
		return
	}
	p.progress++
	if p.progressFn != nil {
		p.progressFn(p.progress, p.maxProgress)
	}
}

// reserveUnit removes index from the free-list and marks it fixed,
// expanding the array first if index has not yet been allocated.
func (p *packer) reserveUnit(index uint32) {
	if index >= p.numUnits() {
		p.expand()
	}
	assert(index < p.numUnits(), "reserveUnit: index still out of range after expand")

	if index == p.unfixedIndex {
		p.unfixedIndex = p.extras[index].next
		if p.unfixedIndex == index {
			p.unfixedIndex = p.numUnits()
		}
	}
	prev := p.extras[index].prev
	next := p.extras[index].next
	p.extras[prev].next = next
	p.extras[next].prev = prev
	p.extras[index].isFixed = true
}

// expand appends a fresh block of units and extras, fixing the oldest
// still-unfixed block first if the new block would push the live window
// past numUnfixedBlocks, then threads the new block's slots into their
// own ring and splices that ring into the global free-list.
func (p *packer) expand() {
	srcUnits := p.numUnits()
	srcBlocks := p.numBlocks()
	destUnits := srcUnits + blockSize
	destBlocks := srcBlocks + 1

	if destBlocks > numUnfixedBlocks {
		p.fixBlock(srcBlocks - numUnfixedBlocks)
	}

	p.units = append(p.units, make([]Unit, blockSize)...)
	p.extras = append(p.extras, make([]extra, blockSize)...)

	for i := srcUnits + 1; i < destUnits; i++ {
		p.extras[i-1].next = i
		p.extras[i].prev = i - 1
	}
	p.extras[srcUnits].prev = destUnits - 1
	p.extras[destUnits-1].next = srcUnits

	// Splices the new ring in just before unfixedIndex.
	p.extras[srcUnits].prev = p.extras[p.unfixedIndex].prev
	p.extras[destUnits-1].next = p.unfixedIndex
	p.extras[p.extras[p.unfixedIndex].prev].next = srcUnits
	p.extras[p.unfixedIndex].prev = destUnits - 1
}

// fixAllBlocks fixes every block still inside the editable window, called
// once at the end of a build to convert any remaining free slots into
// padding units.
func (p *packer) fixAllBlocks() {
	begin := uint32(0)
	if p.numBlocks() > numUnfixedBlocks {
		begin = p.numBlocks() - numUnfixedBlocks
	}
	for blockID := begin; blockID != p.numBlocks(); blockID++ {
		p.fixBlock(blockID)
	}
}

// fixBlock reserves every remaining free slot in blockID and gives it a
// label guaranteed not to collide with any real transition: the XOR of
// its index against some still-free slot in the same block (or 0, if the
// block is entirely reserved already), which lies outside any live
// offset's child window.
func (p *packer) fixBlock(blockID uint32) {
	begin := blockID * blockSize
	end := begin + blockSize

	var unusedOffsetForLabel uint32
	for offset := begin; offset != end; offset++ {
		if !p.extras[offset].isUsed {
			unusedOffsetForLabel = offset
			break
		}
	}

	for index := begin; index != end; index++ {
		if !p.extras[index].isFixed {
			p.reserveUnit(index)
			p.units[index].setLabel(byte(index ^ unusedOffsetForLabel))
			p.numUnusedUnits++
		}
	}
}

// findOffset locates a base offset for index's child set, whose first
// label is labels[0]: it walks the free-list starting at unfixedIndex,
// testing each candidate via isGoodOffset, and falls back to forcing
// expansion if the free-list wraps without finding one.
func (p *packer) findOffset(index uint32, labels []byte) uint32 {
	if p.unfixedIndex >= p.numUnits() {
		return p.numUnits() | (index & 0xFF)
	}

	unfixed := p.unfixedIndex
	for {
		offset := unfixed ^ uint32(labels[0])
		if p.isGoodOffset(index, offset, labels) {
			return offset
		}
		unfixed = p.extras[unfixed].next
		if unfixed == p.unfixedIndex {
			break
		}
	}
	return p.numUnits() | (index & 0xFF)
}

// isGoodOffset reports whether offset is free to use as index's base: the
// slot isn't already someone else's base, the index/offset pair's XOR
// fits entirely within one half of the compact/extended split (so the
// resulting unit can actually encode it), and none of the remaining
// sibling slots are already reserved for something else.
func (p *packer) isGoodOffset(index, offset uint32, labels []byte) bool {
	if p.extras[offset].isUsed {
		return false
	}

	relative := index ^ offset
	if relative&lowerMask != 0 && relative&upperMask != 0 {
		return false
	}

	for i := 1; i < len(labels); i++ {
		if p.extras[offset^uint32(labels[i])].isFixed {
			return false
		}
	}
	return true
}
