package dat

import "github.com/eric1688/dat/internal/dawg"

// buildDawgPacked packs a built DAWG into the double array depth-first,
// reusing a child's existing base offset when DAWG suffix-sharing has
// already placed it and the reuse is representable (the single-child
// fast path from the design notes), and otherwise calling
// arrangeDawgChildren to find a fresh one.
func (p *packer) buildDawgPacked(dg *dawg.DAWG) error {
	offsetValues := make([]uint32, dg.Size())

	p.reserveUnit(0)
	p.extras[0].isUsed = true
	if err := p.units[0].setOffset(1); err != nil {
		return err
	}
	p.units[0].setLabel(0)

	p.progress = dg.NumStates() * 4
	p.maxProgress = dg.NumStates() * 5

	if err := p.packDawgNode(dg, offsetValues, 0, 0); err != nil {
		return err
	}
	p.fixAllBlocks()
	return nil
}

func (p *packer) packDawgNode(dg *dawg.DAWG, offsetValues []uint32, dawgIndex, daIndex uint32) error {
	p.tick()

	if dg.IsLeaf(dawgIndex) {
		return nil
	}

	dawgChild := dg.Child(dawgIndex)
	if offsetValues[dawgChild] != 0 {
		offset := offsetValues[dawgChild] ^ daIndex
		if offset&lowerMask == 0 || offset&upperMask == 0 {
			if dg.Label(dawgChild) == 0 {
				p.units[daIndex].setHasLeaf()
			}
			return p.units[daIndex].setOffset(offset)
		}
	}

	offset, err := p.arrangeDawgChildren(dg, dawgIndex, daIndex)
	if err != nil {
		return err
	}
	offsetValues[dawgChild] = offset

	for c := dawgChild; c != 0; c = dg.Sibling(c) {
		daChild := offset ^ uint32(dg.Label(c))
		if err := p.packDawgNode(dg, offsetValues, c, daChild); err != nil {
			return err
		}
	}
	return nil
}

// arrangeDawgChildren finds a fresh base offset for dawgIndex's children,
// reserves each of their slots, and records values for any that are
// leaves. It returns the offset so the caller can cache it in
// offsetValues for reuse by later-visited states sharing the same DAWG
// child.
func (p *packer) arrangeDawgChildren(dg *dawg.DAWG, dawgIndex, daIndex uint32) (uint32, error) {
	var labels []byte
	for c := dg.Child(dawgIndex); c != 0; c = dg.Sibling(c) {
		labels = append(labels, dg.Label(c))
	}

	offset := p.findOffset(daIndex, labels)
	if err := p.units[daIndex].setOffset(daIndex ^ offset); err != nil {
		return 0, err
	}

	c := dg.Child(dawgIndex)
	for i := 0; i < len(labels); i++ {
		daChild := offset ^ uint32(labels[i])
		p.reserveUnit(daChild)

		if dg.IsLeaf(c) {
			p.units[daIndex].setHasLeaf()
			p.units[daChild].setValue(dg.Value(c))
		} else {
			p.units[daChild].setLabel(labels[i])
		}
		c = dg.Sibling(c)
	}
	p.extras[offset].isUsed = true
	return offset, nil
}
