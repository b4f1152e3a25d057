package assoofs

import "fmt"

// allocateBlockLocked finds the lowest free bit at or above FirstDataBlock,
// clears it, and persists the superblock. Callers must hold SB-lock.
//
// The mask must be built as a 64-bit literal shifted by i: shifting a
// 32-bit 1 is undefined once i reaches 32 and was a latent bug in
// earlier revisions of this design.
func (v *Volume) allocateBlockLocked() (uint64, error) {
	for i := FirstDataBlock; i < MaxObjects; i++ {
		mask := uint64(1) << i
		if v.sb.FreeBlocks&mask != 0 {
			v.sb.FreeBlocks &^= mask
			if err := v.sb.persist(v.dev); err != nil {
				return 0, err
			}
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w", ErrNoSpace)
}

// freeBlockLocked sets bit i back to free and persists the superblock.
// Callers must hold SB-lock. assoofs never calls this today (delete is a
// documented stub, see namespace.go), but the primitive is specified so
// physical deletion can be added without touching the bitmap format.
func (v *Volume) freeBlockLocked(i uint64) error {
	v.sb.FreeBlocks |= uint64(1) << i
	return v.sb.persist(v.dev)
}
