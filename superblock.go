package assoofs

import (
	"encoding/binary"
	"fmt"
)

// Superblock is the in-memory, pinned copy of block 0: filesystem-wide
// metadata plus the free-block bitmap. It stays valid for the lifetime
// of a mount; every mutation updates this copy and is persisted with
// persist before the holder of SB-lock releases it.
type Superblock struct {
	MagicField     uint64
	VersionField   uint64
	BlockSizeField uint64
	InodesCount    uint64
	FreeBlocks     uint64
}

// readSuperblock reads and parses block 0 from dev without validating it.
func readSuperblock(dev Device) (*Superblock, error) {
	h, err := ReadBlock(dev, SuperblockNumber)
	if err != nil {
		return nil, err
	}
	defer h.Release()

	buf := h.Bytes()
	sb := &Superblock{
		MagicField:     binary.LittleEndian.Uint64(buf[0:8]),
		VersionField:   binary.LittleEndian.Uint64(buf[8:16]),
		BlockSizeField: binary.LittleEndian.Uint64(buf[16:24]),
		InodesCount:    binary.LittleEndian.Uint64(buf[24:32]),
		FreeBlocks:     binary.LittleEndian.Uint64(buf[32:40]),
	}
	return sb, nil
}

// validate checks the three fields that must match exactly for this
// package to trust the rest of the image, returning a distinct error per
// mismatched field as required by the mount contract.
func (sb *Superblock) validate() error {
	if sb.MagicField != Magic {
		return fmt.Errorf("%w: got 0x%x, want 0x%x", ErrBadMagic, sb.MagicField, Magic)
	}
	if sb.VersionField != Version {
		return fmt.Errorf("%w: got %d, want %d", ErrBadVersion, sb.VersionField, Version)
	}
	if sb.BlockSizeField != BlockSize {
		return fmt.Errorf("%w: got %d, want %d", ErrBadBlockSize, sb.BlockSizeField, BlockSize)
	}
	return nil
}

// persist writes the in-memory superblock back to block 0. Callers must
// hold SB-lock.
func (sb *Superblock) persist(dev Device) error {
	h, err := ReadBlock(dev, SuperblockNumber)
	if err != nil {
		return err
	}
	defer h.Release()

	buf := h.Bytes()
	binary.LittleEndian.PutUint64(buf[0:8], sb.MagicField)
	binary.LittleEndian.PutUint64(buf[8:16], sb.VersionField)
	binary.LittleEndian.PutUint64(buf[16:24], sb.BlockSizeField)
	binary.LittleEndian.PutUint64(buf[24:32], sb.InodesCount)
	binary.LittleEndian.PutUint64(buf[32:40], sb.FreeBlocks)
	for i := 40; i < int(BlockSize); i++ {
		buf[i] = 0
	}

	h.MarkDirty()
	return h.Sync()
}
