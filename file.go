package assoofs

import "fmt"

// readFileLocked copies up to len(dst) bytes starting at offset out of
// inode's single data block. Reading at or past file_size is EOF, not an
// error: it returns 0 and leaves dst untouched. Callers must hold
// IS-lock (inode.Size/DataBlockNumber are trusted as read under it).
func (v *Volume) readFileLocked(inode *OnDiskInode, offset int64, dst []byte) (int, error) {
	if offset < 0 || uint64(offset) >= inode.Size {
		return 0, nil
	}

	h, err := ReadBlock(v.dev, inode.DataBlockNumber)
	if err != nil {
		return 0, err
	}
	defer h.Release()

	avail := inode.Size - uint64(offset)
	n := uint64(len(dst))
	if n > avail {
		n = avail
	}

	copied := copy(dst[:n], h.Bytes()[offset:uint64(offset)+n])
	if uint64(copied) != n {
		// A short copy means dst was smaller than we sized it for;
		// never report a partial read as if it were a full one.
		return 0, nil
	}
	return copied, nil
}

// writeFileLocked copies src into inode's single data block at offset,
// then updates inode.Size to reflect the new end of file. This revision
// has exactly one data block per file (see Non-goals): any write that
// would reach or cross the block boundary is refused outright rather
// than partially applied. Callers must hold SB-lock and IS-lock, and
// must persist inode (via saveInodeLocked) after this returns.
func (v *Volume) writeFileLocked(inode *OnDiskInode, offset int64, src []byte) (int, error) {
	if offset < 0 || uint64(offset)+uint64(len(src)) >= BlockSize {
		return 0, fmt.Errorf("%w: offset %d len %d", ErrWriteTooLarge, offset, len(src))
	}

	h, err := ReadBlock(v.dev, inode.DataBlockNumber)
	if err != nil {
		return 0, err
	}
	defer h.Release()

	n := copy(h.Bytes()[offset:], src)
	h.MarkDirty()
	if err := h.Sync(); err != nil {
		return 0, err
	}

	inode.Size = uint64(offset) + uint64(n)
	return n, nil
}
