package assoofs

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Create allocates a new inode of the given mode as a child of parentIno,
// named name, following the ordering required so that a crash between
// any two steps leaks at most an allocated-but-unreferenced inode/block
// and never leaves a dangling directory entry:
//
//  1. allocate a data block and flip its free-blocks bit
//  2. append the new inode to the inode store
//  3. append a directory record in the parent pointing at it
//  4. bump the parent's child count and save the parent inode
//
// mode must be exactly ModeReg or ModeDir; anything else is rejected
// before any state is touched.
func (v *Volume) Create(ctx context.Context, parentIno uint64, name string, mode uint32) (*OnDiskInode, error) {
	if mode != ModeReg && mode != ModeDir {
		return nil, fmt.Errorf("%w: 0x%x", ErrUnsupportedMode, mode)
	}

	if err := v.sbLock.Lock(ctx); err != nil {
		return nil, err
	}
	defer v.sbLock.Unlock()

	if v.sb.InodesCount >= MaxObjects {
		return nil, fmt.Errorf("%w", ErrStoreFull)
	}

	if err := v.isLock.Lock(ctx); err != nil {
		return nil, err
	}
	defer v.isLock.Unlock()

	parent, err := v.getInodeLocked(parentIno)
	if err != nil {
		return nil, err
	}
	if !parent.IsDir() {
		return nil, fmt.Errorf("%w: inode %d", ErrNotDirectory, parentIno)
	}

	block, err := v.allocateBlockLocked()
	if err != nil {
		return nil, err
	}

	now := v.clock.Now()
	child := &OnDiskInode{
		Mode:            mode,
		InodeNo:         v.sb.InodesCount + 1,
		DataBlockNumber: block,
		MTimeSec:        now.Unix(),
		MTimeNsec:       int64(now.Nanosecond()),
		Size:            0,
	}

	if err := v.appendInodeLocked(child); err != nil {
		return nil, err
	}

	if err := v.appendDirLocked(parent, name, child.InodeNo); err != nil {
		return nil, err
	}

	parent.Size++
	if err := v.saveInodeLocked(parent); err != nil {
		return nil, err
	}

	v.log.WithFields(logrus.Fields{
		"parent": parentIno,
		"name":   name,
		"inode":  child.InodeNo,
		"mode":   fmt.Sprintf("0x%x", mode),
	}).Info("assoofs: created object")

	return child, nil
}

// Mkdir is Create with the directory mode bit forced on.
func (v *Volume) Mkdir(ctx context.Context, parentIno uint64, name string) (*OnDiskInode, error) {
	return v.Create(ctx, parentIno, name, ModeDir)
}

// Lookup resolves name within parentIno and returns the child's inode,
// or ErrNotFound. It acquires SB-lock then IS-lock only long enough to
// materialise the result, releasing both before returning, matching the
// locking discipline for lookup.
func (v *Volume) Lookup(ctx context.Context, parentIno uint64, name string) (*OnDiskInode, error) {
	if err := v.sbLock.Lock(ctx); err != nil {
		return nil, err
	}
	defer v.sbLock.Unlock()

	if err := v.isLock.Lock(ctx); err != nil {
		return nil, err
	}
	defer v.isLock.Unlock()

	parent, err := v.getInodeLocked(parentIno)
	if err != nil {
		return nil, err
	}

	childNo, err := v.lookupDirLocked(parent, name)
	if err != nil {
		return nil, err
	}

	return v.getInodeLocked(childNo)
}

// Iterate lists dirIno's children through the readdir two-phase cursor
// protocol described by DirCursor. It returns ErrNotDirectory if dirIno
// is not a directory.
func (v *Volume) Iterate(ctx context.Context, dirIno uint64, cur *DirCursor) ([]DirEntry, error) {
	if err := v.sbLock.Lock(ctx); err != nil {
		return nil, err
	}
	defer v.sbLock.Unlock()

	if err := v.isLock.Lock(ctx); err != nil {
		return nil, err
	}
	defer v.isLock.Unlock()

	dir, err := v.getInodeLocked(dirIno)
	if err != nil {
		return nil, err
	}
	return v.iterateDirLocked(dir, cur)
}

// ReadFile copies up to len(dst) bytes from fileIno's single data block
// starting at offset. Reading at or past end of file returns (0, nil).
func (v *Volume) ReadFile(ctx context.Context, fileIno uint64, offset int64, dst []byte) (int, error) {
	if err := v.sbLock.Lock(ctx); err != nil {
		return 0, err
	}
	defer v.sbLock.Unlock()

	if err := v.isLock.Lock(ctx); err != nil {
		return 0, err
	}
	defer v.isLock.Unlock()

	inode, err := v.getInodeLocked(fileIno)
	if err != nil {
		return 0, err
	}
	return v.readFileLocked(inode, offset, dst)
}

// WriteFile writes src into fileIno's single data block starting at
// offset, updates file_size, and persists the inode. A write that would
// reach or cross the block boundary is refused in full: it returns
// (0, ErrWriteTooLarge) and leaves file_size and the block untouched.
func (v *Volume) WriteFile(ctx context.Context, fileIno uint64, offset int64, src []byte) (int, error) {
	if err := v.sbLock.Lock(ctx); err != nil {
		return 0, err
	}
	defer v.sbLock.Unlock()

	if err := v.isLock.Lock(ctx); err != nil {
		return 0, err
	}
	defer v.isLock.Unlock()

	inode, err := v.getInodeLocked(fileIno)
	if err != nil {
		return 0, err
	}

	n, err := v.writeFileLocked(inode, offset, src)
	if err != nil {
		return 0, err
	}

	if err := v.saveInodeLocked(inode); err != nil {
		return 0, err
	}
	return n, nil
}

// GetInode returns a copy of the inode with the given number, without
// taking SB-lock (the superblock's InodesCount is read, not mutated).
func (v *Volume) GetInode(ctx context.Context, inodeNo uint64) (*OnDiskInode, error) {
	if err := v.isLock.Lock(ctx); err != nil {
		return nil, err
	}
	defer v.isLock.Unlock()

	return v.getInodeLocked(inodeNo)
}

// Delete logs a warning and returns nil. It does not
// reclaim the inode-store slot or the data block, and does not
// decrement the parent's child count: physical deletion is an open
// question this revision does not resolve (see DESIGN.md). Calling it
// is therefore a deliberate no-op kept only so callers have a named
// place to hang future reclamation logic.
func (v *Volume) Delete(ctx context.Context, inodeNo uint64) error {
	v.log.WithField("inode", inodeNo).Warn("assoofs: delete is a stub, no space is reclaimed")
	return nil
}
