package assoofs

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// DirEntry is one (filename, inode number) pair from a directory's data
// block, decoded into a usable string.
type DirEntry struct {
	Name    string
	InodeNo uint64
}

func decodeDirEntry(buf []byte) DirEntry {
	nameField := buf[0:MaxFilenameLength]
	n := bytes.IndexByte(nameField, 0)
	if n < 0 {
		n = len(nameField)
	}
	return DirEntry{
		Name:    string(nameField[:n]),
		InodeNo: binary.LittleEndian.Uint64(buf[MaxFilenameLength : MaxFilenameLength+8]),
	}
}

func encodeDirEntry(buf []byte, name string, inodeNo uint64) {
	for i := range buf[:MaxFilenameLength] {
		buf[i] = 0
	}
	copy(buf[0:MaxFilenameLength], name)
	binary.LittleEndian.PutUint64(buf[MaxFilenameLength:MaxFilenameLength+8], inodeNo)
}

// lookupDirLocked scans the first dirInode.Size records of a directory's
// data block for name. The first match wins, matching the host VFS's
// expectation that filenames within one directory are unique. Callers
// must hold IS-lock (dirInode.Size is trusted as read under that lock).
func (v *Volume) lookupDirLocked(dirInode *OnDiskInode, name string) (uint64, error) {
	if !dirInode.IsDir() {
		return 0, fmt.Errorf("%w: inode %d", ErrNotDirectory, dirInode.InodeNo)
	}

	h, err := ReadBlock(v.dev, dirInode.DataBlockNumber)
	if err != nil {
		return 0, err
	}
	defer h.Release()

	buf := h.Bytes()
	for idx := uint64(0); idx < dirInode.Size; idx++ {
		off := idx * dirRecordSize
		ent := decodeDirEntry(buf[off : off+dirRecordSize])
		if ent.Name == name {
			return ent.InodeNo, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrNotFound, name)
}

// DirCursor tracks a readdir position across iterate() calls, matching
// the host VFS's two-phase readdir protocol: a call with Pos == 0 emits
// every child in one shot; any later call (Pos != 0) emits nothing.
type DirCursor struct {
	Pos uint64
}

// iterateDirLocked implements that two-phase contract. Callers must hold
// IS-lock.
func (v *Volume) iterateDirLocked(dirInode *OnDiskInode, cur *DirCursor) ([]DirEntry, error) {
	if !dirInode.IsDir() {
		return nil, fmt.Errorf("%w: inode %d", ErrNotDirectory, dirInode.InodeNo)
	}
	if cur.Pos != 0 {
		return nil, nil
	}

	h, err := ReadBlock(v.dev, dirInode.DataBlockNumber)
	if err != nil {
		return nil, err
	}
	defer h.Release()

	buf := h.Bytes()
	entries := make([]DirEntry, 0, dirInode.Size)
	for idx := uint64(0); idx < dirInode.Size; idx++ {
		off := idx * dirRecordSize
		entries = append(entries, decodeDirEntry(buf[off:off+dirRecordSize]))
		cur.Pos += dirRecordSize
	}
	return entries, nil
}

// appendDirLocked writes a new record at index dirInode.Size of the
// directory's data block. The caller is responsible for incrementing
// dirInode.Size and persisting the parent inode afterwards (the last
// step of the create ordering in namespace.go). Callers must hold
// IS-lock.
func (v *Volume) appendDirLocked(dirInode *OnDiskInode, name string, childInodeNo uint64) error {
	h, err := ReadBlock(v.dev, dirInode.DataBlockNumber)
	if err != nil {
		return err
	}
	defer h.Release()

	off := dirInode.Size * dirRecordSize
	if off+dirRecordSize > BlockSize {
		return fmt.Errorf("%w: directory %d is full", ErrNoSpace, dirInode.InodeNo)
	}
	encodeDirEntry(h.Bytes()[off:off+dirRecordSize], name, childInodeNo)
	h.MarkDirty()
	return h.Sync()
}
