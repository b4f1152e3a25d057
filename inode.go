package assoofs

import (
	"encoding/binary"
	"fmt"
)

// OnDiskInode is a heap-allocated copy of one inode-store record.
// Size holds file_size for a regular file or dir_children_count for a
// directory; the two never coexist so the format packs them into one
// on-disk field, same as the C union it is modeled on.
type OnDiskInode struct {
	Mode            uint32
	InodeNo         uint64
	DataBlockNumber uint64
	MTimeSec        int64
	MTimeNsec       int64
	Size            uint64
}

func (rec *OnDiskInode) IsDir() bool {
	return rec.Mode&ModeDir != 0
}

func decodeInode(buf []byte) OnDiskInode {
	return OnDiskInode{
		Mode:            uint32(binary.LittleEndian.Uint64(buf[0:8])),
		InodeNo:         binary.LittleEndian.Uint64(buf[8:16]),
		DataBlockNumber: binary.LittleEndian.Uint64(buf[16:24]),
		MTimeSec:        int64(binary.LittleEndian.Uint64(buf[24:32])),
		MTimeNsec:       int64(binary.LittleEndian.Uint64(buf[32:40])),
		Size:            binary.LittleEndian.Uint64(buf[40:48]),
	}
}

func encodeInode(buf []byte, rec *OnDiskInode) {
	binary.LittleEndian.PutUint64(buf[0:8], uint64(rec.Mode))
	binary.LittleEndian.PutUint64(buf[8:16], rec.InodeNo)
	binary.LittleEndian.PutUint64(buf[16:24], rec.DataBlockNumber)
	binary.LittleEndian.PutUint64(buf[24:32], uint64(rec.MTimeSec))
	binary.LittleEndian.PutUint64(buf[32:40], uint64(rec.MTimeNsec))
	binary.LittleEndian.PutUint64(buf[40:48], rec.Size)
}

// getInodeLocked scans the live entries of the inode store for inodeNo
// and returns a fresh copy. Callers must hold IS-lock.
func (v *Volume) getInodeLocked(inodeNo uint64) (*OnDiskInode, error) {
	h, err := ReadBlock(v.dev, InodeStoreNumber)
	if err != nil {
		return nil, err
	}
	defer h.Release()

	buf := h.Bytes()
	count := v.sb.InodesCount
	for idx := uint64(0); idx < count; idx++ {
		off := idx * inodeRecordSize
		rec := decodeInode(buf[off : off+inodeRecordSize])
		if rec.InodeNo == inodeNo {
			return &rec, nil
		}
	}
	return nil, fmt.Errorf("%w: inode %d", ErrNotFound, inodeNo)
}

// appendInodeLocked writes rec at index InodesCount of the inode store,
// then increments and persists InodesCount. Callers must hold SB-lock
// and IS-lock, and must have already checked InodesCount < MaxObjects.
func (v *Volume) appendInodeLocked(rec *OnDiskInode) error {
	if v.sb.InodesCount >= MaxObjects {
		return fmt.Errorf("%w", ErrStoreFull)
	}

	h, err := ReadBlock(v.dev, InodeStoreNumber)
	if err != nil {
		return err
	}
	defer h.Release()

	off := v.sb.InodesCount * inodeRecordSize
	encodeInode(h.Bytes()[off:off+inodeRecordSize], rec)
	h.MarkDirty()
	if err := h.Sync(); err != nil {
		return err
	}

	v.sb.InodesCount++
	return v.sb.persist(v.dev)
}

// saveInodeLocked finds the entry matching rec.InodeNo and overwrites it
// in place. Callers must hold IS-lock.
func (v *Volume) saveInodeLocked(rec *OnDiskInode) error {
	h, err := ReadBlock(v.dev, InodeStoreNumber)
	if err != nil {
		return err
	}
	defer h.Release()

	buf := h.Bytes()
	count := v.sb.InodesCount
	for idx := uint64(0); idx < count; idx++ {
		off := idx * inodeRecordSize
		existing := decodeInode(buf[off : off+inodeRecordSize])
		if existing.InodeNo == rec.InodeNo {
			encodeInode(buf[off:off+inodeRecordSize], rec)
			h.MarkDirty()
			return h.Sync()
		}
	}
	return fmt.Errorf("%w: inode %d", ErrNotFound, rec.InodeNo)
}
