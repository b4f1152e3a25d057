// Package format builds a fresh assoofs image on a raw device. It is the
// user-space formatter described as an external collaborator to the core
// (out of scope for the on-disk algorithms themselves), grounded on the
// teacher's image-building Writer (squashfs/writer.go): an in-memory
// description of the tree, finalized to disk in one pass, configured
// through the same WriterOption function-option pattern.
package format

import (
	"encoding/binary"
	"time"

	"github.com/KarpelesLab/assoofs"
)

// Writer builds one assoofs image. Unlike the teacher's Writer, the
// on-disk layout here is fixed by the format (superblock, inode store,
// root directory, at most one optional data block) so there is no tree
// walk: Finalize writes exactly the blocks the format defines.
type Writer struct {
	blockSize uint64
	modTime   time.Time
	welcome   bool
	welcomeFn string
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithModTime overrides the timestamp stamped onto the root (and
// welcome, if any) inode. Defaults to time.Now().
func WithModTime(t time.Time) WriterOption {
	return func(w *Writer) { w.modTime = t }
}

// WithWelcomeFile toggles writing a root-directory entry named name
// pointing at a pre-populated data block, matching the original
// formatter's optional "welcome file" behavior. Passing an empty name
// disables it.
func WithWelcomeFile(name string) WriterOption {
	return func(w *Writer) {
		w.welcome = name != ""
		w.welcomeFn = name
	}
}

// NewWriter returns a Writer ready to Finalize onto dev.
func NewWriter(opts ...WriterOption) *Writer {
	w := &Writer{
		blockSize: assoofs.BlockSize,
		modTime:   time.Now(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// welcomeContent is the payload written into the welcome file's data
// block when WithWelcomeFile is set, matching mkassoofs.c's original
// text.
const welcomeContent = "Welcome to assoofs!\n"

// Finalize writes a complete image to dev: the superblock (block 0),
// the inode store (block 1, holding only the root inode, plus the
// welcome file's inode when requested), the root directory (block 2),
// and the welcome file's data block (block 3) when requested.
func (w *Writer) Finalize(dev assoofs.Device) error {
	inodesCount := uint64(1)
	freeBlocks := uint64(0xFFFFFFFFFFFFFFF8)

	if w.welcome {
		inodesCount = 2
		freeBlocks = 0xFFFFFFFFFFFFFFF0
	}

	if err := w.writeSuperblock(dev, inodesCount, freeBlocks); err != nil {
		return err
	}
	if err := w.writeInodeStore(dev); err != nil {
		return err
	}
	if err := w.writeRootDir(dev); err != nil {
		return err
	}
	if w.welcome {
		if err := w.writeWelcomeData(dev); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeSuperblock(dev assoofs.Device, inodesCount, freeBlocks uint64) error {
	buf := make([]byte, assoofs.BlockSize)
	binary.LittleEndian.PutUint64(buf[0:8], assoofs.Magic)
	binary.LittleEndian.PutUint64(buf[8:16], assoofs.Version)
	binary.LittleEndian.PutUint64(buf[16:24], assoofs.BlockSize)
	binary.LittleEndian.PutUint64(buf[24:32], inodesCount)
	binary.LittleEndian.PutUint64(buf[32:40], freeBlocks)
	_, err := dev.WriteAt(buf, int64(assoofs.SuperblockNumber*assoofs.BlockSize))
	return err
}

func (w *Writer) writeInodeStore(dev assoofs.Device) error {
	buf := make([]byte, assoofs.BlockSize)

	putInode(buf, 0, assoofs.ModeDir, assoofs.RootInodeNumber, assoofs.RootDirBlockNumber, w.modTime, w.rootChildCount())

	if w.welcome {
		putInode(buf, 1, assoofs.ModeReg, assoofs.RootInodeNumber+1, assoofs.RootDirBlockNumber+1, w.modTime, uint64(len(welcomeContent)))
	}

	_, err := dev.WriteAt(buf, int64(assoofs.InodeStoreNumber*assoofs.BlockSize))
	return err
}

func (w *Writer) rootChildCount() uint64 {
	if w.welcome {
		return 1
	}
	return 0
}

func putInode(buf []byte, index int, mode uint32, inodeNo, dataBlock uint64, t time.Time, size uint64) {
	off := index * 48
	binary.LittleEndian.PutUint64(buf[off:off+8], uint64(mode))
	binary.LittleEndian.PutUint64(buf[off+8:off+16], inodeNo)
	binary.LittleEndian.PutUint64(buf[off+16:off+24], dataBlock)
	binary.LittleEndian.PutUint64(buf[off+24:off+32], uint64(t.Unix()))
	binary.LittleEndian.PutUint64(buf[off+32:off+40], uint64(t.Nanosecond()))
	binary.LittleEndian.PutUint64(buf[off+40:off+48], size)
}

func (w *Writer) writeRootDir(dev assoofs.Device) error {
	buf := make([]byte, assoofs.BlockSize)
	if w.welcome {
		copy(buf[0:255], w.welcomeFn)
		binary.LittleEndian.PutUint64(buf[255:263], assoofs.RootInodeNumber+1)
	}
	_, err := dev.WriteAt(buf, int64(assoofs.RootDirBlockNumber*assoofs.BlockSize))
	return err
}

func (w *Writer) writeWelcomeData(dev assoofs.Device) error {
	buf := make([]byte, assoofs.BlockSize)
	copy(buf, welcomeContent)
	_, err := dev.WriteAt(buf, int64((assoofs.RootDirBlockNumber+1)*assoofs.BlockSize))
	return err
}
