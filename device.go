package assoofs

import (
	"fmt"
	"io"
	"sync"
)

// Device is the backing block device: a single random-access byte store
// addressed by byte offset. A plain *os.File satisfies it.
type Device interface {
	io.ReaderAt
	io.WriterAt
}

// bufPool recycles block-sized buffers across Handle acquisitions, so a
// mount under steady load doesn't churn one 4KiB allocation per block
// touched. There's no library in the retrieval pack that does block
// buffering for a raw device the way assoofs needs it (squashfs's
// tableReader exists only to decompress variable-length metadata and
// doesn't pool), so this is plain sync.Pool.
var bufPool = sync.Pool{
	New: func() any {
		return make([]byte, BlockSize)
	},
}

// Handle is a borrowed view over one block's worth of bytes. It mirrors
// the "buffer-head" acquire/release pair: every successful ReadBlock must
// be matched by exactly one Release on every control-flow path.
type Handle struct {
	dev      Device
	block    uint64
	buf      []byte
	dirty    bool
	released bool
}

// ReadBlock reads block number n of dev into an owned buffer.
func ReadBlock(dev Device, n uint64) (*Handle, error) {
	buf := bufPool.Get().([]byte)
	_, err := dev.ReadAt(buf, int64(n*BlockSize))
	if err != nil && err != io.EOF {
		bufPool.Put(buf)
		return nil, fmt.Errorf("%w: reading block %d: %v", ErrIO, n, err)
	}
	return &Handle{dev: dev, block: n, buf: buf}, nil
}

// Bytes returns the block's raw content. Callers may read and write it
// in place; writes only take effect on disk after MarkDirty and Sync.
func (h *Handle) Bytes() []byte {
	return h.buf
}

// MarkDirty records that Bytes() has been modified and must be written
// back on the next Sync.
func (h *Handle) MarkDirty() {
	h.dirty = true
}

// Sync forces a dirty block back to the device. It is a no-op if the
// block was never marked dirty.
func (h *Handle) Sync() error {
	if !h.dirty {
		return nil
	}
	if _, err := h.dev.WriteAt(h.buf, int64(h.block*BlockSize)); err != nil {
		return fmt.Errorf("%w: writing block %d: %v", ErrIO, h.block, err)
	}
	h.dirty = false
	return nil
}

// Release returns the handle's buffer to the pool. It is idempotent so
// that defer h.Release() is always safe even after an earlier explicit
// call on a different error path.
func (h *Handle) Release() {
	if h.released {
		return
	}
	h.released = true
	buf := h.buf
	h.buf = nil
	for i := range buf {
		buf[i] = 0
	}
	bufPool.Put(buf)
}
