package assoofs

import (
	"context"
	"encoding/binary"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var ctxBG = context.Background()

func u64le(v uint64) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, v)
	return buf
}

// memDevice is an in-memory Device, the same shape as the teacher's
// mockReader (squashfs/mock_test.go) but read-write since assoofs
// mutates its backing store.
type memDevice struct {
	mu  sync.Mutex
	buf []byte
}

func newMemDevice(blocks uint64) *memDevice {
	return &memDevice{buf: make([]byte, blocks*BlockSize)}
}

func (d *memDevice) ReadAt(p []byte, off int64) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := copy(p, d.buf[off:])
	return n, nil
}

func (d *memDevice) WriteAt(p []byte, off int64) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := copy(d.buf[off:], p)
	return n, nil
}

// fakeClock is a fixed Clock for deterministic inode timestamps in tests.
type fakeClock struct{ t time.Time }

func (f fakeClock) Now() time.Time { return f.t }

// newScenarioDevice builds the exact image from spec scenario S1: a
// valid superblock with one live inode (the empty root directory).
func newScenarioDevice(t *testing.T) *memDevice {
	t.Helper()
	dev := newMemDevice(64)

	sbBuf := make([]byte, BlockSize)
	binary.LittleEndian.PutUint64(sbBuf[0:8], Magic)
	binary.LittleEndian.PutUint64(sbBuf[8:16], Version)
	binary.LittleEndian.PutUint64(sbBuf[16:24], BlockSize)
	binary.LittleEndian.PutUint64(sbBuf[24:32], 1)
	binary.LittleEndian.PutUint64(sbBuf[32:40], 0xFFFFFFFFFFFFFFF8)
	_, err := dev.WriteAt(sbBuf, int64(SuperblockNumber*BlockSize))
	require.NoError(t, err)

	isBuf := make([]byte, BlockSize)
	rootInode := OnDiskInode{
		Mode:            ModeDir,
		InodeNo:         RootInodeNumber,
		DataBlockNumber: RootDirBlockNumber,
		Size:            0,
	}
	encodeInode(isBuf[0:inodeRecordSize], &rootInode)
	_, err = dev.WriteAt(isBuf, int64(InodeStoreNumber*BlockSize))
	require.NoError(t, err)

	return dev
}

func mustMount(t *testing.T, dev *memDevice) *Volume {
	t.Helper()
	v, err := Mount(dev, WithClock(fakeClock{t: time.Unix(1700000000, 0)}))
	require.NoError(t, err)
	return v
}
