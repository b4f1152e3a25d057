package format

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KarpelesLab/assoofs"
)

type memDevice struct{ buf []byte }

func newMemDevice() *memDevice { return &memDevice{buf: make([]byte, 8*assoofs.BlockSize)} }

func (d *memDevice) ReadAt(p []byte, off int64) (int, error) {
	return copy(p, d.buf[off:]), nil
}

func (d *memDevice) WriteAt(p []byte, off int64) (int, error) {
	return copy(d.buf[off:], p), nil
}

// Finalize with no welcome file must reproduce spec scenario S1 exactly:
// one live inode (the root), and free_blocks with only bits 0-2 cleared.
func TestFinalize_NoWelcome_MatchesScenarioS1(t *testing.T) {
	dev := newMemDevice()
	w := NewWriter(WithModTime(time.Unix(1700000000, 0)), WithWelcomeFile(""))
	require.NoError(t, w.Finalize(dev))

	assert.Equal(t, assoofs.Magic, binary.LittleEndian.Uint64(dev.buf[0:8]))
	assert.Equal(t, assoofs.Version, binary.LittleEndian.Uint64(dev.buf[8:16]))
	assert.Equal(t, assoofs.BlockSize, binary.LittleEndian.Uint64(dev.buf[16:24]))
	assert.EqualValues(t, 1, binary.LittleEndian.Uint64(dev.buf[24:32]))
	assert.Equal(t, uint64(0xFFFFFFFFFFFFFFF8), binary.LittleEndian.Uint64(dev.buf[32:40]))
}

// Finalize with a welcome file must match mkassoofs.c's original bit
// pattern: two live inodes and one extra used block (block 3).
func TestFinalize_WithWelcome_MatchesOriginalFormatter(t *testing.T) {
	dev := newMemDevice()
	w := NewWriter(WithModTime(time.Unix(1700000000, 0)), WithWelcomeFile("README.txt"))
	require.NoError(t, w.Finalize(dev))

	assert.EqualValues(t, 2, binary.LittleEndian.Uint64(dev.buf[24:32]))
	assert.Equal(t, uint64(0xFFFFFFFFFFFFFFF0), binary.LittleEndian.Uint64(dev.buf[32:40]))

	isOff := assoofs.InodeStoreNumber * assoofs.BlockSize
	welcomeInodeOff := isOff + 48
	mode := uint32(binary.LittleEndian.Uint64(dev.buf[welcomeInodeOff : welcomeInodeOff+8]))
	assert.Equal(t, assoofs.ModeReg, mode)
	inodeNo := binary.LittleEndian.Uint64(dev.buf[welcomeInodeOff+8 : welcomeInodeOff+16])
	assert.EqualValues(t, assoofs.RootInodeNumber+1, inodeNo)

	dirOff := assoofs.RootDirBlockNumber * assoofs.BlockSize
	name := dev.buf[dirOff : dirOff+255]
	n := 0
	for n < len(name) && name[n] != 0 {
		n++
	}
	assert.Equal(t, "README.txt", string(name[:n]))

	dataOff := (assoofs.RootDirBlockNumber + 1) * assoofs.BlockSize
	n = 0
	for n < 64 && dev.buf[dataOff+uint64(n)] != 0 {
		n++
	}
	assert.Equal(t, "Welcome to assoofs!\n", string(dev.buf[dataOff:dataOff+uint64(n)]))
}
