package assoofs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// S1: mounting a well-formed image succeeds and readdir("/") is empty.
func TestMount_S1(t *testing.T) {
	dev := newScenarioDevice(t)
	v := mustMount(t, dev)

	var cur DirCursor
	entries, err := v.Iterate(ctxBG, RootInodeNumber, &cur)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

// S2: a bad magic number is rejected distinctly from version/block-size
// mismatches.
func TestMount_S2_BadMagic(t *testing.T) {
	dev := newScenarioDevice(t)
	buf := make([]byte, 8)
	// overwrite only the magic field
	_, err := dev.WriteAt(badMagicBytes(), 0)
	require.NoError(t, err)
	_ = buf

	_, err = Mount(dev)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadMagic))
}

func TestMount_BadVersion(t *testing.T) {
	dev := newScenarioDevice(t)
	_, err := dev.WriteAt(u64le(Magic), 0)
	require.NoError(t, err)
	_, err = dev.WriteAt(u64le(2), 8)
	require.NoError(t, err)

	_, err = Mount(dev)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadVersion))
}

func TestMount_BadBlockSize(t *testing.T) {
	dev := newScenarioDevice(t)
	_, err := dev.WriteAt(u64le(1024), 16)
	require.NoError(t, err)

	_, err = Mount(dev)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadBlockSize))
}

func badMagicBytes() []byte {
	return u64le(0xDEADBEEF)
}
