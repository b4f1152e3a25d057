package assoofs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDirEntryRoundTrip(t *testing.T) {
	buf := make([]byte, dirRecordSize)
	encodeDirEntry(buf, "hello.txt", 7)

	got := decodeDirEntry(buf)
	assert.Equal(t, "hello.txt", got.Name)
	assert.EqualValues(t, 7, got.InodeNo)
}

func TestDirEntryRoundTrip_EmptyName(t *testing.T) {
	buf := make([]byte, dirRecordSize)
	encodeDirEntry(buf, "", 1)
	got := decodeDirEntry(buf)
	assert.Equal(t, "", got.Name)
}

// The readdir two-phase contract: a call with Pos == 0 must emit every
// child, and any subsequent call must emit nothing.
func TestIterateDirLocked_TwoPhaseContract(t *testing.T) {
	dev := newScenarioDevice(t)
	v := mustMount(t, dev)

	_, err := v.Create(ctxBG, RootInodeNumber, "a", ModeReg)
	assert.NoError(t, err)
	_, err = v.Create(ctxBG, RootInodeNumber, "b", ModeReg)
	assert.NoError(t, err)

	var cur DirCursor
	first, err := v.Iterate(ctxBG, RootInodeNumber, &cur)
	assert.NoError(t, err)
	assert.Len(t, first, 2)
	assert.NotZero(t, cur.Pos)

	second, err := v.Iterate(ctxBG, RootInodeNumber, &cur)
	assert.NoError(t, err)
	assert.Empty(t, second)
}
