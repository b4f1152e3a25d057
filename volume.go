package assoofs

import (
	"github.com/sirupsen/logrus"
)

// Volume is a mounted assoofs instance: a device plus the pinned,
// validated superblock and the two locks guarding it, per the
// concurrency model (SB-lock, then IS-lock, never the reverse).
type Volume struct {
	dev   Device
	log   *logrus.Entry
	clock Clock

	sbLock *ctxMutex
	isLock *ctxMutex

	sb *Superblock
}

// Mount validates block 0 of dev and, on success, returns a Volume ready
// to serve namespace operations. This is the superblock manager's load
// half (component C2); building a host-VFS root inode on top of it is
// the mount lifecycle's job (package fusefs, component C8).
func Mount(dev Device, opts ...Option) (*Volume, error) {
	sb, err := readSuperblock(dev)
	if err != nil {
		return nil, err
	}
	if err := sb.validate(); err != nil {
		return nil, err
	}

	v := &Volume{
		dev:    dev,
		log:    logrus.NewEntry(logrus.StandardLogger()),
		clock:  RealClock{},
		sbLock: newCtxMutex(),
		isLock: newCtxMutex(),
		sb:     sb,
	}
	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, err
		}
	}

	v.log = v.log.WithFields(logrus.Fields{
		"inodes_count": sb.InodesCount,
		"block_size":   sb.BlockSizeField,
	})
	v.log.Info("assoofs: mounted")
	return v, nil
}

// Unmount releases the volume. assoofs keeps no state outside the
// device itself, so there's nothing to flush; this only exists so the
// mount lifecycle has a symmetric teardown point to log against.
func (v *Volume) Unmount() {
	v.log.Info("assoofs: unmounted")
}
