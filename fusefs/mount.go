package fusefs

import (
	"time"

	gofs "github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"
	"github.com/sirupsen/logrus"

	"github.com/KarpelesLab/assoofs"
)

// Mount is the mount lifecycle (component C8): it validates the
// superblock via assoofs.Mount, builds the root Node, and hands it to
// go-fuse's own Mount, which does the actual kernel registration. This
// mirrors fill_super: on any failure here nothing is left mounted.
type Mount struct {
	Server *fuse.Server
	vol    *assoofs.Volume
	log    *logrus.Entry
}

// Mount validates dev's superblock and mounts it at mountpoint.
func Mount(mountpoint string, dev assoofs.Device, opts ...assoofs.Option) (*Mount, error) {
	vol, err := assoofs.Mount(dev, opts...)
	if err != nil {
		return nil, err
	}

	root := &Node{vol: vol, ino: assoofs.RootInodeNumber}

	timeout := time.Second
	server, err := gofs.Mount(mountpoint, root, &gofs.Options{
		EntryTimeout: &timeout,
		AttrTimeout:  &timeout,
		MountOptions: fuse.MountOptions{
			FsName: "assoofs",
			Name:   "assoofs",
		},
	})
	if err != nil {
		vol.Unmount()
		return nil, err
	}

	return &Mount{Server: server, vol: vol, log: logrus.WithField("mountpoint", mountpoint)}, nil
}

// Unmount forwards to the host's generic block-device unmount path and
// logs; it does not flush anything beyond what writeFileLocked's
// write-through already guarantees, since assoofs has no write-back
// cache of its own.
func (m *Mount) Unmount() error {
	m.log.Info("assoofs: unmounting")
	err := m.Server.Unmount()
	m.vol.Unmount()
	return err
}

// Wait blocks until the filesystem is unmounted by the kernel or by a
// call to Unmount.
func (m *Mount) Wait() {
	m.Server.Wait()
}
