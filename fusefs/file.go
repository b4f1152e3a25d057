package fusefs

import (
	"context"
	"syscall"

	gofs "github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"

	"github.com/KarpelesLab/assoofs"
)

// fileHandle is the FileHandle returned from Node.Open/Create: a thin
// reference to the volume and inode number, no buffering of its own.
type fileHandle struct {
	vol *assoofs.Volume
	ino uint64
}

var (
	_ gofs.FileHandle = (*fileHandle)(nil)
	_ gofs.FileReader = (*fileHandle)(nil)
	_ gofs.FileWriter = (*fileHandle)(nil)
)

// Read implements gofs.FileReader by delegating to Volume.ReadFile.
func (fh *fileHandle) Read(ctx context.Context, dest []byte, off int64) (fuse.ReadResult, syscall.Errno) {
	n, err := fh.vol.ReadFile(ctx, fh.ino, off, dest)
	if err != nil {
		return nil, errnoFor(err)
	}
	return fuse.ReadResultData(dest[:n]), 0
}

// Write implements gofs.FileWriter by delegating to Volume.WriteFile.
func (fh *fileHandle) Write(ctx context.Context, data []byte, off int64) (uint32, syscall.Errno) {
	n, err := fh.vol.WriteFile(ctx, fh.ino, off, data)
	if err != nil {
		return 0, errnoFor(err)
	}
	return uint32(n), 0
}
