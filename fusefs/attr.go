package fusefs

import (
	"io/fs"

	"github.com/hanwen/go-fuse/v2/fuse"

	"github.com/KarpelesLab/assoofs"
)

// fillAttr populates a fuse.Attr from one of our on-disk inode copies,
// the same fields the teacher's platform-specific FillAttr methods set
// (squashfs/inode_linux.go, inode_darwin.go), minus the squashfs-only
// block-count/fragment bookkeeping that doesn't exist in this format.
func fillAttr(attr *fuse.Attr, inode *assoofs.OnDiskInode) {
	attr.Ino = inode.InodeNo
	attr.Size = inode.Size
	attr.Blocks = 1
	attr.Blksize = uint32(assoofs.BlockSize)

	perm := fs.FileMode(0644)
	if inode.IsDir() {
		perm = 0755
	}
	attr.Mode = assoofs.ModeToUnix(assoofs.UnixToMode(inode.Mode) | perm)
	attr.Nlink = 1
	attr.Atime = uint64(inode.MTimeSec)
	attr.Mtime = uint64(inode.MTimeSec)
	attr.Ctime = uint64(inode.MTimeSec)
	attr.Atimensec = uint32(inode.MTimeNsec)
	attr.Mtimensec = uint32(inode.MTimeNsec)
	attr.Ctimensec = uint32(inode.MTimeNsec)
}

func fillEntryOut(out *fuse.EntryOut, inode *assoofs.OnDiskInode) {
	out.NodeId = inode.InodeNo
	fillAttr(&out.Attr, inode)
}
