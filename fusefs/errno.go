// Package fusefs is the thin host-VFS adapter: it wires assoofs.Volume's
// pure block/inode algebra into github.com/hanwen/go-fuse/v2/fs, the
// same modern go-fuse InodeEmbedder API the retrieval pack shows in
// several FUSE filesystems. Everything here is translation — Errno
// mapping, fuse.Attr filling, EntryOut/AttrOut population — never a
// second copy of the on-disk algorithms in package assoofs.
package fusefs

import (
	"errors"
	"syscall"

	"github.com/KarpelesLab/assoofs"
)

// errnoFor maps one of assoofs's sentinel errors to the syscall.Errno
// the go-fuse API requires every node method to return.
func errnoFor(err error) syscall.Errno {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, assoofs.ErrNotFound):
		return syscall.ENOENT
	case errors.Is(err, assoofs.ErrNotDirectory):
		return syscall.ENOTDIR
	case errors.Is(err, assoofs.ErrStoreFull), errors.Is(err, assoofs.ErrNoSpace):
		return syscall.ENOSPC
	case errors.Is(err, assoofs.ErrUnsupportedMode):
		return syscall.EINVAL
	case errors.Is(err, assoofs.ErrWriteTooLarge):
		return syscall.EFBIG
	case errors.Is(err, assoofs.ErrLockInterrupted):
		return syscall.EINTR
	case errors.Is(err, assoofs.ErrBadMagic), errors.Is(err, assoofs.ErrBadVersion), errors.Is(err, assoofs.ErrBadBlockSize):
		return syscall.EINVAL
	case errors.Is(err, assoofs.ErrIO):
		return syscall.EIO
	default:
		return syscall.EIO
	}
}
