package assoofs

import "errors"

// Sentinel errors, one per distinct failure class named in the design.
// Callers (in particular the fusefs adapter) map these to syscall.Errno
// with errors.Is, the same way squashfs's errors.go exposes a flat list
// of package errors for its callers.
var (
	// ErrBadMagic means the superblock's magic field didn't match.
	ErrBadMagic = errors.New("assoofs: bad magic")
	// ErrBadVersion means the superblock's version field didn't match.
	ErrBadVersion = errors.New("assoofs: unsupported version")
	// ErrBadBlockSize means the superblock's block_size field didn't match.
	ErrBadBlockSize = errors.New("assoofs: unexpected block size")

	// ErrStoreFull means the inode store already holds MaxObjects entries.
	ErrStoreFull = errors.New("assoofs: maximum number of objects reached")
	// ErrNoSpace means the free-block bitmap has no free bit left, or a
	// directory's data block has no room for another record.
	ErrNoSpace = errors.New("assoofs: no free block available")

	// ErrNotFound means a name wasn't present in a directory, or an
	// inode number wasn't present in the inode store.
	ErrNotFound = errors.New("assoofs: not found")
	// ErrNotDirectory means iterate/lookup-as-directory was invoked on a
	// non-directory inode.
	ErrNotDirectory = errors.New("assoofs: not a directory")
	// ErrUnsupportedMode means create() was asked for a mode that is
	// neither a regular file nor a directory.
	ErrUnsupportedMode = errors.New("assoofs: unsupported inode mode")
	// ErrWriteTooLarge means a write would cross the single-block limit.
	ErrWriteTooLarge = errors.New("assoofs: write exceeds block size")

	// ErrIO wraps an underlying block device I/O failure.
	ErrIO = errors.New("assoofs: block I/O failure")
	// ErrLockInterrupted means lock acquisition was cancelled via context.
	ErrLockInterrupted = errors.New("assoofs: lock acquisition interrupted")
)
