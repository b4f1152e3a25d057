package assoofs

// On-disk layout constants. These mirror the fixed geometry described in
// the format: one superblock block, one inode-store block, a fixed-size
// root directory, and a hard cap on the number of live objects.
const (
	// Magic is the expected value of the superblock's magic field.
	Magic uint64 = 0x20230602
	// Version is the only on-disk format version this package understands.
	Version uint64 = 1
	// BlockSize is the fixed size, in bytes, of every block on the device.
	BlockSize uint64 = 4096

	// SuperblockNumber is the block holding the superblock.
	SuperblockNumber uint64 = 0
	// InodeStoreNumber is the block holding the packed inode array.
	InodeStoreNumber uint64 = 1
	// RootDirBlockNumber is the data block of the root directory.
	RootDirBlockNumber uint64 = 2

	// RootInodeNumber is the fixed inode number of the root directory.
	RootInodeNumber uint64 = 1

	// MaxObjects bounds the number of live inodes (files + directories,
	// including the root) the inode store can hold.
	MaxObjects = 64

	// MaxFilenameLength is the fixed width of a directory record's name
	// field, NUL-padded.
	MaxFilenameLength = 255

	// LastReservedBlock is the highest block number reserved by the
	// format itself; allocation starts at LastReservedBlock+1.
	LastReservedBlock uint64 = RootDirBlockNumber
	// FirstDataBlock is the lowest block number the allocator may hand out.
	FirstDataBlock uint64 = LastReservedBlock + 1
)

// inodeRecordSize is the packed on-disk size of one inode record:
// mode(8) + inode_no(8) + data_block_number(8) + mtime sec(8) + mtime
// nsec(8) + size/dir_children_count(8).
const inodeRecordSize = 6 * 8

// dirRecordSize is the packed on-disk size of one directory record:
// a fixed filename field plus a u64 inode number.
const dirRecordSize = MaxFilenameLength + 8

// S_IFDIR / S_IFREG are the only two object types this filesystem records.
const (
	ModeDir uint32 = 0x4000
	ModeReg uint32 = 0x8000
)
