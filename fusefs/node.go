package fusefs

import (
	"context"
	"syscall"

	gofs "github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"

	"github.com/KarpelesLab/assoofs"
)

// Node is one host-VFS inode backed by an assoofs object. It carries no
// state of its own beyond the volume and the assoofs inode number;
// everything else is fetched fresh from the volume on every call, same
// as the teacher's Inode.GetInodeRef-on-demand style (no caching beyond
// what the kernel itself caches via entry/attr timeouts).
type Node struct {
	gofs.Inode

	vol *assoofs.Volume
	ino uint64
}

var (
	_ gofs.InodeEmbedder = (*Node)(nil)
	_ gofs.NodeLookuper  = (*Node)(nil)
	_ gofs.NodeCreater   = (*Node)(nil)
	_ gofs.NodeMkdirer   = (*Node)(nil)
	_ gofs.NodeReaddirer = (*Node)(nil)
	_ gofs.NodeGetattrer = (*Node)(nil)
	_ gofs.NodeOpener    = (*Node)(nil)
)

func stableAttr(inode *assoofs.OnDiskInode) gofs.StableAttr {
	mode := assoofs.ModeToUnix(assoofs.UnixToMode(inode.Mode)) & syscall.S_IFMT
	return gofs.StableAttr{Mode: mode, Ino: inode.InodeNo}
}

func (n *Node) childNode(inode *assoofs.OnDiskInode) *Node {
	return &Node{vol: n.vol, ino: inode.InodeNo}
}

// Lookup implements gofs.NodeLookuper: resolve one name within this
// directory, attaching a child Node on success.
func (n *Node) Lookup(ctx context.Context, name string, out *fuse.EntryOut) (*gofs.Inode, syscall.Errno) {
	child, err := n.vol.Lookup(ctx, n.ino, name)
	if err != nil {
		return nil, errnoFor(err)
	}
	fillEntryOut(out, child)
	return n.NewInode(ctx, n.childNode(child), stableAttr(child)), 0
}

// Create implements gofs.NodeCreater: make a new regular file and open
// it in the same call, as the host VFS's create() syscall expects.
func (n *Node) Create(ctx context.Context, name string, flags uint32, mode uint32, out *fuse.EntryOut) (*gofs.Inode, gofs.FileHandle, uint32, syscall.Errno) {
	child, err := n.vol.Create(ctx, n.ino, name, assoofs.ModeReg)
	if err != nil {
		return nil, nil, 0, errnoFor(err)
	}
	fillEntryOut(out, child)
	inode := n.NewInode(ctx, n.childNode(child), stableAttr(child))
	return inode, &fileHandle{vol: n.vol, ino: child.InodeNo}, 0, 0
}

// Mkdir implements gofs.NodeMkdirer.
func (n *Node) Mkdir(ctx context.Context, name string, mode uint32, out *fuse.EntryOut) (*gofs.Inode, syscall.Errno) {
	child, err := n.vol.Mkdir(ctx, n.ino, name)
	if err != nil {
		return nil, errnoFor(err)
	}
	fillEntryOut(out, child)
	return n.NewInode(ctx, n.childNode(child), stableAttr(child)), 0
}

// Getattr implements gofs.NodeGetattrer.
func (n *Node) Getattr(ctx context.Context, f gofs.FileHandle, out *fuse.AttrOut) syscall.Errno {
	inode, err := n.vol.GetInode(ctx, n.ino)
	if err != nil {
		return errnoFor(err)
	}
	fillAttr(&out.Attr, inode)
	return 0
}

// Open implements gofs.NodeOpener, handing back a fileHandle that reads
// and writes this inode's single data block.
func (n *Node) Open(ctx context.Context, flags uint32) (gofs.FileHandle, uint32, syscall.Errno) {
	return &fileHandle{vol: n.vol, ino: n.ino}, fuse.FOPEN_DIRECT_IO, 0
}

// Readdir implements gofs.NodeReaddirer, delegating to the volume's
// single-shot iterate() and buffering the result behind a DirStream.
func (n *Node) Readdir(ctx context.Context) (gofs.DirStream, syscall.Errno) {
	var cur assoofs.DirCursor
	entries, err := n.vol.Iterate(ctx, n.ino, &cur)
	if err != nil {
		return nil, errnoFor(err)
	}
	return &dirStream{entries: entries}, 0
}

// dirStream adapts a flat []assoofs.DirEntry to gofs.DirStream.
type dirStream struct {
	entries []assoofs.DirEntry
	pos     int
}

func (s *dirStream) HasNext() bool {
	return s.pos < len(s.entries)
}

func (s *dirStream) Next() (fuse.DirEntry, syscall.Errno) {
	e := s.entries[s.pos]
	s.pos++
	return fuse.DirEntry{Name: e.Name, Ino: e.InodeNo}, 0
}

func (s *dirStream) Close() {}
