package inode

import (
	"fmt"
	"io/fs"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// An Inode represents the basic metadata of a file.
type Inode struct {
	sync.RWMutex

	Ino   uint64      // should never change
	Mode  fs.FileMode // should never change
	Nlink uint64
	Size  int64

	Ctime time.Time // creation time
	Atime time.Time // access time
	Mtime time.Time // modification time
}

// Ino hands out inode numbers. The zero value is ready to use and the first
// inode allocated is number 1.
type Ino uint64

func (n *Ino) New(mode os.FileMode) *Inode {
	ino := atomic.AddUint64((*uint64)(n), 1)
	now := time.Now()

	return &Inode{
		Ino:   ino,
		Atime: now,
		Mtime: now,
		Ctime: now,
		Mode:  mode.Perm(),
	}
}

// Resize sets the size and marks the node as modified.
func (n *Inode) Resize(size int64) {
	n.Lock()
	n.Size = size
	n.modified()
	n.Unlock()
}

// Touch marks the node as accessed.
func (n *Inode) Touch() {
	n.Lock()
	n.accessed()
	n.Unlock()
}

func (n *Inode) accessed() {
	n.Atime = time.Now()
}

func (n *Inode) modified() {
	now := time.Now()
	n.Atime = now
	n.Mtime = now
}

func (n *Inode) countUp() {
	n.Nlink++
	n.accessed() // (I don't think link count mod counts as node mod )
}

func (n *Inode) countDown() {
	if n.Nlink == 0 {
		panic(fmt.Sprintf("inode %d negative link count", n.Ino))
	}
	n.Nlink--
	n.accessed()
}

// Entry binds a name to an inode.
type Entry struct {
	Name  string
	Inode *Inode
}

// Table is a flat namespace of file entries kept sorted by name. It has no
// notion of directories; a name containing slashes is just a longer name.
type Table []*Entry

func (t Table) Len() int           { return len(t) }
func (t Table) Swap(i, j int)      { t[i], t[j] = t[j], t[i] }
func (t Table) Less(i, j int) bool { return t[i].Name < t[j].Name }

// Link adds or replaces the entry for name.
func (t *Table) Link(name string, node *Inode) {
	node.Lock()
	node.countUp()
	node.Unlock()

	x := t.find(name)
	if x < len(*t) && (*t)[x].Name == name {
		old := (*t)[x].Inode
		old.Lock()
		old.countDown()
		old.Unlock()
		(*t)[x] = &Entry{name, node}
		return
	}

	*t = append(*t, nil)
	copy((*t)[x+1:], (*t)[x:])
	(*t)[x] = &Entry{name, node}
}

// Unlink removes the entry for name.
func (t *Table) Unlink(name string) error {
	x := t.find(name)
	if x == len(*t) || (*t)[x].Name != name {
		return fs.ErrNotExist
	}

	node := (*t)[x].Inode
	node.Lock()
	node.countDown()
	node.Unlock()

	copy((*t)[x:], (*t)[x+1:])
	*t = (*t)[:len(*t)-1]

	return nil
}

// Resolve returns the inode linked under name.
func (t Table) Resolve(name string) (*Inode, error) {
	x := t.find(name)
	if x < len(t) && t[x].Name == name {
		return t[x].Inode, nil
	}

	return nil, fs.ErrNotExist
}

func (t Table) find(name string) int {
	return sort.Search(len(t), func(i int) bool {
		return t[i].Name >= name
	})
}
