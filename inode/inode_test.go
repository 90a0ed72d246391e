package inode

import (
	"errors"
	"io/fs"
	"testing"
)

func TestAbs(t *testing.T) {
	tests := []struct {
		Cwd  string
		Name string
		Want string
	}{
		{"/", "file", "/file"},
		{"/", "/file", "/file"},
		{"/tmp", "a/../b", "/tmp/b"},
		{"/tmp", "/x//y/", "/x/y"},
		{"/", "", "/"},
	}

	for i, test := range tests {
		got := Abs(test.Cwd, test.Name)
		t.Logf("%q := Abs(%q, %q)", got, test.Cwd, test.Name)
		if got != test.Want {
			t.Fatalf("%d: %s != %s", i, got, test.Want)
		}
	}
}

func TestIno(t *testing.T) {
	var ino Ino
	a := ino.New(0o640)
	b := ino.New(0o640)
	if a.Ino != 1 || b.Ino != 2 {
		t.Fatalf("inode numbers = %d, %d; want 1, 2", a.Ino, b.Ino)
	}

	c := ino.New(0o7600)
	if c.Ino != 3 {
		t.Fatalf("inode number = %d; want 3", c.Ino)
	}
	if c.Mode != 0o600 {
		t.Errorf("mode = %v; want %v", c.Mode, fs.FileMode(0o600))
	}
}

func TestTable(t *testing.T) {
	var (
		ino   Ino
		table Table
	)

	nodes := make([]*Inode, 100)
	for i := range nodes {
		nodes[i] = ino.New(0o666)
	}

	NlinkTest := func(location string, count int) {
		t.Helper()
		for _, n := range nodes {
			if n.Nlink != uint64(count) {
				t.Fatalf("%s: incorrect link count %d != %d", location, n.Nlink, count)
			}
		}
	}
	NlinkTest("NLT 1", 0)

	names := make([]string, len(nodes))
	for i, n := range nodes {
		names[i] = "/file." + string(rune('a'+i%26)) + string(rune('a'+i/26))
		table.Link(names[i], n)
	}
	NlinkTest("NLT 2", 1)

	for i := 1; i < table.Len(); i++ {
		if !table.Less(i-1, i) {
			t.Fatalf("table not sorted at %d: %q >= %q", i, table[i-1].Name, table[i].Name)
		}
	}

	for i, name := range names {
		n, err := table.Resolve(name)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", name, err)
		}
		if n != nodes[i] {
			t.Fatalf("Resolve(%q) returned inode %d; want %d", name, n.Ino, nodes[i].Ino)
		}
	}

	// relinking a name drops the old node's count
	replacement := ino.New(0o666)
	table.Link(names[0], replacement)
	if nodes[0].Nlink != 0 || replacement.Nlink != 1 {
		t.Fatalf("link counts after replace = %d, %d; want 0, 1", nodes[0].Nlink, replacement.Nlink)
	}
	nodes[0] = replacement

	for _, name := range names {
		if err := table.Unlink(name); err != nil {
			t.Fatalf("Unlink(%q): %v", name, err)
		}
	}
	NlinkTest("NLT 3", 0)

	if table.Len() != 0 {
		t.Fatalf("table has %d entries after unlinking everything", table.Len())
	}
	if _, err := table.Resolve(names[1]); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("Resolve after Unlink: %v; want fs.ErrNotExist", err)
	}
	if err := table.Unlink(names[1]); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("double Unlink: %v; want fs.ErrNotExist", err)
	}
}

func TestStat(t *testing.T) {
	var ino Ino
	n := ino.New(0o644)
	n.Resize(42)

	st := &Stat{Filename: "f", Node: n}
	if st.Size() != 42 {
		t.Errorf("Size = %d; want 42", st.Size())
	}
	if st.IsDir() {
		t.Errorf("IsDir = true for a regular file")
	}
	if st.Sys() != n {
		t.Errorf("Sys did not return the inode")
	}
	if st.ModTime().Before(n.Ctime) {
		t.Errorf("ModTime %v before Ctime %v", st.ModTime(), n.Ctime)
	}
}
