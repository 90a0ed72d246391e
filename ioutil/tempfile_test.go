package ioutil

import (
	"errors"
	"path/filepath"
	"strings"
	"syscall"
	"testing"

	"github.com/capnspacehook/reliablefile/osfs"
	"github.com/capnspacehook/reliablefile/reliable"
)

func TestTempFile(t *testing.T) {
	o, p := setup(t)

	f, err := TempFile(o, "", "foo")
	if err != nil {
		t.Fatalf("TempFile: %v", err)
	}
	defer f.Close()

	if dir := filepath.Dir(f.Name()); dir != p.TempDir() {
		t.Errorf("TempFile in %q; want %q", dir, p.TempDir())
	}
	if base := filepath.Base(f.Name()); !strings.HasPrefix(base, "foo") || len(base) != len("foo")+12 {
		t.Errorf("TempFile name %q; want foo followed by 12 hex digits", base)
	}

	g, err := TempFile(o, "/work", "foo")
	if err != nil {
		t.Fatalf("TempFile: %v", err)
	}
	defer g.Close()
	if g.Name() == f.Name() {
		t.Fatalf("two temp files named %q", f.Name())
	}
	if !strings.HasPrefix(g.Name(), "/work/foo") {
		t.Errorf("TempFile(/work) = %q", g.Name())
	}
}

func TestTempFileOS(t *testing.T) {
	cfg, err := reliable.NewConfig(reliable.WithPerm(0o600))
	if err != nil {
		t.Fatal(err)
	}
	o := PlatformOpener{Platform: osfs.NewFS(), Config: cfg}

	dir := t.TempDir()
	f, err := TempFile(o, dir, "reliable")
	if err != nil {
		t.Fatalf("TempFile: %v", err)
	}
	defer f.Close()

	if err := f.WriteFrom([]byte(data)); err != nil {
		t.Fatal(err)
	}
	checkSize(t, o, f.Name(), int64(len(data)))
}

func TestTempFile_BadDir(t *testing.T) {
	o := PlatformOpener{Platform: osfs.NewFS(), Config: reliable.DefaultConfig()}

	badDir := filepath.Join(t.TempDir(), "not-exist")
	_, err := TempFile(o, badDir, "foo")
	if !errors.Is(err, syscall.ENOENT) {
		t.Errorf("TempFile error = %v; want ENOENT", err)
	}
}
