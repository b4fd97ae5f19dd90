package fsutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestOSFileSystem_CreateAndRead(t *testing.T) {
	var fsys FileSystem = OSFileSystem{}
	dir := filepath.Join(t.TempDir(), "plots", "run")

	if err := fsys.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	w, err := fsys.Create(filepath.Join(dir, "profiles.png"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := w.Write([]byte("png")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := fsys.ReadFile(filepath.Join(dir, "profiles.png"))
	if err != nil || string(data) != "png" {
		t.Errorf("ReadFile = %q, %v", data, err)
	}
	if !fsys.Exists(dir) {
		t.Error("directory should exist")
	}
	if fsys.Exists(filepath.Join(dir, "missing")) {
		t.Error("missing file should not exist")
	}
}

func TestMemoryFileSystem_CreateNeedsParent(t *testing.T) {
	m := NewMemoryFileSystem()

	_, err := m.Create("plots/run/profiles.png")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("Create without parent: err = %v, want ErrNotExist", err)
	}

	if err := m.MkdirAll("plots/run", 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if !m.Exists("plots") || !m.Exists("plots/run") {
		t.Error("MkdirAll should create every parent")
	}
	if _, err := m.Create("plots/run/profiles.png"); err != nil {
		t.Errorf("Create after MkdirAll: %v", err)
	}
}

func TestMemoryFileSystem_VisibleOnClose(t *testing.T) {
	m := NewMemoryFileSystem()
	w, err := m.Create("out.html")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	w.Write([]byte("<html>"))

	if m.Exists("out.html") {
		t.Error("file should not be visible before Close")
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := m.ReadFile("./out.html")
	if err != nil || string(data) != "<html>" {
		t.Errorf("ReadFile = %q, %v", data, err)
	}

	data[0] = 'X'
	again, _ := m.ReadFile("out.html")
	if string(again) != "<html>" {
		t.Error("ReadFile should return a copy")
	}
}

func TestMemoryFileSystem_MkdirOverFile(t *testing.T) {
	m := NewMemoryFileSystem()
	w, _ := m.Create("plots")
	w.Close()

	if err := m.MkdirAll("plots/run", 0755); !errors.Is(err, fs.ErrExist) {
		t.Errorf("MkdirAll over a file: err = %v, want ErrExist", err)
	}
}

func TestMemoryFileSystem_Files(t *testing.T) {
	m := NewMemoryFileSystem()
	m.MkdirAll("b", os.ModePerm)
	for _, name := range []string{"b/2.png", "a.html"} {
		w, err := m.Create(name)
		if err != nil {
			t.Fatalf("Create %s: %v", name, err)
		}
		w.Close()
	}

	got := m.Files()
	if len(got) != 2 || got[0] != "a.html" || got[1] != "b/2.png" {
		t.Errorf("Files() = %v", got)
	}

	if _, err := m.ReadFile("missing"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadFile missing: err = %v", err)
	}
}
