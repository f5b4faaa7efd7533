package uploads

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestSaveNamesFileWithTimestampPrefix(t *testing.T) {
	d, err := NewDir(t.TempDir())
	if err != nil {
		t.Fatalf("NewDir: %v", err)
	}

	content := []byte("picture bytes")
	stored, err := d.Save("dinner.jpg", bytes.NewReader(content), 1700000000123)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if stored != "1700000000123-dinner.jpg" {
		t.Errorf("stored = %q, want %q", stored, "1700000000123-dinner.jpg")
	}

	path, err := d.Path(stored)
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Errorf("stored bytes differ from input")
	}
}

func TestSaveStripsDirectoryFromOriginalName(t *testing.T) {
	d, err := NewDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	stored, err := d.Save("../../etc/passwd", strings.NewReader("x"), 42)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if strings.Contains(stored, "/") || strings.Contains(stored, "..") {
		t.Errorf("stored = %q, contains path components", stored)
	}
}

func TestInteriorDotsAreValidFilenames(t *testing.T) {
	d, err := NewDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	stored, err := d.Save("photo..jpg", strings.NewReader("img"), 99)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if stored != "99-photo..jpg" {
		t.Errorf("stored = %q", stored)
	}

	path, err := d.Path(stored)
	if err != nil {
		t.Fatalf("Path(%q): %v", stored, err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "img" {
		t.Errorf("content = %q", got)
	}
}

func TestPathRejectsTraversal(t *testing.T) {
	d, err := NewDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"../secret", "a/b.png", "..", ""} {
		if _, err := d.Path(name); err == nil {
			t.Errorf("Path(%q) succeeded, want error", name)
		}
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	root := t.TempDir()
	d, err := NewDir(root)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.Save("a.png", strings.NewReader("data"), 1); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".skillet-tmp-") {
			t.Errorf("leftover temp file %q", e.Name())
		}
	}
	if len(entries) != 1 {
		t.Errorf("len(entries) = %d, want 1", len(entries))
	}
}
