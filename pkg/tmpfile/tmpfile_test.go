package tmpfile

import (
	"os"
	"testing"
)

func TestCreateUnlinksOnClose(t *testing.T) {
	base := t.TempDir()
	f := NewIn(base)
	tf, err := f.Create(".s")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := os.Stat(tf.Path); err != nil {
		t.Fatalf("file does not exist after Create: %v", err)
	}
	if err := tf.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := os.Stat(tf.Path); !os.IsNotExist(err) {
		t.Errorf("file still exists after Close: %v", err)
	}
}

func TestCreateNamesAreUnique(t *testing.T) {
	base := t.TempDir()
	f := NewIn(base)
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		tf, err := f.Create(".o")
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if seen[tf.Path] {
			t.Fatalf("duplicate path %s", tf.Path)
		}
		seen[tf.Path] = true
		tf.Close()
	}
}

func TestPathDoesNotCreateFile(t *testing.T) {
	base := t.TempDir()
	f := NewIn(base)
	p, err := f.Path(".elf")
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	if _, err := os.Stat(p); !os.IsNotExist(err) {
		t.Errorf("Path() unexpectedly created %s", p)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	base := t.TempDir()
	f := NewIn(base)
	tf, err := f.Create(".s")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := tf.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := tf.Close(); err != nil {
		t.Errorf("second Close returned error: %v", err)
	}
}
